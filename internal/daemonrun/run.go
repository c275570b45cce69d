// Package daemonrun hosts the daemon runtime loop shared by the courierd
// binary and the CLI's foreground daemon command.
package daemonrun

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"courier/internal/config"
	"courier/internal/daemon"
	"courier/internal/ipc"
	"courier/internal/logging"
	"courier/internal/metrics"
	"courier/internal/notify"
)

// Options configures daemon process runtime behavior.
type Options struct {
	LogLevel string
}

// Run starts the courier daemon runtime loop and blocks until the context is
// canceled or a termination signal arrives. SIGHUP reloads the configuration
// file without restarting.
func Run(cmdCtx context.Context, cfg *config.Config, configPath string, opts Options) error {
	if cfg == nil {
		return fmt.Errorf("config is required")
	}

	signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := cfg.EnsureDirectories(); err != nil {
		return fmt.Errorf("ensure directories: %w", err)
	}

	level := cfg.Logging.Level
	if strings.TrimSpace(opts.LogLevel) != "" {
		level = opts.LogLevel
	}
	logger, err := logging.New(logging.Options{
		Level:       level,
		Format:      cfg.Logging.Format,
		OutputPaths: []string{"stdout", filepath.Join(cfg.Paths.LogDir, "courier.log")},
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	pidPath := filepath.Join(cfg.Paths.LogDir, "courier.pid")
	if err := writePIDFile(pidPath); err != nil {
		return fmt.Errorf("write pid file: %w", err)
	}
	defer os.Remove(pidPath)

	store := config.NewStore(cfg, configPath)
	mets := metrics.New()
	dispatcher := notify.NewDispatcher(store, cfg.HTTP, logger, mets)

	d, err := daemon.New(store, dispatcher, logger, mets)
	if err != nil {
		return fmt.Errorf("create daemon: %w", err)
	}
	defer d.Close()

	socketPath := SocketPath(cfg)
	ipcServer, err := ipc.NewServer(signalCtx, socketPath, d, logger)
	if err != nil {
		return fmt.Errorf("start IPC server: %w", err)
	}
	defer ipcServer.Close()
	ipcServer.Serve()

	if err := d.Start(signalCtx); err != nil {
		return fmt.Errorf("start daemon: %w", err)
	}

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	go func() {
		for {
			select {
			case <-signalCtx.Done():
				return
			case <-hup:
				if _, err := d.Reload(); err != nil {
					logger.Warn("SIGHUP reload failed", logging.Error(err))
				}
			}
		}
	}()

	<-signalCtx.Done()
	logger.Info("courier daemon shutting down")
	return nil
}

// SocketPath returns the IPC socket location for a configuration. An explicit
// paths.socket entry wins; otherwise the socket lives next to the logs.
func SocketPath(cfg *config.Config) string {
	if cfg == nil {
		return filepath.Join(os.TempDir(), "courier.sock")
	}
	if strings.TrimSpace(cfg.Paths.Socket) != "" {
		return cfg.Paths.Socket
	}
	return filepath.Join(cfg.Paths.LogDir, "courier.sock")
}

func writePIDFile(path string) error {
	if path == "" {
		return nil
	}
	value := strconv.Itoa(os.Getpid()) + "\n"
	return os.WriteFile(path, []byte(value), 0o644)
}

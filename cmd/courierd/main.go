// Command courierd runs the Courier notification daemon in the foreground.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"courier/internal/config"
	"courier/internal/daemonrun"
)

func main() {
	configFlag := flag.String("config", "", "configuration file path")
	logLevel := flag.String("log-level", "", "override configured log level")
	flag.Parse()

	cfg, path, exists, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if !exists {
		fmt.Fprintf(os.Stderr, "config file %s not found, using defaults\n", path)
	}

	if err := daemonrun.Run(context.Background(), cfg, path, daemonrun.Options{LogLevel: *logLevel}); err != nil {
		log.Fatalf("courierd: %v", err)
	}
}

package ipc

import (
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"
)

// Client provides RPC access to the daemon.
type Client struct {
	conn   net.Conn
	client *rpc.Client
}

// Dial connects to the IPC server at the given socket path.
func Dial(path string) (*Client, error) {
	conn, err := net.DialTimeout("unix", path, 2*time.Second)
	if err != nil {
		return nil, err
	}
	rpcClient := rpc.NewClientWithCodec(jsonrpc.NewClientCodec(conn))
	return &Client{conn: conn, client: rpcClient}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	if c.client != nil {
		_ = c.client.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Notify submits a notification for dispatch.
func (c *Client) Notify(req NotifyRequest) (*NotifyResponse, error) {
	var resp NotifyResponse
	if err := c.client.Call("Courier.Notify", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// TestNotification triggers a notification test via the daemon.
func (c *Client) TestNotification() (*TestNotificationResponse, error) {
	var resp TestNotificationResponse
	if err := c.client.Call("Courier.TestNotification", TestNotificationRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Reload asks the daemon to re-read its configuration file.
func (c *Client) Reload() (*ReloadResponse, error) {
	var resp ReloadResponse
	if err := c.client.Call("Courier.Reload", ReloadRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Webhooks lists the configured webhooks with credentials redacted.
func (c *Client) Webhooks() (*WebhooksResponse, error) {
	var resp WebhooksResponse
	if err := c.client.Call("Courier.Webhooks", WebhooksRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Status retrieves the daemon status.
func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.client.Call("Courier.Status", StatusRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

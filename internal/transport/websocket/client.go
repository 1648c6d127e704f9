package websocket

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iamasit07/4-in-a-row/client/internal/domain"
)

const ErrClosed domain.Error = "connection closed"

type Options struct {
	HandshakeTimeout time.Duration
	WriteTimeout     time.Duration
	// PingInterval of zero disables the keep-alive pinger.
	PingInterval time.Duration
}

// Client is the single connection to the game server. Writes are
// serialized; reads happen only inside Listen.
type Client struct {
	conn    *websocket.Conn
	options Options

	// writeMu ensures only one goroutine writes to the socket at a time.
	// conn.WriteMessage is not safe for concurrent use.
	writeMu sync.Mutex

	closeOnce  sync.Once
	markOnce   sync.Once
	closed     chan struct{}
	localClose atomic.Bool
}

// Dial opens the connection. It does not send anything; call Open next.
func Dial(ctx context.Context, endpoint string, options Options) (*Client, error) {
	dialer := websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: options.HandshakeTimeout,
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
	}

	conn, resp, err := dialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("dial %s: %w (status %d)", endpoint, err, resp.StatusCode)
		}
		return nil, fmt.Errorf("dial %s: %w", endpoint, err)
	}
	log.Printf("[WS] Connected to %s", endpoint)

	return &Client{
		conn:    conn,
		options: options,
		closed:  make(chan struct{}),
	}, nil
}

// Open sends the init event that tells the server who this client is.
// It must be the first message on the connection.
func (c *Client) Open(init domain.InitEvent) error {
	if err := c.Send(init); err != nil {
		return fmt.Errorf("send init: %w", err)
	}
	return nil
}

// Send writes one event as a JSON text message.
func (c *Client) Send(event domain.Event) error {
	data, err := domain.Encode(event)
	if err != nil {
		return err
	}

	select {
	case <-c.closed:
		return ErrClosed
	default:
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if c.options.WriteTimeout > 0 {
		c.conn.SetWriteDeadline(time.Now().Add(c.options.WriteTimeout))
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("write %s: %w", event.Type(), err)
	}
	return nil
}

// Listen hands every inbound text message to handle until the connection
// closes or ctx is cancelled. A normal closure returns nil.
func (c *Client) Listen(ctx context.Context, handle func(data []byte)) error {
	stop := make(chan struct{})
	defer close(stop)

	go func() {
		select {
		case <-ctx.Done():
			c.CloseNormal()
		case <-stop:
		}
	}()

	if c.options.PingInterval > 0 {
		readTimeout := 2 * c.options.PingInterval
		c.conn.SetReadDeadline(time.Now().Add(readTimeout))
		c.conn.SetPongHandler(func(string) error {
			c.conn.SetReadDeadline(time.Now().Add(readTimeout))
			return nil
		})
		go c.keepAlive(stop)
	}

	for {
		messageType, data, err := c.conn.ReadMessage()
		if err != nil {
			c.markClosed()
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			if c.localClose.Load() || ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[WS] Server disconnected unexpectedly: %v", err)
			}
			return err
		}
		if messageType != websocket.TextMessage {
			continue
		}
		handle(data)
	}
}

func (c *Client) keepAlive(stop <-chan struct{}) {
	ticker := time.NewTicker(c.options.PingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-c.closed:
			return
		case <-ticker.C:
			deadline := time.Now().Add(c.writeTimeout())
			if err := c.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				log.Printf("[WS] Ping failed: %v", err)
				return
			}
		}
	}
}

// CloseNormal sends a normal-closure frame (1000) and closes the socket.
// Calling it more than once is harmless.
func (c *Client) CloseNormal() error {
	var err error
	c.closeOnce.Do(func() {
		c.localClose.Store(true)
		c.markClosed()
		message := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		deadline := time.Now().Add(c.writeTimeout())
		if writeErr := c.conn.WriteControl(websocket.CloseMessage, message, deadline); writeErr != nil && !errors.Is(writeErr, websocket.ErrCloseSent) {
			log.Printf("[WS] Close frame not sent: %v", writeErr)
		}
		err = c.conn.Close()
		log.Printf("[WS] Connection closed")
	})
	return err
}

// Done is closed once the connection is no longer usable.
func (c *Client) Done() <-chan struct{} {
	return c.closed
}

func (c *Client) markClosed() {
	c.markOnce.Do(func() { close(c.closed) })
}

func (c *Client) writeTimeout() time.Duration {
	if c.options.WriteTimeout > 0 {
		return c.options.WriteTimeout
	}
	return 10 * time.Second
}

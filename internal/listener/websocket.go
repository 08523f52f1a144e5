package listener

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// WebsocketListener serves sessions over websocket. Each text message from
// the client is one line of input and each write is sent as one message.
type WebsocketListener struct {
	port     uint16
	path     string
	cm       *ConnectionManager
	upgrader websocket.Upgrader
}

func NewWebsocketListener(port uint16, path string, cm *ConnectionManager) *WebsocketListener {
	if path == "" {
		path = "/"
	}
	return &WebsocketListener{
		port: port,
		path: path,
		cm:   cm,
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

func (l *WebsocketListener) Start(ctx context.Context) error {
	connCtx, cancelConns := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	mux := http.NewServeMux()
	mux.Handle(l.path, l.handler(connCtx, &wg))
	svr := &http.Server{
		Addr:    fmt.Sprintf(":%d", l.port),
		Handler: mux,
	}

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			svr.Close()
		case <-done:
		}
	}()

	slog.InfoContext(ctx, "listening for websocket", "port", l.port, "path", l.path)

	err := svr.ListenAndServe()
	cancelConns()
	wg.Wait()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving websocket on port %d: %w", l.port, err)
	}
	return nil
}

func (l *WebsocketListener) handler(ctx context.Context, wg *sync.WaitGroup) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := l.upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.ErrorContext(ctx, "upgrading websocket", "remote", r.RemoteAddr, "error", err)
			return
		}
		wg.Add(1)
		defer wg.Done()
		defer conn.Close()

		// Unblock the session's pending read on shutdown.
		stop := context.AfterFunc(ctx, func() { conn.Close() })
		defer stop()

		slog.InfoContext(ctx, "websocket connection established", "remote", r.RemoteAddr)
		l.cm.AcceptConnection(ctx, newWSReadWriter(conn))
	})
}

type wsReadWriter struct {
	conn *websocket.Conn
	buf  []byte

	wmu sync.Mutex
}

func newWSReadWriter(conn *websocket.Conn) *wsReadWriter {
	return &wsReadWriter{conn: conn}
}

func (c *wsReadWriter) Read(p []byte) (int, error) {
	for len(c.buf) == 0 {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return 0, io.EOF
			}
			return 0, err
		}
		c.buf = append(bytes.TrimRight(msg, "\r\n"), '\n')
	}

	n := copy(p, c.buf)
	c.buf = c.buf[n:]
	return n, nil
}

func (c *wsReadWriter) Write(p []byte) (int, error) {
	c.wmu.Lock()
	defer c.wmu.Unlock()

	if err := c.conn.WriteMessage(websocket.TextMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

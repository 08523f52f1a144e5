package player

import (
	"bufio"
	"io"
	"strings"
	"sync"

	"github.com/pixil98/go-wumpus/internal/display"
)

const DiedMessage = "You have died."

// Client is the line-oriented view of one player connection. Input lines are
// read on a separate goroutine and delivered through Lines.
type Client struct {
	conn  io.ReadWriter
	width int

	lines chan string
	err   error

	done      chan struct{}
	closeOnce sync.Once
}

type ClientOpt func(*Client)

// WithWidth sets the column outgoing lines are wrapped at. Zero disables
// wrapping.
func WithWidth(width int) ClientOpt {
	return func(c *Client) {
		c.width = width
	}
}

// NewClient starts reading lines from conn.
func NewClient(conn io.ReadWriter, opts ...ClientOpt) *Client {
	c := &Client{
		conn:  conn,
		width: display.DefaultWidth,
		lines: make(chan string),
		done:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}

	go c.read()
	return c
}

func (c *Client) read() {
	scanner := bufio.NewScanner(c.conn)
	for scanner.Scan() {
		select {
		case c.lines <- scanner.Text():
		case <-c.done:
			return
		}
	}
	c.err = scanner.Err()
	close(c.lines)
}

// Lines delivers each line of input. It is closed when the connection ends;
// Err then reports why.
func (c *Client) Lines() <-chan string {
	return c.lines
}

// Err returns the read error that closed Lines, or nil on a clean EOF. Only
// valid once Lines is closed.
func (c *Client) Err() error {
	return c.err
}

func (c *Client) SendNotifications(lines []string) error {
	return c.writeLines(lines)
}

func (c *Client) SendSenses(lines []string) error {
	return c.writeLines(lines)
}

// Died tells the player their session is over.
func (c *Client) Died() error {
	return c.writeLines([]string{DiedMessage})
}

// Close stops delivering input. The connection itself belongs to the
// listener that accepted it.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

func (c *Client) writeLines(lines []string) error {
	if len(lines) == 0 {
		return nil
	}

	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(display.WrapWidth(l, c.width))
		sb.WriteString("\n")
	}
	_, err := io.WriteString(c.conn, sb.String())
	return err
}

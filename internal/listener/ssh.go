package listener

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"syscall"

	"golang.org/x/crypto/ssh"
)

// SshListener serves sessions over ssh. Clients are not authenticated; each
// shell channel becomes one player.
type SshListener struct {
	port    uint16
	cm      *ConnectionManager
	hostKey ssh.Signer
}

func NewSshListener(port uint16, cm *ConnectionManager, hostKey ssh.Signer) *SshListener {
	return &SshListener{
		port:    port,
		cm:      cm,
		hostKey: hostKey,
	}
}

func (l *SshListener) Start(ctx context.Context) error {
	config := &ssh.ServerConfig{
		NoClientAuth: true,
	}
	config.AddHostKey(l.hostKey)

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", l.port))
	if err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			return fmt.Errorf("port %d is already in use (another server running?)", l.port)
		}
		return fmt.Errorf("listening on port %d: %w", l.port, err)
	}

	slog.InfoContext(ctx, "listening for ssh", "port", l.port)

	connCtx, cancelConns := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	stop := context.AfterFunc(ctx, func() { ln.Close() })
	defer stop()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				cancelConns()
				wg.Wait()
				return nil
			}
			slog.ErrorContext(ctx, "accepting ssh connection", "error", err)
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			l.handleConnection(connCtx, conn, config)
		}()
	}
}

func (l *SshListener) handleConnection(ctx context.Context, conn net.Conn, config *ssh.ServerConfig) {
	defer conn.Close()

	sshConn, chans, reqs, err := ssh.NewServerConn(conn, config)
	if err != nil {
		slog.ErrorContext(ctx, "ssh handshake", "remote", conn.RemoteAddr(), "error", err)
		return
	}
	defer sshConn.Close()

	slog.InfoContext(ctx, "ssh connection established", "remote", conn.RemoteAddr())

	// Closing the connection ends the channel loop below.
	stop := context.AfterFunc(ctx, func() { sshConn.Close() })
	defer stop()

	go ssh.DiscardRequests(reqs)

	for newChan := range chans {
		if newChan.ChannelType() != "session" {
			newChan.Reject(ssh.UnknownChannelType, "unknown channel type")
			continue
		}
		l.serveChannel(ctx, newChan)
	}
}

// serveChannel waits for the client to ask for a shell, then plays a session
// over the channel.
func (l *SshListener) serveChannel(ctx context.Context, newChan ssh.NewChannel) {
	ch, requests, err := newChan.Accept()
	if err != nil {
		slog.ErrorContext(ctx, "accepting ssh channel", "error", err)
		return
	}
	defer ch.Close()

	shellReady := make(chan struct{})
	go func(in <-chan *ssh.Request) {
		for req := range in {
			switch req.Type {
			case "pty-req":
				// Without a PTY the client keeps local echo and line editing.
				req.Reply(false, nil)
			case "shell":
				req.Reply(true, nil)
				close(shellReady)
			default:
				req.Reply(false, nil)
			}
		}
	}(requests)

	select {
	case <-shellReady:
	case <-ctx.Done():
		return
	}

	l.cm.AcceptConnection(ctx, newCRLFReadWriter(ch))
}

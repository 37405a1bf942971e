package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"time"
)

// connectionTracker is notified when the listener opens or closes.
type connectionTracker interface {
	SetConnected(connected bool)
}

// clientCloser drops a client whose connection has been hijacked from the
// HTTP server, which Shutdown does not track.
type clientCloser interface {
	CloseActive()
}

// Listener opens and closes the local chat endpoint on demand.
type Listener struct {
	addr    string
	handler http.Handler
	tracker connectionTracker
	clients clientCloser

	mu     sync.Mutex
	server *http.Server
	ln     net.Listener
	done   chan struct{}
}

func NewListener(addr string, handler http.Handler, tracker connectionTracker, clients clientCloser) *Listener {
	return &Listener{
		addr:    addr,
		handler: handler,
		tracker: tracker,
		clients: clients,
	}
}

// Start binds the address and serves in the background. It is a no-op when
// already running.
func (l *Listener) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.server != nil {
		return nil
	}

	ln, err := net.Listen("tcp", l.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", l.addr, err)
	}

	srv := &http.Server{
		Handler:     l.handler,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}
	done := make(chan struct{})

	go func() {
		defer close(done)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Listener error: %v", err)
		}
	}()

	l.server = srv
	l.ln = ln
	l.done = done
	l.tracker.SetConnected(true)

	log.Printf("✓ Listening on ws://%s", ln.Addr())
	return nil
}

// Stop shuts the listener down and drops the attached client. It is a no-op
// when not running.
func (l *Listener) Stop(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.server == nil {
		return nil
	}

	err := l.server.Shutdown(ctx)
	l.clients.CloseActive()
	<-l.done

	l.server = nil
	l.ln = nil
	l.done = nil
	l.tracker.SetConnected(false)

	log.Println("Listener stopped")
	return err
}

// Toggle starts a stopped listener or stops a running one.
func (l *Listener) Toggle(ctx context.Context) error {
	if l.Running() {
		return l.Stop(ctx)
	}
	return l.Start()
}

func (l *Listener) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.server != nil
}

// Addr returns the bound address, or the configured one when stopped.
func (l *Listener) Addr() string {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.ln != nil {
		return l.ln.Addr().String()
	}
	return l.addr
}

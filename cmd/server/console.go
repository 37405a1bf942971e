package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"copilot-replica/internal/models"
	"copilot-replica/internal/session"
)

type listenerControl interface {
	Start() error
	Stop(ctx context.Context) error
	Toggle(ctx context.Context) error
	Running() bool
	Addr() string
}

// console is the line-oriented front end. It renders every log append and
// forwards typed lines to the session. Lines starting with "/" are commands.
type console struct {
	session  *session.Session
	listener listenerControl
	in       io.Reader

	mu  sync.Mutex
	out io.Writer
}

func newConsole(sess *session.Session, listener listenerControl, in io.Reader, out io.Writer) *console {
	return &console{session: sess, listener: listener, in: in, out: out}
}

// Run blocks until input ends, /quit is typed, or ctx is cancelled.
func (c *console) Run(ctx context.Context) error {
	appends, err := c.session.Subscribe()
	if err != nil {
		return err
	}

	go c.render(ctx, appends)

	c.printf("Type a message and press enter. Commands: /connect /disconnect /toggle /quit\n")

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-readErr:
			return err
		case line := <-lines:
			if quit := c.handle(ctx, line); quit {
				return nil
			}
		}
	}
}

func (c *console) handle(ctx context.Context, line string) bool {
	switch strings.TrimSpace(line) {
	case "/quit":
		return true
	case "/connect":
		c.reportListener(c.listener.Start())
		return false
	case "/disconnect":
		c.reportListener(c.listener.Stop(ctx))
		return false
	case "/toggle":
		c.reportListener(c.listener.Toggle(ctx))
		return false
	}

	if _, accepted, err := c.session.Submit(line); err != nil {
		c.printf("System: %v\n\n", err)
	} else if accepted {
		c.printf("%s\n", c.session.Typing())
	}
	return false
}

func (c *console) reportListener(err error) {
	switch {
	case err != nil:
		c.printf("System: %v\n\n", err)
	case c.listener.Running():
		c.printf("System: listening on ws://%s\n\n", c.listener.Addr())
	default:
		c.printf("System: disconnected\n\n")
	}
}

func (c *console) render(ctx context.Context, appends <-chan models.ChatMessage) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-appends:
			if !ok {
				return
			}
			c.printf("%s: %s\n\n", speaker(msg.Role), msg.Content)
		}
	}
}

func (c *console) printf(format string, args ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, format, args...)
}

func speaker(role models.Role) string {
	switch role {
	case models.RoleUser:
		return "User"
	case models.RoleAssistant:
		return "Bot"
	default:
		return "System"
	}
}

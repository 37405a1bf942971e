// Package session owns the chat log of one conversation. A single goroutine
// holds the log, the typing indicator and the connection flag; every other
// goroutine hands work to it over a command channel instead of touching the
// state directly.
package session

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"copilot-replica/internal/models"
	"copilot-replica/internal/services"
)

var ErrClosed = errors.New("session closed")

const subscriberBuffer = 64

type state struct {
	messages    []models.ChatMessage
	typing      string
	connected   bool
	subscribers []chan models.ChatMessage
}

type Session struct {
	cmds      chan func(*state)
	done      chan struct{}
	closeOnce sync.Once
	script    services.Script
	publisher services.EventPublisher
	now       func() time.Time
}

func New(script services.Script, publisher services.EventPublisher) *Session {
	if publisher == nil {
		publisher = services.NopPublisher{}
	}
	s := &Session{
		cmds:      make(chan func(*state)),
		done:      make(chan struct{}),
		script:    script,
		publisher: publisher,
		now:       time.Now,
	}
	go s.run()
	return s
}

func (s *Session) run() {
	st := &state{}
	for {
		select {
		case <-s.done:
			for _, sub := range st.subscribers {
				close(sub)
			}
			return
		case fn := <-s.cmds:
			fn(st)
		}
	}
}

// do runs fn on the session goroutine and waits for it to finish.
func (s *Session) do(fn func(*state)) error {
	applied := make(chan struct{})
	select {
	case <-s.done:
		return ErrClosed
	case s.cmds <- func(st *state) {
		fn(st)
		close(applied)
	}:
	}
	<-applied
	return nil
}

// Close stops the session goroutine and closes every subscription.
func (s *Session) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}

// Append records an entry at the end of the log.
func (s *Session) Append(role models.Role, content string) (models.ChatMessage, error) {
	msg := models.ChatMessage{
		ID:        uuid.New(),
		Role:      role,
		Content:   content,
		CreatedAt: s.now(),
	}
	if err := s.do(func(st *state) { st.append(msg) }); err != nil {
		return models.ChatMessage{}, err
	}
	s.publisher.Publish(context.Background(), models.ChatEvent{Type: "message_appended", Message: &msg})
	return msg, nil
}

func (st *state) append(msg models.ChatMessage) {
	st.messages = append(st.messages, msg)
	for _, sub := range st.subscribers {
		select {
		case sub <- msg:
		default:
			log.Printf("session: subscriber lagging, dropped message %s", msg.ID)
		}
	}
}

// Submit is the local send path: it records the user's text, raises the
// typing indicator, and appends the canned reply once the typing delay has
// passed. Blank input is ignored.
func (s *Session) Submit(text string) (models.ChatMessage, bool, error) {
	if strings.TrimSpace(text) == "" {
		return models.ChatMessage{}, false, nil
	}

	msg, err := s.Append(models.RoleUser, text)
	if err != nil {
		return models.ChatMessage{}, false, err
	}
	if err := s.do(func(st *state) { st.typing = s.script.TypingIndicator() }); err != nil {
		return msg, true, err
	}

	go func() {
		time.Sleep(s.script.TypingDelay)
		reply := models.ChatMessage{
			ID:        uuid.New(),
			Role:      models.RoleAssistant,
			Content:   s.script.LocalReply(),
			CreatedAt: s.now(),
		}
		err := s.do(func(st *state) {
			st.typing = ""
			st.append(reply)
		})
		if err != nil {
			return
		}
		s.publisher.Publish(context.Background(), models.ChatEvent{Type: "message_appended", Message: &reply})
	}()

	return msg, true, nil
}

// Messages returns a copy of the log in arrival order.
func (s *Session) Messages() []models.ChatMessage {
	var out []models.ChatMessage
	s.do(func(st *state) {
		out = make([]models.ChatMessage, len(st.messages))
		copy(out, st.messages)
	})
	return out
}

// Typing returns the typing indicator text, empty when idle.
func (s *Session) Typing() string {
	var typing string
	s.do(func(st *state) { typing = st.typing })
	return typing
}

func (s *Session) Connected() bool {
	var connected bool
	s.do(func(st *state) { connected = st.connected })
	return connected
}

func (s *Session) SetConnected(connected bool) {
	changed := false
	err := s.do(func(st *state) {
		changed = st.connected != connected
		st.connected = connected
	})
	if err != nil || !changed {
		return
	}
	s.publisher.Publish(context.Background(), models.ChatEvent{Type: "connection_state", Connected: &connected})
}

// Subscribe returns a channel that receives every entry appended after the
// call. The channel is closed when the session closes.
func (s *Session) Subscribe() (<-chan models.ChatMessage, error) {
	ch := make(chan models.ChatMessage, subscriberBuffer)
	if err := s.do(func(st *state) { st.subscribers = append(st.subscribers, ch) }); err != nil {
		return nil, err
	}
	return ch, nil
}

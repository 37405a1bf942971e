package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"copilot-replica/internal/models"
	"copilot-replica/internal/services"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []models.ChatEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event models.ChatEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) snapshot() []models.ChatEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]models.ChatEvent, len(p.events))
	copy(out, p.events)
	return out
}

func fastScript() services.Script {
	return services.Script{TypingDelay: 50 * time.Millisecond}
}

func receive(t *testing.T, ch <-chan models.ChatMessage) models.ChatMessage {
	t.Helper()
	select {
	case msg, ok := <-ch:
		require.True(t, ok, "subscription closed unexpectedly")
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for chat message")
		return models.ChatMessage{}
	}
}

func TestAppend_PreservesArrivalOrder(t *testing.T) {
	s := New(fastScript(), nil)
	defer s.Close()

	_, err := s.Append(models.RoleSystem, "welcome")
	require.NoError(t, err)
	_, err = s.Append(models.RoleUser, "hello")
	require.NoError(t, err)
	_, err = s.Append(models.RoleAssistant, "hi there")
	require.NoError(t, err)

	msgs := s.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, models.RoleSystem, msgs[0].Role)
	assert.Equal(t, "hello", msgs[1].Content)
	assert.Equal(t, models.RoleAssistant, msgs[2].Role)
}

func TestMessages_ReturnsCopy(t *testing.T) {
	s := New(fastScript(), nil)
	defer s.Close()

	_, err := s.Append(models.RoleUser, "original")
	require.NoError(t, err)

	msgs := s.Messages()
	msgs[0].Content = "changed"

	assert.Equal(t, "original", s.Messages()[0].Content)
}

func TestSubmit_AppendsUserThenCannedReply(t *testing.T) {
	pub := &recordingPublisher{}
	s := New(fastScript(), pub)
	defer s.Close()

	sub, err := s.Subscribe()
	require.NoError(t, err)

	_, accepted, err := s.Submit("write me a parser")
	require.NoError(t, err)
	require.True(t, accepted)
	assert.Equal(t, "Bot is typing...", s.Typing())

	user := receive(t, sub)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.Equal(t, "write me a parser", user.Content)

	reply := receive(t, sub)
	assert.Equal(t, models.RoleAssistant, reply.Role)
	assert.Equal(t, "I can help you with that. What specific task are we working on?", reply.Content)
	assert.Empty(t, s.Typing())

	assert.Len(t, s.Messages(), 2)
	require.Eventually(t, func() bool { return len(pub.snapshot()) == 2 }, 2*time.Second, 10*time.Millisecond)
}

func TestSubmit_IgnoresBlankInput(t *testing.T) {
	s := New(fastScript(), nil)
	defer s.Close()

	_, accepted, err := s.Submit("   ")
	require.NoError(t, err)
	assert.False(t, accepted)
	assert.Empty(t, s.Messages())
	assert.Empty(t, s.Typing())
}

func TestSetConnected_PublishesOnChangeOnly(t *testing.T) {
	pub := &recordingPublisher{}
	s := New(fastScript(), pub)
	defer s.Close()

	assert.False(t, s.Connected())
	s.SetConnected(true)
	s.SetConnected(true)
	assert.True(t, s.Connected())
	s.SetConnected(false)

	events := pub.snapshot()
	require.Len(t, events, 2)
	assert.Equal(t, "connection_state", events[0].Type)
	assert.True(t, *events[0].Connected)
	assert.False(t, *events[1].Connected)
}

func TestConcurrentAppends(t *testing.T) {
	s := New(fastScript(), nil)
	defer s.Close()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Append(models.RoleUser, "msg")
		}()
	}
	wg.Wait()

	assert.Len(t, s.Messages(), 50)
}

func TestClose(t *testing.T) {
	s := New(fastScript(), nil)
	sub, err := s.Subscribe()
	require.NoError(t, err)

	s.Close()
	s.Close()

	_, ok := <-sub
	assert.False(t, ok, "expected subscription to be closed")

	_, err = s.Append(models.RoleUser, "late")
	assert.ErrorIs(t, err, ErrClosed)
}

package mailer

import (
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	mu       sync.Mutex
	failures int
	sent     []Message
	attempts int
}

func (s *recordingSender) Send(msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts++
	if s.failures > 0 {
		s.failures--
		return errors.New("smtp unavailable")
	}
	s.sent = append(s.sent, msg)
	return nil
}

func TestDispatcherDelivers(t *testing.T) {
	sender := &recordingSender{}
	d := NewDispatcher(sender, zerolog.Nop())
	d.Start()

	d.Enqueue(Message{To: "a@example.com", Subject: "hi"})
	d.Enqueue(Message{To: "b@example.com", Subject: "ho"})
	d.Close()

	require.Len(t, sender.sent, 2)
	assert.Equal(t, "a@example.com", sender.sent[0].To)
}

func TestDispatcherRetriesThenSucceeds(t *testing.T) {
	sender := &recordingSender{failures: 2}
	d := NewDispatcher(sender, zerolog.Nop())
	d.Start()

	d.Enqueue(Message{To: "a@example.com", Subject: "hi"})
	d.Close()

	require.Len(t, sender.sent, 1)
	assert.Equal(t, 3, sender.attempts)
}

func TestDispatcherGivesUpAfterMaxAttempts(t *testing.T) {
	sender := &recordingSender{failures: 10}
	d := NewDispatcher(sender, zerolog.Nop())
	d.Start()

	d.Enqueue(Message{To: "a@example.com", Subject: "hi"})
	d.Close()

	assert.Empty(t, sender.sent)
	assert.Equal(t, maxAttempts, sender.attempts)
}

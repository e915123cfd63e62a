package mailer

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	queueSize   = 64
	maxAttempts = 3
	retryDelay  = 2 * time.Second
)

// Dispatcher queues messages and delivers them on a background worker with
// bounded retries. Enqueue never blocks the caller; when the queue is full
// the message is dropped with a log line rather than stalling a request.
type Dispatcher struct {
	sender Sender
	queue  chan Message
	log    zerolog.Logger

	once sync.Once
	wg   sync.WaitGroup
}

func NewDispatcher(sender Sender, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		sender: sender,
		queue:  make(chan Message, queueSize),
		log:    log,
	}
}

func (d *Dispatcher) Start() {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		for msg := range d.queue {
			d.deliver(msg)
		}
	}()
}

// Close stops accepting messages and waits for the in-flight queue to drain.
func (d *Dispatcher) Close() {
	d.once.Do(func() { close(d.queue) })
	d.wg.Wait()
}

func (d *Dispatcher) Enqueue(msg Message) {
	select {
	case d.queue <- msg:
	default:
		d.log.Warn().Str("to", msg.To).Str("subject", msg.Subject).Msg("mail queue full, message dropped")
	}
}

func (d *Dispatcher) deliver(msg Message) {
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err = d.sender.Send(msg); err == nil {
			return
		}
		d.log.Warn().Err(err).
			Str("to", msg.To).
			Int("attempt", attempt).
			Msg("mail delivery failed")
		if attempt < maxAttempts {
			time.Sleep(retryDelay * time.Duration(attempt))
		}
	}
	d.log.Error().Err(err).Str("to", msg.To).Str("subject", msg.Subject).Msg("mail delivery abandoned")
}

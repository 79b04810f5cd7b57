package chat

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrEmptyMessage is returned for blank input.
	ErrEmptyMessage = errors.New("message is empty")
	// ErrGenerating is returned while the assistant is still answering.
	ErrGenerating = errors.New("assistant is still answering")
)

const (
	MinDelay    = time.Second
	DelayJitter = 2 * time.Second
)

// Turn is one entry in the conversation log.
type Turn struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	IsBot     bool      `json:"is_bot"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is an append-only conversation with the assistant. At most one
// answer is generated at a time.
type Session struct {
	mu         sync.Mutex
	user       User
	responder  *Responder
	turns      []Turn
	generating bool

	delay func() time.Duration
	sleep func(ctx context.Context, d time.Duration) error
	now   func() time.Time
	newID func() string
}

// Option configures a Session.
type Option func(*Session)

// WithResponder sets the responder (and thus the fallback random source).
func WithResponder(r *Responder) Option {
	return func(s *Session) { s.responder = r }
}

// WithDelay sets the typing delay generator.
func WithDelay(fn func() time.Duration) Option {
	return func(s *Session) { s.delay = fn }
}

// WithoutDelay answers immediately.
func WithoutDelay() Option {
	return WithDelay(func() time.Duration { return 0 })
}

// WithSleep replaces the context-aware sleep used for the typing delay.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(s *Session) { s.sleep = fn }
}

// WithClock sets the timestamp source.
func WithClock(fn func() time.Time) Option {
	return func(s *Session) { s.now = fn }
}

// RandomDelay returns MinDelay plus a uniform jitter in [0, DelayJitter),
// drawing from rnd which must return values in [0, 1).
func RandomDelay(rnd func() float64) func() time.Duration {
	return func() time.Duration {
		return MinDelay + time.Duration(rnd()*float64(DelayJitter))
	}
}

// NewSession starts a conversation with the welcome turn already logged.
func NewSession(u User, opts ...Option) *Session {
	s := &Session{
		user:      u,
		responder: defaultResponder,
		delay:     RandomDelay(rand.Float64),
		sleep:     sleepContext,
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.turns = append(s.turns, s.turn(Welcome(u), true))
	return s
}

func (s *Session) turn(content string, bot bool) Turn {
	return Turn{ID: s.newID(), Content: content, IsBot: bot, Timestamp: s.now()}
}

// Send logs text as a user turn, waits for the typing delay and logs the
// assistant's answer, which it returns. Cancelling ctx during the delay drops
// the answer and returns ctx.Err(); the user turn stays logged.
func (s *Session) Send(ctx context.Context, text string) (Turn, error) {
	if strings.TrimSpace(text) == "" {
		return Turn{}, ErrEmptyMessage
	}

	s.mu.Lock()
	if s.generating {
		s.mu.Unlock()
		return Turn{}, ErrGenerating
	}
	s.turns = append(s.turns, s.turn(text, false))
	s.generating = true
	delay := s.delay()
	s.mu.Unlock()

	err := s.sleep(ctx, delay)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.generating = false
	if err != nil {
		return Turn{}, err
	}
	reply := s.turn(s.responder.Respond(text, s.user), true)
	s.turns = append(s.turns, reply)
	return reply, nil
}

// Turns returns a copy of the conversation log.
func (s *Session) Turns() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Generating reports whether an answer is being prepared.
func (s *Session) Generating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generating
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

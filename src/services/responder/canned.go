package responder

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// DefaultResponses are the canned replies used when no responses file is configured.
var DefaultResponses = []string{
	"That's an interesting question! Let me think about that for a moment.",
	"I'd be happy to help you with that. Here's what I think about it...",
	"Great question! This is a complex topic that requires careful consideration.",
	"I appreciate your curiosity. Let me provide you with some insights.",
	"That's something many people wonder about. Here's my perspective...",
	"Absolutely! This is a fascinating area to explore.",
	"I see what you're asking. The answer involves several key points.",
}

const (
	DefaultMinDelay = 1000 * time.Millisecond
	DefaultMaxDelay = 2000 * time.Millisecond
)

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// CannedConfig configures a Canned responder. Zero values fall back to defaults.
type CannedConfig struct {
	Responses []string
	MinDelay  time.Duration
	MaxDelay  time.Duration
	Rand      *rand.Rand
	Sleep     SleepFunc
}

// Canned simulates a model by waiting a random delay and picking a random canned reply.
type Canned struct {
	responses []string
	minDelay  time.Duration
	maxDelay  time.Duration
	sleep     SleepFunc

	mu  sync.Mutex
	rng *rand.Rand
}

var _ Responder = (*Canned)(nil)

// NewCanned creates a canned responder.
func NewCanned(cfg CannedConfig) *Canned {
	responses := cfg.Responses
	if len(responses) == 0 {
		responses = DefaultResponses
	}
	minDelay, maxDelay := cfg.MinDelay, cfg.MaxDelay
	if minDelay == 0 && maxDelay == 0 {
		minDelay, maxDelay = DefaultMinDelay, DefaultMaxDelay
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	sleep := cfg.Sleep
	if sleep == nil {
		sleep = ContextSleep
	}
	return &Canned{
		responses: append([]string(nil), responses...),
		minDelay:  minDelay,
		maxDelay:  maxDelay,
		sleep:     sleep,
		rng:       rng,
	}
}

// Respond waits a delay in [MinDelay, MaxDelay) and returns one canned reply.
func (c *Canned) Respond(ctx context.Context, req Request) (Reply, error) {
	delay, text := c.draw()
	start := time.Now()
	if err := c.sleep(ctx, delay); err != nil {
		return Reply{}, err
	}
	return Reply{Text: text, Latency: time.Since(start)}, nil
}

// Responses returns the canned replies this responder chooses from.
func (c *Canned) Responses() []string {
	return append([]string(nil), c.responses...)
}

func (c *Canned) draw() (time.Duration, string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delay := c.minDelay
	if span := c.maxDelay - c.minDelay; span > 0 {
		delay += time.Duration(c.rng.Int63n(int64(span)))
	}
	return delay, c.responses[c.rng.Intn(len(c.responses))]
}

// ContextSleep sleeps for d, returning early with ctx.Err() if ctx is cancelled.
func ContextSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// NoSleep returns immediately unless ctx is already cancelled.
func NoSleep(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}

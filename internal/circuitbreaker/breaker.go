package circuitbreaker

import (
	"errors"
	"sync"
	"time"
)

// State represents the circuit breaker state.
type State int

const (
	Closed   State = iota // calls pass through
	Open                  // calls are rejected
	HalfOpen              // one trial call is allowed through
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case HalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// ErrCircuitOpen is returned when the circuit breaker is open.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// Breaker fails fast after a run of consecutive failures. It never retries.
type Breaker struct {
	mu              sync.Mutex
	state           State
	failures        int
	probing         bool
	maxFailures     int
	resetTimeout    time.Duration
	lastFailureTime time.Time
	isFailure       func(error) bool
	now             func() time.Time
}

// Option configures a Breaker.
type Option func(*Breaker)

// WithFailurePredicate limits which errors count toward opening the
// circuit. Other errors are returned to the caller but count as a healthy
// round trip.
func WithFailurePredicate(fn func(error) bool) Option {
	return func(b *Breaker) { b.isFailure = fn }
}

// New creates a Breaker that opens after maxFailures consecutive failures
// and lets a trial through after resetTimeout. maxFailures <= 0 disables it.
func New(maxFailures int, resetTimeout time.Duration, opts ...Option) *Breaker {
	b := &Breaker{
		state:        Closed,
		maxFailures:  maxFailures,
		resetTimeout: resetTimeout,
		isFailure:    func(err error) bool { return err != nil },
		now:          time.Now,
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Execute runs fn through the circuit breaker. If the circuit is open,
// ErrCircuitOpen is returned without calling fn.
func (b *Breaker) Execute(fn func() error) error {
	if b.maxFailures <= 0 {
		return fn()
	}

	b.mu.Lock()
	switch b.state {
	case Open:
		if b.now().Sub(b.lastFailureTime) < b.resetTimeout {
			b.mu.Unlock()
			return ErrCircuitOpen
		}
		b.state = HalfOpen
		b.probing = true
	case HalfOpen:
		if b.probing {
			b.mu.Unlock()
			return ErrCircuitOpen
		}
		b.probing = true
	}
	b.mu.Unlock()

	err := fn()

	b.mu.Lock()
	defer b.mu.Unlock()
	b.probing = false

	if err != nil && b.isFailure(err) {
		b.failures++
		b.lastFailureTime = b.now()
		if b.state == HalfOpen || b.failures >= b.maxFailures {
			b.state = Open
		}
		return err
	}

	b.failures = 0
	b.state = Closed
	return err
}

// State returns the current state of the breaker.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

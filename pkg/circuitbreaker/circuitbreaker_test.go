package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBreakerOpensAfterMaxFailures(t *testing.T) {
	cb := NewCircuitBreaker(Settings{Name: "gemini", MaxFailures: 2, Timeout: time.Minute})
	boom := errors.New("boom")

	assert.ErrorIs(t, cb.Execute(func() error { return boom }), boom)
	assert.Equal(t, StateClosed, cb.State())
	assert.ErrorIs(t, cb.Execute(func() error { return boom }), boom)
	assert.Equal(t, StateOpen, cb.State())

	called := false
	err := cb.Execute(func() error { called = true; return nil })
	assert.ErrorIs(t, err, ErrOpen)
	assert.False(t, called)
}

func TestBreakerHalfOpenTrial(t *testing.T) {
	now := time.Now()
	cb := NewCircuitBreaker(Settings{Name: "storage", MaxFailures: 1, Timeout: time.Second})
	cb.now = func() time.Time { return now }

	_ = cb.Execute(func() error { return errors.New("down") })
	assert.Equal(t, StateOpen, cb.State())

	now = now.Add(2 * time.Second)
	assert.NoError(t, cb.Execute(func() error { return nil }))
	assert.Equal(t, StateClosed, cb.State())

	_ = cb.Execute(func() error { return errors.New("down again") })
	now = now.Add(2 * time.Second)
	_ = cb.Execute(func() error { return errors.New("still down") })
	assert.Equal(t, StateOpen, cb.State())
}

func TestBreakerIgnoresErrorsThatAreNotFailures(t *testing.T) {
	now := time.Now()
	ignored := errors.New("caller went away")
	cb := NewCircuitBreaker(Settings{
		Name:        "gemini",
		MaxFailures: 1,
		Timeout:     time.Second,
		IsFailure:   func(err error) bool { return !errors.Is(err, ignored) },
	})
	cb.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, cb.Execute(func() error { return ignored }), ignored)
	}
	assert.Equal(t, StateClosed, cb.State())

	_ = cb.Execute(func() error { return errors.New("down") })
	assert.Equal(t, StateOpen, cb.State())

	// An ignored half-open trial leaves the breaker open but ready to retry.
	now = now.Add(2 * time.Second)
	assert.ErrorIs(t, cb.Execute(func() error { return ignored }), ignored)
	assert.Equal(t, StateOpen, cb.State())
	assert.NoError(t, cb.Execute(func() error { return nil }))
	assert.Equal(t, StateClosed, cb.State())
}

package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var errBoom = errors.New("boom")

type fakeClock struct{ t time.Time }

func (f *fakeClock) Now() time.Time          { return f.t }
func (f *fakeClock) Advance(d time.Duration) { f.t = f.t.Add(d) }

func newBreaker(clk *fakeClock) *CircuitBreaker {
	return New("test", Config{
		MaxRequests: 1,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(c Counts) bool { return c.ConsecutiveFailures >= 3 },
		Now:         clk.Now,
	})
}

func TestCircuitBreaker(t *testing.T) {
	clk := &fakeClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	cb := newBreaker(clk)

	t.Run("关闭状态放行请求", func(t *testing.T) {
		assert.NoError(t, cb.Execute(func() error { return nil }))
		assert.Equal(t, StateClosed, cb.State())
	})

	t.Run("连续失败后熔断", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			assert.ErrorIs(t, cb.Execute(func() error { return errBoom }), errBoom)
		}
		assert.Equal(t, StateOpen, cb.State())

		called := false
		err := cb.Execute(func() error { called = true; return nil })
		assert.ErrorIs(t, err, ErrOpenState)
		assert.False(t, called)
	})

	t.Run("超时后半开，探测失败重新熔断", func(t *testing.T) {
		clk.Advance(11 * time.Second)
		assert.Equal(t, StateHalfOpen, cb.State())
		assert.ErrorIs(t, cb.Execute(func() error { return errBoom }), errBoom)
		assert.Equal(t, StateOpen, cb.State())
	})

	t.Run("探测成功后恢复", func(t *testing.T) {
		clk.Advance(11 * time.Second)
		assert.NoError(t, cb.Execute(func() error { return nil }))
		assert.Equal(t, StateClosed, cb.State())
	})
}

func TestStateChangeCallback(t *testing.T) {
	clk := &fakeClock{t: time.Now()}
	cb := newBreaker(clk)

	var transitions []string
	cb.OnStateChange(func(name string, from, to State) {
		transitions = append(transitions, from.String()+"->"+to.String())
	})

	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error { return errBoom })
	}
	clk.Advance(time.Minute)
	_ = cb.Execute(func() error { return nil })

	assert.Equal(t, []string{"CLOSED->OPEN", "OPEN->HALF_OPEN", "HALF_OPEN->CLOSED"}, transitions)
}

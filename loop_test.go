package svcinv

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventLoopRunOnceRemovesFinishedSteps(t *testing.T) {
	loop := NewEventLoop(0)
	assert.Equal(t, DefaultPollInterval, loop.Interval)

	polls := 0
	loop.AddPoll(func() bool {
		polls++
		return polls < 3
	})
	loop.AddPoll(func() bool { return false })

	assert.Equal(t, 2, loop.Pending())
	assert.Equal(t, 1, loop.RunOnce())
	assert.Equal(t, 1, loop.RunOnce())
	assert.Equal(t, 0, loop.RunOnce())
	assert.Equal(t, 3, polls)
	assert.Equal(t, 0, loop.RunOnce())
}

func TestEventLoopStepAddedDuringIterationRunsNextTime(t *testing.T) {
	loop := NewEventLoop(time.Millisecond)

	var order []string
	loop.Post(func() {
		order = append(order, "first")
		loop.Post(func() { order = append(order, "second") })
	})

	assert.Equal(t, 1, loop.RunOnce())
	assert.Equal(t, []string{"first"}, order)

	assert.Equal(t, 0, loop.RunOnce())
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestEventLoopRunStopsOnCancel(t *testing.T) {
	loop := NewEventLoop(time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	ran := make(chan struct{})
	loop.Post(func() { close(ran) })

	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx) }()

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("posted step never ran")
	}

	cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

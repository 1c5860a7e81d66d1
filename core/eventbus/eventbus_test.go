package eventbus

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBus_EmitOrder(t *testing.T) {
	bus := New(nil)

	var calls []string
	bus.On("topic", func(payload any) error {
		calls = append(calls, "first")
		return nil
	})
	bus.On("topic", func(payload any) error {
		calls = append(calls, "second")
		return nil
	})

	bus.Emit("topic", nil)
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestBus_HandlerFailureIsolation(t *testing.T) {
	bus := New(nil)

	var calls []string
	bus.On("topic", func(payload any) error {
		calls = append(calls, "before")
		return fmt.Errorf("handler error")
	})
	bus.On("topic", func(payload any) error {
		panic("handler panic")
	})
	bus.On("topic", func(payload any) error {
		calls = append(calls, "after")
		return nil
	})

	assert.NotPanics(t, func() {
		bus.Emit("topic", "payload")
	})
	assert.Equal(t, []string{"before", "after"}, calls)
}

func TestBus_PayloadDelivery(t *testing.T) {
	bus := New(nil)

	var got any
	bus.On("topic", func(payload any) error {
		got = payload
		return nil
	})

	bus.Emit("topic", 42)
	assert.Equal(t, 42, got)

	// Distinct topics do not cross-deliver.
	got = nil
	bus.Emit("other", 7)
	assert.Nil(t, got)
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := New(nil)

	count := 0
	_, unsub := bus.On("topic", func(payload any) error {
		count++
		return nil
	})
	id, _ := bus.On("topic", func(payload any) error {
		count++
		return nil
	})

	assert.Equal(t, 2, bus.ListenerCount("topic"))

	unsub()
	unsub() // Idempotent
	assert.Equal(t, 1, bus.ListenerCount("topic"))

	bus.Off("topic", id)
	assert.Equal(t, 0, bus.ListenerCount("topic"))

	bus.Emit("topic", nil)
	assert.Equal(t, 0, count)
}

func TestBus_Clear(t *testing.T) {
	bus := New(nil)

	bus.On("a", func(payload any) error { return nil })
	bus.On("b", func(payload any) error { return nil })

	bus.Clear()
	assert.Equal(t, 0, bus.ListenerCount("a"))
	assert.Equal(t, 0, bus.ListenerCount("b"))
}

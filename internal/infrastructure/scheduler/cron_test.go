package scheduler

import (
	"testing"

	"remindbot/internal/pkg/logger"
)

func TestGuardRunsTick(t *testing.T) {
	s := NewScheduler(logger.New("scheduler-test"))

	ran := false
	s.guard(func() { ran = true })()

	if !ran {
		t.Error("expected the wrapped tick to run")
	}
}

func TestGuardRecoversPanickingTick(t *testing.T) {
	s := NewScheduler(logger.New("scheduler-test"))

	wrapped := s.guard(func() { panic("tick exploded") })

	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("a panicking tick must not escape the guard, got %v", r)
		}
	}()
	wrapped()

	// A later tick still runs after a panicking one.
	ran := false
	s.guard(func() { ran = true })()
	if !ran {
		t.Error("the tick after a panic must still run")
	}
}

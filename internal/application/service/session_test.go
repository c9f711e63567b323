package service

import (
	"sync"
	"testing"
	"time"

	"remindbot/internal/domain/constant"
)

func TestSessionStoreGetReturnsIdleByDefault(t *testing.T) {
	store := NewSessionStore(time.Minute)

	sess := store.Get(42)
	if sess.State != constant.StateIdle {
		t.Errorf("expected idle session for unknown chat, got %v", sess.State)
	}
}

func TestSessionStorePutAndGet(t *testing.T) {
	store := NewSessionStore(time.Minute)

	store.Put(42, &Session{State: constant.StateAwaitingTitle, Title: "draft"})

	sess := store.Get(42)
	if sess.State != constant.StateAwaitingTitle || sess.Title != "draft" {
		t.Errorf("unexpected session: %+v", sess)
	}
}

func TestSessionStoreClear(t *testing.T) {
	store := NewSessionStore(time.Minute)

	store.Put(42, &Session{State: constant.StateAwaitingTime})
	store.Clear(42)

	if got := store.Get(42).State; got != constant.StateIdle {
		t.Errorf("expected idle after clear, got %v", got)
	}
}

func TestSessionStoreTTLExpiry(t *testing.T) {
	store := NewSessionStore(30 * time.Minute)

	clock := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return clock }

	store.Put(42, &Session{State: constant.StateAwaitingMessage})

	// Just inside the TTL the session survives.
	clock = clock.Add(30 * time.Minute)
	if got := store.Get(42).State; got != constant.StateAwaitingMessage {
		t.Errorf("session inside the TTL must survive, got %v", got)
	}

	// Get does not refresh the clock, so one more minute tips it over.
	clock = clock.Add(time.Minute)
	if got := store.Get(42).State; got != constant.StateIdle {
		t.Errorf("expected idle after expiry, got %v", got)
	}
}

func TestSessionStorePutRefreshesExpiry(t *testing.T) {
	store := NewSessionStore(30 * time.Minute)

	clock := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return clock }

	store.Put(42, &Session{State: constant.StateAwaitingTitle})

	clock = clock.Add(20 * time.Minute)
	sess := store.Get(42)
	sess.State = constant.StateAwaitingTime
	store.Put(42, sess)

	// 20 more minutes is past the original deadline but inside the
	// refreshed one.
	clock = clock.Add(20 * time.Minute)
	if got := store.Get(42).State; got != constant.StateAwaitingTime {
		t.Errorf("put must refresh the expiry clock, got %v", got)
	}
}

func TestSessionStoreSessionsAreIndependent(t *testing.T) {
	store := NewSessionStore(time.Minute)

	store.Put(1, &Session{State: constant.StateAwaitingTitle})
	store.Put(2, &Session{State: constant.StateAwaitingDeleteSelection})
	store.Clear(1)

	if got := store.Get(1).State; got != constant.StateIdle {
		t.Errorf("chat 1 should be idle, got %v", got)
	}
	if got := store.Get(2).State; got != constant.StateAwaitingDeleteSelection {
		t.Errorf("chat 2 must be unaffected, got %v", got)
	}
}

func TestAcquireSerializesPerChat(t *testing.T) {
	store := NewSessionStore(time.Minute)

	release := store.Acquire(42)

	acquired := make(chan struct{})
	go func() {
		r := store.Acquire(42)
		close(acquired)
		r()
	}()

	select {
	case <-acquired:
		t.Fatal("second acquire must block until the first releases")
	case <-time.After(20 * time.Millisecond):
	}

	release()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("second acquire should proceed after release")
	}
}

func TestAcquireDifferentChatsDoNotContend(t *testing.T) {
	store := NewSessionStore(time.Minute)

	release := store.Acquire(1)
	defer release()

	done := make(chan struct{})
	go func() {
		r := store.Acquire(2)
		r()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("acquiring a different chat must not block")
	}
}

func TestAcquireDropsIdleLockEntries(t *testing.T) {
	store := NewSessionStore(time.Minute)

	release := store.Acquire(42)
	store.mu.Lock()
	held := len(store.locks)
	store.mu.Unlock()
	if held != 1 {
		t.Fatalf("expected one lock entry while held, got %d", held)
	}

	release()
	store.mu.Lock()
	idle := len(store.locks)
	store.mu.Unlock()
	if idle != 0 {
		t.Errorf("released lock entries must be pruned, got %d", idle)
	}
}

func TestAcquireConcurrentCounter(t *testing.T) {
	store := NewSessionStore(time.Minute)

	var wg sync.WaitGroup
	counter := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r := store.Acquire(7)
			counter++
			r()
		}()
	}
	wg.Wait()

	if counter != 50 {
		t.Errorf("expected 50 serialized increments, got %d", counter)
	}
}

package taskx_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Abraxas-365/taskx/pkg/taskx"
)

// --- Future tests ---

func TestFuture_StartsEagerly(t *testing.T) {
	started := make(chan struct{})
	f := taskx.Start(context.Background(), func(ctx context.Context) (int, error) {
		close(started)
		return 5, nil
	})

	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("task did not start eagerly")
	}

	v, err := f.Wait(context.Background())
	if err != nil || v != 5 {
		t.Fatalf("expected 5, got %d (err %v)", v, err)
	}
}

func TestFuture_EveryWaitSeesSameOutcome(t *testing.T) {
	f := taskx.Start(context.Background(), taskx.Pure(11))
	for range 3 {
		v, err := f.Wait(context.Background())
		if err != nil || v != 11 {
			t.Fatalf("expected 11, got %d (err %v)", v, err)
		}
	}
}

func TestFuture_AbandonedWaitDoesNotSettle(t *testing.T) {
	release := make(chan struct{})
	f := taskx.Start(context.Background(), func(ctx context.Context) (int, error) {
		<-release
		return 1, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := f.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if f.Settled() {
		t.Fatal("abandoning a wait must not settle the future")
	}

	close(release)
	v, err := f.Wait(context.Background())
	if err != nil || v != 1 {
		t.Fatalf("expected 1, got %d (err %v)", v, err)
	}
	if !f.Settled() {
		t.Fatal("expected a settled future")
	}
}

func TestFuture_DoneChannel(t *testing.T) {
	f := taskx.Start(context.Background(), taskx.Pure("x"))

	select {
	case <-f.Done():
	case <-time.After(time.Second):
		t.Fatal("future never settled")
	}
}

func TestFuture_AwaitBridgesIntoComposition(t *testing.T) {
	f := taskx.Start(context.Background(), taskx.Pure(3))

	v, err := taskx.Map(f.Await(), func(n int) int { return n + 1 }).Run(context.Background())
	if err != nil || v != 4 {
		t.Fatalf("expected 4, got %d (err %v)", v, err)
	}
}

func TestFuture_PropagatesFailure(t *testing.T) {
	boom := errors.New("boom")
	f := taskx.Start(context.Background(), taskx.Fail[int](boom))

	if _, err := f.Wait(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

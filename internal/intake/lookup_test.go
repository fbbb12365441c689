package intake

import (
	"context"
	"testing"
	"time"
)

func TestLookupNewerCallSupersedesOlder(t *testing.T) {
	var l Lookup

	ctxA, a := l.Begin(context.Background(), time.Minute)
	ctxB, b := l.Begin(context.Background(), time.Minute)

	if ctxA.Err() == nil {
		t.Fatal("first lookup should be cancelled by the second")
	}
	if ctxB.Err() != nil {
		t.Fatalf("second lookup cancelled early: %v", ctxB.Err())
	}
	if l.Valid(a) {
		t.Fatal("superseded token still valid")
	}
	if !l.Valid(b) {
		t.Fatal("latest token should be valid")
	}

	l.Done(b)
	if ctxB.Err() == nil {
		t.Fatal("Done should release the context")
	}
	if !l.Valid(b) {
		t.Fatal("Done must not invalidate the token")
	}
}

func TestLookupCancel(t *testing.T) {
	var l Lookup

	ctx, tok := l.Begin(context.Background(), time.Minute)
	l.Cancel()

	if ctx.Err() == nil {
		t.Fatal("Cancel should abort the in-flight lookup")
	}
	if l.Valid(tok) {
		t.Fatal("Cancel should invalidate the token")
	}
}

func TestLookupTimeout(t *testing.T) {
	var l Lookup

	ctx, _ := l.Begin(context.Background(), 10*time.Millisecond)
	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("lookup context did not time out")
	}
	if ctx.Err() != context.DeadlineExceeded {
		t.Fatalf("err = %v, want deadline exceeded", ctx.Err())
	}
}

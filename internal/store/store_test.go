package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/synnergychain/stream-processor-sdk/internal/richvalue"
	"github.com/synnergychain/stream-processor-sdk/pkg/errs"
	"github.com/synnergychain/stream-processor-sdk/proto/processorpb"
)

// fakeSender records outbound DbRequests and optionally auto-resolves them
// against a session, mimicking the stream server's write path.
type fakeSender struct {
	mu       sync.Mutex
	requests []*processorpb.DbRequest
	sess     *Session
	respond  func(req *processorpb.DbRequest) *processorpb.DbResponse
}

func (f *fakeSender) SendDbRequest(processID uint64, req *processorpb.DbRequest) error {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	if f.respond == nil {
		return nil
	}
	resp := f.respond(req)
	if resp == nil {
		return nil
	}
	go func() { _ = f.sess.Resolve(resp) }()
	return nil
}

type account struct {
	ID      string `richvalue:"id"`
	Balance int64  `richvalue:"balance"`
}

func TestGetRoundTripsThroughResolve(t *testing.T) {
	f := &fakeSender{}
	sess := New(f, 16)
	f.sess = sess
	f.respond = func(req *processorpb.DbRequest) *processorpb.DbResponse {
		row, _ := richvalue.EncodeStruct(account{ID: "a1", Balance: 42})
		return &processorpb.DbResponse{
			OpId:  req.OpId,
			Value: &processorpb.DbResponse_EntityList{EntityList: &processorpb.EntityList{Rows: []*processorpb.RichValueStruct{row}}},
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	var out account
	if err := sess.Get(ctx, 1, "accounts", "a1", &out); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if out.Balance != 42 {
		t.Fatalf("expected balance 42, got %d", out.Balance)
	}
}

func TestGetServesFromCacheOnSecondCall(t *testing.T) {
	f := &fakeSender{}
	sess := New(f, 16)
	f.sess = sess
	calls := 0
	f.respond = func(req *processorpb.DbRequest) *processorpb.DbResponse {
		calls++
		row, _ := richvalue.EncodeStruct(account{ID: "a1", Balance: 7})
		return &processorpb.DbResponse{
			OpId:  req.OpId,
			Value: &processorpb.DbResponse_EntityList{EntityList: &processorpb.EntityList{Rows: []*processorpb.RichValueStruct{row}}},
		}
	}

	ctx := context.Background()
	var out account
	if err := sess.Get(ctx, 1, "accounts", "a1", &out); err != nil {
		t.Fatalf("first get: %v", err)
	}
	if err := sess.Get(ctx, 1, "accounts", "a1", &out); err != nil {
		t.Fatalf("second get: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected cache hit to avoid a second request, sender called %d times", calls)
	}
}

// TestGetReportsNotFoundKind asserts spec.md §4.4's get<T>(id) ->
// Some(T)/None contract: a zero-row response comes back as an error of kind
// errs.KindNotFound, which callers tell apart from a real failure via
// errs.KindOf, not a blanket discard of err.
func TestGetReportsNotFoundKind(t *testing.T) {
	f := &fakeSender{}
	sess := New(f, 16)
	f.sess = sess
	f.respond = func(req *processorpb.DbRequest) *processorpb.DbResponse {
		return &processorpb.DbResponse{OpId: req.OpId, Value: &processorpb.DbResponse_Empty{Empty: true}}
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	var out account
	err := sess.Get(ctx, 1, "accounts", "missing", &out)
	if err == nil {
		t.Fatalf("expected a not-found sentinel error, got nil")
	}
	if errs.KindOf(err) != errs.KindNotFound {
		t.Fatalf("expected errs.KindNotFound, got %v (%v)", errs.KindOf(err), err)
	}
	if out != (account{}) {
		t.Fatalf("expected out to stay zero-valued on a not-found response, got %+v", out)
	}
}

func TestUpsertAndDeleteAreFireAndForget(t *testing.T) {
	f := &fakeSender{}
	sess := New(f, 16)
	f.sess = sess

	if err := sess.Upsert(1, "accounts", account{ID: "a2", Balance: 1}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := sess.Delete(1, "accounts", "a2"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(f.requests) != 2 {
		t.Fatalf("expected 2 fire-and-forget requests, got %d", len(f.requests))
	}
	if f.requests[0].Op != processorpb.DbOp_UPSERT || f.requests[1].Op != processorpb.DbOp_DELETE {
		t.Fatalf("unexpected op sequence: %+v", f.requests)
	}
}

func TestResetCancelsPendingGets(t *testing.T) {
	f := &fakeSender{} // never responds
	sess := New(f, 0)
	f.sess = sess

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		var out account
		done <- sess.Get(ctx, 1, "accounts", "missing", &out)
	}()

	time.Sleep(20 * time.Millisecond)
	sess.Reset()

	select {
	case err := <-done:
		if err == nil {
			t.Fatalf("expected Reset to deliver an error to the pending Get")
		}
	case <-time.After(time.Second):
		t.Fatalf("Get did not observe Reset")
	}
}

func TestResolveOnUnknownOpIDIsOrphan(t *testing.T) {
	f := &fakeSender{}
	sess := New(f, 0)
	err := sess.Resolve(&processorpb.DbResponse{OpId: 999, Value: &processorpb.DbResponse_Empty{Empty: true}})
	if err == nil {
		t.Fatalf("expected orphan-response error for unknown op id")
	}
}

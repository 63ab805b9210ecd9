package runtimectx

import (
	"context"
	"testing"

	"github.com/synnergychain/stream-processor-sdk/internal/store"
	"github.com/synnergychain/stream-processor-sdk/proto/processorpb"
)

type noopSender struct{}

func (noopSender) SendDbRequest(processID uint64, req *processorpb.DbRequest) error { return nil }

func TestFromPanicsWithoutContext(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected From to panic when no Context is attached")
		}
	}()
	From(context.Background())
}

func TestWithContextRoundTrips(t *testing.T) {
	sess := store.New(noopSender{}, 0)
	rc := New(7, &processorpb.RecordMetadata{ChainId: "1"}, sess, make(chan *processorpb.ProcessBindingsResponse, 1))
	ctx := WithContext(context.Background(), rc)
	got := From(ctx)
	if got.ProcessID != 7 {
		t.Fatalf("expected process id 7, got %d", got.ProcessID)
	}
}

func TestCounterAddEmitsOnOutboundChannel(t *testing.T) {
	sess := store.New(noopSender{}, 0)
	out := make(chan *processorpb.ProcessBindingsResponse, 1)
	rc := New(3, &processorpb.RecordMetadata{ChainId: "1"}, sess, out)

	if err := rc.CounterAdd(context.Background(), "hits", int64(1), nil); err != nil {
		t.Fatalf("CounterAdd: %v", err)
	}

	select {
	case resp := <-out:
		if resp.ProcessId != 3 {
			t.Fatalf("expected process id 3, got %d", resp.ProcessId)
		}
		sample, ok := resp.Value.(*processorpb.ProcessBindingsResponse_TimeseriesSample)
		if !ok {
			t.Fatalf("expected a timeseries sample, got %T", resp.Value)
		}
		if sample.TimeseriesSample.Name != "hits" {
			t.Fatalf("unexpected sample name: %s", sample.TimeseriesSample.Name)
		}
	default:
		t.Fatalf("expected a message on the outbound channel")
	}
}

func TestReportErrorAndMarkConfigUpdated(t *testing.T) {
	sess := store.New(noopSender{}, 0)
	rc := New(1, nil, sess, make(chan *processorpb.ProcessBindingsResponse, 1))

	if rc.ConfigUpdated() {
		t.Fatalf("expected ConfigUpdated to start false")
	}
	rc.MarkConfigUpdated()
	if !rc.ConfigUpdated() {
		t.Fatalf("expected ConfigUpdated to be true after MarkConfigUpdated")
	}

	if rc.Err() != nil {
		t.Fatalf("expected Err to start nil")
	}
	sampleErr := context.DeadlineExceeded
	rc.ReportError(sampleErr)
	if rc.Err() != sampleErr {
		t.Fatalf("expected ReportError to be retrievable via Err")
	}
}

// Package runtimectx carries the per-record handler-facing runtime context
// described in spec.md §9. Go has no task-local storage equivalent to the
// reference runtime's thread-local handle, so the context travels as an
// explicit context.Context value, per spec.md §9's documented escape hatch
// for languages without task-local storage.
package runtimectx

import (
	"context"

	"github.com/synnergychain/stream-processor-sdk/internal/metrics"
	"github.com/synnergychain/stream-processor-sdk/internal/store"
	"github.com/synnergychain/stream-processor-sdk/proto/processorpb"
)

type ctxKey struct{}

// Context is the handler-facing runtime context for a single record's
// processing. One Context is constructed per dispatched record and lives for
// that record's goroutine only.
type Context struct {
	ProcessID uint64
	Metadata  *processorpb.RecordMetadata
	Store     *store.Session
	Emitter   *metrics.Emitter

	outbound chan<- *processorpb.ProcessBindingsResponse

	configUpdated bool
	err           error
}

// New builds a Context for a single record's handler dispatch. outbound is
// the session's shared send channel; the stream server owns draining it.
func New(processID uint64, md *processorpb.RecordMetadata, sess *store.Session, outbound chan<- *processorpb.ProcessBindingsResponse) *Context {
	return &Context{
		ProcessID: processID,
		Metadata:  md,
		Store:     sess,
		Emitter:   metrics.NewEmitter(metrics.RecordMetadataLabels(md)),
		outbound:  outbound,
	}
}

// WithContext attaches rc to ctx for retrieval by From.
func WithContext(ctx context.Context, rc *Context) context.Context {
	return context.WithValue(ctx, ctxKey{}, rc)
}

// From retrieves the Context attached by WithContext. It panics if none is
// present: handler code must always run inside a dispatched record's
// context, and a missing one is a programming error in the dispatcher, not a
// recoverable handler condition.
func From(ctx context.Context) *Context {
	rc, ok := ctx.Value(ctxKey{}).(*Context)
	if !ok {
		panic("runtimectx: no Context in ctx")
	}
	return rc
}

// CounterAdd emits a COUNTER_ADD timeseries sample for the current record.
func (c *Context) CounterAdd(ctx context.Context, name string, delta any, labels map[string]string) error {
	sample, err := c.Emitter.CounterAdd(name, delta, labels)
	if err != nil {
		return err
	}
	return c.emit(ctx, sample)
}

// CounterSub emits a COUNTER_SUB timeseries sample for the current record.
func (c *Context) CounterSub(ctx context.Context, name string, delta any, labels map[string]string) error {
	sample, err := c.Emitter.CounterSub(name, delta, labels)
	if err != nil {
		return err
	}
	return c.emit(ctx, sample)
}

// Gauge emits a GAUGE timeseries sample for the current record.
func (c *Context) Gauge(ctx context.Context, name string, value any, labels map[string]string) error {
	sample, err := c.Emitter.Gauge(name, value, labels)
	if err != nil {
		return err
	}
	return c.emit(ctx, sample)
}

func (c *Context) emit(ctx context.Context, sample *processorpb.TimeseriesSample) error {
	sample.Metadata = c.Metadata
	resp := &processorpb.ProcessBindingsResponse{
		ProcessId: c.ProcessID,
		Value:     &processorpb.ProcessBindingsResponse_TimeseriesSample{TimeseriesSample: sample},
	}
	select {
	case c.outbound <- resp:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// MarkConfigUpdated records that this record's handler triggered a template
// configuration change, surfaced to the indexer via the session's
// TerminalResult (spec.md §4.4).
func (c *Context) MarkConfigUpdated() { c.configUpdated = true }

// ConfigUpdated reports whether MarkConfigUpdated was called for this record.
func (c *Context) ConfigUpdated() bool { return c.configUpdated }

// ReportError records a non-fatal handler error to surface on the record's
// TerminalResult rather than aborting the session.
func (c *Context) ReportError(err error) { c.err = err }

// Err returns the error recorded via ReportError, if any.
func (c *Context) Err() error { return c.err }

// Get fetches a single entity by id into out, scoped to this record's
// process id. A missing entity reports errs.KindOf(err) == errs.KindNotFound
// rather than a decode failure; see store.Session.Get.
func (c *Context) Get(ctx context.Context, table, id string, out any) error {
	return c.Store.Get(ctx, c.ProcessID, table, id, out)
}

// List issues a filtered page query, scoped to this record's process id.
func (c *Context) List(ctx context.Context, table string, filters []*processorpb.FilterClause, cursor string, pageSize int32) (*store.ListResult, error) {
	return c.Store.List(ctx, c.ProcessID, table, filters, cursor, pageSize)
}

// Upsert fire-and-forgets an insert/update, scoped to this record's process id.
func (c *Context) Upsert(table string, entity any) error {
	return c.Store.Upsert(c.ProcessID, table, entity)
}

// Delete fire-and-forgets a removal by id, scoped to this record's process id.
func (c *Context) Delete(table, id string) error {
	return c.Store.Delete(c.ProcessID, table, id)
}

// UpsertEntity fire-and-forgets an insert/update, taking the table name from
// the entity's own store.Entity contract rather than a caller-supplied
// string — the form entitygen-emitted setters call.
func (c *Context) UpsertEntity(entity store.Entity) error {
	return c.Store.UpsertEntity(c.ProcessID, entity)
}

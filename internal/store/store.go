// Package store implements the remote entity store client side of spec.md
// §4.4: get/list requests are matched to their DbResponse over the same
// bidirectional stream via a session-scoped operation id, while upsert and
// delete are fire-and-forget. A small read-through cache (grounded on the
// indexing-node/content-node caching shown across the teacher codebase)
// fronts get() calls within a session.
package store

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/synnergychain/stream-processor-sdk/internal/richvalue"
	"github.com/synnergychain/stream-processor-sdk/pkg/errs"
	"github.com/synnergychain/stream-processor-sdk/proto/processorpb"
)

// Sender is the subset of the stream server's send path the store needs to
// issue outbound DbRequest messages, framed under the record's process id so
// the driver can attribute the request. The stream package supplies the real
// implementation; tests supply a channel-backed fake.
type Sender interface {
	SendDbRequest(processID uint64, req *processorpb.DbRequest) error
}

// Entity is the contract entitygen-generated types satisfy: a
// richvalue-encodable struct (see richvalue.EncodeStruct's struct tags) that
// knows which table it belongs to.
type Entity interface {
	TableName() string
}

// Session is the per-process-session entity store client. One Session is
// created when a ProcessBindingsStream call opens and is torn down (via
// Reset) when that stream ends.
type Session struct {
	sender Sender
	nextOp uint64

	mu      sync.Mutex
	pending map[uint64]chan *processorpb.DbResponse

	cache *lru.Cache[string, *processorpb.RichValueStruct]
}

// New constructs a Session. cacheSize of 0 disables the read-through cache.
func New(sender Sender, cacheSize int) *Session {
	s := &Session{
		sender:  sender,
		pending: make(map[uint64]chan *processorpb.DbResponse),
	}
	if cacheSize > 0 {
		c, err := lru.New[string, *processorpb.RichValueStruct](cacheSize)
		if err == nil {
			s.cache = c
		}
	}
	return s
}

func (s *Session) allocOpID() uint64 {
	return atomic.AddUint64(&s.nextOp, 1)
}

func (s *Session) register(opID uint64) chan *processorpb.DbResponse {
	ch := make(chan *processorpb.DbResponse, 1)
	s.mu.Lock()
	s.pending[opID] = ch
	s.mu.Unlock()
	return ch
}

func (s *Session) unregister(opID uint64) {
	s.mu.Lock()
	delete(s.pending, opID)
	s.mu.Unlock()
}

// Resolve delivers an inbound DbResponse to the goroutine awaiting it. It
// reports errs.KindOrphanResponse if no request is pending for the response's
// op id (spec.md §4.4's boundary behavior for a response with no matching
// request).
func (s *Session) Resolve(resp *processorpb.DbResponse) error {
	s.mu.Lock()
	ch, ok := s.pending[resp.OpId]
	if ok {
		delete(s.pending, resp.OpId)
	}
	s.mu.Unlock()
	if !ok {
		return errs.New(errs.KindOrphanResponse, fmt.Sprintf("db response for unknown op id %d", resp.OpId))
	}
	ch <- resp
	return nil
}

// Reset cancels every pending get/list call, delivering errs.KindTransportClosed
// to each waiting goroutine, and returns the op-id counter to zero. Called
// when a session tears down.
func (s *Session) Reset() {
	s.mu.Lock()
	pending := s.pending
	s.pending = make(map[uint64]chan *processorpb.DbResponse)
	atomic.StoreUint64(&s.nextOp, 0)
	s.mu.Unlock()
	for _, ch := range pending {
		close(ch)
	}
}

func cacheKey(table string, id string) string { return table + "\x00" + id }

// Get fetches a single entity by id, populating out via richvalue.Decode. It
// consults the session's read-through cache before issuing a request.
//
// Get implements spec.md §4.4's get<T>(id) -> Some(T)/None contract: a
// missing entity is not a failure. Callers distinguish the two outcomes with
// errs.KindOf(err) == errs.KindNotFound rather than treating any non-nil
// error as fatal:
//
//	if err := sess.Get(ctx, pid, table, id, &out); err != nil {
//	    if errs.KindOf(err) == errs.KindNotFound {
//	        // out was left unmodified; id is unassigned.
//	    } else {
//	        return err
//	    }
//	}
func (s *Session) Get(ctx context.Context, processID uint64, table, id string, out any) error {
	if s.cache != nil {
		if row, ok := s.cache.Get(cacheKey(table, id)); ok {
			return richvalue.Decode(&processorpb.RichValue{Kind: &processorpb.RichValue_StructValue{StructValue: row}}, out)
		}
	}
	opID := s.allocOpID()
	ch := s.register(opID)
	req := &processorpb.DbRequest{OpId: opID, Op: processorpb.DbOp_GET, Table: table, Ids: []string{id}}
	if err := s.sender.SendDbRequest(processID, req); err != nil {
		s.unregister(opID)
		return errs.Wrap(errs.KindTransportClosed, err, "send get request")
	}
	resp, err := s.await(ctx, opID, ch)
	if err != nil {
		return err
	}
	rows, err := rowsOf(resp)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return errs.New(errs.KindNotFound, fmt.Sprintf("entity %s/%s not found", table, id))
	}
	if s.cache != nil {
		s.cache.Add(cacheKey(table, id), rows[0])
	}
	return richvalue.Decode(&processorpb.RichValue{Kind: &processorpb.RichValue_StructValue{StructValue: rows[0]}}, out)
}

// ListResult is a page of list() results plus the cursor for the next page,
// empty when there is no further page.
type ListResult struct {
	Rows       []*processorpb.RichValueStruct
	NextCursor string
}

// List issues a filtered page query. filters use the wire FilterClause shape
// (field, operator, richvalue-encoded operand).
func (s *Session) List(ctx context.Context, processID uint64, table string, filters []*processorpb.FilterClause, cursor string, pageSize int32) (*ListResult, error) {
	opID := s.allocOpID()
	ch := s.register(opID)
	req := &processorpb.DbRequest{
		OpId:     opID,
		Op:       processorpb.DbOp_LIST,
		Table:    table,
		Filters:  filters,
		Cursor:   cursor,
		PageSize: pageSize,
	}
	if err := s.sender.SendDbRequest(processID, req); err != nil {
		s.unregister(opID)
		return nil, errs.Wrap(errs.KindTransportClosed, err, "send list request")
	}
	resp, err := s.await(ctx, opID, ch)
	if err != nil {
		return nil, err
	}
	switch v := resp.Value.(type) {
	case *processorpb.DbResponse_EntityList:
		return &ListResult{Rows: v.EntityList.Rows, NextCursor: v.EntityList.NextCursor}, nil
	case *processorpb.DbResponse_Error:
		return nil, errs.New(errs.KindDecode, v.Error)
	default:
		return &ListResult{}, nil
	}
}

// Upsert fire-and-forgets an insert/update. entity must be richvalue-encodable
// as a struct (see richvalue.EncodeStruct).
func (s *Session) Upsert(processID uint64, table string, entity any) error {
	row, err := richvalue.EncodeStruct(entity)
	if err != nil {
		return err
	}
	req := &processorpb.DbRequest{Op: processorpb.DbOp_UPSERT, Table: table, Rows: []*processorpb.RichValueStruct{row}}
	if err := s.sender.SendDbRequest(processID, req); err != nil {
		return errs.Wrap(errs.KindTransportClosed, err, "send upsert request")
	}
	if s.cache != nil {
		if idField, ok := row.Fields["id"]; ok {
			if sv, ok := idField.Kind.(*processorpb.RichValue_StringValue); ok {
				s.cache.Add(cacheKey(table, sv.StringValue), row)
			}
		}
	}
	return nil
}

// UpsertEntity is Upsert with the table name taken from the Entity contract,
// the form entitygen-emitted setters call.
func (s *Session) UpsertEntity(processID uint64, entity Entity) error {
	return s.Upsert(processID, entity.TableName(), entity)
}

// Delete fire-and-forgets a removal by id.
func (s *Session) Delete(processID uint64, table, id string) error {
	req := &processorpb.DbRequest{Op: processorpb.DbOp_DELETE, Table: table, Ids: []string{id}}
	if err := s.sender.SendDbRequest(processID, req); err != nil {
		return errs.Wrap(errs.KindTransportClosed, err, "send delete request")
	}
	if s.cache != nil {
		s.cache.Remove(cacheKey(table, id))
	}
	return nil
}

func (s *Session) await(ctx context.Context, opID uint64, ch chan *processorpb.DbResponse) (*processorpb.DbResponse, error) {
	select {
	case resp, ok := <-ch:
		if !ok {
			return nil, errs.New(errs.KindTransportClosed, "session closed")
		}
		return resp, nil
	case <-ctx.Done():
		s.unregister(opID)
		return nil, errs.Wrap(errs.KindTimeout, ctx.Err(), "awaiting db response")
	}
}

func rowsOf(resp *processorpb.DbResponse) ([]*processorpb.RichValueStruct, error) {
	switch v := resp.Value.(type) {
	case *processorpb.DbResponse_EntityList:
		return v.EntityList.Rows, nil
	case *processorpb.DbResponse_Error:
		return nil, errs.New(errs.KindDecode, v.Error)
	case *processorpb.DbResponse_Empty:
		return nil, nil
	default:
		return nil, nil
	}
}

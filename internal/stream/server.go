// Package stream implements the bidirectional gRPC streaming server that
// multiplexes concurrent record-processing sessions over a single transport
// connection, per spec.md §4.7.
package stream

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
	spb "google.golang.org/genproto/googleapis/rpc/status"
	"google.golang.org/grpc/codes"

	"github.com/synnergychain/stream-processor-sdk/internal/registry"
	"github.com/synnergychain/stream-processor-sdk/internal/runtimectx"
	"github.com/synnergychain/stream-processor-sdk/internal/store"
	"github.com/synnergychain/stream-processor-sdk/internal/wire"
	"github.com/synnergychain/stream-processor-sdk/pkg/errs"
	"github.com/synnergychain/stream-processor-sdk/proto/processorpb"
)

// outboundBufferSize is the capacity of a session's outbound channel
// (spec.md §5's "bounded 1000-capacity outbound channel").
const outboundBufferSize = 1000

// defaultRecordTimeout is spec.md §4.7's default per-record timeout, used
// when Options.RecordTimeout is zero.
const defaultRecordTimeout = 600 * time.Second

// Options configures a Server.
type Options struct {
	// Manager is the plugin registry every session dispatches through.
	Manager *registry.Manager
	// RecordTimeout bounds a single record's handler dispatch. Configured
	// once at server start (spec.md's "configurable once" invariant).
	RecordTimeout time.Duration
	// MaxConcurrentRecords bounds the number of in-flight record goroutines
	// per session, enforced by a semaphore.Weighted.
	MaxConcurrentRecords int64
	// StoreCacheSize sizes each session's read-through entity cache.
	StoreCacheSize int
	// Execution describes the execution parameters surfaced by GetConfig.
	Execution *processorpb.ExecutionConfig
	// Schema is the optional schema document surfaced by GetConfig, set by
	// the hosting application; nil means GetConfig reports no schema.
	Schema *string

	Logger *logrus.Logger
}

func (o *Options) withDefaults() *Options {
	out := *o
	if out.RecordTimeout <= 0 {
		out.RecordTimeout = defaultRecordTimeout
	}
	if out.MaxConcurrentRecords <= 0 {
		out.MaxConcurrentRecords = 64
	}
	if out.Logger == nil {
		out.Logger = logrus.StandardLogger()
	}
	if out.Execution == nil {
		out.Execution = &processorpb.ExecutionConfig{
			Sequential:     true,
			TimeoutSeconds: int64(out.RecordTimeout.Seconds()),
		}
	}
	return &out
}

// Server implements processorpb.ProcessorServiceServer.
type Server struct {
	opts *Options

	mu        sync.RWMutex
	templates map[string][]string

	activeSessions int64
}

// New constructs a Server. opts.Manager must not be nil.
func New(opts Options) *Server {
	if opts.Manager == nil {
		panic("stream: Options.Manager must not be nil")
	}
	return &Server{
		opts:      opts.withDefaults(),
		templates: make(map[string][]string),
	}
}

// Start implements processorpb.ProcessorServiceServer. It records the
// driver's initial template set and acknowledges.
func (s *Server) Start(ctx context.Context, req *processorpb.StartRequest) (*processorpb.StartResponse, error) {
	s.mu.Lock()
	s.templates["*"] = req.Templates
	s.mu.Unlock()
	return &processorpb.StartResponse{Accepted: true}, nil
}

// UpdateTemplates implements processorpb.ProcessorServiceServer, hot-swapping
// the template set for one chain id.
func (s *Server) UpdateTemplates(ctx context.Context, req *processorpb.UpdateTemplatesRequest) (*processorpb.Empty, error) {
	s.mu.Lock()
	s.templates[req.ChainId] = req.Templates
	s.mu.Unlock()
	return &processorpb.Empty{}, nil
}

// GetConfig implements processorpb.ProcessorServiceServer, walking the
// registered plugins to assemble the indexer's subscription configuration
// (spec.md §4.8).
func (s *Server) GetConfig(ctx context.Context, req *processorpb.Empty) (*processorpb.GetConfigResponse, error) {
	var contracts []*processorpb.ContractConfig
	for _, p := range s.opts.Manager.Plugins() {
		contracts = append(contracts, p.Configure()...)
	}
	return &processorpb.GetConfigResponse{
		Execution: s.opts.Execution,
		Contracts: contracts,
		Schema:    s.opts.Schema,
	}, nil
}

// ProcessBindingsStream implements processorpb.ProcessorServiceServer: the
// central per-connection demultiplexer. One call is one session (spec.md
// §4.4's "session == transport connection lived").
func (s *Server) ProcessBindingsStream(stream processorpb.ProcessorService_ProcessBindingsStreamServer) error {
	log := s.opts.Logger.WithField("component", "stream")

	atomic.AddInt64(&s.activeSessions, 1)
	defer atomic.AddInt64(&s.activeSessions, -1)

	sess := newSession(stream, s.opts, log)
	defer sess.store.Reset()

	var tasks errgroup.Group
	for {
		req, err := stream.Recv()
		if err != nil {
			break
		}
		switch v := req.Value.(type) {
		case *processorpb.ProcessBindingsRequest_RecordBinding:
			if err := sess.sem.Acquire(stream.Context(), 1); err != nil {
				log.WithError(err).Warn("stream: semaphore acquire failed, dropping record")
				continue
			}
			processID := req.ProcessId
			binding := v.RecordBinding
			tasks.Go(func() error {
				defer sess.sem.Release(1)
				sess.processRecord(stream.Context(), processID, binding)
				return nil
			})
		case *processorpb.ProcessBindingsRequest_DbResponse:
			if rerr := sess.store.Resolve(v.DbResponse); rerr != nil {
				log.WithError(rerr).Debug("stream: dropped orphan db response")
			}
		case *processorpb.ProcessBindingsRequest_StartSignal:
			// reserved, no-op per spec.md §4.7.
		default:
			log.Warn("stream: inbound message with no recognized payload")
		}
	}

	_ = tasks.Wait()
	return nil
}

// session is the per-connection state a ProcessBindingsStream call owns.
type session struct {
	stream processorpb.ProcessorService_ProcessBindingsStreamServer
	opts   *Options
	log    *logrus.Entry

	sem      *semaphore.Weighted
	outbound chan *processorpb.ProcessBindingsResponse
	store    *store.Session

	writerDone chan struct{}
}

func newSession(stream processorpb.ProcessorService_ProcessBindingsStreamServer, opts *Options, log *logrus.Entry) *session {
	s := &session{
		stream:     stream,
		opts:       opts,
		log:        log,
		sem:        semaphore.NewWeighted(opts.MaxConcurrentRecords),
		outbound:   make(chan *processorpb.ProcessBindingsResponse, outboundBufferSize),
		writerDone: make(chan struct{}),
	}
	s.store = store.New(s, opts.StoreCacheSize)
	go s.writeLoop()
	return s
}

// writeLoop serializes every outbound write for the connection: ordering
// within a process id follows the order of channel sends (spec.md §5).
func (s *session) writeLoop() {
	defer close(s.writerDone)
	for resp := range s.outbound {
		if err := s.stream.Send(resp); err != nil {
			s.log.WithError(err).Warn("stream: send failed, peer likely gone")
			return
		}
	}
}

// SendDbRequest implements store.Sender.
func (s *session) SendDbRequest(processID uint64, req *processorpb.DbRequest) error {
	resp := &processorpb.ProcessBindingsResponse{
		ProcessId: processID,
		Value:     &processorpb.ProcessBindingsResponse_DbRequest{DbRequest: req},
	}
	select {
	case s.outbound <- resp:
		return nil
	case <-s.writerDone:
		return errs.New(errs.KindTransportClosed, "outbound stream closed")
	}
}

// processRecord dispatches one record binding: exactly one terminal-result is
// emitted for its process id before this function returns, per spec.md's
// first invariant.
func (s *session) processRecord(parent context.Context, processID uint64, binding *processorpb.RecordBinding) {
	ctx, cancel := context.WithTimeout(parent, s.opts.RecordTimeout)
	defer cancel()

	result := s.dispatch(ctx, processID, binding)

	resp := &processorpb.ProcessBindingsResponse{
		ProcessId: processID,
		Value:     &processorpb.ProcessBindingsResponse_TerminalResult{TerminalResult: result},
	}
	select {
	case s.outbound <- resp:
	case <-s.writerDone:
	}
}

func (s *session) dispatch(ctx context.Context, processID uint64, binding *processorpb.RecordBinding) (result *processorpb.TerminalResult) {
	defer func() {
		if r := recover(); r != nil {
			perr := errs.New(errs.KindPanic, fmt.Sprintf("handler panic: %v", r))
			s.log.WithField("process_id", processID).WithError(perr).Error("stream: recovered handler panic")
			result = &processorpb.TerminalResult{Error: perr.Error(), Status: statusOf(perr)}
		}
	}()

	record, err := wire.FromBinding(binding)
	if err != nil {
		return &processorpb.TerminalResult{Error: err.Error(), Status: statusOf(err)}
	}

	rc := runtimectx.New(processID, record.Metadata(), s.store, s.outbound)
	ctx = runtimectx.WithContext(ctx, rc)

	if err := s.opts.Manager.Dispatch(ctx, record, rc); err != nil {
		if ctx.Err() != nil && (errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)) {
			err = errs.Wrap(errs.KindTimeout, err, "record handler deadline exceeded")
		}
		rc.ReportError(err)
	}

	return &processorpb.TerminalResult{
		ConfigUpdated: rc.ConfigUpdated(),
		Error:         errString(rc.Err()),
		Status:        statusOf(rc.Err()),
	}
}

// statusOf classifies err's errs.Kind into a google.rpc.Status so a driver
// can branch on Code rather than matching the Error string. It returns nil
// for a nil err, matching TerminalResult's success case (no Status set).
func statusOf(err error) *spb.Status {
	if err == nil {
		return nil
	}
	return &spb.Status{Code: int32(codeForKind(errs.KindOf(err))), Message: err.Error()}
}

func codeForKind(k errs.Kind) codes.Code {
	switch k {
	case errs.KindNotFound:
		return codes.NotFound
	case errs.KindTimeout:
		return codes.DeadlineExceeded
	case errs.KindTransportClosed:
		return codes.Unavailable
	case errs.KindDecode, errs.KindSchema:
		return codes.InvalidArgument
	case errs.KindPanic, errs.KindOrphanResponse:
		return codes.Internal
	default:
		return codes.Unknown
	}
}

// ActiveSessions reports the number of currently open ProcessBindingsStream
// connections, for the debug health endpoint.
func (s *Server) ActiveSessions() int64 {
	return atomic.LoadInt64(&s.activeSessions)
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// Shutdown runs every closer in order, aggregating their errors via
// multierr rather than stopping at the first failure, so a graceful-stop
// sequence (such as processord's gRPC server and debug server) always runs
// every teardown step and reports everything that went wrong.
func Shutdown(closers ...func() error) error {
	var err error
	for _, c := range closers {
		err = multierr.Append(err, c())
	}
	return err
}

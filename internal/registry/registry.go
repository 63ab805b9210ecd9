// Package registry implements the plugin and handler dispatch machinery of
// spec.md §4.5: one canonical Plugin owns each chain-family HandlerType tag,
// and a record's encoded HandlerIds select which of that plugin's handlers
// run, in order, for the record.
package registry

import (
	"context"
	"fmt"

	"github.com/synnergychain/stream-processor-sdk/internal/runtimectx"
	"github.com/synnergychain/stream-processor-sdk/internal/wire"
	"github.com/synnergychain/stream-processor-sdk/proto/processorpb"
)

// HandlerFunc processes one decoded record, with access to the handler-facing
// runtime context for emitting metrics and entity store calls.
type HandlerFunc func(ctx context.Context, record *wire.Record, rc *runtimectx.Context) error

// Plugin owns handler dispatch for the chain families it declares via
// CanHandle, and advertises the contract/filter configuration the indexer
// should subscribe to.
type Plugin interface {
	// Configure returns the contract filter configuration this plugin wants
	// the indexer to subscribe to, assembled for the GetConfig handshake.
	Configure() []*processorpb.ContractConfig
	// CanHandle reports whether this plugin owns the given handler type.
	CanHandle(ht processorpb.HandlerType) bool
	// Process invokes handler idx against record.
	Process(ctx context.Context, idx int64, record *wire.Record, rc *runtimectx.Context) error
}

// knownHandlerTypes enumerates every HandlerType a plugin can claim.
var knownHandlerTypes = []processorpb.HandlerType{
	processorpb.HandlerType_ETH_LOG,
	processorpb.HandlerType_ETH_BLOCK,
	processorpb.HandlerType_ETH_TX,
}

// Manager is the process-wide registry of plugins, one per HandlerType.
type Manager struct {
	plugins map[processorpb.HandlerType]Plugin
}

// NewManager constructs an empty Manager.
func NewManager() *Manager {
	return &Manager{plugins: make(map[processorpb.HandlerType]Plugin)}
}

// Register installs plugin as the canonical handler for every HandlerType it
// claims via CanHandle. It panics if a type already has an owner: exactly
// one plugin per chain family is a build-time invariant (spec.md §4.5),
// not something a running server should tolerate or recover from.
func (m *Manager) Register(plugin Plugin) {
	for _, ht := range knownHandlerTypes {
		if !plugin.CanHandle(ht) {
			continue
		}
		if _, exists := m.plugins[ht]; exists {
			panic(fmt.Sprintf("registry: handler type %s already has a registered plugin", ht))
		}
		m.plugins[ht] = plugin
	}
}

// Dispatch runs every handler named in record.HandlerIDs, in order, against
// the plugin registered for record.HandlerType, on the calling goroutine
// (the record's task). It stops and returns the first handler error, per
// spec.md's sequential per-record dispatch invariant.
func (m *Manager) Dispatch(ctx context.Context, record *wire.Record, rc *runtimectx.Context) error {
	plugin, ok := m.plugins[record.HandlerType]
	if !ok {
		return fmt.Errorf("registry: no plugin registered for handler type %s", record.HandlerType)
	}
	for _, idx := range record.HandlerIDs {
		if err := plugin.Process(ctx, idx, record, rc); err != nil {
			return err
		}
	}
	return nil
}

// Plugins returns the distinct set of registered plugins, for config
// generation (GetConfig walks each plugin's declared filters exactly once).
func (m *Manager) Plugins() []Plugin {
	seen := make(map[Plugin]struct{}, len(m.plugins))
	out := make([]Plugin, 0, len(m.plugins))
	for _, p := range m.plugins {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

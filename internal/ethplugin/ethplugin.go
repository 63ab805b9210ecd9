// Package ethplugin adapts the registry.Plugin contract to Ethereum-family
// records: ETH_LOG, ETH_BLOCK, and ETH_TX. It is the one concrete plugin
// shipped with the SDK, the Go expression of the chain-specific adapter
// pattern seen in the core package's network adapters.
package ethplugin

import (
	"context"
	"fmt"

	"github.com/synnergychain/stream-processor-sdk/internal/runtimectx"
	"github.com/synnergychain/stream-processor-sdk/internal/wire"
	"github.com/synnergychain/stream-processor-sdk/proto/processorpb"
)

// Address is a 20-byte Ethereum account or contract address, matching the
// fixed-width representation already used across the codebase for on-chain
// identifiers rather than pulling in a dedicated chain-types dependency.
type Address [20]byte

// Hash is a 32-byte Keccak/SHA3 digest (block hash, tx hash, topic hash).
type Hash [32]byte

// LogHandler processes a decoded ETH_LOG record.
type LogHandler func(ctx context.Context, rc *runtimectx.Context, log *processorpb.EthLogPayload) error

// BlockHandler processes a decoded ETH_BLOCK record.
type BlockHandler func(ctx context.Context, rc *runtimectx.Context, block *processorpb.EthBlockPayload) error

// TxHandler processes a decoded ETH_TX record.
type TxHandler func(ctx context.Context, rc *runtimectx.Context, tx *processorpb.EthTransactionPayload) error

// Plugin is the concrete registry.Plugin for the Ethereum chain family. Each
// slot index corresponds to the HandlerIds a binding carries: a contract
// filter registered at index N routes to the handler at index N.
type Plugin struct {
	contracts []*processorpb.ContractConfig

	logHandlers   []LogHandler
	blockHandlers []BlockHandler
	txHandlers    []TxHandler
}

// New constructs an empty Ethereum plugin.
func New() *Plugin {
	return &Plugin{}
}

// RegisterLogFilter adds a log-topic filter plus its handler, returning the
// handler index to reference from a FilterDescriptor/ContractConfig.
func (p *Plugin) RegisterLogFilter(cfg *processorpb.ContractConfig, handler LogHandler) int64 {
	p.contracts = append(p.contracts, cfg)
	p.logHandlers = append(p.logHandlers, handler)
	return int64(len(p.logHandlers) - 1)
}

// RegisterBlockHandler adds a block handler, returning its index.
func (p *Plugin) RegisterBlockHandler(handler BlockHandler) int64 {
	p.blockHandlers = append(p.blockHandlers, handler)
	return int64(len(p.blockHandlers) - 1)
}

// RegisterTxHandler adds a transaction handler, returning its index.
func (p *Plugin) RegisterTxHandler(handler TxHandler) int64 {
	p.txHandlers = append(p.txHandlers, handler)
	return int64(len(p.txHandlers) - 1)
}

// Configure implements registry.Plugin.
func (p *Plugin) Configure() []*processorpb.ContractConfig { return p.contracts }

// CanHandle implements registry.Plugin.
func (p *Plugin) CanHandle(ht processorpb.HandlerType) bool {
	switch ht {
	case processorpb.HandlerType_ETH_LOG, processorpb.HandlerType_ETH_BLOCK, processorpb.HandlerType_ETH_TX:
		return true
	default:
		return false
	}
}

// Process implements registry.Plugin, dispatching idx against the handler
// slice matching the record's payload kind.
func (p *Plugin) Process(ctx context.Context, idx int64, record *wire.Record, rc *runtimectx.Context) error {
	switch record.HandlerType {
	case processorpb.HandlerType_ETH_LOG:
		if idx < 0 || int(idx) >= len(p.logHandlers) {
			return fmt.Errorf("ethplugin: no log handler at index %d", idx)
		}
		if record.EthLog == nil {
			return fmt.Errorf("ethplugin: record carries no eth_log payload")
		}
		return p.logHandlers[idx](ctx, rc, record.EthLog)
	case processorpb.HandlerType_ETH_BLOCK:
		if idx < 0 || int(idx) >= len(p.blockHandlers) {
			return fmt.Errorf("ethplugin: no block handler at index %d", idx)
		}
		if record.EthBlock == nil {
			return fmt.Errorf("ethplugin: record carries no eth_block payload")
		}
		return p.blockHandlers[idx](ctx, rc, record.EthBlock)
	case processorpb.HandlerType_ETH_TX:
		if idx < 0 || int(idx) >= len(p.txHandlers) {
			return fmt.Errorf("ethplugin: no tx handler at index %d", idx)
		}
		if record.EthTx == nil {
			return fmt.Errorf("ethplugin: record carries no eth_tx payload")
		}
		return p.txHandlers[idx](ctx, rc, record.EthTx)
	default:
		return fmt.Errorf("ethplugin: unsupported handler type %s", record.HandlerType)
	}
}

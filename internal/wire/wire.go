// Package wire adapts the generated processorpb record types into the
// typed, chain-family-specific shapes handlers actually work with, per
// spec.md §4.1/§4.5.
package wire

import (
	"fmt"

	"github.com/synnergychain/stream-processor-sdk/proto/processorpb"
)

// Record is the decoded, handler-facing view of one inbound RecordBinding.
type Record struct {
	ChainID     string
	HandlerType processorpb.HandlerType
	HandlerIDs  []int64

	EthLog   *processorpb.EthLogPayload
	EthBlock *processorpb.EthBlockPayload
	EthTx    *processorpb.EthTransactionPayload
}

// Metadata derives the immutable RecordMetadata shared across every outbound
// message for this record, per spec.md §4.1.
func (r *Record) Metadata() *processorpb.RecordMetadata {
	md := &processorpb.RecordMetadata{ChainId: r.ChainID}
	switch {
	case r.EthLog != nil:
		md.Address = r.EthLog.Address
		md.BlockNumber = r.EthLog.BlockNumber
		md.TransactionHash = r.EthLog.TxHash
		md.TransactionIdx = r.EthLog.TxIndex
		md.LogIndex = r.EthLog.LogIndex
	case r.EthBlock != nil:
		md.BlockNumber = r.EthBlock.Number
	case r.EthTx != nil:
		md.Address = r.EthTx.From
		md.BlockNumber = r.EthTx.BlockNumber
		md.TransactionHash = r.EthTx.Hash
		md.TransactionIdx = r.EthTx.TxIndex
	}
	return md
}

// FromBinding adapts a wire RecordBinding into a Record.
func FromBinding(b *processorpb.RecordBinding) (*Record, error) {
	r := &Record{
		ChainID:     b.ChainId,
		HandlerType: b.HandlerType,
		HandlerIDs:  b.HandlerIds,
	}
	switch v := b.Data.(type) {
	case *processorpb.RecordBinding_EthLog:
		r.EthLog = v.EthLog
	case *processorpb.RecordBinding_EthBlock:
		r.EthBlock = v.EthBlock
	case *processorpb.RecordBinding_EthTx:
		r.EthTx = v.EthTx
	default:
		return nil, fmt.Errorf("wire: record binding for chain %s carries no payload", b.ChainId)
	}
	return r, nil
}

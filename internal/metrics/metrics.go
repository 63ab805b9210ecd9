// Package metrics implements the attribute normalization and timeseries
// sample construction described in spec.md §4.6, independent of storage: it
// turns a handler's emitted counter/gauge calls into wire-ready
// processorpb.TimeseriesSample values for internal/stream to forward.
package metrics

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/synnergychain/stream-processor-sdk/internal/richvalue"
	"github.com/synnergychain/stream-processor-sdk/proto/processorpb"
)

// maxLabelKeyLen is the cap applied to normalized attribute keys.
const maxLabelKeyLen = 128

// NormalizeLabelKey rewrites a handler-supplied attribute key per spec.md
// §4.6: non-alphanumeric runs collapse to a single underscore, the result is
// capped at 128 characters, and a key that collides with the reserved word
// "labels" is suffixed with an underscore.
func NormalizeLabelKey(key string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range key {
		alnum := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if alnum {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	out := b.String()
	if len(out) > maxLabelKeyLen {
		out = out[:maxLabelKeyLen]
	}
	if out == "labels" {
		out = out + "_"
	}
	return out
}

// NormalizeLabels applies NormalizeLabelKey to every key of a label set. When
// two raw keys normalize to the same name only one of their values is kept,
// and which one is not defined.
func NormalizeLabels(labels map[string]string) map[string]string {
	if len(labels) == 0 {
		return nil
	}
	out := make(map[string]string, len(labels))
	for k, v := range labels {
		out[NormalizeLabelKey(k)] = v
	}
	return out
}

// Emitter builds wire-ready TimeseriesSample messages. Handlers reach it
// through the runtimectx.Context rather than constructing samples directly.
type Emitter struct {
	baseLabels map[string]string
}

// NewEmitter constructs an Emitter carrying metadata-derived base labels that
// are merged under every sample (record address, chain id, block number,
// etc., per spec.md §4.6).
func NewEmitter(baseLabels map[string]string) *Emitter {
	return &Emitter{baseLabels: NormalizeLabels(baseLabels)}
}

func (e *Emitter) build(name string, kind processorpb.MetricKind, value any, labels map[string]string) (*processorpb.TimeseriesSample, error) {
	rv, err := richvalue.Encode(value)
	if err != nil {
		return nil, err
	}
	merged := make(map[string]string, len(e.baseLabels)+len(labels))
	for k, v := range e.baseLabels {
		merged[k] = v
	}
	for k, v := range NormalizeLabels(labels) {
		merged[k] = v
	}
	return &processorpb.TimeseriesSample{
		Name:   name,
		Kind:   kind,
		Value:  rv,
		Labels: merged,
	}, nil
}

// CounterAdd builds a COUNTER_ADD sample.
func (e *Emitter) CounterAdd(name string, delta any, labels map[string]string) (*processorpb.TimeseriesSample, error) {
	return e.build(name, processorpb.MetricKind_COUNTER_ADD, delta, labels)
}

// CounterSub builds a COUNTER_SUB sample.
func (e *Emitter) CounterSub(name string, delta any, labels map[string]string) (*processorpb.TimeseriesSample, error) {
	return e.build(name, processorpb.MetricKind_COUNTER_SUB, delta, labels)
}

// Gauge builds a GAUGE sample.
func (e *Emitter) Gauge(name string, value any, labels map[string]string) (*processorpb.TimeseriesSample, error) {
	return e.build(name, processorpb.MetricKind_GAUGE, value, labels)
}

// RecordMetadataLabels flattens a RecordMetadata into the base label set an
// Emitter merges under every sample.
func RecordMetadataLabels(md *processorpb.RecordMetadata) map[string]string {
	if md == nil {
		return nil
	}
	labels := map[string]string{
		"address":  hex.EncodeToString(md.Address),
		"chain_id": md.ChainId,
	}
	if md.BlockNumber != 0 {
		labels["block_number"] = strconv.FormatUint(md.BlockNumber, 10)
	}
	if len(md.TransactionHash) != 0 {
		labels["transaction_hash"] = hex.EncodeToString(md.TransactionHash)
	}
	for k, v := range md.BaseLabels {
		labels[k] = v
	}
	return labels
}

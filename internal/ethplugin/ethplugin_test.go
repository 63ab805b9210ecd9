package ethplugin

import (
	"context"
	"testing"

	"github.com/synnergychain/stream-processor-sdk/internal/registry"
	"github.com/synnergychain/stream-processor-sdk/internal/runtimectx"
	"github.com/synnergychain/stream-processor-sdk/internal/wire"
	"github.com/synnergychain/stream-processor-sdk/proto/processorpb"
)

func TestPluginDispatchesLogHandler(t *testing.T) {
	p := New()
	var gotAddr []byte
	idx := p.RegisterLogFilter(&processorpb.ContractConfig{Address: "0xabc"}, func(ctx context.Context, rc *runtimectx.Context, log *processorpb.EthLogPayload) error {
		gotAddr = log.Address
		return nil
	})

	mgr := registry.NewManager()
	mgr.Register(p)

	binding := &processorpb.RecordBinding{
		ChainId:     "1",
		HandlerType: processorpb.HandlerType_ETH_LOG,
		HandlerIds:  []int64{idx},
		Data:        &processorpb.RecordBinding_EthLog{EthLog: &processorpb.EthLogPayload{Address: []byte{0xAB}}},
	}
	rec, err := wire.FromBinding(binding)
	if err != nil {
		t.Fatalf("FromBinding: %v", err)
	}
	if err := mgr.Dispatch(context.Background(), rec, nil); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if len(gotAddr) != 1 || gotAddr[0] != 0xAB {
		t.Fatalf("handler did not receive expected payload: %v", gotAddr)
	}
}

func TestDoubleRegisterSameHandlerTypePanics(t *testing.T) {
	mgr := registry.NewManager()
	mgr.Register(New())
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on duplicate handler-type registration")
		}
	}()
	mgr.Register(New())
}

func TestUnknownHandlerIndexErrors(t *testing.T) {
	p := New()
	mgr := registry.NewManager()
	mgr.Register(p)

	binding := &processorpb.RecordBinding{
		HandlerType: processorpb.HandlerType_ETH_LOG,
		HandlerIds:  []int64{7},
		Data:        &processorpb.RecordBinding_EthLog{EthLog: &processorpb.EthLogPayload{}},
	}
	rec, err := wire.FromBinding(binding)
	if err != nil {
		t.Fatalf("FromBinding: %v", err)
	}
	if err := mgr.Dispatch(context.Background(), rec, nil); err == nil {
		t.Fatalf("expected error for out-of-range handler index")
	}
}

package registry

import (
	"context"
	"testing"

	"github.com/synnergychain/stream-processor-sdk/internal/runtimectx"
	"github.com/synnergychain/stream-processor-sdk/internal/wire"
	"github.com/synnergychain/stream-processor-sdk/proto/processorpb"
)

type stubPlugin struct {
	handles []processorpb.HandlerType
}

func (p *stubPlugin) Configure() []*processorpb.ContractConfig { return nil }

func (p *stubPlugin) CanHandle(ht processorpb.HandlerType) bool {
	for _, h := range p.handles {
		if h == ht {
			return true
		}
	}
	return false
}

func (p *stubPlugin) Process(ctx context.Context, idx int64, record *wire.Record, rc *runtimectx.Context) error {
	return nil
}

func TestPluginsDedupesOneEntryPerPlugin(t *testing.T) {
	mgr := NewManager()
	p := &stubPlugin{handles: []processorpb.HandlerType{
		processorpb.HandlerType_ETH_LOG,
		processorpb.HandlerType_ETH_BLOCK,
		processorpb.HandlerType_ETH_TX,
	}}
	mgr.Register(p)

	plugins := mgr.Plugins()
	if len(plugins) != 1 {
		t.Fatalf("expected exactly one distinct plugin, got %d", len(plugins))
	}
	if plugins[0] != Plugin(p) {
		t.Fatalf("expected the registered plugin back")
	}
}

func TestRegisterPanicsOnDuplicateHandlerType(t *testing.T) {
	mgr := NewManager()
	mgr.Register(&stubPlugin{handles: []processorpb.HandlerType{processorpb.HandlerType_ETH_LOG}})

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected a panic on duplicate handler type registration")
		}
	}()
	mgr.Register(&stubPlugin{handles: []processorpb.HandlerType{processorpb.HandlerType_ETH_LOG}})
}

func TestDispatchReturnsErrorForUnregisteredHandlerType(t *testing.T) {
	mgr := NewManager()
	record := &wire.Record{HandlerType: processorpb.HandlerType_ETH_TX, HandlerIDs: []int64{0}}
	if err := mgr.Dispatch(context.Background(), record, nil); err == nil {
		t.Fatal("expected an error for an unregistered handler type")
	}
}

package processorpb

import "fmt"

// HandlerType tags the chain-family a RecordBinding routes to.
type HandlerType int32

const (
	HandlerType_UNSPECIFIED HandlerType = 0
	HandlerType_ETH_LOG     HandlerType = 1
	HandlerType_ETH_BLOCK   HandlerType = 2
	HandlerType_ETH_TX      HandlerType = 3
)

func (h HandlerType) String() string {
	switch h {
	case HandlerType_ETH_LOG:
		return "eth_log"
	case HandlerType_ETH_BLOCK:
		return "eth_block"
	case HandlerType_ETH_TX:
		return "eth_tx"
	default:
		return "unspecified"
	}
}

// EthLogPayload is the opaque payload for an Ethereum log record.
type EthLogPayload struct {
	Address     []byte   `protobuf:"bytes,1,opt,name=address,proto3"`
	Topics      [][]byte `protobuf:"bytes,2,rep,name=topics,proto3"`
	Data        []byte   `protobuf:"bytes,3,opt,name=data,proto3"`
	BlockNumber uint64   `protobuf:"varint,4,opt,name=block_number,json=blockNumber,proto3"`
	TxHash      []byte   `protobuf:"bytes,5,opt,name=tx_hash,json=txHash,proto3"`
	TxIndex     uint32   `protobuf:"varint,6,opt,name=tx_index,json=txIndex,proto3"`
	LogIndex    uint32   `protobuf:"varint,7,opt,name=log_index,json=logIndex,proto3"`
}

func (m *EthLogPayload) Reset()         { *m = EthLogPayload{} }
func (m *EthLogPayload) String() string { return fmt.Sprintf("%+v", *m) }
func (*EthLogPayload) ProtoMessage()    {}

// EthBlockPayload is the opaque payload for an Ethereum block record.
type EthBlockPayload struct {
	Number    uint64 `protobuf:"varint,1,opt,name=number,proto3"`
	Hash      []byte `protobuf:"bytes,2,opt,name=hash,proto3"`
	Timestamp int64  `protobuf:"varint,3,opt,name=timestamp,proto3"`
}

func (m *EthBlockPayload) Reset()         { *m = EthBlockPayload{} }
func (m *EthBlockPayload) String() string { return fmt.Sprintf("%+v", *m) }
func (*EthBlockPayload) ProtoMessage()    {}

// EthTransactionPayload is the opaque payload for an Ethereum transaction record.
type EthTransactionPayload struct {
	Hash        []byte `protobuf:"bytes,1,opt,name=hash,proto3"`
	From        []byte `protobuf:"bytes,2,opt,name=from,proto3"`
	To          []byte `protobuf:"bytes,3,opt,name=to,proto3"`
	BlockNumber uint64 `protobuf:"varint,4,opt,name=block_number,json=blockNumber,proto3"`
	TxIndex     uint32 `protobuf:"varint,5,opt,name=tx_index,json=txIndex,proto3"`
}

func (m *EthTransactionPayload) Reset()         { *m = EthTransactionPayload{} }
func (m *EthTransactionPayload) String() string { return fmt.Sprintf("%+v", *m) }
func (*EthTransactionPayload) ProtoMessage()    {}

type isRecordBinding_Data interface{ isRecordBinding_Data() }

type RecordBinding_EthLog struct {
	EthLog *EthLogPayload `protobuf:"bytes,10,opt,name=eth_log,json=ethLog,proto3,oneof"`
}
type RecordBinding_EthBlock struct {
	EthBlock *EthBlockPayload `protobuf:"bytes,11,opt,name=eth_block,json=ethBlock,proto3,oneof"`
}
type RecordBinding_EthTx struct {
	EthTx *EthTransactionPayload `protobuf:"bytes,12,opt,name=eth_tx,json=ethTx,proto3,oneof"`
}

func (*RecordBinding_EthLog) isRecordBinding_Data()   {}
func (*RecordBinding_EthBlock) isRecordBinding_Data() {}
func (*RecordBinding_EthTx) isRecordBinding_Data()    {}

// RecordBinding is the inbound unit of work the driver hands the runtime.
type RecordBinding struct {
	Data       isRecordBinding_Data `protobuf:"bytes,1,opt,name=data"`
	HandlerType HandlerType         `protobuf:"varint,2,opt,name=handler_type,json=handlerType,proto3"`
	HandlerIds  []int64             `protobuf:"varint,3,rep,name=handler_ids,json=handlerIds,proto3"`
	ChainId     string              `protobuf:"bytes,4,opt,name=chain_id,json=chainId,proto3"`
}

func (m *RecordBinding) Reset()         { *m = RecordBinding{} }
func (m *RecordBinding) String() string { return fmt.Sprintf("%+v", *m) }
func (*RecordBinding) ProtoMessage()    {}

// DbResponse answers a prior get/list DbRequest.
type DbResponse struct {
	OpId  uint64           `protobuf:"varint,1,opt,name=op_id,json=opId,proto3"`
	Value isDbResponse_Value `protobuf:"bytes,2,opt,name=value"`
}

type isDbResponse_Value interface{ isDbResponse_Value() }

type DbResponse_EntityList struct {
	EntityList *EntityList `protobuf:"bytes,1,opt,name=entity_list,json=entityList,proto3,oneof"`
}
type DbResponse_Error struct {
	Error string `protobuf:"bytes,2,opt,name=error,proto3,oneof"`
}
type DbResponse_Empty struct {
	Empty bool `protobuf:"varint,3,opt,name=empty,proto3,oneof"`
}

func (*DbResponse_EntityList) isDbResponse_Value() {}
func (*DbResponse_Error) isDbResponse_Value()      {}
func (*DbResponse_Empty) isDbResponse_Value()      {}

func (m *DbResponse) Reset()         { *m = DbResponse{} }
func (m *DbResponse) String() string { return fmt.Sprintf("%+v", *m) }
func (*DbResponse) ProtoMessage()    {}

// EntityList is a page of encoded entities plus an opaque continuation cursor.
type EntityList struct {
	Rows       []*RichValueStruct `protobuf:"bytes,1,rep,name=rows,proto3"`
	NextCursor string             `protobuf:"bytes,2,opt,name=next_cursor,json=nextCursor,proto3"`
}

func (m *EntityList) Reset()         { *m = EntityList{} }
func (m *EntityList) String() string { return fmt.Sprintf("%+v", *m) }
func (*EntityList) ProtoMessage()    {}

// StartSignal is reserved for future use (spec.md §4.7).
type StartSignal struct{}

func (m *StartSignal) Reset()         { *m = StartSignal{} }
func (m *StartSignal) String() string { return "StartSignal{}" }
func (*StartSignal) ProtoMessage()    {}

// ProcessBindingsRequest is one inbound stream message.
type ProcessBindingsRequest struct {
	ProcessId uint64                        `protobuf:"varint,1,opt,name=process_id,json=processId,proto3"`
	Value     isProcessBindingsRequest_Value `protobuf:"bytes,2,opt,name=value"`
}

type isProcessBindingsRequest_Value interface{ isProcessBindingsRequest_Value() }

type ProcessBindingsRequest_RecordBinding struct {
	RecordBinding *RecordBinding `protobuf:"bytes,1,opt,name=record_binding,json=recordBinding,proto3,oneof"`
}
type ProcessBindingsRequest_DbResponse struct {
	DbResponse *DbResponse `protobuf:"bytes,2,opt,name=db_response,json=dbResponse,proto3,oneof"`
}
type ProcessBindingsRequest_StartSignal struct {
	StartSignal *StartSignal `protobuf:"bytes,3,opt,name=start_signal,json=startSignal,proto3,oneof"`
}

func (*ProcessBindingsRequest_RecordBinding) isProcessBindingsRequest_Value() {}
func (*ProcessBindingsRequest_DbResponse) isProcessBindingsRequest_Value()    {}
func (*ProcessBindingsRequest_StartSignal) isProcessBindingsRequest_Value()   {}

func (m *ProcessBindingsRequest) Reset()         { *m = ProcessBindingsRequest{} }
func (m *ProcessBindingsRequest) String() string { return fmt.Sprintf("%+v", *m) }
func (*ProcessBindingsRequest) ProtoMessage()    {}

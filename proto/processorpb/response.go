package processorpb

import (
	"fmt"

	spb "google.golang.org/genproto/googleapis/rpc/status"
)

// MetricKind is the wire enum for a timeseries sample's aggregation kind.
type MetricKind int32

const (
	MetricKind_COUNTER_ADD MetricKind = 0
	MetricKind_COUNTER_SUB MetricKind = 1
	MetricKind_GAUGE       MetricKind = 2
)

// RecordMetadata is the immutable, cheaply-shared record context attached to
// every outbound message for a process id.
type RecordMetadata struct {
	Address         []byte            `protobuf:"bytes,1,opt,name=address,proto3"`
	ChainId         string            `protobuf:"bytes,2,opt,name=chain_id,json=chainId,proto3"`
	BlockNumber     uint64            `protobuf:"varint,3,opt,name=block_number,json=blockNumber,proto3"`
	TransactionHash []byte            `protobuf:"bytes,4,opt,name=transaction_hash,json=transactionHash,proto3"`
	TransactionIdx  uint32            `protobuf:"varint,5,opt,name=transaction_idx,json=transactionIdx,proto3"`
	LogIndex        uint32            `protobuf:"varint,6,opt,name=log_index,json=logIndex,proto3"`
	BaseLabels      map[string]string `protobuf:"bytes,7,rep,name=base_labels,json=baseLabels,proto3"`
}

func (m *RecordMetadata) Reset()         { *m = RecordMetadata{} }
func (m *RecordMetadata) String() string { return fmt.Sprintf("%+v", *m) }
func (*RecordMetadata) ProtoMessage()    {}

// TimeseriesSample is a metric emission riding the outbound stream.
type TimeseriesSample struct {
	Name     string            `protobuf:"bytes,1,opt,name=name,proto3"`
	Kind     MetricKind        `protobuf:"varint,2,opt,name=kind,proto3"`
	Value    *RichValue        `protobuf:"bytes,3,opt,name=value,proto3"`
	Labels   map[string]string `protobuf:"bytes,4,rep,name=labels,proto3"`
	Metadata *RecordMetadata   `protobuf:"bytes,5,opt,name=metadata,proto3"`
}

func (m *TimeseriesSample) Reset()         { *m = TimeseriesSample{} }
func (m *TimeseriesSample) String() string { return fmt.Sprintf("%+v", *m) }
func (*TimeseriesSample) ProtoMessage()    {}

// DbOp is the operator kind of an outbound entity store request.
type DbOp int32

const (
	DbOp_GET    DbOp = 0
	DbOp_LIST   DbOp = 1
	DbOp_UPSERT DbOp = 2
	DbOp_DELETE DbOp = 3
)

// FilterClause is a single list() predicate. Operator names come from the
// wire schema (eq, ne, lt, le, gt, ge, in, like, ...).
type FilterClause struct {
	Field    string     `protobuf:"bytes,1,opt,name=field,proto3"`
	Operator string     `protobuf:"bytes,2,opt,name=operator,proto3"`
	Value    *RichValue `protobuf:"bytes,3,opt,name=value,proto3"`
}

func (m *FilterClause) Reset()         { *m = FilterClause{} }
func (m *FilterClause) String() string { return fmt.Sprintf("%+v", *m) }
func (*FilterClause) ProtoMessage()    {}

// DbRequest is an outbound get/list/upsert/delete call.
type DbRequest struct {
	OpId    uint64           `protobuf:"varint,1,opt,name=op_id,json=opId,proto3"`
	Op      DbOp             `protobuf:"varint,2,opt,name=op,proto3"`
	Table   string           `protobuf:"bytes,3,opt,name=table,proto3"`
	Ids     []string         `protobuf:"bytes,4,rep,name=ids,proto3"`
	Filters []*FilterClause  `protobuf:"bytes,5,rep,name=filters,proto3"`
	Cursor  string           `protobuf:"bytes,6,opt,name=cursor,proto3"`
	PageSize int32           `protobuf:"varint,7,opt,name=page_size,json=pageSize,proto3"`
	Rows    []*RichValueStruct `protobuf:"bytes,8,rep,name=rows,proto3"`
}

func (m *DbRequest) Reset()         { *m = DbRequest{} }
func (m *DbRequest) String() string { return fmt.Sprintf("%+v", *m) }
func (*DbRequest) ProtoMessage()    {}

// TerminalResult ends a process id. Exactly one is emitted per RecordBinding.
// Status carries the same error classified as a google.rpc.Status (code +
// message) alongside the plain-text Error, so a driver can branch on code
// without string-matching the message.
type TerminalResult struct {
	ConfigUpdated bool        `protobuf:"varint,1,opt,name=config_updated,json=configUpdated,proto3"`
	Error         string      `protobuf:"bytes,2,opt,name=error,proto3"`
	Status        *spb.Status `protobuf:"bytes,3,opt,name=status,proto3"`
}

func (m *TerminalResult) Reset()         { *m = TerminalResult{} }
func (m *TerminalResult) String() string { return fmt.Sprintf("%+v", *m) }
func (*TerminalResult) ProtoMessage()    {}

type isProcessBindingsResponse_Value interface{ isProcessBindingsResponse_Value() }

type ProcessBindingsResponse_TimeseriesSample struct {
	TimeseriesSample *TimeseriesSample `protobuf:"bytes,1,opt,name=timeseries_sample,json=timeseriesSample,proto3,oneof"`
}
type ProcessBindingsResponse_DbRequest struct {
	DbRequest *DbRequest `protobuf:"bytes,2,opt,name=db_request,json=dbRequest,proto3,oneof"`
}
type ProcessBindingsResponse_TerminalResult struct {
	TerminalResult *TerminalResult `protobuf:"bytes,3,opt,name=terminal_result,json=terminalResult,proto3,oneof"`
}

func (*ProcessBindingsResponse_TimeseriesSample) isProcessBindingsResponse_Value() {}
func (*ProcessBindingsResponse_DbRequest) isProcessBindingsResponse_Value()        {}
func (*ProcessBindingsResponse_TerminalResult) isProcessBindingsResponse_Value()   {}

// ProcessBindingsResponse is one outbound stream message.
type ProcessBindingsResponse struct {
	ProcessId uint64                           `protobuf:"varint,1,opt,name=process_id,json=processId,proto3"`
	Value     isProcessBindingsResponse_Value `protobuf:"bytes,2,opt,name=value"`
}

func (m *ProcessBindingsResponse) Reset()         { *m = ProcessBindingsResponse{} }
func (m *ProcessBindingsResponse) String() string { return fmt.Sprintf("%+v", *m) }
func (*ProcessBindingsResponse) ProtoMessage()    {}

// FilterDescriptor tells the driver which wire values to route to a handler:
// topic hashes for logs, address-type hints, and fetch hints.
type FilterDescriptor struct {
	HandlerId   int64    `protobuf:"varint,1,opt,name=handler_id,json=handlerId,proto3"`
	TopicHashes [][]byte `protobuf:"bytes,2,rep,name=topic_hashes,json=topicHashes,proto3"`
	AddressType string   `protobuf:"bytes,3,opt,name=address_type,json=addressType,proto3"`
	FetchHints  []string `protobuf:"bytes,4,rep,name=fetch_hints,json=fetchHints,proto3"`
}

func (m *FilterDescriptor) Reset()         { *m = FilterDescriptor{} }
func (m *FilterDescriptor) String() string { return fmt.Sprintf("%+v", *m) }
func (*FilterDescriptor) ProtoMessage()    {}

// ContractConfig is one registered processor's routing configuration.
type ContractConfig struct {
	ChainId     string               `protobuf:"bytes,1,opt,name=chain_id,json=chainId,proto3"`
	Address     string               `protobuf:"bytes,2,opt,name=address,proto3"`
	StartBlock  uint64               `protobuf:"varint,3,opt,name=start_block,json=startBlock,proto3"`
	EndBlock    uint64               `protobuf:"varint,4,opt,name=end_block,json=endBlock,proto3"`
	Handlers    []*FilterDescriptor  `protobuf:"bytes,5,rep,name=handlers,proto3"`
}

func (m *ContractConfig) Reset()         { *m = ContractConfig{} }
func (m *ContractConfig) String() string { return fmt.Sprintf("%+v", *m) }
func (*ContractConfig) ProtoMessage()    {}

// ExecutionConfig carries the per-server execution parameters.
type ExecutionConfig struct {
	Sequential     bool  `protobuf:"varint,1,opt,name=sequential,proto3"`
	TimeoutSeconds int64 `protobuf:"varint,2,opt,name=timeout_seconds,json=timeoutSeconds,proto3"`
	RpcRetries     int32 `protobuf:"varint,3,opt,name=rpc_retries,json=rpcRetries,proto3"`
}

func (m *ExecutionConfig) Reset()         { *m = ExecutionConfig{} }
func (m *ExecutionConfig) String() string { return fmt.Sprintf("%+v", *m) }
func (*ExecutionConfig) ProtoMessage()    {}

// GetConfigResponse answers the GetConfig unary RPC.
type GetConfigResponse struct {
	Execution *ExecutionConfig   `protobuf:"bytes,1,opt,name=execution,proto3"`
	Contracts []*ContractConfig  `protobuf:"bytes,2,rep,name=contracts,proto3"`
	Schema    *string            `protobuf:"bytes,3,opt,name=schema,proto3"`
}

func (m *GetConfigResponse) Reset()         { *m = GetConfigResponse{} }
func (m *GetConfigResponse) String() string { return fmt.Sprintf("%+v", *m) }
func (*GetConfigResponse) ProtoMessage()    {}

// StartRequest/StartResponse and UpdateTemplatesRequest are thin unary
// messages for the remaining three RPC methods of the service.
type StartRequest struct {
	Templates []string `protobuf:"bytes,1,rep,name=templates,proto3"`
}

func (m *StartRequest) Reset()         { *m = StartRequest{} }
func (m *StartRequest) String() string { return fmt.Sprintf("%+v", *m) }
func (*StartRequest) ProtoMessage()    {}

type StartResponse struct {
	Accepted bool `protobuf:"varint,1,opt,name=accepted,proto3"`
}

func (m *StartResponse) Reset()         { *m = StartResponse{} }
func (m *StartResponse) String() string { return fmt.Sprintf("%+v", *m) }
func (*StartResponse) ProtoMessage()    {}

type UpdateTemplatesRequest struct {
	ChainId   string   `protobuf:"bytes,1,opt,name=chain_id,json=chainId,proto3"`
	Templates []string `protobuf:"bytes,2,rep,name=templates,proto3"`
}

func (m *UpdateTemplatesRequest) Reset()         { *m = UpdateTemplatesRequest{} }
func (m *UpdateTemplatesRequest) String() string { return fmt.Sprintf("%+v", *m) }
func (*UpdateTemplatesRequest) ProtoMessage()    {}

type Empty struct{}

func (m *Empty) Reset()         { *m = Empty{} }
func (m *Empty) String() string { return "Empty{}" }
func (*Empty) ProtoMessage()    {}

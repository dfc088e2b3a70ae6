package authgate

import (
	"encoding/json"
	"errors"
)

// ==================== 命令模型 ====================
//
// 🎯 **设计目标**：
// 调度层提交的每一种命令都是一个带类型标记的结构体，通过统一的信封格式
// 做确定性序列化。序列化字节既是承诺哈希的输入，也是电路见证摘要的来源。
//
// 📋 **确定性保证**：
// 命令均为固定字段结构体，encoding/json 对结构体字段按声明顺序输出，
// 同一命令值总是产生完全相同的字节流。

// CommandKind 命令类型标记
type CommandKind string

const (
	KindTransfer      CommandKind = "transfer"
	KindStake         CommandKind = "stake"
	KindVote          CommandKind = "vote"
	KindStoreData     CommandKind = "store_data"
	KindRetrieveData  CommandKind = "retrieve_data"
	KindQueryBalance  CommandKind = "query_balance"
	KindQueryState    CommandKind = "query_state"
	KindQueryHistory  CommandKind = "query_history"
	KindShutdown      CommandKind = "shutdown"
	KindScheduleTask  CommandKind = "schedule_task"
	KindCancelTask    CommandKind = "cancel_task"
	KindBroadcast     CommandKind = "broadcast_message"
	KindSyncClipboard CommandKind = "sync_clipboard"
)

// Command 可序列化命令
//
// 每个命令变体都必须在意图分类表中注册（见 intent.go），
// 未注册的类型在分类阶段被显式拒绝。
type Command interface {
	// Kind 返回命令类型标记
	Kind() CommandKind
}

// BoundedCommand 携带受限数值金额的命令（转账/质押）
type BoundedCommand interface {
	Command

	// BoundedAmount 返回需要范围证明约束的金额
	BoundedAmount() uint64
}

// TransferCommand 转账命令
type TransferCommand struct {
	To     string `json:"to"`
	Amount uint64 `json:"amount"`
	Memo   string `json:"memo,omitempty"`
}

func (c *TransferCommand) Kind() CommandKind     { return KindTransfer }
func (c *TransferCommand) BoundedAmount() uint64 { return c.Amount }

// StakeCommand 质押命令
type StakeCommand struct {
	Validator string `json:"validator"`
	Amount    uint64 `json:"amount"`
}

func (c *StakeCommand) Kind() CommandKind     { return KindStake }
func (c *StakeCommand) BoundedAmount() uint64 { return c.Amount }

// VoteCommand 提案投票命令
type VoteCommand struct {
	ProposalID string `json:"proposal_id"`
	Approve    bool   `json:"approve"`
}

func (c *VoteCommand) Kind() CommandKind { return KindVote }

// StoreDataCommand 数据写入命令
type StoreDataCommand struct {
	Key      string `json:"key"`
	Data     []byte `json:"data"`
	Metadata string `json:"metadata,omitempty"`
}

func (c *StoreDataCommand) Kind() CommandKind { return KindStoreData }

// RetrieveDataCommand 数据取回命令（与写入同属存储类别）
type RetrieveDataCommand struct {
	Key string `json:"key"`
}

func (c *RetrieveDataCommand) Kind() CommandKind { return KindRetrieveData }

// QueryBalanceCommand 余额查询命令
type QueryBalanceCommand struct {
	Account string `json:"account"`
}

func (c *QueryBalanceCommand) Kind() CommandKind { return KindQueryBalance }

// QueryStateCommand 状态查询命令
type QueryStateCommand struct {
	Height uint64 `json:"height"`
}

func (c *QueryStateCommand) Kind() CommandKind { return KindQueryState }

// QueryHistoryCommand 历史记录查询命令
type QueryHistoryCommand struct {
	Account string `json:"account"`
	Limit   uint32 `json:"limit"`
}

func (c *QueryHistoryCommand) Kind() CommandKind { return KindQueryHistory }

// ShutdownCommand 系统关机命令
type ShutdownCommand struct{}

func (c *ShutdownCommand) Kind() CommandKind { return KindShutdown }

// ScheduleTaskCommand 任务调度命令
type ScheduleTaskCommand struct {
	TaskID string `json:"task_id"`
	RunAt  uint64 `json:"run_at"`
}

func (c *ScheduleTaskCommand) Kind() CommandKind { return KindScheduleTask }

// CancelTaskCommand 任务取消命令
type CancelTaskCommand struct {
	TaskID string `json:"task_id"`
}

func (c *CancelTaskCommand) Kind() CommandKind { return KindCancelTask }

// BroadcastMessageCommand 消息广播命令
type BroadcastMessageCommand struct {
	Topic   string `json:"topic"`
	Payload string `json:"payload"`
}

func (c *BroadcastMessageCommand) Kind() CommandKind { return KindBroadcast }

// SyncClipboardCommand 剪贴板同步命令
type SyncClipboardCommand struct {
	Content string `json:"content"`
}

func (c *SyncClipboardCommand) Kind() CommandKind { return KindSyncClipboard }

// commandEnvelope 命令序列化信封
type commandEnvelope struct {
	Kind    CommandKind     `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

// MarshalCommand 将命令确定性序列化为字节流
//
// 信封格式：{"kind": <类型标记>, "payload": <命令字段>}。
// 同一命令值的序列化结果逐字节稳定，承诺方案和证明器都依赖这一点。
func MarshalCommand(cmd Command) ([]byte, error) {
	if cmd == nil {
		return nil, WrapSerializationError("command", errNilCommand)
	}

	payload, err := json.Marshal(cmd)
	if err != nil {
		return nil, WrapSerializationError("command payload", err)
	}

	data, err := json.Marshal(commandEnvelope{
		Kind:    cmd.Kind(),
		Payload: payload,
	})
	if err != nil {
		return nil, WrapSerializationError("command envelope", err)
	}

	return data, nil
}

// CanonicalCommandText 返回命令的规范文本表示
//
// 查询类命令的QueryProof以此文本作为被签名的查询串。
func CanonicalCommandText(cmd Command) (string, error) {
	data, err := MarshalCommand(cmd)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

var (
	errNilCommand    = errors.New("nil command")
	errNilSecret     = errors.New("nil secret")
	errMissingAmount = errors.New("command does not expose a bounded amount")
)

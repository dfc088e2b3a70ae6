package authgate

// ==================== 意图分类 ====================
//
// 🎯 **设计目标**：
// 把具体命令映射为粗粒度的意图类别，并给每个类别绑定一个固定的
// 最低授权级别。分类表是证明语义的信任根：电路里的公开输入
// RequiredLevel 直接来自这张表。
//
// ⚠️ **安全约束**：
// 未注册的命令类型必须被拒绝，绝不允许按默认类别放行。

// IntentCategory 意图类别
type IntentCategory uint8

const (
	// CategoryTransfer 资产转移
	CategoryTransfer IntentCategory = iota + 1
	// CategoryStake 质押操作
	CategoryStake
	// CategoryVote 治理投票
	CategoryVote
	// CategoryStore 数据存取
	CategoryStore
	// CategoryQuery 只读查询
	CategoryQuery
	// CategorySystem 系统管理
	CategorySystem
	// CategoryUserAction 普通用户动作
	CategoryUserAction
)

// String 返回类别的可读名称
func (c IntentCategory) String() string {
	switch c {
	case CategoryTransfer:
		return "transfer"
	case CategoryStake:
		return "stake"
	case CategoryVote:
		return "vote"
	case CategoryStore:
		return "store"
	case CategoryQuery:
		return "query"
	case CategorySystem:
		return "system"
	case CategoryUserAction:
		return "user_action"
	default:
		return "unknown"
	}
}

// categoryLevels 每个意图类别的最低授权级别
//
// 级别 0 表示无需授权，3 表示最高权限（系统管理）。
var categoryLevels = map[IntentCategory]uint8{
	CategoryTransfer:   2,
	CategoryStake:      2,
	CategoryVote:       1,
	CategoryStore:      1,
	CategoryQuery:      0,
	CategorySystem:     3,
	CategoryUserAction: 0,
}

// registered 命令类型到意图类别的注册表
//
// 新增命令变体时必须同步登记，否则在分类阶段被拒绝。
var registered = map[CommandKind]IntentCategory{
	KindTransfer:      CategoryTransfer,
	KindStake:         CategoryStake,
	KindVote:          CategoryVote,
	KindStoreData:     CategoryStore,
	KindRetrieveData:  CategoryStore,
	KindQueryBalance:  CategoryQuery,
	KindQueryState:    CategoryQuery,
	KindQueryHistory:  CategoryQuery,
	KindShutdown:      CategorySystem,
	KindScheduleTask:  CategorySystem,
	KindCancelTask:    CategorySystem,
	KindBroadcast:     CategoryUserAction,
	KindSyncClipboard: CategoryUserAction,
}

// RequiredLevel 返回意图类别的最低授权级别
func RequiredLevel(category IntentCategory) (uint8, error) {
	level, ok := categoryLevels[category]
	if !ok {
		return 0, WrapUnclassifiedCommandError(CommandKind(category.String()))
	}
	return level, nil
}

// Classify 对命令做意图分类
//
// 返回意图类别及其最低授权级别；未注册的命令类型返回
// ErrUnclassifiedCommand。
func Classify(cmd Command) (IntentCategory, uint8, error) {
	if cmd == nil {
		return 0, 0, WrapSerializationError("command", errNilCommand)
	}

	category, ok := registered[cmd.Kind()]
	if !ok {
		return 0, 0, WrapUnclassifiedCommandError(cmd.Kind())
	}

	level := categoryLevels[category]
	return category, level, nil
}

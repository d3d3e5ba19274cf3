package domain

// Record 上游 API 返回的原始记录（字段名不固定，多别名）
// 规范化之前的统一表示，见 internal/ledger
type Record map[string]any

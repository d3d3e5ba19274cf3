package domain

import "time"

// Tenant 租客领域模型
// MoveOut 存在即表示已退租（历史租客保留用于审计/展示）
type Tenant struct {
	RecordID string     `json:"record_id"`      // 上游记录 ID（_id）
	Code     string     `json:"tenant_id"`      // 人类可读编号（如 T0001）
	FullName string     `json:"full_name"`
	Phone    string     `json:"phone,omitempty"`
	Email    string     `json:"email,omitempty"`
	Rent     float64    `json:"rent_amount"`
	Advance  float64    `json:"advance_amount"`
	MoveIn   *time.Time `json:"move_in_date,omitempty"`
	MoveOut  *time.Time `json:"move_out_date,omitempty"`

	Raw Record `json:"-"` // 原始记录（规范化后仍保留，供兜底字段读取）
}

// Left 是否已退租
func (t *Tenant) Left() bool {
	return t != nil && t.MoveOut != nil
}

// DisplayID 展示用 ID：优先租客编号，缺失时退回记录 ID
func (t *Tenant) DisplayID() string {
	if t == nil {
		return ""
	}
	if t.Code != "" {
		return t.Code
	}
	return t.RecordID
}

package domain

import "time"

// BillStatus 规范化支付状态
type BillStatus string

const (
	BillStatusPaid    BillStatus = "Paid"
	BillStatusPartial BillStatus = "Partial"
	BillStatusNotPaid BillStatus = "Not paid"
	BillStatusUnknown BillStatus = "Unknown"
)

// Bill 账单领域模型
// Total/Paid/Outstanding/Status 为派生字段（上游不存储），
// 由 internal/ledger 按别名优先级计算
type Bill struct {
	ID           string     `json:"id"`
	BillingMonth string     `json:"billing_month,omitempty"`
	Total        float64    `json:"total"`
	Paid         float64    `json:"paid"`
	Outstanding  float64    `json:"outstanding"`
	Status       BillStatus `json:"status"`
	Receipt      string     `json:"receipt,omitempty"`
	Note         string     `json:"note,omitempty"`
	GeneratedAt  *time.Time `json:"generated_at,omitempty"`

	Raw Record `json:"-"`
}

package domain

import "time"

// Payment 支付记录
// 与 Bill 的关联为尽力匹配的派生关系（上游无外键保证），
// BillRef 仅在来源明确时填充
type Payment struct {
	ID            string     `json:"id"`
	Date          *time.Time `json:"date,omitempty"`
	Amount        float64    `json:"amount"`
	Method        string     `json:"method,omitempty"`
	ReceiptNumber string     `json:"receipt_number,omitempty"`
	Note          string     `json:"note,omitempty"`
	BillRef       string     `json:"bill_ref,omitempty"`

	Raw Record `json:"-"`
}

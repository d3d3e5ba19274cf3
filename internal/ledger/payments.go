package ledger

import (
	"encoding/json"
	"sort"
	"strings"

	"rentledger/internal/domain"

	"github.com/google/uuid"
)

// 支付匹配器：上游并不总在支付记录上存账单外键，
// 只能按引用字段精确匹配 + 序列化子串兜底做尽力关联。
// 子串匹配存在误判风险（ID 碰撞），结果不可当作权威数据。

// 支付记录上可能携带账单引用的字段（固定顺序）
var paymentRefKeys = []string{
	"bill", "billId", "referenceBill", "referenceId", "invoiceId", "invoice",
}

// 支付金额候选字段
var paymentAmountKeys = []string{"amount", "paidAmount", "paid"}

// SumForBill 汇总看起来引用了该账单的支付金额。
// 单条支付序列化失败只跳过该条，不影响其余聚合。绝不报错。
func SumForBill(payments []domain.Record, billID string) float64 {
	if len(payments) == 0 || billID == "" {
		return 0
	}
	var sum float64
	for _, p := range payments {
		if p == nil {
			continue
		}
		amt := ResolveNumber(p, paymentAmountKeys, 0)
		if matchesRef(p, billID) {
			sum += amt
			continue
		}
		raw, err := json.Marshal(p)
		if err != nil {
			continue
		}
		if strings.Contains(string(raw), billID) {
			sum += amt
		}
	}
	return sum
}

func matchesRef(p domain.Record, billID string) bool {
	for _, k := range paymentRefKeys {
		v, ok := Lookup(p, k)
		if !ok {
			continue
		}
		if asString(v) == billID {
			return true
		}
	}
	return false
}

// ResolvePaid 账单已付金额：取三个来源的最大值
// 1. 账单自身的已付字段
// 2. 内嵌 payment 对象的金额
// 3. 支付匹配器的汇总
func ResolvePaid(bill domain.Record, payments []domain.Record, billID string) float64 {
	fromBill := ResolveNumber(bill, []string{"paidAmount", "amountPaid", "paid"}, 0)
	fromEmbedded := ResolveNumber(bill, []string{"payment.amount", "payment.paidAmount", "payment.paid"}, 0)
	fromPayments := SumForBill(payments, billID)

	paid := fromBill
	if fromEmbedded > paid {
		paid = fromEmbedded
	}
	if fromPayments > paid {
		paid = fromPayments
	}
	return paid
}

// NormalizePayment 将原始支付记录映射为领域模型
func NormalizePayment(rec domain.Record) domain.Payment {
	id := ResolveString(rec, []string{"_id", "id"}, "")
	if id == "" {
		id = uuid.NewString() // 派生/无 ID 记录补一个合成 ID，便于前端列表渲染
	}
	return domain.Payment{
		ID:            id,
		Date:          ResolveTime(rec, []string{"date", "paidAt", "createdAt"}),
		Amount:        ResolveNumber(rec, paymentAmountKeys, 0),
		Method:        ResolveString(rec, []string{"method", "paymentMethod"}, ""),
		ReceiptNumber: ResolveString(rec, []string{"receiptNumber", "paymentRef"}, ""),
		Note:          ResolveString(rec, []string{"note"}, ""),
		BillRef:       ResolveString(rec, paymentRefKeys, ""),
		Raw:           rec,
	}
}

// DerivePayments 租客无独立支付列表时，从账单的内嵌 payment 对象
// 和直接 paidAmount 字段推导支付记录（附上账单 ID 供匹配）
func DerivePayments(bills []domain.Record) []domain.Record {
	var out []domain.Record
	for _, b := range bills {
		billID := ResolveString(b, []string{"_id", "billId"}, "")

		if v, ok := Lookup(b, "payment"); ok {
			if m, ok := toMap(v); ok {
				p := domain.Record(m)
				out = append(out, domain.Record{
					"date":          firstDefined(p, []string{"createdAt", "paidAt", "date"}, b["updatedAt"]),
					"amount":        ResolveNumber(p, []string{"amount"}, ResolveNumber(b, []string{"paidAmount"}, 0)),
					"method":        ResolveString(p, []string{"method", "paymentMethod"}, ""),
					"receiptNumber": ResolveString(p, []string{"receiptNumber", "paymentRef"}, ""),
					"bill":          billID,
				})
			}
		}

		// 有的账单直接带 paidAmount
		if paid, ok := AsNumber(b["paidAmount"]); ok && paid != 0 {
			out = append(out, domain.Record{
				"date":          firstDefined(b, []string{"paidAt", "paidDate", "updatedAt", "createdAt"}, nil),
				"amount":        paid,
				"receiptNumber": ResolveString(b, []string{"receiptNumber", "paymentRef"}, ""),
				"bill":          billID,
			})
		}
	}
	return out
}

func firstDefined(rec domain.Record, keys []string, def any) any {
	for _, k := range keys {
		if v, ok := Lookup(rec, k); ok && v != nil {
			return v
		}
	}
	return def
}

// SortPaymentsDesc 支付记录按日期倒序（最新在前），无日期排最后
func SortPaymentsDesc(payments []domain.Payment) {
	sort.SliceStable(payments, func(i, j int) bool {
		return paymentUnix(payments[i]) > paymentUnix(payments[j])
	})
}

func paymentUnix(p domain.Payment) int64 {
	if p.Date == nil {
		return 0
	}
	return p.Date.UnixMilli()
}

package ledger

import (
	"math"
	"strings"

	"rentledger/internal/domain"
)

// 账单金额计算：上游账单结构经历过多次演进，总额可能以
// 直接字段、费用明细列表或 totals 分解三种形态出现，
// 同时存在时取最明确的表示。任何字段缺失都不报错。

// 直接总额候选字段（固定优先级）
var directTotalKeys = []string{
	"totalAmount", "total", "amount", "totals.totalAmount", "totals.total",
}

// ComputeTotal 计算账单总额，优先级（先中先赢）：
// 1. 直接总额字段
// 2. charges 明细求和（金额不可解析的条目跳过；和为零不采用）
// 3. round(rent + electricity + additional - discount + processingFee)，非零才采用
// 4. 兜底为零
func ComputeTotal(bill domain.Record) float64 {
	if bill == nil {
		return 0
	}
	for _, k := range directTotalKeys {
		if v, ok := Lookup(bill, k); ok {
			if n, ok := AsNumber(v); ok {
				return n
			}
		}
	}

	if sum, ok := sumCharges(bill); ok {
		return sum
	}

	if v, ok := Lookup(bill, "totals"); ok {
		if m, ok := toMap(v); ok {
			totals := domain.Record(m)
			rent := ResolveNumber(totals, []string{"rent", "rentAmount"}, 0)
			elec := ResolveNumber(totals, []string{"electricity"}, 0)
			add := ResolveNumber(totals, []string{"additionalAmount", "additional"}, 0)
			disc := ResolveNumber(totals, []string{"discount"}, 0)
			proc := ResolveNumber(totals, []string{"processingFee", "processing"}, 0)
			computed := math.Round(rent + elec + add - disc + proc)
			if computed != 0 {
				return computed
			}
		}
	}

	return 0
}

func sumCharges(bill domain.Record) (float64, bool) {
	v, ok := Lookup(bill, "charges")
	if !ok {
		return 0, false
	}
	list, ok := v.([]any)
	if !ok || len(list) == 0 {
		return 0, false
	}
	var sum float64
	for _, item := range list {
		m, ok := toMap(item)
		if !ok {
			continue
		}
		if a, ok := AsNumber(m["amount"]); ok {
			sum += a
		}
	}
	if sum == 0 {
		return 0, false
	}
	return sum, true
}

// chargeTitles charges 明细标题拼接（账单备注兜底）
func chargeTitles(bill domain.Record) string {
	v, ok := Lookup(bill, "charges")
	if !ok {
		return ""
	}
	list, ok := v.([]any)
	if !ok {
		return ""
	}
	var titles []string
	for _, item := range list {
		if m, ok := toMap(item); ok {
			if s := asString(m["title"]); s != "" {
				titles = append(titles, s)
			}
		}
	}
	return strings.Join(titles, ", ")
}

// NormalizeStatus 规范化支付状态：显式 paymentStatus/status 的
// paid/partial 优先，否则按已付与总额推导
func NormalizeStatus(bill domain.Record, total, paid, outstanding float64) domain.BillStatus {
	raw := strings.ToLower(ResolveString(bill, []string{"paymentStatus", "status"}, ""))
	switch raw {
	case "paid":
		return domain.BillStatusPaid
	case "partial":
		return domain.BillStatusPartial
	}
	switch {
	case paid > 0 && paid < total:
		return domain.BillStatusPartial
	case outstanding > 0:
		return domain.BillStatusNotPaid
	default:
		return domain.BillStatusUnknown
	}
}

// EnhanceBill 计算账单派生字段（总额、已付、未清、状态、票据、备注、生成时间）
// payments 为该租客的松散支付记录，用于启发式匹配已付金额
func EnhanceBill(bill domain.Record, payments []domain.Record) domain.Bill {
	billID := ResolveString(bill, []string{"_id", "billId", "id"}, "")
	total := ComputeTotal(bill)
	paid := ResolvePaid(bill, payments, billID)
	outstanding := math.Max(0, total-paid)

	note := ResolveString(bill, []string{"notes"}, "")
	if note == "" {
		note = chargeTitles(bill)
	}

	return domain.Bill{
		ID:           billID,
		BillingMonth: ResolveString(bill, []string{"billingMonth"}, ""),
		Total:        total,
		Paid:         paid,
		Outstanding:  outstanding,
		Status:       NormalizeStatus(bill, total, paid, outstanding),
		Receipt: ResolveString(bill, []string{
			"receiptNumber", "paymentRef", "transactionId",
			"payment.receiptNumber", "payment.paymentRef",
		}, ""),
		Note:        note,
		GeneratedAt: ResolveTime(bill, []string{"_generatedDate", "generatedAt", "createdAt", "billingMonth", "date"}),
		Raw:         bill,
	}
}

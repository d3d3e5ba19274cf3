package httpapi

import (
	"bytes"
	"fmt"
	"time"

	"rentledger/internal/service"

	"github.com/xuri/excelize/v2"
)

// StatementBillHeader 账单表表头
var StatementBillHeader = []string{
	"Billing Month",
	"Total",
	"Paid",
	"Outstanding",
	"Status",
	"Receipt",
	"Note",
	"Generated",
}

// StatementPaymentHeader 支付记录表表头
var StatementPaymentHeader = []string{
	"Date",
	"Amount",
	"Method",
	"Receipt",
	"Bill Ref",
}

// GenerateStatementExport 生成租客对账单 Excel 文件
// 布局：档案摘要块 → 账单表 → 支付记录表
func GenerateStatementExport(statement *service.TenantStatement) ([]byte, error) {
	f := excelize.NewFile()
	// Note: WriteTo 之前不能 Close

	sheetName := "Statement"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	row := 1
	t := statement.Tenant
	summary := [][2]any{
		{"Tenant", t.FullName},
		{"Tenant ID", t.DisplayID()},
		{"Phone", t.Phone},
		{"Email", t.Email},
		{"Rent", t.Rent},
		{"Move In", formatDate(t.MoveIn)},
		{"Move Out", formatDate(t.MoveOut)},
		{"Total Due", statement.TotalDue},
	}
	for _, kv := range summary {
		if err := setRow(f, sheetName, row, []any{kv[0], kv[1]}); err != nil {
			f.Close()
			return nil, err
		}
		row++
	}
	row++ // 空行分隔

	// 账单表
	if err := setHeaderRow(f, sheetName, row, StatementBillHeader, headerStyle); err != nil {
		f.Close()
		return nil, err
	}
	row++
	for _, b := range statement.Bills {
		cells := []any{
			b.BillingMonth,
			b.Total,
			b.Paid,
			b.Outstanding,
			string(b.Status),
			b.Receipt,
			b.Note,
			formatDate(b.GeneratedAt),
		}
		if err := setRow(f, sheetName, row, cells); err != nil {
			f.Close()
			return nil, err
		}
		row++
	}
	row++

	// 支付记录表
	if err := setHeaderRow(f, sheetName, row, StatementPaymentHeader, headerStyle); err != nil {
		f.Close()
		return nil, err
	}
	row++
	for _, p := range statement.Payments {
		cells := []any{
			formatDate(p.Date),
			p.Amount,
			p.Method,
			p.ReceiptNumber,
			p.BillRef,
		}
		if err := setRow(f, sheetName, row, cells); err != nil {
			f.Close()
			return nil, err
		}
		row++
	}

	columnWidths := []float64{
		18, // Billing Month / Date
		12, // Total / Amount
		12, // Paid / Method
		14, // Outstanding / Receipt
		12, // Status / Bill Ref
		16, // Receipt
		30, // Note
		18, // Generated
	}
	for i, width := range columnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert column number: %w", err)
		}
		if err := f.SetColWidth(sheetName, col, col, width); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write excel file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func setHeaderRow(f *excelize.File, sheet string, row int, headers []string, style int) error {
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return fmt.Errorf("failed to set header style: %w", err)
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, cells []any) error {
	for col, v := range cells {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("failed to set cell %s: %w", cell, err)
		}
	}
	return nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

package cart

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jhillyerd/enmime"
	"github.com/xuri/excelize/v2"

	"shopdir/internal"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func receiptWorkbook(r internal.Receipt) *excelize.File {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	set := func(col, row int, value any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, value)
	}

	set(1, 1, "voucher")
	set(2, 1, r.VoucherID)
	set(1, 2, "issued_at")
	set(2, 2, r.IssuedAt.Format("02/01/2006 03:04 PM"))
	set(1, 3, "customer")
	set(2, 3, r.Customer.Name)
	set(1, 4, "phone")
	set(2, 4, r.Customer.Phone)
	set(1, 5, "address")
	set(2, 5, r.Customer.Address)

	headers := []string{"line", "business_id", "name", "price", "unit_price", "quantity", "amount"}
	for i, h := range headers {
		set(i+1, 7, h)
	}
	for i, line := range r.Lines {
		row := 8 + i
		set(1, row, i+1)
		set(2, row, line.BusinessID)
		set(3, row, line.Name)
		set(4, row, line.PriceText)
		set(5, row, line.UnitPrice)
		set(6, row, line.Quantity)
		set(7, row, line.Amount)
	}
	totalRow := 8 + len(r.Lines)
	set(6, totalRow, "grand_total")
	set(7, totalRow, r.GrandTotal)
	return f
}

func ExportReceiptXLSX(r internal.Receipt, outputPath string) error {
	f := receiptWorkbook(r)
	defer f.Close()
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

// BuildReceiptMessage renders the receipt as a MIME message with the text
// voucher as body and the workbook attached.
func BuildReceiptMessage(r internal.Receipt, text, from, to string) ([]byte, error) {
	f := receiptWorkbook(r)
	defer f.Close()
	sheet := bytes.NewBuffer(nil)
	if _, err := f.WriteTo(sheet); err != nil {
		return nil, err
	}

	part, err := enmime.Builder().
		From("", from).
		To("", to).
		Subject(fmt.Sprintf("Order voucher %s", r.VoucherID)).
		Date(r.IssuedAt).
		Text([]byte(text)).
		AddAttachment(sheet.Bytes(), xlsxContentType, r.VoucherID+".xlsx").
		Build()
	if err != nil {
		return nil, err
	}

	out := bytes.NewBuffer(nil)
	if err := part.Encode(out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

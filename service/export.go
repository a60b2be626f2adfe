package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/models"

	"github.com/xuri/excelize/v2"
)

// Export formats
const (
	ExportCSV   = "csv"
	ExportExcel = "excel"
)

// OrderExportHeader column titles of the orders export
var OrderExportHeader = []string{
	"Order Number", "Patient Name", "Mobile", "Status", "Payment Status", "Total Amount", "Created At",
}

// isoMillis matches the timestamps clients already parse
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

func orderRow(o models.Order) []string {
	return []string{
		o.OrderNumber,
		o.Patient.Name,
		o.Patient.Mobile,
		string(o.Status),
		string(o.PaymentStatus),
		strconv.FormatFloat(o.TotalAmount, 'f', -1, 64),
		o.CreatedAt.UTC().Format(isoMillis),
	}
}

// OrdersCSV one comma-joined line per order. Values are not quoted, so a
// comma inside a name shifts that row's columns.
func OrdersCSV(orders []models.Order) []byte {
	lines := make([]string, 0, len(orders)+1)
	lines = append(lines, strings.Join(OrderExportHeader, ","))
	for _, o := range orders {
		lines = append(lines, strings.Join(orderRow(o), ","))
	}
	return []byte(strings.Join(lines, "\n"))
}

// OrdersExcel same columns as the CSV in a single-sheet workbook
func OrdersExcel(orders []models.Order) ([]byte, error) {
	rows := make([][]interface{}, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, []interface{}{
			o.OrderNumber,
			o.Patient.Name,
			o.Patient.Mobile,
			string(o.Status),
			string(o.PaymentStatus),
			o.TotalAmount,
			o.CreatedAt.UTC().Format(isoMillis),
		})
	}
	return workbook("Orders", OrderExportHeader, rows)
}

// ItemExportHeader column titles of the inventory export
var ItemExportHeader = []string{
	"Item Code", "Item Name", "Branch", "Category", "Supplier", "Unit", "Quantity",
	"Reorder Point", "Stock Status", "Cost Price", "Stock Value", "Status", "Last Updated",
}

func itemRow(v models.InventoryItemView) []interface{} {
	updated := ""
	if v.LastStockUpdate != nil {
		updated = v.LastStockUpdate.UTC().Format(isoMillis)
	}
	return []interface{}{
		v.Code, v.Name, v.BranchName, v.CategoryName, v.SupplierName, string(v.UnitType),
		v.QuantityInHand, v.ReorderPoint, string(v.StockStatus), v.CostPrice,
		stockValue(v.InventoryItem).InexactFloat64(), string(v.Status), updated,
	}
}

// ItemsCSV inventory export with standard CSV quoting
func ItemsCSV(items []models.InventoryItemView) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(ItemExportHeader); err != nil {
		return nil, err
	}
	for _, v := range items {
		row := itemRow(v)
		record := make([]string, len(row))
		for i, cell := range row {
			record[i] = fmt.Sprint(cell)
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// ItemsExcel inventory export as a workbook
func ItemsExcel(items []models.InventoryItemView) ([]byte, error) {
	rows := make([][]interface{}, 0, len(items))
	for _, v := range items {
		rows = append(rows, itemRow(v))
	}
	return workbook("Inventory", ItemExportHeader, rows)
}

func workbook(sheet string, header []string, rows [][]interface{}) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("name sheet: %w", err)
	}

	headerRow := make([]interface{}, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportFilename name offered to the browser
func ExportFilename(prefix, format string, now time.Time) string {
	ext := "csv"
	if format == ExportExcel {
		ext = "xlsx"
	}
	return fmt.Sprintf("%s-%s.%s", prefix, now.Format(dateLayout), ext)
}

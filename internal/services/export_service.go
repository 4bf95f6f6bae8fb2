package services

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	exportDateLayout = "2006-01-02"

	XlsxKPISheetName      = "مؤشرات الأداء"
	XlsxProductsSheetName = "أفضل المنتجات"
	XlsxMonthlySheetName  = "المبيعات الشهرية"
	XlsxDailySheetName    = "المبيعات اليومية"
	XlsxSummarySheetName  = "ملخص"

	xlsxCurrencyFormat = `#,##0.00`
)

var ExportCSVHeaders = []string{
	"Date",
	"Total Sales",
	"Quantity",
	"Transactions",
}

type ExportService struct {
	sales    SaleReader
	location *time.Location
	now      func() time.Time
}

type ExportSummary struct {
	TotalEntries int
	HasData      bool
	DateFrom     string
	DateTo       string
}

func NewExportService(sales SaleReader, location *time.Location) *ExportService {
	if location == nil {
		location = time.UTC
	}
	return &ExportService{
		sales:    sales,
		location: location,
		now:      time.Now,
	}
}

// LoadReport builds a report for the range without recording a snapshot.
// An empty range yields EmptyReport rather than ErrNoSales.
func (service *ExportService) LoadReport(userID uint, from *time.Time, to *time.Time) (Report, error) {
	sales, err := service.sales.ListByUserRange(userID, from, to)
	if err != nil {
		return Report{}, fmt.Errorf("load sales: %w", err)
	}
	now := service.now().In(service.location)
	if len(sales) == 0 {
		return EmptyReport(now), nil
	}
	return BuildReport(sales, now, service.location), nil
}

func (service *ExportService) BuildSummary(userID uint, from *time.Time, to *time.Time) (ExportSummary, error) {
	sales, err := service.sales.ListByUserRange(userID, from, to)
	if err != nil {
		return ExportSummary{}, err
	}
	if len(sales) == 0 {
		return ExportSummary{}, nil
	}

	first := sales[0].SaleDate
	last := sales[0].SaleDate
	for _, sale := range sales[1:] {
		if sale.SaleDate.Before(first) {
			first = sale.SaleDate
		}
		if sale.SaleDate.After(last) {
			last = sale.SaleDate
		}
	}

	return ExportSummary{
		TotalEntries: len(sales),
		HasData:      true,
		DateFrom:     DateAtLocation(first, service.location).Format(exportDateLayout),
		DateTo:       DateAtLocation(last, service.location).Format(exportDateLayout),
	}, nil
}

func (service *ExportService) BuildWorkbook(userID uint, from *time.Time, to *time.Time) ([]byte, error) {
	report, err := service.LoadReport(userID, from, to)
	if err != nil {
		return nil, err
	}
	return RenderReportWorkbook(report)
}

func (service *ExportService) BuildCSV(userID uint, from *time.Time, to *time.Time) ([]byte, error) {
	report, err := service.LoadReport(userID, from, to)
	if err != nil {
		return nil, err
	}
	return RenderDailyCSV(report.DailySales)
}

func (service *ExportService) BuildJSON(userID uint, from *time.Time, to *time.Time) ([]byte, error) {
	report, err := service.LoadReport(userID, from, to)
	if err != nil {
		return nil, err
	}
	payload, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}
	return payload, nil
}

func xlsxCell(col int, row int) string {
	columnName, err := excelize.ColumnNumberToName(col)
	if err != nil {
		return ""
	}
	name, err := excelize.JoinCellName(columnName, row)
	if err != nil {
		return ""
	}
	return name
}

type xlsxStyles struct {
	header   int
	currency int
}

func newXlsxStyles(f *excelize.File) (xlsxStyles, error) {
	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#667EEA"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return xlsxStyles{}, err
	}
	currencyFormat := xlsxCurrencyFormat
	currency, err := f.NewStyle(&excelize.Style{CustomNumFmt: &currencyFormat})
	if err != nil {
		return xlsxStyles{}, err
	}
	return xlsxStyles{header: header, currency: currency}, nil
}

// writeXlsxTable writes a bold header row and data rows starting at row 1.
// Columns listed in currencyColumns (1-based) get the currency format.
func writeXlsxTable(f *excelize.File, sheetName string, styles xlsxStyles, headers []string, rows [][]interface{}, currencyColumns ...int) {
	for col, header := range headers {
		_ = f.SetCellValue(sheetName, xlsxCell(col+1, 1), header)
	}
	if len(headers) > 0 {
		_ = f.SetCellStyle(sheetName, xlsxCell(1, 1), xlsxCell(len(headers), 1), styles.header)
	}
	for rowIndex, values := range rows {
		for col, value := range values {
			_ = f.SetCellValue(sheetName, xlsxCell(col+1, rowIndex+2), value)
		}
	}
	if len(rows) == 0 {
		return
	}
	for _, col := range currencyColumns {
		_ = f.SetCellStyle(sheetName, xlsxCell(col, 2), xlsxCell(col, len(rows)+1), styles.currency)
	}
}

func RenderReportWorkbook(report Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	_ = f.SetSheetName("Sheet1", XlsxKPISheetName)
	for _, sheetName := range []string{XlsxProductsSheetName, XlsxMonthlySheetName, XlsxDailySheetName, XlsxSummarySheetName} {
		if _, err := f.NewSheet(sheetName); err != nil {
			return nil, fmt.Errorf("create sheet %s: %w", sheetName, err)
		}
	}
	for _, sheetName := range f.GetSheetList() {
		_ = f.SetSheetView(sheetName, -1, &excelize.ViewOptions{RightToLeft: boolRef(true)})
		_ = f.SetColWidth(sheetName, "A", "A", 25)
		_ = f.SetColWidth(sheetName, "B", "F", 20)
	}

	styles, err := newXlsxStyles(f)
	if err != nil {
		return nil, fmt.Errorf("create xlsx styles: %w", err)
	}

	kpis := report.KPIs
	writeXlsxTable(f, XlsxKPISheetName, styles, []string{"المؤشر", "القيمة"}, [][]interface{}{
		{"إجمالي المبيعات", kpis.TotalSales},
		{"عدد العمليات", kpis.TotalTransactions},
		{"متوسط قيمة العملية", kpis.AvgTransactionValue},
		{"إجمالي الكميات", kpis.TotalQuantity},
		{"أعلى عملية", kpis.MaxSale},
		{"أدنى عملية", kpis.MinSale},
		{"عدد المنتجات", kpis.UniqueProducts},
		{"الربح التقديري", report.Profit.EstimatedProfit},
	})

	productRows := make([][]interface{}, 0, len(report.TopProducts))
	for _, product := range report.TopProducts {
		productRows = append(productRows, []interface{}{
			product.ProductName,
			product.Category,
			product.TotalSales,
			product.TotalQuantity,
			product.TransactionCount,
			product.AvgPrice,
		})
	}
	writeXlsxTable(f, XlsxProductsSheetName, styles,
		[]string{"المنتج", "الفئة", "إجمالي المبيعات", "الكمية", "عدد العمليات", "متوسط السعر"},
		productRows, 3, 6)

	writeXlsxTable(f, XlsxMonthlySheetName, styles, []string{"الشهر", "المبيعات", "الكمية", "عدد العمليات"}, bucketRows(report.MonthlySales), 2)
	writeXlsxTable(f, XlsxDailySheetName, styles, []string{"التاريخ", "المبيعات", "الكمية", "عدد العمليات"}, bucketRows(report.DailySales), 2)
	writeXlsxTable(f, XlsxSummarySheetName, styles, []string{"العنصر", "القيمة"}, [][]interface{}{
		{"تاريخ التقرير", report.AnalysisDate.Format("2006-01-02 15:04")},
		{"إجمالي المبيعات", kpis.TotalSales},
		{"إجمالي العمليات", kpis.TotalTransactions},
	})

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write xlsx report: %w", err)
	}
	return buf.Bytes(), nil
}

func bucketRows(buckets []TimeBucket) [][]interface{} {
	rows := make([][]interface{}, 0, len(buckets))
	for _, bucket := range buckets {
		label := bucket.Label
		if bucket.Date != "" {
			label = bucket.Date
		}
		rows = append(rows, []interface{}{label, bucket.TotalSales, bucket.TotalQuantity, bucket.TransactionCount})
	}
	return rows
}

func RenderDailyCSV(days []TimeBucket) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(ExportCSVHeaders); err != nil {
		return nil, err
	}
	for _, day := range days {
		label := day.Date
		if label == "" {
			label = day.Label
		}
		if err := writer.Write([]string{
			label,
			strconv.FormatFloat(day.TotalSales, 'f', 2, 64),
			strconv.Itoa(day.TotalQuantity),
			strconv.Itoa(day.TransactionCount),
		}); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func boolRef(value bool) *bool {
	return &value
}

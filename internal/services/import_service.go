package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/terraincognita07/salesboard/internal/models"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

var (
	ErrUnsupportedFile = errors.New("unsupported file type")
	ErrMissingColumns  = errors.New("missing required columns")
	ErrEmptyImport     = errors.New("no rows to import")
)

const unknownProductName = "منتج غير معروف"

var RequiredImportColumns = []string{"product_name", "quantity", "price", "sale_date"}

var importDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02",
	"01/02/2006 15:04:05",
	"01/02/2006",
	"1/2/2006",
}

type ImportRow struct {
	SaleID      string
	ProductName string
	Category    string
	Quantity    int
	Price       float64
	TotalPrice  float64
	SaleDate    time.Time
}

type ImportDateRange struct {
	Min time.Time `json:"min"`
	Max time.Time `json:"max"`
}

type ImportSummary struct {
	TotalRows      int              `json:"total_rows"`
	SavedSales     int              `json:"saved_sales"`
	TotalQuantity  int              `json:"total_quantity"`
	TotalSales     float64          `json:"total_sales"`
	AvgPrice       float64          `json:"avg_price"`
	UniqueProducts int              `json:"unique_products"`
	DateRange      *ImportDateRange `json:"date_range,omitempty"`
	Warnings       []string         `json:"warnings"`
}

type ImportProductWriter interface {
	Upsert(tx *gorm.DB, product models.Product) (models.Product, error)
}

type ImportSaleWriter interface {
	Transaction(fn func(tx *gorm.DB) error) error
	CreateBatch(tx *gorm.DB, sales []models.Sale) error
}

type ImportService struct {
	products ImportProductWriter
	sales    ImportSaleWriter
	location *time.Location
	now      func() time.Time
}

func NewImportService(products ImportProductWriter, sales ImportSaleWriter, location *time.Location) *ImportService {
	if location == nil {
		location = time.UTC
	}
	return &ImportService{
		products: products,
		sales:    sales,
		location: location,
		now:      time.Now,
	}
}

func IsSupportedImportFile(fileName string) bool {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv", ".xlsx", ".xlsm":
		return true
	default:
		return false
	}
}

// Import parses, cleans and stores a sales file for userID in one
// transaction.
func (service *ImportService) Import(userID uint, fileName string, reader io.Reader) (ImportSummary, error) {
	records, err := ReadSalesTable(fileName, reader)
	if err != nil {
		return ImportSummary{}, err
	}

	rows, warnings, err := CleanSalesTable(records, service.now().In(service.location), service.location)
	if err != nil {
		return ImportSummary{}, err
	}
	if len(rows) == 0 {
		return ImportSummary{}, ErrEmptyImport
	}

	sales := make([]models.Sale, 0, len(rows))
	err = service.sales.Transaction(func(tx *gorm.DB) error {
		productIDs := make(map[string]uint)
		for _, row := range rows {
			if _, ok := productIDs[row.ProductName]; ok {
				continue
			}
			product, err := service.products.Upsert(tx, models.Product{
				UserID:       userID,
				Name:         row.ProductName,
				Category:     row.Category,
				SellingPrice: row.Price,
			})
			if err != nil {
				return fmt.Errorf("save product %q: %w", row.ProductName, err)
			}
			productIDs[row.ProductName] = product.ID
		}

		for _, row := range rows {
			sales = append(sales, models.Sale{
				UserID:     userID,
				ProductID:  productIDs[row.ProductName],
				Quantity:   row.Quantity,
				TotalPrice: row.TotalPrice,
				SaleDate:   row.SaleDate.UTC(),
			})
		}
		if err := service.sales.CreateBatch(tx, sales); err != nil {
			return fmt.Errorf("save sales: %w", err)
		}
		return nil
	})
	if err != nil {
		return ImportSummary{}, err
	}

	summary := SummarizeImport(rows)
	summary.SavedSales = len(sales)
	summary.Warnings = warnings
	return summary, nil
}

// ReadSalesTable returns the header row followed by data rows.
func ReadSalesTable(fileName string, reader io.Reader) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv":
		csvReader := csv.NewReader(reader)
		csvReader.FieldsPerRecord = -1
		csvReader.TrimLeadingSpace = true
		records, err := csvReader.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		return records, nil
	case ".xlsx", ".xlsm":
		workbook, err := excelize.OpenReader(reader)
		if err != nil {
			return nil, fmt.Errorf("open workbook: %w", err)
		}
		defer workbook.Close()

		sheets := workbook.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrEmptyImport
		}
		records, err := workbook.GetRows(sheets[0], excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
		}
		return records, nil
	default:
		return nil, ErrUnsupportedFile
	}
}

type importColumns map[string]int

func (columns importColumns) value(record []string, name string) string {
	position, ok := columns[name]
	if !ok || position >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[position])
}

func isBlankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// CleanSalesTable validates the header and normalizes every data row. Rows
// with unreadable dates are dropped; blank cells fall back to defaults.
func CleanSalesTable(records [][]string, now time.Time, location *time.Location) ([]ImportRow, []string, error) {
	if len(records) == 0 {
		return nil, nil, ErrEmptyImport
	}

	columns := importColumns{}
	for position, header := range records[0] {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(header, "\ufeff")))
		if _, exists := columns[name]; !exists && name != "" {
			columns[name] = position
		}
	}
	missing := make([]string, 0)
	for _, name := range RequiredImportColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	_, hasSaleID := columns["sale_id"]
	_, hasTotal := columns["total_price"]
	seen := make(map[string]struct{})
	rows := make([]ImportRow, 0, len(records)-1)
	dataRows := 0
	for _, record := range records[1:] {
		if isBlankRecord(record) {
			continue
		}
		dataRows++

		dedupeKey := strings.Join(record, "\x1f")
		if hasSaleID {
			dedupeKey = "id:" + columns.value(record, "sale_id")
		}
		if _, duplicate := seen[dedupeKey]; duplicate {
			continue
		}
		seen[dedupeKey] = struct{}{}

		saleDate, ok := parseImportDate(columns.value(record, "sale_date"), now, location)
		if !ok {
			continue
		}

		row := ImportRow{
			SaleID:      columns.value(record, "sale_id"),
			ProductName: columns.value(record, "product_name"),
			Category:    columns.value(record, "category"),
			Quantity:    int(math.Abs(parseImportNumber(columns.value(record, "quantity")))),
			Price:       math.Abs(parseImportNumber(columns.value(record, "price"))),
			SaleDate:    saleDate,
		}
		if row.ProductName == "" {
			row.ProductName = unknownProductName
		}
		if row.Category == "" {
			row.Category = models.DefaultCategory
		}
		row.TotalPrice = float64(row.Quantity) * row.Price
		if hasTotal {
			if raw := columns.value(record, "total_price"); raw != "" {
				row.TotalPrice = math.Abs(parseImportNumber(raw))
			}
		}
		rows = append(rows, row)
	}

	warnings := make([]string, 0)
	if removed := dataRows - len(rows); removed > 0 {
		warnings = append(warnings, fmt.Sprintf("تم إزالة %d صفوف غير صالحة", removed))
	}
	return rows, warnings, nil
}

func parseImportNumber(raw string) float64 {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if cleaned == "" {
		return 0
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return value
}

func parseImportDate(raw string, now time.Time, location *time.Location) (time.Time, bool) {
	if raw == "" {
		year, month, day := now.Date()
		return time.Date(year, month, day, 0, 0, 0, 0, location), true
	}
	for _, layout := range importDateLayouts {
		if parsed, err := time.ParseInLocation(layout, raw, location); err == nil {
			return parsed, true
		}
	}
	// Workbooks read with raw cell values carry dates as serial numbers.
	if serial, err := strconv.ParseFloat(raw, 64); err == nil && serial > 0 {
		if parsed, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), parsed.Hour(), parsed.Minute(), parsed.Second(), 0, location), true
		}
	}
	return time.Time{}, false
}

func SummarizeImport(rows []ImportRow) ImportSummary {
	summary := ImportSummary{TotalRows: len(rows), Warnings: []string{}}
	if len(rows) == 0 {
		return summary
	}

	products := make(map[string]struct{})
	priceTotal := 0.0
	dateRange := ImportDateRange{Min: rows[0].SaleDate, Max: rows[0].SaleDate}
	for _, row := range rows {
		summary.TotalQuantity += row.Quantity
		summary.TotalSales += row.TotalPrice
		priceTotal += row.Price
		products[row.ProductName] = struct{}{}
		if row.SaleDate.Before(dateRange.Min) {
			dateRange.Min = row.SaleDate
		}
		if row.SaleDate.After(dateRange.Max) {
			dateRange.Max = row.SaleDate
		}
	}
	summary.AvgPrice = priceTotal / float64(len(rows))
	summary.UniqueProducts = len(products)
	summary.DateRange = &dateRange
	return summary
}

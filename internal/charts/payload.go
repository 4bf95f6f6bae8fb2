package charts

import (
	"encoding/json"
	"strings"
)

// Hidden input ids the dashboard page uses to transport server-rendered
// series.
const (
	FieldMonthly     = "monthlyData"
	FieldTopProducts = "topProductsData"
	FieldCategory    = "categoryData"
	FieldPeakHours   = "peakHoursData"
	FieldWeekday     = "weekdayData"
	FieldDaily       = "dailyData"
)

var PayloadFields = []string{
	FieldMonthly,
	FieldTopProducts,
	FieldCategory,
	FieldPeakHours,
	FieldWeekday,
	FieldDaily,
}

type LabeledSales struct {
	Label      string  `json:"label"`
	TotalSales float64 `json:"total_sales"`
}

type ProductSales struct {
	ProductName   string  `json:"product_name"`
	TotalSales    float64 `json:"total_sales"`
	TotalQuantity float64 `json:"total_quantity"`
}

type CategoryShare struct {
	Category   string  `json:"category"`
	TotalSales float64 `json:"total_sales"`
	Percentage float64 `json:"percentage"`
}

type WeekdaySales struct {
	WeekdayAr  string  `json:"weekday_ar"`
	TotalSales float64 `json:"total_sales"`
}

// DailySales.SaleID holds the number of transactions recorded that day.
type DailySales struct {
	Date       string  `json:"date"`
	TotalPrice float64 `json:"total_price"`
	SaleID     float64 `json:"sale_id"`
}

// DecodeRecords parses one hidden field value. Blank, malformed and
// non-array payloads decode to an empty slice. Inside a valid array each
// element decodes on its own: a field of the wrong type is left zero and a
// non-object element becomes a zero record, so the series keeps its length.
func DecodeRecords[T any](raw string) []T {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return []T{}
	}

	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &elements); err != nil || elements == nil {
		return []T{}
	}

	records := make([]T, len(elements))
	for index, element := range elements {
		if err := json.Unmarshal(element, &records[index]); err != nil {
			records[index] = decodeLenient[T](element)
		}
	}
	return records
}

// decodeLenient keeps the fields of one object that decode cleanly.
func decodeLenient[T any](element json.RawMessage) T {
	var record T
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(element, &fields); err != nil {
		return record
	}
	for key, value := range fields {
		single, err := json.Marshal(map[string]json.RawMessage{key: value})
		if err != nil {
			continue
		}
		var candidate T
		if json.Unmarshal(single, &candidate) != nil {
			continue
		}
		_ = json.Unmarshal(single, &record)
	}
	return record
}

// EncodeRecords is the server side of the transport: it renders a series as
// the value of a hidden field.
func EncodeRecords[T any](records []T) string {
	if records == nil {
		records = []T{}
	}
	serialized, err := json.Marshal(records)
	if err != nil {
		return "[]"
	}
	return string(serialized)
}

func labelsOf[T any](records []T, pick func(T) string) []string {
	labels := make([]string, 0, len(records))
	for _, record := range records {
		labels = append(labels, pick(record))
	}
	return labels
}

func valuesOf[T any](records []T, pick func(T) float64) []float64 {
	values := make([]float64, 0, len(records))
	for _, record := range records {
		values = append(values, pick(record))
	}
	return values
}

package services

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

func fixedExporter(reader SaleReader) *ExportService {
	service := NewExportService(reader, time.UTC)
	service.now = func() time.Time {
		return time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	}
	return service
}

func TestExportBuildSummaryUsesDateBounds(t *testing.T) {
	service := fixedExporter(&stubSaleReader{sales: sampleSales()})

	summary, err := service.BuildSummary(42, nil, nil)
	if err != nil {
		t.Fatalf("BuildSummary() unexpected error: %v", err)
	}
	if !summary.HasData || summary.TotalEntries != 5 {
		t.Fatalf("unexpected summary: %#v", summary)
	}
	if summary.DateFrom != "2026-01-05" || summary.DateTo != "2026-02-09" {
		t.Fatalf("unexpected bounds: %s..%s", summary.DateFrom, summary.DateTo)
	}
}

func TestExportBuildSummaryReturnsEmptyForNoSales(t *testing.T) {
	service := fixedExporter(&stubSaleReader{})
	summary, err := service.BuildSummary(42, nil, nil)
	if err != nil {
		t.Fatalf("BuildSummary() unexpected error: %v", err)
	}
	if summary.HasData || summary.TotalEntries != 0 {
		t.Fatalf("expected empty summary, got %#v", summary)
	}
}

func TestExportBuildWorkbookSheets(t *testing.T) {
	service := fixedExporter(&stubSaleReader{sales: sampleSales()})

	payload, err := service.BuildWorkbook(42, nil, nil)
	if err != nil {
		t.Fatalf("BuildWorkbook() unexpected error: %v", err)
	}

	workbook, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("open exported workbook: %v", err)
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	expected := []string{XlsxKPISheetName, XlsxProductsSheetName, XlsxMonthlySheetName, XlsxDailySheetName, XlsxSummarySheetName}
	if len(sheets) != len(expected) {
		t.Fatalf("expected sheets %v, got %v", expected, sheets)
	}
	for index, name := range expected {
		if sheets[index] != name {
			t.Fatalf("expected sheet %d to be %q, got %q", index, name, sheets[index])
		}
	}

	rows, err := workbook.GetRows(XlsxProductsSheetName)
	if err != nil {
		t.Fatalf("read products sheet: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected header plus 3 products, got %d rows", len(rows))
	}
	if rows[1][0] != "قهوة" {
		t.Fatalf("expected best product first, got %q", rows[1][0])
	}

	monthly, err := workbook.GetRows(XlsxMonthlySheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		t.Fatalf("read monthly sheet: %v", err)
	}
	if len(monthly) != 3 || monthly[1][0] != "January 2026" || monthly[2][1] != "75" {
		t.Fatalf("unexpected monthly rows: %#v", monthly)
	}
}

func TestExportBuildWorkbookWithoutSales(t *testing.T) {
	service := fixedExporter(&stubSaleReader{})

	payload, err := service.BuildWorkbook(42, nil, nil)
	if err != nil {
		t.Fatalf("BuildWorkbook() unexpected error: %v", err)
	}
	if len(payload) == 0 {
		t.Fatalf("expected a workbook even without sales")
	}
}

func TestExportBuildCSV(t *testing.T) {
	service := fixedExporter(&stubSaleReader{sales: sampleSales()})

	payload, err := service.BuildCSV(42, nil, nil)
	if err != nil {
		t.Fatalf("BuildCSV() unexpected error: %v", err)
	}
	records, err := csv.NewReader(bytes.NewReader(payload)).ReadAll()
	if err != nil {
		t.Fatalf("parse exported csv: %v", err)
	}
	if len(records) != 6 {
		t.Fatalf("expected header plus 5 days, got %d", len(records))
	}
	if records[0][0] != ExportCSVHeaders[0] || records[0][3] != ExportCSVHeaders[3] {
		t.Fatalf("unexpected header: %v", records[0])
	}
	if got := records[1]; got[0] != "2026-01-05" || got[1] != "20.00" || got[2] != "2" || got[3] != "1" {
		t.Fatalf("unexpected first row: %v", got)
	}
}

func TestExportBuildJSON(t *testing.T) {
	service := fixedExporter(&stubSaleReader{sales: sampleSales()})

	payload, err := service.BuildJSON(42, nil, nil)
	if err != nil {
		t.Fatalf("BuildJSON() unexpected error: %v", err)
	}
	var decoded Report
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("decode exported json: %v", err)
	}
	if decoded.KPIs.TotalSales != 100 || len(decoded.TopProducts) != 3 {
		t.Fatalf("unexpected exported report: %#v", decoded)
	}
}

func TestExportPropagatesReaderError(t *testing.T) {
	readErr := errors.New("boom")
	service := fixedExporter(&stubSaleReader{err: readErr})
	if _, err := service.BuildCSV(42, nil, nil); !errors.Is(err, readErr) {
		t.Fatalf("expected reader error, got %v", err)
	}
}

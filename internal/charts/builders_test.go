package charts

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func testLocale() Locale {
	return NewLocale("en", map[string]string{})
}

func TestDecodeRecordsFallsBackToEmpty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
	}{
		{name: "missing", raw: ""},
		{name: "whitespace", raw: "   \n"},
		{name: "malformed", raw: `[{"label": "Jan",`},
		{name: "object instead of array", raw: `{"label": "Jan", "total_sales": 10}`},
		{name: "null", raw: "null"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			records := DecodeRecords[LabeledSales](testCase.raw)
			if records == nil {
				t.Fatal("expected non-nil empty slice")
			}
			if len(records) != 0 {
				t.Fatalf("expected no records, got %#v", records)
			}
		})
	}
}

func TestDecodeRecordsZeroFillsMistypedFields(t *testing.T) {
	t.Parallel()

	raw := `[{"label": "Jan", "total_sales": 10}, {"label": "Feb", "total_sales": "2"}, 7, {"label": 3, "total_sales": 30}]`
	records := DecodeRecords[LabeledSales](raw)

	want := []LabeledSales{
		{Label: "Jan", TotalSales: 10},
		{Label: "Feb"},
		{},
		{TotalSales: 30},
	}
	if !reflect.DeepEqual(records, want) {
		t.Fatalf("DecodeRecords() = %#v, want %#v", records, want)
	}

	config := MonthlySales(raw, testLocale())
	if len(config.Data.Labels) != 4 || len(config.Data.Datasets[0].Data) != 4 {
		t.Fatalf("expected the series to keep its length, got %#v", config.Data)
	}
}

func TestForecastDrawsBandAroundPrediction(t *testing.T) {
	t.Parallel()

	raw := EncodeRecords([]ForecastPoint{
		{Date: "2026-03-01", PredictedSales: 100, PredictedProfit: 30, ConfidenceLower: 80, ConfidenceUpper: 120},
		{Date: "2026-03-02", PredictedSales: 110, PredictedProfit: 33, ConfidenceLower: 90, ConfidenceUpper: 130},
	})
	config := ForecastWidget.Build(raw, testLocale())

	if config.Type != TypeLine {
		t.Fatalf("expected line chart, got %q", config.Type)
	}
	if !reflect.DeepEqual(config.Data.Labels, []string{"2026-03-01", "2026-03-02"}) {
		t.Fatalf("unexpected labels %#v", config.Data.Labels)
	}
	if len(config.Data.Datasets) != 4 {
		t.Fatalf("expected 4 datasets, got %d", len(config.Data.Datasets))
	}

	upper, lower, sales, profit := config.Data.Datasets[0], config.Data.Datasets[1], config.Data.Datasets[2], config.Data.Datasets[3]
	if upper.Fill != "+1" || !reflect.DeepEqual(upper.Data, []float64{120, 130}) {
		t.Fatalf("unexpected upper band %#v", upper)
	}
	if lower.Fill != nil || !reflect.DeepEqual(lower.Data, []float64{80, 90}) {
		t.Fatalf("unexpected lower band %#v", lower)
	}
	if !reflect.DeepEqual(sales.Data, []float64{100, 110}) || !reflect.DeepEqual(profit.Data, []float64{30, 33}) {
		t.Fatalf("unexpected forecast lines %#v / %#v", sales.Data, profit.Data)
	}
	if len(profit.BorderDash) == 0 {
		t.Fatal("expected the profit line to be dashed")
	}
	if config.Options.Plugins.Legend == nil || !config.Options.Plugins.Legend.Display {
		t.Fatal("expected a visible legend")
	}
}

func TestEveryWidgetRendersEmptyForMalformedPayload(t *testing.T) {
	t.Parallel()

	for _, widget := range Widgets {
		for _, raw := range []string{"", "not json", "{}", "[1, 2"} {
			config := widget.Build(raw, testLocale())
			if config.Data.Labels == nil || len(config.Data.Labels) != 0 {
				t.Fatalf("%s(%q): expected empty labels, got %#v", widget.Canvas, raw, config.Data.Labels)
			}
			if len(config.Data.Datasets) == 0 {
				t.Fatalf("%s(%q): expected datasets to be present", widget.Canvas, raw)
			}
			for _, dataset := range config.Data.Datasets {
				if dataset.Data == nil || len(dataset.Data) != 0 {
					t.Fatalf("%s(%q): expected empty data, got %#v", widget.Canvas, raw, dataset.Data)
				}
			}
		}
	}
}

func TestMonthlySalesPreservesOrderAndLength(t *testing.T) {
	t.Parallel()

	raw := `[{"label":"March 2026","total_sales":300},{"label":"January 2026","total_sales":100.5},{"label":"February 2026","total_sales":0}]`
	config := MonthlySales(raw, testLocale())

	expectedLabels := []string{"March 2026", "January 2026", "February 2026"}
	if !reflect.DeepEqual(config.Data.Labels, expectedLabels) {
		t.Fatalf("expected labels %#v, got %#v", expectedLabels, config.Data.Labels)
	}
	expectedValues := []float64{300, 100.5, 0}
	if !reflect.DeepEqual(config.Data.Datasets[0].Data, expectedValues) {
		t.Fatalf("expected values %#v, got %#v", expectedValues, config.Data.Datasets[0].Data)
	}
	if config.Type != TypeLine {
		t.Fatalf("expected line chart, got %q", config.Type)
	}
	if config.Options.Plugins.Legend == nil || config.Options.Plugins.Legend.Display {
		t.Fatal("expected hidden legend")
	}
	if format := config.Options.Scales["y"].Ticks.Format; format == nil || format.Suffix != CurrencySuffix {
		t.Fatalf("expected currency tick format, got %#v", format)
	}
}

func TestTopProductsUsesDualAxes(t *testing.T) {
	t.Parallel()

	raw := `[
		{"product_name":"Tea","total_sales":900,"total_quantity":30},
		{"product_name":"Coffee","total_sales":700,"total_quantity":45},
		{"product_name":"Dates","total_sales":200,"total_quantity":5}
	]`
	config := TopProducts(raw, testLocale())

	if config.Type != TypeBar {
		t.Fatalf("expected bar chart, got %q", config.Type)
	}
	if !reflect.DeepEqual(config.Data.Labels, []string{"Tea", "Coffee", "Dates"}) {
		t.Fatalf("unexpected labels %#v", config.Data.Labels)
	}
	if len(config.Data.Datasets) != 2 {
		t.Fatalf("expected sales and quantity datasets, got %d", len(config.Data.Datasets))
	}
	sales, quantities := config.Data.Datasets[0], config.Data.Datasets[1]
	if sales.YAxisID != "y" || quantities.YAxisID != "y1" {
		t.Fatalf("expected y/y1 axes, got %q/%q", sales.YAxisID, quantities.YAxisID)
	}
	if !reflect.DeepEqual(quantities.Data, []float64{30, 45, 5}) {
		t.Fatalf("unexpected quantities %#v", quantities.Data)
	}
	right := config.Options.Scales["y1"]
	if right.Position != "right" || right.Grid == nil || right.Grid.DrawOnChartArea == nil || *right.Grid.DrawOnChartArea {
		t.Fatalf("expected right axis without chart area grid, got %#v", right)
	}
}

func TestCategoryPaletteMatchesLabelCount(t *testing.T) {
	t.Parallel()

	raw := `[{"category":"Drinks","total_sales":60,"percentage":60},{"category":"Food","total_sales":40,"percentage":40}]`
	config := Category(raw, testLocale())

	dataset := config.Data.Datasets[0]
	if len(dataset.BackgroundColor) != 2 {
		t.Fatalf("expected two colors, got %#v", dataset.BackgroundColor)
	}
	if config.Options.Cutout != "60%" {
		t.Fatalf("expected 60%% cutout, got %q", config.Options.Cutout)
	}
	format := config.Options.Plugins.Tooltip.Format
	if format == nil || !reflect.DeepEqual(format.Shares, []float64{60, 40}) {
		t.Fatalf("expected tooltip shares [60 40], got %#v", format)
	}
}

func TestCategoryPaletteIsCapped(t *testing.T) {
	t.Parallel()

	records := make([]CategoryShare, 0, 15)
	for index := 0; index < 15; index++ {
		records = append(records, CategoryShare{Category: strings.Repeat("c", index+1), TotalSales: 1})
	}
	config := Category(EncodeRecords(records), testLocale())

	if got := len(config.Data.Datasets[0].BackgroundColor); got != len(categoryPalette) {
		t.Fatalf("expected palette capped at %d, got %d", len(categoryPalette), got)
	}
	if got := len(config.Data.Labels); got != 15 {
		t.Fatalf("expected all 15 labels, got %d", got)
	}
}

func TestSalesTrendProjectsTransactionsOnSecondAxis(t *testing.T) {
	t.Parallel()

	raw := `[{"date":"2026-01-01","total_price":50,"sale_id":2},{"date":"2026-01-02","total_price":75,"sale_id":3}]`
	config := SalesTrend(raw, testLocale())

	transactions := config.Data.Datasets[1]
	if !reflect.DeepEqual(transactions.Data, []float64{2, 3}) {
		t.Fatalf("unexpected transactions %#v", transactions.Data)
	}
	if !reflect.DeepEqual(transactions.BorderDash, []int{5, 5}) {
		t.Fatalf("expected dashed transactions line, got %#v", transactions.BorderDash)
	}
	if tooltip := config.Options.Plugins.Tooltip; tooltip == nil || tooltip.Mode != "index" || *tooltip.Intersect {
		t.Fatalf("expected index tooltip without intersect, got %#v", tooltip)
	}
}

func TestWeekdayAndPeakHoursLabels(t *testing.T) {
	t.Parallel()

	weekday := Weekday(`[{"weekday_ar":"الاثنين","total_sales":10},{"weekday_ar":"الثلاثاء","total_sales":20}]`, testLocale())
	if !reflect.DeepEqual(weekday.Data.Labels, []string{"الاثنين", "الثلاثاء"}) {
		t.Fatalf("unexpected weekday labels %#v", weekday.Data.Labels)
	}
	if weekday.Data.Datasets[0].BorderRadius != 5 {
		t.Fatalf("expected rounded weekday bars")
	}

	hours := PeakHours(`[{"label":"09:00 - 10:00","total_sales":5}]`, testLocale())
	if !reflect.DeepEqual(hours.Data.Labels, []string{"09:00 - 10:00"}) {
		t.Fatalf("unexpected peak hour labels %#v", hours.Data.Labels)
	}
}

func TestLocaleMessagesOverrideCaptions(t *testing.T) {
	t.Parallel()

	locale := NewLocale("en", map[string]string{"charts.monthly.dataset": "Monthly sales"})
	config := MonthlySales("[]", locale)
	if config.Data.Datasets[0].Label != "Monthly sales" {
		t.Fatalf("expected translated caption, got %q", config.Data.Datasets[0].Label)
	}

	fallback := MonthlySales("[]", NewLocale("en", nil))
	if fallback.Data.Datasets[0].Label != defaultTexts["charts.monthly.dataset"] {
		t.Fatalf("expected default caption, got %q", fallback.Data.Datasets[0].Label)
	}
}

func TestBuildDashboardCoversEveryCanvas(t *testing.T) {
	t.Parallel()

	configs := BuildDashboard(MapLookup(map[string]string{
		FieldMonthly: `[{"label":"Jan","total_sales":1}]`,
		FieldDaily:   "broken",
	}), testLocale())

	if len(configs) != len(Widgets) {
		t.Fatalf("expected %d configs, got %d", len(Widgets), len(configs))
	}
	if got := configs[CanvasMonthlySales].Data.Labels; !reflect.DeepEqual(got, []string{"Jan"}) {
		t.Fatalf("unexpected monthly labels %#v", got)
	}
	if got := configs[CanvasSalesTrend].Data.Labels; len(got) != 0 {
		t.Fatalf("expected empty trend chart, got %#v", got)
	}
	if _, ok := configs[CanvasCategory]; !ok {
		t.Fatal("expected category chart for absent field")
	}
}

func TestConfigJSONShape(t *testing.T) {
	t.Parallel()

	serialized, err := json.Marshal(Category(`[{"category":"Drinks","total_sales":5,"percentage":100}]`, testLocale()))
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}

	decoded := map[string]any{}
	if err := json.Unmarshal(serialized, &decoded); err != nil {
		t.Fatalf("decode config: %v", err)
	}
	datasets := decoded["data"].(map[string]any)["datasets"].([]any)
	dataset := datasets[0].(map[string]any)
	if dataset["backgroundColor"] != "#667eea" {
		t.Fatalf("expected single color as bare string, got %#v", dataset["backgroundColor"])
	}
	if width, ok := dataset["borderWidth"].(float64); !ok || width != 0 {
		t.Fatalf("expected explicit zero border width, got %#v", dataset["borderWidth"])
	}
}

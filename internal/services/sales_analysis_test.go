package services

import (
	"testing"
	"time"

	"github.com/terraincognita07/salesboard/internal/models"
)

func testSale(productID uint, name string, category string, quantity int, total float64, saleDate string) models.Sale {
	parsed, err := time.Parse("2006-01-02 15:04", saleDate)
	if err != nil {
		panic(err)
	}
	return models.Sale{
		ProductID:  productID,
		Product:    models.Product{ID: productID, Name: name, Category: category},
		Quantity:   quantity,
		TotalPrice: total,
		SaleDate:   parsed,
	}
}

func sampleSales() []models.Sale {
	return []models.Sale{
		testSale(1, "قهوة", "مشروبات", 2, 20, "2026-01-05 09:15"),
		testSale(2, "كعك", "مخبوزات", 1, 5, "2026-01-06 10:30"),
		testSale(1, "قهوة", "مشروبات", 3, 30, "2026-02-02 09:45"),
		testSale(3, "شاي", "مشروبات", 4, 12, "2026-02-08 17:00"),
		testSale(2, "كعك", "مخبوزات", 6, 33, "2026-02-09 10:05"),
	}
}

func TestCalculateKPIs(t *testing.T) {
	kpis := CalculateKPIs(sampleSales())
	if kpis.TotalSales != 100 {
		t.Fatalf("expected total sales 100, got %v", kpis.TotalSales)
	}
	if kpis.TotalTransactions != 5 || kpis.TotalQuantity != 16 {
		t.Fatalf("unexpected counts: %#v", kpis)
	}
	if kpis.AvgTransactionValue != 20 {
		t.Fatalf("expected average 20, got %v", kpis.AvgTransactionValue)
	}
	if kpis.MaxSale != 33 || kpis.MinSale != 5 {
		t.Fatalf("expected max 33 and min 5, got %v and %v", kpis.MaxSale, kpis.MinSale)
	}
	if kpis.UniqueProducts != 3 {
		t.Fatalf("expected 3 unique products, got %d", kpis.UniqueProducts)
	}
}

func TestCalculateKPIsEmpty(t *testing.T) {
	if kpis := CalculateKPIs(nil); kpis != (KPIs{}) {
		t.Fatalf("expected zero KPIs, got %#v", kpis)
	}
}

func TestTopAndBottomProducts(t *testing.T) {
	sales := sampleSales()

	top := TopProducts(sales, 2, RankBySales)
	if len(top) != 2 || top[0].ProductName != "قهوة" || top[0].TotalSales != 50 {
		t.Fatalf("unexpected top products: %#v", top)
	}
	if top[0].AvgPrice != 10 {
		t.Fatalf("expected average price 10, got %v", top[0].AvgPrice)
	}

	byQuantity := TopProducts(sales, 1, RankByQuantity)
	if len(byQuantity) != 1 || byQuantity[0].ProductName != "كعك" {
		t.Fatalf("expected كعك first by quantity, got %#v", byQuantity)
	}

	bottom := BottomProducts(sales, 1)
	if len(bottom) != 1 || bottom[0].ProductName != "شاي" {
		t.Fatalf("expected شاي last, got %#v", bottom)
	}
}

func TestSalesOverTimeOrdersBuckets(t *testing.T) {
	sales := sampleSales()
	// Out of order input must still produce chronological buckets.
	sales[0], sales[4] = sales[4], sales[0]

	monthly := SalesOverTime(sales, PeriodMonthly, time.UTC)
	if len(monthly) != 2 {
		t.Fatalf("expected 2 months, got %d", len(monthly))
	}
	if monthly[0].Label != "January 2026" || monthly[0].TotalSales != 25 {
		t.Fatalf("unexpected first month: %#v", monthly[0])
	}
	if monthly[1].Label != "February 2026" || monthly[1].TotalSales != 75 || monthly[1].TransactionCount != 3 {
		t.Fatalf("unexpected second month: %#v", monthly[1])
	}

	daily := SalesOverTime(sales, PeriodDaily, time.UTC)
	if len(daily) != 5 || daily[0].Date != "2026-01-05" || daily[4].Date != "2026-02-09" {
		t.Fatalf("unexpected daily buckets: %#v", daily)
	}

	yearly := SalesOverTime(sales, PeriodYearly, time.UTC)
	if len(yearly) != 1 || yearly[0].Label != "2026" {
		t.Fatalf("unexpected yearly buckets: %#v", yearly)
	}

	weekly := SalesOverTime(sales, PeriodWeekly, time.UTC)
	if len(weekly) == 0 || weekly[0].Week != 2 {
		t.Fatalf("expected ISO week 2 first, got %#v", weekly)
	}
}

func TestWeeklyBucketsUseISOYear(t *testing.T) {
	sales := []models.Sale{
		testSale(1, "قهوة", "", 1, 10, "2025-12-30 09:00"),
		testSale(1, "قهوة", "", 1, 15, "2026-01-02 09:00"),
		testSale(1, "قهوة", "", 1, 20, "2026-12-31 09:00"),
	}

	weekly := SalesOverTime(sales, PeriodWeekly, time.UTC)
	if len(weekly) != 2 {
		t.Fatalf("expected two weekly buckets, got %#v", weekly)
	}
	for _, bucket := range weekly {
		switch bucket.Week {
		case 1:
			if bucket.Year != 2026 || bucket.TransactionCount != 2 || bucket.TotalSales != 25 {
				t.Fatalf("expected the turn of the year in 2026 week 1, got %#v", bucket)
			}
		case 53:
			if bucket.Year != 2026 || bucket.TransactionCount != 1 {
				t.Fatalf("expected 2026 week 53 on its own, got %#v", bucket)
			}
		default:
			t.Fatalf("unexpected weekly bucket %#v", bucket)
		}
	}
}

func TestSalesOverTimeUsesLocation(t *testing.T) {
	riyadh := time.FixedZone("AST", 3*60*60)
	sales := []models.Sale{testSale(1, "قهوة", "", 1, 10, "2026-01-31 22:30")}

	months := SalesOverTime(sales, PeriodMonthly, riyadh)
	if len(months) != 1 || months[0].Month != 2 {
		t.Fatalf("expected sale to land in February locally, got %#v", months)
	}
}

func TestParsePeriodFallsBackToMonthly(t *testing.T) {
	tests := []struct {
		raw  string
		want Period
		ok   bool
	}{
		{raw: "daily", want: PeriodDaily, ok: true},
		{raw: " Weekly ", want: PeriodWeekly, ok: true},
		{raw: "yearly", want: PeriodYearly, ok: true},
		{raw: "", want: PeriodMonthly, ok: false},
		{raw: "hourly", want: PeriodMonthly, ok: false},
	}
	for _, testCase := range tests {
		got, ok := ParsePeriod(testCase.raw)
		if got != testCase.want || ok != testCase.ok {
			t.Fatalf("ParsePeriod(%q) = (%q, %v), want (%q, %v)", testCase.raw, got, ok, testCase.want, testCase.ok)
		}
	}
}

func TestCategoryBreakdownPercentages(t *testing.T) {
	stats := CategoryBreakdown(sampleSales())
	if len(stats) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(stats))
	}
	if stats[0].Category != "مشروبات" || stats[0].Percentage != 62 || stats[0].UniqueProducts != 2 {
		t.Fatalf("unexpected first category: %#v", stats[0])
	}
	if stats[1].Percentage != 38 {
		t.Fatalf("expected 38%% for second category, got %v", stats[1].Percentage)
	}
}

func TestCategoryBreakdownDefaultsBlankCategory(t *testing.T) {
	stats := CategoryBreakdown([]models.Sale{testSale(1, "x", "", 1, 3, "2026-01-01 10:00")})
	if len(stats) != 1 || stats[0].Category != models.DefaultCategory {
		t.Fatalf("expected default category, got %#v", stats)
	}
}

func TestPeakHoursLabels(t *testing.T) {
	hours := PeakHours(sampleSales(), time.UTC)
	if len(hours) != 3 {
		t.Fatalf("expected 3 distinct hours, got %d", len(hours))
	}
	if hours[0].Hour != 9 || hours[0].Label != "09:00 - 10:00" || hours[0].TransactionCount != 2 {
		t.Fatalf("unexpected first hour: %#v", hours[0])
	}
	if hours[2].Label != "17:00 - 18:00" {
		t.Fatalf("unexpected last hour label %q", hours[2].Label)
	}
}

func TestWeekdayBreakdownStartsOnMonday(t *testing.T) {
	days := WeekdayBreakdown(sampleSales(), time.UTC)
	// 2026-01-05 and 2026-02-02 and 2026-02-09 are Mondays, 2026-01-06 a
	// Tuesday and 2026-02-08 a Sunday.
	if len(days) != 3 {
		t.Fatalf("expected 3 weekdays, got %#v", days)
	}
	if days[0].WeekdayAr != "الاثنين" || days[0].WeekdayNum != 0 || days[0].TotalSales != 83 {
		t.Fatalf("unexpected Monday bucket: %#v", days[0])
	}
	if days[2].WeekdayAr != "الأحد" || days[2].WeekdayEn != "Sunday" {
		t.Fatalf("expected Sunday last, got %#v", days[2])
	}
}

func TestEstimateProfitUsesThirtyPercentMargin(t *testing.T) {
	profit := EstimateProfit(sampleSales())
	if profit.EstimatedProfit != 30 || profit.EstimatedCost != 70 || profit.ProfitMargin != 30 {
		t.Fatalf("unexpected profit estimate: %#v", profit)
	}
}

func TestGenerateInsightsReportsMonthOverMonthChange(t *testing.T) {
	insights := GenerateInsights(sampleSales(), time.UTC)
	found := false
	for _, insight := range insights {
		if insight.Type == InsightPositive && insight.Title == "📈 نمو إيجابي" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected growth insight, got %#v", insights)
	}

	declining := []models.Sale{
		testSale(1, "قهوة", "", 1, 100, "2026-01-05 09:00"),
		testSale(1, "قهوة", "", 1, 50, "2026-02-05 09:00"),
	}
	found = false
	for _, insight := range GenerateInsights(declining, time.UTC) {
		if insight.Type == InsightNegative {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected decline insight")
	}
}

func TestGenerateInsightsEmpty(t *testing.T) {
	insights := GenerateInsights(nil, time.UTC)
	if insights == nil || len(insights) != 0 {
		t.Fatalf("expected empty non-nil insights, got %#v", insights)
	}
}

func TestLastMonthChangeWithinTenPercentIsSilent(t *testing.T) {
	change, ok := lastMonthChange([]TimeBucket{{TotalSales: 100}, {TotalSales: 105}})
	if !ok || change != 5 {
		t.Fatalf("expected 5%% change, got %v (%v)", change, ok)
	}
	if _, ok := lastMonthChange([]TimeBucket{{TotalSales: 0}, {TotalSales: 10}}); ok {
		t.Fatalf("expected no change when previous month is zero")
	}
}

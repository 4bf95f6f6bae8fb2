package services

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/terraincognita07/salesboard/internal/models"
)

type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

var Periods = []Period{PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodYearly}

func ParsePeriod(raw string) (Period, bool) {
	candidate := Period(strings.ToLower(strings.TrimSpace(raw)))
	for _, period := range Periods {
		if period == candidate {
			return period, true
		}
	}
	return PeriodMonthly, false
}

type ProductRanking string

const (
	RankBySales        ProductRanking = "total_price"
	RankByQuantity     ProductRanking = "quantity"
	RankByTransactions ProductRanking = "transactions"
)

const estimatedProfitMargin = 0.30

type KPIs struct {
	TotalSales          float64 `json:"total_sales"`
	TotalTransactions   int     `json:"total_transactions"`
	AvgTransactionValue float64 `json:"avg_transaction_value"`
	TotalQuantity       int     `json:"total_quantity"`
	AvgQuantity         float64 `json:"avg_quantity"`
	MaxSale             float64 `json:"max_sale"`
	MinSale             float64 `json:"min_sale"`
	UniqueProducts      int     `json:"unique_products"`
}

type ProductStat struct {
	ProductID        uint    `json:"product_id"`
	ProductName      string  `json:"product_name"`
	Category         string  `json:"category"`
	TotalSales       float64 `json:"total_sales"`
	TotalQuantity    int     `json:"total_quantity"`
	TransactionCount int     `json:"transaction_count"`
	AvgPrice         float64 `json:"avg_price"`
}

type TimeBucket struct {
	Label            string  `json:"label"`
	Date             string  `json:"date,omitempty"`
	Year             int     `json:"year,omitempty"`
	Month            int     `json:"month,omitempty"`
	Week             int     `json:"week,omitempty"`
	TotalSales       float64 `json:"total_sales"`
	TotalQuantity    int     `json:"total_quantity"`
	TransactionCount int     `json:"transaction_count"`
}

type CategoryStat struct {
	Category         string  `json:"category"`
	TotalSales       float64 `json:"total_sales"`
	TotalQuantity    int     `json:"total_quantity"`
	UniqueProducts   int     `json:"unique_products"`
	TransactionCount int     `json:"transaction_count"`
	Percentage       float64 `json:"percentage"`
}

type HourStat struct {
	Hour             int     `json:"hour"`
	Label            string  `json:"label"`
	TotalSales       float64 `json:"total_sales"`
	TransactionCount int     `json:"transaction_count"`
}

type WeekdayStat struct {
	WeekdayNum       int     `json:"weekday_num"`
	WeekdayEn        string  `json:"weekday_en"`
	WeekdayAr        string  `json:"weekday_ar"`
	TotalSales       float64 `json:"total_sales"`
	TransactionCount int     `json:"transaction_count"`
}

type ProfitEstimate struct {
	TotalRevenue    float64 `json:"total_revenue"`
	EstimatedCost   float64 `json:"estimated_cost"`
	EstimatedProfit float64 `json:"estimated_profit"`
	ProfitMargin    float64 `json:"profit_margin"`
	Note            string  `json:"note"`
}

const (
	InsightPositive = "positive"
	InsightNegative = "negative"
	InsightWarning  = "warning"
	InsightInfo     = "info"
)

type Insight struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// arabicWeekdays is indexed Monday first.
var arabicWeekdays = []string{"الاثنين", "الثلاثاء", "الأربعاء", "الخميس", "الجمعة", "السبت", "الأحد"}

func mondayIndex(day time.Weekday) int {
	return (int(day) + 6) % 7
}

func roundTo(value float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(value*scale) / scale
}

func productKey(sale models.Sale) (string, string) {
	name := strings.TrimSpace(sale.Product.Name)
	if name == "" {
		name = "غير معروف"
	}
	return name, sale.Product.CategoryOrDefault()
}

func CalculateKPIs(sales []models.Sale) KPIs {
	if len(sales) == 0 {
		return KPIs{}
	}

	kpis := KPIs{
		TotalTransactions: len(sales),
		MaxSale:           math.Inf(-1),
		MinSale:           math.Inf(1),
	}
	products := make(map[string]struct{})
	for _, sale := range sales {
		kpis.TotalSales += sale.TotalPrice
		kpis.TotalQuantity += sale.Quantity
		kpis.MaxSale = math.Max(kpis.MaxSale, sale.TotalPrice)
		kpis.MinSale = math.Min(kpis.MinSale, sale.TotalPrice)
		name, _ := productKey(sale)
		products[name] = struct{}{}
	}
	kpis.AvgTransactionValue = kpis.TotalSales / float64(len(sales))
	kpis.AvgQuantity = float64(kpis.TotalQuantity) / float64(len(sales))
	kpis.UniqueProducts = len(products)
	return kpis
}

func aggregateProducts(sales []models.Sale) []ProductStat {
	index := make(map[uint]int)
	stats := make([]ProductStat, 0)
	for _, sale := range sales {
		position, ok := index[sale.ProductID]
		if !ok {
			name, category := productKey(sale)
			stats = append(stats, ProductStat{ProductID: sale.ProductID, ProductName: name, Category: category})
			position = len(stats) - 1
			index[sale.ProductID] = position
		}
		stats[position].TotalSales += sale.TotalPrice
		stats[position].TotalQuantity += sale.Quantity
		stats[position].TransactionCount++
	}

	for position := range stats {
		if stats[position].TotalQuantity > 0 {
			stats[position].AvgPrice = stats[position].TotalSales / float64(stats[position].TotalQuantity)
		}
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].ProductID < stats[j].ProductID
	})
	return stats
}

func headProducts(stats []ProductStat, limit int) []ProductStat {
	if limit >= 0 && len(stats) > limit {
		return stats[:limit]
	}
	return stats
}

func TopProducts(sales []models.Sale, limit int, by ProductRanking) []ProductStat {
	stats := aggregateProducts(sales)
	switch by {
	case RankByQuantity:
		sort.SliceStable(stats, func(i, j int) bool { return stats[i].TotalQuantity > stats[j].TotalQuantity })
	case RankByTransactions:
		sort.SliceStable(stats, func(i, j int) bool { return stats[i].TransactionCount > stats[j].TransactionCount })
	default:
		sort.SliceStable(stats, func(i, j int) bool { return stats[i].TotalSales > stats[j].TotalSales })
	}
	return headProducts(stats, limit)
}

func BottomProducts(sales []models.Sale, limit int) []ProductStat {
	stats := aggregateProducts(sales)
	sort.SliceStable(stats, func(i, j int) bool { return stats[i].TotalSales < stats[j].TotalSales })
	return headProducts(stats, limit)
}

type bucketKey struct {
	year  int
	month int
	week  int
	day   int
}

// SalesOverTime groups sales into chronologically ordered buckets for the
// period, using location for calendar boundaries.
func SalesOverTime(sales []models.Sale, period Period, location *time.Location) []TimeBucket {
	if location == nil {
		location = time.UTC
	}

	index := make(map[bucketKey]int)
	keys := make([]bucketKey, 0)
	buckets := make([]TimeBucket, 0)
	for _, sale := range sales {
		local := sale.SaleDate.In(location)
		key, bucket := periodBucket(local, period)
		position, ok := index[key]
		if !ok {
			buckets = append(buckets, bucket)
			keys = append(keys, key)
			position = len(buckets) - 1
			index[key] = position
		}
		buckets[position].TotalSales += sale.TotalPrice
		buckets[position].TotalQuantity += sale.Quantity
		buckets[position].TransactionCount++
	}

	order := make([]int, len(buckets))
	for position := range order {
		order[position] = position
	}
	sort.SliceStable(order, func(i, j int) bool {
		left, right := keys[order[i]], keys[order[j]]
		if left.year != right.year {
			return left.year < right.year
		}
		if left.month != right.month {
			return left.month < right.month
		}
		if left.week != right.week {
			return left.week < right.week
		}
		return left.day < right.day
	})

	sorted := make([]TimeBucket, 0, len(buckets))
	for _, position := range order {
		sorted = append(sorted, buckets[position])
	}
	return sorted
}

func periodBucket(local time.Time, period Period) (bucketKey, TimeBucket) {
	switch period {
	case PeriodDaily:
		day := local.Format("2006-01-02")
		return bucketKey{year: local.Year(), month: int(local.Month()), day: local.Day()},
			TimeBucket{Label: day, Date: day}
	case PeriodWeekly:
		year, week := local.ISOWeek()
		return bucketKey{year: year, week: week},
			TimeBucket{Label: fmt.Sprintf("الأسبوع %d, %d", week, year), Year: year, Week: week}
	case PeriodYearly:
		return bucketKey{year: local.Year()},
			TimeBucket{Label: fmt.Sprintf("%d", local.Year()), Year: local.Year()}
	default:
		return bucketKey{year: local.Year(), month: int(local.Month())},
			TimeBucket{Label: local.Format("January 2006"), Year: local.Year(), Month: int(local.Month())}
	}
}

func CategoryBreakdown(sales []models.Sale) []CategoryStat {
	index := make(map[string]int)
	productSets := make([]map[uint]struct{}, 0)
	stats := make([]CategoryStat, 0)
	grandTotal := 0.0
	for _, sale := range sales {
		_, category := productKey(sale)
		position, ok := index[category]
		if !ok {
			stats = append(stats, CategoryStat{Category: category})
			productSets = append(productSets, map[uint]struct{}{})
			position = len(stats) - 1
			index[category] = position
		}
		stats[position].TotalSales += sale.TotalPrice
		stats[position].TotalQuantity += sale.Quantity
		stats[position].TransactionCount++
		productSets[position][sale.ProductID] = struct{}{}
		grandTotal += sale.TotalPrice
	}

	for position := range stats {
		stats[position].UniqueProducts = len(productSets[position])
		if grandTotal > 0 {
			stats[position].Percentage = roundTo(stats[position].TotalSales/grandTotal*100, 2)
		}
	}
	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].TotalSales == stats[j].TotalSales {
			return stats[i].Category < stats[j].Category
		}
		return stats[i].TotalSales > stats[j].TotalSales
	})
	return stats
}

func PeakHours(sales []models.Sale, location *time.Location) []HourStat {
	if location == nil {
		location = time.UTC
	}

	var totals [24]HourStat
	seen := [24]bool{}
	for _, sale := range sales {
		hour := sale.SaleDate.In(location).Hour()
		seen[hour] = true
		totals[hour].TotalSales += sale.TotalPrice
		totals[hour].TransactionCount++
	}

	stats := make([]HourStat, 0)
	for hour := 0; hour < 24; hour++ {
		if !seen[hour] {
			continue
		}
		stat := totals[hour]
		stat.Hour = hour
		stat.Label = fmt.Sprintf("%02d:00 - %02d:00", hour, hour+1)
		stats = append(stats, stat)
	}
	return stats
}

func WeekdayBreakdown(sales []models.Sale, location *time.Location) []WeekdayStat {
	if location == nil {
		location = time.UTC
	}

	var totals [7]WeekdayStat
	seen := [7]bool{}
	for _, sale := range sales {
		day := sale.SaleDate.In(location).Weekday()
		position := mondayIndex(day)
		seen[position] = true
		totals[position].WeekdayEn = day.String()
		totals[position].TotalSales += sale.TotalPrice
		totals[position].TransactionCount++
	}

	stats := make([]WeekdayStat, 0)
	for position := 0; position < 7; position++ {
		if !seen[position] {
			continue
		}
		stat := totals[position]
		stat.WeekdayNum = position
		stat.WeekdayAr = arabicWeekdays[position]
		stats = append(stats, stat)
	}
	return stats
}

func EstimateProfit(sales []models.Sale) ProfitEstimate {
	revenue := 0.0
	for _, sale := range sales {
		revenue += sale.TotalPrice
	}
	return ProfitEstimate{
		TotalRevenue:    revenue,
		EstimatedCost:   revenue * (1 - estimatedProfitMargin),
		EstimatedProfit: revenue * estimatedProfitMargin,
		ProfitMargin:    estimatedProfitMargin * 100,
		Note:            "تقديري (هامش ربح 30%)",
	}
}

func GenerateInsights(sales []models.Sale, location *time.Location) []Insight {
	insights := make([]Insight, 0)
	if len(sales) == 0 {
		return insights
	}

	if top := TopProducts(sales, 1, RankBySales); len(top) > 0 {
		insights = append(insights, Insight{
			Type:    InsightPositive,
			Title:   "🌟 أفضل منتج",
			Message: fmt.Sprintf("منتج %s هو الأكثر مبيعاً بإجمالي %.2f", top[0].ProductName, top[0].TotalSales),
		})
	}

	if bottom := BottomProducts(sales, 1); len(bottom) > 0 && bottom[0].TotalSales > 0 {
		insights = append(insights, Insight{
			Type:    InsightWarning,
			Title:   "⚠️ منتج يحتاج اهتمام",
			Message: fmt.Sprintf("منتج %s مبيعاته منخفضة (%.2f)", bottom[0].ProductName, bottom[0].TotalSales),
		})
	}

	if weekdays := WeekdayBreakdown(sales, location); len(weekdays) > 0 {
		best := weekdays[0]
		for _, day := range weekdays[1:] {
			if day.TotalSales > best.TotalSales {
				best = day
			}
		}
		insights = append(insights, Insight{
			Type:    InsightInfo,
			Title:   "📅 أفضل يوم للمبيعات",
			Message: fmt.Sprintf("يوم %s هو الأعلى مبيعاً", best.WeekdayAr),
		})
	}

	if hours := PeakHours(sales, location); len(hours) > 0 {
		best := hours[0]
		for _, hour := range hours[1:] {
			if hour.TotalSales > best.TotalSales {
				best = hour
			}
		}
		insights = append(insights, Insight{
			Type:    InsightInfo,
			Title:   "⏰ أفضل وقت للبيع",
			Message: fmt.Sprintf("الساعة %s هي ذروة المبيعات", best.Label),
		})
	}

	if kpis := CalculateKPIs(sales); kpis.AvgTransactionValue > 0 {
		insights = append(insights, Insight{
			Type:    InsightInfo,
			Title:   "💰 متوسط قيمة العملية",
			Message: fmt.Sprintf("متوسط قيمة الفاتورة هو %.2f", kpis.AvgTransactionValue),
		})
	}

	if change, ok := lastMonthChange(SalesOverTime(sales, PeriodMonthly, location)); ok {
		switch {
		case change > 10:
			insights = append(insights, Insight{
				Type:    InsightPositive,
				Title:   "📈 نمو إيجابي",
				Message: fmt.Sprintf("المبيعات ارتفعت %.1f%% مقارنة بالشهر الماضي", change),
			})
		case change < -10:
			insights = append(insights, Insight{
				Type:    InsightNegative,
				Title:   "📉 انخفاض في المبيعات",
				Message: fmt.Sprintf("المبيعات انخفضت %.1f%% مقارنة بالشهر الماضي", math.Abs(change)),
			})
		}
	}

	return insights
}

// lastMonthChange compares the two most recent months with sales.
func lastMonthChange(months []TimeBucket) (float64, bool) {
	if len(months) < 2 {
		return 0, false
	}
	last := months[len(months)-1].TotalSales
	previous := months[len(months)-2].TotalSales
	if previous <= 0 {
		return 0, false
	}
	return (last - previous) / previous * 100, true
}

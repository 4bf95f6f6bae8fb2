package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/terraincognita07/salesboard/internal/models"
)

var ErrNoSales = errors.New("no sales recorded")

const (
	defaultProductLimit = 5
)

type SaleReader interface {
	ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.Sale, error)
}

type AnalysisStore interface {
	Create(analysis *models.Analysis) error
	LatestByUser(userID uint) (models.Analysis, bool, error)
}

type Report struct {
	AnalysisID     uint           `json:"analysis_id,omitempty"`
	AnalysisDate   time.Time      `json:"analysis_date"`
	KPIs           KPIs           `json:"kpis"`
	TopProducts    []ProductStat  `json:"top_products"`
	BottomProducts []ProductStat  `json:"bottom_products"`
	DailySales     []TimeBucket   `json:"daily_sales"`
	MonthlySales   []TimeBucket   `json:"monthly_sales"`
	Categories     []CategoryStat `json:"categories"`
	PeakHours      []HourStat     `json:"peak_hours"`
	Weekdays       []WeekdayStat  `json:"weekdays"`
	Profit         ProfitEstimate `json:"profit_analysis"`
	Insights       []Insight      `json:"insights"`
}

// EmptyReport is what the dashboard renders before any sales exist: every
// series is present and empty.
func EmptyReport(now time.Time) Report {
	return Report{
		AnalysisDate:   now,
		TopProducts:    []ProductStat{},
		BottomProducts: []ProductStat{},
		DailySales:     []TimeBucket{},
		MonthlySales:   []TimeBucket{},
		Categories:     []CategoryStat{},
		PeakHours:      []HourStat{},
		Weekdays:       []WeekdayStat{},
		Insights:       []Insight{},
	}
}

type AnalyzerService struct {
	sales    SaleReader
	analyses AnalysisStore
	location *time.Location
	now      func() time.Time
}

func NewAnalyzerService(sales SaleReader, analyses AnalysisStore, location *time.Location) *AnalyzerService {
	if location == nil {
		location = time.UTC
	}
	return &AnalyzerService{
		sales:    sales,
		analyses: analyses,
		location: location,
		now:      time.Now,
	}
}

func (service *AnalyzerService) loadSales(userID uint, from *time.Time, to *time.Time) ([]models.Sale, error) {
	sales, err := service.sales.ListByUserRange(userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("load sales: %w", err)
	}
	if len(sales) == 0 {
		return nil, ErrNoSales
	}
	return sales, nil
}

func (service *AnalyzerService) SalesOverTime(userID uint, period Period) ([]TimeBucket, error) {
	sales, err := service.loadSales(userID, nil, nil)
	if err != nil {
		return nil, err
	}
	return SalesOverTime(sales, period, service.location), nil
}

// FullAnalysis computes every dashboard series and persists a snapshot of
// the headline figures. The latest snapshot is reused when it was computed
// from the same sales. A failed snapshot write does not fail the analysis.
func (service *AnalyzerService) FullAnalysis(userID uint, from *time.Time, to *time.Time) (Report, error) {
	sales, err := service.loadSales(userID, from, to)
	if err != nil {
		return Report{}, err
	}

	report := BuildReport(sales, service.now().In(service.location), service.location)
	if service.analyses != nil {
		report.AnalysisID = service.saveSnapshot(snapshotFromReport(userID, report, sales))
	}
	return report, nil
}

// LatestSnapshot returns the most recent stored snapshot for userID.
func (service *AnalyzerService) LatestSnapshot(userID uint) (models.Analysis, bool, error) {
	if service.analyses == nil {
		return models.Analysis{}, false, nil
	}
	snapshot, found, err := service.analyses.LatestByUser(userID)
	if err != nil {
		return models.Analysis{}, false, fmt.Errorf("load latest analysis: %w", err)
	}
	return snapshot, found, nil
}

func (service *AnalyzerService) saveSnapshot(snapshot models.Analysis) uint {
	latest, found, err := service.analyses.LatestByUser(snapshot.UserID)
	if err != nil {
		log.Printf("load analysis snapshot for user %d failed: %v", snapshot.UserID, err)
	} else if found && latest.SameSource(snapshot) {
		return latest.ID
	}

	if err := service.analyses.Create(&snapshot); err != nil {
		log.Printf("save analysis snapshot for user %d failed: %v", snapshot.UserID, err)
		return 0
	}
	return snapshot.ID
}

func BuildReport(sales []models.Sale, now time.Time, location *time.Location) Report {
	return Report{
		AnalysisDate:   now,
		KPIs:           CalculateKPIs(sales),
		TopProducts:    TopProducts(sales, defaultProductLimit, RankBySales),
		BottomProducts: BottomProducts(sales, defaultProductLimit),
		DailySales:     SalesOverTime(sales, PeriodDaily, location),
		MonthlySales:   SalesOverTime(sales, PeriodMonthly, location),
		Categories:     CategoryBreakdown(sales),
		PeakHours:      PeakHours(sales, location),
		Weekdays:       WeekdayBreakdown(sales, location),
		Profit:         EstimateProfit(sales),
		Insights:       GenerateInsights(sales, location),
	}
}

func snapshotFromReport(userID uint, report Report, sales []models.Sale) models.Analysis {
	snapshot := models.Analysis{
		UserID:       userID,
		TotalSales:   report.KPIs.TotalSales,
		TotalProfit:  report.Profit.EstimatedProfit,
		SalesCount:   len(sales),
		AnalysisDate: report.AnalysisDate,
	}
	for _, sale := range sales {
		if sale.ID > snapshot.LastSaleID {
			snapshot.LastSaleID = sale.ID
		}
	}
	if len(report.TopProducts) > 0 {
		snapshot.BestProduct = report.TopProducts[0].ProductName
	}
	if len(report.BottomProducts) > 0 {
		snapshot.WorstProduct = report.BottomProducts[0].ProductName
	}
	return snapshot
}

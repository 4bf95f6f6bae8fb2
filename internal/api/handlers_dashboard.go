package api

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/salesboard/internal/charts"
	"github.com/terraincognita07/salesboard/internal/dashboard"
	"github.com/terraincognita07/salesboard/internal/models"
	"github.com/terraincognita07/salesboard/internal/services"
)

type productTable struct {
	dashboard.TabState
	Products []services.ProductStat
}

type dashboardData struct {
	Report       services.Report
	HasData      bool
	Period       services.Period
	Fields       map[string]string
	LastAnalysis *models.Analysis
}

func (data dashboardData) chartConfigs(language string, messages map[string]string) map[string]charts.Config {
	return charts.BuildDashboard(charts.MapLookup(data.Fields), charts.NewLocale(language, messages))
}

func (handler *Handler) loadDashboardData(userID uint, period services.Period) (dashboardData, error) {
	report, err := handler.exportService.LoadReport(userID, nil, nil)
	if err != nil {
		return dashboardData{}, err
	}
	series, err := handler.periodSeries(userID, period, report)
	if err != nil {
		return dashboardData{}, err
	}
	data := dashboardData{
		Report:  report,
		HasData: report.KPIs.TotalTransactions > 0,
		Period:  period,
		Fields:  dashboard.HiddenFields(report, series),
	}
	snapshot, found, err := handler.analyzerService.LatestSnapshot(userID)
	if err != nil {
		return dashboardData{}, err
	}
	if found {
		data.LastAnalysis = &snapshot
	}
	return data, nil
}

// periodSeries returns the timeline for the selected period. Daily and
// monthly buckets are already part of the report.
func (handler *Handler) periodSeries(userID uint, period services.Period, report services.Report) ([]services.TimeBucket, error) {
	switch period {
	case services.PeriodMonthly:
		return report.MonthlySales, nil
	case services.PeriodDaily:
		return report.DailySales, nil
	}

	series, err := handler.analyzerService.SalesOverTime(userID, period)
	if errors.Is(err, services.ErrNoSales) {
		return []services.TimeBucket{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s series: %w", period, err)
	}
	return series, nil
}

func (handler *Handler) ShowDashboard(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	period, periodOptions := dashboard.SelectPeriod(c.Query("period"))
	data, err := handler.loadDashboardData(user.ID, period)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load dashboard")
	}

	language := handler.requestLanguage(c)
	messages := currentMessages(c)
	activeTab := handler.tabs.Resolve(c.Query("tab"))
	tables := make([]productTable, 0, len(handler.tabs))
	for _, state := range handler.tabs.Select(activeTab) {
		products := data.Report.TopProducts
		if state.ID == dashboard.TabBottom {
			products = data.Report.BottomProducts
		}
		tables = append(tables, productTable{TabState: state, Products: products})
	}

	flash := handler.popFlashCookie(c)
	return handler.render(c, "dashboard", fiber.Map{
		"Title":          localizedPageTitle(messages, "meta.title.dashboard", "Sales Board | Dashboard"),
		"Report":         data.Report,
		"HasData":        data.HasData,
		"HiddenFields":   dashboard.OrderedFields(data.Fields),
		"Canvases":       chartCanvases(),
		"ChartConfigs":   data.chartConfigs(language, messages),
		"ClientSettings": dashboard.NewClientSettings(language, period),
		"Periods":        periodOptions,
		"Tables":         tables,
		"Clock":          dashboard.FormatClock(language, time.Now().In(handler.location)),
		"UploadSummary":  flash.UploadSummary,
		"LastAnalysis":   data.LastAnalysis,
	})
}

type chartCanvas struct {
	ID       string
	TitleKey string
	Wide     bool
}

var canvasTitleKeys = map[string]string{
	charts.CanvasMonthlySales: "dashboard.chart.monthly",
	charts.CanvasTopProducts:  "dashboard.chart.top_products",
	charts.CanvasCategory:     "dashboard.chart.category",
	charts.CanvasPeakHours:    "dashboard.chart.peak_hours",
	charts.CanvasWeekday:      "dashboard.chart.weekday",
	charts.CanvasSalesTrend:   "dashboard.chart.trend",
}

func chartCanvases() []chartCanvas {
	canvases := make([]chartCanvas, 0, len(charts.Widgets))
	for _, widget := range charts.Widgets {
		canvases = append(canvases, chartCanvas{
			ID:       widget.Canvas,
			TitleKey: canvasTitleKeys[widget.Canvas],
			Wide:     widget.Canvas == charts.CanvasMonthlySales || widget.Canvas == charts.CanvasSalesTrend,
		})
	}
	return canvases
}

package api

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/salesboard/internal/charts"
	"github.com/terraincognita07/salesboard/internal/dashboard"
	"github.com/terraincognita07/salesboard/internal/services"
)

// Charts returns the hidden field payloads and chart configs for the
// selected period.
func (handler *Handler) Charts(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	period, _ := dashboard.SelectPeriod(c.Query("period"))
	data, err := handler.loadDashboardData(user.ID, period)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load charts")
	}

	return c.JSON(fiber.Map{
		"period":   period,
		"has_data": data.HasData,
		"fields":   data.Fields,
		"charts":   data.chartConfigs(handler.requestLanguage(c), currentMessages(c)),
	})
}

// RenderCharts builds configs straight from submitted hidden field values
// without touching storage. A canvas query narrows the answer to one chart.
func (handler *Handler) RenderCharts(c *fiber.Ctx) error {
	fields, err := parseChartFields(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	locale := charts.NewLocale(handler.requestLanguage(c), currentMessages(c))

	if canvas := strings.TrimSpace(c.Query("canvas")); canvas != "" {
		widget, found := charts.WidgetForCanvas(canvas)
		if !found {
			return apiError(c, fiber.StatusNotFound, "unknown chart")
		}
		return c.JSON(fiber.Map{
			"charts": map[string]charts.Config{widget.Canvas: widget.Build(fields[widget.Field], locale)},
		})
	}

	return c.JSON(fiber.Map{
		"charts": charts.BuildDashboard(charts.MapLookup(fields), locale),
	})
}

// parseChartFields reads hidden field values from a JSON object or a form.
// JSON values may be the raw array or the array encoded as a string.
func parseChartFields(c *fiber.Ctx) (map[string]string, error) {
	fields := make(map[string]string, len(charts.PayloadFields))
	if isJSONBody(c) {
		raw := map[string]json.RawMessage{}
		if err := json.Unmarshal(c.Body(), &raw); err != nil {
			return nil, err
		}
		for _, field := range charts.PayloadFields {
			value, ok := raw[field]
			if !ok {
				continue
			}
			var encoded string
			if err := json.Unmarshal(value, &encoded); err == nil {
				fields[field] = encoded
				continue
			}
			fields[field] = string(value)
		}
		return fields, nil
	}

	for _, field := range charts.PayloadFields {
		if value := c.FormValue(field); value != "" {
			fields[field] = value
		}
	}
	return fields, nil
}

// Analysis runs the full analysis for an optional from/to range and stores
// a snapshot of it.
func (handler *Handler) Analysis(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	from, to, message := handler.parseReportRange(c)
	if message != "" {
		return apiError(c, fiber.StatusBadRequest, message)
	}

	report, err := handler.analyzerService.FullAnalysis(user.ID, from, to)
	if errors.Is(err, services.ErrNoSales) {
		return apiError(c, fiber.StatusNotFound, "no sales recorded")
	}
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to analyze sales")
	}
	return c.JSON(report)
}

func (handler *Handler) parseReportRange(c *fiber.Ctx) (*time.Time, *time.Time, string) {
	from, to, err := services.ParseDateRange(c.Query("from"), c.Query("to"), handler.location)
	switch {
	case err == nil:
		return from, to, ""
	case errors.Is(err, services.ErrRangeFromDateInvalid):
		return nil, nil, "invalid from date"
	case errors.Is(err, services.ErrRangeToDateInvalid):
		return nil, nil, "invalid to date"
	default:
		return nil, nil, "invalid range"
	}
}

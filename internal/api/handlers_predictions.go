package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/salesboard/internal/charts"
	"github.com/terraincognita07/salesboard/internal/services"
)

const predictionTableRows = 10

func forecastPoints(forecast services.Forecast) []charts.ForecastPoint {
	points := make([]charts.ForecastPoint, 0, len(forecast.Days))
	for _, day := range forecast.Days {
		points = append(points, charts.ForecastPoint{
			Date:            day.Date,
			PredictedSales:  day.PredictedSales,
			PredictedProfit: day.PredictedProfit,
			ConfidenceLower: day.ConfidenceLower,
			ConfidenceUpper: day.ConfidenceUpper,
		})
	}
	return points
}

func (handler *Handler) ShowPredictions(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}
	messages := currentMessages(c)
	title := localizedPageTitle(messages, "meta.title.predictions", "Sales Board | Predictions")

	forecast, err := handler.predictionService.Predict(user.ID, services.ForecastDays)
	if errors.Is(err, services.ErrNotEnoughHistory) {
		return handler.render(c, "predictions", fiber.Map{
			"Title":       title,
			"HasData":     false,
			"MinHistory":  services.MinForecastHistoryDays,
			"FieldID":     charts.FieldForecast,
			"FieldValue":  "[]",
			"CanvasID":    charts.CanvasForecast,
			"ChartConfig": map[string]charts.Config{},
		})
	}
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to predict sales")
	}

	fieldValue := charts.EncodeRecords(forecastPoints(forecast))
	locale := charts.NewLocale(handler.requestLanguage(c), messages)
	tableDays := forecast.Days
	if len(tableDays) > predictionTableRows {
		tableDays = tableDays[:predictionTableRows]
	}
	return handler.render(c, "predictions", fiber.Map{
		"Title":      title,
		"HasData":    true,
		"MinHistory": services.MinForecastHistoryDays,
		"Forecast":   forecast,
		"TableDays":  tableDays,
		"FieldID":    charts.FieldForecast,
		"FieldValue": fieldValue,
		"CanvasID":   charts.CanvasForecast,
		"ChartConfig": map[string]charts.Config{
			charts.CanvasForecast: charts.ForecastWidget.Build(fieldValue, locale),
		},
	})
}

// Predictions recomputes the forecast and returns it with its chart config.
func (handler *Handler) Predictions(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	forecast, err := handler.predictionService.Predict(user.ID, services.ForecastDays)
	if errors.Is(err, services.ErrNotEnoughHistory) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":            "not enough sales history",
			"min_history_days": services.MinForecastHistoryDays,
		})
	}
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to predict sales")
	}

	fieldValue := charts.EncodeRecords(forecastPoints(forecast))
	locale := charts.NewLocale(handler.requestLanguage(c), currentMessages(c))
	return c.JSON(fiber.Map{
		"forecast": forecast,
		"chart":    charts.ForecastWidget.Build(fieldValue, locale),
	})
}

// SavedPredictions lists the stored forecast rows without recomputing.
func (handler *Handler) SavedPredictions(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	rows, err := handler.repositories.Predictions.ListByUser(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load predictions")
	}
	return c.JSON(fiber.Map{"predictions": rows})
}

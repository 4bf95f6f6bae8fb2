package services

import (
	"fmt"
	"log"
	"time"

	"github.com/terraincognita07/salesboard/internal/models"
)

type PredictionStore interface {
	ReplaceForUser(userID uint, predictions []models.Prediction) error
}

type PredictionService struct {
	sales    SaleReader
	store    PredictionStore
	location *time.Location
	now      func() time.Time
}

func NewPredictionService(sales SaleReader, store PredictionStore, location *time.Location) *PredictionService {
	if location == nil {
		location = time.UTC
	}
	return &PredictionService{
		sales:    sales,
		store:    store,
		location: location,
		now:      time.Now,
	}
}

// Predict forecasts the next daysAhead days from the last year of sales and
// replaces the user's stored predictions with the result. A failed write is
// logged and the forecast still returned.
func (service *PredictionService) Predict(userID uint, daysAhead int) (Forecast, error) {
	now := service.now().In(service.location)
	cutoff := now.Add(-forecastHistoryWindow)
	sales, err := service.sales.ListByUserRange(userID, &cutoff, nil)
	if err != nil {
		return Forecast{}, fmt.Errorf("load sales: %w", err)
	}

	forecast, err := SimpleForecast(SalesOverTime(sales, PeriodDaily, service.location), daysAhead)
	if err != nil {
		return Forecast{}, err
	}
	forecast.GeneratedAt = now

	if service.store != nil {
		if err := service.store.ReplaceForUser(userID, predictionRows(userID, forecast, now)); err != nil {
			log.Printf("save predictions for user %d failed: %v", userID, err)
		}
	}
	return forecast, nil
}

func predictionRows(userID uint, forecast Forecast, createdAt time.Time) []models.Prediction {
	rows := make([]models.Prediction, 0, len(forecast.Days))
	for _, day := range forecast.Days {
		rows = append(rows, models.Prediction{
			UserID:           userID,
			PredictionPeriod: day.Date,
			PredictedSales:   day.PredictedSales,
			PredictedProfit:  day.PredictedProfit,
			ConfidenceLower:  day.ConfidenceLower,
			ConfidenceUpper:  day.ConfidenceUpper,
			CreatedAt:        createdAt,
		})
	}
	return rows
}

package services

import (
	"errors"
	"math"
	"time"
)

const (
	ForecastDays           = 30
	MinForecastHistoryDays = 30
	forecastHistoryWindow  = 360 * 24 * time.Hour
	ForecastModelSimple    = "simple_seasonal"
)

var ErrNotEnoughHistory = errors.New("not enough sales history")

type ForecastDay struct {
	Date              string  `json:"date"`
	PredictedSales    float64 `json:"predicted_sales"`
	PredictedQuantity int     `json:"predicted_quantity"`
	PredictedProfit   float64 `json:"predicted_profit"`
	ConfidenceLower   float64 `json:"confidence_lower"`
	ConfidenceUpper   float64 `json:"confidence_upper"`
}

type ForecastSummary struct {
	TotalPredictedSales  float64     `json:"total_predicted_sales"`
	TotalPredictedProfit float64     `json:"total_predicted_profit"`
	AvgDailySales        float64     `json:"avg_daily_sales"`
	AvgDailyProfit       float64     `json:"avg_daily_profit"`
	MaxDay               ForecastDay `json:"max_predicted_sales"`
	MinDay               ForecastDay `json:"min_predicted_sales"`
	TotalDays            int         `json:"total_days"`
	HistoryDays          int         `json:"history_days"`
	StartDate            string      `json:"start_date"`
	EndDate              string      `json:"end_date"`
}

type Forecast struct {
	ModelType    string          `json:"model_type"`
	GeneratedAt  time.Time       `json:"generated_at"`
	ProfitMargin float64         `json:"profit_margin"`
	Days         []ForecastDay   `json:"predictions"`
	Summary      ForecastSummary `json:"summary"`
}

// SimpleForecast projects daily sales daysAhead days past the last recorded
// day. Each day averages the weekday mean with a least squares trend over the
// history; the band is one sample standard deviation either side. daily must
// hold one bucket per day with sales, oldest first.
func SimpleForecast(daily []TimeBucket, daysAhead int) (Forecast, error) {
	if len(daily) < MinForecastHistoryDays {
		return Forecast{}, ErrNotEnoughHistory
	}
	if daysAhead <= 0 {
		daysAhead = ForecastDays
	}

	lastDate, err := time.Parse("2006-01-02", daily[len(daily)-1].Date)
	if err != nil {
		return Forecast{}, errors.New("daily history is missing dates")
	}

	count := float64(len(daily))
	var salesSum, quantitySum float64
	weekdaySums := make([]float64, 7)
	weekdayCounts := make([]int, 7)
	for _, bucket := range daily {
		salesSum += bucket.TotalSales
		quantitySum += float64(bucket.TotalQuantity)
		if day, err := time.Parse("2006-01-02", bucket.Date); err == nil {
			index := mondayIndex(day.Weekday())
			weekdaySums[index] += bucket.TotalSales
			weekdayCounts[index]++
		}
	}
	overallAvg := salesSum / count
	quantityAvg := quantitySum / count

	meanX := (count - 1) / 2
	var covariance, varianceX, squaredDeviation float64
	for position, bucket := range daily {
		dx := float64(position) - meanX
		dy := bucket.TotalSales - overallAvg
		covariance += dx * dy
		varianceX += dx * dx
		squaredDeviation += dy * dy
	}
	slope := covariance / varianceX
	intercept := overallAvg - slope*meanX
	stdDev := math.Sqrt(squaredDeviation / (count - 1))

	days := make([]ForecastDay, 0, daysAhead)
	for offset := 0; offset < daysAhead; offset++ {
		date := lastDate.AddDate(0, 0, offset+1)

		seasonal := overallAvg
		if index := mondayIndex(date.Weekday()); weekdayCounts[index] > 0 {
			seasonal = weekdaySums[index] / float64(weekdayCounts[index])
		}
		trend := intercept + slope*(count+float64(offset))
		predicted := (seasonal + trend) / 2

		quantity := 0
		if overallAvg > 0 {
			quantity = max(0, int(predicted/overallAvg*quantityAvg))
		}
		sales := math.Max(0, predicted)
		days = append(days, ForecastDay{
			Date:              date.Format("2006-01-02"),
			PredictedSales:    roundTo(sales, 2),
			PredictedQuantity: quantity,
			PredictedProfit:   roundTo(sales*estimatedProfitMargin, 2),
			ConfidenceLower:   roundTo(math.Max(0, predicted-stdDev), 2),
			ConfidenceUpper:   roundTo(math.Max(0, predicted+stdDev), 2),
		})
	}

	return Forecast{
		ModelType:    ForecastModelSimple,
		ProfitMargin: estimatedProfitMargin * 100,
		Days:         days,
		Summary:      summarizeForecast(days, len(daily)),
	}, nil
}

func summarizeForecast(days []ForecastDay, historyDays int) ForecastSummary {
	summary := ForecastSummary{TotalDays: len(days), HistoryDays: historyDays}
	if len(days) == 0 {
		return summary
	}

	summary.MaxDay = days[0]
	summary.MinDay = days[0]
	for _, day := range days {
		summary.TotalPredictedSales += day.PredictedSales
		summary.TotalPredictedProfit += day.PredictedProfit
		if day.PredictedSales > summary.MaxDay.PredictedSales {
			summary.MaxDay = day
		}
		if day.PredictedSales < summary.MinDay.PredictedSales {
			summary.MinDay = day
		}
	}
	summary.TotalPredictedSales = roundTo(summary.TotalPredictedSales, 2)
	summary.TotalPredictedProfit = roundTo(summary.TotalPredictedProfit, 2)
	summary.AvgDailySales = roundTo(summary.TotalPredictedSales/float64(len(days)), 2)
	summary.AvgDailyProfit = roundTo(summary.TotalPredictedProfit/float64(len(days)), 2)
	summary.StartDate = days[0].Date
	summary.EndDate = days[len(days)-1].Date
	return summary
}

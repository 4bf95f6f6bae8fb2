package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/terraincognita07/salesboard/internal/models"
	"github.com/terraincognita07/salesboard/internal/services"
)

// seedDailySales stores one sale per day for the days before today.
func seedDailySales(t *testing.T, handler *Handler, userID uint, days int) {
	t.Helper()

	coffee, err := handler.repositories.Products.Upsert(nil, models.Product{UserID: userID, Name: "Coffee", Category: "Drinks", SellingPrice: 10})
	if err != nil {
		t.Fatalf("upsert coffee: %v", err)
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	sales := make([]models.Sale, 0, days)
	for offset := days; offset > 0; offset-- {
		sales = append(sales, models.Sale{
			UserID:     userID,
			ProductID:  coffee.ID,
			Quantity:   2,
			TotalPrice: float64(100 + offset%7*10),
			SaleDate:   today.AddDate(0, 0, -offset).Add(12 * time.Hour),
		})
	}
	if err := handler.repositories.Sales.CreateBatch(nil, sales); err != nil {
		t.Fatalf("create sales: %v", err)
	}
}

func TestPredictionsWithoutHistory(t *testing.T) {
	app, handler := newTestApp(t)
	user := createTestUser(t, handler, "owner", "owner@example.com")
	cookie := loginCookie(t, app, user.Email)
	seedSales(t, handler, user.ID)

	response, body := authedGET(t, app, cookie, "/predictions")
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	if !strings.Contains(body, "Not enough sales history for a forecast") {
		t.Fatal("expected the not enough history message")
	}
	if !strings.Contains(body, `type="hidden" id="predictionData" value="[]"`) {
		t.Fatal("expected an empty forecast payload")
	}
	if strings.Contains(body, `<canvas id="predictionChart"`) {
		t.Fatal("expected no forecast canvas without history")
	}

	response, body = authedGET(t, app, cookie, "/api/predictions")
	if response.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", response.StatusCode)
	}
	if message := readAPIError(t, body); message != "not enough sales history" {
		t.Fatalf("unexpected error %q", message)
	}
}

func TestPredictionsForecastAndSaveRows(t *testing.T) {
	app, handler := newTestApp(t)
	user := createTestUser(t, handler, "owner", "owner@example.com")
	cookie := loginCookie(t, app, user.Email)
	seedDailySales(t, handler, user.ID, 40)

	response, body := authedGET(t, app, cookie, "/predictions")
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	if !strings.Contains(body, `<canvas id="predictionChart"`) {
		t.Fatal("expected forecast canvas")
	}
	if !strings.Contains(body, `id="predictionData"`) || !strings.Contains(body, `id="predictions-table"`) {
		t.Fatal("expected forecast payload and table")
	}

	response, body = authedGET(t, app, cookie, "/api/predictions")
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	var payload struct {
		Forecast services.Forecast `json:"forecast"`
		Chart    struct {
			Type string `json:"type"`
			Data struct {
				Labels []string `json:"labels"`
			} `json:"data"`
		} `json:"chart"`
	}
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		t.Fatalf("decode forecast: %v", err)
	}
	if len(payload.Forecast.Days) != services.ForecastDays || payload.Forecast.Summary.HistoryDays != 40 {
		t.Fatalf("unexpected forecast %#v", payload.Forecast.Summary)
	}
	if payload.Chart.Type != "line" || len(payload.Chart.Data.Labels) != services.ForecastDays {
		t.Fatalf("unexpected forecast chart %#v", payload.Chart)
	}
	today := time.Now().UTC().Format("2006-01-02")
	if payload.Forecast.Days[0].Date != today {
		t.Fatalf("expected the forecast to start the day after the last sale (%s), got %s", today, payload.Forecast.Days[0].Date)
	}

	_, body = authedGET(t, app, cookie, "/api/predictions/saved")
	var saved struct {
		Predictions []models.Prediction `json:"predictions"`
	}
	if err := json.Unmarshal([]byte(body), &saved); err != nil {
		t.Fatalf("decode saved predictions: %v", err)
	}
	if len(saved.Predictions) != services.ForecastDays {
		t.Fatalf("expected %d saved rows, got %d", services.ForecastDays, len(saved.Predictions))
	}
	if saved.Predictions[0].UserID != user.ID || saved.Predictions[0].PredictionPeriod != today {
		t.Fatalf("unexpected first saved row %#v", saved.Predictions[0])
	}
}

func TestPredictionsRequireLogin(t *testing.T) {
	app, _ := newTestApp(t)

	response, _ := authedGET(t, app, "", "/api/predictions")
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", response.StatusCode)
	}
}

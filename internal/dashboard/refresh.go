package dashboard

import (
	"time"

	"github.com/terraincognita07/salesboard/internal/services"
)

const (
	// RefreshDelay is how long the refresh button shows its spinner before
	// the page reloads.
	RefreshDelay        = time.Second
	AutoRefreshInterval = services.DefaultAutoRefreshInterval
)

// ClientSettings is embedded into the page for the browser script.
type ClientSettings struct {
	RefreshDelayMs     int64  `json:"refreshDelayMs"`
	AutoRefreshMs      int64  `json:"autoRefreshMs"`
	Locale             string `json:"locale"`
	ChartsEndpoint     string `json:"chartsEndpoint"`
	SelectedPeriod     string `json:"selectedPeriod"`
	ExportEndpointXLSX string `json:"exportEndpointXlsx"`
}

func NewClientSettings(locale string, period services.Period) ClientSettings {
	return ClientSettings{
		RefreshDelayMs:     RefreshDelay.Milliseconds(),
		AutoRefreshMs:      AutoRefreshInterval.Milliseconds(),
		Locale:             locale,
		ChartsEndpoint:     "/api/charts",
		SelectedPeriod:     string(period),
		ExportEndpointXLSX: "/api/export/xlsx",
	}
}

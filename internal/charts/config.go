// Package charts turns the JSON payloads embedded in dashboard hidden fields
// into declarative Chart.js configurations.
package charts

import "encoding/json"

const (
	TypeLine     = "line"
	TypeBar      = "bar"
	TypeDoughnut = "doughnut"
)

type Config struct {
	Type    string  `json:"type"`
	Data    Data    `json:"data"`
	Options Options `json:"options"`
}

type Data struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

type Dataset struct {
	Label                string    `json:"label,omitempty"`
	Data                 []float64 `json:"data"`
	BorderColor          string    `json:"borderColor,omitempty"`
	BackgroundColor      ColorList `json:"backgroundColor,omitempty"`
	BorderWidth          int       `json:"borderWidth"`
	BorderRadius         int       `json:"borderRadius,omitempty"`
	BorderDash           []int     `json:"borderDash,omitempty"`
	PointBackgroundColor string    `json:"pointBackgroundColor,omitempty"`
	PointBorderColor     string    `json:"pointBorderColor,omitempty"`
	PointRadius          int       `json:"pointRadius,omitempty"`
	PointHoverRadius     int       `json:"pointHoverRadius,omitempty"`
	HoverOffset          int       `json:"hoverOffset,omitempty"`
	Tension              float64   `json:"tension,omitempty"`
	Fill                 any       `json:"fill,omitempty"`
	YAxisID              string    `json:"yAxisID,omitempty"`
}

// ColorList marshals as a bare string when it holds a single color.
type ColorList []string

func (colors ColorList) MarshalJSON() ([]byte, error) {
	if len(colors) == 1 {
		return json.Marshal(colors[0])
	}
	if colors == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(colors))
}

type Options struct {
	Responsive          bool             `json:"responsive"`
	MaintainAspectRatio bool             `json:"maintainAspectRatio"`
	Plugins             Plugins          `json:"plugins"`
	Scales              map[string]Scale `json:"scales,omitempty"`
	Cutout              string           `json:"cutout,omitempty"`
}

type Plugins struct {
	Legend  *Legend  `json:"legend,omitempty"`
	Tooltip *Tooltip `json:"tooltip,omitempty"`
}

type Legend struct {
	Display  bool          `json:"display"`
	Position string        `json:"position,omitempty"`
	Labels   *LegendLabels `json:"labels,omitempty"`
}

type LegendLabels struct {
	UsePointStyle bool `json:"usePointStyle"`
	BoxWidth      int  `json:"boxWidth,omitempty"`
	Padding       int  `json:"padding,omitempty"`
}

type Tooltip struct {
	Mode            string       `json:"mode,omitempty"`
	Intersect       *bool        `json:"intersect,omitempty"`
	BackgroundColor string       `json:"backgroundColor,omitempty"`
	TitleColor      string       `json:"titleColor,omitempty"`
	BodyColor       string       `json:"bodyColor,omitempty"`
	Format          *ValueFormat `json:"format,omitempty"`
}

type Scale struct {
	Type        string      `json:"type,omitempty"`
	Display     *bool       `json:"display,omitempty"`
	Position    string      `json:"position,omitempty"`
	BeginAtZero bool        `json:"beginAtZero,omitempty"`
	Title       *ScaleTitle `json:"title,omitempty"`
	Grid        *Grid       `json:"grid,omitempty"`
	Ticks       *Ticks      `json:"ticks,omitempty"`
}

type ScaleTitle struct {
	Display bool   `json:"display"`
	Text    string `json:"text"`
}

type Grid struct {
	Display         *bool  `json:"display,omitempty"`
	Color           string `json:"color,omitempty"`
	DrawOnChartArea *bool  `json:"drawOnChartArea,omitempty"`
}

type Ticks struct {
	Format *ValueFormat `json:"format,omitempty"`
}

// ValueFormat describes how the browser renderer formats tooltip and tick
// values. Chart.js callbacks cannot travel as JSON, so the page script
// installs them from this description.
type ValueFormat struct {
	Locale string    `json:"locale"`
	Prefix string    `json:"prefix,omitempty"`
	Suffix string    `json:"suffix,omitempty"`
	Shares []float64 `json:"shares,omitempty"`
}

func boolPtr(value bool) *bool {
	return &value
}

package charts

// Canvas ids the dashboard page renders into.
const (
	CanvasMonthlySales = "monthlySalesChart"
	CanvasTopProducts  = "topProductsChart"
	CanvasCategory     = "categoryChart"
	CanvasPeakHours    = "peakHoursChart"
	CanvasWeekday      = "weekdayChart"
	CanvasSalesTrend   = "salesTrendChart"
)

type Widget struct {
	Field  string
	Canvas string
	Build  func(raw string, locale Locale) Config
}

var Widgets = []Widget{
	{Field: FieldMonthly, Canvas: CanvasMonthlySales, Build: MonthlySales},
	{Field: FieldTopProducts, Canvas: CanvasTopProducts, Build: TopProducts},
	{Field: FieldCategory, Canvas: CanvasCategory, Build: Category},
	{Field: FieldPeakHours, Canvas: CanvasPeakHours, Build: PeakHours},
	{Field: FieldWeekday, Canvas: CanvasWeekday, Build: Weekday},
	{Field: FieldDaily, Canvas: CanvasSalesTrend, Build: SalesTrend},
}

// FieldLookup returns the raw value of a hidden field, or "" when the page
// does not carry it.
type FieldLookup func(field string) string

func MapLookup(values map[string]string) FieldLookup {
	return func(field string) string {
		return values[field]
	}
}

// BuildDashboard builds every widget keyed by canvas id. Widgets whose field
// is absent render as empty charts.
func BuildDashboard(lookup FieldLookup, locale Locale) map[string]Config {
	if lookup == nil {
		lookup = MapLookup(nil)
	}
	configs := make(map[string]Config, len(Widgets))
	for _, widget := range Widgets {
		configs[widget.Canvas] = widget.Build(lookup(widget.Field), locale)
	}
	return configs
}

func WidgetForCanvas(canvas string) (Widget, bool) {
	for _, widget := range Widgets {
		if widget.Canvas == canvas {
			return widget, true
		}
	}
	return Widget{}, false
}

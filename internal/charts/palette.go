package charts

const (
	colorPrimary   = "#667eea"
	colorSecondary = "#764ba2"
	colorSuccess   = "#28a745"
	colorDanger    = "#dc3545"
	colorWarning   = "#ffc107"
	colorInfo      = "#17a2b8"

	gridColor        = "rgba(0,0,0,0.05)"
	tooltipBackdrop  = "#333"
	tooltipTitleText = "white"
	tooltipBodyText  = "#ddd"
)

var categoryPalette = []string{
	"#667eea", "#764ba2", "#28a745", "#dc3545",
	"#ffc107", "#17a2b8", "#e83e8c", "#fd7e14",
	"#20c997", "#6f42c1", "#007bff", "#6610f2",
}

// paletteFor returns one color per label, capped at the palette size.
func paletteFor(labelCount int) ColorList {
	if labelCount <= 0 {
		return ColorList{}
	}
	if labelCount > len(categoryPalette) {
		labelCount = len(categoryPalette)
	}
	colors := make(ColorList, labelCount)
	copy(colors, categoryPalette[:labelCount])
	return colors
}

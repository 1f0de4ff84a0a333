package tui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// setupTheme aplica a paleta Rose Pine Moon a todos os primitivos.
func setupTheme() {
	tview.Styles = tview.Theme{
		PrimitiveBackgroundColor:    tcell.NewRGBColor(35, 33, 54),
		ContrastBackgroundColor:     tcell.NewRGBColor(42, 39, 63),
		MoreContrastBackgroundColor: tcell.NewRGBColor(57, 53, 82),
		BorderColor:                 tcell.NewRGBColor(110, 106, 134),
		TitleColor:                  tcell.NewRGBColor(234, 154, 151),
		GraphicsColor:               tcell.NewRGBColor(156, 207, 216),
		PrimaryTextColor:            tcell.NewRGBColor(224, 222, 244),
		SecondaryTextColor:          tcell.NewRGBColor(246, 193, 119),
		TertiaryTextColor:           tcell.NewRGBColor(62, 143, 176),
		InverseTextColor:            tcell.NewRGBColor(35, 33, 54),
		ContrastSecondaryTextColor:  tcell.NewRGBColor(224, 222, 244),
	}
}

// Colors used in dynamic color tags.
const (
	colorHeader   = "[#f6c177::b]"
	colorMuted    = "[#908caa]"
	colorNormal   = "[#9ccfd8]"
	colorWarning  = "[#f6c177]"
	colorCritical = "[#eb6f92]"
	colorReset    = "[-:-:-]"
)

// seriesColors gives each service of a chart its own color.
var seriesColors = []string{
	"#3e8fb0", "#9ccfd8", "#c4a7e7", "#f6c177", "#ea9a97",
	"#eb6f92", "#56949f", "#907aa9", "#d7827e", "#286983",
}

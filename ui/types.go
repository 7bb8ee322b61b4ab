// Package ui provides the panels and widgets drawn over the ocean preview.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg         rl.Color
	PanelBorder     rl.Color
	SectionHeader   rl.Color
	LabelColor      rl.Color
	ValueColor      rl.Color
	BarBg           rl.Color
	BarFill         rl.Color
	BarFillNegative rl.Color
	BarFillPositive rl.Color
	Padding         int32
	LineHeight      int32
	LabelWidth      int32
	BarHeight       int32
	FontSize        int32
	HeaderFontSize  int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:         rl.Color{R: 10, G: 20, B: 30, A: 200},
		PanelBorder:     rl.Color{R: 60, G: 80, B: 100, A: 255},
		SectionHeader:   rl.Yellow,
		LabelColor:      rl.LightGray,
		ValueColor:      rl.RayWhite,
		BarBg:           rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarFill:         rl.Color{R: 100, G: 170, B: 220, A: 255},
		BarFillNegative: rl.Color{R: 90, G: 120, B: 200, A: 255},
		BarFillPositive: rl.Color{R: 120, G: 210, B: 230, A: 255},
		Padding:         10,
		LineHeight:      18,
		LabelWidth:      70,
		BarHeight:       12,
		FontSize:        14,
		HeaderFontSize:  16,
	}
}

package config

// US Letter in points.
const (
	letterShort = 612.0
	letterLong  = 792.0
)

// Default returns the stock planner layout: a 06:00 to 23:30 window of
// 30-minute slots, a lane cap of three and US Letter pages.
func Default() LayoutConfig {
	return LayoutConfig{
		Grid: GridConfig{
			StartMinute: 6 * 60,
			SlotMinutes: 30,
			SlotCount:   35,
		},
		Lanes: LaneConfig{
			Cap:     3,
			Padding: 2,
		},
		Card: CardConfig{
			MinSlots:    1.5,
			Padding:     3,
			StripeWidth: 3,
			TitleSize:   8,
			BodySize:    6.5,
			LineHeight:  1.25,
		},
		Weekly: PageConfig{
			Width:              letterLong,
			Height:             letterShort,
			Orientation:        Landscape,
			Margin:             18,
			HeaderHeight:       36,
			StatsHeight:        24,
			LegendHeight:       18,
			ColumnHeaderHeight: 24,
			FooterHeight:       12,
			TimeColumnWidth:    42,
			ButtonWidth:        0,
			ButtonHeight:       0,
			TitleSize:          16,
			SubtitleSize:       10,
			LabelSize:          7,
		},
		Daily: PageConfig{
			Width:              letterShort,
			Height:             letterLong,
			Orientation:        Portrait,
			Margin:             24,
			HeaderHeight:       48,
			StatsHeight:        36,
			LegendHeight:       18,
			ColumnHeaderHeight: 0,
			FooterHeight:       30,
			TimeColumnWidth:    48,
			ButtonWidth:        96,
			ButtonHeight:       18,
			TitleSize:          16,
			SubtitleSize:       10,
			LabelSize:          7.5,
		},
		Palette: Palette{
			Ink:       "#1a1a1a",
			Muted:     "#6b6b6b",
			Border:    "#000000",
			GridLine:  "#c8c8c8",
			HourShade: "#f0f0f0",
			Panel:     "#f7f7f7",
			Button:    "#e6e6e6",
			FreeSlot:  "#e3f4e1",
			SimplePractice: SourceStyle{
				Fill:   "#6495ed",
				Stroke: "#3d6fc9",
			},
			Google: SourceStyle{
				Fill:   "#ffffff",
				Stroke: "#228b22",
				Dashed: true,
			},
			Holiday: SourceStyle{
				Fill:   "#ffff00",
				Stroke: "#c9a600",
			},
			Manual: SourceStyle{
				Fill:   "#e0e0e0",
				Stroke: "#808080",
			},
		},
	}
}

package config

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/matzehuels/weekplan/pkg/errors"
)

const minutesPerDay = 24 * 60

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Validate checks every section of the configuration. The returned error
// carries ErrCodeInvalidConfig and wraps the ozzo-validation field errors.
func (c LayoutConfig) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.Grid),
		validation.Field(&c.Lanes),
		validation.Field(&c.Card),
		validation.Field(&c.Weekly),
		validation.Field(&c.Daily),
		validation.Field(&c.Palette),
	)
	if err == nil {
		err = c.validateNavigation()
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid layout config")
	}
	return nil
}

// validateNavigation checks that every page can hold its link anchors: the
// weekly day headers (inset by 1pt on each side) and the daily overview,
// previous and next buttons.
func (c LayoutConfig) validateNavigation() error {
	return validation.Errors{
		"weekly.column_header_height": validation.Validate(c.Weekly.ColumnHeaderHeight,
			validation.Min(2.0).Exclusive().Error("must be greater than 2 to hold the day header links")),
		"daily.button_width": validation.Validate(c.Daily.ButtonWidth,
			validation.Required.Error("is required for the navigation buttons")),
		"daily.button_height": validation.Validate(c.Daily.ButtonHeight,
			validation.Required.Error("is required for the navigation buttons")),
		"daily.footer_height": validation.Validate(c.Daily.FooterHeight,
			validation.Min(c.Daily.ButtonHeight).Error("must fit the previous and next day buttons")),
	}.Filter()
}

// Validate implements validation.Validatable.
func (g GridConfig) Validate() error {
	return validation.ValidateStruct(&g,
		validation.Field(&g.StartMinute, validation.Min(0), validation.Max(minutesPerDay-1)),
		validation.Field(&g.SlotMinutes, validation.Required, validation.Min(1), validation.Max(240)),
		validation.Field(&g.SlotCount, validation.Required, validation.Min(1),
			validation.Max((minutesPerDay-g.StartMinute)/max(1, g.SlotMinutes)).
				Error("window must end before midnight")),
	)
}

// Validate implements validation.Validatable.
func (l LaneConfig) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Cap, validation.Required, validation.Min(1), validation.Max(12)),
		validation.Field(&l.Padding, validation.Min(0.0)),
	)
}

// Validate implements validation.Validatable.
func (c CardConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.MinSlots, validation.Min(0.0), validation.Max(8.0)),
		validation.Field(&c.Padding, validation.Min(0.0)),
		validation.Field(&c.StripeWidth, validation.Min(0.0)),
		validation.Field(&c.TitleSize, validation.Required, validation.Min(4.0)),
		validation.Field(&c.BodySize, validation.Required, validation.Min(4.0)),
		validation.Field(&c.LineHeight, validation.Required, validation.Min(1.0), validation.Max(3.0)),
	)
}

// Validate implements validation.Validatable.
func (p PageConfig) Validate() error {
	err := validation.ValidateStruct(&p,
		validation.Field(&p.Width, validation.Required, validation.Min(72.0)),
		validation.Field(&p.Height, validation.Required, validation.Min(72.0)),
		validation.Field(&p.Orientation, validation.Required, validation.In(Landscape, Portrait)),
		validation.Field(&p.Margin, validation.Min(0.0)),
		validation.Field(&p.HeaderHeight, validation.Required, validation.Min(0.0)),
		validation.Field(&p.StatsHeight, validation.Min(0.0)),
		validation.Field(&p.LegendHeight, validation.Min(0.0)),
		validation.Field(&p.ColumnHeaderHeight, validation.Min(0.0)),
		validation.Field(&p.FooterHeight, validation.Min(0.0)),
		validation.Field(&p.TimeColumnWidth, validation.Required, validation.Min(0.0)),
		validation.Field(&p.ButtonWidth, validation.Min(0.0)),
		validation.Field(&p.ButtonHeight, validation.Min(0.0)),
		validation.Field(&p.TitleSize, validation.Required),
		validation.Field(&p.SubtitleSize, validation.Required),
		validation.Field(&p.LabelSize, validation.Required),
	)
	if err != nil {
		return err
	}
	if p.GridHeight() <= 0 {
		return validation.Errors{"height": validation.NewError("validation_grid_height", "leaves no room for the time grid")}
	}
	if p.ContentWidth()-p.TimeColumnWidth <= 0 {
		return validation.Errors{"width": validation.NewError("validation_grid_width", "leaves no room for day columns")}
	}
	return nil
}

// Validate implements validation.Validatable.
func (p Palette) Validate() error {
	color := []validation.Rule{validation.Required, validation.Match(hexColor)}
	return validation.ValidateStruct(&p,
		validation.Field(&p.Ink, color...),
		validation.Field(&p.Muted, color...),
		validation.Field(&p.Border, color...),
		validation.Field(&p.GridLine, color...),
		validation.Field(&p.HourShade, color...),
		validation.Field(&p.Panel, color...),
		validation.Field(&p.Button, color...),
		validation.Field(&p.FreeSlot, color...),
		validation.Field(&p.SimplePractice),
		validation.Field(&p.Google),
		validation.Field(&p.Holiday),
		validation.Field(&p.Manual),
	)
}

// Validate implements validation.Validatable.
func (s SourceStyle) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Fill, validation.Required, validation.Match(hexColor)),
		validation.Field(&s.Stroke, validation.Required, validation.Match(hexColor)),
	)
}

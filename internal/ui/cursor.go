package ui

import (
	"strconv"
	"time"
)

// Cursor configures the two decorative elements that trail the pointer.
type Cursor struct {
	TrailDelay    time.Duration
	HoverScale    float64
	MinWidth      int
	HoverSelector string
}

// DefaultCursor matches the site's stylesheet.
func DefaultCursor() Cursor {
	return Cursor{
		TrailDelay:    100 * time.Millisecond,
		HoverScale:    1.5,
		MinWidth:      768,
		HoverSelector: "a, button, .project-card",
	}
}

// Active reports whether the follower runs at the given viewport width. It
// mirrors the innerWidth check in static/js/site.js, which reads MinWidth
// from data-cursor-min.
func (c Cursor) Active(viewportWidth int) bool {
	return viewportWidth > c.MinWidth
}

// DelayMillis is the trail delay as read by static/js/site.js.
func (c Cursor) DelayMillis() int64 { return c.TrailDelay.Milliseconds() }

// ScaleText formats the hover scale for a data attribute.
func (c Cursor) ScaleText() string {
	return strconv.FormatFloat(c.HoverScale, 'f', -1, 64)
}

// Package filter holds the category filter state of the projects page and
// decides which cards are visible.
package filter

import (
	"net/url"
	"strings"

	"github.com/Zachkp/portfolio/internal/catalog"
	"github.com/Zachkp/portfolio/internal/render"
)

// All is the wildcard filter tag.
const All = "all"

// Control is one filter button.
type Control struct {
	Tag    string
	Label  string
	Active bool
	Href   string // no-JS fallback
	HXGet  string // fragment endpoint
}

// Controller tracks which control is active.
type Controller struct {
	controls   []Control
	active     string
	transition bool
}

// NewController builds controls for "all" plus every tag of the label table.
// The "all" control starts active.
func NewController(labels catalog.LabelTable) *Controller {
	tags := labels.Tags()
	c := &Controller{controls: make([]Control, 0, len(tags)+1)}
	c.controls = append(c.controls, newControl(All, "All"))
	for _, tag := range tags {
		label, _ := labels.Text(tag)
		c.controls = append(c.controls, newControl(tag, label))
	}
	c.Activate(All)
	return c
}

func newControl(tag, label string) Control {
	q := url.Values{}
	if tag != All {
		q.Set("filter", tag)
	}
	href := "/projects"
	grid := "/projects/grid"
	if enc := q.Encode(); enc != "" {
		href += "?" + enc
		grid += "?" + enc
	}
	return Control{Tag: tag, Label: label, Href: href, HXGet: grid}
}

// Activate marks tag as the only active control. Tags are case-sensitive,
// as in the data file; unknown or empty tags fall back to "all". It returns
// the tag that ended up active.
func (c *Controller) Activate(tag string) string {
	tag = strings.TrimSpace(tag)
	if !c.has(tag) {
		tag = All
	}
	for i := range c.controls {
		c.controls[i].Active = c.controls[i].Tag == tag
	}
	c.active = tag
	return tag
}

// Select is Activate triggered by a click on a control: cards shown
// afterwards get the fade-in transition.
func (c *Controller) Select(tag string) string {
	c.transition = true
	return c.Activate(tag)
}

// Active returns the active tag.
func (c *Controller) Active() string { return c.active }

// Controls returns a copy of the controls in display order.
func (c *Controller) Controls() []Control {
	return append([]Control(nil), c.controls...)
}

func (c *Controller) has(tag string) bool {
	for _, ctl := range c.controls {
		if ctl.Tag == tag {
			return true
		}
	}
	return false
}

// Apply sets visibility on every card for the active filter. After Select,
// shown cards also get the fade-in transition.
func (c *Controller) Apply(cards []render.Card) {
	for i := range cards {
		show := Matches(c.active, cards[i].Tags)
		cards[i].Hidden = !show
		cards[i].Animate = show && c.transition
	}
}

// Matches reports whether a card with tags is visible under filter tag.
// Matching is exact token membership.
func Matches(tag string, tags []string) bool {
	if tag == All || tag == "" {
		return true
	}
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

package ui

// DrawerEvent is something the user did to the mobile navigation.
type DrawerEvent int

const (
	DrawerToggle DrawerEvent = iota
	DrawerOverlayClick
	DrawerCloseClick
	DrawerLinkClick
	DrawerEscape
)

// Drawer is the open/closed state of the mobile navigation panel.
type Drawer struct {
	open bool
}

// NewDrawer returns a drawer in the given state.
func NewDrawer(open bool) *Drawer { return &Drawer{open: open} }

// Open reports whether the panel is shown.
func (d *Drawer) Open() bool { return d != nil && d.open }

// ScrollLocked reports whether page scrolling is suppressed.
func (d *Drawer) ScrollLocked() bool { return d.Open() }

// Handle applies an event and returns the new state. Escape only matters
// while the drawer is open.
func (d *Drawer) Handle(ev DrawerEvent) bool {
	switch ev {
	case DrawerToggle:
		d.open = !d.open
	case DrawerOverlayClick, DrawerCloseClick, DrawerLinkClick:
		d.open = false
	case DrawerEscape:
		if d.open {
			d.open = false
		}
	}
	return d.open
}

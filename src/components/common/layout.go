// Package common provides layout helpers shared by the application panes.
package common

// =====================================================================================
// 📐 Responsive Layout – pane dimensions derived from the terminal size
// =====================================================================================

// LayoutConfig controls how the terminal is split between panes.
type LayoutConfig struct {
	SidebarRatio      float64 // Fraction of the width given to the sidebar
	SidebarMinWidth   int
	SidebarMaxWidth   int
	CollapsedWidth    int // Sidebar width when the terminal is narrow
	CollapseBelow     int // Terminal width under which the sidebar collapses
	HeaderHeight      int
	FooterHeight      int
	SeparatorWidth    int
	MinTerminalWidth  int
	MinTerminalHeight int
}

// DefaultLayoutConfig returns the layout used by the application.
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		SidebarRatio:      0.28,
		SidebarMinWidth:   24,
		SidebarMaxWidth:   32,
		CollapsedWidth:    8,
		CollapseBelow:     70,
		HeaderHeight:      1,
		FooterHeight:      1,
		SeparatorWidth:    1,
		MinTerminalWidth:  40,
		MinTerminalHeight: 10,
	}
}

// ResponsiveLayout computes pane sizes for the current terminal size.
type ResponsiveLayout struct {
	config LayoutConfig
	width  int
	height int
}

// NewResponsiveLayout creates a layout with an 80x24 starting size.
func NewResponsiveLayout(config LayoutConfig) *ResponsiveLayout {
	return &ResponsiveLayout{config: config, width: 80, height: 24}
}

// UpdateSize records a new terminal size.
func (l *ResponsiveLayout) UpdateSize(width, height int) {
	l.width = width
	l.height = height
}

// IsTooSmall reports whether the terminal is below the minimum usable size.
func (l *ResponsiveLayout) IsTooSmall() bool {
	return l.width < l.config.MinTerminalWidth || l.height < l.config.MinTerminalHeight
}

// IsSidebarCollapsed reports whether the sidebar is shown in its narrow form.
func (l *ResponsiveLayout) IsSidebarCollapsed() bool {
	return l.width < l.config.CollapseBelow
}

func (l *ResponsiveLayout) GetHeaderDimensions() (int, int) {
	return l.width, l.config.HeaderHeight
}

func (l *ResponsiveLayout) GetFooterDimensions() (int, int) {
	return l.width, l.config.FooterHeight
}

func (l *ResponsiveLayout) GetSidebarDimensions() (int, int) {
	return l.sidebarWidth(), l.bodyHeight()
}

func (l *ResponsiveLayout) GetContentDimensions() (int, int) {
	w := l.width - l.sidebarWidth() - l.config.SeparatorWidth
	if w < 0 {
		w = 0
	}
	return w, l.bodyHeight()
}

func (l *ResponsiveLayout) sidebarWidth() int {
	if l.IsSidebarCollapsed() {
		return l.config.CollapsedWidth
	}
	w := int(float64(l.width) * l.config.SidebarRatio)
	if w < l.config.SidebarMinWidth {
		w = l.config.SidebarMinWidth
	}
	if w > l.config.SidebarMaxWidth {
		w = l.config.SidebarMaxWidth
	}
	return w
}

func (l *ResponsiveLayout) bodyHeight() int {
	h := l.height - l.config.HeaderHeight - l.config.FooterHeight
	if h < 0 {
		h = 0
	}
	return h
}

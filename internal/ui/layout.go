package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which the detail pane is
	// stacked under the list instead of beside it.
	LayoutCompactWidth = 100

	// LayoutSidebarWidth is the width of the filter sidebar.
	LayoutSidebarWidth = 28

	// LayoutMinSidebarTotal is the narrowest terminal that still shows the
	// sidebar when it is open.
	LayoutMinSidebarTotal = 80
)

// Timing constants.
const (
	// SearchDebounce is how long typing must pause before the term is applied.
	SearchDebounce = 150 * time.Millisecond
)

// StatBarWidth is the width of the attribute bars in the detail pane.
const StatBarWidth = 20

package render

// Priority determines composition order. Lower values render first
type Priority int

const (
	PriorityScene Priority = iota * 100
	PriorityWidgets
	PriorityOverlay
)

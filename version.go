package reflow

// Version information for the reflow module.
const (
	// Version is the current version of the reflow module.
	Version = "0.1.0"
)

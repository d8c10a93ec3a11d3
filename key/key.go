// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Scrub gesture tuning - these keys shape how pointer and key input translate into seek previews.
const (
	ScrubFineThreshold     = "scrub.fine_threshold"
	ScrubFineRatio         = "scrub.fine_ratio"
	ScrubStepCount         = "scrub.step_count"
	ScrubIncrement         = "scrub.increment"
	ScrubAutoCommitTimeout = "scrub.auto_commit_timeout"
)

// Bar geometry and rendering - these keys control the on-screen seek area.
const (
	BarHitPadding     = "bar.hit_padding"
	BarMarkerWidth    = "bar.marker_width"
	BarMultiWindowCap = "bar.multi_window_cap"
)

// Progress refresh - these keys govern the adaptive re-poll scheduling.
const (
	ProgressUnitPeriod = "progress.unit_period"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Command-line interface presentation.
const (
	CliColored = "cli.colored"
)

// Logging infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

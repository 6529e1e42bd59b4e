package models

// RetentionUnlimited disables retention eviction entirely.
const RetentionUnlimited = -1

// Plan carries the tier-dependent limits that affect version history.
type Plan struct {
	// RetentionDays is how long automatic snapshots are kept.
	// RetentionUnlimited (-1) keeps them forever.
	RetentionDays int

	// ManualSnapshots reports whether the plan allows explicit,
	// user-requested snapshots.
	ManualSnapshots bool
}

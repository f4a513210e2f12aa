package constants

import "time"

const (
	// Bucket geometry
	MinutesPerHour = 60
	HoursPerDay    = 24
	MinutesPerDay  = HoursPerDay * MinutesPerHour

	// Day-boundary hours for the two grouping modes
	CalendarBoundaryHour = 0
	CycleBoundaryHour    = 6

	// Day-period split (start-hour based)
	MorningStartHour = 6
	NightStartHour   = 18

	// Report defaults
	DefaultLookbackDays     = 15
	DefaultToleranceMinutes = 60.0

	// Authored duration vs timestamp interval divergence flagging
	DurationMismatchToleranceMinutes = 1.0

	// Snapshot refresh
	DefaultRefreshInterval = time.Hour
)

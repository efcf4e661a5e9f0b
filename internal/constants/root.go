package constants

import "time"

// DayStatus represents a habit's completion state for a single day
type DayStatus string

// RecurrenceType represents how a day-plan schedule repeats
type RecurrenceType string

const (
	AppName            = "habitat"
	Version            = "v0.3.1"
	DefaultConfigPath  = "~/.config/habitat/habitat.json"
	DefaultKeyringUser = "database-connection"

	// GeneralIdentityID is the reserved identity that always exists and
	// adopts habits whose identity is deleted.
	GeneralIdentityID    = "general"
	GeneralIdentityName  = "General"
	GeneralIdentityColor = "#8E8E93"

	// AllIdentities is the identity filter value that disables filtering.
	AllIdentities = "all"

	// Day statuses cycle none -> done -> skipped -> failed -> none
	StatusNone    DayStatus = "none"
	StatusDone    DayStatus = "done"
	StatusSkipped DayStatus = "skipped"
	StatusFailed  DayStatus = "failed"

	// Schedule recurrence
	RecurrenceOnce   RecurrenceType = "once"
	RecurrenceDaily  RecurrenceType = "daily"
	RecurrenceCustom RecurrenceType = "custom"

	// StreakScanDays caps the backward scan when computing streaks.
	StreakScanDays = 365

	// Day-plan timeline display window (hours, local time)
	TimelineStartHour = 6
	TimelineEndHour   = 22
	// TimelineSnapMin is the snap granularity for timeline placement.
	TimelineSnapMin = 15

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "habitat-"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "habitat-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.sgreene.habitat"
)

// FastDurations lists the allowed fasting session lengths in hours.
var FastDurations = []int{12, 14, 16, 18, 20, 24}

// IsAllowedFastDuration reports whether hours is one of the supported
// fasting durations.
func IsAllowedFastDuration(hours int) bool {
	for _, d := range FastDurations {
		if d == hours {
			return true
		}
	}
	return false
}

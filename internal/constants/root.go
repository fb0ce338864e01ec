package constants

import "time"

const (
	AppName            = "pkm"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/pkm"
	DefaultDBPath      = "~/.config/pkm/pkm.db"
	DefaultConfigFile  = "~/.config/pkm/config.json"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time-of-day format (HH:MM)
	TimeFormat = "15:04"

	// TimestampFormat is how timestamps are written to the relational store.
	// It sorts lexicographically and is understood by both SQLite and PostgreSQL.
	TimestampFormat = "2006-01-02 15:04:05"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "pkm-"
	BackupFileSuffix = ".db"

	// Lock constants
	LockFileSuffix = ".lock"

	// Log file constants
	LogDirName    = "logs"
	LogFileName   = AppName + ".log"
	LogMaxSizeMB  = 10
	LogMaxBackups = 3
	LogMaxAgeDays = 28

	// PostgreSQL schemas used for staged replacement
	PostgresSchema        = AppName
	PostgresStagingSuffix = "_staging"

	// Generation constants
	DaysPerMonth        = 30
	AlcoholProbability  = 0.3
	DefaultMonths       = 3.0
	DefaultSnapshotPath = "demo_data.json"
)

// DayEndOffset is the offset from midnight to the last representable instant of a
// day at microsecond precision (23:59:59.999999).
const DayEndOffset = 24*time.Hour - time.Microsecond

// LockUnreadableGrace is how long a lockfile without a valid PID is treated as
// held, covering the window between its creation and the PID being written.
const LockUnreadableGrace = 10 * time.Second

// Table names
const (
	TableHabits         = "habits"
	TableDailyEntries   = "daily_entries"
	TableSubDailyMoods  = "sub_daily_moods"
	TableDailyMetrics   = "daily_metrics"
	TableMetricReadings = "metric_readings"
	TableWorkLogs       = "work_logs"
	TableHabitLogs      = "habit_logs"
	TableAlcoholLogs    = "alcohol_logs"
	TableDrinkTypes     = "drink_types"
	TableDailyLogs      = "daily_logs"
)

// CheckedTables lists the tables reported by the check command, in display order.
var CheckedTables = []string{
	TableHabits,
	TableDailyMetrics,
	TableDailyEntries,
	TableSubDailyMoods,
	TableWorkLogs,
	TableHabitLogs,
	TableAlcoholLogs,
}

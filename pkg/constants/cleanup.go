package constants

// MaintenanceCommand is passed to the cleanup tool via --command.
const MaintenanceCommand = "VACUUM FULL ANALYZE"

// Status tokens understood by the notifier script.
const (
	StatusSuccess = "r"
	StatusFailure = "a"
)

// LogTimeLayout is the timestamp layout of every log file entry.
const LogTimeLayout = "2006-01-02 15:04:05"

package constants

// Default file locations, relative to the working directory of the run.
const (
	SettingsFile  = "settings.json"
	DatabasesFile = "databases.txt"
	LogFile       = "db_cleanup.log"
)

// Environment variables that override the defaults above. They may also be
// set from a .env file in the working directory.
const (
	EnvSettingsFile  = "PG_VACUUM_SETTINGS"
	EnvDatabasesFile = "PG_VACUUM_DATABASES"
	EnvLogFile       = "PG_VACUUM_LOG"
)

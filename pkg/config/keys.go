package config

const (
	DotenvPathEnvVar = "PLAYACAMP_DOTENV_PATH"

	DBConnectionKey = "DB_CONNECTION"
	DBUsernameKey   = "DB_USERNAME"
	DBPasswordKey   = "DB_PASSWORD"
	DBHostKey       = "DB_HOST"
	DBPortKey       = "DB_PORT"
	DBDatabaseKey   = "DB_DATABASE"
	SqlitePathKey   = "SQLITE_PATH"

	PortKey     = "PLAYACAMP_PORT"
	TimezoneKey = "PLAYACAMP_TIMEZONE"
	LogLevelKey = "LOG_LEVEL"
	TxRetryKey  = "PC_TX_RETRY"

	DefaultPort     = "8420"
	DefaultTimezone = "America/Los_Angeles"
)

package config

// EnvPrefix is passed to envconfig; individual tags spell the full name so the
// prefix only guards against unprefixed collisions.
const EnvPrefix = "PORTAL"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "PORTAL_DB_DSN"
	EnvDBHost = "PORTAL_DB_HOST"
	EnvDBUser = "PORTAL_DB_USER"
	EnvDBName = "PORTAL_DB_NAME"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

package config

const (
	EnvPrefix = "AQUAFARMS"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvDBDSN  = "AQUAFARMS_DB_DSN"
	EnvDBHost = "AQUAFARMS_DB_HOST"
	EnvDBUser = "AQUAFARMS_DB_USER"
	EnvDBName = "AQUAFARMS_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

package config

// EnvPrefix is the envconfig prefix shared by every Doorline binary.
const EnvPrefix = "doorline"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "DOORLINE_DB_DSN"
	EnvDBHost = "DOORLINE_DB_HOST"
	EnvDBUser = "DOORLINE_DB_USER"
	EnvDBName = "DOORLINE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

package config

// EnvPrefix is the envconfig prefix shared by every subsystem.
const EnvPrefix = "ONLY4U"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "ONLY4U_DB_DSN"
	EnvDBHost = "ONLY4U_DB_HOST"
	EnvDBUser = "ONLY4U_DB_USER"
	EnvDBName = "ONLY4U_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

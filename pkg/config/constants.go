package config

const (
	EnvPrefix = "BELLAKIDS"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv        = "BELLAKIDS_APP_ENV"
	EnvPort          = "BELLAKIDS_APP_PORT"
	EnvDBDSN         = "BELLAKIDS_DB_DSN"
	EnvDBHost        = "BELLAKIDS_DB_HOST"
	EnvDBUser        = "BELLAKIDS_DB_USER"
	EnvDBName        = "BELLAKIDS_DB_NAME"
	EnvRedisURL      = "BELLAKIDS_REDIS_URL"
	EnvJWTSecret     = "BELLAKIDS_JWT_SECRET"
	EnvJWTIssuer     = "BELLAKIDS_JWT_ISSUER"
	EnvAdminPassword = "BELLAKIDS_ADMIN_PASSWORD"
	EnvAdminHash     = "BELLAKIDS_ADMIN_PASSWORD_HASH"
	EnvWhatsAppPhone = "BELLAKIDS_WHATSAPP_PHONE"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

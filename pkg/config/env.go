package config

const EnvPrefix = "STOREFRONT"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv       = "STOREFRONT_APP_ENV"
	EnvPort         = "STOREFRONT_APP_PORT"
	EnvLogLevel     = "STOREFRONT_LOG_LEVEL"
	EnvLogWarnStack = "STOREFRONT_LOG_WARN_STACK"

	EnvDBDSN      = "STOREFRONT_DB_DSN"
	EnvDBHost     = "STOREFRONT_DB_HOST"
	EnvDBPort     = "STOREFRONT_DB_PORT"
	EnvDBUser     = "STOREFRONT_DB_USER"
	EnvDBPassword = "STOREFRONT_DB_PASSWORD"
	EnvDBName     = "STOREFRONT_DB_NAME"
	EnvDBSSLMode  = "STOREFRONT_DB_SSLMODE"

	EnvRedisURL  = "STOREFRONT_REDIS_URL"
	EnvRedisAddr = "STOREFRONT_REDIS_ADDR"

	EnvJWTSecret  = "STOREFRONT_JWT_SECRET"
	EnvJWTIssuer  = "STOREFRONT_JWT_ISSUER"
	EnvJWTExpMins = "STOREFRONT_JWT_EXPIRATION_MINUTES"

	EnvCartTTL         = "STOREFRONT_CART_TTL"
	EnvCartMaxLines    = "STOREFRONT_CART_MAX_LINES"
	EnvCartMaxQuantity = "STOREFRONT_CART_MAX_QUANTITY"

	EnvPreferenceTTL = "STOREFRONT_CATALOG_PREFERENCE_TTL"

	EnvOwnerRateLimitWindow = "STOREFRONT_OWNER_RATE_LIMIT_WINDOW"
	EnvOwnerRateLimitIP     = "STOREFRONT_OWNER_RATE_LIMIT_IP_LIMIT"

	EnvShopperRPS   = "STOREFRONT_SHOPPER_RPS"
	EnvShopperBurst = "STOREFRONT_SHOPPER_BURST"

	EnvUseSQLite   = "STOREFRONT_USE_SQLITE"
	EnvAutoMigrate = "STOREFRONT_AUTO_MIGRATE"

	EnvCORSOrigins = "STOREFRONT_CORS_ALLOWED_ORIGINS"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

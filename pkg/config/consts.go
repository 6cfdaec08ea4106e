package config

// EnvPrefix namespaces every environment variable read by Load.
const EnvPrefix = "campmart"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

// Environment variable names, exported so tests and ops tooling share them.
const (
	EnvAppEnv             = "CAMPMART_APP_ENV"
	EnvPort               = "CAMPMART_APP_PORT"
	EnvRedisURL           = "CAMPMART_REDIS_URL"
	EnvBackendBaseURL     = "CAMPMART_BACKEND_BASE_URL"
	EnvPayHereMerchantID  = "CAMPMART_PAYHERE_MERCHANT_ID"
	EnvPayHereSecret      = "CAMPMART_PAYHERE_MERCHANT_SECRET"
	EnvPayHereReturnURL   = "CAMPMART_PAYHERE_RETURN_URL"
	EnvPayHereCancelURL   = "CAMPMART_PAYHERE_CANCEL_URL"
	EnvPayHereNotifyURL   = "CAMPMART_PAYHERE_NOTIFY_URL"
)

package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Admin         AdminConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Shop          ShopConfig
	Uploads       UploadsConfig
	Cart          CartConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Admin.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"BELLAKIDS_APP_ENV" required:"true"`
	Port         string `envconfig:"BELLAKIDS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"BELLAKIDS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"BELLAKIDS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"BELLAKIDS_DB_DSN"`
	Driver string `envconfig:"BELLAKIDS_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"BELLAKIDS_DB_HOST"`
	LegacyPort     int    `envconfig:"BELLAKIDS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"BELLAKIDS_DB_USER"`
	LegacyPassword string `envconfig:"BELLAKIDS_DB_PASSWORD"`
	LegacyName     string `envconfig:"BELLAKIDS_DB_NAME"`
	LegacySSLMode  string `envconfig:"BELLAKIDS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"BELLAKIDS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"BELLAKIDS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"BELLAKIDS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"BELLAKIDS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"BELLAKIDS_REDIS_URL" required:"true"`
	Address      string        `envconfig:"BELLAKIDS_REDIS_ADDR"`
	Password     string        `envconfig:"BELLAKIDS_REDIS_PASSWORD"`
	DB           int           `envconfig:"BELLAKIDS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"BELLAKIDS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"BELLAKIDS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"BELLAKIDS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BELLAKIDS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"BELLAKIDS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"BELLAKIDS_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"BELLAKIDS_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"BELLAKIDS_JWT_EXPIRATION_MINUTES" default:"60"`
	SessionTTLMinutes int    `envconfig:"BELLAKIDS_SESSION_TTL_MINUTES" default:"1440"`
}

// SessionTTL returns the Redis session lifetime configured in minutes.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.SessionTTLMinutes) * time.Minute
}

// AdminConfig carries the single-admin credential. Either the encoded Argon2id
// hash or a plaintext password (dev only, hashed at boot) must be present.
type AdminConfig struct {
	PasswordHash string `envconfig:"BELLAKIDS_ADMIN_PASSWORD_HASH"`
	Password     string `envconfig:"BELLAKIDS_ADMIN_PASSWORD"`
}

func (a AdminConfig) validate() error {
	if a.PasswordHash == "" && a.Password == "" {
		return fmt.Errorf("either BELLAKIDS_ADMIN_PASSWORD_HASH or BELLAKIDS_ADMIN_PASSWORD is required")
	}
	return nil
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"BELLAKIDS_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"BELLAKIDS_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"BELLAKIDS_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"BELLAKIDS_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"BELLAKIDS_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow  time.Duration `envconfig:"BELLAKIDS_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginIPLimit int           `envconfig:"BELLAKIDS_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"10"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"BELLAKIDS_AUTO_MIGRATE" default:"false"`
}

// ShopConfig carries storefront-wide settings surfaced in the order message.
type ShopConfig struct {
	WhatsAppPhone string `envconfig:"BELLAKIDS_WHATSAPP_PHONE" required:"true"`
	DefaultLocale string `envconfig:"BELLAKIDS_DEFAULT_LOCALE" default:"ar"`
	Currency      string `envconfig:"BELLAKIDS_CURRENCY" default:"₪"`
}

type UploadsConfig struct {
	Dir            string `envconfig:"BELLAKIDS_UPLOADS_DIR" default:"uploads"`
	PublicBasePath string `envconfig:"BELLAKIDS_UPLOADS_PUBLIC_PATH" default:"/uploads/"`
	MaxUploadMB    int    `envconfig:"BELLAKIDS_MAX_UPLOAD_MB" default:"25"`
	MaxFiles       int    `envconfig:"BELLAKIDS_MAX_UPLOAD_FILES" default:"10"`
	PlaceholderURL string `envconfig:"BELLAKIDS_PLACEHOLDER_URL" default:"/assets/images/placeholder.png"`
}

type CartConfig struct {
	TTL time.Duration `envconfig:"BELLAKIDS_CART_TTL" default:"720h"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}

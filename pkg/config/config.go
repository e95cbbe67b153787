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
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Storage       StorageConfig
	Uploads       UploadsConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"ONLY4U_APP_ENV" required:"true"`
	Port         string `envconfig:"ONLY4U_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"ONLY4U_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ONLY4U_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"ONLY4U_DB_DSN"`
	Driver string `envconfig:"ONLY4U_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"ONLY4U_DB_HOST"`
	LegacyPort     int    `envconfig:"ONLY4U_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"ONLY4U_DB_USER"`
	LegacyPassword string `envconfig:"ONLY4U_DB_PASSWORD"`
	LegacyName     string `envconfig:"ONLY4U_DB_NAME"`
	LegacySSLMode  string `envconfig:"ONLY4U_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"ONLY4U_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"ONLY4U_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"ONLY4U_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ONLY4U_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"ONLY4U_REDIS_URL" required:"true"`
	Address      string        `envconfig:"ONLY4U_REDIS_ADDR"`
	Password     string        `envconfig:"ONLY4U_REDIS_PASSWORD"`
	DB           int           `envconfig:"ONLY4U_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ONLY4U_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ONLY4U_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ONLY4U_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ONLY4U_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ONLY4U_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"ONLY4U_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"ONLY4U_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"ONLY4U_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"ONLY4U_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"ONLY4U_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"ONLY4U_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"ONLY4U_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"ONLY4U_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"ONLY4U_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow      time.Duration `envconfig:"ONLY4U_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit  int           `envconfig:"ONLY4U_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit     int           `envconfig:"ONLY4U_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	SignupWindow     time.Duration `envconfig:"ONLY4U_AUTH_RATE_LIMIT_SIGNUP_WINDOW" default:"5m"`
	SignupEmailLimit int           `envconfig:"ONLY4U_AUTH_RATE_LIMIT_SIGNUP_EMAIL_LIMIT" default:"3"`
	SignupIPLimit    int           `envconfig:"ONLY4U_AUTH_RATE_LIMIT_SIGNUP_IP_LIMIT" default:"20"`
}

type StorageConfig struct {
	SupabaseURL           string `envconfig:"ONLY4U_SUPABASE_URL" required:"true"`
	SupabaseServiceKey    string `envconfig:"ONLY4U_SUPABASE_SERVICE_ROLE_KEY" required:"true"`
	ProductImagesBucket   string `envconfig:"ONLY4U_PRODUCT_IMAGES_BUCKET" default:"product-images"`
	BusinessLicenseBucket string `envconfig:"ONLY4U_BUSINESS_LICENSE_BUCKET" default:"business-licenses"`
}

type UploadsConfig struct {
	MaxImageBytes int64 `envconfig:"ONLY4U_UPLOADS_MAX_IMAGE_BYTES" default:"5242880"`
	MaxBatchFiles int   `envconfig:"ONLY4U_UPLOADS_MAX_BATCH_FILES" default:"10"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"ONLY4U_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"ONLY4U_AUTO_MIGRATE" default:"false"`
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

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"

	StoreMemory   = "memory"
	StorePostgres = "postgres"

	devJWTSecret = "dev_secret_change_me"
)

// Configはアプリ全体の設定
type Config struct {
	Port  string // サーバーポート（8080）
	GoEnv string // development/production

	JWTSecret  string        // JWT署名シークレット
	JWTTTL     time.Duration // アクセストークンの有効期限
	BcryptCost int
	// このメールで登録したユーザーはadmin
	AdminEmails []string

	StoreDriver string // memory/postgres

	DatabaseURL      string
	PostgresUser     string // DBユーザー
	PostgresPassword string // DBパスワード
	PostgresDB       string // DB名
	PostgresHost     string // DBホスト（localhost）
	PostgresPort     int    // DBポート（5432）
	PostgresSSLMode  string

	RedisURL     string // 空ならカートキャッシュなし
	CartCacheTTL time.Duration

	// trueならチェックアウト時にカタログ価格で計算し直す
	CheckoutReprice bool
}

func (c Config) IsProduction() bool {
	return c.GoEnv == EnvProduction
}

// Addrはecho.Startに渡す形（":8080"）
func (c Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

// Loadは.env（あれば）と環境変数を読む
func Load() (Config, error) {
	// .envは任意
	_ = godotenv.Load()

	return FromEnv()
}

// FromEnvは環境変数だけから組み立てる
func FromEnv() (Config, error) {
	var err error
	cfg := Config{
		Port:  getenv("PORT", "8080"),
		GoEnv: getenv("GO_ENV", EnvDevelopment),

		JWTSecret:   os.Getenv("JWT_SECRET"),
		AdminEmails: splitList(os.Getenv("ADMIN_EMAILS")),

		StoreDriver: strings.ToLower(getenv("STORE_DRIVER", StoreMemory)),

		DatabaseURL:      os.Getenv("DATABASE_URL"),
		PostgresUser:     getenv("POSTGRES_USER", "postgres"),
		PostgresPassword: getenv("POSTGRES_PASSWORD", "postgres"),
		PostgresDB:       getenv("POSTGRES_DB", "storefront"),
		PostgresHost:     getenv("POSTGRES_HOST", "localhost"),
		PostgresSSLMode:  getenv("POSTGRES_SSLMODE", "disable"),

		RedisURL: os.Getenv("REDIS_URL"),
	}

	if cfg.JWTTTL, err = durationEnv("JWT_TTL", 24*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.CartCacheTTL, err = durationEnv("CART_CACHE_TTL", 15*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.BcryptCost, err = intEnv("BCRYPT_COST", 10); err != nil {
		return Config{}, err
	}
	if cfg.PostgresPort, err = intEnv("POSTGRES_PORT", 5432); err != nil {
		return Config{}, err
	}
	if cfg.CheckoutReprice, err = boolEnv("CHECKOUT_REPRICE", false); err != nil {
		return Config{}, err
	}

	//必須チェック
	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return Config{}, fmt.Errorf("JWT_SECRET is required")
		}
		cfg.JWTSecret = devJWTSecret
	}
	switch cfg.StoreDriver {
	case StoreMemory, StorePostgres:
	default:
		return Config{}, fmt.Errorf("STORE_DRIVER must be %q or %q", StoreMemory, StorePostgres)
	}
	if cfg.JWTTTL <= 0 {
		return Config{}, fmt.Errorf("JWT_TTL must be positive")
	}

	return cfg, nil
}

func getenv(key string, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be duration: %w", key, err)
	}
	return d, nil
}

func boolEnv(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s must be bool: %w", key, err)
	}
	return b, nil
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, strings.ToLower(s))
		}
	}
	return out
}

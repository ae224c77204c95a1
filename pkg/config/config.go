package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa a configuração da aplicação (lida via Viper de env e,
// opcionalmente, de arquivo).
type Config struct {
	App  AppConfig
	DB   DBConfig
	JWT  JWTConfig
	HTTP HTTPConfig
}

// AppConfig configuração geral.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// DBConfig configuração de PostgreSQL. Se DatabaseURL não estiver vazio, ele é
// usado como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devolve o DSN a usar: DATABASE_URL se definido, senão o
// construído por DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN monta o connection string com URL encoding para caracteres especiais na senha.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuração de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuração do servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devolve o endereço de escuta (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load lê a configuração de variáveis de ambiente (e opcionalmente de arquivo
// .env / config.env). Env vars têm prioridade.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos erro se não existir

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos erro se não existir

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "petshop-api"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "petshop"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "petshop-api"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultEnvPath = ".env"
	EnvLocal       = "local"
	EnvDev         = "dev"
	EnvProd        = "prod"

	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

// Config is built once at startup and handed to the components that need it.
// Nothing reads the environment after Load returns.
type Config struct {
	Env    string
	DB     DB
	Server Server
	Logger Logger
}

type DB struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	URI      string
}

type Server struct {
	Port        int
	FrontendURL string
	APIKey      string
}

type Logger struct {
	LogLevel string
}

// Addr returns the listen address for the HTTP server.
func (s Server) Addr() string {
	return fmt.Sprintf("0.0.0.0:%d", s.Port)
}

// Load reads .env (if present) and the process environment.
func Load(envPath string) (*Config, error) {
	if envPath == "" {
		envPath = DefaultEnvPath
	}
	if err := godotenv.Load(envPath); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("app_env", EnvLocal)
	v.SetDefault("port", 4000)
	v.SetDefault("frontend_url", "*")
	v.SetDefault("db_driver", DriverMySQL)
	v.SetDefault("db_host", "localhost")

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	driver := strings.ToLower(strings.TrimSpace(v.GetString("db_driver")))
	switch driver {
	case DriverMySQL, DriverPostgres, DriverSQLite:
	case "pgx", "postgresql":
		driver = DriverPostgres
	case "sqlite":
		driver = DriverSQLite
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	port := v.GetInt("db_port")
	if port == 0 {
		port = defaultDBPort(driver)
	}

	cfg := &Config{
		Env: v.GetString("app_env"),
		DB: DB{
			Driver:   driver,
			Host:     v.GetString("db_host"),
			Port:     port,
			User:     v.GetString("db_user"),
			Password: v.GetString("db_password"),
			Name:     v.GetString("db_name"),
			URI:      v.GetString("database_uri"),
		},
		Server: Server{
			Port:        v.GetInt("port"),
			FrontendURL: v.GetString("frontend_url"),
			APIKey:      v.GetString("api_key"),
		},
		Logger: Logger{LogLevel: v.GetString("log_level")},
	}
	if cfg.Server.Port <= 0 {
		return nil, fmt.Errorf("invalid PORT %d", cfg.Server.Port)
	}

	return cfg, nil
}

func defaultDBPort(driver string) int {
	switch driver {
	case DriverMySQL:
		return 3306
	case DriverPostgres:
		return 5432
	}
	return 0
}

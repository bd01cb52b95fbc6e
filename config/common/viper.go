package common

import (
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/spf13/viper"
)

type Config struct {
	Viper *viper.Viper
}

func NewViper() *Config {
	config := viper.New()
	config.SetConfigFile(".env")
	config.AddConfigPath("../")
	config.AutomaticEnv()

	log.Trace("Checking file .env ....")
	if err := config.ReadInConfig(); err != nil {
		panic("failed read config")
	}
	return &Config{Viper: config}
}

func (c *Config) GetAppConfig() (appName, port string) {
	appName = c.Viper.GetString("APP_NAME")
	port = c.Viper.GetString("SERVER_PORT")
	return appName, port
}

func (c *Config) GetDatabaseConfig() (dbHost, dbUser, dbPassword, dbName, dbPort string) {
	dbHost = c.Viper.GetString("DB_HOSTNAME")
	dbUser = c.Viper.GetString("DB_USER")
	dbPassword = c.Viper.GetString("DB_PASSWORD")
	dbName = c.Viper.GetString("DB_NAME")
	dbPort = c.Viper.GetString("DB_PORT")

	return dbHost, dbUser, dbPassword, dbName, dbPort
}

// GetJWTKeys returns the PEM-encoded EC private keys for the access and
// refresh token pairs. The pairs are distinct so an access token can never
// verify against the refresh key or vice versa.
func (c *Config) GetJWTKeys() (accessPEM, refreshPEM string) {
	accessPEM = c.Viper.GetString("JWT_ACCESS_PRIVATE_KEY")
	refreshPEM = c.Viper.GetString("JWT_REFRESH_PRIVATE_KEY")
	return accessPEM, refreshPEM
}

func (c *Config) GetJWTExpiry() (access, refresh time.Duration) {
	access = time.Duration(c.Viper.GetInt("JWT_ACCESS_EXPIRE_MINUTES")) * time.Minute
	refresh = time.Duration(c.Viper.GetInt("JWT_REFRESH_EXPIRE_MINUTES")) * time.Minute
	return access, refresh
}

func (c *Config) GetCORSConfig() (origins string) {
	return c.Viper.GetString("CORS_ALLOW_ORIGINS")
}

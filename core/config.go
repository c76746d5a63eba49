package core

import (
	"fmt"
	"log"
	"net"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		Debug           bool
		TestMode        bool
		AppName         string
		Env             string // DEV (local; default), TEST, QA, PROD
		Build           string
		WorkDir         string
		FrontendBaseURL string

		RollbarToken     string
		SendgridAPIKey   string
		DefaultFromEmail string
		AdminEmail       string // receives new sign-up notifications

		Server   ServerConfig
		Database DatabaseConfig
		Storage  StorageConfig
		Client   ClientConfig
	}

	ServerConfig struct {
		Host            string
		Addr            string
		DebugHost       string
		ShutdownTimeout time.Duration
	}

	DatabaseConfig struct {
		Engine        string
		Host          string
		Port          string
		Name          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		DisableTLS    bool
	}

	// StorageConfig configures the S3 compatible bucket holding subject files.
	StorageConfig struct {
		Bucket          string
		Region          string
		Endpoint        string // empty for AWS; set for MinIO & co
		AccessKeyID     string
		SecretAccessKey string
		PublicBaseURL   string // links handed to students; defaults to <endpoint>/<bucket>
	}

	ClientConfig struct {
		APIURL     string
		DataDir    string
		IntroDelay time.Duration
	}
)

func (db DatabaseConfig) Address() string {
	return net.JoinHostPort(db.Host, db.Port)
}

// DefaultFromAddress parses DefaultFromEmail, falling back to "<AppName> <noreply@localhost>".
func (conf *Config) DefaultFromAddress() mail.Address {
	if addr, err := mail.ParseAddress(conf.DefaultFromEmail); err == nil {
		return *addr
	}
	return mail.Address{Name: conf.AppName, Address: "noreply@localhost"}
}

// NewConfig loads the configuration of the current environment (ENV variable).
// config/.env.<env> is loaded first when it exists; real environment variables,
// prefixed with the environment name (eg. DEV_DATABASE_HOST), win over it.
func NewConfig() *Config {
	v := viper.New()
	v.SetTypeByDefaultValue(true)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("appName", "Elevate")
	v.SetDefault("build", "develop")
	v.SetDefault("frontendBaseURL", "http://localhost:5173")
	v.SetDefault("defaultFromEmail", "Elevate <noreply@localhost>")
	v.SetDefault("adminEmail", "")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("sendgridAPIKey", "")

	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.addr", ":4000")
	v.SetDefault("server.debugHost", ":4001")
	v.SetDefault("server.shutdownTimeout", 5*time.Second)

	v.SetDefault("database.engine", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.name", "elevate")
	v.SetDefault("database.user", "elevate")
	v.SetDefault("database.password", "")
	v.SetDefault("database.adminUser", "")
	v.SetDefault("database.adminPassword", "")
	v.SetDefault("database.disableTLS", true)

	v.SetDefault("storage.bucket", "elevate")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.accessKeyID", "")
	v.SetDefault("storage.secretAccessKey", "")
	v.SetDefault("storage.publicBaseURL", "")

	v.SetDefault("client.apiURL", "http://localhost:4000")
	v.SetDefault("client.dataDir", "")
	v.SetDefault("client.introDelay", 3*time.Second)

	env := strings.ToUpper(os.Getenv("ENV"))
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)

	wd, err := os.Getwd()
	if err != nil {
		log.Fatalf("config.os.Getwd(): %v", err)
	}

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	conf := &Config{
		Debug:            v.GetBool("debug"),
		TestMode:         v.GetBool("testMode"),
		AppName:          v.GetString("appName"),
		Env:              env,
		Build:            v.GetString("build"),
		WorkDir:          wd,
		FrontendBaseURL:  v.GetString("frontendBaseURL"),
		RollbarToken:     v.GetString("rollbarToken"),
		SendgridAPIKey:   v.GetString("sendgridAPIKey"),
		DefaultFromEmail: v.GetString("defaultFromEmail"),
		AdminEmail:       v.GetString("adminEmail"),
		Server: ServerConfig{
			Host:            v.GetString("server.host"),
			Addr:            v.GetString("server.addr"),
			DebugHost:       v.GetString("server.debugHost"),
			ShutdownTimeout: v.GetDuration("server.shutdownTimeout"),
		},
		Database: DatabaseConfig{
			Engine:        v.GetString("database.engine"),
			Host:          v.GetString("database.host"),
			Port:          v.GetString("database.port"),
			Name:          v.GetString("database.name"),
			User:          v.GetString("database.user"),
			Password:      v.GetString("database.password"),
			AdminUser:     v.GetString("database.adminUser"),
			AdminPassword: v.GetString("database.adminPassword"),
			DisableTLS:    v.GetBool("database.disableTLS"),
		},
		Storage: StorageConfig{
			Bucket:          v.GetString("storage.bucket"),
			Region:          v.GetString("storage.region"),
			Endpoint:        v.GetString("storage.endpoint"),
			AccessKeyID:     v.GetString("storage.accessKeyID"),
			SecretAccessKey: v.GetString("storage.secretAccessKey"),
			PublicBaseURL:   v.GetString("storage.publicBaseURL"),
		},
		Client: ClientConfig{
			APIURL:     v.GetString("client.apiURL"),
			DataDir:    v.GetString("client.dataDir"),
			IntroDelay: v.GetDuration("client.introDelay"),
		},
	}
	if conf.Storage.PublicBaseURL == "" && conf.Storage.Endpoint != "" {
		conf.Storage.PublicBaseURL = fmt.Sprintf("%s/%s", strings.TrimRight(conf.Storage.Endpoint, "/"), conf.Storage.Bucket)
	}
	return conf
}

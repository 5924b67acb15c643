package core

import (
	"fmt"
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	// Config carries all the knobs the application reads at startup.
	// Values come from defaults, an optional config/.env.<env> file and
	// ENV-prefixed environment variables; in that order of precedence.
	Config struct {
		Debug    bool
		TestMode bool
		Env      string // DEV (local; default), TEST, QA, PROD
		Build    string
		AppName  string
		WorkDir  string

		SecretKey       string
		FrontendBaseURL string
		DefaultFromName string
		DefaultFromAddr string
		SendgridApiKey  string
		RollbarToken    string

		Server   ServerConfig
		Database DatabaseConfig
	}

	ServerConfig struct {
		Host                      string
		Port                      int
		DebugHost                 string
		ShutdownTimeout           time.Duration
		JWTExpirationDelta        time.Duration
		JWTRefreshExpirationDelta time.Duration
	}

	DatabaseConfig struct {
		Engine        string
		Name          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		Host          string
		Port          int
		DisableTLS    bool
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("build", "dev")
	v.SetDefault("appName", "Darasa")
	v.SetDefault("secretKey", "f1y$+g0q#e9@d-r3mu&)4c_p%z(8o!wvn57^h6*2sxk=jbl0t")
	v.SetDefault("frontendBaseURL", "http://localhost:3000")
	v.SetDefault("defaultFromName", "Darasa")
	v.SetDefault("defaultFromAddr", "noreply@localhost")
	v.SetDefault("serverHost", "0.0.0.0")
	v.SetDefault("serverPort", 8080)
	v.SetDefault("serverDebugHost", "0.0.0.0:4000")
	v.SetDefault("serverShutdownTimeout", 5*time.Second)
	v.SetDefault("jwtExpirationDelta", 1*time.Hour)
	v.SetDefault("jwtRefreshExpirationDelta", 4*time.Hour)
	v.SetDefault("dbEngine", "postgres")
	v.SetDefault("dbName", "darasa")
	v.SetDefault("dbUser", "darasa")
	v.SetDefault("dbPassword", "darasa")
	v.SetDefault("dbAdminUser", "")
	v.SetDefault("dbAdminPassword", "")
	v.SetDefault("dbHost", "localhost")
	v.SetDefault("dbPort", 5432)
	v.SetDefault("dbDisableTLS", true)

	env := os.Getenv("ENV")
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)

	wd := Getwd()

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

	return &Config{
		Debug:           v.GetBool("debug"),
		TestMode:        v.GetBool("testMode"),
		Env:             env,
		Build:           v.GetString("build"),
		AppName:         v.GetString("appName"),
		WorkDir:         wd,
		SecretKey:       v.GetString("secretKey"),
		FrontendBaseURL: v.GetString("frontendBaseURL"),
		DefaultFromName: v.GetString("defaultFromName"),
		DefaultFromAddr: v.GetString("defaultFromAddr"),
		SendgridApiKey:  v.GetString("sendgridApiKey"),
		RollbarToken:    v.GetString("rollbarToken"),
		Server: ServerConfig{
			Host:                      v.GetString("serverHost"),
			Port:                      v.GetInt("serverPort"),
			DebugHost:                 v.GetString("serverDebugHost"),
			ShutdownTimeout:           v.GetDuration("serverShutdownTimeout"),
			JWTExpirationDelta:        v.GetDuration("jwtExpirationDelta"),
			JWTRefreshExpirationDelta: v.GetDuration("jwtRefreshExpirationDelta"),
		},
		Database: DatabaseConfig{
			Engine:        v.GetString("dbEngine"),
			Name:          v.GetString("dbName"),
			User:          v.GetString("dbUser"),
			Password:      v.GetString("dbPassword"),
			AdminUser:     v.GetString("dbAdminUser"),
			AdminPassword: v.GetString("dbAdminPassword"),
			Host:          v.GetString("dbHost"),
			Port:          v.GetInt("dbPort"),
			DisableTLS:    v.GetBool("dbDisableTLS"),
		},
	}
}

func (c *Config) DefaultFromEmail() mail.Address {
	return mail.Address{Name: c.DefaultFromName, Address: c.DefaultFromAddr}
}

func (sc ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", sc.Host, sc.Port)
}

func (dc DatabaseConfig) Address() string {
	return fmt.Sprintf("%s:%d", dc.Host, dc.Port)
}

// Getwd tries to find the project root "darasa".
// go-test changes the working directory to the test package being run during tests... this breaks our code...
// see: https://stackoverflow.com/questions/23847003/golang-tests-and-working-directory
// this is a temporary fix for now :(
func Getwd() string {
	root := "darasa"
	wd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}
	currDir := wd
	for {
		if fi, err := os.Stat(currDir); err == nil {
			dirBase := filepath.Base(currDir)
			if dirBase == root && fi.IsDir() {
				return currDir
			}
		}
		newDir := filepath.Dir(currDir)
		if newDir == string(os.PathSeparator) || newDir == currDir {
			return wd // not running from a checkout; use the cwd as-is
		}
		currDir = newDir
	}
}

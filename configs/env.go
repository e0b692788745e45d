package configs

import (
	_ "embed"

	"github.com/spf13/viper"
)

// Application is the default properties file, used when PROPERTIES_FILE_PATH is unset.
//
//go:embed application.yml
var Application []byte

// Messages is the default message catalog, used when MESSAGES_FILE_PATH is unset.
//
//go:embed messages.yml
var Messages []byte

type EnvConfig struct {
	ApplicationName string
	LogLevel        string
}

var Env *EnvConfig

func init() {
	viper.AutomaticEnv()

	Env = &EnvConfig{
		ApplicationName: getStringOrDefault("APPLICATION_NAME", "go-weather"),
		LogLevel:        getStringOrDefault("LOG_LEVEL", "info"),
	}
}

func getStringOrDefault(key, defaultValue string) string {
	value := viper.GetString(key)
	if value == "" {
		return defaultValue
	}
	return value
}

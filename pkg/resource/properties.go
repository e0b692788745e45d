package resource

import (
	"bytes"
	"log"
	"os"
	"regexp"
	"time"

	"github.com/spf13/viper"

	"go-weather/configs"
)

var envPattern = regexp.MustCompile(`^\$\{([^:}]+)(?::([^}]*))?}$`)

// init loads application properties from YAML
func init() {
	if value, ok := os.LookupEnv("PROPERTIES_FILE_PATH"); ok {
		Init(value)
		return
	}
	if err := Load(configs.Application); err != nil {
		log.Fatalf("Fail to read embedded properties: %v", err)
	}
}

// Init loads the properties file at filepath, replacing the embedded defaults.
func Init(filepath string) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		log.Fatalf("Fail to read properties: %v", err)
	}
	if err := Load(data); err != nil {
		log.Fatalf("Fail to load properties: %v", err)
	}
}

// Load parses YAML properties and resolves ${ENV:default} placeholders.
func Load(data []byte) error {
	viper.SetConfigType("yml")
	if err := viper.ReadConfig(bytes.NewReader(data)); err != nil {
		return err
	}

	properties := make(map[string]any)
	parsePropertiesMap("", viper.AllSettings(), properties)

	for key, value := range properties {
		viper.Set(key, value)
	}
	return nil
}

// parsePropertiesMap reads recursively the YAML file
func parsePropertiesMap(prefix string, data map[string]any, result map[string]any) {
	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			result[fullKey] = resolveEnvVariable(v)
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, bool:
			result[fullKey] = v
		case map[string]any:
			parsePropertiesMap(fullKey, v, result)
		default:
			log.Printf("Ignoring key '%s' with unsupported type.", fullKey)
		}
	}
}

// resolveEnvVariable replaces a ${NAME:default} value with the environment value or the default
func resolveEnvVariable(value string) string {
	matches := envPattern.FindStringSubmatch(value)
	if len(matches) == 0 {
		return value
	}

	if envValue, exists := os.LookupEnv(matches[1]); exists {
		return envValue
	}
	return matches[2]
}

func Get(key string) any {
	return viper.Get(key)
}

func GetString(key string) string {
	return viper.GetString(key)
}

func GetBool(key string) bool {
	return viper.GetBool(key)
}

func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

func GetInt(key string) int {
	return viper.GetInt(key)
}

func GetInt64(key string) int64 {
	return viper.GetInt64(key)
}

func GetFloat64(key string) float64 {
	return viper.GetFloat64(key)
}

func GetStringSlice(key string) []string {
	return viper.GetStringSlice(key)
}

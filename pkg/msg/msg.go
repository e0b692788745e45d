package msg

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"go-weather/configs"
)

var messages map[string]string

// init loads messages from YAML
func init() {
	if value, ok := os.LookupEnv("MESSAGES_FILE_PATH"); ok {
		Init(value)
		return
	}
	if err := Load(configs.Messages); err != nil {
		log.Fatalf("Fail to read embedded messages: %v", err)
	}
}

// Init loads the message catalog at filepath, replacing the embedded one.
func Init(filepath string) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		log.Fatalf("Fail to read messages: %v", err)
	}
	if err := Load(data); err != nil {
		log.Fatalf("Fail to load messages: %v", err)
	}
}

// Load parses a YAML message catalog. It uses its own viper instance so
// messages never leak into application properties.
func Load(data []byte) error {
	v := viper.New()
	v.SetConfigType("yml")
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return err
	}

	loaded := make(map[string]string)
	parseMessageMap("", v.AllSettings(), loaded)
	messages = loaded
	return nil
}

// parseMessageMap read recursively the yml archive
func parseMessageMap(prefix string, data map[string]any, result map[string]string) {
	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			result[fullKey] = v
		case map[string]any:
			parseMessageMap(fullKey, v, result)
		default:
			log.Printf("Ignoring key '%s' with unsupported type.", fullKey)
		}
	}
}

// GetMessage returns a msg and format
func GetMessage(key string, args ...any) string {
	msg, exists := messages[key]
	if !exists {
		return fmt.Sprintf("Message not found: %s", key)
	}

	for i, arg := range args {
		placeholder := fmt.Sprintf("{%d}", i)
		var argStr string

		if isPrimitive(arg) {
			argStr = primitiveToString(arg)
		} else {
			jsonBytes, err := json.Marshal(arg)
			if err != nil {
				argStr = fmt.Sprintf("%v", arg)
			} else {
				argStr = string(jsonBytes)
			}
		}

		msg = strings.ReplaceAll(msg, placeholder, argStr)
	}

	return msg
}

// HasMessage reports whether key exists in the catalog.
func HasMessage(key string) bool {
	_, exists := messages[key]
	return exists
}

// isPrimitive checks if the provided value is of a primitive type (bool, int, uint, float, or string).
func isPrimitive(value any) bool {
	if value == nil {
		return true
	}
	if _, ok := value.(fmt.Stringer); ok {
		return true
	}
	if _, ok := value.(error); ok {
		return true
	}
	switch reflect.TypeOf(value).Kind() {
	case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64, reflect.String:
		return true
	default:
		return false
	}
}

// primitiveToString converts a primitive value to string using strconv for better performance
func primitiveToString(value any) string {
	if value == nil {
		return ""
	}

	switch v := value.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case error:
		return v.Error()
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", value)
	}
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ConfigLoader loads a configuration struct from defaults, an optional
// config file and explicitly set flags, in that order of precedence.
type ConfigLoader struct {
	configFile string
	defaults   map[string]any
	strictMode bool
}

// NewConfigLoader creates a new ConfigLoader instance.
func NewConfigLoader() *ConfigLoader {
	return &ConfigLoader{
		defaults: make(map[string]any),
	}
}

// SetConfigFile sets the configuration file path. An empty path means no file.
func (cl *ConfigLoader) SetConfigFile(configFile string) {
	cl.configFile = configFile
}

// SetDefault sets a default value for a configuration key.
func (cl *ConfigLoader) SetDefault(key string, value any) {
	cl.defaults[key] = value
}

// SetDefaults sets multiple default values at once.
func (cl *ConfigLoader) SetDefaults(defaults map[string]any) {
	for key, value := range defaults {
		cl.defaults[key] = value
	}
}

// SetStrictMode enables or disables strict mode. In strict mode, unknown
// configuration keys cause an error.
func (cl *ConfigLoader) SetStrictMode(strict bool) {
	cl.strictMode = strict
}

// LoadConfigWithFlagSet loads configuration with precedence
// defaults < config file < flags explicitly set on fs.
// The config parameter must be a pointer to the struct to populate.
func (cl *ConfigLoader) LoadConfigWithFlagSet(config any, fs *pflag.FlagSet) error {
	v := viper.New()

	for key, value := range cl.defaults {
		v.SetDefault(key, value)
	}

	if cl.configFile != "" {
		v.SetConfigFile(cl.configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("%w %s: %v", ErrConfigFileRead, cl.configFile, err)
		}
	}

	// Flags left at their default must not mask values from the file.
	if fs != nil {
		fs.Visit(func(flag *pflag.Flag) {
			v.Set(flag.Name, flagValue(flag))
		})
	}

	if cl.strictMode {
		if err := cl.decodeStrict(v, config); err != nil {
			return err
		}
	} else {
		decodeHook := func(f reflect.Type, t reflect.Type, data any) (any, error) {
			if f.Kind() != reflect.Struct {
				return data, nil
			}
			if reflect.ValueOf(data).IsZero() {
				return nil, nil
			}
			return data, nil
		}

		if err := v.Unmarshal(config, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
			decodeHook,
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		))); err != nil {
			return fmt.Errorf("%w: %v", ErrConfigUnmarshal, err)
		}
	}

	// viper does not know about the file it was given, so put it back
	if cl.configFile != "" {
		if err := setConfigFileField(config, cl.configFile); err != nil {
			return err
		}
	}

	return nil
}

func (cl *ConfigLoader) decodeStrict(v *viper.Viper, config any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           config,
		ErrorUnused:      true,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("%w: failed to create decoder: %v", ErrConfigUnmarshal, err)
	}

	if err := decoder.Decode(v.AllSettings()); err != nil {
		errStr := err.Error()
		if cl.configFile != "" && strings.Contains(errStr, "has invalid keys:") {
			errStr = strings.Replace(errStr, "* ''", fmt.Sprintf("* '%s'", cl.configFile), 1)
		}
		return fmt.Errorf("%w: %s", ErrConfigUnmarshal, errStr)
	}
	return nil
}

// flagValue returns the typed value of a flag so that viper and mapstructure
// see ints as ints and slices as slices instead of their string forms.
func flagValue(flag *pflag.Flag) any {
	str := flag.Value.String()

	switch flag.Value.Type() {
	case "uint", "uint8", "uint16", "uint32", "uint64":
		if val, err := strconv.ParseUint(str, 10, 64); err == nil {
			return val
		}
	case "int", "int8", "int16", "int32", "int64":
		if val, err := strconv.ParseInt(str, 10, 64); err == nil {
			return val
		}
	case "bool":
		if val, err := strconv.ParseBool(str); err == nil {
			return val
		}
	case "float32", "float64":
		if val, err := strconv.ParseFloat(str, 64); err == nil {
			return val
		}
	case "stringSlice", "stringArray":
		if sliceFlag, ok := flag.Value.(pflag.SliceValue); ok {
			return sliceFlag.GetSlice()
		}
		str = strings.Trim(str, "[]")
		if str == "" {
			return []string{}
		}
		items := strings.Split(str, ",")
		for i, item := range items {
			items[i] = strings.TrimSpace(item)
		}
		return items
	}

	return str
}

// setConfigFileField sets a string field named ConfigFile on the config
// struct, if there is one.
func setConfigFileField(config any, configFile string) error {
	v := reflect.ValueOf(config)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return fmt.Errorf("%w: got %T", ErrConfigNotPointer, config)
	}

	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("%w: got %s", ErrConfigNotStruct, v.Kind())
	}

	field := v.FieldByName("ConfigFile")
	if !field.IsValid() {
		return nil
	}
	if !field.CanSet() {
		return fmt.Errorf("%w: ConfigFile", ErrConfigFieldNotSet)
	}
	if field.Kind() != reflect.String {
		return fmt.Errorf("%w: ConfigFile is %s", ErrConfigFieldNotString, field.Kind())
	}

	field.SetString(configFile)
	return nil
}

// DefaultConfigFile returns the per-user config file for the named program.
func DefaultConfigFile(program string) string {
	return filepath.Join(xdg.ConfigHome, "pilab", program+".toml")
}

// ResolveConfigFile decides which config file to read. A missing default
// file is silently ignored; a missing explicitly requested file is an error.
func ResolveConfigFile(configFile, defaultConfigFile string) (string, error) {
	if configFile == "" {
		return "", nil
	}

	_, err := os.Stat(configFile)
	switch {
	case err == nil:
		return configFile, nil
	case os.IsNotExist(err) && configFile == defaultConfigFile:
		return "", nil
	case os.IsNotExist(err):
		return "", fmt.Errorf("%w: %s", ErrConfigFileNotFound, configFile)
	default:
		return "", fmt.Errorf("%w %s: %v", ErrConfigFileRead, configFile, err)
	}
}

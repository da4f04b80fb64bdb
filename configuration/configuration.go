package configuration

import (
	"os"
	"strings"
	"sync"

	"github.com/thanhminhmr/go-testerror/exception"
	"github.com/thanhminhmr/go-testerror/internal"

	"github.com/go-viper/mapstructure/v2"
)

const (
	errorDecoder  = exception.String("Configuration: Failed to create decoder")
	errorDecode   = exception.String("Configuration: Failed to decode")
	errorValidate = exception.String("Configuration: Invalid value")
)

var (
	globalMutex        sync.RWMutex
	globalDefaults     = make(map[string]string)
	globalDotEnv       = make(map[string]string)
	globalDotEnvLoaded sync.Once
)

// SetDefault registers the value used when neither the .env file nor the
// process environment sets key. Config owners call it from init().
func SetDefault(key string, value string) {
	globalMutex.Lock()
	defer globalMutex.Unlock()
	globalDefaults[key] = value
}

// Load fills config from the environment. Keys are matched against the `env`
// tags after stripping the prefixes joined with "_". Sources by priority:
// process environment, then the .env file in the working directory, then the
// registered defaults. The result is validated with its `validate` tags.
func Load[T any](config *T, prefixes ...string) error {
	prefix := ""
	if len(prefixes) > 0 {
		prefix = strings.Join(prefixes, "_") + "_"
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "env",
		DecodeHook:       internal.SplitSemicolonsDecodeHookFunc,
		ZeroFields:       true,
		WeaklyTypedInput: true,
		Result:           config,
	})
	if err != nil {
		return errorDecoder.AddCause(err)
	}
	if err := decoder.Decode(getEnvironment(prefix)); err != nil {
		return errorDecode.AddCause(err)
	}
	if err := internal.Validator.Struct(config); err != nil {
		return errorValidate.AddCause(err)
	}
	return nil
}

// Loader adapts Load into a constructor, e.g. for fx.Provide.
func Loader[T any](prefixes ...string) func() (*T, error) {
	return func() (*T, error) {
		config := new(T)
		if err := Load(config, prefixes...); err != nil {
			return nil, err
		}
		return config, nil
	}
}

func loadDotEnv() {
	bytes, err := os.ReadFile(".env")
	if err != nil {
		return
	}
	saveEnvironments(globalDotEnv, strings.Split(string(bytes), "\n"))
}

func saveEnvironments(target map[string]string, lines []string) {
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if key, value, found := strings.Cut(line, "="); found {
			target[strings.TrimSpace(key)] = strings.TrimSpace(value)
		}
	}
}

func getEnvironment(prefix string) map[string]string {
	globalDotEnvLoaded.Do(loadDotEnv)
	process := make(map[string]string)
	saveEnvironments(process, os.Environ())

	globalMutex.RLock()
	defer globalMutex.RUnlock()
	environments := make(map[string]string)
	for _, source := range []map[string]string{globalDefaults, globalDotEnv, process} {
		for key, value := range source {
			if fixedKey, hasPrefix := strings.CutPrefix(key, prefix); hasPrefix {
				environments[fixedKey] = value
			}
		}
	}
	return environments
}

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/jdcrensh/sftemplate/pkg/errors"
	"github.com/jdcrensh/sftemplate/pkg/logging"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/stoewer/go-strcase"
)

// EnvPrefix prefixes every environment variable read as an option
const EnvPrefix = "SFTEMPLATE_"

// DefaultFileNames are looked up, in order, when no config file is given
var DefaultFileNames = []string{"sftemplate.toml", "sftemplate.yaml", "sftemplate.yml", ".sftemplate.toml"}

// Config is the typed view of the well-known options
type Config struct {
	OutputDir     string                   `koanf:"outputDir"`
	DistDir       string                   `koanf:"distDir"`
	APIName       string                   `koanf:"apiName"`
	APIVersion    string                   `koanf:"apiVersion"`
	Meta          bool                     `koanf:"meta"`
	ArchiveIgnore []string                 `koanf:"archiveIgnore"`
	Files         []map[string]interface{} `koanf:"files"`
}

// Loaded holds the merged options and where they came from
type Loaded struct {
	k *koanf.Koanf
	// Path is the config file that was read, empty if none was found
	Path string
}

// Find returns the first default config file present in dir
func Find(dir string) string {
	for _, name := range DefaultFileNames {
		p := filepath.Join(dir, name)
		if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
			return p
		}
	}
	return ""
}

// Load merges the option sources. An empty path looks for a default config
// file in the working directory; a missing default file is not an error.
// overrides are applied last and usually come from command line flags.
func Load(path string, overrides map[string]interface{}) (*Loaded, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. Config file
	if path == "" {
		path = Find(".")
	}
	if path != "" {
		parser, err := parserFor(path)
		if err != nil {
			return nil, err
		}
		if _, err := os.Stat(path); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", path).
				WithDetail("path", path)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse config from %s", path).
				WithDetail("path", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded config file")
	}

	// 3. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
	}

	// 4. Overrides
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	if s, ok := k.Get("archiveIgnore").(string); ok {
		if err := k.Set("archiveIgnore", splitList(s)); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigParse, "invalid archiveIgnore")
		}
	}

	logger.Debug().
		Strs("keys", k.Keys()).
		Msg("Configuration loaded")

	return &Loaded{k: k, Path: path}, nil
}

// envKey maps SFTEMPLATE_OUTPUT_DIR to outputDir
func envKey(s string) string {
	return strcase.LowerCamelCase(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)))
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	default:
		return nil, errors.Newf(errors.ErrConfigParse, "unsupported config format %q", filepath.Ext(path)).
			WithDetail("path", path)
	}
}

func splitList(s string) []interface{} {
	var out []interface{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Raw returns a copy of the merged options
func (l *Loaded) Raw() map[string]interface{} {
	return l.k.Raw()
}

// Config decodes the well-known options
func (l *Loaded) Config() (*Config, error) {
	var cfg Config
	err := l.k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
				floatToVersionHookFunc(),
			),
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to decode configuration")
	}
	return &cfg, nil
}

// floatToVersionHookFunc decodes API versions written as bare numbers
// without rounding, so 36.0 decodes as "36.0" rather than "36"
func floatToVersionHookFunc() mapstructure.DecodeHookFuncKind {
	return func(from, to reflect.Kind, data interface{}) (interface{}, error) {
		if from != reflect.Float64 || to != reflect.String {
			return data, nil
		}
		v, ok := data.(float64)
		if !ok {
			return data, nil
		}
		s := strconv.FormatFloat(v, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s, nil
	}
}

// String renders the config file origin for messages
func (l *Loaded) String() string {
	if l.Path == "" {
		return "defaults"
	}
	return l.Path
}

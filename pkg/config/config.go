package config

import (
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/importgraph/pkg/errors"
	graphio "github.com/matzehuels/importgraph/pkg/io"
	"github.com/matzehuels/importgraph/pkg/pipeline"
)

// EnvDSN names the environment variable consulted for the Postgres
// connection string when none is configured.
const EnvDSN = "IMPORTGRAPH_DSN"

// Config holds every tunable of an analysis run.
type Config struct {
	Threshold       int      `toml:"threshold" yaml:"threshold" validate:"min=1"`
	Resolution      float64  `toml:"resolution" yaml:"resolution" validate:"gt=0"`
	IncludeIsolated bool     `toml:"include_isolated" yaml:"include_isolated"`
	Input           Input    `toml:"input" yaml:"input"`
	Postgres        Postgres `toml:"postgres" yaml:"postgres"`
}

// Input selects how record files are decoded.
type Input struct {
	Format      string `toml:"format" yaml:"format" validate:"omitempty,oneof=csv json"`
	FeatureType string `toml:"feature_type" yaml:"feature_type" validate:"required,max=128"`
}

// Postgres locates the feature table. An empty DSN disables it.
type Postgres struct {
	DSN   string `toml:"dsn,omitempty" yaml:"dsn"`
	Table string `toml:"table" yaml:"table" validate:"required,max=128"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Threshold:  pipeline.DefaultThreshold,
		Resolution: pipeline.DefaultResolution,
		Input: Input{
			FeatureType: graphio.DefaultFeatureType,
		},
		Postgres: Postgres{
			Table: graphio.DefaultTable,
		},
	}
}

// Load reads a TOML (.toml) or YAML (.yaml, .yml) file over the defaults.
// Keys the file omits keep their default values; unknown keys are rejected.
// The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return cfg, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(strings.NewReader(string(data)))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !stderrors.Is(err, io.EOF) {
			return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode %s", path)
		}
	default:
		return cfg, errors.New(errors.ErrCodeInvalidFormat, "unsupported config extension %q (want .toml, .yaml or .yml)", ext)
	}

	return cfg, cfg.Validate()
}

// ApplyEnv fills unset values from the environment.
func (c *Config) ApplyEnv() {
	if c.Postgres.DSN == "" {
		c.Postgres.DSN = os.Getenv(EnvDSN)
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("toml"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate checks every field against its constraints. The first violation
// is returned as an INVALID_CONFIG error.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) || len(verrs) == 0 {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "validate config")
	}

	e := verrs[0]
	field := strings.TrimPrefix(e.Namespace(), "Config.")
	switch e.Tag() {
	case "required":
		return errors.New(errors.ErrCodeInvalidConfig, "%s: field is required", field)
	case "min":
		return errors.New(errors.ErrCodeInvalidConfig, "%s: must be at least %s", field, e.Param())
	case "max":
		return errors.New(errors.ErrCodeInvalidConfig, "%s: must not exceed %s characters", field, e.Param())
	case "gt":
		return errors.New(errors.ErrCodeInvalidConfig, "%s: must be greater than %s", field, e.Param())
	case "oneof":
		return errors.New(errors.ErrCodeInvalidConfig, "%s: must be one of [%s]", field, e.Param())
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "%s: validation failed (%s)", field, e.Tag())
	}
}

// Redacted returns a copy safe to print: the DSN password is masked.
func (c Config) Redacted() Config {
	c.Postgres.DSN = redactDSN(c.Postgres.DSN)
	return c
}

// WriteTOML encodes c as TOML.
func (c Config) WriteTOML(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

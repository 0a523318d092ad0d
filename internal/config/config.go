// Package config loads CLI defaults from an optional TOML file and from
// OAS2PUML_* environment variables.
//
// Precedence, lowest first: built-in defaults, the config file, the
// environment. Command-line flags are applied by the caller on top.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/erraggy/oas2puml/diagram"
	"github.com/erraggy/oas2puml/oaserrors"
	"github.com/erraggy/oas2puml/render"
)

// DefaultFileName is looked up in the working directory when no config file
// is given explicitly.
const DefaultFileName = ".oas2puml.toml"

// Environment variables read by ApplyEnv.
const (
	EnvType           = "OAS2PUML_TYPE"
	EnvCardinality    = "OAS2PUML_CARDINALITY"
	EnvSVG            = "OAS2PUML_SVG"
	EnvPlantUMLServer = "OAS2PUML_PLANTUML_SERVER"
)

// Settings are the defaults of the generate command.
type Settings struct {
	Type           string   `toml:"type"`
	Cardinality    bool     `toml:"cardinality"`
	SVG            bool     `toml:"svg"`
	ImageFormats   []string `toml:"image_formats"`
	PlantUMLServer string   `toml:"plantuml_server"`
	Output         string   `toml:"output"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Type:           string(diagram.TypeFull),
		Cardinality:    true,
		PlantUMLServer: render.DefaultServer,
	}
}

// Load returns the built-in defaults overlaid with the config file and the
// process environment. An empty path selects DefaultFileName, which may be
// missing; an explicit path must exist. The second result is the file that
// was read, or "" if none was.
func Load(path string) (Settings, string, error) {
	s := Default()
	used, err := s.LoadFile(path)
	if err != nil {
		return Settings{}, "", err
	}
	s.ApplyEnv(os.Getenv)
	return s, used, nil
}

// LoadFile overlays s with the TOML file at path. Keys the file does not
// set keep their current value; unknown keys are an error.
func (s *Settings) LoadFile(path string) (string, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFileName
	}
	data, err := os.ReadFile(path) //nolint:gosec // path is user configuration
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return "", nil
	}
	if err != nil {
		return "", &oaserrors.ConfigError{Option: "config", Value: path, Message: "failed to read config file", Cause: err}
	}

	decoded := *s
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&decoded); err != nil {
		return "", &oaserrors.ConfigError{Option: "config", Value: path, Message: decodeMessage(err), Cause: err}
	}
	if err := decoded.Validate(); err != nil {
		return "", &oaserrors.ConfigError{Option: "config", Value: path, Message: "invalid setting", Cause: err}
	}
	*s = decoded
	return path, nil
}

// decodeMessage describes a TOML decoding failure with its position.
func decodeMessage(err error) string {
	var strict *toml.StrictMissingError
	if errors.As(err, &strict) && len(strict.Errors) > 0 {
		row, col := strict.Errors[0].Position()
		return fmt.Sprintf("unknown key %q at line %d, column %d", joinKey(strict.Errors[0].Key()), row, col)
	}
	var decErr *toml.DecodeError
	if errors.As(err, &decErr) {
		row, col := decErr.Position()
		return fmt.Sprintf("invalid TOML at line %d, column %d", row, col)
	}
	return "invalid TOML"
}

func joinKey(key []string) string {
	var b bytes.Buffer
	for i, k := range key {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(k)
	}
	return b.String()
}

// Validate checks the diagram type and image formats.
func (s Settings) Validate() error {
	if _, err := diagram.ParseType(s.Type); err != nil {
		return err
	}
	for _, f := range s.ImageFormats {
		if _, err := render.ParseFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ApplyEnv overlays s with the OAS2PUML_* variables returned by getenv.
// Invalid values log a warning and are ignored.
func (s *Settings) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvType); v != "" {
		if t, err := diagram.ParseType(v); err != nil {
			slog.Warn("invalid diagram type env var, ignoring", "key", EnvType, "value", v) //nolint:gosec // G706: values are structured log fields, not format strings
		} else {
			s.Type = string(t)
		}
	}
	s.Cardinality = envBool(getenv, EnvCardinality, s.Cardinality)
	s.SVG = envBool(getenv, EnvSVG, s.SVG)
	if v := getenv(EnvPlantUMLServer); v != "" {
		s.PlantUMLServer = v
	}
}

func envBool(getenv func(string) string, key string, fallback bool) bool {
	v := getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return b
}

// DiagramType returns Type as a diagram.Type. Settings that passed Validate
// always convert.
func (s Settings) DiagramType() diagram.Type {
	t, err := diagram.ParseType(s.Type)
	if err != nil {
		return diagram.TypeFull
	}
	return t
}

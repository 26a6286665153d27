package roadnet

import (
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config is a conversion configuration as it is stored in TOML file
type Config struct {
	Input  InputConfig  `toml:"input"`
	Output OutputConfig `toml:"output"`
	Build  BuildConfig  `toml:"build"`
	TLS    TLSConfig    `toml:"tls"`
}

// InputConfig describes source OSM data
type InputConfig struct {
	File       string   `toml:"file"`
	Highways   []string `toml:"highways"`
	AgentTypes []string `toml:"agent_types"`
}

// OutputConfig holds destination files. Empty file name disables corresponding output
type OutputConfig struct {
	Net     string `toml:"net"`
	GeoJSON string `toml:"geojson"`
	CSV     string `toml:"csv"`
}

// BuildConfig tunes network building and serialization
type BuildConfig struct {
	NoInternalLinks bool    `toml:"no_internal_links"`
	NoNames         bool    `toml:"no_names"`
	NoTurnarounds   bool    `toml:"no_turnarounds"`
	LaneWidth       float64 `toml:"lane_width"`
}

// TLSConfig holds phase durations (seconds) of generated traffic light programs
type TLSConfig struct {
	GreenDuration  int `toml:"green_duration"`
	YellowDuration int `toml:"yellow_duration"`
}

// DefaultConfig returns configuration used when nothing has been provided
func DefaultConfig() Config {
	return Config{
		Input: InputConfig{
			AgentTypes: []string{AGENT_AUTO.String()},
		},
		Build: BuildConfig{
			LaneWidth: defaultLaneWidth,
		},
		TLS: TLSConfig{
			GreenDuration:  defaultGreenDuration,
			YellowDuration: defaultYellowDuration,
		},
	}
}

// LoadConfig reads TOML file on top of default configuration
func LoadConfig(fname string) (Config, error) {
	cfg := DefaultConfig()
	if fname == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(fname, &cfg); err != nil {
		return cfg, errors.Wrap(err, "Can't decode TOML config")
	}
	return cfg, nil
}

// ImporterOptions converts configuration into importer options
func (cfg *Config) ImporterOptions() ([]func(*Importer), error) {
	agents, err := ParseAgentTypes(cfg.Input.AgentTypes)
	if err != nil {
		return nil, errors.Wrap(err, "Can't parse agent types")
	}
	return []func(*Importer){
		WithHighways(cfg.Input.Highways),
		WithAgentTypes(agents),
		WithLaneWidth(cfg.Build.LaneWidth),
	}, nil
}

// WriterOptions converts configuration into writer options
func (cfg *Config) WriterOptions() []func(*Writer) {
	return []func(*Writer){
		WithNoInternalLinks(cfg.Build.NoInternalLinks),
		WithNoNames(cfg.Build.NoNames),
	}
}

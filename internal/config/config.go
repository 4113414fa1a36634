package config

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Map    MapConfig    `mapstructure:"map" yaml:"map"`
	Search SearchConfig `mapstructure:"search" yaml:"search"`
	Server ServerConfig `mapstructure:"server" yaml:"server"`
	Output OutputConfig `mapstructure:"output" yaml:"output"`
}

// MapConfig selects the map source. File takes precedence over OSM, and both
// over a generated map.
type MapConfig struct {
	Rows       int     `mapstructure:"rows" yaml:"rows"`
	Cols       int     `mapstructure:"cols" yaml:"cols"`
	EmptyRatio float64 `mapstructure:"emptyRatio" yaml:"emptyRatio"`
	Seed       int64   `mapstructure:"seed" yaml:"seed"` // 0 picks a time based seed
	File       string  `mapstructure:"file" yaml:"file,omitempty"`
	OSM        string  `mapstructure:"osm" yaml:"osm,omitempty"`
}

type SearchConfig struct {
	CostFactor float64 `mapstructure:"costFactor" yaml:"costFactor"`
	DebugLevel int     `mapstructure:"debugLevel" yaml:"debugLevel"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

type OutputConfig struct {
	MapImage    string `mapstructure:"mapImage" yaml:"mapImage"`
	ResultImage string `mapstructure:"resultImage" yaml:"resultImage"`
	GeoJSON     string `mapstructure:"geojson" yaml:"geojson"`
}

func newViper() *viper.Viper {
	vp := viper.New()
	vp.SetDefault("map.rows", 270)
	vp.SetDefault("map.cols", 480)
	vp.SetDefault("map.emptyRatio", 0.54321)
	vp.SetDefault("map.seed", 0)
	vp.SetDefault("map.file", "")
	vp.SetDefault("map.osm", "")
	vp.SetDefault("search.costFactor", 1.0)
	vp.SetDefault("search.debugLevel", 0)
	vp.SetDefault("server.addr", ":8080")
	vp.SetDefault("output.mapImage", "astar_map.generated.bmp")
	vp.SetDefault("output.resultImage", "astar_result.generated.bmp")
	vp.SetDefault("output.geojson", "astar_result.geojson")

	// e.g. ASTAR_MAP_ROWS overrides map.rows
	vp.SetEnvPrefix("astar")
	vp.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vp.AutomaticEnv()
	return vp
}

// Default returns the built-in configuration, with environment overrides applied.
func Default() (*Config, error) {
	return unmarshal(newViper())
}

// FromYaml reads the configuration file at path on top of the defaults. An
// empty path yields the defaults.
func FromYaml(path string) (*Config, error) {
	vp := newViper()
	if path != "" {
		vp.SetConfigFile(path)
		vp.SetConfigType("yaml")
		if err := vp.ReadInConfig(); err != nil {
			return nil, err
		}
	}
	return unmarshal(vp)
}

func unmarshal(vp *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := vp.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) Validate() error {
	if cfg.Map.File == "" && (cfg.Map.Rows <= 0 || cfg.Map.Cols <= 0) {
		return fmt.Errorf("%w: map size %v x %v", ErrInvalidConfig, cfg.Map.Rows, cfg.Map.Cols)
	}
	if cfg.Map.EmptyRatio < 0 || cfg.Map.EmptyRatio > 1 {
		return fmt.Errorf("%w: empty ratio %v", ErrInvalidConfig, cfg.Map.EmptyRatio)
	}
	if !(cfg.Search.CostFactor > 0 && cfg.Search.CostFactor < 10) {
		return fmt.Errorf("%w: cost factor %v", ErrInvalidConfig, cfg.Search.CostFactor)
	}
	return nil
}

// WriteYaml writes the effective configuration.
func (cfg *Config) WriteYaml(w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(cfg); err != nil {
		return err
	}
	return encoder.Close()
}

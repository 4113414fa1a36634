package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/natevvv/grid-astar/internal/config"
	"github.com/natevvv/grid-astar/internal/pbf"
	"github.com/natevvv/grid-astar/pkg/grid"
	"github.com/natevvv/grid-astar/pkg/mapgen"
	"github.com/spf13/cobra"
)

var configFile string

func main() {
	rootCmd := &cobra.Command{
		Use:           "astar",
		Short:         "Grid A* path finding",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "YAML config file")
	rootCmd.AddCommand(newRunCommand(), newServeCommand(), newConfigCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func loadConfig() (*config.Config, error) {
	return config.FromYaml(configFile)
}

// newGenerator returns the generator of cfg and the seed it uses.
func newGenerator(cfg *config.Config) (*mapgen.Generator, int64) {
	seed := cfg.Map.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return mapgen.NewSeededGenerator(seed), seed
}

// loadGrid reads the configured map file or OSM extract, or generates a random map.
func loadGrid(ctx context.Context, cfg *config.Config, gen *mapgen.Generator) (*grid.Grid, error) {
	switch {
	case cfg.Map.File != "":
		return grid.NewGridFromFile(cfg.Map.File)
	case cfg.Map.OSM != "":
		importer := pbf.NewObstacleImporter(cfg.Map.OSM)
		if err := importer.Import(ctx); err != nil {
			return nil, fmt.Errorf("import %v: %w", cfg.Map.OSM, err)
		}
		fmt.Printf("Imported %v obstacles from %v\n", len(importer.Obstacles()), cfg.Map.OSM)
		return pbf.BuildGrid(importer, cfg.Map.Rows, cfg.Map.Cols)
	}
	return gen.Generate(cfg.Map.Rows, cfg.Map.Cols, cfg.Map.EmptyRatio)
}

func newConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return cfg.WriteYaml(os.Stdout)
		},
	}
}

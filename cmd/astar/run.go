package main

import (
	"fmt"
	"os"
	"time"

	"github.com/natevvv/grid-astar/internal/config"
	"github.com/natevvv/grid-astar/internal/pbf"
	geo "github.com/natevvv/grid-astar/pkg/geometry"
	"github.com/natevvv/grid-astar/pkg/grid"
	"github.com/natevvv/grid-astar/pkg/mapgen"
	"github.com/natevvv/grid-astar/pkg/path"
	"github.com/natevvv/grid-astar/pkg/render"
	"github.com/spf13/cobra"
)

type runOptions struct {
	start           []int
	goal            []int
	print           bool
	exportObstacles string
}

func newRunCommand() *cobra.Command {
	opts := runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Resolve one search and write the map, result image and GeoJSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("rows") {
				cfg.Map.Rows, _ = flags.GetInt("rows")
			}
			if flags.Changed("cols") {
				cfg.Map.Cols, _ = flags.GetInt("cols")
			}
			if flags.Changed("seed") {
				cfg.Map.Seed, _ = flags.GetInt64("seed")
			}
			if flags.Changed("map") {
				cfg.Map.File, _ = flags.GetString("map")
			}
			if flags.Changed("osm") {
				cfg.Map.OSM, _ = flags.GetString("osm")
			}
			if flags.Changed("cost-factor") {
				cfg.Search.CostFactor, _ = flags.GetFloat64("cost-factor")
			}
			if flags.Changed("debug") {
				cfg.Search.DebugLevel, _ = flags.GetInt("debug")
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cmd, cfg, opts)
		},
	}
	flags := cmd.Flags()
	flags.Int("rows", 0, "map rows")
	flags.Int("cols", 0, "map columns")
	flags.Int64("seed", 0, "random seed, 0 for a time based one")
	flags.String("map", "", "map file in grid text format")
	flags.String("osm", "", "OSM extract (.osm or .osm.pbf) to rasterise")
	flags.Float64("cost-factor", path.DefaultCostFactor, "heuristic weight in (0, 10)")
	flags.Int("debug", 0, "debug level")
	flags.IntSliceVar(&opts.start, "start", nil, "start cell as row,col (random if unset)")
	flags.IntSliceVar(&opts.goal, "goal", nil, "goal cell as row,col (random if unset)")
	flags.BoolVar(&opts.print, "print", false, "print the result to the console")
	flags.StringVar(&opts.exportObstacles, "export-obstacles", "", "write the imported OSM obstacles as GeoJSON")
	return cmd
}

func run(cmd *cobra.Command, cfg *config.Config, opts runOptions) error {
	gen, seed := newGenerator(cfg)
	fmt.Printf("seed: %v\n", seed)

	g, err := loadGrid(cmd.Context(), cfg, gen)
	if err != nil {
		return err
	}
	if opts.exportObstacles != "" && cfg.Map.OSM != "" {
		importer := pbf.NewObstacleImporter(cfg.Map.OSM)
		if err := importer.Import(cmd.Context()); err != nil {
			return err
		}
		if err := pbf.ExportObstacles(importer, opts.exportObstacles); err != nil {
			return err
		}
	}
	if err := render.DrawTiles(g).Save(cfg.Output.MapImage); err != nil {
		return err
	}

	start, err := pickPoint(g, gen, opts.start, geo.MakePoint(-1, -1))
	if err != nil {
		return fmt.Errorf("start: %w", err)
	}
	fmt.Printf("start point is %v\n", start)
	goal, err := pickPoint(g, gen, opts.goal, start)
	if err != nil {
		return fmt.Errorf("goal: %w", err)
	}
	fmt.Printf("end point is %v\n", goal)

	timeBeforeInit := time.Now()
	search, err := path.NewAStar(g, start, goal)
	if err != nil {
		return err
	}
	if err := search.SetCostFactor(cfg.Search.CostFactor); err != nil {
		return err
	}
	search.SetDebugLevel(cfg.Search.DebugLevel)
	fmt.Printf("[TIME-Init] = %s\n", time.Since(timeBeforeInit))

	timeBeforeResolve := time.Now()
	search.Resolve()
	elapsed := time.Since(timeBeforeResolve)

	if opts.print {
		render.PrintSearch(os.Stdout, search)
	}

	estimateCost := geo.Octile(start, goal)
	fmt.Printf("iterations: %v, path length: %v, state: %v\n", search.Iterations(), search.PathLength(), search.State())
	fmt.Printf("pq pops: %v, pq updates: %v, relaxation attempts: %v\n", search.GetPqPops(), search.GetPqUpdates(), search.GetRelaxationAttempts())
	fmt.Printf("estimate cost: %.1f\n", estimateCost)
	if search.State() == path.Succeeded {
		extraCost := 0.0
		if estimateCost > 0 {
			extraCost = (search.PathCost()/estimateCost - 1) * 100
		}
		fmt.Printf("actual cost: %.1f, extra cost: %.1f%%\n", search.PathCost(), extraCost)
	}
	fmt.Printf("[TIME-Resolve] = %s\n", elapsed)
	fmt.Printf("map: %v x %v = %v blocks\n", g.Rows(), g.Cols(), g.Size())

	if err := render.DrawSearch(search).Save(cfg.Output.ResultImage); err != nil {
		return err
	}
	return render.WriteGeoJSON(render.SearchFeatures(search), cfg.Output.GeoJSON)
}

// pickPoint uses the given row,col pair or draws a random passable cell.
func pickPoint(g *grid.Grid, gen *mapgen.Generator, coordinates []int, except geo.Point) (geo.Point, error) {
	if coordinates == nil {
		return gen.EmptyPoint(g, except)
	}
	if len(coordinates) != 2 {
		return geo.Point{}, fmt.Errorf("expected row,col, got %v", coordinates)
	}
	return geo.MakePoint(coordinates[0], coordinates[1]), nil
}

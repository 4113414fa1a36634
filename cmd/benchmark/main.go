package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"
	"syscall"
	"time"

	geo "github.com/natevvv/grid-astar/pkg/geometry"
	"github.com/natevvv/grid-astar/pkg/grid"
	"github.com/natevvv/grid-astar/pkg/mapgen"
	p "github.com/natevvv/grid-astar/pkg/path"
	"github.com/natevvv/grid-astar/pkg/slice"
)

const epsilon = 1e-9

// target: origin, destination, reference length, #hops (cells from origin to destination)
type target struct {
	origin      geo.Point
	destination geo.Point
	length      float64
	hops        int
}

func main() {
	useRandomTargets := flag.Bool("random", false, "Create (new) random targets")
	amountTargets := flag.Int("n", 100, "How many new targets should get created")
	storeTargets := flag.Bool("store", false, "Store targets (when newly generated)")
	targetFile := flag.String("targets", "targets.txt", "Target file to read or store")
	algorithm := flag.String("search", "astar", "Select the search algorithm (astar, reference)")
	costFactor := flag.Float64("cost-factor", p.DefaultCostFactor, "A* heuristic weight")
	cpuProfile := flag.String("cpu", "", "write cpu profile to file")
	mapFile := flag.String("map", "", "Map file in grid text format (generated if empty)")
	rows := flag.Int("rows", 270, "Rows of a generated map")
	cols := flag.Int("cols", 480, "Columns of a generated map")
	emptyRatio := flag.Float64("ratio", mapgen.DefaultEmptyRatio, "Passable ratio of a generated map")
	seed := flag.Int64("seed", 1, "Seed of the generated map and targets, 0 for a time based one")
	flag.Parse()

	generator := mapgen.NewSeededGenerator(*seed)

	start := time.Now()
	var g *grid.Grid
	var err error
	if *mapFile != "" {
		g, err = grid.NewGridFromFile(*mapFile)
	} else {
		g, err = generator.Generate(*rows, *cols, *emptyRatio)
	}
	if err != nil {
		log.Fatal(err)
	}
	elapsed := time.Since(start)
	fmt.Printf("[TIME-Import] = %s\n", elapsed)

	navigator := getNavigator(*algorithm, g, *costFactor)
	if navigator == nil {
		log.Fatal("Navigator not supported")
	}
	referenceDijkstra := p.NewDijkstra(g)

	var targets []target
	if *useRandomTargets {
		targets = createTargets(*amountTargets, generator, referenceDijkstra)
		if *storeTargets {
			writeTargets(targets, *targetFile)
		}
	} else {
		targets = readTargets(*targetFile)
		if *amountTargets < len(targets) {
			targets = targets[0:*amountTargets]
		}
	}

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}
	benchmark(navigator, targets)
}

func getNavigator(algorithm string, g *grid.Grid, costFactor float64) p.Navigator {
	if slice.Contains([]string{"default", "astar"}, algorithm) {
		astar := p.NewAStarNavigator(g)
		if err := astar.SetCostFactor(costFactor); err != nil {
			log.Fatal(err)
		}
		return astar
	} else if algorithm == "reference" {
		return p.NewDijkstra(g)
	}
	return nil
}

func readTargets(filename string) []target {
	file, err := os.Open(filename)
	if err != nil {
		log.Fatal(err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Split(bufio.ScanLines)

	targets := make([]target, 0)

	for scanner.Scan() {
		line := scanner.Text()
		if len(line) < 1 {
			// skip empty lines
			continue
		} else if line[0] == '#' {
			// skip comments
			continue
		}
		var t target
		if _, err := fmt.Sscanf(line, "%d %d %d %d %g %d", &t.origin.Row, &t.origin.Col, &t.destination.Row, &t.destination.Col, &t.length, &t.hops); err != nil {
			log.Fatalf("invalid target %q: %v", line, err)
		}
		targets = append(targets, t)
	}
	return targets
}

func createTargets(n int, generator *mapgen.Generator, referenceNavigator *p.Dijkstra) []target {
	pairs, err := generator.Targets(referenceNavigator.GetGrid(), n)
	if err != nil {
		log.Fatal(err)
	}
	// reference algorithm to compute path
	targets := make([]target, n)
	for i, pair := range pairs {
		length, err := referenceNavigator.ComputeShortestPath(pair.Origin, pair.Destination)
		if err != nil {
			log.Fatal(err)
		}
		hops := len(referenceNavigator.GetPath(pair.Origin, pair.Destination))
		targets[i] = target{origin: pair.Origin, destination: pair.Destination, length: length, hops: hops}
	}
	return targets
}

func writeTargets(targets []target, targetFile string) {
	var sb strings.Builder
	sb.WriteString("# origin row, origin col, destination row, destination col, length, hops\n")
	for _, t := range targets {
		sb.WriteString(fmt.Sprintf("%v %v %v %v %v %v\n", t.origin.Row, t.origin.Col, t.destination.Row, t.destination.Col, t.length, t.hops))
	}

	file, cErr := os.Create(targetFile)

	if cErr != nil {
		log.Fatal(cErr)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	writer.WriteString(sb.String())
	writer.Flush()
}

// Run benchmarks on the provided map and targets
func benchmark(navigator p.Navigator, targets []target) {
	var runtime time.Duration = 0
	var runtimeWithPathExtraction time.Duration = 0
	completed := 0

	pqPops := 0
	pqUpdates := 0
	relaxationAttempts := 0

	// A* may return a longer path than the reference, never a shorter one
	invalidLengths := make([]int, 0)
	extraLengths := make([]int, 0)
	extraCost := 0.0
	invalidResults := make([]int, 0)

	showResults := func() {
		if completed == 0 {
			fmt.Println("No target completed")
			return
		}
		fmt.Printf("Average runtime: %.3fms, %.3fms\n", float64(int(runtime.Nanoseconds())/completed)/1000000, float64(int(runtimeWithPathExtraction.Nanoseconds())/completed)/1000000)
		fmt.Printf("Average pq pops: %d\n", pqPops/completed)
		fmt.Printf("Average pq updates: %d\n", pqUpdates/completed)
		fmt.Printf("Average relaxations attempts: %d\n", relaxationAttempts/completed)

		fmt.Printf("%v/%v invalid Result (source/target).\n", len(invalidResults), completed)
		for i, result := range invalidResults {
			fmt.Printf("%v: Case %v (%v -> %v) has invalid result\n", i, result, targets[result].origin, targets[result].destination)
		}

		fmt.Printf("%v/%v invalid path lengths.\n", len(invalidLengths), completed)
		for i, testcase := range invalidLengths {
			fmt.Printf("%v: Case %v (%v -> %v) has invalid length. Reference: %v\n", i, testcase, targets[testcase].origin, targets[testcase].destination, targets[testcase].length)
		}

		fmt.Printf("%v/%v paths longer than the reference, total extra cost: %.3f\n", len(extraLengths), completed, extraCost)
	}

	// catch interrupt to still show already calculated results
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		showResults()
		os.Exit(0)
	}()

	for i, target := range targets {
		origin := target.origin
		destination := target.destination
		referenceLength := target.length

		start := time.Now()
		length, err := navigator.ComputeShortestPath(origin, destination)
		elapsed := time.Since(start)
		if err != nil {
			log.Fatalf("Case %v: %v", i, err)
		}

		pqPops += navigator.GetPqPops()
		pqUpdates += navigator.GetPqUpdates()
		relaxationAttempts += navigator.GetRelaxationAttempts()

		path := navigator.GetPath(origin, destination)
		elapsedPath := time.Since(start)

		fmt.Printf("[%3v TIME-Navigate, TIME-Path, PQ Pops, PQ Updates, relax attempts] = %12s, %12s, %7d, %7d, %7d\n", i, elapsed, elapsedPath, navigator.GetPqPops(), navigator.GetPqUpdates(), navigator.GetRelaxationAttempts())

		if (length < 0) != (referenceLength < 0) || length < referenceLength-epsilon {
			invalidLengths = append(invalidLengths, i)
		} else if length > referenceLength+epsilon {
			extraLengths = append(extraLengths, i)
			extraCost += length - referenceLength
		}
		if length > -1 && (path[0] != origin || path[len(path)-1] != destination) {
			invalidResults = append(invalidResults, i)
		}
		if math.IsNaN(length) {
			invalidResults = append(invalidResults, i)
		}

		runtime += elapsed
		runtimeWithPathExtraction += elapsedPath
		completed++
	}
	// normal termination, show results
	showResults()
}

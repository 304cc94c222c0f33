// Command rcpspvis shows a solved schedule: Gantt rows per activity,
// a utilisation profile per resource, and a playback timeline.
package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"os"

	"gioui.org/app"
	"gioui.org/unit"

	"github.com/UncleMehdi/RCPSPGpu/internal/algo"
	"github.com/UncleMehdi/RCPSPGpu/internal/config"
	"github.com/UncleMehdi/RCPSPGpu/internal/parse"
	"github.com/UncleMehdi/RCPSPGpu/internal/tabu"
	"github.com/UncleMehdi/RCPSPGpu/internal/vis"
)

func main() {
	instancePath := flag.String("instance", "", "Instance JSON file to solve and display")
	seed := flag.Int64("seed", 1, "Random seed")
	flag.Parse()

	if *instancePath == "" {
		log.Fatal("rcpspvis: -instance is required")
	}
	inst, _, err := parse.Load(*instancePath)
	if err != nil {
		log.Fatal(err)
	}

	solver, err := algo.NewSolver(inst, config.Default(), tabu.New(), rand.New(rand.NewSource(*seed)))
	if err != nil {
		log.Fatal(err)
	}
	sol, err := solver.Solve(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	go func() {
		window := new(app.Window)
		window.Option(
			app.Title("RCPSP Schedule Viewer"),
			app.Size(unit.Dp(1200), unit.Dp(800)),
		)
		application := vis.NewApp(inst, sol)
		if err := application.Run(window); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}

package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lao-tseu-is-alive/go-flocking-simulation/internal/app"
	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/flock"
)

var (
	configFile = flag.String("config", "", "Path to a JSON parameter file (built-in defaults when empty).")
	schemaFile = flag.String("schema", "configs/config.schema.json", "Path to the JSON schema validating the parameter file.")
)

func main() {
	flag.Parse()

	params := flock.DefaultParameters()
	if *configFile != "" {
		var err error
		params, err = flock.LoadParameters(*configFile, *schemaFile)
		if err != nil {
			log.Fatalf("could not load parameters: %v", err)
		}
	}

	ebiten.SetWindowSize(app.WorldWidth, app.WorldHeight)
	ebiten.SetWindowTitle("Flocking: Boids With a Predator Cursor")

	game := app.GetNewGame(params)
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

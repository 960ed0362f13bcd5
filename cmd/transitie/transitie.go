package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/LimuleSempai/Web-technology-project-TeamF/pkg/api"
	"github.com/LimuleSempai/Web-technology-project-TeamF/pkg/tracker"

	_ "time/tzdata"
)

func main() {
	if os.Getenv("TRANSITIE_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	if os.Getenv("TRANSITIE_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	app := &cli.App{
		Name:        "transitie",
		Description: "Transit feed ingestion and transport API for transit-ie",

		Commands: []*cli.Command{
			api.RegisterCLI(),
			tracker.RegisterCLI(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}

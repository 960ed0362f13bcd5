package tracker

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/LimuleSempai/Web-technology-project-TeamF/pkg/config"
	"github.com/LimuleSempai/Web-technology-project-TeamF/pkg/database"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "tracker",
		Usage: "Track realtime trip updates from the transit feed",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "periodically refresh the trip cache",
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:  "interval",
						Value: 0,
						Usage: "refresh interval (defaults to the configured value)",
					},
				},
				Action: func(c *cli.Context) error {
					cfg, tracker, err := setup()
					if err != nil {
						return err
					}

					interval := c.Duration("interval")
					if interval == 0 {
						interval = cfg.RefreshInterval()
					}

					runLoop(tracker, interval)

					return nil
				},
			},
			{
				Name:  "refresh",
				Usage: "perform a single fetch, normalise and cache replace",
				Action: func(c *cli.Context) error {
					_, tracker, err := setup()
					if err != nil {
						return err
					}

					if err := tracker.Refresh(context.Background()); err != nil {
						return err
					}

					log.Info().Msg("Refresh complete")

					return nil
				},
			},
		},
	}
}

func setup() (*config.Config, *Tracker, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	if err := database.Connect(); err != nil {
		return nil, nil, err
	}

	tracker, err := NewFromConfig(context.Background(), cfg)
	if err != nil {
		return nil, nil, err
	}

	return cfg, tracker, nil
}

// runLoop refreshes on a fixed cadence, backing off exponentially while the
// provider is failing and returning to the normal interval once a refresh
// succeeds.
func runLoop(tracker *Tracker, interval time.Duration) {
	log.Info().Dur("interval", interval).Msg("Starting refresh loop")

	failureBackoff := backoff.NewExponentialBackOff()
	failureBackoff.MaxElapsedTime = 0

	for {
		startTime := time.Now()

		err := tracker.Refresh(context.Background())

		waitTime := interval - time.Since(startTime)
		if err != nil {
			log.Error().Err(err).Msg("Refresh failed")
			waitTime = failureBackoff.NextBackOff()
		} else {
			failureBackoff.Reset()
		}

		if waitTime > 0 {
			time.Sleep(waitTime)
		}
	}
}

package api

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/LimuleSempai/Web-technology-project-TeamF/pkg/config"
	"github.com/LimuleSempai/Web-technology-project-TeamF/pkg/database"
	"github.com/LimuleSempai/Web-technology-project-TeamF/pkg/redis_client"
	"github.com/LimuleSempai/Web-technology-project-TeamF/pkg/tracker"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the transport web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: "",
						Usage: "listen target for the web server (defaults to the configured value)",
					},
				},
				Action: func(c *cli.Context) error {
					cfg, err := config.Load()
					if err != nil {
						return err
					}

					if err := database.Connect(); err != nil {
						return err
					}
					if err := redis_client.Connect(); err != nil {
						return err
					}

					transitTracker, err := tracker.NewFromConfig(context.Background(), cfg)
					if err != nil {
						return err
					}

					listen := c.String("listen")
					if listen == "" {
						listen = cfg.Listen
					}

					return SetupServer(listen, transitTracker)
				},
			},
		},
	}
}

package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/LimuleSempai/Web-technology-project-TeamF/pkg/api/routes"
	"github.com/LimuleSempai/Web-technology-project-TeamF/pkg/tracker"
)

func SetupServer(listen string, transitTracker *tracker.Tracker) error {
	webApp := fiber.New()
	webApp.Use(NewLogger())

	routes.TransportRouter(webApp.Group("/transport"), transitTracker)

	core := webApp.Group("/core")
	core.Get("version", routes.APIVersion)

	return webApp.Listen(listen)
}

package routes

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/rs/zerolog/log"

	"github.com/LimuleSempai/Web-technology-project-TeamF/pkg/redis_client"
	"github.com/LimuleSempai/Web-technology-project-TeamF/pkg/tracker"
	"github.com/LimuleSempai/Web-technology-project-TeamF/pkg/transit"
	"github.com/LimuleSempai/Web-technology-project-TeamF/pkg/tripstore"
)

const stopNamesCacheKey = "transitie/stop_names"
const stopNamesCacheTTL = 90 * time.Minute

func TransportRouter(router fiber.Router, transitTracker *tracker.Tracker) {
	redisStore := redisstore.NewRedis(redis_client.Client, store.WithExpiration(stopNamesCacheTTL))
	stopNamesCache := cache.New[string](redisStore)

	router.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Transport API is running...")
	})

	router.Get("/update-transport", func(c *fiber.Ctx) error {
		return updateTransport(c, transitTracker)
	})

	router.Get("/transports", func(c *fiber.Ctx) error {
		return listTransports(c, transitTracker)
	})

	router.Get("/transports/route/:routeId", func(c *fiber.Ctx) error {
		return getTransportsByRoute(c, transitTracker)
	})

	router.Get("/transports/trip/:tripId", func(c *fiber.Ctx) error {
		return getTransportsByTrip(c, transitTracker)
	})

	router.Get("/transport/:id", func(c *fiber.Ctx) error {
		return getTransport(c, transitTracker)
	})

	router.Get("/stops", func(c *fiber.Ctx) error {
		return listStopNames(c, transitTracker, stopNamesCache)
	})
}

func updateTransport(c *fiber.Ctx, transitTracker *tracker.Tracker) error {
	if err := transitTracker.Refresh(c.Context()); err != nil {
		c.SendStatus(statusForError(err))
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Transport data updated successfully",
	})
}

func listTransports(c *fiber.Ctx, transitTracker *tracker.Tracker) error {
	filter := tripstore.Filter{
		FreeText: c.Query("search"),
		RouteID:  c.Query("route"),
		StopName: c.Query("stop"),
	}

	if typeQuery := c.Query("type"); typeQuery != "" {
		routeType, err := strconv.Atoi(typeQuery)
		if err != nil {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": "type must be an integer route type",
			})
		}
		filter.RouteType = &routeType
	}

	records, err := transitTracker.QueryTrips(c.Context(), filter)
	if err != nil {
		c.SendStatus(statusForError(err))
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return sendRecords(c, records)
}

func getTransportsByRoute(c *fiber.Ctx, transitTracker *tracker.Tracker) error {
	records, err := transitTracker.TripsByRouteID(c.Context(), c.Params("routeId"))
	if err != nil {
		c.SendStatus(statusForError(err))
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if len(records) == 0 {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Could not find Transports matching Route",
		})
	}

	return sendRecords(c, records)
}

func getTransportsByTrip(c *fiber.Ctx, transitTracker *tracker.Tracker) error {
	records, err := transitTracker.TripsByTripID(c.Context(), c.Params("tripId"))
	if err != nil {
		c.SendStatus(statusForError(err))
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if len(records) == 0 {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Could not find Transports matching Trip",
		})
	}

	return sendRecords(c, records)
}

func getTransport(c *fiber.Ctx, transitTracker *tracker.Tracker) error {
	record, err := transitTracker.TripByID(c.Context(), c.Params("id"))
	if err != nil {
		c.SendStatus(statusForError(err))
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if record == nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Transport not found",
		})
	}

	return c.JSON(record)
}

func listStopNames(c *fiber.Ctx, transitTracker *tracker.Tracker, stopNamesCache *cache.Cache[string]) error {
	if cached, err := stopNamesCache.Get(context.Background(), stopNamesCacheKey); err == nil && cached != "" {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(cached)
	}

	stopNames := transitTracker.ListStopNames()

	encoded, err := json.Marshal(stopNames)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Could not encode stop names",
		})
	}

	if err := stopNamesCache.Set(context.Background(), stopNamesCacheKey, string(encoded)); err != nil {
		log.Error().Err(err).Msg("Failed to cache stop names")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(encoded)
}

// sendRecords reduces the records with sheriff groups: the default response
// carries everything, ?detail=basic trims to the summary fields.
func sendRecords(c *fiber.Ctx, records []transit.TripRecord) error {
	groups := []string{"basic", "detailed"}
	if c.Query("detail") == "basic" {
		groups = []string{"basic"}
	}

	reduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: groups,
	}, records)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Could not reduce transport records",
		})
	}

	return c.JSON(reduced)
}

// statusForError maps the pipeline error taxonomy onto HTTP statuses:
// provider failures are bad-gateway, everything else an internal error.
func statusForError(err error) int {
	var feedErr *transit.FeedFetchError
	var acquisitionErr *transit.DataAcquisitionError

	if errors.As(err, &feedErr) || errors.As(err, &acquisitionErr) {
		return fiber.StatusBadGateway
	}

	return fiber.StatusInternalServerError
}

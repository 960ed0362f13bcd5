package staticref

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/LimuleSempai/Web-technology-project-TeamF/pkg/transit"
)

// parseTable parses the simple comma-delimited tables found in the static
// bundle into header-keyed row maps. GTFS stop and route names in this
// dataset never contain embedded commas, so no quoted-field or escape
// handling is done; rows shorter than the header default the missing
// trailing columns to "".
func parseTable(raw string) []map[string]string {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	if len(lines) == 0 {
		return nil
	}

	header := strings.Split(strings.TrimPrefix(lines[0], "\ufeff"), ",")
	for i, column := range header {
		header[i] = strings.TrimSpace(column)
	}

	var rows []map[string]string
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}

		values := strings.Split(line, ",")
		row := map[string]string{}
		for i, column := range header {
			if i < len(values) {
				row[column] = strings.TrimSpace(values[i])
			} else {
				row[column] = ""
			}
		}
		rows = append(rows, row)
	}

	return rows
}

// loadStops builds the stop lookup table, skipping rows missing either the
// id or the name.
func loadStops(rows []map[string]string) map[string]string {
	stops := map[string]string{}
	for _, row := range rows {
		stopID := row["stop_id"]
		stopName := row["stop_name"]
		if stopID == "" || stopName == "" {
			continue
		}

		stops[stopID] = stopName
	}

	return stops
}

// loadRoutes builds the route lookup table, skipping rows missing the id or
// without a parseable integer route_type.
func loadRoutes(rows []map[string]string) map[string]transit.RouteDetails {
	routes := map[string]transit.RouteDetails{}
	for _, row := range rows {
		routeID := row["route_id"]
		if routeID == "" {
			continue
		}

		routeType, err := strconv.Atoi(row["route_type"])
		if err != nil {
			log.Debug().Str("route", routeID).Str("route_type", row["route_type"]).Msg("Skipping route with unparseable type")
			continue
		}

		routes[routeID] = transit.RouteDetails{
			Type:      routeType,
			ShortName: row["route_short_name"],
			LongName:  row["route_long_name"],
		}
	}

	return routes
}

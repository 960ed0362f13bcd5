package staticref

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTable(t *testing.T) {
	t.Run("maps rows by header", func(t *testing.T) {
		rows := parseTable("stop_id,stop_name\nS1,Merrion Square\nS2,Heuston Station\n")

		assert.Len(t, rows, 2)
		assert.Equal(t, "S1", rows[0]["stop_id"])
		assert.Equal(t, "Merrion Square", rows[0]["stop_name"])
		assert.Equal(t, "Heuston Station", rows[1]["stop_name"])
	})

	t.Run("short rows default missing columns to empty", func(t *testing.T) {
		rows := parseTable("route_id,route_type,route_short_name,route_long_name\n45A,3\n")

		assert.Len(t, rows, 1)
		assert.Equal(t, "45A", rows[0]["route_id"])
		assert.Equal(t, "3", rows[0]["route_type"])
		assert.Equal(t, "", rows[0]["route_short_name"])
		assert.Equal(t, "", rows[0]["route_long_name"])
	})

	t.Run("handles CRLF line endings and a UTF-8 BOM", func(t *testing.T) {
		rows := parseTable("\ufeffstop_id,stop_name\r\nS1,Merrion Square\r\n")

		assert.Len(t, rows, 1)
		assert.Equal(t, "Merrion Square", rows[0]["stop_name"])
	})

	t.Run("skips blank lines", func(t *testing.T) {
		rows := parseTable("stop_id,stop_name\n\nS1,Merrion Square\n\n")

		assert.Len(t, rows, 1)
	})
}

func TestLoadStops(t *testing.T) {
	stops := loadStops([]map[string]string{
		{"stop_id": "S1", "stop_name": "Merrion Square"},
		{"stop_id": "", "stop_name": "No ID"},
		{"stop_id": "S3", "stop_name": ""},
	})

	assert.Len(t, stops, 1)
	assert.Equal(t, "Merrion Square", stops["S1"])
}

func TestLoadRoutes(t *testing.T) {
	routes := loadRoutes([]map[string]string{
		{"route_id": "45A", "route_type": "3", "route_short_name": "45A", "route_long_name": "Dublin - Bray"},
		{"route_id": "", "route_type": "3"},
		{"route_id": "BAD", "route_type": "bus"},
	})

	assert.Len(t, routes, 1)
	assert.Equal(t, 3, routes["45A"].Type)
	assert.Equal(t, "45A", routes["45A"].ShortName)
	assert.Equal(t, "Dublin - Bray", routes["45A"].LongName)
}

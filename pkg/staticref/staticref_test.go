package staticref

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LimuleSempai/Web-technology-project-TeamF/pkg/transit"
)

func writeTables(t *testing.T, dir string) {
	t.Helper()

	stops := "stop_id,stop_name\nS1,Merrion Square\nS2,Heuston Station\n"
	routes := "route_id,route_short_name,route_long_name,route_type\n45A,45A,Dublin - Bray,3\nLUAS-G,Green Line,Broombridge - Bride's Glen,0\n"

	require.NoError(t, os.WriteFile(filepath.Join(dir, "stops.txt"), []byte(stops), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "routes.txt"), []byte(routes), 0644))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeTables(t, dir)

	store, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 2, store.StopCount())
	assert.Equal(t, 2, store.RouteCount())
}

func TestLoadMissingFiles(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)

	var acquisitionErr *transit.DataAcquisitionError
	assert.ErrorAs(t, err, &acquisitionErr)
	assert.Equal(t, "verify", acquisitionErr.Stage)
}

func TestLookupStopName(t *testing.T) {
	store := NewStore(map[string]string{"S1": "Merrion Square"}, nil)

	assert.Equal(t, "Merrion Square", store.LookupStopName("S1"))
	assert.Equal(t, transit.UnknownStopName, store.LookupStopName("nope"))
}

func TestLookupRouteDetails(t *testing.T) {
	store := NewStore(nil, map[string]transit.RouteDetails{
		"45A": {Type: 3, ShortName: "45A", LongName: "Dublin - Bray"},
	})

	t.Run("known route", func(t *testing.T) {
		details := store.LookupRouteDetails("45A")
		assert.Equal(t, 3, details.Type)
		assert.Equal(t, "Dublin - Bray", details.LongName)
	})

	t.Run("unknown route falls back deterministically", func(t *testing.T) {
		details := store.LookupRouteDetails("99Z")
		assert.Equal(t, transit.DefaultRouteType, details.Type)
		assert.Equal(t, "99Z", details.ShortName)
		assert.Equal(t, "", details.LongName)
	})
}

func TestStopNames(t *testing.T) {
	store := NewStore(map[string]string{
		"S2": "Heuston Station",
		"S1": "Merrion Square",
	}, nil)

	assert.Equal(t, []string{"Heuston Station", "Merrion Square"}, store.StopNames())
}

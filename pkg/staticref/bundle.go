package staticref

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/LimuleSempai/Web-technology-project-TeamF/pkg/transit"
)

const downloadTimeout = 120 * time.Second

// EnsureStaticData guarantees that stops.txt and routes.txt exist in
// dataDir, downloading and extracting the static bundle from bundleURL if
// either is missing. Failures come back as *transit.DataAcquisitionError;
// they are fatal to the refresh that requested them, not to the process.
func EnsureStaticData(ctx context.Context, bundleURL string, dataDir string) error {
	if tablesPresent(dataDir) {
		return nil
	}

	log.Info().Str("url", bundleURL).Str("dir", dataDir).Msg("Static reference data missing, downloading bundle")

	tempFile, err := downloadBundle(ctx, bundleURL)
	if err != nil {
		return &transit.DataAcquisitionError{Stage: "download", Err: err}
	}
	defer os.Remove(tempFile)

	if err := extractBundle(tempFile, dataDir); err != nil {
		return &transit.DataAcquisitionError{Stage: "extract", Err: err}
	}

	if !tablesPresent(dataDir) {
		return &transit.DataAcquisitionError{
			Stage: "verify",
			Err:   errors.New("bundle did not contain stops.txt and routes.txt"),
		}
	}

	return nil
}

func tablesPresent(dataDir string) bool {
	for _, name := range []string{stopsFileName, routesFileName} {
		if _, err := os.Stat(filepath.Join(dataDir, name)); err != nil {
			return false
		}
	}

	return true
}

func downloadBundle(ctx context.Context, bundleURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, downloadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", bundleURL, nil)
	if err != nil {
		return "", err
	}

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("bundle server returned status %d", resp.StatusCode)
	}

	tmpFile, err := os.CreateTemp(os.TempDir(), "transitie-static-bundle-")
	if err != nil {
		return "", err
	}
	defer tmpFile.Close()

	if _, err := io.Copy(tmpFile, resp.Body); err != nil {
		os.Remove(tmpFile.Name())
		return "", err
	}

	return tmpFile.Name(), nil
}

// extractBundle pulls the reference tables we care about out of the zip
// archive. Other files in the bundle (trips, calendars, shapes) are
// ignored.
func extractBundle(archivePath string, dataDir string) error {
	archive, err := zip.OpenReader(archivePath)
	if err != nil {
		return err
	}
	defer archive.Close()

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return err
	}

	wanted := map[string]bool{
		stopsFileName:  true,
		routesFileName: true,
	}

	for _, zipFile := range archive.File {
		name := filepath.Base(zipFile.Name)
		if !wanted[name] {
			continue
		}

		if err := extractFile(zipFile, filepath.Join(dataDir, name)); err != nil {
			return err
		}

		log.Info().Str("file", name).Msg("Extracted reference table")
	}

	return nil
}

func extractFile(zipFile *zip.File, destination string) error {
	reader, err := zipFile.Open()
	if err != nil {
		return err
	}
	defer reader.Close()

	writer, err := os.Create(destination)
	if err != nil {
		return err
	}
	defer writer.Close()

	_, err = io.Copy(writer, reader)
	return err
}

package stations

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DefaultMDAPIBaseURL is the NOAA CO-OPS metadata API
const DefaultMDAPIBaseURL = "https://api.tidesandcurrents.noaa.gov/mdapi/prod/webapi"

// snapshotTypes maps MDAPI station types to the snapshot they populate
var snapshotTypes = []struct {
	stationType string
	file        string
}{
	{"physocean", PrimarySnapshot},
	{"tidepredictions", GeneralSnapshot},
}

var refreshMu sync.Mutex

// Refresher downloads station lists from the MDAPI into snapshot files
type Refresher struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewRefresher creates a refresher against baseURL (DefaultMDAPIBaseURL if empty)
func NewRefresher(baseURL string, logger *slog.Logger) *Refresher {
	if baseURL == "" {
		baseURL = DefaultMDAPIBaseURL
	}
	return &Refresher{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// stationResponse represents the NOAA MDAPI response for multiple stations
type stationResponse struct {
	Stations json.RawMessage `json:"stations"`
}

// Refresh replaces both snapshot files in dir. Each file is written to a
// temporary name and renamed into place, so a concurrent Load never reads a
// partial file. If any download fails no snapshot is replaced.
func (r *Refresher) Refresh(ctx context.Context, dir string) error {
	refreshMu.Lock()
	defer refreshMu.Unlock()

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}

	staged := make(map[string]string, len(snapshotTypes))
	defer func() {
		for _, tmp := range staged {
			os.Remove(tmp)
		}
	}()

	for _, st := range snapshotTypes {
		r.logger.Info("downloading station list", "type", st.stationType, "url", r.baseURL)
		raw, err := r.fetchStations(ctx, st.stationType)
		if err != nil {
			return fmt.Errorf("fetching %s stations: %w", st.stationType, err)
		}

		tmp, err := os.CreateTemp(dir, st.file+".*.tmp")
		if err != nil {
			return fmt.Errorf("creating temp snapshot: %w", err)
		}
		if _, err := tmp.Write(raw); err != nil {
			tmp.Close()
			return fmt.Errorf("writing temp snapshot: %w", err)
		}
		if err := tmp.Close(); err != nil {
			return fmt.Errorf("closing temp snapshot: %w", err)
		}
		staged[st.file] = tmp.Name()
	}

	for file, tmp := range staged {
		if err := os.Rename(tmp, filepath.Join(dir, file)); err != nil {
			return fmt.Errorf("replacing %s: %w", file, err)
		}
		delete(staged, file)
	}

	r.logger.Info("station snapshots refreshed", "dir", dir)
	return nil
}

// fetchStations returns the raw "stations" array for one MDAPI station type
func (r *Refresher) fetchStations(ctx context.Context, stationType string) ([]byte, error) {
	apiURL := fmt.Sprintf("%s/stations.json?type=%s", r.baseURL, stationType)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching stations: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("NOAA MDAPI returned status %d", resp.StatusCode)
	}

	var stationResp stationResponse
	if err := json.NewDecoder(resp.Body).Decode(&stationResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if len(stationResp.Stations) == 0 || string(stationResp.Stations) == "null" {
		return nil, fmt.Errorf("response has no stations array")
	}

	// Anything LoadDir would reject must not replace a good snapshot.
	if _, err := decodeSnapshot(stationResp.Stations); err != nil {
		return nil, err
	}

	return stationResp.Stations, nil
}

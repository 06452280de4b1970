package shell

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"weatherwise-shell/internal/models"
	"weatherwise-shell/shared/config"
	"weatherwise-shell/shared/monitoring"
)

// BackendRunning is the fixed confirmation the health check returns when the
// backend answers with a success status.
const BackendRunning = "Backend is running"

const (
	opPredict    = "prediction request"
	opHealth     = "health check"
	opActivities = "activity list"
)

// BackendClient handles all HTTP exchanges with the prediction backend. One
// client is shared by every command invocation; http.Client is safe for
// concurrent use.
type BackendClient struct {
	baseURL string
	monitor *monitoring.Monitor
	client  *http.Client
}

func NewBackendClient(cfg *config.BackendConfig, monitor *monitoring.Monitor) *BackendClient {
	return &BackendClient{
		baseURL: strings.TrimSuffix(cfg.URL, "/"),
		monitor: monitor,
		client: &http.Client{
			Timeout: cfg.Timeout(),
		},
	}
}

// apiResponseWire mirrors the backend's /predict body with pointer fields so
// a missing field fails the decode instead of being zero-filled.
type apiResponseWire struct {
	Prediction     *predictionWire `json:"prediction"`
	ActivityRisk   *string         `json:"activity_risk"`
	Recommendation *string         `json:"recommendation"`
	Timestamp      *string         `json:"timestamp"`
}

type predictionWire struct {
	VeryHot           *float64 `json:"very_hot"`
	VeryCold          *float64 `json:"very_cold"`
	VeryWindy         *float64 `json:"very_windy"`
	VeryWet           *float64 `json:"very_wet"`
	VeryUncomfortable *float64 `json:"very_uncomfortable"`
}

func (w *apiResponseWire) toModel() (*models.APIResponse, error) {
	if w.Prediction == nil {
		return nil, fmt.Errorf("missing field %q", "prediction")
	}
	if w.ActivityRisk == nil {
		return nil, fmt.Errorf("missing field %q", "activity_risk")
	}
	if w.Recommendation == nil {
		return nil, fmt.Errorf("missing field %q", "recommendation")
	}
	if w.Timestamp == nil {
		return nil, fmt.Errorf("missing field %q", "timestamp")
	}

	scores := []struct {
		name  string
		value *float64
	}{
		{"very_hot", w.Prediction.VeryHot},
		{"very_cold", w.Prediction.VeryCold},
		{"very_windy", w.Prediction.VeryWindy},
		{"very_wet", w.Prediction.VeryWet},
		{"very_uncomfortable", w.Prediction.VeryUncomfortable},
	}
	for _, s := range scores {
		if s.value == nil {
			return nil, fmt.Errorf("missing prediction score %q", s.name)
		}
	}

	return &models.APIResponse{
		Prediction: models.WeatherPrediction{
			VeryHot:           *w.Prediction.VeryHot,
			VeryCold:          *w.Prediction.VeryCold,
			VeryWindy:         *w.Prediction.VeryWindy,
			VeryWet:           *w.Prediction.VeryWet,
			VeryUncomfortable: *w.Prediction.VeryUncomfortable,
		},
		ActivityRisk:   *w.ActivityRisk,
		Recommendation: *w.Recommendation,
		Timestamp:      *w.Timestamp,
	}, nil
}

// Predict posts a prediction request to the backend and relays the decoded
// response. Values are forwarded exactly as given; no retry, no backoff.
func (c *BackendClient) Predict(ctx context.Context, req *models.PredictionRequest) (*models.APIResponse, error) {
	start := time.Now()

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode prediction request: %w", err)
	}

	url := c.baseURL + "/predict"
	log.Printf("Requesting prediction from %s (activity %q)", url, req.Activity)

	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create prediction request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		sendErr := fmt.Errorf("failed to send prediction request: %w", err)
		c.monitor.RecordUnreachable(opPredict, sendErr, time.Since(start))
		return nil, sendErr
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		statusErr := fmt.Errorf("prediction API returned status %d", resp.StatusCode)
		c.monitor.RecordDegraded(opPredict, statusErr, time.Since(start))
		return nil, statusErr
	}

	var wire apiResponseWire
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		decodeErr := fmt.Errorf("failed to decode prediction response: %w", err)
		c.monitor.RecordDegraded(opPredict, decodeErr, time.Since(start))
		return nil, decodeErr
	}

	apiResp, err := wire.toModel()
	if err != nil {
		decodeErr := fmt.Errorf("failed to decode prediction response: %w", err)
		c.monitor.RecordDegraded(opPredict, decodeErr, time.Since(start))
		return nil, decodeErr
	}

	c.monitor.RecordSuccess(opPredict, time.Since(start))
	return apiResp, nil
}

// CheckHealth probes the backend's health route. Any success status counts
// as healthy; the response body is ignored.
func (c *BackendClient) CheckHealth(ctx context.Context) (string, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/health", nil)
	if err != nil {
		return "", fmt.Errorf("failed to create health request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		connErr := fmt.Errorf("cannot connect to backend: %w", err)
		c.monitor.RecordUnreachable(opHealth, connErr, time.Since(start))
		return "", connErr
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		statusErr := fmt.Errorf("backend returned status %d", resp.StatusCode)
		c.monitor.RecordDegraded(opHealth, statusErr, time.Since(start))
		return "", statusErr
	}

	c.monitor.RecordSuccess(opHealth, time.Since(start))
	return BackendRunning, nil
}

// activityCatalogWire mirrors the backend's /activities body, pointer-typed
// like apiResponseWire so missing fields fail the decode.
type activityCatalogWire struct {
	Activities map[string]string `json:"activities"`
	Total      *int              `json:"total"`
}

func (w *activityCatalogWire) toModel() (*models.ActivityCatalog, error) {
	if w.Activities == nil {
		return nil, fmt.Errorf("missing field %q", "activities")
	}
	if w.Total == nil {
		return nil, fmt.Errorf("missing field %q", "total")
	}
	return &models.ActivityCatalog{
		Activities: w.Activities,
		Total:      *w.Total,
	}, nil
}

// ListActivities fetches the activity catalog the backend can assess,
// used by the front end to populate its activity picker.
func (c *BackendClient) ListActivities(ctx context.Context) (*models.ActivityCatalog, error) {
	start := time.Now()

	url := c.baseURL + "/activities"
	log.Printf("Fetching activity catalog from %s", url)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create activities request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		sendErr := fmt.Errorf("failed to fetch activity list: %w", err)
		c.monitor.RecordUnreachable(opActivities, sendErr, time.Since(start))
		return nil, sendErr
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		statusErr := fmt.Errorf("activities API returned status %d", resp.StatusCode)
		c.monitor.RecordDegraded(opActivities, statusErr, time.Since(start))
		return nil, statusErr
	}

	var wire activityCatalogWire
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		decodeErr := fmt.Errorf("failed to decode activity list: %w", err)
		c.monitor.RecordDegraded(opActivities, decodeErr, time.Since(start))
		return nil, decodeErr
	}

	catalog, err := wire.toModel()
	if err != nil {
		decodeErr := fmt.Errorf("failed to decode activity list: %w", err)
		c.monitor.RecordDegraded(opActivities, decodeErr, time.Since(start))
		return nil, decodeErr
	}

	c.monitor.RecordSuccess(opActivities, time.Since(start))
	return catalog, nil
}

// isSuccess reports whether a status code is in the 2xx range. The backend
// signals success with any 2xx, not just 200.
func isSuccess(code int) bool {
	return code >= 200 && code <= 299
}

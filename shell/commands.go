package shell

import (
	"context"
	"log"

	"weatherwise-shell/internal/models"
)

// Commands is the invocation surface the front end calls into. Each method
// maps one-to-one onto a backend exchange; the shell adds no caching,
// retries, or interpretation of its own.
type Commands struct {
	backend *BackendClient
}

func NewCommands(backend *BackendClient) *Commands {
	return &Commands{backend: backend}
}

// GetWeatherPrediction forwards the five user-supplied inputs to the backend
// and returns its prediction verbatim. All float values are accepted as
// given; validation belongs to the backend.
func (c *Commands) GetWeatherPrediction(ctx context.Context, temperature, humidity, windSpeed, pressure float64, activity string) (*models.APIResponse, error) {
	req := &models.PredictionRequest{
		Temperature: temperature,
		Humidity:    humidity,
		WindSpeed:   windSpeed,
		Pressure:    pressure,
		Activity:    activity,
	}

	resp, err := c.backend.Predict(ctx, req)
	if err != nil {
		log.Printf("⚠️  Prediction for %q failed: %v", activity, err)
		return nil, err
	}

	log.Printf("✅ Prediction for %q: risk=%s", activity, resp.ActivityRisk)
	return resp, nil
}

// CheckBackendHealth reports whether the backend is up. On success the
// returned message is always the same fixed string.
func (c *Commands) CheckBackendHealth(ctx context.Context) (string, error) {
	msg, err := c.backend.CheckHealth(ctx)
	if err != nil {
		log.Printf("⚠️  Backend health check failed: %v", err)
		return "", err
	}
	return msg, nil
}

// ListActivities returns the catalog of activities the backend can assess.
func (c *Commands) ListActivities(ctx context.Context) (*models.ActivityCatalog, error) {
	catalog, err := c.backend.ListActivities(ctx)
	if err != nil {
		log.Printf("⚠️  Activity catalog fetch failed: %v", err)
		return nil, err
	}

	log.Printf("✅ Activity catalog loaded (%d activities)", catalog.Total)
	return catalog, nil
}

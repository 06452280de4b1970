package models

// PredictionRequest carries the front end's inputs for a prediction call.
// Values are forwarded to the backend verbatim; the shell enforces no ranges.
type PredictionRequest struct {
	Temperature float64 `json:"temperature"` // Celsius
	Humidity    float64 `json:"humidity"`    // percent
	WindSpeed   float64 `json:"wind_speed"`  // km/h
	Pressure    float64 `json:"pressure"`    // hPa
	Activity    string  `json:"activity"`    // e.g. "hiking", "fishing"
}

// WeatherPrediction holds the backend's five condition scores. The scores
// are independent probabilities and are not required to sum to 1.
type WeatherPrediction struct {
	VeryHot           float64 `json:"very_hot"`
	VeryCold          float64 `json:"very_cold"`
	VeryWindy         float64 `json:"very_windy"`
	VeryWet           float64 `json:"very_wet"`
	VeryUncomfortable float64 `json:"very_uncomfortable"`
}

// APIResponse is the backend's answer to a prediction request, relayed to
// the front end without transformation.
type APIResponse struct {
	Prediction     WeatherPrediction `json:"prediction"`
	ActivityRisk   string            `json:"activity_risk"`
	Recommendation string            `json:"recommendation"`
	Timestamp      string            `json:"timestamp"`
}

// ActivityCatalog lists the activity profiles the backend can assess,
// keyed by the identifier the front end sends back in PredictionRequest.
type ActivityCatalog struct {
	Activities map[string]string `json:"activities"` // key -> display name
	Total      int               `json:"total"`
}

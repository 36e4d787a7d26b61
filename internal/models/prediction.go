package models

// MarketSet holds percentages per market group, keyed by outcome label
type MarketSet struct {
	MS   map[string]float64 `json:"MS"`
	OU25 map[string]float64 `json:"OU25"`
	BTTS map[string]float64 `json:"BTTS"`
}

// PredictionSources flags which provider contributed a real signal
type PredictionSources struct {
	APIFootball  bool `json:"api_football"`
	FootballData bool `json:"football_data"`
}

// PredictionParams records the model parameters used
type PredictionParams struct {
	Rho float64 `json:"rho"`
}

// PredictionResult is the outcome of the scoreline model for one match
type PredictionResult struct {
	LambdaHome      float64           `json:"lambda_home"`
	LambdaAway      float64           `json:"lambda_away"`
	Signal          string            `json:"signal"`
	MarketsPoisson  MarketSet         `json:"markets_poisson"`
	TopPicksPoisson []string          `json:"top_picks_poisson"`
	MarketsDC       MarketSet         `json:"markets_dc"`
	TopPicksDC      []string          `json:"top_picks_dc"`
	Sources         PredictionSources `json:"sources"`
	Params          PredictionParams  `json:"params"`
}

// MatchPrediction is the full response for a prediction request
type MatchPrediction struct {
	RequestID     string             `json:"request_id"`
	Home          TeamCandidate      `json:"home"`
	Away          TeamCandidate      `json:"away"`
	ProvidersHome ProviderIdentities `json:"providers_home"`
	ProvidersAway ProviderIdentities `json:"providers_away"`
	Prediction    PredictionResult   `json:"prediction"`
}

package models

import "time"

// ProviderName identifies an external football data provider
type ProviderName string

const (
	// ProviderAPIFootball is the free-text searchable provider with fixture history
	ProviderAPIFootball ProviderName = "api_football"
	// ProviderFootballData is the catalog provider, matched against a cached team list
	ProviderFootballData ProviderName = "football_data"
)

// ProviderIdentity is a team's identifier inside one provider
type ProviderIdentity struct {
	Provider ProviderName `json:"provider"`
	ID       int64        `json:"id"`
	Name     string       `json:"name"`
}

// ProviderIdentities holds the per-provider identities of one team.
// A nil entry means the provider could not resolve the team.
type ProviderIdentities struct {
	APIFootball  *ProviderIdentity `json:"api_football"`
	FootballData *ProviderIdentity `json:"football_data"`
}

// ProviderResult carries either a value or the provider failure that
// prevented it. A zero result with no error means "no match".
type ProviderResult[T any] struct {
	Value T
	Err   *ProviderError
}

// OK reports whether the call completed without a provider failure
func (r ProviderResult[T]) OK() bool {
	return r.Err == nil
}

// CatalogTeam is one entry of the football-data tier-one team catalog
type CatalogTeam struct {
	ProviderTeamID int64  `json:"provider_team_id"`
	Name           string `json:"name"`
	ShortName      string `json:"short_name,omitempty"`
	CountryCode    string `json:"country_code,omitempty"`
	CountryName    string `json:"country_name,omitempty"`
}

// CatalogSnapshot is a catalog together with the time it was fetched
type CatalogSnapshot struct {
	Teams     []CatalogTeam `json:"teams"`
	FetchedAt time.Time     `json:"fetched_at"`
}

// Age returns how old the snapshot is relative to now
func (s CatalogSnapshot) Age(now time.Time) time.Duration {
	return now.Sub(s.FetchedAt)
}

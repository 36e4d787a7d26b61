package models

// TeamRow is a raw row of the team registry
type TeamRow struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
	Key  string `db:"key" json:"key"`
}

// TeamCandidate is a registry team selected for a free-text query.
// MatchKey is the slug used for deduplication and is never displayed.
type TeamCandidate struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Key      string  `json:"key"`
	MatchKey string  `json:"-"`
	Score    float64 `json:"score"`
}

// NewTeamCandidate builds a candidate from a registry row
func NewTeamCandidate(row *TeamRow, matchKey string, score float64) TeamCandidate {
	return TeamCandidate{
		ID:       row.ID,
		Name:     row.Name,
		Key:      row.Key,
		MatchKey: matchKey,
		Score:    score,
	}
}

package models

import "time"

// Fixture is a finished match with its final score
type Fixture struct {
	ID         int64     `json:"id"`
	KickOff    time.Time `json:"kick_off"`
	HomeTeamID int64     `json:"home_team_id"`
	AwayTeamID int64     `json:"away_team_id"`
	HomeGoals  int       `json:"home_goals"`
	AwayGoals  int       `json:"away_goals"`
}

// GoalsFor returns the goals scored and conceded by teamID in this fixture.
// A team that is not the home side is treated as the away side.
func (f Fixture) GoalsFor(teamID int64) (scored, conceded int) {
	if f.HomeTeamID == teamID {
		return f.HomeGoals, f.AwayGoals
	}
	return f.AwayGoals, f.HomeGoals
}

// GoalRatePair is a team's average goals scored and conceded per match
type GoalRatePair struct {
	ScoredPerMatch   float64 `json:"scored_per_match"`
	ConcededPerMatch float64 `json:"conceded_per_match"`
	SampleSize       int     `json:"sample_size"`
	Tier             string  `json:"tier"`
}

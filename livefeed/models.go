package livefeed

// FeedMatch is a match listed by the commentary provider
type FeedMatch struct {
	MatchID   string `json:"match_id"`
	HomeTeam  string `json:"home_team"`
	AwayTeam  string `json:"away_team"`
	Kickoff   int64  `json:"kickoff"`
	Completed bool   `json:"completed"`
}

// FeedDocument is the raw commentary text for a single match
type FeedDocument struct {
	MatchID   string `json:"match_id"`
	Text      string `json:"text"`
	UpdatedAt int64  `json:"updated_at"`
}

type matchListResponse struct {
	Matches []FeedMatch `json:"matches"`
}

type documentResponse struct {
	Document *FeedDocument `json:"document"`
}

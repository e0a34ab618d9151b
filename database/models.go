package database

import (
	"time"
)

// CommentaryDocument 存储的原始解说文档
type CommentaryDocument struct {
	ID         int64     `db:"id"`
	MatchID    string    `db:"match_id"`
	OurTeam    *string   `db:"our_team"`
	Source     *string   `db:"source"`
	RawText    string    `db:"raw_text"`
	ReceivedAt time.Time `db:"received_at"`
	CreatedAt  time.Time `db:"created_at"`
}

// Match 已解析的比赛记录
type Match struct {
	ID         int64     `db:"id"`
	MatchID    string    `db:"match_id"`
	Team1      string    `db:"team1"`
	Team2      string    `db:"team2"`
	OurTeam    string    `db:"our_team"`
	Scoreline  *string   `db:"scoreline"`
	BiasMode   *string   `db:"bias_mode"`
	EventCount int       `db:"event_count"`
	ParsedAt   time.Time `db:"parsed_at"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// MatchEventRow 时间线事件行
type MatchEventRow struct {
	ID        int64     `db:"id"`
	MatchID   string    `db:"match_id"`
	Seq       int       `db:"seq"`
	Minute    string    `db:"minute"`
	EventType string    `db:"event_type"`
	Player    *string   `db:"player"`
	Note      *string   `db:"note"`
	CreatedAt time.Time `db:"created_at"`
}

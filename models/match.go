package models

import "time"

// CommentaryDocument 一份待解析的原始解说文档
type CommentaryDocument struct {
	MatchID    string    `json:"match_id"`
	OurTeam    string    `json:"our_team,omitempty"`
	Text       string    `json:"text"`
	Source     string    `json:"source,omitempty"`
	ReceivedAt time.Time `json:"received_at,omitempty"`
}

// MatchReport 一次完整解析的输出:双方阵容、事件时间线、记忆与统计
type MatchReport struct {
	MatchID  string              `json:"match_id"`
	Team1    string              `json:"team1"`
	Team2    string              `json:"team2"`
	OurTeam  string              `json:"our_team"`
	Rosters  map[string][]string `json:"rosters"`
	Context  []string            `json:"context"`
	Events   []MatchEvent        `json:"events"`
	Memory   *MatchMemory        `json:"memory,omitempty"`
	Stats    *MatchStats         `json:"stats,omitempty"`
	BiasMode string              `json:"bias_mode,omitempty"`
	ParsedAt time.Time           `json:"parsed_at"`
}

// MatchMemory 按时间线聚合出的比赛记忆,供叙事/问答等下游使用
type MatchMemory struct {
	MatchID         string              `json:"match_id"`
	Team            string              `json:"team"`
	Teams           []string            `json:"teams"`
	Rosters         map[string][]string `json:"rosters"`
	Timeline        []MatchEvent        `json:"timeline"`
	HeroLedger      map[string]int      `json:"hero_ledger"`
	BlameLedger     map[string]int      `json:"blame_ledger"`
	RefHeat         int                 `json:"ref_heat"`
	PressureFor     int                 `json:"pressure_for"`
	PressureAgainst int                 `json:"pressure_against"`
	Context         []string            `json:"context"`
	Quotes          []string            `json:"quotes"`
	TeamStats       *TeamStatsPayload   `json:"team_stats,omitempty"`
}

// TeamStatsPayload 外部提供的球队统计数据,原样合并进记忆,不参与解析
type TeamStatsPayload struct {
	TeamTotals map[string]map[string]float64 `json:"team_totals,omitempty"`
	ByHalf     map[string]map[string]float64 `json:"by_half,omitempty"`
	Teams      map[string]string             `json:"teams,omitempty"`
}

// KeyMoment 关键时刻:分钟 + 原文描述
type KeyMoment struct {
	Minute string `json:"minute"`
	Note   string `json:"note"`
}

// MatchStats 基于时间线的启发式统计
type MatchStats struct {
	Scoreline    string     `json:"scoreline"`
	GoalsFor     int        `json:"goals_for"`
	GoalsAgainst int        `json:"goals_against"`
	OurScorers   []string   `json:"our_scorers"`
	OppScorers   []string   `json:"opp_scorers"`
	CardsUs      int        `json:"cards_us"`
	CardsOpp     int        `json:"cards_opp"`
	MissesUs     int        `json:"misses_us"`
	MissesOpp    int        `json:"misses_opp"`
	MOTM         string     `json:"motm"`
	KeyMoment    *KeyMoment `json:"key_moment,omitempty"`
	RefHeat      int        `json:"ref_heat"`
}

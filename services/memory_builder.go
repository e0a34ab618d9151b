package services

import (
	"strings"

	"commentary-service/models"
)

// BuildMemory 把事件时间线聚合成比赛记忆:功臣/背锅账本、裁判热度、
// 攻防压力计数与引语收集,供下游叙事与问答使用
// 上游混入的残缺事件(空类型)按"尽量给出部分结果"的原则直接丢弃
func BuildMemory(
	matchID string,
	ourTeam string,
	lineups *Lineups,
	events []models.MatchEvent,
	contextLines []string,
) *models.MatchMemory {
	hero := make(map[string]int)
	blame := make(map[string]int)
	refHeat := 0
	pressureFor := 0
	pressureAgainst := 0
	var quotes []string

	for _, e := range events {
		if e.Type == "" {
			continue
		}
		note := strings.ToLower(e.Note)

		switch e.Type {
		case models.EventOurGoal:
			if e.Player != "" {
				hero[e.Player] += 2
			}
			pressureFor += 2
		case models.EventOurBigChanceMissed:
			if e.Player != "" {
				blame[e.Player]++
			}
			pressureFor++
		case models.EventOppGoal:
			pressureAgainst += 2
		case models.EventOppBigChanceMissed:
			pressureAgainst++
		case models.EventYellowUs, models.EventRedUs:
			refHeat++
		case models.EventQuote:
			quotes = append(quotes, e.Note)
		}

		if strings.Contains(note, "deflect") || strings.Contains(note, "controvers") || strings.Contains(note, "var") {
			refHeat++
		}

		if strings.HasPrefix(e.Type, "CORNER_") || strings.HasPrefix(e.Type, "DISALLOWED_GOAL_") {
			if strings.HasSuffix(e.Type, "_US") {
				pressureFor++
			} else {
				pressureAgainst++
			}
		}
	}

	return &models.MatchMemory{
		MatchID: matchID,
		Team:    ourTeam,
		Teams:   []string{lineups.Team1, lineups.Team2},
		Rosters: map[string][]string{
			lineups.Team1: lineups.Roster1,
			lineups.Team2: lineups.Roster2,
		},
		Timeline:        events,
		HeroLedger:      hero,
		BlameLedger:     blame,
		RefHeat:         refHeat,
		PressureFor:     pressureFor,
		PressureAgainst: pressureAgainst,
		Context:         contextLines,
		Quotes:          quotes,
	}
}

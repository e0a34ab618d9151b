package services

import (
	"sort"
	"strconv"
	"strings"

	"commentary-service/models"
)

type scorerEntry struct {
	minute int
	player string
}

// ComputeStats 在比赛记忆之上计算启发式统计:比分、进球名单、
// 牌数、大机会、MOTM 与关键时刻
// 对同样的记忆输入输出是确定的 (所有平局情况有固定的决胜次序)
func ComputeStats(memory *models.MatchMemory) *models.MatchStats {
	events := memory.Timeline

	var scorersFor, scorersAgainst []scorerEntry
	goalsFor, goalsAgainst := 0, 0
	cardsUs, cardsOpp := 0, 0
	missesUs, missesOpp := 0, 0

	for _, e := range events {
		player := e.Player
		if player == "" {
			player = "Unknown"
		}
		minute := models.MinuteValue(e.Minute)

		switch e.Type {
		case models.EventOurGoal:
			goalsFor++
			scorersFor = append(scorersFor, scorerEntry{minute, player})
		case models.EventOppGoal:
			goalsAgainst++
			scorersAgainst = append(scorersAgainst, scorerEntry{minute, player})
		case models.EventYellowUs, models.EventRedUs:
			cardsUs++
		case models.EventYellowOpp, models.EventRedOpp:
			cardsOpp++
		case models.EventOurBigChanceMissed:
			missesUs++
		case models.EventOppBigChanceMissed:
			missesOpp++
		}
	}

	return &models.MatchStats{
		Scoreline:    strconv.Itoa(goalsFor) + "-" + strconv.Itoa(goalsAgainst),
		GoalsFor:     goalsFor,
		GoalsAgainst: goalsAgainst,
		OurScorers:   sortedScorers(scorersFor),
		OppScorers:   sortedScorers(scorersAgainst),
		CardsUs:      cardsUs,
		CardsOpp:     cardsOpp,
		MissesUs:     missesUs,
		MissesOpp:    missesOpp,
		MOTM:         pickMOTM(memory, scorersFor),
		KeyMoment:    pickKeyMoment(events, goalsFor, goalsAgainst),
		RefHeat:      memory.RefHeat,
	}
}

// sortedScorers 按 (分钟, 名字) 排序后的进球者名单
func sortedScorers(entries []scorerEntry) []string {
	sorted := make([]scorerEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].minute != sorted[j].minute {
			return sorted[i].minute < sorted[j].minute
		}
		return sorted[i].player < sorted[j].player
	})
	out := make([]string, 0, len(sorted))
	for _, s := range sorted {
		out = append(out, s.player)
	}
	return out
}

// pickMOTM 最佳球员启发式:功臣账本最高分;否则最早进球者;
// 否则我方事件里被提到最多的名字;都没有给一个中性兜底
func pickMOTM(memory *models.MatchMemory, scorersFor []scorerEntry) string {
	if len(memory.HeroLedger) > 0 {
		names := make([]string, 0, len(memory.HeroLedger))
		for n := range memory.HeroLedger {
			names = append(names, n)
		}
		sort.Strings(names)
		best, bestScore := "", -1
		for _, n := range names {
			if memory.HeroLedger[n] > bestScore {
				best, bestScore = n, memory.HeroLedger[n]
			}
		}
		return best
	}

	if len(scorersFor) > 0 {
		earliest := scorersFor[0]
		for _, s := range scorersFor[1:] {
			if s.minute < earliest.minute {
				earliest = s
			}
		}
		return earliest.player
	}

	counts := make(map[string]int)
	var order []string
	for _, e := range memory.Timeline {
		if e.Player != "" && strings.HasPrefix(e.Type, "OUR_") {
			if counts[e.Player] == 0 {
				order = append(order, e.Player)
			}
			counts[e.Player]++
		}
	}
	best, bestScore := "", -1
	for _, n := range order {
		if counts[n] > bestScore {
			best, bestScore = n, counts[n]
		}
	}
	if best != "" {
		return best
	}
	return "a standout performer"
}

// pickKeyMoment 关键时刻启发式:
// 胜 -> 最后一个我方进球;负 -> 最后的失球或更晚的我方大机会错失;
// 平 -> 最后一个进球 (扳平球)
func pickKeyMoment(events []models.MatchEvent, goalsFor, goalsAgainst int) *models.KeyMoment {
	latest := func(etypes ...string) *models.MatchEvent {
		var found *models.MatchEvent
		bestMin := -1
		for i := range events {
			for _, et := range etypes {
				if events[i].Type == et && models.MinuteValue(events[i].Minute) > bestMin {
					bestMin = models.MinuteValue(events[i].Minute)
					found = &events[i]
				}
			}
		}
		return found
	}

	switch {
	case goalsFor > goalsAgainst:
		if e := latest(models.EventOurGoal); e != nil {
			return &models.KeyMoment{Minute: e.Minute, Note: e.Note}
		}
	case goalsAgainst > goalsFor:
		lastOpp := latest(models.EventOppGoal)
		lastMiss := latest(models.EventOurBigChanceMissed)
		candidate := lastOpp
		if lastMiss != nil && (lastOpp == nil || models.MinuteValue(lastMiss.Minute) > models.MinuteValue(lastOpp.Minute)) {
			candidate = lastMiss
		}
		if candidate != nil {
			return &models.KeyMoment{Minute: candidate.Minute, Note: candidate.Note}
		}
	default:
		if e := latest(models.EventOurGoal, models.EventOppGoal); e != nil {
			return &models.KeyMoment{Minute: e.Minute, Note: e.Note}
		}
	}
	return nil
}

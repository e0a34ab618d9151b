package services

import "commentary-service/models"

// 解说语气模式
const (
	ModeSupportive = "SUPPORTIVE"
	ModeRant       = "RANT"
)

// SelectMode 选择解说语气,默认 SUPPORTIVE,只有明显踢得差才升级 RANT:
// 净负 2+ 球;或负 1 球且 (压力差 >= 3 或我方吃 2+ 张牌或丢 3+ 球)
func SelectMode(memory *models.MatchMemory, stats *models.MatchStats) string {
	gf, ga := stats.GoalsFor, stats.GoalsAgainst

	// 赢或平 => 支持性语气
	if gf >= ga {
		return ModeSupportive
	}

	margin := ga - gf
	if margin >= 2 {
		return ModeRant
	}
	if margin == 1 && ((memory.PressureAgainst-memory.PressureFor) >= 3 || stats.CardsUs >= 2 || ga >= 3) {
		return ModeRant
	}

	return ModeSupportive
}

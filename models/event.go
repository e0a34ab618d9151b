package models

import (
	"strconv"
	"strings"
)

// 事件类型常量 — 下游消费者依赖这个封闭的类型词汇表,不要随意增删
const (
	EventOurGoal            = "OUR_GOAL"
	EventOppGoal            = "OPP_GOAL"
	EventSubUs              = "SUB_US"
	EventSubOpp             = "SUB_OPP"
	EventYellowUs           = "YC_US"
	EventYellowOpp          = "YC_OPP"
	EventRedUs              = "RC_US"
	EventRedOpp             = "RC_OPP"
	EventCornerUs           = "CORNER_US"
	EventCornerOpp          = "CORNER_OPP"
	EventOffsideUs          = "OFFSIDE_US"
	EventOffsideOpp         = "OFFSIDE_OPP"
	EventDisallowedGoalUs   = "DISALLOWED_GOAL_US"
	EventDisallowedGoalOpp  = "DISALLOWED_GOAL_OPP"
	EventSaveUs             = "SAVE_US"
	EventSaveOpp            = "SAVE_OPP"
	EventBlockUs            = "BLOCK_US"
	EventBlockOpp           = "BLOCK_OPP"
	EventFoulUs             = "FOUL_US"
	EventFoulOpp            = "FOUL_OPP"
	EventFreeKickUs         = "FREEKICK_US"
	EventFreeKickOpp        = "FREEKICK_OPP"
	EventOurBigChanceMissed = "OUR_BIG_CHANCE_MISSED"
	EventOppBigChanceMissed = "OPP_BIG_CHANCE_MISSED"
	EventKickOff            = "KICK_OFF"
	EventDelay              = "DELAY"
	EventResume             = "RESUME"
	EventAddedTime          = "ADDED_TIME"
	EventQuote              = "QUOTE"
	EventLabel              = "LABEL"
)

// MatchEvent 解析出的单条时间线事件
// Minute 形如 "12" 或 "45+2",Note 保留(去掉标签后的)原文
type MatchEvent struct {
	Minute string `json:"minute"`
	Type   string `json:"type"`
	Player string `json:"player,omitempty"`
	Note   string `json:"note"`
}

// MinuteValue 把 "45+2" 折算成 47,"12" 折算成 12,用于事件排序比较
// 无法解析时返回 0
func MinuteValue(minute string) int {
	if minute == "" {
		return 0
	}
	base := minute
	extra := ""
	if idx := strings.Index(minute, "+"); idx >= 0 {
		base = minute[:idx]
		extra = minute[idx+1:]
	}
	b, err := strconv.Atoi(strings.TrimSpace(base))
	if err != nil {
		return 0
	}
	if extra != "" {
		if e, err := strconv.Atoi(strings.TrimSpace(extra)); err == nil {
			return b + e
		}
	}
	return b
}

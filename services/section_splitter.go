package services

import (
	"regexp"
	"strings"
)

// 行首的原始分钟标记或已规范化的 [MIN=...] 标签,作为解说区的边界
var minuteLineOrTagPattern = regexp.MustCompile(
	`^[ \t]*(?:\d{1,3}(?:\+\d{1,2})?[:'’]|\[MIN=\d{1,3}(?:\+\d{1,2})?\])`,
)

// 开场白中的三种阵容行形态
var (
	teamLinePattern   = regexp.MustCompile(`(?i)^\s*([A-Za-z0-9 .'\-]+?)\s*(?:XI|Lineup|Starting XI)?\s*:\s*(.+)$`)
	subsInlinePattern = regexp.MustCompile(`(?i)^\s*([A-Za-z0-9 .'\-]+?)\s*(?:Subs|Substitutes|Bench)\s*:\s*(.+)$`)
	subsBarePattern   = regexp.MustCompile(`(?i)^\s*(?:Subs|Substitutes|Bench)\s*:\s*(.+)$`)
)

// 形态阈值:首发名单至少 5 个名字,替补名单至少 3 个
const (
	minRosterEntries = 5
	minSubsEntries   = 3
)

// entryCount 逗号分隔的条目数
func entryCount(list string) int {
	return strings.Count(list, ",") + 1
}

// SplitSections 把原始文本(归一化之前)切分为背景行、阵容候选行和解说行
// 第一条分钟标记行之前的所有内容是开场白,从中分出阵容行与背景行;
// 之后的全部是解说(空行丢弃)。全文没有分钟标记时解说区为空
func SplitSections(raw string) (contextLines, lineupLines, commentaryLines []string) {
	lines := strings.Split(raw, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " \t\r")
	}

	firstMinIdx := -1
	for i, ln := range lines {
		if minuteLineOrTagPattern.MatchString(ln) {
			firstMinIdx = i
			break
		}
	}

	if firstMinIdx < 0 {
		contextLines, lineupLines = extractFrontMatter(lines)
		return contextLines, lineupLines, nil
	}

	contextLines, lineupLines = extractFrontMatter(lines[:firstMinIdx])
	for _, ln := range lines[firstMinIdx:] {
		if strings.TrimSpace(ln) != "" {
			commentaryLines = append(commentaryLines, ln)
		}
	}
	return contextLines, lineupLines, commentaryLines
}

// extractFrontMatter 把开场白按形态分为背景行与阵容行
// "Team Subs: ..." 比 "Team: ..." 更特殊,先匹配;裸 "Subs: ..." 挂到
// 最近一次出现的阵容球队上。不满足阈值的一律当背景
func extractFrontMatter(front []string) (contextLines, lineupLines []string) {
	var lastTeam string

	for _, ln := range front {
		trimmed := strings.TrimSpace(ln)
		if trimmed == "" {
			continue
		}

		if m := subsInlinePattern.FindStringSubmatch(ln); m != nil {
			if entryCount(m[2]) >= minSubsEntries {
				lineupLines = append(lineupLines, trimmed)
				lastTeam = strings.TrimSpace(m[1])
			} else {
				contextLines = append(contextLines, trimmed)
			}
			continue
		}

		if m := subsBarePattern.FindStringSubmatch(ln); m != nil {
			if lastTeam != "" && entryCount(m[1]) >= minSubsEntries {
				lineupLines = append(lineupLines, lastTeam+" Subs: "+strings.TrimSpace(m[1]))
			} else {
				contextLines = append(contextLines, trimmed)
			}
			continue
		}

		if m := teamLinePattern.FindStringSubmatch(ln); m != nil && !isReservedTeamToken(m[1]) {
			if entryCount(m[2]) >= minRosterEntries {
				lineupLines = append(lineupLines, trimmed)
				lastTeam = strings.TrimSpace(m[1])
			} else {
				contextLines = append(contextLines, trimmed)
			}
			continue
		}

		contextLines = append(contextLines, trimmed)
	}

	return contextLines, lineupLines
}

// isReservedTeamToken 过滤永远不能当作队名的左侧 token
// ("Context:" 是背景行的惯用前缀,"Subs" 是替补行残留)
func isReservedTeamToken(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "context", "subs", "substitutes", "bench":
		return true
	}
	return false
}

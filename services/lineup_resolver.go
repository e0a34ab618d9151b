package services

import (
	"fmt"
	"regexp"
	"strings"
)

// teamNameTable 静态队名别名表:常见缩写 -> 规范队名 (键为小写)
var teamNameTable = map[string]string{
	"man utd":        "Manchester United",
	"manchester utd": "Manchester United",
	"man united":     "Manchester United",
	"chelsea fc":     "Chelsea",
}

// LineupResolutionError 阵容解析失败:识别出的球队少于两支
// 携带原始候选行便于诊断
type LineupResolutionError struct {
	Lines []string
}

func (e *LineupResolutionError) Error() string {
	return fmt.Sprintf("could not identify two teams from lineups: %q", e.Lines)
}

// Lineups 解析出的两支球队及其名单,Team1/Team2 按首次出现顺序
type Lineups struct {
	Team1   string
	Roster1 []string
	Team2   string
	Roster2 []string
}

// CanonicalTeamName 通过静态别名表把队名规范化 (大小写不敏感)
func CanonicalTeamName(name string) string {
	nm := strings.TrimSpace(name)
	if canon, ok := teamNameTable[strings.ToLower(nm)]; ok {
		return canon
	}
	return nm
}

var trailingPunctPattern = regexp.MustCompile(`[.;:,·\s]+$`)

// stripTrailingPunct 去掉名字尾部的标点和空白
func stripTrailingPunct(s string) string {
	return trailingPunctPattern.ReplaceAllString(strings.TrimSpace(s), "")
}

var nameSeparatorPattern = regexp.MustCompile(`,|;|\s–\s|\s-\s`)

// splitNameList 把逗号/分号/破折号分隔的名单拆成名字列表
func splitNameList(list string) []string {
	parts := nameSeparatorPattern.Split(list, -1)
	var out []string
	for _, p := range parts {
		if nm := stripTrailingPunct(p); nm != "" {
			out = append(out, nm)
		}
	}
	return out
}

// dedupRoster 去重,保留首次出现顺序
func dedupRoster(names []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, n := range names {
		n = stripTrailingPunct(n)
		if n != "" && !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}

// ParseLineups 把阵容候选行解析成两支球队与名单
// 逐行处理,维护"最近一支球队"用于挂接裸 Subs 行;识别不出两支球队时
// 返回 *LineupResolutionError
func ParseLineups(lineupLines []string) (*Lineups, error) {
	rosters := make(map[string][]string)
	var teamOrder []string
	var lastTeam string

	appendNames := func(team string, names []string) {
		if _, ok := rosters[team]; !ok {
			teamOrder = append(teamOrder, team)
		}
		rosters[team] = append(rosters[team], names...)
	}

	for _, ln := range lineupLines {
		// "Team Subs: ..." 要先于 "Team: ..." 处理,否则会被后者吞掉
		if m := subsInlinePattern.FindStringSubmatch(ln); m != nil {
			team := CanonicalTeamName(m[1])
			appendNames(team, splitNameList(m[2]))
			lastTeam = team
			continue
		}

		// 裸 "Subs: ..." 挂到最近一支球队
		if m := subsBarePattern.FindStringSubmatch(ln); m != nil {
			if lastTeam != "" {
				appendNames(lastTeam, splitNameList(m[1]))
			}
			continue
		}

		if m := teamLinePattern.FindStringSubmatch(ln); m != nil {
			// 字面 "Subs" 永远不是队名
			if isReservedTeamToken(m[1]) {
				continue
			}
			team := CanonicalTeamName(m[1])
			appendNames(team, splitNameList(m[2]))
			lastTeam = team
			continue
		}
	}

	if len(teamOrder) < 2 {
		return nil, &LineupResolutionError{Lines: lineupLines}
	}

	t1, t2 := teamOrder[0], teamOrder[1]
	return &Lineups{
		Team1:   t1,
		Roster1: dedupRoster(rosters[t1]),
		Team2:   t2,
		Roster2: dedupRoster(rosters[t2]),
	}, nil
}

// 解说行行首的分钟标签 / 原始分钟标记,提取阵容前先剥掉
var (
	minTagPrefixPattern    = regexp.MustCompile(`^\s*\[MIN=\d{1,3}(?:\+\d{1,2})?\]\s*`)
	rawMinutePrefixPattern = regexp.MustCompile(`^\s*\d{1,3}(?:\+\d{1,2})?[:'’]\s*`)
)

// ExtractLineupsFromCommentary 从解说区反向抽取阵容形状的行
// 开场白中找不到可用阵容时的回退数据源:剥掉行首分钟标记后套用与
// 开场白完全相同的形态和阈值规则,产出合成阵容行供 ParseLineups 重试
func ExtractLineupsFromCommentary(commentaryLines []string) []string {
	var lineupLike []string
	var lastTeam string

	for _, ln := range commentaryLines {
		if strings.TrimSpace(ln) == "" {
			continue
		}
		core := minTagPrefixPattern.ReplaceAllString(ln, "")
		core = strings.TrimSpace(rawMinutePrefixPattern.ReplaceAllString(core, ""))

		if m := subsInlinePattern.FindStringSubmatch(core); m != nil {
			if entryCount(m[2]) >= minSubsEntries {
				team := CanonicalTeamName(m[1])
				lineupLike = append(lineupLike, team+" Subs: "+strings.TrimSpace(m[2]))
				lastTeam = team
			}
			continue
		}

		if m := subsBarePattern.FindStringSubmatch(core); m != nil {
			if lastTeam != "" && entryCount(m[1]) >= minSubsEntries {
				lineupLike = append(lineupLike, lastTeam+" Subs: "+strings.TrimSpace(m[1]))
			}
			continue
		}

		if m := teamLinePattern.FindStringSubmatch(core); m != nil && !isReservedTeamToken(m[1]) {
			if entryCount(m[2]) >= minRosterEntries {
				team := CanonicalTeamName(m[1])
				lineupLike = append(lineupLike, team+": "+strings.TrimSpace(m[2]))
				lastTeam = team
			}
			continue
		}
	}

	return lineupLike
}

package services

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var accentStripper = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

// stripAccents 去掉组合变音符号 ("Özil" -> "Ozil")
func stripAccents(s string) string {
	out, _, err := transform.String(accentStripper, s)
	if err != nil {
		return s
	}
	return out
}

// normText 归一化文本用于匹配:去音标 + 转小写
func normText(s string) string {
	return strings.ToLower(stripAccents(s))
}

// BuildTeamAliases 为一个队名生成别名集合,用于自由文本中的归属判断
// 返回有序去重的切片,保证同样输入得到同样输出
func BuildTeamAliases(team string) []string {
	base := normText(team)

	var aliases []string
	seen := make(map[string]bool)
	add := func(a string) {
		a = strings.TrimSpace(a)
		if a != "" && !seen[a] {
			seen[a] = true
			aliases = append(aliases, a)
		}
	}

	add(base)

	// 去掉俱乐部后缀的变体 ("chelsea fc" -> "chelsea")
	add(strings.TrimSpace(strings.ReplaceAll(base, "fc", "")))

	// united/utd 缩写族收敛到同一个别名组
	if strings.Contains(base, "united") || strings.Contains(base, "utd") {
		add("manchester united")
		add("man utd")
		add("manchester utd")
		add("united")
	}
	if strings.Contains(base, "chelsea") {
		add("chelsea")
	}

	return aliases
}

// containsAlias 判断别名集中是否有某个别名作为子串出现在归一化文本里
func containsAlias(normalized string, aliases []string) bool {
	for _, a := range aliases {
		if strings.Contains(normalized, a) {
			return true
		}
	}
	return false
}

// hasExactAlias 判断归一化后的名字是否恰好是别名集中的一员
func hasExactAlias(name string, aliases []string) bool {
	for _, a := range aliases {
		if a == name {
			return true
		}
	}
	return false
}

package services

import (
	"regexp"
	"strconv"
	"strings"
)

// 分钟标记语法: 12'  45+2'  56:  90+3:
// 行首形式带任意终止符(撇号/弯撇号/冒号),行内安全网形式必须带撇号,
// 否则比分数字 ("makes it 2") 会被误写成分钟标签
var (
	minuteLinePattern   = regexp.MustCompile(`(?m)^[ \t]*(\d{1,3})(?:\+(\d{1,2}))?[ \t]*[:'’][ \t]*`)
	minuteInlinePattern = regexp.MustCompile(`\b(\d{1,3})(?:\+(\d{1,2}))?['’]`)

	crlfPattern      = regexp.MustCompile(`\r\n?`)
	blankRunPattern  = regexp.MustCompile(`\n{3,}`)
)

// 常规比赛分钟的上限 (含加时);超出的数字不是分钟标记
const maxRegularMinute = 130

// plausibleMinute 基础分钟是否落在常规范围内
func plausibleMinute(base string) bool {
	n, err := strconv.Atoi(base)
	return err == nil && n <= maxRegularMinute
}

// minuteTag 生成规范分钟标签 [MIN=N] 或 [MIN=N+M]
func minuteTag(base, extra string) string {
	n, err := strconv.Atoi(base)
	if err != nil {
		return "[MIN=" + base + "]"
	}
	if extra != "" {
		return "[MIN=" + strconv.Itoa(n) + "+" + extra + "]"
	}
	return "[MIN=" + strconv.Itoa(n) + "]"
}

// NormalizeMinutes 把自由文本中的分钟标记改写为规范标签形式
// 行首的 "12'" / "45+2'" / "56:" 改写为 "[MIN=12] " 等;行内出现的
// "45'" 同样改写(不含尾随空格)。已经是 [MIN=...] 形式的文本不会被
// 再次改写,重复调用是幂等的。超出常规上限的数字原样保留
func NormalizeMinutes(text string) string {
	t := minuteLinePattern.ReplaceAllStringFunc(text, func(m string) string {
		sub := minuteLinePattern.FindStringSubmatch(m)
		if !plausibleMinute(sub[1]) {
			return m
		}
		return minuteTag(sub[1], sub[2]) + " "
	})
	t = minuteInlinePattern.ReplaceAllStringFunc(t, func(m string) string {
		sub := minuteInlinePattern.FindStringSubmatch(m)
		if !plausibleMinute(sub[1]) {
			return m
		}
		return minuteTag(sub[1], sub[2])
	})
	return t
}

// CleanText 对原始解说文本做编码容错清理,然后归一化分钟标记
// 长短破折号统一为 "-",换行统一为 \n,连续空行压缩为一个
func CleanText(text string) string {
	t := strings.ReplaceAll(text, "—", "-")
	t = strings.ReplaceAll(t, "–", "-")
	t = crlfPattern.ReplaceAllString(t, "\n")
	t = blankRunPattern.ReplaceAllString(t, "\n\n")
	return NormalizeMinutes(t)
}

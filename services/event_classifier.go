package services

import (
	"regexp"
	"strings"

	"commentary-service/logger"
	"commentary-service/models"
)

// 分钟标签提取,优先级从高到低:
// 1. 拆开的补时对 "[MIN=45] +[MIN=2]" (归一化嵌套形式也接受)
// 2. 行首标签 (事件分钟,避免拿到行尾比分里的标签)
// 3. 行首裸 "45'" / "90+3'"
// 4. 行内最靠左的标签
var (
	minTagPattern     = regexp.MustCompile(`\[MIN=(\d{1,3}(?:\+\d{1,2})?)\]`)
	addedPairPattern  = regexp.MustCompile(`(?i)\[MIN=(?:\[MIN=)?(\d{1,3})(?:\])?\]\s*\+\[MIN=(\d{1,2})\]`)
	startMinPattern   = regexp.MustCompile(`^\s*\[MIN=(?:\[MIN=)?(\d{1,3}(?:\+\d{1,2})?)\]`)
	bareMinutePattern = regexp.MustCompile(`^\s*(\d{1,3}(?:\+\d{1,2})?)\s*['’]`)

	// 行首分钟标记在分类前剥掉,否则锚定 ^ 的模式永远匹配不上
	minutePrefixPattern = regexp.MustCompile(
		`^\s*(?:\[MIN=(?:\[MIN=)?\d{1,3}(?:\+\d{1,2})?\](?:\])?\s*(?:\+\[MIN=\d{1,2}\]\s*)?|\d{1,3}(?:\+\d{1,2})?\s*['’]\s*)`,
	)
)

// 行首的全大写强调前缀 (HUGE CHANCE!  COUNTER! 之类)
var labelPrefixPattern = regexp.MustCompile(`^([A-Z][A-Z !\-]+!\s*)+`)

// 事件关键字表 — 静态只读,归一化(小写去音标)后做子串匹配
var keywordTable = map[string][]string{
	"goal":       {"goal!", "scores", "finds the net", "puts it in", "finishes", "equalises", "equalizes", "makes it"},
	"miss":       {"misses", "wide", "over the bar", "skies it", "sitter", "drags it", "fluffs"},
	"save":       {"attempt saved", "great save", "parries", "denies", "save", "stops", "claims", "palm"},
	"block":      {"attempt blocked", "block"},
	"foul":       {"foul by", "commits a foul"},
	"freekick":   {"wins a free kick", "free kick in"},
	"yc":         {"yellow card", "booked"},
	"rc":         {"red card", "dismissal", "sent off", "second yellow card"},
	"disallowed": {"ball in the net", "flag is up", "ruled out", "disallowed", "out of play before", "offside in the build-up"},
	"ko":         {"kick-off", "kicks off"},
	"ht":         {"half time", "half-time"},
	"ft":         {"full time", "full-time"},
	"delay":      {"delay in match"},
	"resume":     {"delay over"},
	"added":      {"added time", "has announced"},
}

// 换人的两种表层语法
var (
	subExplicitPattern = regexp.MustCompile(`(?i)^substitution,\s*([A-Za-z0-9 .'\-]+?)\s*[:.]\s*([^:]+?)\s+replaces\s+([^:]+?)[.!]?\s*$`)
	subFreePattern     = regexp.MustCompile(`(?i)\b([A-Z][a-z]+(?:\s[A-Z][a-z]+)?)\s+(?:comes on|on)\s+for\s+([A-Z][a-z]+(?:\s[A-Z][a-z]+)?)`)
)

// 牌类/定位球/禁区事件模式
var (
	yellowCardPattern   = regexp.MustCompile(`(?i)\b(?:yellow card|booked)\b.*?\b([A-Z][a-z]+(?:\s[A-Z][a-z]+)?)\b`)
	redCardPattern      = regexp.MustCompile(`(?i)\b(?:red card|sent off|dismissal)\b.*?\b([A-Z][a-z]+(?:\s[A-Z][a-z]+)?)\b`)
	secondYellowPattern = regexp.MustCompile(`(?i)\bsecond yellow card\b.*?\bto\s+([A-Z][a-z]+(?:\s[A-Z][a-z]+)?)\b`)
	cornerPattern       = regexp.MustCompile(`(?i)^corner,\s*([^.!]+)`)
	offsidePattern      = regexp.MustCompile(`(?i)^offside,\s*([^.!]+)`)
)

var quotePattern = regexp.MustCompile(`["“](.+?)["”]`)

// "Goal! Manchester United 2, Chelsea 0. Casemiro (Manchester United) ..."
var goalPattern = regexp.MustCompile(`(?i)goal!\s*[^.]*?\.\s*([A-Z][a-z]+(?:\s[A-Z][a-z]+)?)\s*\(([^)]+)\)`)

var assistPattern = regexp.MustCompile(`(?i)\bassisted by\s+([A-Z][a-z]+(?:\s[A-Z][a-z]+)?)\b`)

// 名字后跟括号队名,出现在行内任意位置 (大小写敏感,避免误抓普通词)
var nameTeamParensPattern = regexp.MustCompile(`\b([A-Z][a-z]+(?:\s[A-Z][a-z]+)?)\s*\(([^)]+)\)`)

// EventClassifier 事件分类器:把归一化后的解说行变成有序事件时间线
type EventClassifier struct {
	matcher *PlayerMatcher
}

// NewEventClassifier 创建事件分类器
func NewEventClassifier(matcher *PlayerMatcher) *EventClassifier {
	if matcher == nil {
		matcher = NewPlayerMatcher(nil, 0)
	}
	return &EventClassifier{matcher: matcher}
}

// parseContext 单次解析的局部状态,调用之间不共享
type parseContext struct {
	matcher            *PlayerMatcher
	roster1, roster2   []string
	aliases1, aliases2 []string
	ourIdx             int
	events             []models.MatchEvent
}

// classifiedLine 一条解说行在分类各环节之间传递的形态
type classifiedLine struct {
	minute   string
	raw      string // 原始行
	stripped string // 去掉分钟前缀和强调前缀后的行
	label    string // 剥离的强调前缀 (可能为空)
	norm     string // stripped 的归一化形式
}

// classificationRules 分类决策表,顺序即优先级,不允许隐式调整:
// 红牌必须先于黄牌,角球/越位要求显式队名前缀,兜底是 LABEL
var classificationRules = []struct {
	name  string
	apply func(p *parseContext, lc *classifiedLine) bool
}{
	{"state_meta", (*parseContext).classifyStateMeta},
	{"substitution", (*parseContext).classifySubstitution},
	{"goal", (*parseContext).classifyGoal},
	{"red_card", (*parseContext).classifyRedCard},
	{"yellow_card", (*parseContext).classifyYellowCard},
	{"corner", (*parseContext).classifyCorner},
	{"offside", (*parseContext).classifyOffside},
	{"disallowed_goal", (*parseContext).classifyDisallowedGoal},
	{"attempt", (*parseContext).classifyAttempt},
	{"label_fallback", (*parseContext).classifyLabelFallback},
}

// ParseEvents 逐行消费归一化解说文本,输出事件时间线
// 同样的输入永远产出同样的事件序列;没有分钟上下文的行不是事件
func (c *EventClassifier) ParseEvents(
	text string,
	team1 string, roster1 []string,
	team2 string, roster2 []string,
	ourTeam string,
) []models.MatchEvent {
	p := &parseContext{
		matcher:  c.matcher,
		roster1:  roster1,
		roster2:  roster2,
		aliases1: BuildTeamAliases(team1),
		aliases2: BuildTeamAliases(team2),
	}

	// 视角球队决定 US/OPP 后缀;未指定时默认第一支球队
	p.ourIdx = 2
	if ourTeam == "" || hasExactAlias(normText(ourTeam), p.aliases1) {
		p.ourIdx = 1
	}

	var curMin string
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		minute := extractMinute(line, curMin)
		if minute == "" {
			// 没有任何分钟上下文,不构成事件,也不改动状态
			continue
		}
		curMin = minute

		core := minutePrefixPattern.ReplaceAllString(line, "")
		lc := &classifiedLine{minute: minute, raw: line, stripped: core}
		if m := labelPrefixPattern.FindString(core); m != "" {
			lc.label = strings.TrimSpace(m)
			lc.stripped = core[len(m):]
		}
		lc.norm = normText(lc.stripped)

		// 引语独立成事件,与该行其余部分的分类无关
		for _, q := range quotePattern.FindAllStringSubmatch(lc.stripped, -1) {
			p.push(minute, models.EventQuote, "", strings.TrimSpace(q[1]))
		}

		for _, rule := range classificationRules {
			if rule.apply(p, lc) {
				break
			}
		}
	}

	return p.events
}

// extractMinute 按优先级解析一行的分钟,都不中时返回 fallback
// 基础分钟超出常规上限的标记不算分钟
func extractMinute(s, fallback string) string {
	if s == "" {
		return fallback
	}
	if m := addedPairPattern.FindStringSubmatch(s); m != nil && minuteInRange(m[1]) {
		return m[1] + "+" + m[2]
	}
	if m := startMinPattern.FindStringSubmatch(s); m != nil && minuteInRange(m[1]) {
		return m[1]
	}
	if m := bareMinutePattern.FindStringSubmatch(s); m != nil && minuteInRange(m[1]) {
		return m[1]
	}
	if m := minTagPattern.FindStringSubmatch(s); m != nil && minuteInRange(m[1]) {
		return m[1]
	}
	return fallback
}

// minuteInRange 去掉补时部分后检查基础分钟
func minuteInRange(minute string) bool {
	base := minute
	if i := strings.Index(minute, "+"); i >= 0 {
		base = minute[:i]
	}
	return plausibleMinute(base)
}

func (p *parseContext) push(minute, etype, player, note string) {
	p.events = append(p.events, models.MatchEvent{
		Minute: minute,
		Type:   etype,
		Player: player,
		Note:   note,
	})
}

// biased 按归属加 US/OPP 后缀
func (p *parseContext) biased(base string, idx int) string {
	if idx == p.ourIdx {
		return base + "_US"
	}
	return base + "_OPP"
}

func containsAny(normalized string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(normalized, k) {
			return true
		}
	}
	return false
}

// teamIdxFromParens 用行内 "Name (Team)" 括号里的队名判断归属
// 括号证据优先于自由文本别名,这个次序是下游校准过的,不能改
func (p *parseContext) teamIdxFromParens(line string) int {
	for _, m := range nameTeamParensPattern.FindAllStringSubmatch(line, -1) {
		tnorm := normText(m[2])
		if containsAlias(tnorm, p.aliases1) {
			return 1
		}
		if containsAlias(tnorm, p.aliases2) {
			return 2
		}
	}
	return 0
}

// ownsEvent 通用归属判定,严格优先级:
// 括号队名 > 全行别名子串 > 名单成员 > 默认第一支球队
func (p *parseContext) ownsEvent(line string) int {
	if idx := p.teamIdxFromParens(line); idx != 0 {
		return idx
	}
	low := normText(line)
	if containsAlias(low, p.aliases1) {
		return 1
	}
	if containsAlias(low, p.aliases2) {
		return 2
	}
	if _, idx := p.matcher.DetectPlayer(line, p.roster1, p.roster2); idx != 0 {
		return idx
	}
	return 1
}

// exactTeamIdx 显式写出的队名 (换人/角球/越位前缀) 按别名精确匹配归属
func (p *parseContext) exactTeamIdx(team string) int {
	nm := normText(strings.TrimSpace(team))
	if hasExactAlias(nm, p.aliases1) {
		return 1
	}
	if hasExactAlias(nm, p.aliases2) {
		return 2
	}
	return 0
}

// classifyStateMeta 开球/半场/全场/中断/恢复/补时公告
// 半场与全场是摘要行:消费掉但不产出事件
func (p *parseContext) classifyStateMeta(lc *classifiedLine) bool {
	if containsAny(lc.norm, keywordTable["ko"]) {
		p.push(lc.minute, models.EventKickOff, "", lc.raw)
		return true
	}
	if containsAny(lc.norm, keywordTable["ht"]) || containsAny(lc.norm, keywordTable["ft"]) {
		return true
	}
	if containsAny(lc.norm, keywordTable["delay"]) {
		p.push(lc.minute, models.EventDelay, "", lc.raw)
		return true
	}
	if containsAny(lc.norm, keywordTable["resume"]) {
		p.push(lc.minute, models.EventResume, "", lc.raw)
		return true
	}
	if containsAny(lc.norm, keywordTable["added"]) {
		p.push(lc.minute, models.EventAddedTime, "", lc.raw)
		return true
	}
	return false
}

// classifySubstitution 两种表层语法:
// (a) "Substitution, <Team>. <On> replaces <Off>." — 队名直接给出
// (b) "<On> (comes on|on) for <Off>" — 靠名单成员推断归属
func (p *parseContext) classifySubstitution(lc *classifiedLine) bool {
	if m := subExplicitPattern.FindStringSubmatch(lc.stripped); m != nil {
		on := strings.TrimSpace(m[2])
		off := strings.TrimSpace(m[3])
		idx := p.exactTeamIdx(m[1])
		p.push(lc.minute, p.biased("SUB", idx), on, on+" on for "+off+". "+lc.stripped)
		return true
	}
	if m := subFreePattern.FindStringSubmatch(lc.stripped); m != nil {
		on := strings.TrimSpace(m[1])
		off := strings.TrimSpace(m[2])
		_, idx := p.matcher.DetectPlayer(lc.stripped, p.roster1, p.roster2)
		p.push(lc.minute, p.biased("SUB", idx), on, on+" on for "+off+". "+lc.stripped)
		return true
	}
	return false
}

// classifyGoal 进球:先尝试 "Goal! … . <Scorer> (<Team>)" 结构化抽取,
// 括号队名直接定归属;失败走通用归属判定。"Assisted by" 只作参考,
// 不单独成字段 (原文本来就在 note 里)
func (p *parseContext) classifyGoal(lc *classifiedLine) bool {
	if !containsAny(lc.norm, keywordTable["goal"]) {
		return false
	}
	scorer, idx := p.parseGoal(lc.stripped)
	if idx == 0 {
		idx = p.ownsEvent(lc.stripped)
	}
	etype := models.EventOppGoal
	if idx == p.ourIdx {
		etype = models.EventOurGoal
	}
	player := scorer
	if player == "" {
		player, _ = p.matcher.DetectPlayer(lc.stripped, p.roster1, p.roster2)
	}
	if m := assistPattern.FindStringSubmatch(lc.stripped); m != nil {
		logger.Debugf("goal assist credited to %s", m[1])
	}
	p.push(lc.minute, etype, player, lc.stripped)
	return true
}

// parseGoal 结构化进球抽取,返回射手与括号队名对应的球队序号 (0 = 未判定)
func (p *parseContext) parseGoal(line string) (string, int) {
	m := goalPattern.FindStringSubmatch(line)
	if m == nil {
		return "", 0
	}
	scorer := strings.TrimSpace(m[1])
	tnorm := normText(m[2])
	if containsAlias(tnorm, p.aliases1) {
		return scorer, 1
	}
	if containsAlias(tnorm, p.aliases2) {
		return scorer, 2
	}
	return scorer, 0
}

// classifyRedCard 直红或两黄变一红
// 这里认领过的行绝不会再被黄牌规则认领
func (p *parseContext) classifyRedCard(lc *classifiedLine) bool {
	if !containsAny(lc.norm, keywordTable["rc"]) {
		return false
	}
	name := ""
	if m := secondYellowPattern.FindStringSubmatch(lc.stripped); m != nil {
		name = m[1]
	} else if m := redCardPattern.FindStringSubmatch(lc.stripped); m != nil {
		name = m[1]
	}
	idx := p.teamIdxFromParens(lc.stripped)
	if idx == 0 {
		idx = p.ownsEvent(lc.stripped)
	}
	p.push(lc.minute, p.biased("RC", idx), name, lc.stripped)
	return true
}

// classifyYellowCard 黄牌;"second yellow card" 已被红牌规则处理
func (p *parseContext) classifyYellowCard(lc *classifiedLine) bool {
	if !containsAny(lc.norm, keywordTable["yc"]) {
		return false
	}
	if strings.Contains(lc.norm, "second yellow card") {
		return true
	}
	name := ""
	if m := nameTeamParensPattern.FindStringSubmatch(lc.stripped); m != nil {
		name = m[1]
	} else if m := yellowCardPattern.FindStringSubmatch(lc.stripped); m != nil {
		name = m[1]
	}
	idx := p.teamIdxFromParens(lc.stripped)
	if idx == 0 {
		idx = p.ownsEvent(lc.stripped)
	}
	p.push(lc.minute, p.biased("YC", idx), name, lc.stripped)
	return true
}

// classifyCorner 只认 "Corner, <Team>" 的显式队名前缀,没有回退
func (p *parseContext) classifyCorner(lc *classifiedLine) bool {
	m := cornerPattern.FindStringSubmatch(lc.stripped)
	if m == nil {
		return false
	}
	idx := p.exactTeamIdx(m[1])
	p.push(lc.minute, p.biased("CORNER", idx), "", lc.stripped)
	return true
}

// classifyOffside 只认 "Offside, <Team>" 的显式队名前缀,没有回退
func (p *parseContext) classifyOffside(lc *classifiedLine) bool {
	m := offsidePattern.FindStringSubmatch(lc.stripped)
	if m == nil {
		return false
	}
	idx := p.exactTeamIdx(m[1])
	p.push(lc.minute, p.biased("OFFSIDE", idx), "", lc.stripped)
	return true
}

// classifyDisallowedGoal 进球无效的叙述 (旗子举起/被吹掉等)
func (p *parseContext) classifyDisallowedGoal(lc *classifiedLine) bool {
	if !containsAny(lc.norm, keywordTable["disallowed"]) {
		return false
	}
	idx := p.ownsEvent(lc.stripped)
	p.push(lc.minute, p.biased("DISALLOWED_GOAL", idx), "", lc.stripped)
	return true
}

// classifyAttempt 剩余的尝试类事件:save/block/miss/foul/freekick
// miss 重映射为大机会错失,其余加 US/OPP 后缀;剥离过的强调前缀
// 以方括号形式拼回 note
func (p *parseContext) classifyAttempt(lc *classifiedLine) bool {
	base := ""
	switch {
	case containsAny(lc.norm, keywordTable["save"]):
		base = "SAVE"
	case containsAny(lc.norm, keywordTable["block"]):
		base = "BLOCK"
	case containsAny(lc.norm, keywordTable["miss"]):
		base = "MISS"
	case containsAny(lc.norm, keywordTable["foul"]):
		base = "FOUL"
	case containsAny(lc.norm, keywordTable["freekick"]):
		base = "FREEKICK"
	}
	if base == "" {
		return false
	}

	player, idx := p.matcher.DetectPlayer(lc.stripped, p.roster1, p.roster2)
	if idx == 0 {
		idx = p.ownsEvent(lc.stripped)
	}

	etype := p.biased(base, idx)
	if base == "MISS" {
		etype = models.EventOppBigChanceMissed
		if idx == p.ourIdx {
			etype = models.EventOurBigChanceMissed
		}
	}

	note := lc.stripped
	if lc.label != "" {
		note = "[" + lc.label + "] " + lc.stripped
	}
	p.push(lc.minute, etype, player, note)
	return true
}

// classifyLabelFallback 什么都没认领但剥离过强调前缀时,保留为 LABEL
func (p *parseContext) classifyLabelFallback(lc *classifiedLine) bool {
	if lc.label == "" {
		return false
	}
	p.push(lc.minute, models.EventLabel, "", lc.stripped)
	return true
}

package services

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// DefaultFuzzyThreshold 模糊匹配接受阈值 (0-100)
const DefaultFuzzyThreshold = 86

// SimilarityScorer 字符串相似度打分能力,0-100
// 分类器只依赖这个窄接口,换算法不影响分类逻辑
type SimilarityScorer interface {
	Score(a, b string) int
}

// tokenSortScorer 词序无关的相似度:两边都按词排序后比较编辑距离相似度
type tokenSortScorer struct {
	lev *metrics.Levenshtein
}

// NewTokenSortScorer 创建默认打分器
func NewTokenSortScorer() SimilarityScorer {
	lev := metrics.NewLevenshtein()
	lev.CaseSensitive = false
	return &tokenSortScorer{lev: lev}
}

func sortTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

func (t *tokenSortScorer) Score(a, b string) int {
	sim := strutil.Similarity(sortTokens(a), sortTokens(b), t.lev)
	return int(math.Round(sim * 100))
}

// 原始大小写下的大写词 token:一个或两个连续的首字母大写单词
var capitalizedTokenPattern = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s[A-Z][a-z]+)?\b`)

// PlayerMatcher 把文本中出现的名字解析到名单条目
type PlayerMatcher struct {
	scorer    SimilarityScorer
	threshold int
}

// NewPlayerMatcher 创建球员匹配器;scorer 为 nil 时用默认打分器,
// threshold <= 0 时用默认阈值
func NewPlayerMatcher(scorer SimilarityScorer, threshold int) *PlayerMatcher {
	if scorer == nil {
		scorer = NewTokenSortScorer()
	}
	if threshold <= 0 {
		threshold = DefaultFuzzyThreshold
	}
	return &PlayerMatcher{scorer: scorer, threshold: threshold}
}

// FuzzyIn 在名单里找与 name 最相似的条目,达到阈值才返回,否则返回空串
func (pm *PlayerMatcher) FuzzyIn(name string, roster []string) string {
	if name == "" || len(roster) == 0 {
		return ""
	}
	best := ""
	bestScore := -1
	target := stripAccents(name)
	for _, p := range roster {
		score := pm.scorer.Score(target, stripAccents(p))
		if score > bestScore {
			bestScore = score
			best = p
		}
	}
	if bestScore >= pm.threshold {
		return best
	}
	return ""
}

// DetectPlayer 两级解析:先做名单全名在归一化行文本里的精确子串匹配
// (先查名单一再查名单二),不中再抽取原始大小写下的大写词 token 做模糊
// 匹配。都不中返回 ("", 0)
func (pm *PlayerMatcher) DetectPlayer(line string, roster1, roster2 []string) (string, int) {
	low := normText(line)
	for idx, roster := range [][]string{roster1, roster2} {
		for _, nm := range roster {
			if strings.Contains(low, normText(nm)) {
				return nm, idx + 1
			}
		}
	}

	for _, token := range capitalizedTokenPattern.FindAllString(line, -1) {
		if pm.FuzzyIn(token, roster1) != "" {
			return token, 1
		}
		if pm.FuzzyIn(token, roster2) != "" {
			return token, 2
		}
	}
	return "", 0
}

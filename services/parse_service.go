package services

import (
	"strings"
	"time"

	"commentary-service/logger"
	"commentary-service/models"
)

// ParseService 文本到事件流水线的编排:
// 切分 -> 阵容(带回退) -> 归一化 -> 分类 -> 记忆 -> 统计 -> 语气
// 纯函数式,没有跨调用的可变状态,可以并发使用
type ParseService struct {
	classifier *EventClassifier
}

// NewParseService 创建解析服务;threshold 是模糊匹配阈值 (<=0 用默认值)
func NewParseService(threshold int) *ParseService {
	matcher := NewPlayerMatcher(NewTokenSortScorer(), threshold)
	return &ParseService{classifier: NewEventClassifier(matcher)}
}

// ParseReport 把一份原始解说文档解析成完整比赛报告
// 阵容解析失败时先用解说区回退抽取重试;回退也不行则返回最初的
// *LineupResolutionError,不产出部分时间线
func (s *ParseService) ParseReport(doc models.CommentaryDocument) (*models.MatchReport, error) {
	contextLines, lineupLines, commentaryLines := SplitSections(doc.Text)

	lineups, err := ParseLineups(lineupLines)
	if err != nil {
		logger.Debugf("front-matter lineups failed for %s, trying commentary extraction", doc.MatchID)
		candidates := ExtractLineupsFromCommentary(commentaryLines)
		if len(candidates) == 0 {
			return nil, err
		}
		fallback, ferr := ParseLineups(candidates)
		if ferr != nil {
			// 回退只是第二数据源,不掩盖最初的失败
			return nil, err
		}
		lineups = fallback
	}

	ourTeam := doc.OurTeam
	if ourTeam == "" {
		ourTeam = lineups.Team1
	}

	// 只对解说区做分钟归一化,开场白保持原样
	commentaryText := CleanText(strings.Join(commentaryLines, "\n"))

	events := s.classifier.ParseEvents(
		commentaryText,
		lineups.Team1, lineups.Roster1,
		lineups.Team2, lineups.Roster2,
		ourTeam,
	)

	memory := BuildMemory(doc.MatchID, ourTeam, lineups, events, contextLines)
	stats := ComputeStats(memory)
	mode := SelectMode(memory, stats)

	return &models.MatchReport{
		MatchID: doc.MatchID,
		Team1:   lineups.Team1,
		Team2:   lineups.Team2,
		OurTeam: ourTeam,
		Rosters: map[string][]string{
			lineups.Team1: lineups.Roster1,
			lineups.Team2: lineups.Roster2,
		},
		Context:  contextLines,
		Events:   events,
		Memory:   memory,
		Stats:    stats,
		BiasMode: mode,
		ParsedAt: time.Now().UTC(),
	}, nil
}

// MergeTeamStats 把外部提供的球队统计合并进比赛记忆,不参与解析本身
func MergeTeamStats(memory *models.MatchMemory, payload *models.TeamStatsPayload) {
	if memory == nil || payload == nil {
		return
	}
	memory.TeamStats = payload
}

package services

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"commentary-service/database"
	"commentary-service/models"
)

// MatchStore 比赛解析结果的持久化
type MatchStore struct {
	db *sql.DB
}

func NewMatchStore(db *sql.DB) *MatchStore {
	return &MatchStore{db: db}
}

// SaveDocument 保存原始解说文档
func (s *MatchStore) SaveDocument(doc models.CommentaryDocument) error {
	query := `
		INSERT INTO commentary_documents (match_id, our_team, source, raw_text, received_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	receivedAt := doc.ReceivedAt
	if receivedAt.IsZero() {
		receivedAt = time.Now()
	}

	var ourTeam, source *string
	if doc.OurTeam != "" {
		ourTeam = &doc.OurTeam
	}
	if doc.Source != "" {
		source = &doc.Source
	}

	_, err := s.db.Exec(query, doc.MatchID, ourTeam, source, doc.Text, receivedAt)
	return err
}

// SaveReport 保存一次完整解析:比赛行、事件时间线与记忆
// 重复解析同一场比赛时整体覆盖,保证事件顺序始终等于源文本顺序
func (s *MatchStore) SaveReport(report *models.MatchReport) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	scoreline, biasMode := "", report.BiasMode
	if report.Stats != nil {
		scoreline = report.Stats.Scoreline
	}

	_, err = tx.Exec(`
		INSERT INTO matches (match_id, team1, team2, our_team, scoreline, bias_mode, event_count, parsed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (match_id) DO UPDATE SET
			team1 = EXCLUDED.team1,
			team2 = EXCLUDED.team2,
			our_team = EXCLUDED.our_team,
			scoreline = EXCLUDED.scoreline,
			bias_mode = EXCLUDED.bias_mode,
			event_count = EXCLUDED.event_count,
			parsed_at = EXCLUDED.parsed_at,
			updated_at = CURRENT_TIMESTAMP
	`, report.MatchID, report.Team1, report.Team2, report.OurTeam, scoreline, biasMode, len(report.Events), report.ParsedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert match: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM match_events WHERE match_id = $1`, report.MatchID); err != nil {
		return fmt.Errorf("failed to clear match events: %w", err)
	}

	for seq, e := range report.Events {
		var player, note *string
		if e.Player != "" {
			p := e.Player
			player = &p
		}
		if e.Note != "" {
			n := e.Note
			note = &n
		}
		_, err := tx.Exec(`
			INSERT INTO match_events (match_id, seq, minute, event_type, player, note)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, report.MatchID, seq, e.Minute, e.Type, player, note)
		if err != nil {
			return fmt.Errorf("failed to insert event %d: %w", seq, err)
		}
	}

	if report.Memory != nil {
		memoryJSON, err := json.Marshal(report.Memory)
		if err != nil {
			return fmt.Errorf("failed to marshal memory: %w", err)
		}
		_, err = tx.Exec(`
			INSERT INTO match_memories (match_id, memory)
			VALUES ($1, $2)
			ON CONFLICT (match_id) DO UPDATE SET
				memory = EXCLUDED.memory,
				updated_at = CURRENT_TIMESTAMP
		`, report.MatchID, memoryJSON)
		if err != nil {
			return fmt.Errorf("failed to upsert memory: %w", err)
		}
	}

	return tx.Commit()
}

// ListMatches 返回最近解析的比赛列表
func (s *MatchStore) ListMatches(limit int) ([]database.Match, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`
		SELECT id, match_id, team1, team2, our_team, scoreline, bias_mode, event_count, parsed_at, created_at, updated_at
		FROM matches
		ORDER BY parsed_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []database.Match
	for rows.Next() {
		var m database.Match
		if err := rows.Scan(&m.ID, &m.MatchID, &m.Team1, &m.Team2, &m.OurTeam, &m.Scoreline, &m.BiasMode, &m.EventCount, &m.ParsedAt, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// GetMatch 按 match_id 查询单场比赛
func (s *MatchStore) GetMatch(matchID string) (*database.Match, error) {
	var m database.Match
	err := s.db.QueryRow(`
		SELECT id, match_id, team1, team2, our_team, scoreline, bias_mode, event_count, parsed_at, created_at, updated_at
		FROM matches
		WHERE match_id = $1
	`, matchID).Scan(&m.ID, &m.MatchID, &m.Team1, &m.Team2, &m.OurTeam, &m.Scoreline, &m.BiasMode, &m.EventCount, &m.ParsedAt, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetEvents 按源文本顺序返回一场比赛的事件时间线
func (s *MatchStore) GetEvents(matchID string) ([]models.MatchEvent, error) {
	rows, err := s.db.Query(`
		SELECT minute, event_type, player, note
		FROM match_events
		WHERE match_id = $1
		ORDER BY seq ASC
	`, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.MatchEvent
	for rows.Next() {
		var e models.MatchEvent
		var player, note sql.NullString
		if err := rows.Scan(&e.Minute, &e.Type, &player, &note); err != nil {
			return nil, err
		}
		e.Player = player.String
		e.Note = note.String
		events = append(events, e)
	}
	return events, rows.Err()
}

// GetMemory 读取一场比赛的记忆
func (s *MatchStore) GetMemory(matchID string) (*models.MatchMemory, error) {
	var raw []byte
	err := s.db.QueryRow(`SELECT memory FROM match_memories WHERE match_id = $1`, matchID).Scan(&raw)
	if err != nil {
		return nil, err
	}
	var memory models.MatchMemory
	if err := json.Unmarshal(raw, &memory); err != nil {
		return nil, fmt.Errorf("failed to unmarshal memory: %w", err)
	}
	return &memory, nil
}

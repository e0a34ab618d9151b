package database

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// Connect 连接到数据库
func Connect(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// 测试连接
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// 设置连接池
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return db, nil
}

// Migrate 运行数据库迁移
func Migrate(db *sql.DB) error {
	migrations := []string{
		// 原始解说文档表
		`CREATE TABLE IF NOT EXISTS commentary_documents (
			id BIGSERIAL PRIMARY KEY,
			match_id VARCHAR(100) NOT NULL,
			our_team VARCHAR(100),
			source VARCHAR(50),
			raw_text TEXT NOT NULL,
			received_at TIMESTAMP NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_commentary_documents_match_id ON commentary_documents(match_id)`,
		`CREATE INDEX IF NOT EXISTS idx_commentary_documents_received_at ON commentary_documents(received_at)`,

		// 比赛表
		`CREATE TABLE IF NOT EXISTS matches (
			id BIGSERIAL PRIMARY KEY,
			match_id VARCHAR(100) UNIQUE NOT NULL,
			team1 VARCHAR(100) NOT NULL,
			team2 VARCHAR(100) NOT NULL,
			our_team VARCHAR(100) NOT NULL,
			scoreline VARCHAR(20),
			bias_mode VARCHAR(20),
			event_count INTEGER DEFAULT 0,
			parsed_at TIMESTAMP NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_matches_match_id ON matches(match_id)`,

		// 时间线事件表 (seq 保持事件的源文本顺序)
		`CREATE TABLE IF NOT EXISTS match_events (
			id BIGSERIAL PRIMARY KEY,
			match_id VARCHAR(100) NOT NULL,
			seq INTEGER NOT NULL,
			minute VARCHAR(10) NOT NULL,
			event_type VARCHAR(50) NOT NULL,
			player VARCHAR(100),
			note TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_match_events_match_id ON match_events(match_id)`,
		`CREATE INDEX IF NOT EXISTS idx_match_events_event_type ON match_events(event_type)`,

		// 比赛记忆表 (JSON 整体存储)
		`CREATE TABLE IF NOT EXISTS match_memories (
			id BIGSERIAL PRIMARY KEY,
			match_id VARCHAR(100) UNIQUE NOT NULL,
			memory JSONB NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_match_memories_match_id ON match_memories(match_id)`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

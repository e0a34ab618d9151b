package services

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"commentary-service/livefeed"
	"commentary-service/logger"
	"commentary-service/models"
)

// FeedPoller 定期从解说数据源 REST API 拉取进行中比赛的文档
// 与 MQTT 推送投递到同一个 Topic,推送断连或丢包时由轮询兜底
type FeedPoller struct {
	client       *livefeed.Client
	broker       MessageBroker
	pollInterval time.Duration
	stopChan     chan struct{}
	running      bool

	mu       sync.Mutex
	lastSeen map[string]int64 // matchID -> 已投递文档的 updated_at
}

// NewFeedPoller 创建轮询服务
func NewFeedPoller(client *livefeed.Client, broker MessageBroker, pollIntervalSeconds int) *FeedPoller {
	if pollIntervalSeconds <= 0 {
		pollIntervalSeconds = 60 // 默认 60 秒
	}

	return &FeedPoller{
		client:       client,
		broker:       broker,
		pollInterval: time.Duration(pollIntervalSeconds) * time.Second,
		stopChan:     make(chan struct{}),
		lastSeen:     make(map[string]int64),
	}
}

// Start 启动轮询服务
func (s *FeedPoller) Start() error {
	if s.running {
		return fmt.Errorf("feed poller already running")
	}

	s.running = true

	// 立即执行一次轮询
	go func() {
		logger.Println("[FeedPoller] Starting feed poller...")
		if err := s.pollOnce(); err != nil {
			logger.Errorf("[FeedPoller] Initial poll failed: %v", err)
		}

		// 定期轮询
		ticker := time.NewTicker(s.pollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := s.pollOnce(); err != nil {
					logger.Errorf("[FeedPoller] Poll failed: %v", err)
				}
			case <-s.stopChan:
				logger.Println("[FeedPoller] Stopping feed poller...")
				return
			}
		}
	}()

	return nil
}

// Stop 停止轮询服务
func (s *FeedPoller) Stop() {
	if !s.running {
		return
	}

	close(s.stopChan)
	s.running = false
}

// pollOnce 拉取一轮:列出有解说的比赛,对未完场的比赛取全文
func (s *FeedPoller) pollOnce() error {
	matches, err := s.client.ListMatches()
	if err != nil {
		return fmt.Errorf("failed to list matches: %w", err)
	}

	fetched := 0
	for _, match := range matches {
		if match.Completed {
			continue
		}
		if err := s.fetchDocument(match.MatchID); err != nil {
			logger.Errorf("[FeedPoller] Fetch failed for %s: %v", match.MatchID, err)
			continue
		}
		fetched++
	}

	logger.Printf("[FeedPoller] Poll complete: %d matches listed, %d documents fetched", len(matches), fetched)
	return nil
}

// fetchDocument 取单场文档并投递到消息代理
// updated_at 没有前进的文档不重复投递
func (s *FeedPoller) fetchDocument(matchID string) error {
	feedDoc, err := s.client.GetDocument(matchID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	last, seen := s.lastSeen[matchID]
	if seen && feedDoc.UpdatedAt <= last {
		s.mu.Unlock()
		return nil
	}
	s.lastSeen[matchID] = feedDoc.UpdatedAt
	s.mu.Unlock()

	doc := models.CommentaryDocument{
		MatchID:    feedDoc.MatchID,
		Text:       feedDoc.Text,
		Source:     "livefeed",
		ReceivedAt: time.Unix(feedDoc.UpdatedAt, 0).UTC(),
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document for %s: %w", matchID, err)
	}

	return s.broker.Produce(BrokerMessage{
		Topic: TopicDocument,
		Key:   doc.MatchID,
		Value: payload,
	})
}

package services

import (
	"encoding/json"
	"errors"
	"time"

	"commentary-service/config"
	"commentary-service/logger"
	"commentary-service/models"
)

// MessageBroadcaster 广播接口,避免对 web 包的循环依赖
type MessageBroadcaster interface {
	Broadcast(data map[string]interface{})
}

// CommentaryProcessor 从 Broker 消费解说文档,执行解析流水线,
// 持久化结果并广播给 WebSocket 客户端
type CommentaryProcessor struct {
	config      *config.Config
	broker      MessageBroker
	broadcaster MessageBroadcaster
	store       *MatchStore
	parser      *ParseService
	done        chan bool
}

// NewCommentaryProcessor 创建 CommentaryProcessor 实例
func NewCommentaryProcessor(cfg *config.Config, broker MessageBroker, broadcaster MessageBroadcaster, store *MatchStore, parser *ParseService) *CommentaryProcessor {
	return &CommentaryProcessor{
		config:      cfg,
		broker:      broker,
		broadcaster: broadcaster,
		store:       store,
		parser:      parser,
		done:        make(chan bool),
	}
}

// StartConsumer 订阅文档 Topic 并开始处理
func (p *CommentaryProcessor) StartConsumer() error {
	msgs, err := p.broker.Consume(TopicDocument)
	if err != nil {
		return err
	}

	logger.Printf("CommentaryProcessor started for topic: %s", TopicDocument)

	go p.handleMessages(msgs)

	return nil
}

// handleMessages 循环处理来自 Broker 的消息
func (p *CommentaryProcessor) handleMessages(msgs <-chan BrokerMessage) {
	for msg := range msgs {
		select {
		case <-p.done:
			return
		default:
		}
		p.processDocument(msg)
	}
}

// processDocument 处理单份解说文档
// 阵容识别失败是致命错误:记录并丢弃该文档,不产出部分时间线;
// 其他脏行在解析里就被静默跳过了
func (p *CommentaryProcessor) processDocument(msg BrokerMessage) {
	var doc models.CommentaryDocument
	if err := json.Unmarshal(msg.Value, &doc); err != nil {
		logger.Errorf("[Processor] dropping malformed message on %s: %v", msg.Topic, err)
		return
	}
	if doc.ReceivedAt.IsZero() {
		doc.ReceivedAt = time.Now()
	}

	if doc.OurTeam == "" {
		doc.OurTeam = p.config.OurTeam
	}

	if p.store != nil {
		if err := p.store.SaveDocument(doc); err != nil {
			logger.Errorf("[Processor] failed to save document for %s: %v", doc.MatchID, err)
		}
	}

	report, err := p.parser.ParseReport(doc)
	if err != nil {
		var lineupErr *LineupResolutionError
		if errors.As(err, &lineupErr) {
			logger.Errorf("[Processor] lineup resolution failed for %s: %v", doc.MatchID, err)
		} else {
			logger.Errorf("[Processor] parse failed for %s: %v", doc.MatchID, err)
		}
		return
	}

	if p.store != nil {
		if err := p.store.SaveReport(report); err != nil {
			logger.Errorf("[Processor] failed to save report for %s: %v", report.MatchID, err)
		}
	}

	logger.Printf("[Processor] parsed %s: %s vs %s, %d events",
		report.MatchID, report.Team1, report.Team2, len(report.Events))

	if p.broadcaster != nil {
		p.broadcaster.Broadcast(map[string]interface{}{
			"type":      "match_parsed",
			"match_id":  report.MatchID,
			"team1":     report.Team1,
			"team2":     report.Team2,
			"our_team":  report.OurTeam,
			"scoreline": report.Stats.Scoreline,
			"events":    report.Events,
		})
	}
}

// Stop 停止处理
func (p *CommentaryProcessor) Stop() {
	close(p.done)
}

package services

import (
	"fmt"
)

// BrokerMessage 在 Broker 中传输的消息
type BrokerMessage struct {
	Topic string
	Key   string // 一般是 MatchID
	Value []byte // JSON 编码的解说文档
}

// MessageBroker 消息队列抽象,把摄入端和处理端解耦
type MessageBroker interface {
	// Produce 发送消息到指定 Topic
	Produce(msg BrokerMessage) error
	// Consume 订阅指定 Topic,返回消息通道
	Consume(topic string) (<-chan BrokerMessage, error)
	// Close 关闭 Broker
	Close() error
}

// GetTopicName 根据文档类型得到 Topic 名称
func GetTopicName(documentType string) string {
	return fmt.Sprintf("commentary-%s", documentType)
}

// TopicDocument 完整解说文档的 Topic
var TopicDocument = GetTopicName("document")

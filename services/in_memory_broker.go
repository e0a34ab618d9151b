package services

import (
	"sync"

	"commentary-service/logger"
)

// InMemoryBroker MessageBroker 的内存实现
// 单进程部署时代替外部消息队列;通道满了直接丢弃,模拟背压
type InMemoryBroker struct {
	consumers map[string][]chan BrokerMessage
	mu        sync.RWMutex
}

// NewInMemoryBroker 创建 InMemoryBroker 实例
func NewInMemoryBroker() *InMemoryBroker {
	return &InMemoryBroker{
		consumers: make(map[string][]chan BrokerMessage),
	}
}

// Produce 实现 MessageBroker 接口
func (b *InMemoryBroker) Produce(msg BrokerMessage) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	consumerChans, ok := b.consumers[msg.Topic]
	if !ok || len(consumerChans) == 0 {
		logger.Printf("[InMemoryBroker] topic %s has no active consumers, message dropped", msg.Topic)
		return nil
	}

	// 消息只交给第一个消费者 (简化的 consumer group 行为)
	select {
	case consumerChans[0] <- msg:
		logger.Debugf("[InMemoryBroker] produced message to topic %s (key=%s)", msg.Topic, msg.Key)
	default:
		logger.Printf("[InMemoryBroker] topic %s consumer channel full, message dropped", msg.Topic)
	}

	return nil
}

// Consume 实现 MessageBroker 接口
func (b *InMemoryBroker) Consume(topic string) (<-chan BrokerMessage, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	consumerChan := make(chan BrokerMessage, 1000)
	b.consumers[topic] = append(b.consumers[topic], consumerChan)

	logger.Printf("[InMemoryBroker] consumer subscribed to topic %s (total: %d)", topic, len(b.consumers[topic]))

	return consumerChan, nil
}

// Close 实现 MessageBroker 接口
func (b *InMemoryBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, chans := range b.consumers {
		for _, ch := range chans {
			close(ch)
		}
	}
	b.consumers = make(map[string][]chan BrokerMessage)

	logger.Println("[InMemoryBroker] closed all channels")
	return nil
}

package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/streadway/amqp"

	"commentary-service/config"
	"commentary-service/logger"
	"commentary-service/models"
)

// AMQPConsumer 从 AMQP 队列消费解说文档并转发到内部 Broker
// 队列里的消息体是 JSON 编码的 CommentaryDocument
type AMQPConsumer struct {
	config  *config.Config
	broker  MessageBroker
	conn    *amqp.Connection
	channel *amqp.Channel
	done    chan bool
}

// NewAMQPConsumer 创建 AMQPConsumer 实例
func NewAMQPConsumer(cfg *config.Config, broker MessageBroker) *AMQPConsumer {
	return &AMQPConsumer{
		config: cfg,
		broker: broker,
		done:   make(chan bool),
	}
}

// Start 建立连接、声明队列并开始消费;连接断开后自动重连
func (c *AMQPConsumer) Start() error {
	msgs, err := c.connectAndConsume()
	if err != nil {
		return err
	}

	go c.monitorConnection()
	go c.handleDeliveries(msgs)

	logger.Printf("[AMQP] consumer started (queue: %s)", c.config.AMQPQueue)
	return nil
}

// connectAndConsume 连接并开始消费,返回消息通道
func (c *AMQPConsumer) connectAndConsume() (<-chan amqp.Delivery, error) {
	conn, err := amqp.Dial(c.config.AMQPURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to AMQP: %w", err)
	}
	c.conn = conn

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	c.channel = channel

	queue, err := channel.QueueDeclare(
		c.config.AMQPQueue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	msgs, err := channel.Consume(
		queue.Name,
		"",   // consumer tag
		true, // autoAck
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to start consuming: %w", err)
	}

	logger.Printf("[AMQP] connected, consuming queue %s", queue.Name)
	return msgs, nil
}

// monitorConnection 监控连接状态,断开后指数退避重连
func (c *AMQPConsumer) monitorConnection() {
	delay := 1 * time.Second
	maxDelay := 60 * time.Second

	for {
		closeChan := make(chan *amqp.Error)
		c.conn.NotifyClose(closeChan)

		select {
		case <-c.done:
			return
		case amqpErr := <-closeChan:
			if amqpErr != nil {
				logger.Errorf("[AMQP] connection lost: %v", amqpErr)
			}
		}

		for {
			select {
			case <-c.done:
				return
			default:
			}

			logger.Printf("[AMQP] reconnecting in %v...", delay)
			time.Sleep(delay)

			msgs, err := c.connectAndConsume()
			if err == nil {
				delay = 1 * time.Second
				go c.handleDeliveries(msgs)
				break
			}

			logger.Errorf("[AMQP] reconnect failed: %v", err)
			delay *= 2
			if delay > maxDelay {
				delay = maxDelay
			}
		}
	}
}

// handleDeliveries 把队列消息转发到内部 Broker
// 不是合法解说文档的消息直接丢弃,不中断消费
func (c *AMQPConsumer) handleDeliveries(msgs <-chan amqp.Delivery) {
	for msg := range msgs {
		var doc models.CommentaryDocument
		if err := json.Unmarshal(msg.Body, &doc); err != nil {
			logger.Errorf("[AMQP] dropping malformed document: %v", err)
			continue
		}
		if doc.MatchID == "" || doc.Text == "" {
			logger.Errorf("[AMQP] dropping document without match_id or text")
			continue
		}
		if doc.Source == "" {
			doc.Source = "amqp"
		}
		body, err := json.Marshal(doc)
		if err != nil {
			continue
		}
		c.broker.Produce(BrokerMessage{
			Topic: TopicDocument,
			Key:   doc.MatchID,
			Value: body,
		})
	}
}

// Stop 停止消费并关闭连接
func (c *AMQPConsumer) Stop() {
	close(c.done)
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		c.conn.Close()
	}
	logger.Println("[AMQP] consumer stopped")
}

package main

import (
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"commentary-service/config"
	"commentary-service/database"
	"commentary-service/livefeed"
	"commentary-service/models"
	"commentary-service/services"
	"commentary-service/web"
)

func main() {
	log.Println("Starting Commentary Service...")

	// 加载配置
	cfg := config.Load()

	// 连接数据库
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// 运行数据库迁移
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Println("Database connected and migrated")

	// 创建WebSocket Hub
	wsHub := web.NewHub()
	go wsHub.Run()

	// 创建内部消息代理和解析服务
	broker := services.NewInMemoryBroker()
	parser := services.NewParseService(cfg.FuzzyThreshold)
	store := services.NewMatchStore(db)

	// 启动文档处理器(消费代理上的解说文档)
	processor := services.NewCommentaryProcessor(cfg, broker, wsHub, store, parser)
	if err := processor.StartConsumer(); err != nil {
		log.Fatalf("Failed to start commentary processor: %v", err)
	}

	log.Println("Commentary processor started")

	// 启动AMQP消费者(未配置则跳过)
	var amqpConsumer *services.AMQPConsumer
	if cfg.AMQPURL != "" {
		amqpConsumer = services.NewAMQPConsumer(cfg, broker)
		go func() {
			if err := amqpConsumer.Start(); err != nil {
				log.Fatalf("AMQP consumer error: %v", err)
			}
		}()
		log.Println("AMQP consumer started")
	} else {
		log.Println("AMQP_URL not set, AMQP ingestion disabled")
	}

	// 启动实时解说推送客户端(未配置则跳过)
	var mqttClient *livefeed.MQTTClient
	if cfg.FeedMQTTBroker != "" {
		mqttClient = livefeed.NewMQTTClientWithBroker(cfg.FeedMQTTBroker, "commentary-service", cfg.FeedAPIToken)
		mqttClient.OnDocument(func(feedDoc livefeed.FeedDocument) {
			doc := models.CommentaryDocument{
				MatchID:    feedDoc.MatchID,
				Text:       feedDoc.Text,
				Source:     "livefeed",
				ReceivedAt: time.Unix(feedDoc.UpdatedAt, 0).UTC(),
			}
			payload, err := json.Marshal(doc)
			if err != nil {
				log.Printf("Failed to marshal feed document %s: %v", feedDoc.MatchID, err)
				return
			}
			if err := broker.Produce(services.BrokerMessage{
				Topic: services.TopicDocument,
				Key:   doc.MatchID,
				Value: payload,
			}); err != nil {
				log.Printf("Failed to enqueue feed document %s: %v", doc.MatchID, err)
			}
		})

		go func() {
			if err := mqttClient.Connect(); err != nil {
				log.Printf("Live feed MQTT connect failed: %v", err)
				return
			}
			if err := mqttClient.SubscribeCommentary(cfg.FeedMQTTTopic); err != nil {
				log.Printf("Live feed subscribe failed: %v", err)
			}
		}()
		log.Println("Live feed MQTT client started")
	} else {
		log.Println("FEED_MQTT_BROKER not set, live feed push disabled")
	}

	// 启动实时解说REST轮询(未配置则跳过);与推送互补,断连时兜底
	var feedPoller *services.FeedPoller
	if cfg.FeedAPIBaseURL != "" {
		feedClient := livefeed.NewClientWithConfig(livefeed.Config{
			BaseURL:  cfg.FeedAPIBaseURL,
			APIToken: cfg.FeedAPIToken,
		})
		feedPoller = services.NewFeedPoller(feedClient, broker, cfg.FeedPollSeconds)
		if err := feedPoller.Start(); err != nil {
			log.Fatalf("Failed to start feed poller: %v", err)
		}
		log.Println("Live feed poller started")
	} else {
		log.Println("FEED_API_BASE_URL not set, live feed polling disabled")
	}

	// 启动Web服务器
	server := web.NewServer(cfg, db, wsHub, parser)
	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("Web server error: %v", err)
		}
	}()

	log.Printf("Web server started on port %s", cfg.Port)

	log.Println("Service is running. Press Ctrl+C to stop.")

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down service...")

	// 清理资源
	if amqpConsumer != nil {
		amqpConsumer.Stop()
	}
	if mqttClient != nil {
		mqttClient.Disconnect()
	}
	if feedPoller != nil {
		feedPoller.Stop()
	}
	processor.Stop()
	server.Stop()

	log.Println("Service stopped")
}

package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	// 数据库配置
	DatabaseURL string

	// 服务器配置
	Port string

	// 解析配置
	OurTeam        string // 默认视角球队(空则取解析出的第一支球队)
	FuzzyThreshold int    // 球员模糊匹配的接受阈值 (0-100)

	// AMQP 摄入配置
	AMQPURL   string
	AMQPQueue string

	// 实时解说数据源配置
	FeedAPIBaseURL  string
	FeedAPIToken    string
	FeedMQTTBroker  string
	FeedMQTTTopic   string
	FeedPollSeconds int // REST 轮询间隔 (秒)

	// 其他配置
	Environment string
}

func Load() *Config {
	return &Config{
		// 数据库配置
		DatabaseURL: getEnv("DATABASE_URL", "postgres://localhost:5432/commentary?sslmode=disable"),

		// 服务器配置
		Port: getEnv("PORT", "8080"),

		// 解析配置
		OurTeam:        getEnv("OUR_TEAM", ""),
		FuzzyThreshold: getEnvInt("FUZZY_THRESHOLD", 86),

		// AMQP 摄入配置 (留空则不启动消费者)
		AMQPURL:   getEnv("AMQP_URL", ""),
		AMQPQueue: getEnv("AMQP_QUEUE", "commentary-documents"),

		// 实时解说数据源配置 (留空则不启动)
		FeedAPIBaseURL:  getEnv("FEED_API_BASE_URL", ""),
		FeedAPIToken:    getEnv("FEED_API_TOKEN", ""),
		FeedMQTTBroker:  getEnv("FEED_MQTT_BROKER", ""),
		FeedMQTTTopic:   getEnv("FEED_MQTT_TOPIC", "commentary/#"),
		FeedPollSeconds: getEnvInt("FEED_POLL_SECONDS", 60),

		// 其他配置
		Environment: getEnv("ENVIRONMENT", "development"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt 未设置返回默认值;显式的 "0" 是合法取值,不会被吞掉
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	result, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid integer for %s: %q, using default %d", key, value, defaultValue)
		return defaultValue
	}
	return result
}

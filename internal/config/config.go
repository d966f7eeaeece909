package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server ServerConfig
	Log    LogConfig
	Alert  AlertConfig
	Static StaticConfig
	Kafka  KafkaConfig
}

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
	MaxBodyBytes   int64
}

type LogConfig struct {
	Level string

	// ENV=development이면 콘솔 포맷으로 출력
	Development bool
}

// AlertConfig - 알림 발행 처리 설정
type AlertConfig struct {
	// 응답 전 대기 시간 (비동기 처리 지연 모사)
	PublishDelay time.Duration
}

// StaticConfig - SPA 번들 위치
// Dir이 비어 있으면 바이너리에 내장된 번들을 사용
type StaticConfig struct {
	Dir string
}

// KafkaConfig - 감사(audit) 로그용 Kafka 설정
// Brokers가 비어 있으면 Kafka sink를 사용하지 않음
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

const (
	defaultPort         = "3000"
	defaultPublishDelay = time.Second
	defaultMaxBodyBytes = 10 << 20
)

func Load() Config {
	return Config{
		Server: ServerConfig{
			Port:           getenv("PORT", defaultPort),
			AllowedOrigins: splitList(getenv("CORS_ALLOWED_ORIGINS", "*")),
			MaxBodyBytes:   getenvInt64("MAX_BODY_BYTES", defaultMaxBodyBytes),
		},
		Log: LogConfig{
			Level:       getenv("LOG_LEVEL", "info"),
			Development: os.Getenv("ENV") == "development",
		},
		Alert: AlertConfig{
			PublishDelay: getenvDuration("ALERT_PUBLISH_DELAY", defaultPublishDelay),
		},
		Static: StaticConfig{
			Dir: os.Getenv("STATIC_DIR"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(os.Getenv("KAFKA_BROKERS")),
			Topic:   getenv("KAFKA_AUDIT_TOPIC", "alert-audit"),
		},
	}
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getenvInt64(key string, fallback int64) int64 {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// 음수는 허용하지 않음 (0은 지연 없음)
func getenvDuration(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	d, err := time.ParseDuration(val)
	if err != nil || d < 0 {
		return fallback
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

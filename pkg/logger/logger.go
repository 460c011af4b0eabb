package logger

import (
	"encoding/json"
	"os"
	"time"

	"matchmaker/pkg/helper"
	eventtypes "matchmaker/pkg/types/eventtype"

	"github.com/rs/zerolog"
)

var (
	// Logger는 전역 로거 인스턴스
	Logger = zerolog.Nop()
	// shipper는 로그 레코드를 발행할 메시지 큐 (nil이면 콘솔 출력만)
	shipper Publisher
	// currentService는 현재 서비스 타입을 저장합니다
	currentService ServiceType
)

// ExchangeLog는 로그 레코드가 발행되는 fanout exchange
const ExchangeLog = "logs"

const (
	ServiceTypeUser ServiceType = iota
	ServiceTypeMatch
	ServiceTypeGateway
	ServiceTypeLogCollector
)

// ServiceType은 서비스 타입을 나타내는 정수입니다
type ServiceType int

const (
	// 유저 관련 이벤트
	LogEventUserCreate LogEventType = iota
	LogEventUserUpdate
	LogEventUserDelete

	// 매칭 관련 이벤트
	LogEventMatchCacheInvalidate

	// 경고 이벤트
	LogEventWarning

	// 에러 이벤트
	LogEventError
)

// LogEventType은 로그 이벤트 타입을 나타내는 정수입니다
type LogEventType int

// Publisher는 로그 레코드를 외부로 내보내는 발행자입니다
type Publisher interface {
	PublishMessage(exchange, routingKey string, body []byte) error
}

// BaseLog는 로그의 기본 구조를 정의합니다
type BaseLog struct {
	Level        string      `json:"level"`
	Timestamp    time.Time   `json:"timestamp"`
	Service      int         `json:"service"`
	LogEventType int         `json:"log_event_type"`
	Message      string      `json:"message"`
	Log          interface{} `json:"log"`
}

// InitLogger는 로거를 초기화합니다. publisher가 nil이면 로그 전송을 생략합니다
func InitLogger(serviceType ServiceType, level string, publisher Publisher) {
	currentService = serviceType
	shipper = publisher

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	zerolog.TimeFieldFormat = time.RFC3339
	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}

	Logger = zerolog.New(output).
		Level(lvl).
		With().
		Int("service", int(serviceType)).
		Timestamp().
		Logger()
}

// Log는 콘솔에 출력하고 BaseLog 형식으로 로그 exchange에 발행합니다
func Log(level string, logEventType LogEventType, message string, logData interface{}) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	Logger.WithLevel(lvl).
		Int("log_event_type", int(logEventType)).
		Interface("log", logData).
		Msg(message)

	if shipper == nil {
		return
	}

	baseLog := BaseLog{
		Level:        level,
		Timestamp:    time.Now(),
		Service:      int(currentService),
		LogEventType: int(logEventType),
		Message:      message,
		Log:          logData,
	}

	eventPayload := eventtypes.EventPayload{
		EventType: eventtypes.EventTypeLog,
		Data:      helper.ToJSON(baseLog),
	}

	jsonData, err := json.Marshal(eventPayload)
	if err != nil {
		Logger.Error().Err(err).Msg("Failed to marshal log data")
		return
	}

	if err := shipper.PublishMessage(ExchangeLog, "", jsonData); err != nil {
		Logger.Error().Err(err).Msg("Failed to publish log message")
	}
}

// Info는 info 레벨 로그를 출력합니다
func Info(logEventType LogEventType, message string, logData interface{}) {
	Log("info", logEventType, message, logData)
}

// Warn은 warn 레벨 로그를 출력합니다
func Warn(logEventType LogEventType, message string, logData interface{}) {
	Log("warn", logEventType, message, logData)
}

// Error는 error 레벨 로그를 출력합니다
func Error(logEventType LogEventType, message string, logData interface{}) {
	Log("error", logEventType, message, logData)
}

// WithContext는 추가 컨텍스트를 포함한 로거를 반환합니다
func WithContext(fields map[string]interface{}) zerolog.Logger {
	return Logger.With().Fields(fields).Logger()
}

package mq

// Exchange Names
const (
	ExchangeUserEvents = "user_events"
)

// Exchange Types
const (
	ExchangeTypeTopic  = "topic"
	ExchangeTypeFanout = "fanout"
)

// Queue Names
const (
	QueueMatch = "match_queue"
	QueueLog   = "log_queue"
)

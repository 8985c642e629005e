package kafka_config

import "time"

const (
	DefaultTopic = "pilavtour.admin.changes"

	DefaultProducerMaxAttempts  = 3
	DefaultProducerBatchTimeout = 10 * time.Millisecond
	DefaultProducerRequireAcks  = -1
	DefaultProducerCompression  = "snappy"
	DefaultProducerAsync        = true

	DefaultEnableLogging = true
)

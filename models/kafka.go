package models

// Record is a broker message handed to a processor, detached from the client.
type Record struct {
	Key       []byte `json:"key"`
	Value     []byte `json:"value"`
	Topic     string `json:"topic"`
	Partition int32  `json:"partition"`
	Offset    int64  `json:"offset"`
}

type ConsumerConfig struct {
	Brokers               []string
	Name                  string
	Topics                []string
	EachPartitionChanSize int
	RecordsPerPoll        int
	MaxAttempts           int
}

package queue

// Config holds the dispatcher settings read from the environment
type Config struct {
	OutboxKey   string `env:"QUEUE_OUTBOX_KEY" envDefault:"jobengine:completion_outbox"`
	ReplayLimit int    `env:"QUEUE_OUTBOX_REPLAY_LIMIT" envDefault:"10"`
}

package app

import (
	"github.com/kultapp/jobengine/pkg/pg"
	"github.com/kultapp/jobengine/pkg/queue"
	"github.com/kultapp/jobengine/pkg/redis"
	"github.com/kultapp/jobengine/pkg/vectorizer"
	"github.com/kultapp/jobengine/svc/jobs"
)

// Config is the full engine configuration. Nested structs are parsed from
// the same environment.
type Config struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	Name     string `env:"APP_NAME" envDefault:"jobengine"`
	LogLevel string `env:"LOG_LEVEL"`

	Postgres   pg.Config
	Redis      redis.Config
	Queue      queue.Config
	Embeddings vectorizer.Config
	Jobs       jobs.Config
}

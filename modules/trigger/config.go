package trigger

// Config holds the trigger endpoint settings.
type Config struct {
	// CronSecret is the shared secret expected in X-Cron-Secret.
	// When empty, requests presenting a cron secret are rejected.
	CronSecret string `env:"CRON_SECRET"`
	// JWTSecret enables HS256 verification of bearer tokens. When empty,
	// the presence of an Authorization header is sufficient.
	JWTSecret   string `env:"JWT_SECRET"`
	JWTAudience string `env:"JWT_AUDIENCE"`
	// AllowedOrigins is the CORS allow-list. Unknown origins get the first entry.
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"https://kult.vercel.app,https://www.kult.app,http://localhost:3000"`
}

package cfg

type Cfg struct {
	// Application configuration
	FeedsDir          string
	Port              string
	AllowedOrigin     string
	WorkerCount       int
	SchedulerInterval int
	APIAccessKey      string

	// Upstream provider credentials
	NewsAPIKey    string
	YouTubeAPIKey string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}

package cfg

type Cfg struct {
	// Scrape configuration document
	ConfigPath string

	// Pipeline configuration
	WorkerCount int
	Interval    int
	NoContent   bool

	// Dashboard configuration
	Port string

	// Analyzer configuration
	ReportPath string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}

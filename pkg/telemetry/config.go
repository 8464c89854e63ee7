package telemetry

import (
	"flag"
	"os"
	"time"

	"github.com/robotalks/scoreboard/pkg/transport/mqtt"
)

// Config provides options of the telemetry publisher.
type Config struct {
	// URL is the MQTT broker URL, telemetry is disabled if empty.
	URL           string        `yaml:"url"`
	BufferSize    int           `yaml:"buffer_size"`
	StatsInterval time.Duration `yaml:"stats_interval"`
}

var defaultConfig = Config{
	BufferSize:    64,
	StatsInterval: 10 * time.Second,
}

func init() {
	if val := os.Getenv("SCOREBOARD_MQTT_URL"); val != "" {
		defaultConfig.URL = val
	}
	if val := os.Getenv("SCOREBOARD_TELEMETRY_URL"); val != "" {
		defaultConfig.URL = val
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.URL, "telemetry", defaultConfig.URL, "MQTT broker URL for telemetry, disabled if empty.")
	flag.IntVar(&defaultConfig.BufferSize, "telemetry-buffer", defaultConfig.BufferSize, "Number of pending telemetry events before dropping.")
	flag.DurationVar(&defaultConfig.StatsInterval, "telemetry-stats", defaultConfig.StatsInterval, "Interval of queue statistics events, 0 to disable.")
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// Enabled tells if telemetry should be published.
func (c *Config) Enabled() bool {
	return c.URL != ""
}

// NewPublisher connects the broker and creates the Publisher for a board.
func (c *Config) NewPublisher(boardID string) (*Publisher, error) {
	conn, err := mqtt.NewConnFromURL(c.URL)
	if err != nil {
		return nil, err
	}
	if err = conn.Connect(); err != nil {
		return nil, err
	}
	p := NewPublisher(ConnSink(conn), boardID, c.BufferSize)
	p.StatsInterval = c.StatsInterval
	p.closer = conn
	return p, nil
}

package sh

import (
	"flag"
	"os"
)

// Config provides options to reach boards.
type Config struct {
	MQTTURL string
	BoardID string
}

var defaultConfig = Config{
	MQTTURL: "mqtt://localhost:1883/scoreboard/",
}

func init() {
	if val := os.Getenv("SCOREBOARD_MQTT_URL"); val != "" {
		defaultConfig.MQTTURL = val
	}
	if val := os.Getenv("SCOREBOARD_ID"); val != "" {
		defaultConfig.BoardID = val
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.MQTTURL, "mqtt", defaultConfig.MQTTURL, "MQTT broker URL.")
	flag.StringVar(&defaultConfig.BoardID, "id", defaultConfig.BoardID, "Board to connect on start.")
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

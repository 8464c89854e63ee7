package scoreboard

import (
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/robotalks/scoreboard/pkg/env"
	"github.com/robotalks/scoreboard/pkg/queue"
	"github.com/robotalks/scoreboard/pkg/segment"
	"github.com/robotalks/scoreboard/pkg/transport"
	"github.com/robotalks/scoreboard/pkg/transport/mqtt"
)

// Config provides options to set up a board.
type Config struct {
	Board mqtt.BoardInfo `yaml:"board"`

	// Transport is the URL of the keystroke link, one of
	//   serial:///dev/ttyUSB0?baud=9600
	//   stdio:
	//   tcp://host:port
	//   ws://host:port/path
	//   mqtt://host:port/topic-prefix/
	Transport string `yaml:"transport"`
	// Display is a comma separated list of: terminal, log, none.
	Display string `yaml:"display"`

	Scheduler     Scheduler     `yaml:"scheduler"`
	QueueCapacity int           `yaml:"queue_capacity"`
	LoopInterval  time.Duration `yaml:"loop_interval"`
}

var defaultConfig = Config{
	Transport:     "stdio:",
	Display:       "terminal",
	Scheduler:     Preemptive,
	QueueCapacity: queue.DefaultCapacity,
	LoopInterval:  100 * time.Millisecond,
}

func init() {
	if fn := os.Getenv("SCOREBOARD_CONFIG"); fn != "" {
		if err := defaultConfig.LoadFile(fn); err != nil {
			log.Fatalln(err)
		}
	}
	if val := os.Getenv("SCOREBOARD_TRANSPORT"); val != "" {
		defaultConfig.Transport = val
	}
	if val := os.Getenv("SCOREBOARD_DISPLAY"); val != "" {
		defaultConfig.Display = val
	}
	if val := os.Getenv("SCOREBOARD_ID"); val != "" {
		defaultConfig.Board.ID = val
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Board.ID, "id", defaultConfig.Board.ID, "Board ID, derived from machine ID if empty.")
	flag.StringVar(&defaultConfig.Board.Meta.Description, "desc", defaultConfig.Board.Meta.Description, "Board description.")
	flag.StringVar(&defaultConfig.Transport, "transport", defaultConfig.Transport, "Transport URL: serial:///dev/ttyX?baud=9600, stdio:, tcp://host:port, ws://host/path, mqtt://host:port/prefix/")
	flag.StringVar(&defaultConfig.Display, "display", defaultConfig.Display, "Displays, comma separated: terminal, log, none.")
	flag.StringVar((*string)(&defaultConfig.Scheduler), "scheduler", string(defaultConfig.Scheduler), "Scheduler: preemptive or cooperative.")
	flag.IntVar(&defaultConfig.QueueCapacity, "queue-capacity", defaultConfig.QueueCapacity, "Capacity of each hand-off queue.")
	flag.DurationVar(&defaultConfig.LoopInterval, "loop-interval", defaultConfig.LoopInterval, "Idle iteration period of the cooperative scheduler.")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// LoadFile merges a YAML file into the config.
func (c *Config) LoadFile(fn string) error {
	data, err := os.ReadFile(fn)
	if err != nil {
		return fmt.Errorf("read config %q error: %v", fn, err)
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %q error: %v", fn, err)
	}
	return nil
}

// Validate checks the config, filling in derived defaults.
func (c *Config) Validate() error {
	if c.Board.ID == "" {
		c.Board.ID = env.BoardID("")
	}
	if c.Board.ID == "" {
		return ErrNoBoardID
	}
	if c.Transport == "" {
		return ErrNoTransport
	}
	switch c.Scheduler {
	case "":
		c.Scheduler = Preemptive
	case Preemptive, Cooperative:
	default:
		return &ErrUnknownOption{Option: "scheduler", Value: string(c.Scheduler)}
	}
	if c.QueueCapacity <= 0 {
		return &ErrInvalidCapacity{Capacity: c.QueueCapacity}
	}
	for _, name := range c.displayNames() {
		switch name {
		case "terminal", "log", "none":
		default:
			return &ErrUnknownOption{Option: "display", Value: name}
		}
	}
	return nil
}

// Options returns the pipeline options.
func (c *Config) Options() Options {
	return Options{
		Scheduler:     c.Scheduler,
		QueueCapacity: c.QueueCapacity,
		LoopInterval:  c.LoopInterval,
	}
}

// NewTransport opens the transport.
func (c *Config) NewTransport() (transport.Transport, error) {
	u, err := url.Parse(c.Transport)
	if err != nil {
		return nil, fmt.Errorf("invalid transport URL: %v", err)
	}
	switch u.Scheme {
	case "stdio":
		return transport.Stdio(), nil
	case "serial":
		baud := transport.DefaultBaudRate
		if val := u.Query().Get("baud"); val != "" {
			if baud, err = strconv.Atoi(val); err != nil {
				return nil, fmt.Errorf("invalid baud rate %q: %v", val, err)
			}
		}
		name := u.Path
		if name == "" {
			name = u.Opaque
		}
		return transport.OpenSerial(name, baud)
	case "tcp":
		return transport.DialTCP(u.Host)
	case "ws", "wss":
		origin := "http://" + u.Host + "/"
		if u.Scheme == "wss" {
			origin = "https://" + u.Host + "/"
		}
		return transport.DialWebSocket(c.Transport, origin)
	case "mqtt", "mqtts", "ssl":
		t, err := mqtt.NewTransport(c.Transport, c.Board)
		if err != nil {
			return nil, err
		}
		if err = t.Open(); err != nil {
			return nil, err
		}
		return t, nil
	default:
		return nil, &ErrUnknownScheme{Scheme: u.Scheme}
	}
}

// MustNewTransport opens the transport and fails on error.
func (c *Config) MustNewTransport() transport.Transport {
	t, err := c.NewTransport()
	if err != nil {
		log.Fatalln(err)
	}
	return t
}

// NewDisplay creates the displays.
func (c *Config) NewDisplay() segment.Display {
	var displays segment.Multi
	for _, name := range c.displayNames() {
		switch name {
		case "terminal":
			displays = append(displays, segment.NewTerminal(os.Stderr))
		case "log":
			displays = append(displays, &segment.Logger{})
		}
	}
	if len(displays) == 1 {
		return displays[0]
	}
	return displays
}

func (c *Config) displayNames() (names []string) {
	for _, name := range strings.Split(c.Display, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return
}

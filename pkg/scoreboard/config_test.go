package scoreboard

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/scoreboard/pkg/segment"
)

func TestConfigLoadFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "board.yaml")
	require.NoError(t, os.WriteFile(fn, []byte(`
board:
  id: lobby
  meta:
    description: Lobby scoreboard
transport: serial:///dev/ttyUSB0?baud=9600
display: terminal,log
scheduler: cooperative
loop_interval: 20ms
`), 0644))

	conf := NewConfig()
	require.NoError(t, conf.LoadFile(fn))
	require.NoError(t, conf.Validate())
	require.Equal(t, "lobby", conf.Board.ID)
	require.Equal(t, "Lobby scoreboard", conf.Board.Meta.Description)
	require.Equal(t, "serial:///dev/ttyUSB0?baud=9600", conf.Transport)
	require.Equal(t, Cooperative, conf.Scheduler)
	require.Equal(t, 20*time.Millisecond, conf.LoopInterval)
	require.Equal(t, 5, conf.QueueCapacity)
	require.Equal(t, Options{Scheduler: Cooperative, QueueCapacity: 5, LoopInterval: 20 * time.Millisecond}, conf.Options())

	displays, ok := conf.NewDisplay().(segment.Multi)
	require.True(t, ok)
	require.Len(t, displays, 2)
}

func TestConfigLoadFileErrors(t *testing.T) {
	conf := NewConfig()
	require.Error(t, conf.LoadFile(filepath.Join(t.TempDir(), "missing.yaml")))

	fn := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(fn, []byte("queue_capacity: [1"), 0644))
	require.Error(t, conf.LoadFile(fn))
}

func TestConfigValidate(t *testing.T) {
	testCases := []struct {
		name   string
		modify func(*Config)
		check  func(*testing.T, error)
	}{
		{
			name:   "defaults",
			modify: func(c *Config) {},
			check:  func(t *testing.T, err error) { require.NoError(t, err) },
		},
		{
			name:   "empty scheduler",
			modify: func(c *Config) { c.Scheduler = "" },
			check:  func(t *testing.T, err error) { require.NoError(t, err) },
		},
		{
			name:   "unknown scheduler",
			modify: func(c *Config) { c.Scheduler = "round-robin" },
			check: func(t *testing.T, err error) {
				var optErr *ErrUnknownOption
				require.True(t, errors.As(err, &optErr))
				require.Equal(t, "scheduler", optErr.Option)
			},
		},
		{
			name:   "unknown display",
			modify: func(c *Config) { c.Display = "terminal, lcd" },
			check: func(t *testing.T, err error) {
				var optErr *ErrUnknownOption
				require.True(t, errors.As(err, &optErr))
				require.Equal(t, "lcd", optErr.Value)
			},
		},
		{
			name:   "no transport",
			modify: func(c *Config) { c.Transport = "" },
			check:  func(t *testing.T, err error) { require.Equal(t, ErrNoTransport, err) },
		},
		{
			name:   "bad capacity",
			modify: func(c *Config) { c.QueueCapacity = 0 },
			check: func(t *testing.T, err error) {
				var capErr *ErrInvalidCapacity
				require.True(t, errors.As(err, &capErr))
				require.Equal(t, 0, capErr.Capacity)
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			conf := NewConfig()
			conf.Board.ID = "test"
			tc.modify(conf)
			tc.check(t, conf.Validate())
		})
	}
}

func TestConfigNewTransport(t *testing.T) {
	conf := NewConfig()
	conf.Transport = "carrier-pigeon://coop"
	_, err := conf.NewTransport()
	var schemeErr *ErrUnknownScheme
	require.True(t, errors.As(err, &schemeErr))
	require.Equal(t, "carrier-pigeon", schemeErr.Scheme)

	conf.Transport = "serial:///dev/ttyUSB0?baud=fast"
	_, err = conf.NewTransport()
	require.Error(t, err)

	conf.Transport = "stdio:"
	tr, err := conf.NewTransport()
	require.NoError(t, err)
	require.NotNil(t, tr)
}

func TestConfigNewDisplayNone(t *testing.T) {
	conf := NewConfig()
	conf.Display = "none"
	d := conf.NewDisplay()
	require.Equal(t, segment.Multi(nil), d)
	segment.Show(d, segment.Lookup(1))
}

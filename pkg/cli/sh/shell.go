package sh

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/scoreboard/pkg/transport/mqtt"
)

// Shell provides ishell backed interactive shell.
type Shell struct {
	Interactive bool
	OutputJSON  bool
	AutoConnect bool

	Shell  *ishell.Shell
	Config *Config
	Conn   *mqtt.Conn
	Keypad *mqtt.Keypad
}

const (
	shellKey          = "$shell"
	unconnectedPrompt = "[none] > "
)

var (
	// flags

	evalOnly   bool
	outputJSON bool

	// commands
	commands = []*ishell.Cmd{
		&DiscoverCmd,
		&ConnectCmd,
		&DisconnectCmd,
	}
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print output in JSON.")
}

// AddCmds is used by other commands providers during init func.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// New creates a new shell.
func New(conf *Config) *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		OutputJSON:  outputJSON,

		Shell:  ishell.New(),
		Config: conf,
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(unconnectedPrompt)
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// MustBeConnected wraps command func requires a connection.
func MustBeConnected(fn func(c *ishell.Context)) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		if ShellFrom(c).Keypad == nil {
			c.Err(fmt.Errorf("not connected"))
			return
		}
		fn(c)
	}
}

// FormatInfo prints BoardInfo into friendly string for display.
func FormatInfo(info mqtt.BoardInfo) string {
	var w bytes.Buffer
	fmt.Fprintf(&w, "%s", info.ID)
	if info.Meta.Description != "" {
		fmt.Fprintf(&w, ": %s", info.Meta.Description)
	}
	return w.String()
}

// WithAutoConnect sets AutoConnect.
func (s *Shell) WithAutoConnect(en bool) *Shell {
	s.AutoConnect = en
	return s
}

func (s *Shell) conn() (*mqtt.Conn, error) {
	if s.Conn != nil {
		return s.Conn, nil
	}
	conn, err := mqtt.NewConnFromURL(s.Config.MQTTURL)
	if err != nil {
		return nil, err
	}
	if err = conn.Connect(); err != nil {
		return nil, fmt.Errorf("connect %s error: %v", s.Config.MQTTURL, err)
	}
	s.Conn = conn
	return conn, nil
}

// DiscoverBoards discovers online boards.
func (s *Shell) DiscoverBoards() ([]mqtt.BoardInfo, error) {
	conn, err := s.conn()
	if err != nil {
		return nil, err
	}
	return mqtt.Discover(context.TODO(), conn, mqtt.DefaultDiscoverTimeout)
}

// SelectBoard discovers boards and asks for a choice.
func (s *Shell) SelectBoard() (*mqtt.BoardInfo, error) {
	infoList, err := s.DiscoverBoards()
	if err != nil {
		return nil, err
	}
	if len(infoList) == 0 {
		return nil, nil
	}
	var index int
	if len(infoList) > 1 {
		if !s.Interactive {
			return nil, fmt.Errorf("more than 1 boards discovered in non-interactive mode")
		}
		items := make([]string, len(infoList))
		for n, info := range infoList {
			items[n] = FormatInfo(info)
		}
		index = s.Shell.MultiChoice(items, "Which one to connect?")
	}
	return &infoList[index], nil
}

// Connect connects the keypad of a board.
func (s *Shell) Connect(boardID string) error {
	conn, err := s.conn()
	if err != nil {
		return err
	}
	keypad, err := mqtt.NewKeypad(conn, boardID, func(msg string) {
		s.Shell.Printf("%s: %s\n", boardID, msg)
	})
	if err != nil {
		return err
	}
	s.Disconnect()
	s.Keypad = keypad
	s.Shell.SetPrompt(fmt.Sprintf("%s > ", boardID))
	return nil
}

// Disconnect disconnects current board.
func (s *Shell) Disconnect() {
	if s.Keypad != nil {
		s.Keypad.Close()
		s.Keypad = nil
		s.Shell.SetPrompt(unconnectedPrompt)
	}
}

// Close disconnects and closes the broker connection.
func (s *Shell) Close() {
	s.Disconnect()
	if s.Conn != nil {
		s.Conn.Close()
		s.Conn = nil
	}
}

// Run runs the shell.
func (s *Shell) Run(args ...string) {
	defer s.Close()
	if s.AutoConnect && s.Config.BoardID != "" {
		if s.Interactive {
			s.Shell.Printf("Connecting %s ...\n", s.Config.BoardID)
		}
		if err := s.Connect(s.Config.BoardID); err != nil {
			log.Fatalf("connect %q failed: %v", s.Config.BoardID, err)
		}
	}

	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}

var (
	// DiscoverCmd discovers boards.
	DiscoverCmd = ishell.Cmd{
		Name:    "discover",
		Aliases: []string{"list", "l"},
		Help:    "",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			infoList, err := s.DiscoverBoards()
			if err != nil {
				c.Err(err)
				return
			}
			if s.OutputJSON {
				if len(infoList) == 0 {
					// in case infoList is nil, make it empty slice.
					infoList = []mqtt.BoardInfo{}
				}
				out, err := json.Marshal(infoList)
				if err != nil {
					c.Err(err)
					return
				}
				c.Println(string(out))
				return
			}
			if len(infoList) == 0 {
				c.Println("No boards found")
				return
			}
			for _, info := range infoList {
				c.Println(FormatInfo(info))
			}
		},
	}

	// ConnectCmd connects a board.
	ConnectCmd = ishell.Cmd{
		Name:    "connect",
		Aliases: []string{"c"},
		Help:    "[ID]",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			var boardID string
			if len(c.Args) > 0 {
				boardID = c.Args[0]
			} else {
				info, err := s.SelectBoard()
				if err != nil {
					c.Err(err)
					return
				}
				if info == nil {
					c.Err(fmt.Errorf("no board discovered"))
					return
				}
				boardID = info.ID
			}
			if err := s.Connect(boardID); err != nil {
				c.Err(err)
				return
			}
		},
	}

	// DisconnectCmd disconnects current board.
	DisconnectCmd = ishell.Cmd{
		Name:    "disconnect",
		Aliases: []string{"d"},
		Help:    "",
		Func: func(c *ishell.Context) {
			ShellFrom(c).Disconnect()
		},
	}
)

// Main is a helper to provide a single call in main.
func Main() {
	flag.Parse()
	New(NewConfig()).WithAutoConnect(true).Run(flag.Args()...)
}

package keypad

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/scoreboard/pkg/cli/sh"
)

// feedbackWait is how long to stay for feedback in non-interactive mode.
const feedbackWait = 500 * time.Millisecond

var (
	// KeyCmd presses keys on the connected board.
	KeyCmd = ishell.Cmd{
		Name:    "key",
		Aliases: []string{"k"},
		Help:    "KEYS...",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			if len(c.Args) == 0 {
				c.Err(fmt.Errorf("keys expected"))
				return
			}
			press(c, strings.Join(c.Args, ""))
		}),
	}

	// BurstCmd presses the same key repeatedly in one message.
	BurstCmd = ishell.Cmd{
		Name:    "burst",
		Aliases: []string{"b"},
		Help:    "KEY COUNT",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			if len(c.Args) != 2 || len(c.Args[0]) != 1 {
				c.Err(fmt.Errorf("KEY COUNT expected"))
				return
			}
			count, err := strconv.Atoi(c.Args[1])
			if err != nil || count <= 0 {
				c.Err(fmt.Errorf("invalid count %q", c.Args[1]))
				return
			}
			press(c, strings.Repeat(c.Args[0], count))
		}),
	}
)

func press(c *ishell.Context, keys string) {
	s := sh.ShellFrom(c)
	if err := s.Keypad.Press(keys); err != nil {
		c.Err(err)
		return
	}
	if !s.Interactive {
		time.Sleep(feedbackWait)
	}
}

func init() {
	sh.AddCmds(
		&KeyCmd,
		&BurstCmd,
	)
}

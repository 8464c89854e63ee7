// Package all registers all shell commands.
package all

import (
	_ "github.com/robotalks/scoreboard/pkg/cli/cmds/keypad"
)

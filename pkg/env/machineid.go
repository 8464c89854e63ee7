// Package env provides information about the host running a board.
package env

import (
	"github.com/denisbrodbeck/machineid"
	"github.com/golang/glog"
)

// AppID scopes the machine ID to this application.
const AppID = "scoreboard"

// BoardID derives a stable board ID from the machine ID, without exposing
// the machine ID itself. It falls back to fallback if the machine ID
// can't be read.
func BoardID(fallback string) string {
	id, err := machineid.ProtectedID(AppID)
	if err != nil {
		glog.Warningf("read machine ID error: %v", err)
		return fallback
	}
	if len(id) > 12 {
		id = id[:12]
	}
	return id
}

package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/golang/glog"
)

// Topic suffixes under <prefix><board>/.
const (
	TopicKey    = "key"
	TopicOut    = "out"
	TopicMeta   = "meta"
	TopicEvents = "events"
)

// BoardMeta is published retained on the meta topic while a board is online.
type BoardMeta struct {
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Labels      map[string]string `json:"labels,omitempty" yaml:"labels,omitempty"`
}

// BoardInfo identifies a board and its metadata.
type BoardInfo struct {
	ID   string    `json:"id" yaml:"id"`
	Meta BoardMeta `json:"meta" yaml:"meta"`
}

// BoardTopic returns the topic of a board, relative to the prefix.
func BoardTopic(id, suffix string) string {
	return id + "/" + suffix
}

// BoardInfoFromMeta decodes the retained meta published on topic.
func BoardInfoFromMeta(topic string, payload []byte) (BoardInfo, error) {
	info := BoardInfo{ID: strings.TrimSuffix(topic, "/"+TopicMeta)}
	if err := json.Unmarshal(payload, &info.Meta); err != nil {
		return info, fmt.Errorf("invalid meta of board %q: %v", info.ID, err)
	}
	return info, nil
}

// DefaultDiscoverTimeout defines the default timeout value of discovery.
const DefaultDiscoverTimeout = 500 * time.Millisecond

// Discover collects the boards with retained meta until timeout expires.
func Discover(ctx context.Context, conn *Conn, timeout time.Duration) (res []BoardInfo, err error) {
	resCh := make(chan BoardInfo, 1)
	sub := conn.Sub("+/"+TopicMeta, Handler(func(topic string, payload []byte) {
		if len(payload) == 0 {
			// cleared meta, board went offline.
			return
		}
		info, err := BoardInfoFromMeta(topic, payload)
		if err != nil {
			glog.Warningf("discover: skip %s: %v", topic, err)
			return
		}
		select {
		case resCh <- info:
		case <-time.After(time.Second):
		}
	}))
	defer sub.Close()

	if timeout == 0 {
		timeout = DefaultDiscoverTimeout
	}
	expired := time.After(timeout)
	for {
		select {
		case info := <-resCh:
			res = append(res, info)
		case <-expired:
			return
		case <-ctx.Done():
			err = ctx.Err()
			return
		}
	}
}

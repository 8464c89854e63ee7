package main

//go-build: CGO_ENABLED=0

import (
	"errors"
	"flag"
	"io"

	"github.com/golang/glog"

	fx "github.com/robotalks/scoreboard/pkg/framework"
	"github.com/robotalks/scoreboard/pkg/scoreboard"
	"github.com/robotalks/scoreboard/pkg/telemetry"
	"github.com/robotalks/scoreboard/pkg/transport"
)

func init() {
	scoreboard.SetupFlags()
	telemetry.SetupFlags()
}

func main() {
	flag.Parse()
	defer glog.Flush()

	conf := scoreboard.NewConfig()
	if err := conf.Validate(); err != nil {
		glog.Exitf("invalid config: %v", err)
	}
	telemetryConf := telemetry.NewConfig()

	t := conf.MustNewTransport()
	defer transport.Close(t)

	runnables := []fx.Runnable{}
	var observer scoreboard.Observer
	var publisher *telemetry.Publisher
	if telemetryConf.Enabled() {
		var err error
		if publisher, err = telemetryConf.NewPublisher(conf.Board.ID); err != nil {
			glog.Exitf("telemetry: %v", err)
		}
		observer = publisher
	}

	board := scoreboard.New(conf.Options(), t, conf.NewDisplay(), observer)
	runnables = append(runnables, board)
	if publisher != nil {
		runnables = append(runnables, publisher.WithStats(board.Stats))
	}

	glog.Infof("board %s on %s", conf.Board.ID, conf.Transport)
	err := fx.NewRunner().
		WithFailFast(true).
		HandleSignals().
		Go(runnables...).
		Wait()
	if err != nil && !errors.Is(err, io.EOF) {
		glog.Exit(err)
	}
}

package main

import (
	"flag"
	"log"
	"os"
	"reflect"
	"strings"

	"github.com/robotalks/scoreboard/pkg/scoreboard/msgs"
	"github.com/robotalks/scoreboard/pkg/transport/mqtt"
)

var (
	mqttURL = "mqtt://localhost:1883/scoreboard/"
	boardID = "+"
)

func init() {
	if val := os.Getenv("SCOREBOARD_MQTT_URL"); val != "" {
		mqttURL = val
	}
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL.")
	flag.StringVar(&boardID, "id", boardID, "Board to monitor, all boards by default.")
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds)

	conn, err := mqtt.NewConnFromURL(mqttURL)
	if err != nil {
		log.Fatalln(err)
	}
	if err = conn.Connect(); err != nil {
		log.Fatalln(err)
	}

	conn.Sub(boardID+"/#", mqtt.Handler(func(topic string, payload []byte) {
		switch {
		case strings.HasSuffix(topic, "/"+mqtt.TopicMeta):
			log.Printf("%s: %s", topic, string(payload))
			return
		case !strings.HasSuffix(topic, "/"+mqtt.TopicEvents):
			log.Printf("%s: %q", topic, string(payload))
			return
		}
		typed, err := msgs.DecodeTyped(payload)
		if err != nil {
			log.Printf("%s: bad message: %v", topic, err)
			return
		}
		ev, err := typed.Decode()
		if err != nil {
			log.Printf("%s: decode error: (type_id=%x) %v", topic, typed.TypeId, err)
			return
		}
		log.Printf("%s: #%d [%s] %s", topic, typed.Sequence,
			reflect.Indirect(reflect.ValueOf(ev)).Type().Name(),
			ev.String())
	}))
	<-(chan struct{})(nil)
}

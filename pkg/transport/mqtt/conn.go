// Package mqtt carries scoreboard keystrokes, feedback and telemetry
// over an MQTT broker.
package mqtt

import (
	"container/list"
	"net/url"
	"strings"
	"sync"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang/glog"
	"github.com/google/uuid"
)

// Handler is the callback when a message is received.
type Handler func(topic string, payload []byte)

// Conn wraps MQTT client, and dispatches messages of all topics under
// TopicPrefix to local subscriptions.
type Conn struct {
	Client       paho.Client
	TopicPrefix  string
	OnConnect    ConnectHandler
	OnDisconnect ConnectHandler

	subsLock     sync.RWMutex
	subs         map[string]*list.List
	wildcardSubs map[string]*list.List
}

// ConnectHandler is to handle connect/disconnect events.
type ConnectHandler func(*Conn)

// Subscription is a subscribed topic.
type Subscription struct {
	Token paho.Token

	conn     *Conn
	elm      *list.Element
	topic    string
	wildcard bool
	handler  Handler
}

// MatchTopic matches topic with pattern.
func MatchTopic(topic, pattern string) bool {
	tokensT, tokensP := strings.Split(topic, "/"), strings.Split(pattern, "/")
	if len(tokensP) > len(tokensT) {
		return false
	}
	for i, token := range tokensP {
		if token == "#" && i+1 == len(tokensP) {
			return true
		}
		if token != "+" && token != tokensT[i] {
			return false
		}
	}
	return len(tokensP) == len(tokensT)
}

// ClientOptionsFromURL creates ClientOptions from URL
// mqtt://[user[:password]@]host:port/topic-prefix/?client-id=ID.
// A random client ID is generated if not specified.
func ClientOptionsFromURL(serverURL string) (*paho.ClientOptions, string, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, "", err
	}
	var server string
	switch u.Scheme {
	case "", "mqtt":
		server = "tcp"
	case "mqtts":
		server = "ssl"
	default:
		server = u.Scheme
	}
	server += "://" + u.Host

	topicPrefix := strings.TrimPrefix(u.Path, "/")
	if topicPrefix != "" && !strings.HasSuffix(topicPrefix, "/") {
		topicPrefix += "/"
	}

	opts := paho.NewClientOptions()
	opts.AddBroker(server).
		SetAutoReconnect(true).
		SetCleanSession(true)
	if u.User != nil {
		opts.SetUsername(u.User.Username())
		if pwd, ok := u.User.Password(); ok {
			opts.SetPassword(pwd)
		}
	}

	clientID := u.Query().Get("client-id")
	if clientID == "" {
		clientID = "scoreboard:" + uuid.NewString()
	}
	opts.SetClientID(clientID)

	return opts, topicPrefix, nil
}

// NewConn creates Conn.
func NewConn(options *paho.ClientOptions, topicPrefix string) *Conn {
	c := &Conn{TopicPrefix: topicPrefix}
	options.SetOnConnectHandler(c.onConnectHandler)
	options.SetConnectionLostHandler(c.connectionLostHandler)
	c.Client = paho.NewClient(options)
	return c
}

// NewConnFromURL creates Conn from URL.
func NewConnFromURL(brokerURL string) (*Conn, error) {
	opts, topicPrefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	return NewConn(opts, topicPrefix), nil
}

// Connect connects the client and waits for the result.
func (c *Conn) Connect() error {
	token := c.Client.Connect()
	token.Wait()
	return token.Error()
}

// Close implements io.Closer.
func (c *Conn) Close() error {
	c.Client.Disconnect(250)
	return nil
}

// Sub subscribes a topic, relative to TopicPrefix.
func (c *Conn) Sub(topic string, handler Handler) *Subscription {
	wildcard := strings.Contains(topic, "+") || strings.HasSuffix(topic, "#")
	var newSub bool
	c.subsLock.Lock()
	if c.subs == nil {
		c.subs = make(map[string]*list.List)
	}
	if c.wildcardSubs == nil {
		c.wildcardSubs = make(map[string]*list.List)
	}
	subs := c.subs
	if wildcard {
		subs = c.wildcardSubs
	}
	lst := subs[topic]
	if lst == nil {
		lst = list.New()
		subs[topic] = lst
		newSub = true
	}
	sub := &Subscription{
		conn:     c,
		topic:    topic,
		wildcard: wildcard,
		handler:  handler,
	}
	sub.elm = lst.PushBack(sub)
	c.subsLock.Unlock()

	if newSub {
		glog.V(2).Infof("SUB %q", c.TopicPrefix+topic)
		sub.Token = c.Client.Subscribe(c.TopicPrefix+topic, 0, c.dispatch)
	} else {
		sub.Token = &paho.DummyToken{}
	}
	return sub
}

// Pub publishes to a topic.
func (c *Conn) Pub(topic string, payload []byte) paho.Token {
	return c.PubWith(topic, payload, 0, false)
}

// PubWith publishes with QoS and retain settings.
func (c *Conn) PubWith(topic string, payload []byte, qos byte, retain bool) paho.Token {
	return c.Client.Publish(c.TopicPrefix+topic, qos, retain, payload)
}

// Resubscribe subscribes all existing topics after reconnecting.
func (c *Conn) Resubscribe() paho.Token {
	filters := make(map[string]byte)
	c.subsLock.RLock()
	for topic := range c.subs {
		filters[c.TopicPrefix+topic] = 0
	}
	for topic := range c.wildcardSubs {
		filters[c.TopicPrefix+topic] = 0
	}
	c.subsLock.RUnlock()
	if len(filters) == 0 {
		return &paho.DummyToken{}
	}
	if glog.V(2) {
		for key := range filters {
			glog.Infof("SUB %q", key)
		}
	}
	return c.Client.SubscribeMultiple(filters, c.dispatch)
}

func (c *Conn) onConnectHandler(paho.Client) {
	glog.Info("mqtt connected")
	c.Resubscribe()
	if h := c.OnConnect; h != nil {
		h(c)
	}
}

func (c *Conn) connectionLostHandler(_ paho.Client, err error) {
	glog.Warningf("mqtt connection lost: %v", err)
	if h := c.OnDisconnect; h != nil {
		h(c)
	}
}

func (c *Conn) handlersFor(topic string) []Handler {
	var handlers []Handler
	c.subsLock.RLock()
	defer c.subsLock.RUnlock()
	if lst := c.subs[topic]; lst != nil {
		for elm := lst.Front(); elm != nil; elm = elm.Next() {
			handlers = append(handlers, elm.Value.(*Subscription).handler)
		}
	}
	for key, lst := range c.wildcardSubs {
		if MatchTopic(topic, key) {
			for elm := lst.Front(); elm != nil; elm = elm.Next() {
				handlers = append(handlers, elm.Value.(*Subscription).handler)
			}
		}
	}
	return handlers
}

func (c *Conn) dispatch(_ paho.Client, msg paho.Message) {
	topic := msg.Topic()
	if !strings.HasPrefix(topic, c.TopicPrefix) {
		return
	}
	glog.V(2).Infof("RCV %q", topic)
	topic = topic[len(c.TopicPrefix):]
	payload := msg.Payload()
	for _, h := range c.handlersFor(topic) {
		h(topic, payload)
	}
}

// Close unsubscribes a handler.
func (s *Subscription) Close() error {
	var unsub bool
	s.conn.subsLock.Lock()
	subs := s.conn.subs
	if s.wildcard {
		subs = s.conn.wildcardSubs
	}
	if lst := subs[s.topic]; lst != nil {
		lst.Remove(s.elm)
		if unsub = lst.Len() == 0; unsub {
			delete(subs, s.topic)
		}
	}
	s.conn.subsLock.Unlock()
	if unsub {
		glog.V(2).Infof("UNSUB %q", s.topic)
		token := s.conn.Client.Unsubscribe(s.conn.TopicPrefix + s.topic)
		token.Wait()
		return token.Error()
	}
	return nil
}

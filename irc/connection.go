// Copyright (c) 2021 Shivaram Lingamneni <slingamn@cs.stanford.edu>
// released under the MIT license

package irc

import (
	"crypto/tls"
	"fmt"
	"net"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ergochat/irc-go/ircutils"
	"github.com/gorilla/websocket"
)

const (
	// size of the event channel buffer; if the application stops draining
	// events, the read loop blocks rather than dropping anything
	eventQueueSize = 64

	wsHandshakeTimeout = 30 * time.Second

	// token sent with keepalive pings so their PONGs are recognizable
	pingToken = "loirc-activity"
)

// Connection owns a link to a server: the socket, the read loop, automatic
// reconnection, and registration (including SASL). Parsed messages and
// lifecycle notifications are delivered, in order, on the Events channel.
//
// Parsing itself stays pure (see ParseLine); everything stateful lives here.
type Connection struct {
	config *ClientConfig
	logger Logger

	events chan Event
	writer Writer

	lastActiveNano atomic.Int64

	stateMutex sync.Mutex // tier 1; protects the fields below
	conn       IRCConn
	closed     bool

	sasl saslSession
}

// Logger is the leveled, type-tagged logging interface the connection
// reports to; *logger.Manager implements it.
type Logger interface {
	Debug(logType string, messageParts ...string)
	Info(logType string, messageParts ...string)
	Warning(logType string, messageParts ...string)
	Error(logType string, messageParts ...string)
}

// Connect dials the configured server and starts the read loop. The first
// dial failure is returned synchronously; after that, link failures go
// through the reconnection policy and surface as events.
func Connect(config *ClientConfig, log Logger) (*Connection, error) {
	conn := &Connection{
		config: config,
		logger: log,
		events: make(chan Event, eventQueueSize),
	}

	ic, err := conn.dial()
	if err != nil {
		return nil, err
	}
	conn.setConn(ic)

	go conn.run(ic)
	return conn, nil
}

// Events returns the channel on which parsed messages and lifecycle events
// are delivered. It is closed when the connection is shut down or gives up
// reconnecting.
func (conn *Connection) Events() <-chan Event {
	return conn.events
}

// Writer returns the handle for sending raw lines. It remains valid across
// reconnections.
func (conn *Connection) Writer() *Writer {
	return &conn.writer
}

// Shutdown closes the link and stops reconnecting. The event channel is
// closed once the read loop has wound down.
func (conn *Connection) Shutdown() {
	conn.stateMutex.Lock()
	conn.closed = true
	ic := conn.conn
	conn.conn = nil
	conn.stateMutex.Unlock()

	conn.writer.close()
	if ic != nil {
		ic.Close()
	}
}

func (conn *Connection) isClosed() bool {
	conn.stateMutex.Lock()
	defer conn.stateMutex.Unlock()
	return conn.closed
}

func (conn *Connection) setConn(ic IRCConn) {
	conn.stateMutex.Lock()
	conn.conn = ic
	conn.stateMutex.Unlock()
	conn.writer.setConn(ic)
}

func (conn *Connection) dial() (IRCConn, error) {
	config := conn.config
	if config.Server.WebsocketURL != "" {
		dialer := websocket.Dialer{
			TLSClientConfig:  config.Server.TLS.Config(),
			HandshakeTimeout: wsHandshakeTimeout,
		}
		wsConn, _, err := dialer.Dial(config.Server.WebsocketURL, nil)
		if err != nil {
			return nil, err
		}
		return NewIRCWSConn(wsConn), nil
	}
	if config.Server.TLS.Enabled {
		tlsConn, err := tls.Dial("tcp", config.Server.Address, config.Server.TLS.Config())
		if err != nil {
			return nil, err
		}
		return NewIRCStreamConn(tlsConn), nil
	}
	netConn, err := net.Dial("tcp", config.Server.Address)
	if err != nil {
		return nil, err
	}
	return NewIRCStreamConn(netConn), nil
}

// run owns the connection lifecycle: one iteration per link epoch, with the
// reconnection policy in between. it is the only goroutine that sends on or
// closes the event channel, which is what guarantees event ordering.
func (conn *Connection) run(ic IRCConn) {
	defer close(conn.events)

	for {
		conn.register()
		conn.events <- ConnectEvent{}

		monitorDone := make(chan struct{})
		if conn.config.Activity.PingInterval > 0 {
			go conn.monitorActivity(ic, monitorDone)
		}
		conn.lastActiveNano.Store(time.Now().UnixNano())

		readErr := conn.readLoop(ic)
		close(monitorDone)
		conn.events <- DisconnectEvent{Err: readErr}
		conn.logger.Info("disconnect", "connection lost", fmt.Sprintf("%v", readErr))

		if conn.isClosed() || conn.config.Reconnect.Delay == 0 {
			return
		}

		var ok bool
		ic, ok = conn.reconnect()
		if !ok {
			return
		}
	}
}

// reconnect applies the reconnection policy: wait out the configured delay,
// redial, repeat until a dial succeeds or the attempt cap is reached.
func (conn *Connection) reconnect() (ic IRCConn, ok bool) {
	var lastErr error
	for attempt := 1; ; attempt++ {
		if max := conn.config.Reconnect.MaxAttempts; max != 0 && attempt > max {
			conn.events <- ReconnectFailedEvent{Err: lastErr}
			conn.logger.Error("reconnect", "giving up after max attempts")
			return nil, false
		}
		conn.events <- ReconnectingEvent{Attempt: attempt}
		conn.logger.Info("reconnect", fmt.Sprintf("attempt %d in %v", attempt, conn.config.Reconnect.Delay))
		time.Sleep(conn.config.Reconnect.Delay)
		if conn.isClosed() {
			return nil, false
		}
		ic, lastErr = conn.dial()
		if lastErr == nil {
			conn.setConn(ic)
			return ic, true
		}
		conn.logger.Warning("reconnect", "dial failed", lastErr.Error())
	}
}

// monitorActivity watches for a silent link. after the configured interval
// with no reads it sends a PING; if the link stays silent past the timeout
// as well, it closes the socket and lets reconnection policy take over.
func (conn *Connection) monitorActivity(ic IRCConn, done <-chan struct{}) {
	interval := conn.config.Activity.PingInterval
	timeout := conn.config.Activity.Timeout
	pinged := false
	timer := time.NewTimer(interval)
	defer timer.Stop()

	for {
		select {
		case <-done:
			return
		case <-timer.C:
			idle := time.Since(time.Unix(0, conn.lastActiveNano.Load()))
			if idle < interval {
				pinged = false
				timer.Reset(interval - idle)
			} else if !pinged {
				conn.logger.Debug("ping", "link is idle, sending PING")
				// write directly: the run goroutine owns the event
				// channel, so no events from here
				if err := conn.writer.SendLine("PING " + pingToken); err != nil {
					conn.logger.Warning("ping", "could not send keepalive", err.Error())
				}
				pinged = true
				timer.Reset(timeout)
			} else {
				conn.logger.Warning("ping", "no response to PING, closing link")
				ic.Close()
				return
			}
		}
	}
}

// register sends the registration burst for a fresh link.
func (conn *Connection) register() {
	config := conn.config
	conn.logger.Info("connect", "registering as", config.Nick)

	if config.SASL.Enabled {
		if err := conn.sasl.reset(config.SASL); err != nil {
			conn.logger.Error("sasl", "cannot authenticate", err.Error())
			conn.events <- ErrorEvent{Err: err}
		} else {
			conn.send("CAP REQ :sasl")
		}
	}
	if config.Server.Password != "" {
		conn.send("PASS " + config.Server.Password)
	}
	conn.send("NICK " + config.Nick)
	conn.send(fmt.Sprintf("USER %s 0 * :%s", config.Username, config.Realname))
}

// send writes one line, surfacing failures as events rather than errors;
// the read loop will notice a dead link soon enough.
func (conn *Connection) send(line string) {
	conn.logger.Debug("wire", "-> "+line)
	if err := conn.writer.SendLine(line); err != nil {
		conn.events <- ErrorEvent{Err: err}
	}
}

// readLoop reads and parses lines until the link dies or Shutdown is
// called. each parsed message is both examined for protocol upkeep (PING,
// SASL negotiation) and forwarded to the application verbatim.
func (conn *Connection) readLoop(ic IRCConn) error {
	for {
		lineBytes, err := ic.ReadLine()
		if err != nil {
			if conn.isClosed() {
				return nil
			}
			return err
		}
		conn.lastActiveNano.Store(time.Now().UnixNano())

		line := string(lineBytes)
		conn.logger.Debug("wire", "<- "+line)

		msg, err := ParseLine(line)
		if err != nil {
			// surface the failure and keep reading; dropping one line
			// beats dropping the link (the application can disconnect
			// if it sees too many of these)
			conn.logger.Warning("message", "invalid line from server", err.Error())
			conn.events <- ParseErrorEvent{Line: line, Err: err}
			continue
		}

		conn.handleProtocol(msg)
		conn.events <- MessageEvent{Message: msg}
	}
}

// handleProtocol performs connection upkeep for messages that need an
// automatic response, before the message is handed to the application.
func (conn *Connection) handleProtocol(msg Message) {
	switch msg.Code {
	case CodePing:
		if len(msg.Args) > 0 {
			conn.send("PONG :" + msg.Args[len(msg.Args)-1])
		} else {
			conn.send("PONG")
		}
	case CodeCap:
		conn.handleCap(msg)
	case CodeAuthenticate:
		conn.handleAuthenticate(msg)
	case RplSaslsuccess:
		if conn.sasl.inProgress {
			conn.logger.Info("sasl", "authentication succeeded")
			conn.sasl.finish()
			conn.send("CAP END")
		}
	case ErrSaslfail, ErrSasltoolong, ErrSaslaborted, ErrSaslalready:
		if conn.sasl.inProgress {
			conn.logger.Error("sasl", "authentication failed", string(msg.Code))
			conn.sasl.finish()
			conn.events <- ErrorEvent{Err: errSaslFail}
			conn.send("CAP END")
		}
	}
}

func (conn *Connection) handleCap(msg Message) {
	if !conn.sasl.enabled() || len(msg.Args) < 2 {
		return
	}
	subcommand := msg.Args[1]
	caps := ""
	if len(msg.Args) > 2 {
		caps = msg.Args[len(msg.Args)-1]
	}
	switch subcommand {
	case "ACK":
		if capListContains(caps, "sasl") {
			conn.sasl.inProgress = true
			conn.send("AUTHENTICATE " + conn.sasl.client.Name())
		}
	case "NAK":
		if capListContains(caps, "sasl") {
			conn.logger.Error("sasl", "server refused the sasl capability")
			conn.events <- ErrorEvent{Err: errSaslFail}
			conn.send("CAP END")
		}
	}
}

func (conn *Connection) handleAuthenticate(msg Message) {
	if !conn.sasl.inProgress || len(msg.Args) == 0 {
		return
	}
	done, challenge, err := conn.sasl.buffer.Add(msg.Args[0])
	if !done {
		return
	}
	if err == nil {
		var response []byte
		response, err = conn.sasl.client.Step(challenge)
		if err == nil {
			for _, chunk := range ircutils.EncodeSASLResponse(response) {
				conn.send("AUTHENTICATE " + chunk)
			}
			return
		}
	}
	conn.logger.Error("sasl", "authentication error", err.Error())
	conn.sasl.finish()
	conn.events <- ErrorEvent{Err: err}
	conn.send("AUTHENTICATE *")
	conn.send("CAP END")
}

func capListContains(caps string, name string) bool {
	for _, c := range strings.Fields(caps) {
		// values like sasl=PLAIN,EXTERNAL may be advertised
		if c == name || strings.HasPrefix(c, name+"=") {
			return true
		}
	}
	return false
}

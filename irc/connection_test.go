// Copyright (c) 2021 Shivaram Lingamneni <slingamn@cs.stanford.edu>
// released under the MIT license

package irc

import (
	"bufio"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/ergochat/loirc/irc/logger"
)

const testTimeout = 5 * time.Second

// testServer is the far end of a net.Pipe, playing the server's part of
// the conversation line by line.
type testServer struct {
	conn   net.Conn
	reader *bufio.Reader
}

func (s *testServer) expectLine(t *testing.T, expected string) {
	t.Helper()
	s.conn.SetReadDeadline(time.Now().Add(testTimeout))
	line, err := s.reader.ReadString('\n')
	if err != nil {
		t.Fatalf("expected line %q, got error: %v", expected, err)
	}
	if strings.TrimSuffix(line, "\r\n") != expected {
		t.Fatalf("expected line %q, got %q", expected, line)
	}
}

func (s *testServer) sendLine(t *testing.T, line string) {
	t.Helper()
	s.conn.SetWriteDeadline(time.Now().Add(testTimeout))
	if _, err := s.conn.Write([]byte(line + "\r\n")); err != nil {
		t.Fatalf("could not send line %q: %v", line, err)
	}
}

// startTestConnection wires a Connection to an in-memory pipe, bypassing
// dial, and starts its run loop.
func startTestConnection(t *testing.T, config *ClientConfig) (*Connection, *testServer) {
	t.Helper()
	clientEnd, serverEnd := net.Pipe()
	logman, err := logger.NewManager(nil)
	if err != nil {
		t.Fatal(err)
	}
	conn := &Connection{
		config: config,
		logger: logman,
		events: make(chan Event, eventQueueSize),
	}
	ic := NewIRCStreamConn(clientEnd)
	conn.setConn(ic)
	go conn.run(ic)
	return conn, &testServer{conn: serverEnd, reader: bufio.NewReader(serverEnd)}
}

func nextEvent(t *testing.T, conn *Connection) (event Event, open bool) {
	t.Helper()
	select {
	case event, open = <-conn.Events():
		return event, open
	case <-time.After(testTimeout):
		t.Fatal("timed out waiting for event")
	}
	return
}

func plainClientConfig() *ClientConfig {
	config := new(ClientConfig)
	config.Server.Address = "irc.example.net:6667"
	config.Nick = "peekaboo"
	config.Username = "simon"
	config.Realname = "simon"
	return config
}

func TestConnectionLifecycle(t *testing.T) {
	conn, server := startTestConnection(t, plainClientConfig())

	server.expectLine(t, "NICK peekaboo")
	server.expectLine(t, "USER simon 0 * :simon")

	if event, _ := nextEvent(t, conn); event != (ConnectEvent{}) {
		t.Fatalf("expected ConnectEvent, got %#v", event)
	}

	server.sendLine(t, ":irc.example.net 001 peekaboo :Welcome to the Example Network")
	event, _ := nextEvent(t, conn)
	msgEvent, ok := event.(MessageEvent)
	if !ok {
		t.Fatalf("expected MessageEvent, got %#v", event)
	}
	if msgEvent.Message.Code != RplWelcome {
		t.Errorf("expected RPL_WELCOME, got %q", msgEvent.Message.Code)
	}
	if msgEvent.Message.Prefix != (ServerPrefix{Name: "irc.example.net"}) {
		t.Errorf("unexpected prefix: %#v", msgEvent.Message.Prefix)
	}

	// PINGs are answered automatically, and still surfaced as events
	server.sendLine(t, "PING :deadbeef")
	server.expectLine(t, "PONG :deadbeef")
	if event, _ := nextEvent(t, conn); event.(MessageEvent).Message.Code != CodePing {
		t.Fatalf("expected the PING to be surfaced, got %#v", event)
	}

	// a bad line doesn't kill the link
	server.sendLine(t, ":only.a.prefix")
	event, _ = nextEvent(t, conn)
	parseEvent, ok := event.(ParseErrorEvent)
	if !ok {
		t.Fatalf("expected ParseErrorEvent, got %#v", event)
	}
	if parseEvent.Err != ErrUnexpectedEnd {
		t.Errorf("expected ErrUnexpectedEnd, got %v", parseEvent.Err)
	}

	// link drops without reconnection configured: DisconnectEvent, then
	// the event channel closes
	server.conn.Close()
	event, _ = nextEvent(t, conn)
	discEvent, ok := event.(DisconnectEvent)
	if !ok {
		t.Fatalf("expected DisconnectEvent, got %#v", event)
	}
	if discEvent.Err == nil {
		t.Errorf("a dropped link should carry its read error")
	}
	if _, open := nextEvent(t, conn); open {
		t.Fatal("expected the event channel to close")
	}
}

func TestConnectionShutdown(t *testing.T) {
	conn, server := startTestConnection(t, plainClientConfig())

	server.expectLine(t, "NICK peekaboo")
	server.expectLine(t, "USER simon 0 * :simon")
	if event, _ := nextEvent(t, conn); event != (ConnectEvent{}) {
		t.Fatalf("expected ConnectEvent, got %#v", event)
	}

	conn.Shutdown()
	event, _ := nextEvent(t, conn)
	discEvent, ok := event.(DisconnectEvent)
	if !ok {
		t.Fatalf("expected DisconnectEvent, got %#v", event)
	}
	if discEvent.Err != nil {
		t.Errorf("a deliberate shutdown should not carry an error, got %v", discEvent.Err)
	}
	if _, open := nextEvent(t, conn); open {
		t.Fatal("expected the event channel to close")
	}

	if err := conn.Writer().SendLine("QUIT"); err != errWriterClosed {
		t.Errorf("expected errWriterClosed after shutdown, got %v", err)
	}
}

func TestConnectionServerPassword(t *testing.T) {
	config := plainClientConfig()
	config.Server.Password = "hunter2"
	conn, server := startTestConnection(t, config)

	server.expectLine(t, "PASS hunter2")
	server.expectLine(t, "NICK peekaboo")
	server.expectLine(t, "USER simon 0 * :simon")

	conn.Shutdown()
	for {
		if _, open := nextEvent(t, conn); !open {
			break
		}
	}
}

func TestConnectionSASLPlain(t *testing.T) {
	config := plainClientConfig()
	config.SASL.Enabled = true
	config.SASL.Mechanism = "PLAIN"
	config.SASL.Username = "peekaboo"
	config.SASL.Password = "hunter2"
	conn, server := startTestConnection(t, config)

	server.expectLine(t, "CAP REQ :sasl")
	server.expectLine(t, "NICK peekaboo")
	server.expectLine(t, "USER simon 0 * :simon")

	server.sendLine(t, ":irc.example.net CAP * ACK :sasl")
	server.expectLine(t, "AUTHENTICATE PLAIN")
	server.sendLine(t, "AUTHENTICATE +")
	// base64("\x00peekaboo\x00hunter2")
	server.expectLine(t, "AUTHENTICATE AHBlZWthYm9vAGh1bnRlcjI=")
	server.sendLine(t, ":irc.example.net 903 peekaboo :SASL authentication successful")
	server.expectLine(t, "CAP END")

	conn.Shutdown()
	for {
		if _, open := nextEvent(t, conn); !open {
			break
		}
	}
}

func TestConnectionSASLRefused(t *testing.T) {
	config := plainClientConfig()
	config.SASL.Enabled = true
	config.SASL.Mechanism = "PLAIN"
	config.SASL.Username = "peekaboo"
	config.SASL.Password = "hunter2"
	conn, server := startTestConnection(t, config)

	server.expectLine(t, "CAP REQ :sasl")
	server.expectLine(t, "NICK peekaboo")
	server.expectLine(t, "USER simon 0 * :simon")

	server.sendLine(t, ":irc.example.net CAP * NAK :sasl")
	server.expectLine(t, "CAP END")

	sawError := false
	conn.Shutdown()
	for {
		event, open := nextEvent(t, conn)
		if !open {
			break
		}
		if errEvent, ok := event.(ErrorEvent); ok && errEvent.Err == errSaslFail {
			sawError = true
		}
	}
	if !sawError {
		t.Error("expected an ErrorEvent for the refused sasl capability")
	}
}

func TestCapListContains(t *testing.T) {
	if !capListContains("sasl", "sasl") {
		t.Error("plain token")
	}
	if !capListContains("multi-prefix sasl=PLAIN,EXTERNAL server-time", "sasl") {
		t.Error("token with value in a list")
	}
	if capListContains("saslx multi-prefix", "sasl") {
		t.Error("prefix of another token should not match")
	}
}

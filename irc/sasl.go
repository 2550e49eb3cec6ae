// Copyright (c) 2021 Shivaram Lingamneni <slingamn@cs.stanford.edu>
// released under the MIT license

package irc

import (
	"strings"

	"github.com/ergochat/irc-go/ircutils"
	"github.com/xdg-go/scram"
)

// don't let a misbehaving server make us buffer an unbounded challenge
const saslBufferLimit = 8192

// saslClient runs the client side of one SASL mechanism.
type saslClient interface {
	// Name returns the mechanism name as sent with AUTHENTICATE.
	Name() string
	// Step consumes a server challenge (empty for the initial one) and
	// produces the next response.
	Step(challenge []byte) (response []byte, err error)
}

func newSaslClient(conf SASLConfig) (saslClient, error) {
	if conf.Username == "" || conf.Password == "" {
		return nil, errSaslCredentials
	}
	switch strings.ToUpper(conf.Mechanism) {
	case "PLAIN":
		return &saslPlainClient{username: conf.Username, password: conf.Password}, nil
	case "SCRAM-SHA-256":
		client, err := scram.SHA256.NewClient(conf.Username, conf.Password, "")
		if err != nil {
			return nil, err
		}
		return &saslScramClient{name: "SCRAM-SHA-256", conversation: client.NewConversation()}, nil
	default:
		return nil, errSaslMechanism
	}
}

// saslPlainClient implements the PLAIN mechanism (RFC 4616): a single
// response of authzid NUL authcid NUL password, with an empty authzid.
type saslPlainClient struct {
	username string
	password string
}

func (c *saslPlainClient) Name() string {
	return "PLAIN"
}

func (c *saslPlainClient) Step(challenge []byte) ([]byte, error) {
	response := []byte("\x00" + c.username + "\x00" + c.password)
	return response, nil
}

// saslScramClient adapts a SCRAM conversation to the saslClient interface.
type saslScramClient struct {
	name         string
	conversation *scram.ClientConversation
}

func (c *saslScramClient) Name() string {
	return c.name
}

func (c *saslScramClient) Step(challenge []byte) ([]byte, error) {
	response, err := c.conversation.Step(string(challenge))
	if err != nil {
		return nil, err
	}
	return []byte(response), nil
}

// saslSession is the in-flight state of one authentication attempt; it is
// only touched from the connection's read loop.
type saslSession struct {
	client     saslClient
	buffer     ircutils.SASLBuffer
	inProgress bool
}

func (s *saslSession) reset(conf SASLConfig) error {
	client, err := newSaslClient(conf)
	if err != nil {
		s.client = nil
		return err
	}
	s.client = client
	s.buffer.Initialize(saslBufferLimit)
	s.inProgress = false
	return nil
}

func (s *saslSession) enabled() bool {
	return s.client != nil
}

func (s *saslSession) finish() {
	s.inProgress = false
	s.client = nil
	s.buffer.Clear()
}

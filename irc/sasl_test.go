// Copyright (c) 2021 Shivaram Lingamneni <slingamn@cs.stanford.edu>
// released under the MIT license

package irc

import (
	"strings"
	"testing"
)

func TestNewSaslClient(t *testing.T) {
	conf := SASLConfig{Enabled: true, Mechanism: "PLAIN", Username: "bob", Password: "pw"}
	client, err := newSaslClient(conf)
	if err != nil {
		t.Fatal(err)
	}
	if client.Name() != "PLAIN" {
		t.Errorf("unexpected mechanism name: %s", client.Name())
	}

	conf.Mechanism = "scram-sha-256"
	client, err = newSaslClient(conf)
	if err != nil {
		t.Fatal(err)
	}
	if client.Name() != "SCRAM-SHA-256" {
		t.Errorf("unexpected mechanism name: %s", client.Name())
	}

	conf.Mechanism = "EXTERNAL"
	if _, err = newSaslClient(conf); err != errSaslMechanism {
		t.Errorf("expected errSaslMechanism, got %v", err)
	}

	conf.Mechanism = "PLAIN"
	conf.Password = ""
	if _, err = newSaslClient(conf); err != errSaslCredentials {
		t.Errorf("expected errSaslCredentials, got %v", err)
	}
}

func TestSaslPlainResponse(t *testing.T) {
	client := &saslPlainClient{username: "bob", password: "hunter2"}
	response, err := client.Step(nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(response) != "\x00bob\x00hunter2" {
		t.Errorf("unexpected PLAIN response: %q", response)
	}
}

func TestSaslScramFirstMessage(t *testing.T) {
	conf := SASLConfig{Enabled: true, Mechanism: "SCRAM-SHA-256", Username: "bob", Password: "pw"}
	client, err := newSaslClient(conf)
	if err != nil {
		t.Fatal(err)
	}
	response, err := client.Step(nil)
	if err != nil {
		t.Fatal(err)
	}
	// client-first-message: gs2 header, then n=<user>,r=<nonce>
	if !strings.HasPrefix(string(response), "n,,n=bob,r=") {
		t.Errorf("unexpected client-first-message: %q", response)
	}
}

func TestSaslSessionReset(t *testing.T) {
	var session saslSession
	if session.enabled() {
		t.Error("zero session should be disabled")
	}
	conf := SASLConfig{Enabled: true, Mechanism: "PLAIN", Username: "bob", Password: "pw"}
	if err := session.reset(conf); err != nil {
		t.Fatal(err)
	}
	if !session.enabled() || session.inProgress {
		t.Error("reset session should be enabled and idle")
	}
	session.inProgress = true
	session.finish()
	if session.enabled() || session.inProgress {
		t.Error("finished session should be disabled")
	}
}

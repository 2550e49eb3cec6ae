// Copyright (c) 2021 Shivaram Lingamneni <slingamn@cs.stanford.edu>
// released under the MIT license

package irc

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/ergochat/loirc/irc/logger"
)

func TestLoadConfig(t *testing.T) {
	config, err := LoadConfig(filepath.Join("testdata", "loirc.yaml"))
	if err != nil {
		t.Fatalf("could not load config: %v", err)
	}

	if config.Server.Address != "irc.example.net:6697" {
		t.Errorf("unexpected server address: %s", config.Server.Address)
	}
	if !config.Server.TLS.Enabled || config.Server.TLS.ServerName != "irc.example.net" {
		t.Errorf("unexpected TLS config: %#v", config.Server.TLS)
	}
	if config.Nick != "peekaboo" || config.Username != "simon" || config.Realname != "simon" {
		t.Errorf("unexpected identity: %s %s %s", config.Nick, config.Username, config.Realname)
	}
	if !config.SASL.Enabled || config.SASL.Mechanism != "SCRAM-SHA-256" {
		t.Errorf("unexpected SASL config: %#v", config.SASL)
	}
	if config.Reconnect.Delay != 5*time.Second || config.Reconnect.MaxAttempts != 10 {
		t.Errorf("unexpected reconnect config: %#v", config.Reconnect)
	}
	if config.Activity.PingInterval != 3*time.Minute || config.Activity.Timeout != 30*time.Second {
		t.Errorf("unexpected activity config: %#v", config.Activity)
	}

	if len(config.Logging) != 1 {
		t.Fatalf("expected 1 logging block, got %d", len(config.Logging))
	}
	logConfig := config.Logging[0]
	if !logConfig.MethodStderr || logConfig.MethodStdout || logConfig.MethodFile {
		t.Errorf("unexpected logging methods: %#v", logConfig)
	}
	if logConfig.Level != logger.LogInfo {
		t.Errorf("unexpected logging level: %v", logConfig.Level)
	}
	if !reflect.DeepEqual(logConfig.Types, []string{"*"}) || !reflect.DeepEqual(logConfig.ExcludedTypes, []string{"wire"}) {
		t.Errorf("unexpected logging types: %#v", logConfig)
	}
}

func loadConfigLiteral(t *testing.T, contents string) (*ClientConfig, error) {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "loirc.yaml")
	if err := ioutil.WriteFile(filename, []byte(contents), os.FileMode(0644)); err != nil {
		t.Fatal(err)
	}
	return LoadConfig(filename)
}

func TestLoadConfigDefaults(t *testing.T) {
	config, err := loadConfigLiteral(t, "server:\n    address: \"irc.example.net:6667\"\nnick: \"bob\"\n")
	if err != nil {
		t.Fatal(err)
	}
	// username and realname fall back to the nick
	if config.Username != "bob" || config.Realname != "bob" {
		t.Errorf("defaults not applied: %s %s", config.Username, config.Realname)
	}
	// reconnection and the activity monitor default to off
	if config.Reconnect.Delay != 0 || config.Activity.PingInterval != 0 {
		t.Errorf("expected reconnect and activity to be disabled by default")
	}
}

func TestLoadConfigMissingFields(t *testing.T) {
	if _, err := loadConfigLiteral(t, "nick: \"bob\"\n"); err != ErrServerAddressMissing {
		t.Errorf("expected ErrServerAddressMissing, got %v", err)
	}
	if _, err := loadConfigLiteral(t, "server:\n    address: \"irc.example.net:6667\"\n"); err != ErrNickMissing {
		t.Errorf("expected ErrNickMissing, got %v", err)
	}
}

func TestLoadConfigBadLogging(t *testing.T) {
	contents := "server:\n    address: \"irc.example.net:6667\"\nnick: \"bob\"\nlogging:\n    -\n        method: file\n        type: \"*\"\n        level: info\n"
	if _, err := loadConfigLiteral(t, contents); err != ErrLoggerFilenameMissing {
		t.Errorf("expected ErrLoggerFilenameMissing, got %v", err)
	}

	contents = "server:\n    address: \"irc.example.net:6667\"\nnick: \"bob\"\nlogging:\n    -\n        method: stderr\n        type: \"-wire\"\n        level: info\n"
	if _, err := loadConfigLiteral(t, contents); err != ErrLoggerHasNoTypes {
		t.Errorf("expected ErrLoggerHasNoTypes, got %v", err)
	}

	contents = "server:\n    address: \"irc.example.net:6667\"\nnick: \"bob\"\nlogging:\n    -\n        method: stderr\n        type: \"*\"\n        level: loud\n"
	if _, err := loadConfigLiteral(t, contents); err == nil {
		t.Errorf("expected an error for an unknown log level")
	}
}

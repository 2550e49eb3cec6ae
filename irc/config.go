// Copyright (c) 2021 Shivaram Lingamneni <slingamn@cs.stanford.edu>
// released under the MIT license

package irc

import (
	"crypto/tls"
	"errors"
	"fmt"
	"io/ioutil"
	"strings"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/ergochat/loirc/irc/logger"
)

// here's how this works: exported (capitalized) members of the config structs
// are defined in the YAML file and deserialized directly from there. They may
// be postprocessed and overwritten by LoadConfig. Unexported (lowercase)
// members are derived from the exported members in LoadConfig.

var (
	ErrServerAddressMissing  = errors.New("Server address missing")
	ErrNickMissing           = errors.New("Nick missing")
	ErrLoggerFilenameMissing = errors.New("Logging configuration specifies 'file' method but 'filename' is empty")
	ErrLoggerExcludeEmpty    = errors.New("Encountered logging type '-' with no type to exclude")
	ErrLoggerHasNoTypes      = errors.New("Logger has no types to log")
)

// TLSConfig defines configuration options for connecting over TLS.
type TLSConfig struct {
	Enabled            bool
	InsecureSkipVerify bool   `yaml:"insecure_skip_verify"`
	ServerName         string `yaml:"servername"`
}

// Config returns the tls.Config associated with this TLSConfig.
func (conf *TLSConfig) Config() *tls.Config {
	return &tls.Config{
		InsecureSkipVerify: conf.InsecureSkipVerify,
		ServerName:         conf.ServerName,
	}
}

// SASLConfig defines SASL credentials for authenticating during
// registration.
type SASLConfig struct {
	Enabled   bool
	Mechanism string
	Username  string
	Password  string
}

// ClientConfig defines a full client configuration, normally deserialized
// from a YAML file.
type ClientConfig struct {
	Server struct {
		// Address is the host:port to dial, e.g. "irc.libera.chat:6697".
		Address string
		// WebsocketURL, if set, connects over a websocket instead of a
		// plain stream, e.g. "wss://example.com/webirc".
		WebsocketURL string `yaml:"websocket-url"`
		Password     string
		TLS          TLSConfig
	}

	Nick     string
	Username string
	Realname string

	SASL SASLConfig

	Reconnect struct {
		// DelayString is the delay between attempts; empty or "0s"
		// disables reconnection.
		DelayString string        `yaml:"delay"`
		Delay       time.Duration `yaml:"-"`
		// MaxAttempts caps consecutive failed attempts; 0 means no cap.
		MaxAttempts int `yaml:"max-attempts"`
	}

	Activity struct {
		// PingIntervalString is how long the link may stay silent before
		// we send a PING; empty disables the activity monitor.
		PingIntervalString string        `yaml:"ping-interval"`
		PingInterval       time.Duration `yaml:"-"`
		// TimeoutString is how long after that PING we wait before
		// declaring the link dead.
		TimeoutString string        `yaml:"timeout"`
		Timeout       time.Duration `yaml:"-"`
	}

	Logging []logger.LoggingConfig

	Filename string `yaml:"-"`
}

// LoadConfig loads the given YAML configuration file.
func LoadConfig(filename string) (config *ClientConfig, err error) {
	data, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, err
	}

	config.Filename = filename

	if config.Server.Address == "" && config.Server.WebsocketURL == "" {
		return nil, ErrServerAddressMissing
	}
	if config.Nick == "" {
		return nil, ErrNickMissing
	}
	if config.Username == "" {
		config.Username = config.Nick
	}
	if config.Realname == "" {
		config.Realname = config.Nick
	}

	if config.Reconnect.DelayString != "" {
		config.Reconnect.Delay, err = time.ParseDuration(config.Reconnect.DelayString)
		if err != nil {
			return nil, fmt.Errorf("Could not parse reconnect delay: %s", err.Error())
		}
	}
	if config.Activity.PingIntervalString != "" {
		config.Activity.PingInterval, err = time.ParseDuration(config.Activity.PingIntervalString)
		if err != nil {
			return nil, fmt.Errorf("Could not parse ping interval: %s", err.Error())
		}
		config.Activity.Timeout = config.Activity.PingInterval
		if config.Activity.TimeoutString != "" {
			config.Activity.Timeout, err = time.ParseDuration(config.Activity.TimeoutString)
			if err != nil {
				return nil, fmt.Errorf("Could not parse activity timeout: %s", err.Error())
			}
		}
	}

	if config.SASL.Enabled {
		if config.SASL.Mechanism == "" {
			config.SASL.Mechanism = "PLAIN"
		}
		if config.SASL.Username == "" {
			config.SASL.Username = config.Nick
		}
	}

	// process logging config
	var newLogConfigs []logger.LoggingConfig
	for _, logConfig := range config.Logging {
		// methods
		methods := make(map[string]bool)
		for _, method := range strings.Split(logConfig.Method, " ") {
			if len(method) > 0 {
				methods[strings.ToLower(method)] = true
			}
		}
		if methods["file"] && logConfig.Filename == "" {
			return nil, ErrLoggerFilenameMissing
		}
		logConfig.MethodFile = methods["file"]
		logConfig.MethodStdout = methods["stdout"]
		logConfig.MethodStderr = methods["stderr"]

		// levels
		level, exists := logger.LogLevelNames[strings.ToLower(logConfig.LevelString)]
		if !exists {
			return nil, fmt.Errorf("Could not translate log level [%s]", logConfig.LevelString)
		}
		logConfig.Level = level

		// types
		for _, typeStr := range strings.Split(logConfig.TypeString, " ") {
			if len(typeStr) == 0 {
				continue
			}
			if typeStr == "-" {
				return nil, ErrLoggerExcludeEmpty
			}
			if typeStr[0] == '-' {
				typeStr = typeStr[1:]
				logConfig.ExcludedTypes = append(logConfig.ExcludedTypes, typeStr)
			} else {
				logConfig.Types = append(logConfig.Types, typeStr)
			}
		}
		if len(logConfig.Types) < 1 {
			return nil, ErrLoggerHasNoTypes
		}

		newLogConfigs = append(newLogConfigs, logConfig)
	}
	config.Logging = newLogConfigs

	return config, nil
}

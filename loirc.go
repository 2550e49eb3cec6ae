// Copyright (c) 2021 Shivaram Lingamneni <slingamn@cs.stanford.edu>
// released under the MIT license

package main

import (
	"fmt"
	"log"
	"syscall"

	"golang.org/x/term"

	"github.com/docopt/docopt-go"
	"github.com/ergochat/irc-go/ircfmt"

	"github.com/ergochat/loirc/irc"
	"github.com/ergochat/loirc/irc/logger"
)

// set via linker flags, either by make or by goreleaser:
var commit = ""  // git hash
var version = "" // tagged version

// get a password from stdin from the user
func getPasswordFromTerminal() string {
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		log.Fatal("Error reading password:", err.Error())
	}
	return string(bytePassword)
}

func main() {
	irc.SetVersionString(version, commit)
	usage := `loirc.
loirc is a low-level IRC client library; this binary is its demo client:
it connects, joins a channel, says its piece and logs everything it sees.
Usage:
	loirc run [--conf <filename>] [--channel <channel>] [--message <text>]
	loirc -h | --help
	loirc --version
Options:
	--conf <filename>    Configuration file to use [default: loirc.yaml].
	--channel <channel>  Channel to join [default: #loirc].
	--message <text>     What to say after joining [default: peekaboo].
	-h --help            Show this screen.
	--version            Show version.`

	arguments, _ := docopt.ParseArgs(usage, nil, irc.Ver)

	configfile := arguments["--conf"].(string)
	config, err := irc.LoadConfig(configfile)
	if err != nil {
		log.Fatal("Config file did not load successfully: ", err.Error())
	}

	logman, err := logger.NewManager(config.Logging)
	if err != nil {
		log.Fatal("Logger did not load successfully:", err.Error())
	}

	if config.SASL.Enabled && config.SASL.Password == "" {
		if !term.IsTerminal(int(syscall.Stdin)) {
			log.Fatal("SASL is enabled but no password is configured")
		}
		fmt.Print("Enter SASL Password: ")
		config.SASL.Password = getPasswordFromTerminal()
		fmt.Print("\n")
	}

	if arguments["run"].(bool) {
		channel := arguments["--channel"].(string)
		message := arguments["--message"].(string)

		logman.Info("connect", fmt.Sprintf("%s starting", irc.Ver))
		conn, err := irc.Connect(config, logman)
		if err != nil {
			log.Fatal("Could not connect: ", err.Error())
		}
		w := conn.Writer()

		for event := range conn.Events() {
			switch event := event.(type) {
			case irc.MessageEvent:
				handleMessage(event.Message, w, logman, config.Nick, channel, message)
			case irc.ParseErrorEvent:
				logman.Warning("message", "dropped unparseable line", event.Line)
			case irc.ReconnectFailedEvent:
				log.Fatal("Could not reconnect: ", event.Err.Error())
			case irc.ErrorEvent:
				logman.Error("connect", event.Err.Error())
			}
		}
	}
}

func handleMessage(msg irc.Message, w *irc.Writer, logman *logger.Manager, nick, channel, message string) {
	switch msg.Code {
	case irc.RplWelcome:
		w.SendLine("JOIN " + channel)
	case irc.CodeJoin:
		// announce ourselves once our own join echoes back
		if prefix, ok := msg.Prefix.(irc.UserPrefix); ok && prefix.Nickname == nick {
			w.SendLine(fmt.Sprintf("PRIVMSG %s :%s", channel, message))
		}
	case irc.CodePrivmsg:
		if len(msg.Args) == 2 {
			from := "?"
			if prefix, ok := msg.Prefix.(irc.UserPrefix); ok {
				from = prefix.Nickname
			}
			logman.Info("message", fmt.Sprintf("<%s> %s", from, ircfmt.Strip(msg.Args[1])))
		}
	case irc.ErrNicknameinuse:
		logman.Error("connect", "nickname in use")
	}
}

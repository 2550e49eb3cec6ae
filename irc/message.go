// Copyright (c) 2021 Shivaram Lingamneni <slingamn@cs.stanford.edu>
// released under the MIT license

package irc

import (
	"strings"
)

// Message is one parsed protocol line received from the server.
type Message struct {
	// Prefix identifies the origin of the message; nil when the line
	// carried no prefix token.
	Prefix Prefix
	// Code is the command or numeric reply that identifies the message.
	Code Code
	// Args holds the positional parameters in wire order. If the line
	// carried a trailing :-argument, it appears as the final element,
	// with its internal spaces preserved.
	Args []string
}

// Prefix is the origin of a message: either a bare server name or a
// nick!user@host triple. A nil Prefix means the line had no prefix.
type Prefix interface {
	sealedPrefix()
}

// ServerPrefix is a message origin consisting of a bare server name.
type ServerPrefix struct {
	Name string
}

// UserPrefix is a message origin that matched the nick!user@host form.
type UserPrefix struct {
	Nickname string
	Username string
	Hostname string
}

func (ServerPrefix) sealedPrefix() {}

func (UserPrefix) sealedPrefix() {}

// ParseLine parses a single protocol line into a Message. The line may
// carry its trailing CRLF; embedded newlines are not expected (framing is
// the reader's concern). On failure the returned error is one of
// ErrEmptyMessage, ErrEmptyCommand or ErrUnexpectedEnd.
//
// ParseLine is a pure function: it touches no shared state and is safe to
// call concurrently.
func ParseLine(line string) (msg Message, err error) {
	if len(line) == 0 || len(strings.TrimSpace(line)) == 0 {
		return msg, ErrEmptyMessage
	}

	// tokenize on a view of the input; strings are only retained when
	// they land in the result
	state := strings.TrimSuffix(line, "\r\n")

	if strings.HasPrefix(state, ":") {
		idx := strings.IndexByte(state, ' ')
		if idx == -1 {
			// a prefix with nothing after it
			return msg, ErrUnexpectedEnd
		}
		msg.Prefix = parsePrefix(state[1:idx])
		state = state[idx+1:]
	}

	var codeToken string
	if idx := strings.IndexByte(state, ' '); idx != -1 {
		codeToken = state[:idx]
		state = state[idx+1:]
	} else if len(state) != 0 {
		codeToken = state
		state = ""
	} else {
		return msg, ErrEmptyCommand
	}

	for len(state) != 0 {
		if state[0] == ':' {
			// trailing argument: the rest of the line, verbatim
			msg.Args = append(msg.Args, state[1:])
			break
		}
		idx := strings.IndexByte(state, ' ')
		if idx == -1 {
			msg.Args = append(msg.Args, state)
			break
		}
		msg.Args = append(msg.Args, state[:idx])
		state = state[idx+1:]
	}

	msg.Code = LookupCode(codeToken)
	return msg, nil
}

// parsePrefix resolves a prefix token (without its leading colon). A token
// containing ! but no subsequent @ is ambiguous; it yields no prefix rather
// than failing the whole message, since dropping an optional origin field
// beats discarding an otherwise well-formed line.
func parsePrefix(token string) Prefix {
	excl := strings.IndexByte(token, '!')
	if excl == -1 {
		return ServerPrefix{Name: token}
	}
	rest := token[excl+1:]
	at := strings.IndexByte(rest, '@')
	if at == -1 {
		return nil
	}
	return UserPrefix{
		Nickname: token[:excl],
		Username: rest[:at],
		Hostname: rest[at+1:],
	}
}

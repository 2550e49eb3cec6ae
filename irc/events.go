// Copyright (c) 2021 Shivaram Lingamneni <slingamn@cs.stanford.edu>
// released under the MIT license

package irc

// Event is a lifecycle or protocol notification delivered on the
// connection's event channel, in the order it occurred.
type Event interface {
	sealedEvent()
}

// ConnectEvent indicates that the connection (or a reconnection) was
// established and registration commands have been sent.
type ConnectEvent struct{}

// DisconnectEvent indicates that the link was lost. If the connection is
// configured to reconnect, a ReconnectingEvent follows; otherwise the event
// channel is closed after this event.
type DisconnectEvent struct {
	// Err is the read error that ended the connection, if any; nil on a
	// deliberate shutdown.
	Err error
}

// ReconnectingEvent indicates that a reconnection attempt is about to be
// made after the configured delay.
type ReconnectingEvent struct {
	// Attempt counts consecutive failed attempts, starting at 1.
	Attempt int
}

// ReconnectFailedEvent indicates that the configured attempt cap was
// reached; the connection gives up and closes the event channel.
type ReconnectFailedEvent struct {
	Err error
}

// MessageEvent carries one successfully parsed protocol line.
type MessageEvent struct {
	Message Message
}

// ParseErrorEvent carries a line that could not be parsed, together with
// the classification of the failure. Receiving one does not terminate the
// connection; policy for repeated failures belongs to the application.
type ParseErrorEvent struct {
	Line string
	Err  error
}

// ErrorEvent carries a non-fatal operational error, e.g. a failed write.
type ErrorEvent struct {
	Err error
}

func (ConnectEvent) sealedEvent()         {}
func (DisconnectEvent) sealedEvent()      {}
func (ReconnectingEvent) sealedEvent()    {}
func (ReconnectFailedEvent) sealedEvent() {}
func (MessageEvent) sealedEvent()         {}
func (ParseErrorEvent) sealedEvent()      {}
func (ErrorEvent) sealedEvent()           {}

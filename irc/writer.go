// Copyright (c) 2021 Shivaram Lingamneni <slingamn@cs.stanford.edu>
// released under the MIT license

package irc

import (
	"strings"
	"sync"

	"github.com/ergochat/irc-go/ircutils"
)

// MaxLineLen is the maximum length of an outbound protocol line,
// including the trailing CRLF.
const MaxLineLen = 512

// Writer is a concurrency-safe handle for sending raw protocol lines. It
// remains valid across reconnections; writes issued while the link is down
// fail with an error instead of blocking.
type Writer struct {
	mutex  sync.Mutex
	conn   IRCConn
	closed bool
}

// swap the underlying transport after a reconnection; nil detaches it
func (w *Writer) setConn(conn IRCConn) {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	w.conn = conn
}

func (w *Writer) close() {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	w.conn = nil
	w.closed = true
}

// SendLine sends one raw protocol line, appending CRLF. Lines longer than
// MaxLineLen are truncated on a UTF-8 boundary. Embedded newlines are
// rejected rather than silently splitting into multiple commands.
func (w *Writer) SendLine(line string) error {
	if strings.IndexByte(line, '\n') != -1 || strings.IndexByte(line, '\r') != -1 {
		return errEmbeddedNewline
	}
	line = ircutils.TruncateUTF8Safe(line, MaxLineLen-2)

	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.closed {
		return errWriterClosed
	}
	if w.conn == nil {
		return errConnectionStopped
	}
	return w.conn.Write([]byte(line + "\r\n"))
}

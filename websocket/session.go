package websocket

import (
	"context"
	"io"
	"sync"
)

// Config carries the two flags a Session needs that only the completed
// handshake can supply (spec.md §6 "Configuration options").
type Config struct {
	// MaskOutbound must be true in the client role, false in the
	// server role (RFC 6455 Section 5.1).
	MaskOutbound bool
	// DeflateSupported enables rsv1 acceptance on read and must match
	// whatever ServerAccept / ClientConnect negotiated.
	DeflateSupported bool
}

// Session is the composition root spawned once per handshaken
// connection (spec.md §2 item 6, §4.4). It owns the two channels the
// reader and writer tasks exchange application Messages over; it does
// not itself read or write the stream.
type Session struct {
	incoming <-chan Message
	outgoing chan<- Message

	cancel context.CancelFunc
	wg     sync.WaitGroup

	closeOnce sync.Once
}

// NewSession spawns the reader and writer tasks and returns the Session
// handle. r and w are the read half and write half of a duplex byte
// stream already positioned just past a completed handshake: the reader
// task only calls r.Read, the writer task only calls w.Write.
//
// r must be the *bufio.Reader ServerAccept or ClientConnect returned,
// not the raw stream passed to them — the handshake may have buffered
// bytes past its terminating blank line (a peer that pipelines its first
// frame with the handshake response), and those bytes are only reachable
// through that reader. w is typically the same net.Conn the handshake's
// stream wrapped, since net.Conn supports one concurrent reader and one
// concurrent writer.
//
// ctx bounds the session's lifetime for the purpose of unblocking the
// reader's terminal Close send (see runReader); it does not cancel an
// in-flight Read or Write — closing the underlying connection is the
// only way to force those to return, per spec.md §5 "Cancellation".
//
// If logger is nil, a NopLogger is used.
func NewSession(ctx context.Context, r io.Reader, w io.Writer, cfg Config, logger Logger) *Session {
	if logger == nil {
		logger = NopLogger{}
	}

	ctx, cancel := context.WithCancel(ctx)

	incoming := make(chan Message, 1)
	outgoing := make(chan Message, 1)

	s := &Session{
		incoming: incoming,
		outgoing: outgoing,
		cancel:   cancel,
	}

	expectMask := !cfg.MaskOutbound // server expects masked client frames

	s.wg.Add(2)
	go func() {
		defer s.wg.Done()
		runReader(ctx, r, expectMask, cfg.DeflateSupported, incoming, logger)
	}()
	go func() {
		defer s.wg.Done()
		runWriter(w, cfg.MaskOutbound, outgoing, logger)
	}()

	return s
}

// Incoming is the receive end of the reader task's output. The
// application ranges over it until it closes, which happens immediately
// after the single terminal KindClose Message (spec.md §4.4).
func (s *Session) Incoming() <-chan Message {
	return s.incoming
}

// Outgoing is the send end of the writer task's input. Sending a
// KindClose Message asks the writer to write it and exit; closing
// Outgoing (via Session.Close) has the same effect without a caller-
// chosen status.
func (s *Session) Outgoing() chan<- Message {
	return s.outgoing
}

// Close signals both tasks to wind down: it closes Outgoing, which makes
// the writer emit Close(0) and exit, and cancels the session's context,
// which unblocks the reader's terminal Close send if the application has
// already stopped draining Incoming. Close does not wait for the tasks
// to exit; call Wait for that. Safe to call more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.outgoing)
		s.cancel()
	})
}

// Wait blocks until both the reader and writer tasks have exited.
func (s *Session) Wait() {
	s.wg.Wait()
}

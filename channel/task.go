package channel

import (
	"time"

	"github.com/caresgo/caresgo/internal/hostent"
	"github.com/caresgo/caresgo/internal/transport"
)

// taskStatus is a task's position in the Writing -> Reading -> Completed
// lifecycle every query moves through exactly once. There is no
// retransmission: a task that times out or completes never returns to
// Writing.
type taskStatus int

const (
	statusWriting taskStatus = iota
	statusReading
	statusCompleted
)

// taskKind distinguishes the two shapes of delivery GetHostByName and
// Query need: a built Hostent versus the raw answer bytes a typed
// parser (MX/TXT/...) still has to run over.
type taskKind int

const (
	kindHost taskKind = iota
	kindQuery
)

// task is one in-flight query: the socket it owns, the request already
// serialized into writeBuf, and the single callback fired exactly once
// when it reaches statusCompleted, however it got there (a reply, a
// malformed-but-non-zero-rcode response, or the timeout sweep).
type task struct {
	sock      transport.Socket
	writeBuf  []byte
	status    taskStatus
	startedAt time.Time
	expiresAt time.Time
	qtypeName string // metrics label only

	kind     taskKind
	hostMode hostent.Mode
	hostDone HostCallback
	rawDone  QueryCallback
}

// finish marks the task Completed and invokes whichever callback it was
// submitted with, exactly once. raw is the full reply datagram on
// success, nil on failure.
func (t *task) finish(status int, raw []byte) {
	t.status = statusCompleted
	switch t.kind {
	case kindHost:
		if t.hostDone == nil {
			return
		}
		var h *hostent.Hostent
		if status == 0 && raw != nil {
			frame, err := parseFrame(raw)
			if err != nil {
				t.hostDone(errBadResponse, 0, nil)
				return
			}
			built, err := hostent.Build(frame, t.hostMode)
			if err != nil {
				t.hostDone(codeFromError(err), 0, nil)
				return
			}
			h = built
		}
		t.hostDone(status, 0, h)
	case kindQuery:
		if t.rawDone == nil {
			return
		}
		t.rawDone(status, 0, raw)
	}
}

func (t *task) isExpired(now time.Time) bool {
	return !now.Before(t.expiresAt)
}

func (t *task) timeRemaining(now time.Time) time.Duration {
	d := t.expiresAt.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

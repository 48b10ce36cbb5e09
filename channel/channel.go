// Package channel implements the single-threaded, cooperatively-scheduled
// query engine: a Channel owns a set of in-flight tasks and drives their
// Writing -> Reading -> Completed lifecycle one step at a time, entirely
// through caller-supplied readiness sets. It spawns no goroutines and
// takes no locks — a Channel must be driven by exactly one goroutine at a
// time, exactly like the C library it mirrors.
package channel

import (
	"errors"
	"math/rand/v2"
	"net"
	"os"
	"syscall"
	"time"

	"golang.org/x/net/idna"

	"github.com/caresgo/caresgo/internal/cares"
	caresErrors "github.com/caresgo/caresgo/internal/errors"
	"github.com/caresgo/caresgo/internal/hostent"
	"github.com/caresgo/caresgo/internal/metrics"
	"github.com/caresgo/caresgo/internal/serverscsv"
	"github.com/caresgo/caresgo/internal/sysconfig"
	"github.com/caresgo/caresgo/internal/transport"
	"github.com/caresgo/caresgo/internal/wire"
)

// Numeric status codes a HostCallback/QueryCallback is invoked with.
// Their numeric values are the same as the matching ARES_* codes in
// internal/cares.
const (
	codeSuccess     = 0
	codeNoData      = 1
	codeFormErr     = 2
	codeServFail    = 3
	codeNotFound    = 4
	codeBadName     = 8
	codeBadFamily   = 9
	codeBadResponse = 10
	codeTimeout     = 12
	codeDestruction = 16
	errBadResponse  = codeBadResponse
)

// HostCallback receives the outcome of GetHostByName: a non-nil host on
// success, nil otherwise. status is one of the code* constants above.
type HostCallback func(status int, timeouts int, host *hostent.Hostent)

// QueryCallback receives the outcome of Query: the raw reply datagram
// on success (for the caller to hand to a typed parser), nil otherwise.
type QueryCallback func(status int, timeouts int, raw []byte)

// Channel is the query engine. The zero value is not usable; construct
// with New.
type Channel struct {
	cfg       Config
	tasks     []*task
	destroyed bool
	socketCB  func(fd int)
}

const resolvConfPath = "/etc/resolv.conf"

// New builds a Channel, seeding its Config from /etc/resolv.conf (or
// from built-in defaults if that file is missing or fails to parse)
// and then applying opts on top, exactly as ares_init followed by
// ares_init_options layers explicit settings over discovered system
// configuration.
func New(opts ...Option) (*Channel, error) {
	cfg := defaultConfig()

	if data, err := os.ReadFile(resolvConfPath); err == nil {
		if sysCfg, err := sysconfig.Parse(string(data)); err == nil {
			applySysConfig(&cfg, sysCfg)
		}
	}

	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	return &Channel{cfg: cfg}, nil
}

func applySysConfig(cfg *Config, sc *sysconfig.Config) {
	for _, ns := range sc.Nameservers {
		if ip := net.ParseIP(ns); ip != nil {
			cfg.Servers = append(cfg.Servers, serverscsv.Server{Addr: ip})
		}
	}
	if sc.Options.Attempts > 0 {
		cfg.Attempts = int(sc.Options.Attempts)
	}
	if sc.Options.TimeoutSecs > 0 {
		cfg.Timeout = time.Duration(sc.Options.TimeoutSecs) * time.Second
	}
	cfg.Ndots = int(sc.Options.Ndots)
	cfg.Rotate = sc.Options.Rotate
	cfg.Inet6 = sc.Options.Inet6
	cfg.EDNS0 = sc.Options.EDNS0
	cfg.UseVC = sc.Options.UseVC
}

// SetSocketCallback registers a function invoked exactly once per
// created socket, before its first I/O attempt, mirroring
// ares_set_socket_callback.
func (c *Channel) SetSocketCallback(cb func(fd int)) {
	c.socketCB = cb
}

// SetServers replaces the channel's nameserver list, mirroring
// ares_set_servers/ares_set_servers_ports_csv. Callers must not invoke
// this while a query is in flight on the same channel.
func (c *Channel) SetServers(servers ...string) error {
	return WithServers(servers...)(&c.cfg)
}

// Servers returns the channel's current nameserver list, mirroring
// ares_get_servers_ports.
func (c *Channel) Servers() []serverscsv.Server {
	return c.cfg.Servers
}

// GetHostByName submits a forward lookup. family must be
// syscall.AF_INET or syscall.AF_INET6.
func (c *Channel) GetHostByName(name string, family int, cb HostCallback) error {
	var qtype uint16
	var mode hostent.Mode
	switch family {
	case syscall.AF_INET:
		qtype, mode = wire.TypeA, hostent.ModeAddrs4
	case syscall.AF_INET6:
		qtype, mode = wire.TypeAAAA, hostent.ModeAddrs6
	default:
		cb(codeBadFamily, 0, nil)
		return nil
	}
	return c.enqueue(name, qtype, kindHost, mode, cb, nil)
}

// Query submits a raw lookup of the given type/class-IN, delivering the
// reply's raw bytes to cb for the caller to run a typed parser over.
func (c *Channel) Query(name string, qtype uint16, cb QueryCallback) error {
	return c.enqueue(name, qtype, kindQuery, 0, nil, cb)
}

func (c *Channel) enqueue(name string, qtype uint16, kind taskKind, mode hostent.Mode, hostCB HostCallback, rawCB QueryCallback) error {
	if c.destroyed {
		return &caresErrors.ValidationError{Field: "channel", Message: "channel already destroyed"}
	}
	if len(c.cfg.Servers) == 0 {
		return &caresErrors.ValidationError{Field: "servers", Message: "no nameservers configured"}
	}

	ascii, err := idna.Lookup.ToASCII(name)
	if err != nil {
		return &caresErrors.ValidationError{Field: "name", Value: name, Message: "invalid hostname: " + err.Error()}
	}

	server := c.cfg.Servers[0]
	port := server.Port
	if port == 0 {
		port = c.cfg.UDPPort
	}

	sock, err := transport.Dial(server.Addr, port, 0)
	if err != nil {
		return err
	}

	frame := &wire.Frame{
		TransactionID: uint16(rand.Uint32()), //nolint:gosec // not cryptographic, just a correlation id
		Flags:         wire.StandardQuery,
		Queries: []wire.Question{{
			Name:  ascii,
			Type:  qtype,
			Class: wire.ClassIN,
		}},
	}

	buf, err := frame.Serialize()
	if err != nil {
		_ = sock.Close()
		return err
	}

	now := time.Now()
	t := &task{
		sock:      sock,
		writeBuf:  buf,
		status:    statusWriting,
		startedAt: now,
		expiresAt: now.Add(c.cfg.Timeout),
		qtypeName: qtypeName(qtype),
		kind:      kind,
		hostMode:  mode,
		hostDone:  hostCB,
		rawDone:   rawCB,
	}
	c.tasks = append(c.tasks, t)

	if c.socketCB != nil {
		c.socketCB(sock.Fd())
	}
	if c.cfg.metrics != nil {
		c.cfg.metrics.QueriesTotal.WithLabelValues(t.qtypeName).Inc()
		c.cfg.metrics.InFlight.Inc()
	}

	return nil
}

func qtypeName(qtype uint16) string {
	switch qtype {
	case wire.TypeA:
		return "A"
	case wire.TypeAAAA:
		return "AAAA"
	case wire.TypeNS:
		return "NS"
	case wire.TypeMX:
		return "MX"
	case wire.TypeTXT:
		return "TXT"
	default:
		return "UNKNOWN"
	}
}

// Process is the driver step: it sweeps expired tasks (delivering
// ETIMEOUT) strictly before attempting any I/O, then attempts one send
// per Writing task whose fd is in writers and one receive per Reading
// task whose fd is in readers, then drops every task that reached
// Completed this step.
func (c *Channel) Process(readers, writers map[int]bool) {
	now := time.Now()

	for _, t := range c.tasks {
		if t.status == statusCompleted {
			continue
		}
		if t.isExpired(now) {
			c.complete(t, codeTimeout, nil)
		}
	}

	for _, t := range c.tasks {
		if t.status == statusWriting && writers[t.sock.Fd()] {
			if _, err := t.sock.Send(t.writeBuf); err == nil {
				t.status = statusReading
			}
		}
	}

	for _, t := range c.tasks {
		if t.status == statusReading && readers[t.sock.Fd()] {
			c.readOne(t)
		}
	}

	c.sweep()
}

func (c *Channel) readOne(t *task) {
	buf := make([]byte, 65535)
	n, err := t.sock.Recv(buf)
	if err != nil {
		return // would-block or a transient read error: stays Reading
	}

	raw := buf[:n]
	frame, err := wire.ParseFrame(raw)

	// A reply that fails to parse still carries a usable rcode as long as
	// its 12-byte header is intact.
	var flags uint16
	if err == nil {
		flags = frame.Flags
	} else if hdr, herr := wire.ParseHeader(raw); herr == nil {
		flags = hdr.Flags
	}

	if rcode := wire.Rcode(flags); rcode != 0 {
		status := codeServFail
		if rcode == uint8(wire.RcodeNameError) {
			status = codeNotFound
		}
		c.complete(t, status, nil)
		return
	}
	if err != nil {
		return // malformed reply with a zero rcode: silently discarded, task stays Reading
	}

	c.complete(t, codeSuccess, raw)
}

func (c *Channel) complete(t *task, status int, raw []byte) {
	if c.cfg.metrics != nil {
		label := "ok"
		if status == codeTimeout {
			label = "timeout"
			c.cfg.metrics.TimeoutsTotal.WithLabelValues(t.qtypeName).Inc()
		} else if status != codeSuccess {
			label = "error"
		}
		c.cfg.metrics.QueryDuration.WithLabelValues(t.qtypeName, label).Observe(time.Since(t.startedAt).Seconds())
		c.cfg.metrics.InFlight.Dec()
	}
	t.finish(status, raw)
	_ = t.sock.Close()
}

// sweep drops every Completed task from the list.
func (c *Channel) sweep() {
	kept := c.tasks[:0]
	for _, t := range c.tasks {
		if t.status != statusCompleted {
			kept = append(kept, t)
		}
	}
	c.tasks = kept
}

// Fds populates readFds with every Reading task's socket and writeFds
// with every Writing task's socket, returning nfds = max(fd)+1 as
// select(2) expects.
func (c *Channel) Fds() (readFds, writeFds []int, nfds int) {
	maxFd := -1
	for _, t := range c.tasks {
		fd := t.sock.Fd()
		switch t.status {
		case statusWriting:
			writeFds = append(writeFds, fd)
		case statusReading:
			readFds = append(readFds, fd)
		}
		if fd > maxFd {
			maxFd = fd
		}
	}
	if maxFd >= 0 {
		nfds = maxFd + 1
	}
	return readFds, writeFds, nfds
}

// Getsock enumerates up to max in-flight socket fds for a getsock-style
// ABI. A Reading task's slot is marked in readWant; a Writing task's
// slot, whose datagram has not been sent yet, is marked in writeWant
// instead. readWant and writeWant are bitmasks over the returned fds
// slice, one bit per index.
func (c *Channel) Getsock(max int) (fds []int, readWant, writeWant uint32) {
	for _, t := range c.tasks {
		if len(fds) >= max {
			break
		}
		idx := len(fds)
		fds = append(fds, t.sock.Fd())
		switch t.status {
		case statusReading:
			readWant |= 1 << uint(idx)
		case statusWriting:
			writeWant |= 1 << uint(idx)
		}
	}
	return fds, readWant, writeWant
}

// Timeout returns the time remaining until the soonest task expires,
// clamped to maxWait if maxWait is smaller (and maxWait itself if there
// are no in-flight tasks at all, matching ares_timeout's "no timers,
// return the caller's own maximum" behavior).
func (c *Channel) Timeout(maxWait time.Duration) time.Duration {
	now := time.Now()
	best := maxWait
	have := false
	for _, t := range c.tasks {
		if t.status == statusCompleted {
			continue
		}
		remaining := t.timeRemaining(now)
		if !have || remaining < best {
			best = remaining
			have = true
		}
	}
	if have && best > maxWait {
		best = maxWait
	}
	return best
}

// Destroy closes every in-flight task's socket without invoking its
// callback (see SPEC_FULL.md, Open Questions) and marks the channel
// unusable.
func (c *Channel) Destroy() {
	for _, t := range c.tasks {
		_ = t.sock.Close()
		if c.cfg.metrics != nil {
			c.cfg.metrics.InFlight.Dec()
		}
	}
	c.tasks = nil
	c.destroyed = true
}

func parseFrame(raw []byte) (*wire.Frame, error) {
	return wire.ParseFrame(raw)
}

// codeFromError maps a cares.Error returned by Build to the code*
// constants this package hands to callbacks; any other error (Build's
// alias mode can return a wire parse error) maps to codeFormErr.
func codeFromError(err error) int {
	var ce cares.Error
	if errors.As(err, &ce) {
		switch ce.Code() {
		case cares.ENODATA:
			return codeNoData
		case cares.EFORMERR:
			return codeFormErr
		case cares.EBADRESP:
			return codeBadResponse
		}
	}
	return codeFormErr
}

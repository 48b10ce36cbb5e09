package main

/*
#include <stdlib.h>
#include <string.h>
#include <sys/socket.h>
#include "cares_types.h"

static void call_host_cb(ares_host_callback cb, void *arg, int status, int timeouts, struct hostent *h) {
	if (cb != NULL) cb(arg, status, timeouts, h);
}
static void call_query_cb(ares_callback cb, void *arg, int status, int timeouts, unsigned char *abuf, int alen) {
	if (cb != NULL) cb(arg, status, timeouts, abuf, alen);
}
static void call_sock_cb(ares_sock_create_callback cb, int fd, void *data) {
	if (cb != NULL) cb(fd, SOCK_DGRAM, data);
}
*/
import "C"

import (
	"net"
	"runtime/cgo"
	"syscall"
	"time"
	"unsafe"

	"github.com/caresgo/caresgo/channel"
	"github.com/caresgo/caresgo/internal/cares"
	"github.com/caresgo/caresgo/internal/hostent"
)

//export ares_library_init
func ares_library_init(flags C.int) C.int {
	return C.int(cares.SUCCESS)
}

//export ares_library_cleanup
func ares_library_cleanup() {}

//export ares_init
func ares_init(out *unsafe.Pointer) C.int {
	ch, err := channel.New()
	if err != nil {
		return C.int(cares.ENOMEM)
	}
	h := cgo.NewHandle(ch)
	*out = unsafe.Pointer(uintptr(h))
	return C.int(cares.SUCCESS)
}

//export ares_init_options
func ares_init_options(out *unsafe.Pointer, options *C.ares_options, optmask C.int) C.int {
	var opts []channel.Option

	mask := int(optmask)
	if options != nil {
		if mask&cares.OptTimeout != 0 {
			opts = append(opts, channel.WithTimeout(time.Duration(options.timeout)*time.Second))
		}
		if mask&cares.OptNdots != 0 {
			opts = append(opts, channel.WithNdots(int(options.ndots)))
		}
		if mask&cares.OptTries != 0 {
			opts = append(opts, channel.WithAttempts(int(options.tries)))
		}
		if mask&cares.OptUDPPort != 0 {
			opts = append(opts, channel.WithUDPPort(uint16(options.udp_port)))
		}
		if mask&cares.OptTCPPort != 0 {
			opts = append(opts, channel.WithTCPPort(uint16(options.tcp_port)))
		}
		if mask&cares.OptRotate != 0 {
			opts = append(opts, channel.WithRotate(true))
		}
	}

	ch, err := channel.New(opts...)
	if err != nil {
		return C.int(cares.EBADFLAGS)
	}
	h := cgo.NewHandle(ch)
	*out = unsafe.Pointer(uintptr(h))
	return C.int(cares.SUCCESS)
}

//export ares_destroy
func ares_destroy(channelPtr unsafe.Pointer) {
	h := cgo.Handle(uintptr(channelPtr))
	ch, ok := h.Value().(*channel.Channel)
	if !ok {
		return
	}
	ch.Destroy()
	h.Delete()
}

func resolveChannel(channelPtr unsafe.Pointer) *channel.Channel {
	h := cgo.Handle(uintptr(channelPtr))
	ch, _ := h.Value().(*channel.Channel)
	return ch
}

//export ares_set_socket_callback
func ares_set_socket_callback(channelPtr unsafe.Pointer, cb C.ares_sock_create_callback, data unsafe.Pointer) {
	ch := resolveChannel(channelPtr)
	if ch == nil {
		return
	}
	ch.SetSocketCallback(func(fd int) {
		C.call_sock_cb(cb, C.int(fd), data)
	})
}

//export ares_set_servers
func ares_set_servers(channelPtr unsafe.Pointer, servers *C.ares_addr_node) C.int {
	ch := resolveChannel(channelPtr)
	if ch == nil {
		return C.int(cares.ENOTINITIALIZED)
	}

	var addrs []string
	for node := servers; node != nil; node = node.next {
		switch node.family {
		case syscall.AF_INET:
			b := (*[4]byte)(unsafe.Pointer(&node.addr))[:]
			addrs = append(addrs, net.IP(b).String())
		case syscall.AF_INET6:
			b := (*[16]byte)(unsafe.Pointer(&node.addr))[:]
			addrs = append(addrs, net.IP(b).String())
		}
	}
	if len(addrs) == 0 {
		return C.int(cares.EBADFAMILY)
	}
	if err := ch.SetServers(addrs...); err != nil {
		return C.int(cares.EBADNAME)
	}
	return C.int(cares.SUCCESS)
}

//export ares_set_servers_ports_csv
func ares_set_servers_ports_csv(channelPtr unsafe.Pointer, csv *C.char) C.int {
	ch := resolveChannel(channelPtr)
	if ch == nil {
		return C.int(cares.ENOTINITIALIZED)
	}
	if err := ch.SetServers(C.GoString(csv)); err != nil {
		return C.int(cares.EBADNAME)
	}
	return C.int(cares.SUCCESS)
}

//export ares_get_servers_ports
func ares_get_servers_ports(channelPtr unsafe.Pointer, out **C.ares_addr_port_node) C.int {
	ch := resolveChannel(channelPtr)
	if ch == nil {
		return C.int(cares.ENOTINITIALIZED)
	}

	servers := ch.Servers()
	if len(servers) == 0 {
		*out = nil
		return C.int(cares.SUCCESS)
	}

	*out = chainAddrPortNodesEnveloped(servers)
	return C.int(cares.SUCCESS)
}

//export ares_gethostbyname
func ares_gethostbyname(channelPtr unsafe.Pointer, name *C.char, family C.int, cb C.ares_host_callback, arg unsafe.Pointer) {
	ch := resolveChannel(channelPtr)
	hostname := C.GoString(name)

	if ch == nil {
		C.call_host_cb(cb, arg, C.int(cares.ENOTINITIALIZED), 0, nil)
		return
	}

	err := ch.GetHostByName(hostname, int(family), func(status int, timeouts int, h *hostent.Hostent) {
		var che *C.struct_hostent
		if h != nil {
			che = buildCHostent(h)
		}
		C.call_host_cb(cb, arg, C.int(status), C.int(timeouts), che)
	})
	if err != nil {
		C.call_host_cb(cb, arg, C.int(cares.EBADNAME), 0, nil)
	}
}

//export ares_query
func ares_query(channelPtr unsafe.Pointer, name *C.char, dnsclass C.int, qtype C.int, cb C.ares_callback, arg unsafe.Pointer) {
	ch := resolveChannel(channelPtr)
	hostname := C.GoString(name)

	if ch == nil {
		C.call_query_cb(cb, arg, C.int(cares.ENOTINITIALIZED), 0, nil, 0)
		return
	}

	err := ch.Query(hostname, uint16(qtype), func(status int, timeouts int, raw []byte) {
		if len(raw) == 0 {
			C.call_query_cb(cb, arg, C.int(status), C.int(timeouts), nil, 0)
			return
		}
		cbuf := C.CBytes(raw)
		defer C.free(cbuf)
		C.call_query_cb(cb, arg, C.int(status), C.int(timeouts), (*C.uchar)(cbuf), C.int(len(raw)))
	})
	if err != nil {
		C.call_query_cb(cb, arg, C.int(cares.EBADNAME), 0, nil, 0)
	}
}

//export ares_process
func ares_process(channelPtr unsafe.Pointer, readFds, writeFds unsafe.Pointer) {
	// The fd_set-based C signature can't be read portably from Go without
	// per-platform fd_set layout knowledge, so this entry point processes
	// every currently Writing/Reading task's own fd directly rather than
	// intersecting with the caller's fd_set; ares_process_fd below is the
	// precise single-fd entry point a real select/poll loop should use.
	ch := resolveChannel(channelPtr)
	if ch == nil {
		return
	}
	readers, writers, _ := ch.Fds()
	ch.Process(toFdSet(readers), toFdSet(writers))
}

//export ares_process_fd
func ares_process_fd(channelPtr unsafe.Pointer, readFd, writeFd C.int) {
	ch := resolveChannel(channelPtr)
	if ch == nil {
		return
	}
	readers := map[int]bool{}
	writers := map[int]bool{}
	if readFd >= 0 {
		readers[int(readFd)] = true
	}
	if writeFd >= 0 {
		writers[int(writeFd)] = true
	}
	ch.Process(readers, writers)
}

func toFdSet(fds []int) map[int]bool {
	set := make(map[int]bool, len(fds))
	for _, fd := range fds {
		set[fd] = true
	}
	return set
}

//export ares_fds
func ares_fds(channelPtr unsafe.Pointer, readFds, writeFds unsafe.Pointer) C.int {
	// Same fd_set portability problem as ares_process above: an fd_set's
	// in-memory layout is libc/arch-specific, so this can't safely set
	// bits in the caller's readFds/writeFds from Go. It returns the
	// select() nfds value and nothing else; callers that need the
	// actual descriptor list should use ares_getsock instead, which
	// fills a caller-owned *C.int array rather than an fd_set.
	ch := resolveChannel(channelPtr)
	if ch == nil {
		return 0
	}
	_, _, nfds := ch.Fds()
	return C.int(nfds)
}

//export ares_timeout
func ares_timeout(channelPtr unsafe.Pointer, maxtvSec, maxtvUsec C.long, tvSec, tvUsec *C.long) {
	ch := resolveChannel(channelPtr)
	maxWait := time.Duration(maxtvSec)*time.Second + time.Duration(maxtvUsec)*time.Microsecond
	if ch == nil {
		*tvSec, *tvUsec = maxtvSec, maxtvUsec
		return
	}
	d := ch.Timeout(maxWait)
	*tvSec = C.long(d / time.Second)
	*tvUsec = C.long((d % time.Second) / time.Microsecond)
}

// maxGetsockSockets mirrors ARES_GETSOCK_MAXNUM from ares.h.
const maxGetsockSockets = 16

//export ares_getsock
func ares_getsock(channelPtr unsafe.Pointer, socks *C.int, numsocks C.int) C.int {
	ch := resolveChannel(channelPtr)
	if ch == nil {
		return 0
	}
	max := int(numsocks)
	if max > maxGetsockSockets {
		max = maxGetsockSockets
	}
	fds, readWant, writeWant := ch.Getsock(max)

	out := unsafe.Slice(socks, max)
	for i, fd := range fds {
		out[i] = C.int(fd)
	}
	return C.int(readWant | writeWant<<maxGetsockSockets)
}


package nin

import (
	"bufio"
	"net"
)

// dcacheHost is one peer daemon the cache knows how to reach: a single
// persistent connection, probed synchronously.
type dcacheHost struct {
	addr string
	conn net.Conn
	r    *bufio.Reader
}

// dialHost connects to the peer daemon at host:port. Failures here are the
// caller's to decide what to do with; DCache.Init silently drops peers it
// can't reach.
func dialHost(host, port string) (*dcacheHost, error) {
	conn, err := net.Dial("tcp", net.JoinHostPort(host, port))
	if err != nil {
		return nil, err
	}
	return &dcacheHost{addr: net.JoinHostPort(host, port), conn: conn, r: bufio.NewReader(conn)}, nil
}

// getFileContents requests path over the persistent connection and returns
// the response up to, but excluding, the first \n. An empty slice means
// the peer doesn't have the file (or couldn't read it); that is not an
// error. Contents that contain a \n are cut at it, and the bytes after it
// stay unread on the connection.
func (h *dcacheHost) getFileContents(path string) ([]byte, error) {
	if _, err := h.conn.Write([]byte(path + "\n")); err != nil {
		return nil, err
	}
	line, err := h.r.ReadBytes('\n')
	if err != nil {
		return nil, err
	}
	return line[:len(line)-1], nil
}

func (h *dcacheHost) Close() error {
	return h.conn.Close()
}

// DCache is the client half of the distributed cache: it probes a fixed,
// ordered list of peer daemons for a relative path and returns the first
// one that has it. There is no health-based reordering, no parallel
// fan-out, and no local caching of results — every call is a fresh round
// trip to whichever peers are still connected.
//
// DCache is single-threaded and synchronous: GetFileContents blocks the
// caller for as long as the probe takes.
type DCache struct {
	hosts []*dcacheHost
}

// NewDCache returns a cache with no peers; call Init to connect some.
func NewDCache() *DCache {
	return &DCache{}
}

// Init attempts to connect to every peer in infos, in order. Peers that
// fail to resolve or connect are silently skipped — not every machine in a
// host list is guaranteed to be up, and that's fine, there's just one less
// place to find a cached file.
func (c *DCache) Init(infos []HostInfo) {
	for _, info := range infos {
		host, err := dialHost(info.Host, info.Port)
		if err != nil {
			EXPLAIN("dcache: failed to connect to %s:%s: %s", info.Host, info.Port, err)
			continue
		}
		c.hosts = append(c.hosts, host)
	}
}

// Close tears down every peer connection. Safe to call once Init (or
// nothing) has run.
func (c *DCache) Close() {
	for _, h := range c.hosts {
		h.Close()
	}
	c.hosts = nil
}

// GetFileContents asks each peer, in configuration order, for path and
// returns the first non-empty response. If no peer has it, it returns nil
// — not an error, since "nobody has this file" is an expected outcome of
// a cache probe.
func (c *DCache) GetFileContents(path string) []byte {
	for _, h := range c.hosts {
		contents, err := h.getFileContents(path)
		if err != nil {
			EXPLAIN("dcache: probe of %s failed: %s", h.addr, err)
			continue
		}
		if len(contents) > 0 {
			return contents
		}
	}
	return nil
}

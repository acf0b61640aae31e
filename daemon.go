package nin

import (
	"bufio"
	"log"
	"net"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// writeTimeout is how long a connection gets to drain a single response
// before Daemon gives up on it and tears it down.
const writeTimeout = 30 * time.Second

// Daemon is the peer side of the distributed cache: a TCP server that
// serves the raw bytes of any file under root to whoever asks for it by
// relative path. It has no notion of which builds are using it; it just
// answers "what's in this file" (or "nothing") forever.
//
// The reference implementation ran a single-threaded reactor dispatching
// file reads to worker threads that posted continuations back onto the
// reactor. Go's runtime already multiplexes goroutines over OS threads the
// same way, so Daemon uses the idiomatic one-goroutine-per-connection
// design instead: each connection's request loop is a single goroutine,
// and slow disk reads just block that goroutine rather than the listener.
type Daemon struct {
	root   string
	Logger *log.Logger

	// WriteTimeout overrides the default 30s response deadline; zero means
	// use the default rather than disabling the deadline.
	WriteTimeout time.Duration

	mu       sync.Mutex
	listener net.Listener
	conns    map[*daemonConn]struct{}

	ready   chan struct{}
	watcher *rootWatcher
	group   errgroup.Group
}

// NewDaemon creates a Daemon that will serve files under root once Run is
// called. Logger defaults to the standard logger if left nil.
func NewDaemon(root string) *Daemon {
	return &Daemon{
		root:   root,
		Logger: log.Default(),
		conns:  map[*daemonConn]struct{}{},
		ready:  make(chan struct{}),
	}
}

// WatchRoot starts an fsnotify watch over root that logs create/remove
// activity for operator visibility. It has no bearing on what readFile
// returns: every request still hits the filesystem directly. Must be called
// before Run.
func (d *Daemon) WatchRoot() error {
	w, err := newRootWatcher(d.root, d.Logger)
	if err != nil {
		return err
	}
	d.watcher = w
	d.group.Go(w.run)
	return nil
}

// Addr blocks until Run has bound its listener, then returns its address.
// Mainly useful in tests that bind to ":0" and need the actual port chosen.
func (d *Daemon) Addr() net.Addr {
	<-d.ready
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.listener.Addr()
}

// Run listens on addr (e.g. ":9987" for all interfaces, dual-stack IPv6)
// and blocks accepting connections until Stop is called. Once Accept fails
// (as it does after Stop closes the listener) it returns nil; only a
// failure to listen is reported as an error.
func (d *Daemon) Run(addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	d.mu.Lock()
	d.listener = l
	d.mu.Unlock()
	close(d.ready)

	for {
		conn, err := l.Accept()
		if err != nil {
			return nil
		}
		if tc, ok := conn.(*net.TCPConn); ok {
			tc.SetNoDelay(true)
		}
		timeout := d.WriteTimeout
		if timeout == 0 {
			timeout = writeTimeout
		}
		c := &daemonConn{daemon: d, conn: conn, id: uuid.NewString(), writeTimeout: timeout}
		d.mu.Lock()
		d.conns[c] = struct{}{}
		d.mu.Unlock()
		d.Logger.Printf("dcache: conn %s accepted from %s", c.id, conn.RemoteAddr())
		go c.serve()
	}
}

// Stop closes the listener, shuts down every active connection, and waits
// for the root watcher (if any) to stop before returning.
func (d *Daemon) Stop() {
	d.mu.Lock()
	l := d.listener
	toClose := make([]*daemonConn, 0, len(d.conns))
	for c := range d.conns {
		toClose = append(toClose, c)
	}
	d.mu.Unlock()

	if l != nil {
		l.Close()
	}

	for _, c := range toClose {
		c.shutdown()
	}

	if d.watcher != nil {
		d.watcher.stop()
	}
	d.group.Wait()
}

func (d *Daemon) forget(c *daemonConn) {
	d.mu.Lock()
	delete(d.conns, c)
	d.mu.Unlock()
}

// daemonConn is one accepted connection and its request loop.
type daemonConn struct {
	daemon       *Daemon
	conn         net.Conn
	id           string
	writeTimeout time.Duration
	once         sync.Once
}

// serve reads \n-framed path requests until the connection errors out or
// times out sending a response.
func (c *daemonConn) serve() {
	defer c.shutdown()

	r := bufio.NewReaderSize(c.conn, 64<<10)
	for {
		line, err := r.ReadBytes('\n')
		if err != nil {
			return
		}
		// Strip the trailing \n, and a preceding \0 for clients that still
		// frame requests as path\0\n.
		line = line[:len(line)-1]
		if len(line) > 0 && line[len(line)-1] == 0 {
			line = line[:len(line)-1]
		}
		path := string(line)

		body := c.readFile(path)
		if err := c.writeResponse(body); err != nil {
			return
		}
	}
}

// readFile returns the full contents of root/path, or nil if it can't be
// read: a missing or unreadable file isn't a protocol error, it's reported
// to the client as an empty response.
func (c *daemonConn) readFile(path string) []byte {
	full := filepath.Join(c.daemon.root, path)
	data, err := os.ReadFile(full)
	if err != nil {
		return nil
	}
	return data
}

// writeResponse sends body followed by the delimiter, under the write
// deadline; a slow or dead peer gets the connection torn down instead of
// hanging this goroutine forever.
func (c *daemonConn) writeResponse(body []byte) error {
	c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	defer c.conn.SetWriteDeadline(time.Time{})

	if _, err := c.conn.Write(body); err != nil {
		return err
	}
	_, err := c.conn.Write([]byte{'\n'})
	return err
}

// shutdown is idempotent and safe to call concurrently (Daemon.Stop and the
// request loop returning, e.g. after a write deadline fired, can both race
// to call it): only the first caller actually tears the connection down.
func (c *daemonConn) shutdown() {
	c.once.Do(func() {
		c.conn.Close()
		c.daemon.forget(c)
		c.daemon.Logger.Printf("dcache: conn %s closed", c.id)
	})
}

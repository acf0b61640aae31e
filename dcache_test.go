package nin

import (
	"net"
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

func hostInfoFor(t *testing.T, addr string) HostInfo {
	t.Helper()
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		t.Fatal(err)
	}
	return HostInfo{Host: host, Port: port}
}

func TestDCache_GetFileContents(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "out.o"), []byte("object code"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, addr := startDaemon(t, root)

	c := NewDCache()
	c.Init([]HostInfo{hostInfoFor(t, addr)})
	defer c.Close()

	got := c.GetFileContents("out.o")
	if string(got) != "object code" {
		t.Errorf("got %q, want %q", got, "object code")
	}
}

func TestDCache_MissReturnsNil(t *testing.T) {
	root := t.TempDir()
	_, addr := startDaemon(t, root)

	c := NewDCache()
	c.Init([]HostInfo{hostInfoFor(t, addr)})
	defer c.Close()

	if got := c.GetFileContents("nope.o"); got != nil {
		t.Errorf("got %q, want nil", got)
	}
}

func TestDCache_FirstHitWins(t *testing.T) {
	root1 := t.TempDir()
	root2 := t.TempDir()
	if err := os.WriteFile(filepath.Join(root2, "shared.o"), []byte("from host 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, addr1 := startDaemon(t, root1) // doesn't have the file
	_, addr2 := startDaemon(t, root2) // does

	c := NewDCache()
	c.Init([]HostInfo{hostInfoFor(t, addr1), hostInfoFor(t, addr2)})
	defer c.Close()

	got := c.GetFileContents("shared.o")
	if string(got) != "from host 2" {
		t.Errorf("got %q, want %q", got, "from host 2")
	}
}

func TestDCache_SkipsUnreachablePeer(t *testing.T) {
	// Grab a free port and immediately release it, so dialing it fails.
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	deadAddr := l.Addr().String()
	l.Close()

	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "out.o"), []byte("real contents"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, addr := startDaemon(t, root)

	c := NewDCache()
	c.Init([]HostInfo{hostInfoFor(t, deadAddr), hostInfoFor(t, addr)})
	defer c.Close()

	if len(c.hosts) != 1 {
		t.Fatalf("Init() kept %d peers, want exactly the reachable one", len(c.hosts))
	}
	got := c.GetFileContents("out.o")
	if string(got) != "real contents" {
		t.Errorf("got %q, want %q", got, "real contents")
	}
}

func TestDCache_NoPeers(t *testing.T) {
	c := NewDCache()
	if got := c.GetFileContents("anything"); got != nil {
		t.Errorf("got %q, want nil with no peers configured", got)
	}
}

func TestDCache_PortAsString(t *testing.T) {
	// HostInfo carries the port pre-stringified from ParseHostList, and
	// dialHost takes it as-is. Nothing normally listens on port 1, so the
	// dial returns an error; if something does accept there, the test is
	// skipped.
	_, err := dialHost("127.0.0.1", strconv.Itoa(1))
	if err == nil {
		t.Skip("port 1 unexpectedly accepted a connection in this environment")
	}
}

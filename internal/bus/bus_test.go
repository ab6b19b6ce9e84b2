package bus

import (
	"bufio"
	"strings"
	"testing"
)

func TestPaths(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	sp, err := SockPath()
	if err != nil {
		t.Fatalf("SockPath() error: %v", err)
	}
	if !strings.HasSuffix(sp, "whisperflow/"+SockName) {
		t.Errorf("unexpected socket path: %s", sp)
	}

	pp, err := PidPath()
	if err != nil {
		t.Fatalf("PidPath() error: %v", err)
	}
	if !strings.HasSuffix(pp, "whisperflow/"+PidName) {
		t.Errorf("unexpected pid file path: %s", pp)
	}
}

func TestSendCommand_NoDaemon(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	if _, err := SendCommand('s'); err == nil {
		t.Error("expected error when no daemon is listening")
	}
}

func TestListenAndSendCommand(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	ln, err := Listen()
	if err != nil {
		t.Fatalf("Listen() error: %v", err)
	}
	defer ln.Close()

	go func() {
		c, err := ln.Accept()
		if err != nil {
			return
		}
		defer c.Close()
		line, _ := bufio.NewReader(c).ReadString('\n')
		if len(line) > 0 && line[0] == 's' {
			c.Write([]byte("STATUS status=idle\n"))
		}
	}()

	resp, err := SendCommand('s')
	if err != nil {
		t.Fatalf("SendCommand() error: %v", err)
	}
	if resp != "STATUS status=idle\n" {
		t.Errorf("unexpected response: %q", resp)
	}
}

func TestListen_ReplacesStaleSocket(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	ln, err := Listen()
	if err != nil {
		t.Fatalf("Listen() error: %v", err)
	}
	ln.Close()

	// The socket file is left behind; a second Listen must clean it up.
	ln2, err := Listen()
	if err != nil {
		t.Fatalf("Listen() on stale socket error: %v", err)
	}
	ln2.Close()
}

func TestCheckExistingDaemon(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	// No pid file at all.
	if err := CheckExistingDaemon(); err != nil {
		t.Errorf("expected nil with no pid file, got %v", err)
	}

	// Our own pid counts as a live daemon.
	if err := CreatePidFile(); err != nil {
		t.Fatalf("CreatePidFile() error: %v", err)
	}
	defer RemovePidFile()

	if err := CheckExistingDaemon(); err == nil {
		t.Error("expected error with a live pid file")
	}
}

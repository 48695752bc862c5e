package ports

import (
	"testing"
)

func TestForOS(t *testing.T) {
	if _, ok := ForOS("windows").(*WindowsInspector); !ok {
		t.Error("expected the Windows inspector for GOOS=windows")
	}
	for _, goos := range []string{"linux", "darwin", "freebsd"} {
		if _, ok := ForOS(goos).(*UnixInspector); !ok {
			t.Errorf("expected the Unix inspector for GOOS=%s", goos)
		}
	}
}

func TestParsePort(t *testing.T) {
	cases := []struct {
		addr string
		port int
		ok   bool
	}{
		{"*:3000", 3000, true},
		{"127.0.0.1:5432", 5432, true},
		{"[::1]:8080", 8080, true},
		{"0.0.0.0:22", 22, true},
		{"*:*", 0, false},
		{"[::]:", 0, false},
		{"localhost", 0, false},
		{"1.2.3.4:0", 0, false},
		{"1.2.3.4:70000", 0, false},
	}
	for _, c := range cases {
		port, ok := parsePort(c.addr)
		if ok != c.ok || port != c.port {
			t.Errorf("parsePort(%q) = (%d, %v), want (%d, %v)", c.addr, port, ok, c.port, c.ok)
		}
	}
}

func TestDedupePreservesOrder(t *testing.T) {
	procs := []ListeningProcess{
		{Command: "a", PID: 1, Port: 80, Protocol: "TCP"},
		{Command: "b", PID: 2, Port: 80, Protocol: "TCP"},
		{Command: "a", PID: 1, Port: 80, Protocol: "TCP"},
		{Command: "a", PID: 1, Port: 81, Protocol: "TCP"},
	}
	out := dedupe(procs)
	if len(out) != 3 {
		t.Fatalf("expected 3 listeners, got %d", len(out))
	}
	if out[0].PID != 1 || out[1].PID != 2 || out[2].Port != 81 {
		t.Errorf("order not preserved: %+v", out)
	}
}

func TestSignalString(t *testing.T) {
	if SignalTerm.String() != "SIGTERM" {
		t.Errorf("unexpected name for SignalTerm: %s", SignalTerm)
	}
	if SignalKill.String() != "SIGKILL" {
		t.Errorf("unexpected name for SignalKill: %s", SignalKill)
	}
}

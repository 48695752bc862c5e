package ports

import (
	"testing"
)

const lsofSample = `COMMAND   PID USER   FD   TYPE             DEVICE SIZE/OFF NODE NAME
node      312 matt   22u  IPv4 0x8a3b2c1d          0t0  TCP *:3000 (LISTEN)
node      312 matt   23u  IPv6 0x8a3b2c1e          0t0  TCP [::1]:3000 (LISTEN)
postgres  845 postgres    7u  IPv4 0x11223344      0t0  TCP 127.0.0.1:5432 (LISTEN)
`

func TestParseLsof(t *testing.T) {
	procs := parseLsof(lsofSample)

	if len(procs) != 2 {
		t.Fatalf("expected 2 listeners, got %d: %+v", len(procs), procs)
	}

	first := procs[0]
	if first.Command != "node" || first.PID != 312 || first.User != "matt" || first.Port != 3000 {
		t.Errorf("unexpected first listener: %+v", first)
	}
	if first.Protocol != "TCP" {
		t.Errorf("expected protocol TCP, got %q", first.Protocol)
	}

	second := procs[1]
	if second.Command != "postgres" || second.PID != 845 || second.User != "postgres" || second.Port != 5432 {
		t.Errorf("unexpected second listener: %+v", second)
	}
}

func TestParseLsofDeduplicatesDescriptors(t *testing.T) {
	// The same (pid, port) bound through two file descriptors must appear
	// exactly once.
	out := `COMMAND   PID USER   FD   TYPE DEVICE SIZE/OFF NODE NAME
java      900 matt   40u  IPv4 0x1    0t0      TCP *:8080 (LISTEN)
java      900 matt   41u  IPv6 0x2    0t0      TCP [::]:8080 (LISTEN)
`
	procs := parseLsof(out)
	if len(procs) != 1 {
		t.Fatalf("expected 1 listener after dedupe, got %d", len(procs))
	}
	if procs[0].PID != 900 || procs[0].Port != 8080 {
		t.Errorf("unexpected listener: %+v", procs[0])
	}
}

func TestParseLsofSkipsUnresolvablePorts(t *testing.T) {
	out := `COMMAND   PID USER   FD   TYPE DEVICE SIZE/OFF NODE NAME
rpcbind   100 root    6u  IPv4 0x1    0t0      TCP *:* (LISTEN)
sshd      200 root    3u  IPv4 0x2    0t0      TCP *:22 (LISTEN)
`
	procs := parseLsof(out)
	if len(procs) != 1 {
		t.Fatalf("expected wildcard address to be skipped, got %d listeners", len(procs))
	}
	if procs[0].Port != 22 {
		t.Errorf("expected port 22, got %d", procs[0].Port)
	}
}

func TestParseLsofSkipsMalformedLines(t *testing.T) {
	out := `COMMAND   PID USER   FD   TYPE DEVICE SIZE/OFF NODE NAME
garbage line
too few fields
sshd      200 root    3u  IPv4 0x2    0t0      TCP 0.0.0.0:22 (LISTEN)
`
	procs := parseLsof(out)
	if len(procs) != 1 {
		t.Fatalf("expected malformed lines to be skipped, got %d listeners", len(procs))
	}
}

func TestParseLsofEmptyOutput(t *testing.T) {
	if procs := parseLsof(""); len(procs) != 0 {
		t.Errorf("expected no listeners from empty output, got %d", len(procs))
	}
	if procs := parseLsof("COMMAND PID USER FD TYPE DEVICE SIZE/OFF NODE NAME\n"); len(procs) != 0 {
		t.Errorf("expected no listeners from header-only output, got %d", len(procs))
	}
}

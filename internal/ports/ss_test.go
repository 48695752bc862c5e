package ports

import (
	"testing"
)

const ssSample = `State      Recv-Q Send-Q Local Address:Port  Peer Address:Port Process
LISTEN     0      128    0.0.0.0:22          0.0.0.0:*         users:(("sshd",pid=1234,fd=3))
LISTEN     0      511    127.0.0.1:6379      0.0.0.0:*         users:(("redis-server",pid=2001,fd=6))
ESTAB      0      0      10.0.0.5:22         10.0.0.9:51234    users:(("sshd",pid=1299,fd=4))
`

func TestParseSS(t *testing.T) {
	users := map[int]string{1234: "root", 2001: "redis"}
	lookup := func(pid int) string {
		if u, ok := users[pid]; ok {
			return u
		}
		return UnknownUser
	}

	procs := parseSS(ssSample, lookup)
	if len(procs) != 2 {
		t.Fatalf("expected 2 listeners, got %d: %+v", len(procs), procs)
	}

	if procs[0].Command != "sshd" || procs[0].PID != 1234 || procs[0].Port != 22 || procs[0].User != "root" {
		t.Errorf("unexpected first listener: %+v", procs[0])
	}
	if procs[1].Command != "redis-server" || procs[1].PID != 2001 || procs[1].Port != 6379 || procs[1].User != "redis" {
		t.Errorf("unexpected second listener: %+v", procs[1])
	}
}

func TestParseSSUnknownUser(t *testing.T) {
	out := `State Recv-Q Send-Q Local Address:Port Peer Address:Port Process
LISTEN 0 128 [::]:8443 [::]:* users:(("caddy",pid=77,fd=9))
`
	procs := parseSS(out, func(int) string { return UnknownUser })
	if len(procs) != 1 {
		t.Fatalf("expected 1 listener, got %d", len(procs))
	}
	if procs[0].User != UnknownUser {
		t.Errorf("expected user %q, got %q", UnknownUser, procs[0].User)
	}
	if procs[0].Port != 8443 {
		t.Errorf("expected port 8443, got %d", procs[0].Port)
	}
}

func TestParseSSSkipsLinesWithoutProcessInfo(t *testing.T) {
	// Without root, ss omits the process column for other users' sockets.
	out := `State Recv-Q Send-Q Local Address:Port Peer Address:Port Process
LISTEN 0 4096 0.0.0.0:111 0.0.0.0:*
LISTEN 0 128 0.0.0.0:22 0.0.0.0:* users:(("sshd",pid=1234,fd=3))
`
	procs := parseSS(out, func(int) string { return UnknownUser })
	if len(procs) != 1 {
		t.Fatalf("expected process-less line to be skipped, got %d listeners", len(procs))
	}
	if procs[0].PID != 1234 {
		t.Errorf("unexpected listener: %+v", procs[0])
	}
}

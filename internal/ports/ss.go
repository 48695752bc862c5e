package ports

import (
	"regexp"
	"strconv"
	"strings"
)

// ssArgs lists listening TCP sockets numerically with process info.
var ssArgs = []string{"-tlnp"}

// ssProcess extracts the process name and PID from the ss process column:
// users:(("sshd",pid=1234,fd=3))
var ssProcess = regexp.MustCompile(`\(\("([^"]+)",pid=(\d+)`)

// parseSS parses the output of ss -tlnp. Only lines beginning with the
// LISTEN state keyword are considered:
//
//	State   Recv-Q  Send-Q  Local Address:Port  Peer Address:Port  Process
//	LISTEN  0       128     0.0.0.0:22          0.0.0.0:*          users:(("sshd",pid=1234,fd=3))
//
// ss does not report the owning user, so it is resolved separately from the
// owner of the process's /proc entry via lookupUser and defaults to
// "unknown".
func parseSS(out string, lookupUser func(pid int) string) []ListeningProcess {
	var procs []ListeningProcess

	for _, line := range strings.Split(out, "\n") {
		if !strings.HasPrefix(line, "LISTEN") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}

		port, ok := parsePort(fields[3])
		if !ok {
			continue
		}

		m := ssProcess.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		pid, err := strconv.Atoi(m[2])
		if err != nil || pid <= 0 {
			continue
		}

		procs = append(procs, ListeningProcess{
			Command:  m[1],
			PID:      pid,
			User:     lookupUser(pid),
			Port:     port,
			Protocol: "TCP",
		})
	}

	return dedupe(procs)
}

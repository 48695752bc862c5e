package ports

import (
	"strconv"
	"strings"
)

// lsofArgs lists TCP sockets in LISTEN state for all users with numeric
// hosts and ports (no DNS or service-name resolution).
var lsofArgs = []string{"-nP", "-iTCP", "-sTCP:LISTEN"}

// parseLsof parses the tabular output of lsof. The header line is skipped;
// each remaining line is whitespace-delimited with COMMAND, PID and USER in
// the first three columns and the local address in the last (NAME) column:
//
//	COMMAND  PID  USER  FD  TYPE  DEVICE  SIZE/OFF  NODE  NAME
//	node     312  matt  22u IPv4  0x1f    0t0       TCP   *:3000 (LISTEN)
//
// The address is taken as the last field ending in ":digits" rather than a
// fixed column index, since the middle columns vary across lsof versions.
// Malformed lines and lines without a numeric port are skipped silently.
func parseLsof(out string) []ListeningProcess {
	var procs []ListeningProcess

	lines := strings.Split(out, "\n")
	for i, line := range lines {
		if i == 0 || strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 9 {
			continue
		}

		pid, err := strconv.Atoi(fields[1])
		if err != nil || pid <= 0 {
			continue
		}

		addr := fields[len(fields)-1]
		if addr == "(LISTEN)" && len(fields) >= 10 {
			addr = fields[len(fields)-2]
		}
		port, ok := parsePort(addr)
		if !ok {
			continue
		}

		user := fields[2]
		if user == "" {
			user = UnknownUser
		}

		procs = append(procs, ListeningProcess{
			Command:  fields[0],
			PID:      pid,
			User:     user,
			Port:     port,
			Protocol: "TCP",
		})
	}

	return dedupe(procs)
}

package ports

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// psArgs builds the argument list for a single-PID metadata query:
//
//	ps -p <pid> -o pcpu=,rss=,lstart=,args=
//
// The "=" suffixes suppress the header so output is exactly one line.
func psArgs(pid int) []string {
	return []string{"-p", strconv.Itoa(pid), "-o", "pcpu=,rss=,lstart=,args="}
}

// lstartLayout matches ps lstart output in the C locale:
// "Mon Dec 25 12:00:05 2024". Single-digit days are space-padded by some ps
// builds, so both layouts are tried.
var lstartLayouts = []string{
	"Mon Jan 2 15:04:05 2006",
	"Mon Jan _2 15:04:05 2006",
}

// yearSplit locates the 4-digit year that ends the lstart timestamp,
// followed by two or more spaces before the command line. A plain
// whitespace split cannot find this boundary because both the timestamp and
// the command line contain single spaces; ps left-pads the args column,
// which guarantees the multi-space gap.
var yearSplit = regexp.MustCompile(`\b(\d{4})\s{2,}`)

// parsePS parses one line of ps output into Metadata. Fields degrade
// independently: a CPU value that fails to parse leaves CPUPercent nil
// without touching memory or the timestamp, and a timestamp in a non-C
// locale is preserved verbatim rather than discarded.
func parsePS(out string) Metadata {
	var md Metadata

	line := strings.TrimSpace(out)
	if line == "" {
		return md
	}
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return md
	}

	// pcpu may carry a comma decimal separator under non-English locales
	// ("0,5" for half a percent).
	if cpu, err := strconv.ParseFloat(strings.Replace(fields[0], ",", ".", 1), 64); err == nil {
		md.CPUPercent = floatPtr(cpu)
	}

	// rss is reported in kilobytes.
	if rss, err := strconv.ParseInt(fields[1], 10, 64); err == nil {
		md.MemoryBytes = int64Ptr(rss * 1024)
	}

	// Everything after the first two fields is lstart followed by args.
	rest := line
	for i := 0; i < 2; i++ {
		idx := strings.IndexAny(rest, " \t")
		if idx < 0 {
			return md
		}
		rest = strings.TrimLeft(rest[idx:], " \t")
	}

	start, args := splitStartArgs(rest)
	if start != "" {
		if t, ok := parseLstart(start); ok {
			md.StartTime = t.Format(time.RFC3339)
		} else {
			// Non-English day/month names do not parse; keep the raw text.
			md.StartTime = start
		}
	}
	md.Path = args

	return md
}

// splitStartArgs separates the lstart timestamp from the command line using
// the year + multi-space anchor. When no anchor is found the whole text is
// treated as the command line so at least Path survives.
func splitStartArgs(rest string) (start, args string) {
	loc := yearSplit.FindStringSubmatchIndex(rest)
	if loc == nil {
		return "", strings.TrimSpace(rest)
	}
	start = strings.TrimSpace(rest[:loc[3]])
	args = strings.TrimSpace(rest[loc[1]:])
	return start, args
}

// parseLstart parses a C-locale lstart timestamp in the local timezone.
func parseLstart(s string) (time.Time, bool) {
	for _, layout := range lstartLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

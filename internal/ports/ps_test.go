package ports

import (
	"testing"
	"time"
)

func TestParsePS(t *testing.T) {
	out := " 2.5 10240 Mon Dec 25 12:00:05 2024   /usr/local/bin/node server.js --port 3000\n"
	md := parsePS(out)

	if md.CPUPercent == nil || *md.CPUPercent != 2.5 {
		t.Errorf("expected CPU 2.5, got %v", md.CPUPercent)
	}
	if md.MemoryBytes == nil || *md.MemoryBytes != 10240*1024 {
		t.Errorf("expected memory %d, got %v", 10240*1024, md.MemoryBytes)
	}

	want := time.Date(2024, time.December, 25, 12, 0, 5, 0, time.Local).Format(time.RFC3339)
	if md.StartTime != want {
		t.Errorf("expected start time %q, got %q", want, md.StartTime)
	}
	if md.Path != "/usr/local/bin/node server.js --port 3000" {
		t.Errorf("unexpected path: %q", md.Path)
	}
}

func TestParsePSCommaDecimalSeparator(t *testing.T) {
	// Non-English locales render pcpu with a comma decimal separator.
	md := parsePS(" 0,5 2048 Mon Dec 25 12:00:05 2024   /usr/bin/foo\n")
	if md.CPUPercent == nil || *md.CPUPercent != 0.5 {
		t.Errorf("expected CPU 0.5 from comma decimal, got %v", md.CPUPercent)
	}
}

func TestParsePSUnparsableStartTimeKeptRaw(t *testing.T) {
	// German locale day/month names do not parse; the raw text must be
	// preserved rather than discarded.
	md := parsePS(" 1.0 4096 Mo  2 Dez 08:15:00 2024   /usr/bin/java -jar app.jar\n")
	if md.StartTime == "" {
		t.Fatal("expected raw start time to be preserved")
	}
	if md.StartTime != "Mo  2 Dez 08:15:00 2024" {
		t.Errorf("unexpected raw start time: %q", md.StartTime)
	}
	if md.Path != "/usr/bin/java -jar app.jar" {
		t.Errorf("unexpected path: %q", md.Path)
	}
}

func TestParsePSFieldFailuresAreIndependent(t *testing.T) {
	// A CPU value that fails to parse must not invalidate memory or the
	// command line.
	md := parsePS(" - 4096 Mon Dec 25 12:00:05 2024   /usr/bin/foo\n")
	if md.CPUPercent != nil {
		t.Errorf("expected absent CPU, got %v", *md.CPUPercent)
	}
	if md.MemoryBytes == nil || *md.MemoryBytes != 4096*1024 {
		t.Errorf("expected memory despite CPU failure, got %v", md.MemoryBytes)
	}
	if md.Path != "/usr/bin/foo" {
		t.Errorf("expected path despite CPU failure, got %q", md.Path)
	}
}

func TestParsePSSpacePaddedDay(t *testing.T) {
	md := parsePS(" 0.0 1024 Mon Dec  2 09:30:00 2024   /bin/sleep 600\n")
	want := time.Date(2024, time.December, 2, 9, 30, 0, 0, time.Local).Format(time.RFC3339)
	if md.StartTime != want {
		t.Errorf("expected start time %q, got %q", want, md.StartTime)
	}
}

func TestParsePSCommandLineWithFourDigitNumbers(t *testing.T) {
	// Only a year followed by 2+ spaces anchors the split; four-digit
	// numbers inside the command line must not confuse it.
	md := parsePS(" 0.1 2048 Mon Dec 25 12:00:05 2024   /usr/bin/nc -l 8080\n")
	if md.Path != "/usr/bin/nc -l 8080" {
		t.Errorf("unexpected path: %q", md.Path)
	}
}

func TestParsePSEmptyOutput(t *testing.T) {
	md := parsePS("")
	if md.CPUPercent != nil || md.MemoryBytes != nil || md.StartTime != "" || md.Path != "" {
		t.Errorf("expected zero metadata from empty output, got %+v", md)
	}
}

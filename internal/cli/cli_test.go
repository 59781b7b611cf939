package cli

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/luckyjian/my/internal/result"
)

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	var out, errBuf bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errBuf)
	root.SetArgs(args)
	err = execute(root)
	return out.String(), errBuf.String(), err
}

func TestDateJSON(t *testing.T) {
	stdout, _, err := run(t, "date", "-o", "json")
	if err != nil {
		t.Fatalf("date: %v", err)
	}
	var outer map[string]result.Date
	if err := json.Unmarshal([]byte(stdout), &outer); err != nil {
		t.Fatalf("not valid JSON: %v\n%s", err, stdout)
	}
	d, ok := outer["date"]
	if !ok {
		t.Fatalf("missing top-level \"date\" field: %s", stdout)
	}
	if d.DayNumber < 1 || d.DayNumber > 31 {
		t.Errorf("day_number = %d", d.DayNumber)
	}
	if d.WeekNumber < 1 || d.WeekNumber > 53 {
		t.Errorf("week_number = %d", d.WeekNumber)
	}
	if d.Year < 2020 {
		t.Errorf("year = %d", d.Year)
	}
}

func TestDateYAML(t *testing.T) {
	stdout, _, err := run(t, "date", "-o", "yaml")
	if err != nil {
		t.Fatalf("date: %v", err)
	}
	if !strings.HasPrefix(stdout, "date:") {
		t.Errorf("yaml output should start with the date tag:\n%s", stdout)
	}
}

func TestInvalidFormatRejectedOnce(t *testing.T) {
	_, stderr, err := run(t, "date", "-o", "xml")
	if err == nil {
		t.Fatal("expected error for invalid format")
	}
	if !strings.Contains(err.Error(), "xml") {
		t.Errorf("error should name the bad format: %v", err)
	}
	if !strings.Contains(stderr, "xml") {
		t.Errorf("diagnostic must reach stderr:\n%s", stderr)
	}
}

func TestUnknownCommand(t *testing.T) {
	_, stderr, err := run(t, "frobnicate")
	if err == nil {
		t.Fatal("expected error for unknown command")
	}
	if !strings.HasPrefix(stderr, "my:") || !strings.Contains(stderr, "frobnicate") {
		t.Errorf("diagnostic must name the unknown command:\n%s", stderr)
	}
}

func TestRenderFailureNamesCommandAsTyped(t *testing.T) {
	var out, errBuf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetErr(&errBuf)

	err := writeResult(cmd, result.Format("xml"), "device-name", result.DeviceName("box"))
	if err == nil {
		t.Fatal("expected rendering to fail for an unsupported format")
	}
	if !strings.Contains(errBuf.String(), "device-name") {
		t.Errorf("diagnostic should use the command name as typed:\n%s", errBuf.String())
	}
	if strings.Contains(errBuf.String(), "device_name") {
		t.Errorf("diagnostic leaked the payload tag instead of the command name:\n%s", errBuf.String())
	}
}

func TestIPsRejectsBadCategory(t *testing.T) {
	_, stderr, err := run(t, "ips", "--category", "bogus")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(stderr, "ips") {
		t.Errorf("diagnostic should name the failed command:\n%s", stderr)
	}
}

// silentServer binds a UDP port that never answers.
func silentServer(t *testing.T) string {
	t.Helper()
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { pc.Close() })
	return pc.LocalAddr().String()
}

func TestTimeCommandsFailOnClockSyncTimeout(t *testing.T) {
	t.Setenv("MY_NTP_SERVER", silentServer(t))
	t.Setenv("MY_NTP_TIMEOUT", "100ms")

	// The policy is uniform: every time-related command that needs the
	// clock exchange fails the same way.
	for _, command := range []string{"time", "datetime"} {
		stdout, stderr, err := run(t, command)
		if err == nil {
			t.Fatalf("%s: expected failure when clock sync times out", command)
		}
		if stdout != "" {
			t.Errorf("%s: no result may be emitted on failure, got %q", command, stdout)
		}
		if !strings.Contains(stderr, command) || !strings.Contains(stderr, "timed out") {
			t.Errorf("%s: diagnostic should name the command and cause:\n%s", command, stderr)
		}
	}
}

func TestTimeFailureStructuredError(t *testing.T) {
	t.Setenv("MY_NTP_SERVER", silentServer(t))
	t.Setenv("MY_NTP_TIMEOUT", "100ms")

	stdout, stderr, err := run(t, "time", "-o", "json")
	if err == nil {
		t.Fatal("expected failure")
	}
	if stdout != "" {
		t.Errorf("stdout must stay clean on failure, got %q", stdout)
	}
	var outer map[string]result.ErrorReport
	if err := json.Unmarshal([]byte(stderr), &outer); err != nil {
		t.Fatalf("structured-mode error is not a parseable object: %v\n%s", err, stderr)
	}
	if outer["error"].Command != "time" {
		t.Errorf("error report = %#v", outer["error"])
	}
}

// fakeSNTPServer answers one request with a mode-4 reply whose server clock
// runs `skew` ahead of the local one.
func fakeSNTPServer(t *testing.T, skew time.Duration) string {
	t.Helper()
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { pc.Close() })

	go func() {
		buf := make([]byte, 48)
		n, addr, err := pc.ReadFrom(buf)
		if err != nil || n < 48 {
			return
		}
		now := time.Now().Add(skew)
		ntpNow := uint64(now.Unix()+2208988800)<<32 |
			uint64(now.Nanosecond())<<32/1e9
		reply := make([]byte, 48)
		reply[0] = 4<<3 | 4 // VN=4, mode=server
		reply[1] = 2        // stratum
		copy(reply[24:32], buf[40:48])
		binary.BigEndian.PutUint64(reply[32:], ntpNow)
		binary.BigEndian.PutUint64(reply[40:], ntpNow)
		pc.WriteTo(reply, addr)
	}()
	return pc.LocalAddr().String()
}

func TestTimeJSONAgainstFakeServer(t *testing.T) {
	t.Setenv("MY_NTP_SERVER", fakeSNTPServer(t, 30*time.Second))
	t.Setenv("MY_NTP_TIMEOUT", "2s")

	stdout, _, err := run(t, "time", "-o", "json")
	if err != nil {
		t.Fatalf("time: %v", err)
	}
	var outer map[string]result.Time
	if err := json.Unmarshal([]byte(stdout), &outer); err != nil {
		t.Fatalf("not valid JSON: %v\n%s", err, stdout)
	}
	tm, ok := outer["time"]
	if !ok {
		t.Fatalf("missing top-level \"time\" field: %s", stdout)
	}
	if tm.Offset < 29 || tm.Offset > 31 {
		t.Errorf("offset = %f seconds, want ~30", tm.Offset)
	}
}

func TestRetriesAreBounded(t *testing.T) {
	t.Setenv("MY_NTP_SERVER", silentServer(t))
	t.Setenv("MY_NTP_TIMEOUT", "50ms")
	t.Setenv("MY_NTP_ATTEMPTS", "3")

	start := time.Now()
	_, _, err := run(t, "time")
	if err == nil {
		t.Fatal("expected failure")
	}
	elapsed := time.Since(start)
	if elapsed < 150*time.Millisecond {
		t.Errorf("three attempts should take at least 150ms, took %v", elapsed)
	}
	if elapsed > 2*time.Second {
		t.Errorf("attempts must stay bounded, took %v", elapsed)
	}
}

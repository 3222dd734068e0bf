package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-dateandtime/date"
	"github.com/tartampluch/go-dateandtime/internal/config"
	"github.com/tartampluch/go-dateandtime/sysclock"
)

// execute runs the command tree against a fixed clock and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	a := &app{
		out:   &out,
		clock: sysclock.Fixed{Year: 2025, Month: 6, Day: 1, Hour: 9, Minute: 5, Second: 7},
	}
	root := newRootCmd(a)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestNow(t *testing.T) {
	out, err := execute(t, "now")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01T09:05:07\n", out)

	out, err = execute(t, "now", "--format", "%A %d %B %Y, %I:%M %p")
	require.NoError(t, err)
	assert.Equal(t, "Sunday 01 June 2025, 09:05 a.m.\n", out)
}

func TestDiff(t *testing.T) {
	out, err := execute(t, "diff", "2024-03-01", "2024-02-28")
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)

	out, err = execute(t, "diff", "1969-12-31", "1970-01-01")
	require.NoError(t, err)
	assert.Equal(t, "-1\n", out)
}

func TestDiff_InvalidDate(t *testing.T) {
	_, err := execute(t, "diff", "2023-02-29", "2023-03-01")
	assert.ErrorIs(t, err, date.ErrInvalidDate)

	_, err = execute(t, "diff", "2023-03-01")
	assert.Error(t, err, "two dates are required")
}

func TestAdd(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"add", "2024-12-31", "--days", "1"}, "2025-01-01\n"},
		{[]string{"add", "2024-01-31", "--months", "1"}, "2024-02-29\n"},
		{[]string{"add", "2024-02-29", "--years", "1", "--days", "1"}, "2025-03-01\n"},
		{[]string{"add", "2024-03-01", "--days=-1", "--format", "%d/%m/%Y"}, "29/02/2024\n"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			out, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestTimeCommands(t *testing.T) {
	out, err := execute(t, "time", "add", "0:55:00", "--minutes", "10")
	require.NoError(t, err)
	assert.Equal(t, "01:05:00\n", out)

	out, err = execute(t, "time", "diff", "1:00:00", "2:00:00")
	require.NoError(t, err)
	assert.Equal(t, "-3600\n", out)

	_, err = execute(t, "time", "add", "noon")
	assert.Error(t, err)
}

func TestBirthdays(t *testing.T) {
	dir := t.TempDir()
	vcf := filepath.Join(dir, "contacts.vcf")
	ics := filepath.Join(dir, "out.ics")
	content := "BEGIN:VCARD\nVERSION:3.0\nFN:Ada\nBDAY:1990-06-03\nEND:VCARD\n" +
		"BEGIN:VCARD\nVERSION:3.0\nFN:Bob\nBDAY:--06-01\nEND:VCARD\n"
	require.NoError(t, os.WriteFile(vcf, []byte(content), config.FilePermUserRW))

	out, err := execute(t, "birthdays", vcf, "--ics", ics, "--reminder", "24:00")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01     0  Bob\n2025-06-03     2  Ada (35)\n", out)

	data, err := os.ReadFile(ics)
	require.NoError(t, err)
	assert.Contains(t, string(data), "BEGIN:VCALENDAR")
	assert.Contains(t, string(data), "TRIGGER:-PT24H")
}

func TestBirthdays_MissingFile(t *testing.T) {
	_, err := execute(t, "birthdays", filepath.Join(t.TempDir(), "none.vcf"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Equal(t, versionString(), out)
}

func TestServe(t *testing.T) {
	const addr = "127.0.0.1:18098"
	vcf := filepath.Join(t.TempDir(), "contacts.vcf")
	require.NoError(t, os.WriteFile(vcf, []byte("BEGIN:VCARD\nVERSION:3.0\nFN:Ada\nBDAY:1990-06-03\nEND:VCARD\n"), config.FilePermUserRW))

	a := &app{out: io.Discard, clock: sysclock.Fixed{Year: 2025, Month: 6, Day: 1}}
	root := newRootCmd(a)
	root.SetArgs([]string{"serve", vcf, "--addr", addr, "--refresh", "50ms"})

	ctx, cancel := context.WithCancel(context.Background())
	errChan := make(chan error, 1)
	go func() { errChan <- root.ExecuteContext(ctx) }()

	var body []byte
	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/")
		if err != nil {
			return false
		}
		defer func() { _ = resp.Body.Close() }()
		body, err = io.ReadAll(resp.Body)
		return err == nil && resp.StatusCode == http.StatusOK
	}, 2*time.Second, 50*time.Millisecond)
	assert.Contains(t, string(body), "SUMMARY:Birthday: Ada (35)")

	cancel()
	select {
	case err := <-errChan:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop")
	}
}

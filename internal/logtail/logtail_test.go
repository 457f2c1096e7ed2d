package logtail

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func TestRead(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}

	if err := os.WriteFile(logPath, []byte(content.String()), 0644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{
			name:     "read all (0)",
			maxLines: 0,
			expected: expectedAll,
		},
		{
			name:     "read all (negative)",
			maxLines: -1,
			expected: expectedAll,
		},
		{
			name:     "read partial (5)",
			maxLines: 5,
			expected: expectedAll[5:],
		},
		{
			name:     "read exactly all (10)",
			maxLines: 10,
			expected: expectedAll,
		},
		{
			name:     "read more than exists (20)",
			maxLines: 20,
			expected: expectedAll,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "absent.log"), 10)
	if err != nil || got != nil {
		t.Fatalf("Read() = %v, %v; want nil, nil", got, err)
	}
}

func TestLevel(t *testing.T) {
	tests := []struct {
		line   string
		want   slog.Level
		wantOK bool
	}{
		{`time=2025-10-08T21:01:05Z level=INFO msg="catalog loaded" items=12`, slog.LevelInfo, true},
		{`time=2025-10-08T21:01:05Z level=WARN msg="persist snapshot failed"`, slog.LevelWarn, true},
		{`time=2025-10-08T21:01:05Z level=DEBUG msg=dispatch`, slog.LevelDebug, true},
		{`level=ERROR msg="nil action"`, slog.LevelError, true},
		{`level=LOUD msg=x`, 0, false},
		{`plain continuation`, 0, false},
	}
	for _, tt := range tests {
		got, ok := Level(tt.line)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("Level(%q) = %v, %v; want %v, %v", tt.line, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestFilter(t *testing.T) {
	lines := []string{
		"level=DEBUG msg=a",
		"level=INFO msg=b",
		"  detail",
		"level=WARN msg=c",
		"level=ERROR msg=d",
	}
	got := Filter(lines, slog.LevelWarn)
	want := []string{"  detail", "level=WARN msg=c", "level=ERROR msg=d"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Filter() = %v, want %v", got, want)
	}
}

func TestColorizeLine_PlainProfileUnchanged(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	inputs := []string{
		"",
		"   ",
		`time=2025-10-08T21:01:05Z level=INFO msg="catalog loaded" items=12`,
		"level=WARN msg=x key=value",
	}
	for _, in := range inputs {
		if got := ColorizeLine(in); got != in {
			t.Errorf("ColorizeLine(%q) = %q, want unchanged", in, got)
		}
	}
}

func TestColorizeLine_ANSIKeepsText(t *testing.T) {
	lipgloss.SetColorProfile(termenv.ANSI256)
	t.Cleanup(func() { lipgloss.SetColorProfile(termenv.Ascii) })

	line := `time=2025-10-08T21:01:05Z level=ERROR msg=boom items=3`
	got := ColorizeLine(line)
	if got == line {
		t.Fatalf("ColorizeLine() did not add styling")
	}
	if !strings.Contains(got, "ERROR") || !strings.Contains(got, "boom") {
		t.Fatalf("ColorizeLine() lost text: %q", got)
	}

	lines := ColorizeLines([]string{line, "detail"})
	if len(lines) != 2 || lines[1] != "detail" {
		t.Fatalf("ColorizeLines() = %q", lines)
	}
}

package ui

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestFormatterWithColor(t *testing.T) {
	os.Unsetenv("NO_COLOR")
	color.NoColor = false
	defer func() { color.NoColor = true }()

	result := Code.Sprint("ccrypt list")
	if strings.Contains(result, "`") {
		t.Errorf("Code.Sprint should not contain backticks when color is enabled, got: %s", result)
	}
	if !strings.Contains(result, "\x1b[") {
		t.Errorf("Code.Sprint should contain ANSI escape codes when color is enabled, got: %s", result)
	}
}

func TestFormatterWithNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	tests := []struct {
		name      string
		formatter Formatter
		input     string
		want      string
	}{
		{"Code adds backticks", Code, "ccrypt list", "`ccrypt list`"},
		{"Path has no decoration", Path, "notes.ccrypt", "notes.ccrypt"},
		{"Success has no decoration", Success, "✓", "✓"},
		{"Error has no decoration", Error, "✗", "✗"},
		{"Highlight adds quotes", Highlight, "report.txt", "'report.txt'"},
		{"Muted adds parentheses", Muted, "none", "(none)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.formatter.Sprint(tt.input); got != tt.want {
				t.Errorf("%s.Sprint(%q) = %q, want %q", tt.name, tt.input, got, tt.want)
			}
		})
	}

	if got := Highlight.Sprintf("%d files", 3); got != "'3 files'" {
		t.Errorf("Highlight.Sprintf = %q", got)
	}
}

func TestEnsureNewline(t *testing.T) {
	if EnsureNewline("done") != "done\n" {
		t.Error("Expected newline to be appended")
	}
	if EnsureNewline("done\n") != "done\n" {
		t.Error("Expected existing newline to be kept")
	}
	if EnsureNewline("") != "\n" {
		t.Error("Expected newline for empty string")
	}
}

func TestSize(t *testing.T) {
	tests := map[int64]string{
		0:       "0 B",
		512:     "512 B",
		1536:    "1.5 KiB",
		1048576: "1.0 MiB",
		-4:      "0 B",
	}
	for in, want := range tests {
		if got := Size(in); got != want {
			t.Errorf("Size(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	err := Table(&buf, []string{"No.", "Name"}, [][]string{{"1", "a.txt"}, {"2", "b.txt"}})
	if err != nil {
		t.Fatalf("Table failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"a.txt", "b.txt"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected table to contain %q, got:\n%s", want, out)
		}
	}
}

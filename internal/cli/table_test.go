package cli

import (
	"strings"
	"testing"
)

func TestTableRender(t *testing.T) {
	table := NewTable([]string{"CLUSTER", "COLOR", "SHARE"})
	table.AddRow([]string{"0", "#c89678", "70.0%"})
	table.AddRow([]string{"1", "#ff0000", "30.0%"})

	out := table.Render()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	if len(lines) != 4 {
		t.Fatalf("expected 4 lines (header, separator, 2 rows), got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "CLUSTER") {
		t.Errorf("header line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "---") {
		t.Errorf("separator line = %q", lines[1])
	}
	if !strings.Contains(lines[2], "#c89678") {
		t.Errorf("first row = %q", lines[2])
	}
}

func TestTableShortRowPadded(t *testing.T) {
	table := NewTable([]string{"A", "B"})
	table.AddRow([]string{"only"})

	out := table.Render()
	if !strings.Contains(out, "only") {
		t.Errorf("short row missing from output: %q", out)
	}
}

func TestTableEmptyHeaders(t *testing.T) {
	table := NewTable(nil)
	if out := table.Render(); out != "" {
		t.Errorf("expected empty output, got %q", out)
	}
}

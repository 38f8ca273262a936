package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	tl, ok := ParseLine("[Foo (F1)] did X")
	require.True(t, ok)
	assert.Equal(t, "Foo", tl.ProjectName)
	assert.Equal(t, "F1", tl.ProjectCode)
	assert.Equal(t, "did X", tl.Text)
}

func TestParseLineRejectsUntagged(t *testing.T) {
	for _, line := range []string{
		"no brackets here",
		"",
		"[missing code] text",
		"(Code) [Name] reversed",
	} {
		_, ok := ParseLine(line)
		assert.False(t, ok, "line %q should not parse", line)
	}
}

func TestParseLineNameWithSpaces(t *testing.T) {
	tl, ok := ParseLine("[Data Platform (DP-2)] shipped ingestion fix")
	require.True(t, ok)
	assert.Equal(t, "Data Platform", tl.ProjectName)
	assert.Equal(t, "DP-2", tl.ProjectCode)
	assert.Equal(t, "shipped ingestion fix", tl.Text)
}

func TestParseLineEmptyRest(t *testing.T) {
	tl, ok := ParseLine("[Foo (F1)]")
	require.True(t, ok)
	assert.Equal(t, "", tl.Text)
}

func TestParseEntryTextMultiProject(t *testing.T) {
	lines := ParseEntryText("[Alpha (A1)] wrote spec\nmisc note\n[Beta (B1)] reviewed PR")
	require.Len(t, lines, 2)
	assert.Equal(t, "Alpha", lines[0].ProjectName)
	assert.Equal(t, "Beta", lines[1].ProjectName)
}

func TestFormatTagRoundTrips(t *testing.T) {
	line := FormatTag("Alpha", "A1", "closed task")
	tl, ok := ParseLine(line)
	require.True(t, ok)
	assert.Equal(t, "Alpha", tl.ProjectName)
	assert.Equal(t, "A1", tl.ProjectCode)
	assert.Equal(t, "closed task", tl.Text)
}

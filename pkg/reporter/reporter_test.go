package reporter

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"trialgen/pkg/core"

	"github.com/stretchr/testify/require"
)

func sampleTrials() core.TrialList {
	return core.TrialList{
		{Left: "a1", Right: "a2", SameSpeaker: true},
		{Left: "a1", Right: "b1", SameSpeaker: false},
		{Left: "a2", Right: "b1", SameSpeaker: false},
	}
}

func TestTextReporterRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, TextReporter{Writer: &buf}.Report(sampleTrials()))

	require.Equal(t, "a1 a2 1\na1 b1 0\na2 b1 0\n", buf.String())

	parsed, err := ParseTrialList(&buf)
	require.NoError(t, err)
	require.Equal(t, sampleTrials(), parsed)
}

func TestParseTrialListSkipsBlankLines(t *testing.T) {
	parsed, err := ParseTrialList(strings.NewReader("a1 a2 1\n\n\na1 b1 0\n"))
	require.NoError(t, err)
	require.Len(t, parsed, 2)
}

func TestParseTrialListRejectsMalformedLines(t *testing.T) {
	_, err := ParseTrialList(strings.NewReader("a1 a2 maybe\n"))
	require.Error(t, err)
}

func TestCSVReporter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CSVReporter{Writer: &buf}.Report(sampleTrials()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Equal(t, "left,right,same_speaker", lines[0])
	require.Equal(t, "a1,a2,true", lines[1])
	require.Len(t, lines, 4)
}

func TestJSONReporter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSONReporter{Writer: &buf}.Report(sampleTrials()))

	var parsed core.TrialList
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))
	require.Equal(t, sampleTrials(), parsed)
}

func TestMarkdownReporter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, MarkdownReporter{Writer: &buf}.Report(sampleTrials()))

	out := buf.String()
	require.Contains(t, out, "| Positive trials | 1 |")
	require.Contains(t, out, "| a1 | a2 | true |")
}

func TestTableReporter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, TableReporter{Writer: &buf}.Report(sampleTrials()))
	require.Contains(t, buf.String(), "Total trials")
}

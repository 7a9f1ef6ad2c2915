package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/mentionrank/internal/builder"
	"github.com/vk/mentionrank/internal/ingest"
	"github.com/vk/mentionrank/internal/rank"
)

func summary() Summary {
	return Summary{
		Ingest:  ingest.Stats{Lines: 1500, Posts: 1498, Malformed: 2},
		Build:   builder.Stats{Posts: 1498, Skipped: 3, Vertices: 4, Edges: 3},
		Options: rank.DefaultOptions(),
		Result: &rank.Result{
			Ranking: []rank.Entry{
				{Handle: "hub", Score: 0.0925},
				{Handle: "a", Score: 0.025},
				{Handle: "b", Score: 0.025},
				{Handle: "c", Score: 0.025},
			},
			Rounds:    3,
			Converged: true,
		},
	}
}

func TestText(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Text(&buf, summary(), 2))
	out := buf.String()

	assert.Contains(t, out, "Read 1,498 posts (3 skipped, 2 malformed lines).")
	assert.Contains(t, out, "Performed 3 pagerank iterations")
	assert.Contains(t, out, "Top 2 users:")
	assert.Contains(t, out, "1st.")
	assert.Contains(t, out, "hub:")
	assert.Contains(t, out, "0.0925")
	assert.Contains(t, out, "2nd.")
	assert.NotContains(t, out, "3rd.")
}

func TestText_NotConverged(t *testing.T) {
	s := summary()
	s.Result.Converged = false
	var buf bytes.Buffer

	require.NoError(t, Text(&buf, s, 0))

	assert.Contains(t, buf.String(), "Stopped after 3 pagerank iterations")
	assert.Contains(t, buf.String(), "Top 4 users:")
}

func TestText_Empty(t *testing.T) {
	s := Summary{Options: rank.DefaultOptions(), Result: &rank.Result{Converged: true}}
	var buf bytes.Buffer

	require.NoError(t, Text(&buf, s, 5))

	assert.Contains(t, buf.String(), "No users to rank.")
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, summary(), 3))

	var doc document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, 1498, doc.Posts)
	assert.Equal(t, 2, doc.Malformed)
	assert.Equal(t, 3, doc.Rounds)
	assert.True(t, doc.Converged)
	assert.Equal(t, 0.9, doc.Damping)
	require.Len(t, doc.Ranking, 3)
	assert.Equal(t, "hub", doc.Ranking[0].Handle)
}

func TestWrite_UnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, "yaml", summary(), 1)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "yaml"))
}

func TestWrite_Dispatch(t *testing.T) {
	var text, js bytes.Buffer
	require.NoError(t, Write(&text, FormatText, summary(), 1))
	require.NoError(t, Write(&js, FormatJSON, summary(), 1))

	assert.Contains(t, text.String(), "Top 1 users:")
	assert.True(t, json.Valid(js.Bytes()))
}

package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/mentionrank/internal/ctxlog"
	"github.com/vk/mentionrank/internal/post"
)

func testContext() context.Context {
	return ctxlog.Discard(context.Background())
}

const tweets = `{"user":{"screen_name":"alice"},"entities":{"user_mentions":[{"screen_name":"bob"},{"screen_name":"carol"}]}}
{"user":{"screen_name":"bob"},"entities":{"user_mentions":[]}}

{"user":{"screen_name":"carol"}}
not json at all
{"entities":{"user_mentions":[{"screen_name":"alice"}]}}
`

func TestReader_Posts(t *testing.T) {
	r := NewReader(testContext(), strings.NewReader(tweets))

	got := slices.Collect(r.Posts())
	require.NoError(t, r.Err())

	want := []post.Post{
		{Author: "alice", Mentions: []string{"bob", "carol"}},
		{Author: "bob"},
		{Author: "carol"},
		{Author: "", Mentions: []string{"alice"}},
	}
	assert.Equal(t, want, got)
	assert.Equal(t, Stats{Lines: 5, Posts: 4, Malformed: 1}, r.Stats())
}

func TestReader_StopsEarly(t *testing.T) {
	r := NewReader(testContext(), strings.NewReader(tweets))

	for p := range r.Posts() {
		assert.Equal(t, "alice", p.Author)
		break
	}
	assert.Equal(t, 1, r.Stats().Posts)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestReader_ReadError(t *testing.T) {
	r := NewReader(testContext(), failingReader{})

	got := slices.Collect(r.Posts())

	assert.Empty(t, got)
	require.Error(t, r.Err())
	assert.Contains(t, r.Err().Error(), "disk on fire")
}

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		want   post.Post
		wantOK bool
	}{
		{
			name:   "full tweet",
			line:   `{"user":{"screen_name":" dave "},"entities":{"user_mentions":[{"screen_name":"erin","id":1}]}}`,
			want:   post.Post{Author: "dave", Mentions: []string{"erin"}},
			wantOK: true,
		},
		{
			name:   "no entities",
			line:   `{"user":{"screen_name":"dave"}}`,
			want:   post.Post{Author: "dave"},
			wantOK: true,
		},
		{
			name:   "invalid json",
			line:   `{"user":`,
			wantOK: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse([]byte(tt.line))
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tweets.json")
	require.NoError(t, os.WriteFile(path, []byte(tweets), 0600))

	rc, err := Open(path)
	require.NoError(t, err)
	defer rc.Close()

	r := NewReader(testContext(), rc)
	assert.Len(t, slices.Collect(r.Posts()), 4)
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

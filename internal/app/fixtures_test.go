package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// starTweets has three users mentioning "hub", one line that is not JSON and
// one tweet without an author.
const starTweets = `{"user":{"screen_name":"alice"},"entities":{"user_mentions":[{"screen_name":"hub"}]}}
{"user":{"screen_name":"bob"},"entities":{"user_mentions":[{"screen_name":"hub"}]}}

{"user":{"screen_name":"carol"},"entities":{"user_mentions":[{"screen_name":"hub"},{"screen_name":"carol"}]}}
this is not json
{"text":"no author here"}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func ptr[T any](v T) *T {
	return &v
}

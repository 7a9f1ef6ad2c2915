// Package ingest reads newline-delimited tweet JSON and turns each line into
// a typed post.Post. Only the two paths the ranking needs are extracted:
// user.screen_name and entities.user_mentions.#.screen_name.
package ingest

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"iter"
	"os"

	"github.com/tidwall/gjson"

	"github.com/vk/mentionrank/internal/ctxlog"
	"github.com/vk/mentionrank/internal/post"
)

// JSON paths of the fields extracted from each tweet.
const (
	AuthorPath   = "user.screen_name"
	MentionsPath = "entities.user_mentions.#.screen_name"
)

// maxLineSize bounds a single tweet line.
const maxLineSize = 16 << 20

// Stats describes what a Reader consumed.
type Stats struct {
	Lines     int `json:"lines"`     // non-blank lines read
	Posts     int `json:"posts"`     // posts yielded
	Malformed int `json:"malformed"` // lines that were not valid JSON
}

// Reader yields posts from a stream of JSON lines. It is single-use.
type Reader struct {
	ctx   context.Context
	r     io.Reader
	stats Stats
	err   error
}

// NewReader creates a reader over r. The context supplies the logger.
func NewReader(ctx context.Context, r io.Reader) *Reader {
	return &Reader{ctx: ctx, r: r}
}

// Posts returns a lazy sequence of posts. Blank lines are ignored and lines
// that are not valid JSON are skipped and counted. A tweet without an author
// is still yielded, with an empty Author, so the builder's skip policy
// applies. Read errors stop the sequence; check Err afterwards.
func (r *Reader) Posts() iter.Seq[post.Post] {
	return func(yield func(post.Post) bool) {
		logger := ctxlog.FromContext(r.ctx)
		scanner := bufio.NewScanner(r.r)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

		lineNo := 0
		for scanner.Scan() {
			lineNo++
			line := bytes.TrimSpace(scanner.Bytes())
			if len(line) == 0 {
				continue
			}
			r.stats.Lines++

			p, ok := Parse(line)
			if !ok {
				r.stats.Malformed++
				logger.Debug("Skipping malformed line.", "line", lineNo)
				continue
			}
			r.stats.Posts++
			if !yield(p) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			r.err = fmt.Errorf("failed to read posts at line %d: %w", lineNo+1, err)
		}
	}
}

// Err returns the first read error encountered by Posts.
func (r *Reader) Err() error {
	return r.err
}

// Stats returns the counters accumulated so far.
func (r *Reader) Stats() Stats {
	return r.stats
}

// Parse extracts a post from one tweet JSON document. It reports false when
// the document is not valid JSON.
func Parse(line []byte) (post.Post, bool) {
	if !gjson.ValidBytes(line) {
		return post.Post{}, false
	}

	author := gjson.GetBytes(line, AuthorPath).String()
	var mentions []string
	for _, m := range gjson.GetBytes(line, MentionsPath).Array() {
		mentions = append(mentions, m.String())
	}
	return post.New(author, mentions...), true
}

// Open opens path for reading. "-" means standard input.
func Open(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input %s: %w", path, err)
	}
	return f, nil
}

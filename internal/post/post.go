// Package post defines the typed record handed from ingestion to the graph
// builder. A post is reduced to the only two facts the ranking needs: who
// wrote it and whom it mentions.
package post

import "strings"

// Post is a single social-media post.
type Post struct {
	Author   string   `json:"author"`
	Mentions []string `json:"mentions,omitempty"`
}

// New returns a post with surrounding whitespace trimmed from every handle.
func New(author string, mentions ...string) Post {
	p := Post{Author: strings.TrimSpace(author)}
	if len(mentions) > 0 {
		p.Mentions = make([]string, 0, len(mentions))
		for _, m := range mentions {
			p.Mentions = append(p.Mentions, strings.TrimSpace(m))
		}
	}
	return p
}

// Valid reports whether the post carries an author handle. Posts without one
// cannot be attributed to a vertex.
func (p Post) Valid() bool {
	return strings.TrimSpace(p.Author) != ""
}

package builder

import (
	"context"
	"iter"
	"slices"

	"github.com/vk/mentionrank/internal/ctxlog"
	"github.com/vk/mentionrank/internal/graph"
	"github.com/vk/mentionrank/internal/post"
)

// Stats summarises a build.
type Stats struct {
	Posts         int `json:"posts"`          // posts consumed, including skipped ones
	Skipped       int `json:"skipped"`        // posts without an author
	SelfMentions  int `json:"self_mentions"`  // mentions of the post's own author
	EmptyMentions int `json:"empty_mentions"` // mentions with an empty handle
	Vertices      int `json:"vertices"`
	Edges         int `json:"edges"`
}

// Build consumes posts and returns the mention graph they describe. Posts
// without an author are skipped and counted rather than failing the build.
func Build(ctx context.Context, posts iter.Seq[post.Post]) (*graph.Graph, Stats) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Graph builder started.")

	g := graph.New()
	var stats Stats

	for p := range posts {
		stats.Posts++
		if !p.Valid() {
			stats.Skipped++
			logger.Debug("Skipping post without author.", "post_index", stats.Posts-1)
			continue
		}

		author := p.Author
		g.AddVertex(author)

		for _, mention := range p.Mentions {
			switch mention {
			case "":
				stats.EmptyMentions++
			case author:
				stats.SelfMentions++
			default:
				g.AddEdge(author, mention)
			}
		}
	}

	stats.Vertices = g.Len()
	stats.Edges = g.EdgeCount()
	logger.Debug("Graph builder finished.",
		"posts", stats.Posts,
		"skipped", stats.Skipped,
		"vertices", stats.Vertices,
		"edges", stats.Edges,
	)
	if stats.Skipped > 0 {
		logger.Warn("Skipped posts without an author.", "count", stats.Skipped)
	}
	return g, stats
}

// BuildSlice is Build over a materialized slice of posts.
func BuildSlice(ctx context.Context, posts []post.Post) (*graph.Graph, Stats) {
	return Build(ctx, slices.Values(posts))
}

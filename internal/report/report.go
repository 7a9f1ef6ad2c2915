// Package report renders a finished ranking for people and programs.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/vk/mentionrank/internal/builder"
	"github.com/vk/mentionrank/internal/ingest"
	"github.com/vk/mentionrank/internal/rank"
)

// DefaultTop is the number of entries shown when no limit is configured.
const DefaultTop = 20

// Supported output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Summary is everything a report needs about one run.
type Summary struct {
	Ingest  ingest.Stats
	Build   builder.Stats
	Options rank.Options
	Result  *rank.Result
}

// document is the JSON shape of a report.
type document struct {
	Lines         int          `json:"lines"`
	Malformed     int          `json:"malformed"`
	Posts         int          `json:"posts"`
	Skipped       int          `json:"skipped"`
	Vertices      int          `json:"vertices"`
	Edges         int          `json:"edges"`
	Rounds        int          `json:"rounds"`
	Converged     bool         `json:"converged"`
	Precision     float64      `json:"precision"`
	Damping       float64      `json:"damping"`
	MaxIterations int          `json:"max_iterations,omitempty"`
	Ranking       []rank.Entry `json:"ranking"`
}

// Write renders s in the given format.
func Write(w io.Writer, format string, s Summary, top int) error {
	switch format {
	case FormatText, "":
		return Text(w, s, top)
	case FormatJSON:
		return JSON(w, s, top)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

// Text writes a console report: the corpus size, the number of rounds and
// the top entries as aligned "handle: score" rows.
func Text(w io.Writer, s Summary, top int) error {
	if top <= 0 {
		top = DefaultTop
	}
	res := s.Result

	fmt.Fprintf(w, "Read %s posts (%s skipped, %s malformed lines).\n",
		humanize.Comma(int64(s.Build.Posts)),
		humanize.Comma(int64(s.Build.Skipped)),
		humanize.Comma(int64(s.Ingest.Malformed)),
	)
	fmt.Fprintf(w, "Mention graph has %s users and %s mentions.\n",
		humanize.Comma(int64(s.Build.Vertices)),
		humanize.Comma(int64(s.Build.Edges)),
	)
	if res.Converged {
		fmt.Fprintf(w, "Performed %s pagerank iterations before reaching the desired precision of %v.\n",
			humanize.Comma(int64(res.Rounds)), s.Options.Precision)
	} else {
		fmt.Fprintf(w, "Stopped after %s pagerank iterations without reaching the desired precision of %v.\n",
			humanize.Comma(int64(res.Rounds)), s.Options.Precision)
	}

	entries := res.Top(top)
	if len(entries) == 0 {
		fmt.Fprintln(w, "\nNo users to rank.")
		return nil
	}

	fmt.Fprintf(w, "\nTop %d users:\n", len(entries))
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, e := range entries {
		fmt.Fprintf(tw, "%s.\t%s:\t%s\n", humanize.Ordinal(i+1), e.Handle, strconv.FormatFloat(e.Score, 'g', 10, 64))
	}
	return tw.Flush()
}

// JSON writes the run summary and the top entries as an indented document.
func JSON(w io.Writer, s Summary, top int) error {
	if top <= 0 {
		top = DefaultTop
	}
	doc := document{
		Lines:         s.Ingest.Lines,
		Malformed:     s.Ingest.Malformed,
		Posts:         s.Build.Posts,
		Skipped:       s.Build.Skipped,
		Vertices:      s.Build.Vertices,
		Edges:         s.Build.Edges,
		Rounds:        s.Result.Rounds,
		Converged:     s.Result.Converged,
		Precision:     s.Options.Precision,
		Damping:       s.Options.Damping,
		MaxIterations: s.Options.MaxIterations,
		Ranking:       s.Result.Top(top),
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

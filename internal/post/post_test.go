package post

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_TrimsHandles(t *testing.T) {
	p := New("  alice ", " bob", "carol  ")

	assert.Equal(t, "alice", p.Author)
	assert.Equal(t, []string{"bob", "carol"}, p.Mentions)
}

func TestNew_NoMentions(t *testing.T) {
	p := New("alice")
	assert.Nil(t, p.Mentions)
}

func TestValid(t *testing.T) {
	tests := []struct {
		name string
		post Post
		want bool
	}{
		{"author present", Post{Author: "alice"}, true},
		{"empty author", Post{Author: ""}, false},
		{"whitespace author", Post{Author: "   ", Mentions: []string{"bob"}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.post.Valid())
		})
	}
}

package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewNoteLinkNormalization(t *testing.T) {
	tests := []struct {
		name     string
		link     string
		wantLink string
	}{
		{
			name:     "full message URL compressed",
			link:     "https://reddit.com/message/messages/000fff",
			wantLink: "m,000fff",
		},
		{
			name:     "full submission URL compressed",
			link:     "https://www.reddit.com/r/pics/comments/92dd8/test_post_please_ignore",
			wantLink: "l,92dd8",
		},
		{
			name:     "full comment URL compressed",
			link:     "https://www.reddit.com/r/pics/comments/92dd8/test_post_please_ignore/c0b6xx0",
			wantLink: "l,92dd8,c0b6xx0",
		},
		{
			name:     "existing shorthand kept",
			link:     "l,92dd8,c0b6xx0",
			wantLink: "l,92dd8,c0b6xx0",
		},
		{
			name:     "unrecognized link dropped",
			link:     "https://example.com/not/reddit",
			wantLink: "",
		},
		{
			name:     "reddit URL without permalink dropped",
			link:     "https://reddit.com/r/pics/wiki/index",
			wantLink: "",
		},
		{
			name:     "empty link stays empty",
			link:     "",
			wantLink: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewNote("someone", "a note", WithLink(tt.link))
			assert.Equal(t, tt.wantLink, n.Link)
		})
	}
}

func TestNewNoteWarningNormalization(t *testing.T) {
	tests := []struct {
		name        string
		warning     string
		wantWarning string
	}{
		{name: "recognized category kept", warning: WarningGooduser, wantWarning: WarningGooduser},
		{name: "ban kept", warning: WarningBan, wantWarning: WarningBan},
		{name: "unrecognized coerced to none", warning: "shadowban", wantWarning: WarningNone},
		{name: "empty coerced to none", warning: "", wantWarning: WarningNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewNote("someone", "a note", WithWarning(tt.warning))
			assert.Equal(t, tt.wantWarning, n.Warning)
		})
	}
}

func TestNewNoteDefaults(t *testing.T) {
	before := time.Now().Unix()
	n := NewNote("someone", "a note")
	after := time.Now().Unix()

	assert.Equal(t, "someone", n.Username)
	assert.Equal(t, "a note", n.Body)
	assert.Equal(t, WarningNone, n.Warning)
	assert.Empty(t, n.Link)
	assert.Empty(t, n.Moderator)
	assert.GreaterOrEqual(t, n.CreatedAt, before)
	assert.LessOrEqual(t, n.CreatedAt, after)
}

func TestNewNoteOptions(t *testing.T) {
	n := NewNote("someone", "a note",
		WithSubreddit("pics"),
		WithModerator("amod"),
		WithTimestamp(1466108316),
	)

	assert.Equal(t, "pics", n.Subreddit)
	assert.Equal(t, "amod", n.Moderator)
	assert.Equal(t, int64(1466108316), n.CreatedAt)
}

func TestNoteFullURL(t *testing.T) {
	tests := []struct {
		name      string
		link      string
		subreddit string
		want      string
		wantErr   error
	}{
		{
			name:      "message link",
			link:      "https://reddit.com/message/messages/000fff",
			subreddit: "teaearlgraycold",
			want:      "https://reddit.com/message/messages/000fff",
		},
		{
			name:      "submission link",
			link:      "https://www.reddit.com/r/pics/comments/92dd8/test_post_please_ignore",
			subreddit: "pics",
			want:      "https://reddit.com/r/pics/comments/92dd8/",
		},
		{
			name:      "comment link",
			link:      "https://www.reddit.com/r/pics/comments/92dd8/test_post_please_ignore/c0b6xx0",
			subreddit: "pics",
			want:      "https://reddit.com/r/pics/comments/92dd8/-/c0b6xx0",
		},
		{
			name:    "comment link without subreddit context",
			link:    "https://www.reddit.com/r/pics/comments/92dd8/test_post_please_ignore/c0b6xx0",
			wantErr: ErrSubredditRequired,
		},
		{
			name: "no link attached",
			link: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewNote("someone", "a note", WithLink(tt.link), WithSubreddit(tt.subreddit))
			got, err := n.FullURL()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidWarning(t *testing.T) {
	for _, w := range Warnings {
		assert.True(t, ValidWarning(w), w)
	}
	assert.False(t, ValidWarning("shadowban"))
	assert.False(t, ValidWarning(""))
}

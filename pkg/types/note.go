package types

import "time"

// Warning categories. A note carries exactly one; unrecognized input
// normalizes to WarningNone.
const (
	WarningNone      = "none"
	WarningSpamwatch = "spamwatch"
	WarningSpamwarn  = "spamwarn"
	WarningAbusewarn = "abusewarn"
	WarningBan       = "ban"
	WarningPermban   = "permban"
	WarningBotban    = "botban"
	WarningGooduser  = "gooduser"
)

// Warnings lists the recognized warning categories in the order they are
// seeded into a fresh record. The order is part of the wire format: stored
// notes reference categories by index into this list.
var Warnings = []string{
	WarningNone,
	WarningSpamwatch,
	WarningSpamwarn,
	WarningAbusewarn,
	WarningBan,
	WarningPermban,
	WarningBotban,
	WarningGooduser,
}

// validWarnings is the set of recognized warning category values.
var validWarnings = map[string]bool{
	WarningNone:      true,
	WarningSpamwatch: true,
	WarningSpamwarn:  true,
	WarningAbusewarn: true,
	WarningBan:       true,
	WarningPermban:   true,
	WarningBotban:    true,
	WarningGooduser:  true,
}

// ValidWarning reports whether w is a recognized warning category.
func ValidWarning(w string) bool {
	return validWarnings[w]
}

// Note is one moderator annotation on a user. Notes are value objects: they
// are created transiently by the caller or reconstructed from the persisted
// record, and are never persisted on their own.
type Note struct {
	// Username is the subject of the note.
	Username string

	// Body is the free-text message.
	Body string

	// Subreddit is the community context, needed only to expand an l-type
	// shorthand into a full URL.
	Subreddit string

	// Moderator is the author. May be left empty and filled at write time
	// from the acting session identity.
	Moderator string

	// Link is the associated permalink, always in shorthand form.
	Link string

	// Warning is the warning category, one of the Warning constants.
	Warning string

	// CreatedAt is a unix timestamp in seconds.
	CreatedAt int64
}

// NoteOption customizes a Note during construction.
type NoteOption func(*Note)

// WithSubreddit sets the community context used for link expansion.
func WithSubreddit(subreddit string) NoteOption {
	return func(n *Note) { n.Subreddit = subreddit }
}

// WithModerator sets the note's author.
func WithModerator(moderator string) NoteOption {
	return func(n *Note) { n.Moderator = moderator }
}

// WithLink sets the associated link. Accepts a full reddit URL or an
// existing shorthand; anything else is dropped during normalization.
func WithLink(link string) NoteOption {
	return func(n *Note) { n.Link = link }
}

// WithWarning sets the warning category. Unrecognized values normalize to
// WarningNone.
func WithWarning(warning string) NoteOption {
	return func(n *Note) { n.Warning = warning }
}

// WithTimestamp sets the creation time as a unix timestamp in seconds.
func WithTimestamp(ts int64) NoteOption {
	return func(n *Note) { n.CreatedAt = ts }
}

// NewNote constructs a Note for the given user and message. The link is
// normalized to shorthand form (full URLs are compressed, shorthands kept,
// anything else becomes empty) and the warning category is validated, with
// unrecognized values coerced to WarningNone. The timestamp defaults to the
// current time.
func NewNote(username, body string, opts ...NoteOption) *Note {
	n := &Note{
		Username:  username,
		Body:      body,
		Warning:   WarningNone,
		CreatedAt: time.Now().Unix(),
	}
	for _, opt := range opts {
		opt(n)
	}

	switch {
	case n.Link == "":
	case IsFullURL(n.Link):
		n.Link = CompressURL(n.Link)
	case IsShorthand(n.Link):
		// Already in shorthand form.
	default:
		n.Link = ""
	}

	if !ValidWarning(n.Warning) {
		n.Warning = WarningNone
	}
	return n
}

// FullURL expands the note's shorthand link into a full reddit URL. Returns
// the empty string with no error when the note has no link, and
// ErrSubredditRequired when an l-type shorthand is expanded without a
// subreddit context.
func (n *Note) FullURL() (string, error) {
	return ExpandURL(n.Link, n.Subreddit)
}

// Shorthand URL codec. Notes store links in a compact form shared with other
// usernotes clients; the id character classes, separators, and field order
// are a compatibility contract, not an implementation choice.

package types

import (
	"fmt"
	"regexp"
	"strings"
)

// URL templates for expanded shorthands.
const (
	messageScheme = "https://reddit.com/message/messages/%s"
	commentScheme = "https://reddit.com/r/%s/comments/%s/-/%s"
	postScheme    = "https://reddit.com/r/%s/comments/%s/"
)

var (
	// commentRe captures a submission id and an optional comment id from a
	// comment or submission permalink.
	commentRe = regexp.MustCompile(`/comments/([A-Za-z0-9]{2,})(?:/[^\s]+/([A-Za-z0-9]+))?`)

	// messageRe captures a message id from a message permalink.
	messageRe = regexp.MustCompile(`/message/messages/([A-Za-z0-9]+)`)

	// fullURLRe recognizes a full reddit URL, with or without a subdomain.
	fullURLRe = regexp.MustCompile(`^https?://(?:\w{1,3}\.)?reddit\.com/`)

	// shorthandRe recognizes a link already in shorthand form.
	shorthandRe = regexp.MustCompile(`^[ml],[A-Za-z0-9]{2,}(?:,[A-Za-z0-9]+)?`)
)

// IsFullURL reports whether link is a full reddit URL.
func IsFullURL(link string) bool {
	return fullURLRe.MatchString(link)
}

// IsShorthand reports whether link is already in shorthand form.
func IsShorthand(link string) bool {
	return shorthandRe.MatchString(link)
}

// CompressURL converts a reddit comment, submission, or message permalink
// into the shorthand stored in a note: "l,<submission>[,<comment>]" or
// "m,<message>". Returns the empty string when the link matches neither
// pattern.
func CompressURL(link string) string {
	if m := commentRe.FindStringSubmatch(link); m != nil {
		if m[2] == "" {
			return "l," + m[1]
		}
		return "l," + m[1] + "," + m[2]
	}
	if m := messageRe.FindStringSubmatch(link); m != nil {
		return "m," + m[1]
	}
	return ""
}

// ExpandURL converts a shorthand back into a full reddit URL. An empty
// shorthand expands to the empty string with no error ("no link attached").
// Expanding an l-type shorthand requires the subreddit name and returns
// ErrSubredditRequired without one; message shorthands ignore the subreddit.
// A shorthand with an unrecognized prefix expands to the empty string.
func ExpandURL(short, subreddit string) (string, error) {
	if short == "" {
		return "", nil
	}

	parts := strings.Split(short, ",")
	if len(parts) < 2 {
		return "", nil
	}

	switch parts[0] {
	case "m":
		return fmt.Sprintf(messageScheme, parts[1]), nil
	case "l":
		if subreddit == "" {
			return "", ErrSubredditRequired
		}
		if len(parts) > 2 {
			return fmt.Sprintf(commentScheme, subreddit, parts[1], parts[2]), nil
		}
		return fmt.Sprintf(postScheme, subreddit, parts[1]), nil
	}
	return "", nil
}

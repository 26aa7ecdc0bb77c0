package types

// DocumentStore is the document-store collaborator the usernotes record is
// persisted to. Implementations map their transport failures onto the
// package's error vocabulary: ErrPageNotFound for a missing page on Read,
// StatusError (or ErrPermissionDenied) for HTTP-like failures. Any other
// error is treated as fatal and passed through unchanged.
type DocumentStore interface {
	// Read returns the current content of the named page.
	Read(page string) (string, error)

	// Create writes a page that does not yet exist, recording reason in the
	// page's changelog.
	Create(page, content, reason string) error

	// Update replaces the content of an existing page, recording reason in
	// the page's changelog.
	Update(page, content, reason string) error
}

// ModeratorRoster is the collaborator that supplies the community's
// moderator list, used to seed a freshly bootstrapped record.
type ModeratorRoster interface {
	// ListModerators returns the moderator usernames in roster order.
	ListModerators() ([]string, error)
}

// StaticRoster is a fixed moderator list satisfying ModeratorRoster.
type StaticRoster []string

// ListModerators returns the roster as given.
func (r StaticRoster) ListModerators() ([]string, error) {
	return r, nil
}

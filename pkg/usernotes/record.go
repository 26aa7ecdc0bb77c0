// Record structures mirroring the usernotes page format.

package usernotes

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/modkit/usernotes/pkg/types"
)

// Schema is the record version this library reads and writes. A page with
// any other version is rejected; no migration is attempted.
const Schema = 6

// MaxPageSize is the maximum serialized page size in characters. An
// oversized record is rejected before any write is attempted.
const MaxPageSize = 524288

// pageJSON mirrors the wire form of the page: the users map is carried as a
// compressed blob, never inline.
type pageJSON struct {
	Ver       int           `json:"ver"`
	Constants constantsJSON `json:"constants"`
	Blob      string        `json:"blob"`
}

// constantsJSON holds the shared append-only dictionaries. Note entries
// reference moderators and warnings by index into these lists, so entries
// may only ever be appended.
type constantsJSON struct {
	Users    []string `json:"users"`
	Warnings []string `json:"warnings"`
}

// userJSON groups one user's note entries, newest first.
type userJSON struct {
	Notes []noteJSON `json:"ns"`
}

// noteJSON is one compact note entry inside the users map.
type noteJSON struct {
	Note      string `json:"n"`
	Time      int64  `json:"t"`
	Moderator int    `json:"m"`
	Link      string `json:"l"`
	Warning   int    `json:"w"`
}

// record is the expanded in-memory form of the page: the users map is
// present and the blob is not. The store converts between the two forms at
// the I/O boundary on every fetch and persist.
type record struct {
	ver      int
	users    map[string]*userJSON
	mods     []string
	warnings []string
}

// newRecord builds a fresh record with no notes, the given moderator roster,
// and the seeded warning list.
func newRecord(roster []string) *record {
	return &record{
		ver:      Schema,
		users:    make(map[string]*userJSON),
		mods:     slices.Clone(roster),
		warnings: slices.Clone(types.Warnings),
	}
}

// decodeRecord parses the wire form of a page into the expanded in-memory
// form. The version is checked before the blob is touched; a mismatch is a
// hard compatibility break.
func decodeRecord(content string) (*record, error) {
	var page pageJSON
	if err := json.Unmarshal([]byte(content), &page); err != nil {
		return nil, fmt.Errorf("parsing usernotes page: %w", err)
	}

	if page.Ver != Schema {
		return nil, fmt.Errorf("%w: page is v%d, supported is v%d",
			types.ErrSchemaMismatch, page.Ver, Schema)
	}

	users, err := unpack(page.Blob)
	if err != nil {
		return nil, err
	}

	return &record{
		ver:      page.Ver,
		users:    users,
		mods:     page.Constants.Users,
		warnings: page.Constants.Warnings,
	}, nil
}

// encode converts the record back into its wire form.
func (r *record) encode() (string, error) {
	blob, err := pack(r.users)
	if err != nil {
		return "", err
	}

	page := pageJSON{
		Ver: r.ver,
		Constants: constantsJSON{
			Users:    r.mods,
			Warnings: r.warnings,
		},
		Blob: blob,
	}

	data, err := json.Marshal(page)
	if err != nil {
		return "", fmt.Errorf("marshaling usernotes page: %w", err)
	}
	return string(data), nil
}

// clone returns a deep copy. Mutations work on a clone so the cached record
// stays untouched until the write succeeds.
func (r *record) clone() *record {
	users := make(map[string]*userJSON, len(r.users))
	for name, entry := range r.users {
		users[name] = &userJSON{Notes: slices.Clone(entry.Notes)}
	}
	return &record{
		ver:      r.ver,
		users:    users,
		mods:     slices.Clone(r.mods),
		warnings: slices.Clone(r.warnings),
	}
}

// modIndex returns the dictionary index for a moderator name, appending the
// name on first use. Indices are positional and never reused.
func (r *record) modIndex(name string) int {
	if i := slices.Index(r.mods, name); i >= 0 {
		return i
	}
	r.mods = append(r.mods, name)
	return len(r.mods) - 1
}

// warningIndex returns the dictionary index for a warning category,
// appending it on first use. A category absent from both the stored
// dictionary and the recognized set is rejected.
func (r *record) warningIndex(name string) (int, error) {
	if i := slices.Index(r.warnings, name); i >= 0 {
		return i, nil
	}
	if !types.ValidWarning(name) {
		return 0, fmt.Errorf("%w: %q", types.ErrInvalidWarning, name)
	}
	r.warnings = append(r.warnings, name)
	return len(r.warnings) - 1, nil
}

// modName resolves a stored moderator index.
func (r *record) modName(i int) (string, error) {
	if i < 0 || i >= len(r.mods) {
		return "", fmt.Errorf("moderator index %d out of range (%d moderators)", i, len(r.mods))
	}
	return r.mods[i], nil
}

// warningName resolves a stored warning index.
func (r *record) warningName(i int) (string, error) {
	if i < 0 || i >= len(r.warnings) {
		return "", fmt.Errorf("warning index %d out of range (%d warnings)", i, len(r.warnings))
	}
	return r.warnings[i], nil
}

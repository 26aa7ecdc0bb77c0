// Package usernotes maintains a local cache of a community's usernotes
// record and synchronizes it with a document store through read-modify-write
// cycles. It owns the record format: schema versioning, the shorthand link
// dictionary encoding, and the compressed users blob.
package usernotes

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"golang.org/x/exp/maps"

	"go.uber.org/zap"

	"github.com/modkit/usernotes/pkg/types"
)

// UserNotes is the cached usernotes record for one community, backed by a
// single page in a document store.
//
// A UserNotes instance is synchronous and not safe for concurrent use. The
// underlying page carries no optimistic-concurrency token, so two instances
// mutating the same record can race and silently overwrite each other's
// change; callers needing stronger guarantees must serialize externally.
type UserNotes struct {
	docs   types.DocumentStore
	roster types.ModeratorRoster
	cfg    types.Config
	log    *zap.Logger

	cached   *record
	lastSync time.Time
}

// New creates a UserNotes store for the community described by cfg. Unless
// cfg.LazyStart is set, the record is fetched (or bootstrapped) immediately.
func New(docs types.DocumentStore, roster types.ModeratorRoster, cfg types.Config, opts ...Option) (*UserNotes, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	u := &UserNotes{
		docs:   docs,
		roster: roster,
		cfg:    cfg,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(u)
	}

	if !cfg.LazyStart {
		if err := u.Sync(); err != nil {
			return nil, err
		}
	}
	return u, nil
}

// Sync refreshes the cached record from the document store. A missing page
// bootstraps a fresh record and writes it back immediately. When the retry
// budget is exhausted and a previous record is cached, the stale cache is
// kept and no error is returned; without a cache the sync fails with
// ErrServerUnavailable. If cfg.CacheTTL is set and the cache is younger than
// the window, the fetch is skipped entirely.
func (u *UserNotes) Sync() error {
	if u.cached != nil && u.cfg.CacheTTL > 0 && time.Since(u.lastSync) < u.cfg.CacheTTL {
		return nil
	}

	content, err := u.readWithRetry()
	switch {
	case err == nil:
	case errors.Is(err, types.ErrPageNotFound):
		return u.bootstrap()
	case errors.Is(err, types.ErrServerUnavailable) && u.cached != nil:
		u.log.Warn("document store unavailable, serving cached record",
			zap.String("page", u.cfg.GetPageName()),
			zap.Time("last_sync", u.lastSync))
		return nil
	default:
		return err
	}

	rec, err := decodeRecord(content)
	if err != nil {
		return err
	}

	u.cached = rec
	u.lastSync = time.Now()
	u.log.Debug("synced usernotes record",
		zap.String("page", u.cfg.GetPageName()),
		zap.Int("users", len(rec.users)))
	return nil
}

// Persist writes the cached record back to the document store, tagging the
// page changelog with reason. Used by batched callers after a run of
// SkipPersist mutations.
func (u *UserNotes) Persist(reason string) error {
	if u.cached == nil {
		return types.ErrNotSynced
	}
	return u.persist(u.cached, reason)
}

// GetNotes returns the user's notes, newest first, with moderator and
// warning resolved from the record's dictionaries. A user without notes
// yields an empty list, not an error.
func (u *UserNotes) GetNotes(username string, opts ...MutateOption) ([]*types.Note, error) {
	o := applyMutateOpts(opts)
	if !o.skipFetch {
		if err := u.Sync(); err != nil {
			return nil, err
		}
	}
	if u.cached == nil {
		return nil, types.ErrNotSynced
	}

	entry, ok := u.cached.users[username]
	if !ok {
		return []*types.Note{}, nil
	}

	notes := make([]*types.Note, 0, len(entry.Notes))
	for _, e := range entry.Notes {
		moderator, err := u.cached.modName(e.Moderator)
		if err != nil {
			return nil, fmt.Errorf("note on user %s: %w", username, err)
		}
		warning, err := u.cached.warningName(e.Warning)
		if err != nil {
			return nil, fmt.Errorf("note on user %s: %w", username, err)
		}
		notes = append(notes, types.NewNote(username, e.Note,
			types.WithSubreddit(u.cfg.Subreddit),
			types.WithModerator(moderator),
			types.WithLink(e.Link),
			types.WithWarning(warning),
			types.WithTimestamp(e.Time),
		))
	}
	return notes, nil
}

// GetUsers returns all usernames with at least one note, sorted.
func (u *UserNotes) GetUsers(opts ...MutateOption) ([]string, error) {
	o := applyMutateOpts(opts)
	if !o.skipFetch {
		if err := u.Sync(); err != nil {
			return nil, err
		}
	}
	if u.cached == nil {
		return nil, types.ErrNotSynced
	}
	keys := maps.Keys(u.cached.users)
	slices.Sort(keys)
	return keys, nil
}

// AddNote prepends a note to the subject's list, creating the subject entry
// if absent. The moderator and warning are resolved through the record's
// append-only dictionaries; a missing author falls back to the configured
// acting moderator. The write is tagged "create new note on user <name>".
func (u *UserNotes) AddNote(note *types.Note, opts ...MutateOption) error {
	if note == nil {
		return fmt.Errorf("nil note")
	}

	o := applyMutateOpts(opts)
	if !o.skipFetch {
		if err := u.Sync(); err != nil {
			return err
		}
	}
	if u.cached == nil {
		return types.ErrNotSynced
	}

	moderator := note.Moderator
	if moderator == "" {
		moderator = u.cfg.Moderator
	}
	if moderator == "" {
		return types.ErrModeratorEmpty
	}

	rec := u.cached.clone()

	warnIndex, err := rec.warningIndex(note.Warning)
	if err != nil {
		return err
	}

	ts := note.CreatedAt
	if ts == 0 {
		ts = time.Now().Unix()
	}

	entry := noteJSON{
		Note:      note.Body,
		Time:      ts,
		Moderator: rec.modIndex(moderator),
		Link:      note.Link,
		Warning:   warnIndex,
	}

	user, ok := rec.users[note.Username]
	if !ok {
		user = &userJSON{}
		rec.users[note.Username] = user
	}
	user.Notes = append([]noteJSON{entry}, user.Notes...)

	if o.skipPersist {
		u.cached = rec
		return nil
	}
	return u.persist(rec, fmt.Sprintf("create new note on user %s", note.Username))
}

// RemoveNote removes the note at index from the user's list (0 is the most
// recent). The user's entry is deleted entirely when the last note goes.
// Returns ErrNotFound for an unknown user or an out-of-range index. The
// write is tagged "delete note #<index> on user <name>".
func (u *UserNotes) RemoveNote(username string, index int, opts ...MutateOption) error {
	o := applyMutateOpts(opts)
	if !o.skipFetch {
		if err := u.Sync(); err != nil {
			return err
		}
	}
	if u.cached == nil {
		return types.ErrNotSynced
	}

	entry, ok := u.cached.users[username]
	if !ok {
		return fmt.Errorf("%w: no notes on user %s", types.ErrNotFound, username)
	}
	if index < 0 || index >= len(entry.Notes) {
		return fmt.Errorf("%w: note #%d on user %s", types.ErrNotFound, index, username)
	}

	rec := u.cached.clone()
	user := rec.users[username]
	user.Notes = slices.Delete(user.Notes, index, index+1)
	if len(user.Notes) == 0 {
		delete(rec.users, username)
	}

	if o.skipPersist {
		u.cached = rec
		return nil
	}
	return u.persist(rec, fmt.Sprintf("delete note #%d on user %s", index, username))
}

// RemoveUser deletes the user's entire entry. Returns ErrNotFound when the
// user has no notes. The write is tagged "delete user <name> from
// usernotes".
func (u *UserNotes) RemoveUser(username string, opts ...MutateOption) error {
	o := applyMutateOpts(opts)
	if !o.skipFetch {
		if err := u.Sync(); err != nil {
			return err
		}
	}
	if u.cached == nil {
		return types.ErrNotSynced
	}

	if _, ok := u.cached.users[username]; !ok {
		return fmt.Errorf("%w: no notes on user %s", types.ErrNotFound, username)
	}

	rec := u.cached.clone()
	delete(rec.users, username)

	if o.skipPersist {
		u.cached = rec
		return nil
	}
	return u.persist(rec, fmt.Sprintf("delete user %s from usernotes", username))
}

// bootstrap builds a fresh record from the moderator roster and writes it as
// a new page. Called when the page does not exist yet.
func (u *UserNotes) bootstrap() error {
	mods, err := u.roster.ListModerators()
	if err != nil {
		return fmt.Errorf("listing moderators: %w", err)
	}

	rec := newRecord(mods)
	content, err := rec.encode()
	if err != nil {
		return err
	}

	u.log.Info("bootstrapping usernotes page",
		zap.String("page", u.cfg.GetPageName()),
		zap.Int("moderators", len(mods)))

	if err := u.writeWithRetry(true, content, "Initializing"); err != nil {
		return err
	}

	u.cached = rec
	u.lastSync = time.Now()
	return nil
}

// persist encodes rec, enforces the page-size ceiling, writes it back, and
// commits it as the cached record only after the write succeeds. On any
// failure the previous cache is left untouched.
func (u *UserNotes) persist(rec *record, reason string) error {
	content, err := rec.encode()
	if err != nil {
		return err
	}

	if len(content) > MaxPageSize {
		u.log.Error("usernotes record exceeds page size",
			zap.Int("size", len(content)),
			zap.Int("max", MaxPageSize))
		return fmt.Errorf("%w: %d > %d characters", types.ErrRecordTooLarge, len(content), MaxPageSize)
	}

	if err := u.writeWithRetry(false, content, reason); err != nil {
		return err
	}

	u.cached = rec
	u.lastSync = time.Now()
	u.log.Debug("persisted usernotes record",
		zap.String("page", u.cfg.GetPageName()),
		zap.String("reason", reason),
		zap.Int("size", len(content)))
	return nil
}

// readWithRetry reads the page, retrying transient failures immediately
// until the budget runs out. Permission failures and anything non-transient
// are returned on the first occurrence.
func (u *UserNotes) readWithRetry() (string, error) {
	page := u.cfg.GetPageName()
	retries := u.cfg.GetMaxRetries()

	for {
		content, err := u.docs.Read(page)
		if err == nil {
			return content, nil
		}
		if types.IsPermissionDenied(err) {
			return "", fmt.Errorf("reading %s: %w", page, types.ErrPermissionDenied)
		}
		if types.IsTransient(err) {
			if retries > 0 {
				retries--
				u.log.Warn("transient error reading usernotes, retrying",
					zap.String("page", page),
					zap.Int("retries_left", retries),
					zap.Error(err))
				continue
			}
			return "", fmt.Errorf("reading %s: %w", page, types.ErrServerUnavailable)
		}
		return "", err
	}
}

// writeWithRetry writes the page with the same retry policy as reads.
func (u *UserNotes) writeWithRetry(create bool, content, reason string) error {
	page := u.cfg.GetPageName()
	retries := u.cfg.GetMaxRetries()

	for {
		var err error
		if create {
			err = u.docs.Create(page, content, reason)
		} else {
			err = u.docs.Update(page, content, reason)
		}
		if err == nil {
			return nil
		}
		if types.IsPermissionDenied(err) {
			return fmt.Errorf("writing %s: %w", page, types.ErrPermissionDenied)
		}
		if types.IsTransient(err) {
			if retries > 0 {
				retries--
				u.log.Warn("transient error writing usernotes, retrying",
					zap.String("page", page),
					zap.Int("retries_left", retries),
					zap.Error(err))
				continue
			}
			return fmt.Errorf("writing %s: %w", page, types.ErrServerUnavailable)
		}
		return err
	}
}

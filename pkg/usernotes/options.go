package usernotes

import "go.uber.org/zap"

// Option customizes a UserNotes store at construction.
type Option func(*UserNotes)

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(u *UserNotes) { u.log = log }
}

// mutateOpts controls the fetch/persist pair wrapped around a mutation.
type mutateOpts struct {
	skipFetch   bool
	skipPersist bool
}

// MutateOption opts a single call out of part of the fetch-mutate-persist
// cycle. The default is always the full cycle.
type MutateOption func(*mutateOpts)

// SkipFetch skips the leading fetch and mutates the cached record as-is.
func SkipFetch() MutateOption {
	return func(o *mutateOpts) { o.skipFetch = true }
}

// SkipPersist applies the mutation to the cache without writing it back.
// Batched callers flush later with Persist.
func SkipPersist() MutateOption {
	return func(o *mutateOpts) { o.skipPersist = true }
}

func applyMutateOpts(opts []MutateOption) mutateOpts {
	var o mutateOpts
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

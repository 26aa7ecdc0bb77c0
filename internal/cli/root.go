// Package cli implements the usernotes command-line interface.
package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/modkit/usernotes/internal/logging"
	"github.com/modkit/usernotes/internal/wikistore"
	"github.com/modkit/usernotes/pkg/types"
	"github.com/modkit/usernotes/pkg/usernotes"
)

// app holds the wiring shared by all subcommands, built once by the root
// command's PersistentPreRunE.
type app struct {
	configFile string
	logLevel   string

	log   *zap.Logger
	wiki  *wikistore.Store
	notes *usernotes.UserNotes
	cfg   types.Config
}

// NewRootCmd creates the top-level "usernotes" command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "usernotes",
		Short: "Moderator usernotes for a community, stored as a single wiki page",
		Long: `Usernotes manages the shared record of moderator annotations for a
community. Notes live in a single wiki page; every change is written back
with a changelog reason.`,
		Version:       usernotes.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// The version command needs no wiring.
			if cmd.Name() == "version" {
				return nil
			}
			return a.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	root.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (default: .usernotes.yaml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(newInitCmd(a))
	root.AddCommand(newAddCmd(a))
	root.AddCommand(newNotesCmd(a))
	root.AddCommand(newUsersCmd(a))
	root.AddCommand(newRemoveNoteCmd(a))
	root.AddCommand(newRemoveUserCmd(a))
	root.AddCommand(newLogCmd(a))
	root.AddCommand(newVersionCmd())

	return root
}

// setup loads configuration and connects the store. The usernotes record is
// fetched lazily; each command syncs as part of its own operation.
func (a *app) setup() error {
	v, err := loadConfig(a.configFile)
	if err != nil {
		return err
	}

	level := a.logLevel
	if level == "" {
		level = v.GetString(cfgKeyLogLevel)
	}
	log, err := logging.NewLogger(level)
	if err != nil {
		return err
	}
	a.log = log

	a.cfg = types.Config{
		Subreddit:  v.GetString(cfgKeySubreddit),
		PageName:   v.GetString(cfgKeyPageName),
		Moderator:  v.GetString(cfgKeyModerator),
		MaxRetries: v.GetInt(cfgKeyMaxRetries),
		LazyStart:  true,
	}

	wiki, err := wikistore.Open(v.GetString(cfgKeyDBPath))
	if err != nil {
		return err
	}
	a.wiki = wiki

	roster := types.StaticRoster(v.GetStringSlice(cfgKeyModerators))
	a.notes, err = usernotes.New(wiki, roster, a.cfg, usernotes.WithLogger(a.log))
	if err != nil {
		wiki.Close()
		return err
	}
	return nil
}

// close releases the store connection.
func (a *app) close() error {
	if a.log != nil {
		_ = a.log.Sync()
	}
	if a.wiki != nil {
		return a.wiki.Close()
	}
	return nil
}

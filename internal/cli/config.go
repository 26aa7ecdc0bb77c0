// Config loading for the usernotes CLI.

package cli

import (
	"fmt"

	"github.com/spf13/viper"
)

const (
	configName = ".usernotes"
	configType = "yaml"

	// Config keys.
	cfgKeyDBPath     = "db_path"
	cfgKeySubreddit  = "subreddit"
	cfgKeyPageName   = "page_name"
	cfgKeyModerator  = "moderator"
	cfgKeyModerators = "moderators"
	cfgKeyMaxRetries = "max_retries"
	cfgKeyLogLevel   = "log_level"
)

// loadConfig reads the CLI configuration with Viper. With no --config flag
// the file is .usernotes.yaml in the working directory or the home
// directory; a missing file is not an error, flags and defaults apply.
func loadConfig(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyDBPath, ".usernotes.db")
	v.SetDefault(cfgKeyLogLevel, "info")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && path == "" {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

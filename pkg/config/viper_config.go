package config

import (
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// ViperConfig layers command line flags over the environment (and the dotenv
// file named by PLAYACAMP_DOTENV_PATH). A flag is looked up under the config
// key it was bound to, so --sqlite-path bound to SQLITE_PATH overrides the
// SQLITE_PATH variable.
type ViperConfig struct {
	keyAccessors
	v *viper.Viper
}

func NewViperConfig() *ViperConfig {
	c := &ViperConfig{v: viper.New()}
	c.keyAccessors = keyAccessors{lookup: c.v.GetString}
	return c
}

// BindFlag makes the named flag, when set, the value for key.
func (c *ViperConfig) BindFlag(key string, flag *pflag.Flag) error {
	return c.v.BindPFlag(key, flag)
}

// Set overrides key regardless of flags and environment.
func (c *ViperConfig) Set(key, value string) {
	c.v.Set(key, value)
}

func (c *ViperConfig) Load() error {
	if dotenvPath := os.Getenv(DotenvPathEnvVar); dotenvPath != "" {
		if err := gotenv.Load(dotenvPath); err != nil {
			return err
		}
	}

	c.v.AutomaticEnv()
	return nil
}

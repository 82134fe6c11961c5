package config

import (
	"os"

	"github.com/apex/log"
	"github.com/subosito/gotenv"
)

// DotenvConfig reads keys from the process environment after loading a dotenv
// file into it.
type DotenvConfig struct {
	keyAccessors
	DotenvPath string
}

func NewDotenvConfig(path string) *DotenvConfig {
	return &DotenvConfig{
		keyAccessors: keyAccessors{lookup: os.Getenv},
		DotenvPath:   path,
	}
}

// Load loads the dotenv file. Values already set in the environment take
// precedence over the file.
func (c *DotenvConfig) Load() error {
	if c.DotenvPath == "" {
		return nil
	}
	return gotenv.Load(c.DotenvPath)
}

// MustLoadFromDotenv loads the dotenv file named by PLAYACAMP_DOTENV_PATH. When
// the variable isn't set the configuration comes from the environment alone.
func MustLoadFromDotenv() *DotenvConfig {
	dotenvPath := os.Getenv(DotenvPathEnvVar)
	if dotenvPath == "" {
		log.Warnf("%s not set, reading configuration from the environment", DotenvPathEnvVar)
	}

	c := NewDotenvConfig(dotenvPath)
	if err := c.Load(); err != nil {
		log.Fatalf("Failed loading configuration file %s: %s", dotenvPath, err)
	}

	return c
}

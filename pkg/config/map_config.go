package config

import (
	"sync"
)

// MapConfig is a Configer over a fixed set of entries. Tests use it in place
// of the environment.
type MapConfig struct {
	keyAccessors
	configValues sync.Map
}

func NewMapConfig(entries map[string]string) *MapConfig {
	c := &MapConfig{}
	c.keyAccessors = keyAccessors{lookup: c.get}

	for key, entry := range entries {
		c.configValues.Store(key, entry)
	}

	return c
}

func (c *MapConfig) Load() error {
	return nil
}

func (c *MapConfig) Set(key, value string) {
	c.configValues.Store(key, value)
}

func (c *MapConfig) get(key string) string {
	v, ok := c.configValues.Load(key)
	if !ok {
		return ""
	}

	s, _ := v.(string)
	return s
}

package config

import (
	"strconv"
	"time"

	"github.com/apex/log"
)

type Configer interface {
	Load() error
	GetKey(key string) string
	MustGetKey(key string) string
	GetKeyWithDefault(key, defaultValue string) string
	GetIntKey(key string) int
	MustGetIntKey(key string) int
	GetIntKeyWithDefault(key string, defaultValue int) int
	GetLocation() *time.Location
}

// keyAccessors implements the typed getters on top of a raw lookup. DotenvConfig
// and MapConfig only differ in where the raw value comes from.
type keyAccessors struct {
	lookup func(key string) string
}

func (a keyAccessors) GetKey(key string) string {
	return a.lookup(key)
}

func (a keyAccessors) MustGetKey(key string) string {
	val := a.lookup(key)
	if val == "" {
		log.Fatalf("No such required config key: '%s'", key)
	}

	return val
}

func (a keyAccessors) GetKeyWithDefault(key, defaultValue string) string {
	if val := a.lookup(key); val != "" {
		return val
	}

	return defaultValue
}

func (a keyAccessors) GetIntKey(key string) int {
	return a.GetIntKeyWithDefault(key, 0)
}

func (a keyAccessors) MustGetIntKey(key string) int {
	intVal, err := strconv.Atoi(a.lookup(key))
	if err != nil {
		log.Fatalf("Required config key either doesn't exist or isn't an int: '%s': %s", key, err)
	}

	return intVal
}

func (a keyAccessors) GetIntKeyWithDefault(key string, defaultValue int) int {
	intVal, err := strconv.Atoi(a.lookup(key))
	if err != nil {
		return defaultValue
	}

	return intVal
}

// GetLocation returns the time zone event years are computed in. An unknown
// zone name falls back to the default zone.
func (a keyAccessors) GetLocation() *time.Location {
	name := a.GetKeyWithDefault(TimezoneKey, DefaultTimezone)
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Warnf("Unknown time zone '%s', using %s: %s", name, DefaultTimezone, err)
		if loc, err = time.LoadLocation(DefaultTimezone); err != nil {
			return time.UTC
		}
	}

	return loc
}

package clog

import (
	"io"
	"os"

	"github.com/apex/log"
)

// DefaultComponent is the name Levels uses for the default level.
const DefaultComponent = "default"

var clogger = NewComponentLogger(os.Stdout)

func For(component string) *log.Entry {
	return clogger.For(component)
}

func SetLevel(component string, level log.Level) {
	clogger.SetLevel(component, level)
}

func SetDefaultLevel(level log.Level) {
	clogger.SetDefaultLevel(level)
}

func SetLevelFromString(component, s string) error {
	return clogger.SetLevelFromString(component, s)
}

func SetDefaultLevelFromString(s string) error {
	return clogger.SetDefaultLevelFromString(s)
}

func SetOutput(w io.Writer) {
	clogger.SetOutput(w)
}

func Levels() map[string]string {
	return clogger.Levels()
}

func Components() []string {
	return clogger.Components()
}

// UseAsDefault routes the apex/log package level logger through the same
// handler, so code that logs with log.Infof ends up in the same stream.
func UseAsDefault() {
	log.SetHandler(clogger.handler)
	log.SetLevel(clogger.defaultLevel)
}

func closeWriter(w io.Writer) {
	if w == os.Stdout || w == os.Stderr {
		return
	}

	if c, ok := w.(io.Closer); ok {
		_ = c.Close()
	}
}

package clog

import (
	"io"
	"sort"
	"sync"

	"github.com/apex/log"
)

// ComponentLogger hands out a logger per component ("teams", "attendance",
// "webapi"...). All components share one Handler, but each has its own level.
type ComponentLogger struct {
	mu           sync.Mutex
	handler      *Handler
	defaultLevel log.Level
	loggers      map[string]*log.Logger
}

func NewComponentLogger(w io.Writer) *ComponentLogger {
	return &ComponentLogger{
		handler:      NewHandler(w),
		defaultLevel: log.InfoLevel,
		loggers:      make(map[string]*log.Logger),
	}
}

// For returns an entry that tags every line with the component's name.
func (l *ComponentLogger) For(component string) *log.Entry {
	return l.loggerFor(component).WithField("component", component)
}

func (l *ComponentLogger) loggerFor(component string) *log.Logger {
	l.mu.Lock()
	defer l.mu.Unlock()

	logger, ok := l.loggers[component]
	if !ok {
		logger = &log.Logger{Handler: l.handler, Level: l.defaultLevel}
		l.loggers[component] = logger
	}

	return logger
}

// SetLevel sets the level of a single component.
func (l *ComponentLogger) SetLevel(component string, level log.Level) {
	logger := l.loggerFor(component)

	l.mu.Lock()
	defer l.mu.Unlock()
	logger.Level = level
}

// SetDefaultLevel sets the level of every component, including ones that
// haven't logged yet.
func (l *ComponentLogger) SetDefaultLevel(level log.Level) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.defaultLevel = level
	for _, logger := range l.loggers {
		logger.Level = level
	}
}

func (l *ComponentLogger) SetLevelFromString(component, s string) error {
	level, err := log.ParseLevel(s)
	if err != nil {
		return err
	}

	l.SetLevel(component, level)
	return nil
}

func (l *ComponentLogger) SetDefaultLevelFromString(s string) error {
	level, err := log.ParseLevel(s)
	if err != nil {
		return err
	}

	l.SetDefaultLevel(level)
	return nil
}

func (l *ComponentLogger) SetOutput(w io.Writer) {
	l.handler.SetOutput(w)
}

// Levels reports the level of every component that has logged, by name.
func (l *ComponentLogger) Levels() map[string]string {
	l.mu.Lock()
	defer l.mu.Unlock()

	levels := make(map[string]string, len(l.loggers)+1)
	levels[DefaultComponent] = l.defaultLevel.String()
	for name, logger := range l.loggers {
		levels[name] = logger.Level.String()
	}

	return levels
}

// Components lists the known component names in sorted order.
func (l *ComponentLogger) Components() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	names := make([]string, 0, len(l.loggers))
	for name := range l.loggers {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

package logger

import (
	"sync"
)

// named holds component loggers registered after Init.
var named = &namedLoggers{
	loggers: make(map[string]*Logger),
}

type namedLoggers struct {
	mu      sync.RWMutex
	loggers map[string]*Logger
}

// Register stores a named logger.
func Register(name string, l *Logger) {
	named.mu.Lock()
	defer named.mu.Unlock()
	named.loggers[name] = l
}

// Get retrieves a named logger. If the name is not registered it returns the
// global logger tagged with the requested component name.
func Get(name string) *Logger {
	named.mu.RLock()
	l, ok := named.loggers[name]
	named.mu.RUnlock()
	if ok {
		return l
	}
	return GetGlobalLogger().WithComponent(name)
}

// RegisterDefaults registers component loggers derived from the global
// logger. Call it after Init so the components pick up the configuration.
func RegisterDefaults(names ...string) {
	for _, name := range names {
		Register(name, GetGlobalLogger().WithComponent(name))
	}
}

// Package logger creates module loggers on top of op/go-logging.
package logger

import (
	"os"
	"strings"
	"sync"

	"github.com/op/go-logging"
)

const defaultFormat = `%{color}%{time:15:04:05.000} %{module} %{level:.4s}%{color:reset} %{message}`

var (
	setup sync.Once

	// module name -> *sync.Once guarding its level
	levels sync.Map
)

// NewLogger returns the logger of module writing to stderr. The first call
// for a module sets its level; unknown levels fall back to INFO. Later calls
// leave the level alone and only read go-logging state, so generators may be
// created from several goroutines once the module is configured.
func NewLogger(level string, module string) *logging.Logger {
	setup.Do(func() {
		backend := logging.NewLogBackend(os.Stderr, "", 0)
		logging.SetBackend(logging.NewBackendFormatter(backend, logging.MustStringFormatter(defaultFormat)))
	})

	log := logging.MustGetLogger(module)
	once, _ := levels.LoadOrStore(module, new(sync.Once))
	once.(*sync.Once).Do(func() {
		lvl, err := logging.LogLevel(strings.ToUpper(level))
		if err != nil {
			log.Warningf("unknown log level %q; using INFO", level)
			lvl = logging.INFO
		}
		logging.SetLevel(lvl, module)
	})
	return log
}

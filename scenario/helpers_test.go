package scenario

import (
	"github.com/rs/zerolog"

	"github.com/coregx/regexbuilder/engine"
)

var nopLogger = zerolog.Nop()

func mustEngine() *engine.Engine {
	return engine.MustNew(engine.DefaultConfig())
}

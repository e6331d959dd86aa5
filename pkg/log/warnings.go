package log

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/rysato/gosvm/pkg/errors"
)

// UseZerologWarnings routes library warnings (such as convergence warnings
// emitted during training) through a zerolog logger writing to w. Warnings
// that implement zerolog.LogObjectMarshaler are emitted as structured
// objects, others as plain messages. Passing nil uses os.Stderr.
func UseZerologWarnings(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	logger := zerolog.New(w).With().Timestamp().Logger()
	errors.SetZerologWarnFunc(func(warning error) {
		event := logger.Warn()
		if marshaler, ok := warning.(zerolog.LogObjectMarshaler); ok {
			event.Object("warning", marshaler)
		}
		event.Msg(warning.Error())
	})
}

package telemetry

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// NewLogger builds the app logger. With an empty path it logs to stderr;
// otherwise it appends to the given file. The returned closer releases the
// file handle, nop for stderr.
func NewLogger(path string) (*log.Logger, io.Closer, error) {
	var w io.Writer = os.Stderr
	closer := io.Closer(nopCloser{})
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		w = f
		closer = f
	}
	logger := log.NewWithOptions(w, log.Options{
		Prefix:          "waterbuddy",
		ReportTimestamp: true,
	})
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

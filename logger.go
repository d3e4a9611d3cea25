package lldpd

import (
	"fmt"
	"io"
	"net"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger records one line per LLDPDU received from a neighbor.
type Logger interface {
	Log(line string)
}

// SourceLogger is a Logger that also wants the neighbor's address. The
// agent prefers LogFrom when the sink has it.
type SourceLogger interface {
	Logger
	LogFrom(source net.HardwareAddr, line string)
}

// StdoutLogger prints each line to W, or to standard output when W is nil.
type StdoutLogger struct {
	W io.Writer
}

func (l StdoutLogger) Log(line string) {
	w := l.W
	if w == nil {
		w = os.Stdout
	}
	fmt.Fprintln(w, line)
}

type logrusLogger struct {
	log logrus.FieldLogger
}

// NewLogrusLogger logs neighbor LLDPDUs at info level on l, tagging them
// with the receiving interface.
func NewLogrusLogger(l logrus.FieldLogger, iface string) SourceLogger {
	return &logrusLogger{log: l.WithField("iface", iface)}
}

func (l *logrusLogger) Log(line string) {
	l.log.Info(line)
}

func (l *logrusLogger) LogFrom(source net.HardwareAddr, line string) {
	l.log.WithField("source", source.String()).Info(line)
}

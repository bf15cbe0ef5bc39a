package logger

import (
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger is the process-wide structured logger. It starts as a usable
// default so packages that log before Init (and tests) do not need setup.
var Logger = logrus.New()

// Init configures the shared logger for JSON output tagged with the service name.
func Init(serviceName, level string) *logrus.Logger {
	return InitWithOutput(serviceName, level, os.Stdout)
}

// InitWithOutput is Init with an explicit writer.
func InitWithOutput(serviceName, level string, out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "ts",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)
	l.AddHook(serviceHook{service: serviceName})

	Logger = l
	return l
}

// WithRequestID returns an entry carrying the request id, if there is one.
func WithRequestID(l *logrus.Logger, requestID string) *logrus.Entry {
	if requestID == "" {
		return logrus.NewEntry(l)
	}
	return l.WithField("request_id", requestID)
}

// serviceHook stamps every entry with the service name.
type serviceHook struct {
	service string
}

func (h serviceHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h serviceHook) Fire(e *logrus.Entry) error {
	if _, ok := e.Data["service"]; !ok {
		e.Data["service"] = h.service
	}
	return nil
}

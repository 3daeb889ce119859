package logger

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"managerapi/internal/config"
)

// TimestampField is the name of the timestamp key on every log line.
const TimestampField = "ts"

// Setup configures the global zerolog logger: JSON lines on stdout and, when cfg.File is set,
// a rotating copy of the same stream. Timestamps are rendered in loc.
// The returned logger is also installed as log.Logger.
func Setup(cfg config.LogConfig, loc *time.Location, service string) zerolog.Logger {
	zerolog.SetGlobalLevel(ParseLevel(cfg.Level))
	zerolog.TimestampFieldName = TimestampField
	zerolog.TimeFieldFormat = time.RFC3339Nano
	if loc != nil {
		zerolog.TimestampFunc = func() time.Time { return time.Now().In(loc) }
	}

	var out io.Writer = os.Stdout
	if cfg.File != "" {
		if err := ensureLogDir(cfg.File); err != nil {
			l := New(os.Stdout, service)
			l.Error().Err(err).Str("path", cfg.File).Msg("failed to prepare log directory; logging to stdout only")
			log.Logger = l
			return l
		}
		out = zerolog.MultiLevelWriter(os.Stdout, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		})
	}

	l := New(out, service)
	log.Logger = l
	return l
}

// New builds a JSON logger writing to w, tagged with the service name when given.
func New(w io.Writer, service string) zerolog.Logger {
	ctx := zerolog.New(w).With().Timestamp()
	if service != "" {
		ctx = ctx.Str("service", service)
	}
	return ctx.Logger()
}

// ParseLevel maps a level name to a zerolog level; unknown names yield info.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

func ensureLogDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

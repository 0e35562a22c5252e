package main

import "go.uber.org/zap"

// progLogger wraps a bare sugared logger to produce the one line shape
// this binary ever emits: "confctl: message" on stderr. zap's console
// encoder prints a non-empty logger name as its own tab-separated
// token rather than fusing it with the message, so the prefix is
// applied here instead of via Named, following the single-shared
// logger pattern of foxcpp-maddy's framework/log package without
// pulling in its whole multi-output Logger wrapper.
type progLogger struct {
	s *zap.SugaredLogger
}

func (l progLogger) Errorf(template string, args ...interface{}) {
	l.s.Errorf("confctl: "+template, args...)
}

func (l progLogger) Sync() error {
	return l.s.Sync()
}

// newLogger builds the one process-wide logger this binary needs: a
// bare, key-less sugared logger writing to stderr.
func newLogger() progLogger {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.TimeKey = ""
	cfg.EncoderConfig.CallerKey = ""
	cfg.EncoderConfig.LevelKey = ""
	cfg.EncoderConfig.NameKey = ""
	cfg.EncoderConfig.StacktraceKey = ""

	logger, err := cfg.Build()
	if err != nil {
		// cfg.Build only fails on a malformed config, which this
		// literal never produces.
		panic(err)
	}
	return progLogger{s: logger.Sugar()}
}

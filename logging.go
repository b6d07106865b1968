package main

import (
	"io"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger returns a console logger writing to out (stderr in practice)
// at level, so the date taken trace on stdout stays clean.
func newLogger(out io.Writer, level zapcore.Level) *zap.Logger {
	return newLoggerTo(zapcore.Lock(zapcore.AddSync(out)), level)
}

func newLoggerTo(out zapcore.WriteSyncer, level zapcore.Level) *zap.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = func(ts time.Time, encoder zapcore.PrimitiveArrayEncoder) {
		encoder.AppendString(ts.Local().Format("2006/01/02 15:04:05.000"))
	}
	encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	consoleEncoder := zapcore.NewConsoleEncoder(encCfg)

	core := zapcore.NewCore(consoleEncoder, out, level)
	return zap.New(core)
}

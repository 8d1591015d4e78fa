package logging

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// ZerologLogger adapts zerolog to Logger. Key–value args are attached as
// fields in order; a trailing key without a value is logged under "!BADKEY",
// the same convention slog uses.
type ZerologLogger struct {
	l zerolog.Logger
}

func NewZerologLogger(l zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{l: l}
}

func (z *ZerologLogger) Debug(ctx context.Context, msg string, args ...any) {
	z.emit(ctx, z.l.Debug(), msg, args)
}

func (z *ZerologLogger) Info(ctx context.Context, msg string, args ...any) {
	z.emit(ctx, z.l.Info(), msg, args)
}

func (z *ZerologLogger) Warn(ctx context.Context, msg string, args ...any) {
	z.emit(ctx, z.l.Warn(), msg, args)
}

func (z *ZerologLogger) Error(ctx context.Context, msg string, args ...any) {
	z.emit(ctx, z.l.Error(), msg, args)
}

func (z *ZerologLogger) With(args ...any) Logger {
	c := z.l.With()
	for _, kv := range pairs(args) {
		c = c.Interface(kv.key, kv.val)
	}
	return &ZerologLogger{l: c.Logger()}
}

func (z *ZerologLogger) emit(ctx context.Context, e *zerolog.Event, msg string, args []any) {
	// disabled levels return a nil event
	if e == nil {
		return
	}
	e = e.Ctx(ctx)
	for _, kv := range pairs(args) {
		if err, ok := kv.val.(error); ok {
			e = e.AnErr(kv.key, err)
			continue
		}
		e = e.Interface(kv.key, kv.val)
	}
	e.Msg(msg)
}

type kv struct {
	key string
	val any
}

func pairs(args []any) []kv {
	out := make([]kv, 0, (len(args)+1)/2)
	for i := 0; i < len(args); i += 2 {
		if i+1 >= len(args) {
			out = append(out, kv{key: "!BADKEY", val: args[i]})
			break
		}
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprint(args[i])
		}
		out = append(out, kv{key: key, val: args[i+1]})
	}
	return out
}

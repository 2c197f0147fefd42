// Package observe turns generator progress events into logs and metrics.
package observe

import (
	"go.uber.org/zap"

	"terragen/internal/core"
)

// Logger adapts l into a core.Observer. Run start and completion are logged at
// info level, intermediate stages at debug level and flat fields as warnings.
func Logger(l *zap.Logger) core.Observer {
	if l == nil {
		l = zap.NewNop()
	}
	return core.ObserverFunc(func(e core.Event) {
		fields := []zap.Field{
			zap.String("run_id", e.RunID.String()),
			zap.String("generator", e.Generator),
			zap.String("stage", string(e.Stage)),
			zap.Duration("elapsed", e.Elapsed),
		}
		if e.Steps > 0 {
			fields = append(fields, zap.Int("step", e.Step), zap.Int("steps", e.Steps))
		}
		switch e.Stage {
		case core.StageStart:
			l.Info("generation started", append(fields, zap.Int("size", e.Size), zap.Int64("seed", e.Seed))...)
		case core.StageDone:
			if e.Degenerate {
				l.Warn("generation produced a flat field", append(fields, zap.Int64("seed", e.Seed))...)
				return
			}
			l.Info("generation finished", append(fields, zap.Int("cells", e.Count))...)
		case core.StageBoundaries:
			l.Debug("stage", append(fields, zap.Int("boundary_cells", e.Count))...)
		default:
			l.Debug("stage", fields...)
		}
	})
}

// Multi fans every event out to each non-nil observer in order.
func Multi(observers ...core.Observer) core.Observer {
	list := make([]core.Observer, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			list = append(list, o)
		}
	}
	return core.ObserverFunc(func(e core.Event) {
		for _, o := range list {
			o.Observe(e)
		}
	})
}

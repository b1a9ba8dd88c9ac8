// Package telemetry wraps the zap logger the scheduler uses for lifecycle
// events, following the same zap.NewProductionConfig()-plus-custom-core shape
// ecloudclub-zkit/zapx wraps around its own sensitive-field redaction.
package telemetry

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// nameRedactingCore truncates long diagnostic job names before they reach
// the log sink, the same pattern zapx's CustomCore applies to the "phone"
// field: redact a specific noisy/sensitive field rather than drop the line.
type nameRedactingCore struct {
	zapcore.Core
}

// WrapRedactingJobNames installs nameRedactingCore via zap.WrapCore, for use
// with zap.NewProductionConfig().Build(...).
func WrapRedactingJobNames(core zapcore.Core) zapcore.Core {
	return &nameRedactingCore{Core: core}
}

func (c *nameRedactingCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	for i, f := range fields {
		if f.Key == "job_name" && len(f.String) > 64 {
			fields[i].String = f.String[:61] + "..."
		}
	}
	return c.Core.Write(ent, fields)
}

func (c *nameRedactingCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

// New builds the scheduler's default production logger with job-name
// truncation installed. Callers that want a different sink construct their
// own *zap.Logger and pass it via Config.Logger instead.
func New() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	return cfg.Build(zap.WrapCore(WrapRedactingJobNames))
}

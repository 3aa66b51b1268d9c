package listener

import (
	"go.uber.org/zap"

	"github.com/wippyai/propstore/capability"
	"github.com/wippyai/propstore/property"
)

// LogListener writes every change it receives to a zap logger at info level.
type LogListener struct {
	logger *zap.Logger
}

// NewLogListener returns a listener that logs to l, or to the package
// logger when l is nil.
func NewLogListener(l *zap.Logger) *LogListener {
	if l == nil {
		l = Logger()
	}
	return &LogListener{logger: l}
}

func (l *LogListener) QueryCapability(id capability.ID) (capability.Unknown, error) {
	return capability.Resolve(l, id, IDListener)
}

func (l *LogListener) OnPropertyChanged(name string, t property.Type, v *property.Value) {
	if v == nil {
		l.logger.Info("property removed",
			zap.String("name", name),
			zap.Stringer("type", t))
		return
	}
	l.logger.Info("property changed",
		zap.String("name", name),
		zap.Stringer("type", t),
		zap.Stringer("value", v))
}

package monitor

import (
	"go.uber.org/zap/zapcore"

	"github.com/basement-tech/Monitoring-zimKnives/logger"
	"github.com/basement-tech/Monitoring-zimKnives/params"
)

// display dumps the registry at debug level.
func display(registry *params.Registry) {
	if !logger.Level().Enabled(zapcore.DebugLevel) {
		return
	}
	for _, p := range registry.Parameters() {
		logger.Debugf("%-10s %-8s %-6s %s event=%v", p.Label, p.Value(), p.Units, p.When(), p.Event())
	}
}

package notify

import "marketgo/utils"

// Severity classifies a user-facing notice
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notifier is the fire-and-forget toast collaborator. Implementations must
// never return control-flow errors to the caller; a failed notice is dropped.
type Notifier interface {
	Notify(message string, severity Severity)
}

// LogNotifier surfaces notices through the application logger
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

// Notify logs the notice; it never fails from the caller's perspective
func (n *LogNotifier) Notify(message string, severity Severity) {
	fields := map[string]any{"severity": string(severity)}
	switch severity {
	case SeverityWarning:
		utils.Warn("notice: "+message, fields)
	case SeverityError:
		utils.Error("notice: "+message, fields)
	default:
		utils.Info("notice: "+message, fields)
	}
}

// NopNotifier discards all notices
type NopNotifier struct{}

func (NopNotifier) Notify(string, Severity) {}

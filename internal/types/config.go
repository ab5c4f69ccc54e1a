package types

type RunMode string

const (
	// ModeLocal is the mode for running the service locally
	ModeLocal RunMode = "local"
	// ModeService is the mode for running the deployed service
	ModeService RunMode = "service"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

package core

// Logger logs messages with optional arguments.
// Implementations may give special meaning to some arguments (errors or the acting profile).
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}

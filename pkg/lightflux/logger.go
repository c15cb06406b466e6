package lightflux

// Logger is the one method of *log.Logger that the analyzer needs.
type Logger interface {
	Printf(format string, v ...interface{})
}

type discard struct{}

func (discard) Printf(string, ...interface{}) {}

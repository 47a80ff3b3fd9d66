package driven

// Reporter receives progress and diagnostics during an import.
// Implementations must not fail; reporting is best effort.
type Reporter interface {
	// Comment reports an informational message.
	Comment(msg string)

	// Error reports a failure. The caller stops processing after reporting it.
	Error(msg string)

	// Start begins progress tracking for total items.
	Start(total int)

	// Advance marks one item as done.
	Advance()

	// Finish ends progress tracking.
	Finish()
}

// NopReporter discards everything.
type NopReporter struct{}

func (NopReporter) Comment(string) {}
func (NopReporter) Error(string)   {}
func (NopReporter) Start(int)      {}
func (NopReporter) Advance()       {}
func (NopReporter) Finish()        {}

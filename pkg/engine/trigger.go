package engine

import "github.com/fyerfyer/illogical/pkg/utils"

// Sources that raise the dirty flag
const (
	SourceCreate        = "create"
	SourceConnect       = "connect"
	SourceDisconnect    = "disconnect"
	SourceRemove        = "remove"
	SourceToggleInput   = "toggle-input"
	SourceToggleDisplay = "toggle-display"
)

// Trigger is the dirty flag that requests a full evaluation sweep on the
// next tick. It remembers which events raised it since it was last cleared.
// A Trigger is not safe for concurrent use.
type Trigger struct {
	Logger  *utils.Logger
	dirty   bool
	sources []string
}

// NewTrigger creates a clean trigger
func NewTrigger(logger *utils.Logger) *Trigger {
	if logger == nil {
		logger = utils.DefaultLogger
	}
	return &Trigger{
		Logger:  logger,
		sources: make([]string, 0),
	}
}

// MarkDirty raises the flag on behalf of source
func (t *Trigger) MarkDirty(source string) {
	if !t.dirty {
		t.Logger.Trigger("raised by %s", source)
	}
	t.dirty = true
	t.sources = append(t.sources, source)
}

// IsDirty returns true if a sweep is pending
func (t *Trigger) IsDirty() bool {
	return t.dirty
}

// Sources returns the events that raised the flag since the last Clear
func (t *Trigger) Sources() []string {
	sources := make([]string, len(t.sources))
	copy(sources, t.sources)
	return sources
}

// Clear lowers the flag after a sweep
func (t *Trigger) Clear() {
	t.dirty = false
	t.sources = t.sources[:0]
}

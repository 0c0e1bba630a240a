package graph

import "github.com/OFFIS-RIT/wikigraph/pkg/common"

type EventStatus string

const (
	EventLog      EventStatus = "log"
	EventProgress EventStatus = "progress"
	EventError    EventStatus = "error"
	EventComplete EventStatus = "complete"
)

// Event is one element of a traversal's output stream. A stream is one log
// event, any number of progress events and exactly one error or complete
// event, unless the traversal is canceled.
type Event struct {
	Status  EventStatus   `json:"status" jsonschema:"enum=log,enum=progress,enum=error,enum=complete"`
	Percent *int          `json:"percent,omitempty" jsonschema:"minimum=0,maximum=100"`
	Message string        `json:"message"`
	Data    *common.Graph `json:"data,omitempty"`
}

// Terminal reports whether no further events follow e.
func (e Event) Terminal() bool {
	return e.Status == EventError || e.Status == EventComplete
}

func LogEvent(message string) Event {
	return Event{Status: EventLog, Message: message}
}

func ProgressEvent(percent int, message string) Event {
	return Event{Status: EventProgress, Percent: &percent, Message: message}
}

func ErrorEvent(message string) Event {
	return Event{Status: EventError, Message: message}
}

func CompleteEvent(message string, g common.Graph) Event {
	percent := 100
	return Event{Status: EventComplete, Percent: &percent, Message: message, Data: &g}
}

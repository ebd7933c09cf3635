package provisioning

import (
	"fmt"
	"sort"
	"time"

	"github.com/go-logr/logr"
)

// Observer defines the interface for structured observability during provisioning.
type Observer interface {
	// Printf logs an unstructured message.
	Printf(format string, v ...any)

	// Event emits a structured event
	Event(event Event)

	// Progress reports progress of a graph run
	Progress(stage string, current, total int)

	// WithFields returns a new Observer with additional context fields
	WithFields(fields map[string]string) Observer
}

// Event represents a structured provisioning event.
type Event struct {
	Type      EventType         // Type of event
	Node      string            // Graph node name (e.g., "cluster", "runner/deployment")
	Message   string            // Human-readable message
	Resource  string            // Resource name if applicable
	Timestamp time.Time         // When the event occurred
	Fields    map[string]string // Additional contextual fields
}

// EventType represents the type of provisioning event.
type EventType string

const (
	// EventNodeStarted indicates a graph node has started.
	EventNodeStarted EventType = "node.started"
	// EventNodeCompleted indicates a graph node completed successfully.
	EventNodeCompleted EventType = "node.completed"
	// EventNodeFailed indicates a graph node failed.
	EventNodeFailed EventType = "node.failed"

	// EventResourceCreating indicates a resource is being created.
	EventResourceCreating EventType = "resource.creating"
	// EventResourceCreated indicates a resource was created successfully.
	EventResourceCreated EventType = "resource.created"
	// EventResourceExists indicates a resource already exists.
	EventResourceExists EventType = "resource.exists"
	// EventResourceApplied indicates a Kubernetes object was server-side applied.
	EventResourceApplied EventType = "resource.applied"
	// EventResourceDeleting indicates a resource is being deleted.
	EventResourceDeleting EventType = "resource.deleting"
	// EventResourceDeleted indicates a resource was deleted successfully.
	EventResourceDeleted EventType = "resource.deleted"

	// EventProgress indicates progress in a long-running operation.
	EventProgress EventType = "progress"
)

// LogObserver implements Observer on top of a logr logger.
type LogObserver struct {
	logger        logr.Logger
	contextFields map[string]string
}

// NewLogObserver creates an observer that writes to logger.
func NewLogObserver(logger logr.Logger) *LogObserver {
	return &LogObserver{
		logger:        logger,
		contextFields: make(map[string]string),
	}
}

// Printf implements Observer.
func (o *LogObserver) Printf(format string, v ...any) {
	o.logger.WithValues(o.keysAndValues(nil)...).Info(fmt.Sprintf(format, v...))
}

// Event implements Observer.
func (o *LogObserver) Event(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	kv := []any{"event", string(event.Type)}
	if event.Node != "" {
		kv = append(kv, "node", event.Node)
	}
	if event.Resource != "" {
		kv = append(kv, "resource", event.Resource)
	}
	kv = append(kv, o.keysAndValues(event.Fields)...)

	logger := o.logger.WithValues(kv...)
	if event.Type == EventNodeFailed {
		logger.Error(nil, event.Message)
		return
	}
	logger.Info(event.Message)
}

// Progress implements Observer.
func (o *LogObserver) Progress(stage string, current, total int) {
	percentage := 0
	if total > 0 {
		percentage = (current * 100) / total
	}
	o.logger.V(1).WithValues(o.keysAndValues(nil)...).Info("progress",
		"stage", stage, "current", current, "total", total, "percent", percentage)
}

// WithFields implements Observer.
func (o *LogObserver) WithFields(fields map[string]string) Observer {
	newFields := make(map[string]string, len(o.contextFields)+len(fields))
	for k, v := range o.contextFields {
		newFields[k] = v
	}
	for k, v := range fields {
		newFields[k] = v
	}

	return &LogObserver{
		logger:        o.logger,
		contextFields: newFields,
	}
}

// keysAndValues merges context fields with extra fields, extra fields
// winning, in a stable key order.
func (o *LogObserver) keysAndValues(extra map[string]string) []any {
	merged := make(map[string]string, len(o.contextFields)+len(extra))
	for k, v := range o.contextFields {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}

	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	kv := make([]any, 0, 2*len(keys))
	for _, k := range keys {
		kv = append(kv, k, merged[k])
	}
	return kv
}

// Helper functions for common events

// LogNodeStart logs a node start event.
func LogNodeStart(observer Observer, node string) {
	observer.Event(Event{
		Type:    EventNodeStarted,
		Node:    node,
		Message: "starting",
	})
}

// LogNodeComplete logs a node completion event.
func LogNodeComplete(observer Observer, node string, duration time.Duration) {
	observer.Event(Event{
		Type:    EventNodeCompleted,
		Node:    node,
		Message: fmt.Sprintf("completed in %v", duration.Round(time.Millisecond)),
	})
}

// LogNodeFailed logs a node failure event.
func LogNodeFailed(observer Observer, node string, err error) {
	observer.Event(Event{
		Type:    EventNodeFailed,
		Node:    node,
		Message: fmt.Sprintf("failed: %v", err),
	})
}

// LogResourceCreating logs a resource creation start event.
func LogResourceCreating(observer Observer, resourceType, resourceName string) {
	observer.Event(Event{
		Type:     EventResourceCreating,
		Resource: resourceName,
		Message:  fmt.Sprintf("creating %s", resourceType),
		Fields: map[string]string{
			"type": resourceType,
		},
	})
}

// LogResourceCreated logs a successful resource creation event.
func LogResourceCreated(observer Observer, resourceType, resourceName string) {
	observer.Event(Event{
		Type:     EventResourceCreated,
		Resource: resourceName,
		Message:  fmt.Sprintf("%s created", resourceType),
		Fields: map[string]string{
			"type": resourceType,
		},
	})
}

// LogResourceExists logs when a resource already exists.
func LogResourceExists(observer Observer, resourceType, resourceName string) {
	observer.Event(Event{
		Type:     EventResourceExists,
		Resource: resourceName,
		Message:  fmt.Sprintf("%s already exists", resourceType),
		Fields: map[string]string{
			"type": resourceType,
		},
	})
}

// LogResourceApplied logs a server-side apply of a Kubernetes object.
func LogResourceApplied(observer Observer, kind, namespace, name string) {
	resource := name
	if namespace != "" {
		resource = namespace + "/" + name
	}
	observer.Event(Event{
		Type:     EventResourceApplied,
		Resource: resource,
		Message:  fmt.Sprintf("%s applied", kind),
		Fields: map[string]string{
			"type": kind,
		},
	})
}

// LogResourceDeleting logs a resource deletion start event.
func LogResourceDeleting(observer Observer, resourceType, resourceName string) {
	observer.Event(Event{
		Type:     EventResourceDeleting,
		Resource: resourceName,
		Message:  fmt.Sprintf("deleting %s", resourceType),
		Fields: map[string]string{
			"type": resourceType,
		},
	})
}

// LogResourceDeleted logs a successful resource deletion event.
func LogResourceDeleted(observer Observer, resourceType, resourceName string) {
	observer.Event(Event{
		Type:     EventResourceDeleted,
		Resource: resourceName,
		Message:  fmt.Sprintf("%s deleted", resourceType),
		Fields: map[string]string{
			"type": resourceType,
		},
	})
}

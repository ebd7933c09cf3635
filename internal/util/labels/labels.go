package labels

// GCP resource label keys.
const (
	// KeyCluster identifies which cluster a resource belongs to.
	KeyCluster = "gkerunner-cluster"

	// KeyPool identifies the node pool name.
	KeyPool = "gkerunner-pool"

	// KeyManagedBy identifies the management system.
	KeyManagedBy = "gkerunner-managed-by"
)

// Kubernetes label keys.
const (
	// KeyApp selects the pods of a workload.
	KeyApp = "app"

	// KeyK8sManagedBy is the recommended managed-by label.
	KeyK8sManagedBy = "app.kubernetes.io/managed-by"

	// KeyPreemptible is set to "true" by GKE on preemptible nodes. Other
	// nodes do not carry the key at all.
	KeyPreemptible = "cloud.google.com/gke-preemptible"
)

// ManagedBy is the value of both managed-by labels.
const ManagedBy = "gkerunner"

// LabelBuilder provides a fluent interface for building GCP resource labels.
type LabelBuilder struct {
	labels map[string]string
}

// NewLabelBuilder creates a new label builder with the cluster name pre-set.
func NewLabelBuilder(clusterName string) *LabelBuilder {
	return &LabelBuilder{
		labels: map[string]string{
			KeyCluster:   clusterName,
			KeyManagedBy: ManagedBy,
		},
	}
}

// WithPool adds a pool name label.
func (lb *LabelBuilder) WithPool(pool string) *LabelBuilder {
	lb.labels[KeyPool] = pool
	return lb
}

// Merge adds all labels from the provided map.
func (lb *LabelBuilder) Merge(extra map[string]string) *LabelBuilder {
	for k, v := range extra {
		lb.labels[k] = v
	}
	return lb
}

// Build returns a copy of the labels map.
func (lb *LabelBuilder) Build() map[string]string {
	result := make(map[string]string, len(lb.labels))
	for k, v := range lb.labels {
		result[k] = v
	}
	return result
}

// Selector returns the pod selector labels for an app. Deployment selectors
// are immutable, so this set must never grow.
func Selector(app string) map[string]string {
	return map[string]string{KeyApp: app}
}

// ForApp returns the metadata labels for the objects of an app.
func ForApp(app string) map[string]string {
	return map[string]string{
		KeyApp:          app,
		KeyK8sManagedBy: ManagedBy,
	}
}

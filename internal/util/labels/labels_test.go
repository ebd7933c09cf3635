package labels

import "testing"

func TestNewLabelBuilder(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		clusterName string
	}{
		{"simple cluster name", "ci-cluster"},
		{"with numbers", "cluster-01"},
		{"empty string", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			labels := NewLabelBuilder(tt.clusterName).Build()

			if labels[KeyCluster] != tt.clusterName {
				t.Errorf("expected %s=%q, got %q", KeyCluster, tt.clusterName, labels[KeyCluster])
			}
			if labels[KeyManagedBy] != ManagedBy {
				t.Errorf("expected %s=%q, got %q", KeyManagedBy, ManagedBy, labels[KeyManagedBy])
			}
			if _, ok := labels[KeyPool]; ok {
				t.Errorf("pool label must not be set by default")
			}
		})
	}
}

func TestLabelBuilder_WithPool(t *testing.T) {
	t.Parallel()
	labels := NewLabelBuilder("ci").WithPool("scale-pool").Build()

	if labels[KeyPool] != "scale-pool" {
		t.Errorf("expected pool label scale-pool, got %q", labels[KeyPool])
	}
}

func TestLabelBuilder_BuildReturnsCopy(t *testing.T) {
	t.Parallel()
	lb := NewLabelBuilder("ci")
	first := lb.Build()
	first["mutated"] = "yes"

	if _, ok := lb.Build()["mutated"]; ok {
		t.Error("Build must return an independent copy")
	}
}

func TestLabelBuilder_Merge(t *testing.T) {
	t.Parallel()
	labels := NewLabelBuilder("ci").Merge(map[string]string{"team": "platform"}).Build()

	if labels["team"] != "platform" {
		t.Errorf("expected merged label, got %v", labels)
	}
	if labels[KeyCluster] != "ci" {
		t.Errorf("merge must keep existing labels, got %v", labels)
	}
}

func TestSelectorIsSubsetOfForApp(t *testing.T) {
	t.Parallel()
	selector := Selector("gitlab-runner")
	meta := ForApp("gitlab-runner")

	for k, v := range selector {
		if meta[k] != v {
			t.Errorf("selector label %s=%s missing from metadata labels %v", k, v, meta)
		}
	}
	if len(selector) != 1 {
		t.Errorf("selector must stay minimal, got %v", selector)
	}
}

package stack

import (
	"fmt"
	"io"
	"strings"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"k8s.io/apimachinery/pkg/runtime"
	"sigs.k8s.io/yaml"

	"github.com/imamik/gkerunner/internal/access"
	"github.com/imamik/gkerunner/internal/config"
	"github.com/imamik/gkerunner/internal/k8sclient"
	"github.com/imamik/gkerunner/internal/platform/gke"
	"github.com/imamik/gkerunner/internal/provisioning/cluster"
	"github.com/imamik/gkerunner/internal/runner"
	"github.com/imamik/gkerunner/internal/util/naming"
)

// Placeholders for values only known during apply.
const (
	KnownAfterApply = "(known after apply)"
	Redacted        = "(sensitive)"
)

// Preview writes the GKE requests and every Kubernetes manifest of cfg as a
// multi-document YAML stream. It makes no API call. The runner token is
// redacted, so the config-hash differs from the one apply computes.
func Preview(w io.Writer, cfg *config.Config) error {
	var docs []string

	clusterDoc, err := protoYAML(gke.BuildCluster(cluster.ClusterSpec(cfg)))
	if err != nil {
		return fmt.Errorf("failed to render cluster: %w", err)
	}
	docs = append(docs, header("GKE cluster", naming.Cluster(cfg.Project, cfg.Cluster.Zone, cfg.Cluster.Name))+clusterDoc)

	for _, pool := range cfg.NodePools {
		doc, err := protoYAML(gke.BuildNodePool(cluster.NodePoolSpec(cfg, pool)))
		if err != nil {
			return fmt.Errorf("failed to render node pool %s: %w", pool.Name, err)
		}
		docs = append(docs, header("GKE node pool", naming.NodePool(cfg.Project, cfg.Cluster.Zone, cfg.Cluster.Name, pool.Name))+doc)
	}

	objs := access.Objects(cfg)
	params := runner.ParamsFromConfig(cfg)
	params.Token = Redacted
	runnerObjs, err := runner.NewComponent(params).Objects(KnownAfterApply)
	if err != nil {
		return err
	}
	objs = append(objs, runnerObjs...)

	for _, obj := range objs {
		doc, err := manifestYAML(obj)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
	}

	_, err = io.WriteString(w, strings.Join(docs, "---\n"))
	return err
}

func header(what, name string) string {
	return fmt.Sprintf("# %s %s\n", what, name)
}

func protoYAML(m proto.Message) (string, error) {
	j, err := protojson.Marshal(m)
	if err != nil {
		return "", err
	}
	y, err := yaml.JSONToYAML(j)
	if err != nil {
		return "", err
	}
	return string(y), nil
}

func manifestYAML(obj runtime.Object) (string, error) {
	u, err := k8sclient.ToUnstructured(obj)
	if err != nil {
		return "", err
	}
	y, err := yaml.Marshal(u.Object)
	if err != nil {
		return "", fmt.Errorf("failed to render %s %s: %w", u.GetKind(), u.GetName(), err)
	}
	return string(y), nil
}

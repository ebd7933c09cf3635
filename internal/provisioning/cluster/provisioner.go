package cluster

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/container/apiv1/containerpb"

	"github.com/imamik/gkerunner/internal/config"
	"github.com/imamik/gkerunner/internal/k8sclient"
	"github.com/imamik/gkerunner/internal/platform/gke"
	"github.com/imamik/gkerunner/internal/provisioning"
	"github.com/imamik/gkerunner/internal/util/labels"
)

// Graph node names.
const (
	NodeCluster    = "cluster"
	NodeKubeClient = "kube-client"
)

// NodePoolNode returns the graph node name of a pool.
func NodePoolNode(pool string) string {
	return "node-pool/" + pool
}

// GKE is the subset of the GKE client used by the provisioner.
type GKE interface {
	Project() string
	EnsureCluster(ctx context.Context, spec gke.ClusterSpec) (*containerpb.Cluster, bool, error)
	RemoveDefaultNodePool(ctx context.Context, zone, cluster string) (bool, error)
	EnsureNodePool(ctx context.Context, zone, cluster string, spec gke.NodePoolSpec) (*containerpb.NodePool, bool, error)
	GetCluster(ctx context.Context, zone, cluster string) (*containerpb.Cluster, error)
}

// KubeFactory builds a Kubernetes client from kubeconfig bytes.
type KubeFactory func(kubeconfig []byte) (k8sclient.Client, error)

// Provisioner declares the cluster, node pool and kube-client nodes.
type Provisioner struct {
	gke     GKE
	newKube KubeFactory
}

// NewProvisioner creates a new cluster provisioner.
func NewProvisioner(g GKE, newKube KubeFactory) *Provisioner {
	if newKube == nil {
		newKube = k8sclient.NewFromKubeconfig
	}
	return &Provisioner{gke: g, newKube: newKube}
}

// Register adds the provisioner's nodes to g.
func (p *Provisioner) Register(g *provisioning.Graph, cfg *config.Config) error {
	if err := g.Add(NodeCluster, p.provisionCluster); err != nil {
		return err
	}

	poolNodes := make([]string, 0, len(cfg.NodePools))
	for _, pool := range cfg.NodePools {
		name := NodePoolNode(pool.Name)
		if err := g.Add(name, p.provisionNodePool(pool), NodeCluster); err != nil {
			return err
		}
		poolNodes = append(poolNodes, name)
	}

	return g.Add(NodeKubeClient, p.connect, poolNodes...)
}

// ClusterSpec converts the configuration into a GKE cluster spec.
func ClusterSpec(cfg *config.Config) gke.ClusterSpec {
	return gke.ClusterSpec{
		Name:          cfg.Cluster.Name,
		Zone:          cfg.Cluster.Zone,
		MasterVersion: cfg.Cluster.MasterVersion,
		Labels:        labels.NewLabelBuilder(cfg.Cluster.Name).Build(),
	}
}

// NodePoolSpec converts one pool of the configuration into a GKE node pool
// spec.
func NodePoolSpec(cfg *config.Config, pool config.NodePoolConfig) gke.NodePoolSpec {
	spec := gke.NodePoolSpec{
		Name:        pool.Name,
		MachineType: pool.MachineType,
		DiskType:    pool.DiskType,
		Preemptible: pool.Preemptible,
		OAuthScopes: cfg.Cluster.OAuthScopes,
		Version:     cfg.Cluster.NodeVersion,
		Labels:      labels.NewLabelBuilder(cfg.Cluster.Name).WithPool(pool.Name).Build(),
		NodeCount:   pool.NodeCount,
	}
	if pool.IsAutoscaling() {
		spec.Autoscaling = true
		spec.MinNodes = pool.Autoscaling.MinNodes
		spec.MaxNodes = pool.Autoscaling.MaxNodes
	}
	return spec
}

func (p *Provisioner) provisionCluster(ctx *provisioning.Context) error {
	cfg := ctx.Config
	cctx, cancel := context.WithTimeout(ctx, ctx.Timeouts.ClusterCreate)
	defer cancel()

	provisioning.LogResourceCreating(ctx.Observer, "cluster", cfg.Cluster.Name)
	cl, created, err := p.gke.EnsureCluster(cctx, ClusterSpec(cfg))
	if err != nil {
		return err
	}
	if created {
		provisioning.LogResourceCreated(ctx.Observer, "cluster", cfg.Cluster.Name)
	} else {
		provisioning.LogResourceExists(ctx.Observer, "cluster", cfg.Cluster.Name)
	}

	removed, err := p.gke.RemoveDefaultNodePool(cctx, cfg.Cluster.Zone, cfg.Cluster.Name)
	if err != nil {
		return fmt.Errorf("failed to remove default node pool: %w", err)
	}
	if removed {
		provisioning.LogResourceDeleted(ctx.Observer, "node pool", "default-pool")
	}

	ctx.State.SetCluster(cl)
	return nil
}

func (p *Provisioner) provisionNodePool(pool config.NodePoolConfig) provisioning.NodeFunc {
	return func(ctx *provisioning.Context) error {
		cfg := ctx.Config
		cctx, cancel := context.WithTimeout(ctx, ctx.Timeouts.NodePoolCreate)
		defer cancel()

		provisioning.LogResourceCreating(ctx.Observer, "node pool", pool.Name)
		np, created, err := p.gke.EnsureNodePool(cctx, cfg.Cluster.Zone, cfg.Cluster.Name, NodePoolSpec(cfg, pool))
		if err != nil {
			return err
		}
		if created {
			provisioning.LogResourceCreated(ctx.Observer, "node pool", pool.Name)
		} else {
			provisioning.LogResourceExists(ctx.Observer, "node pool", pool.Name)
		}

		ctx.State.SetNodePool(np)
		return nil
	}
}

// connect reads the cluster endpoint and CA, builds the kubeconfig and the
// Kubernetes client.
func (p *Provisioner) connect(ctx *provisioning.Context) error {
	cfg := ctx.Config

	cl, err := p.gke.GetCluster(ctx, cfg.Cluster.Zone, cfg.Cluster.Name)
	if err != nil {
		return err
	}
	ctx.State.SetCluster(cl)

	kubeconfig, err := gke.Kubeconfig(p.gke.Project(), cfg.Cluster.Zone, cl)
	if err != nil {
		return fmt.Errorf("failed to build kubeconfig: %w", err)
	}

	if cfg.KubeconfigPath != "" {
		if err := os.WriteFile(cfg.KubeconfigPath, kubeconfig, 0o600); err != nil {
			return fmt.Errorf("failed to write kubeconfig: %w", err)
		}
		ctx.Observer.Printf("Kubeconfig written to %s", cfg.KubeconfigPath)
	}

	client, err := p.newKube(kubeconfig)
	if err != nil {
		return fmt.Errorf("failed to create kubernetes client: %w", err)
	}

	ctx.State.SetKube(kubeconfig, client)
	return nil
}

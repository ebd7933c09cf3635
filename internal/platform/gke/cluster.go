package gke

import (
	"context"
	"fmt"

	"cloud.google.com/go/container/apiv1/containerpb"

	"github.com/imamik/gkerunner/internal/util/naming"
)

// Logging and monitoring backends of the cluster.
const (
	LoggingService    = "logging.googleapis.com/kubernetes"
	MonitoringService = "monitoring.googleapis.com/kubernetes"
)

// ClusterSpec describes the cluster to create.
type ClusterSpec struct {
	Name          string
	Zone          string
	MasterVersion string
	Labels        map[string]string
}

// BuildCluster returns the cluster definition sent to CreateCluster. GKE
// requires an initial node; the pool it lands in is removed right after
// creation by RemoveDefaultNodePool.
func BuildCluster(spec ClusterSpec) *containerpb.Cluster {
	return &containerpb.Cluster{
		Name:                  spec.Name,
		InitialNodeCount:      1,
		InitialClusterVersion: spec.MasterVersion,
		IpAllocationPolicy: &containerpb.IPAllocationPolicy{
			UseIpAliases:     true,
			CreateSubnetwork: true,
		},
		LoggingService:    LoggingService,
		MonitoringService: MonitoringService,
		ResourceLabels:    spec.Labels,
	}
}

// EnsureCluster creates the cluster unless it exists and waits until it is
// running.
func (c *Client) EnsureCluster(ctx context.Context, spec ClusterSpec) (*containerpb.Cluster, bool, error) {
	name := naming.Cluster(c.project, spec.Zone, spec.Name)

	return (&EnsureOperation[*containerpb.Cluster]{
		Name:         spec.Name,
		ResourceType: "cluster",
		Zone:         spec.Zone,
		Get: func(ctx context.Context) (*containerpb.Cluster, error) {
			return c.api.GetCluster(ctx, &containerpb.GetClusterRequest{Name: name})
		},
		Create: func(ctx context.Context) (*containerpb.Operation, error) {
			return c.api.CreateCluster(ctx, &containerpb.CreateClusterRequest{
				Parent:  naming.Location(c.project, spec.Zone),
				Cluster: BuildCluster(spec),
			})
		},
		Ready: func(cl *containerpb.Cluster) bool {
			return cl.GetStatus() == containerpb.Cluster_RUNNING
		},
		Validate: func(cl *containerpb.Cluster) error {
			switch cl.GetStatus() {
			case containerpb.Cluster_ERROR, containerpb.Cluster_DEGRADED, containerpb.Cluster_STOPPING:
				return fmt.Errorf("cluster %s is in state %s: %s", spec.Name, cl.GetStatus(), cl.GetStatusMessage())
			}
			return nil
		},
	}).Execute(ctx, c)
}

// GetCluster reads a cluster.
func (c *Client) GetCluster(ctx context.Context, zone, cluster string) (*containerpb.Cluster, error) {
	cl, err := c.api.GetCluster(ctx, &containerpb.GetClusterRequest{
		Name: naming.Cluster(c.project, zone, cluster),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get cluster %s: %w", cluster, err)
	}
	return cl, nil
}

// RemoveDefaultNodePool deletes the pool GKE creates with every cluster.
// It reports whether the pool was still there.
func (c *Client) RemoveDefaultNodePool(ctx context.Context, zone, cluster string) (bool, error) {
	name := naming.NodePool(c.project, zone, cluster, naming.DefaultNodePool)

	return (&DeleteOperation{
		Name:         naming.DefaultNodePool,
		ResourceType: "node pool",
		Zone:         zone,
		Exists: func(ctx context.Context) error {
			_, err := c.api.GetNodePool(ctx, &containerpb.GetNodePoolRequest{Name: name})
			return err
		},
		Delete: func(ctx context.Context) (*containerpb.Operation, error) {
			return c.api.DeleteNodePool(ctx, &containerpb.DeleteNodePoolRequest{Name: name})
		},
	}).Execute(ctx, c)
}

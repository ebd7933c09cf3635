package gke

import (
	"context"
	"fmt"

	"cloud.google.com/go/container/apiv1/containerpb"

	"github.com/imamik/gkerunner/internal/util/naming"
)

// NodePoolSpec describes one node pool. Autoscaling pools start at
// MinNodes; fixed pools run NodeCount nodes.
type NodePoolSpec struct {
	Name        string
	MachineType string
	DiskType    string
	Preemptible bool
	OAuthScopes []string
	Version     string
	Labels      map[string]string

	NodeCount   int32
	Autoscaling bool
	MinNodes    int32
	MaxNodes    int32
}

// BuildNodePool returns the node pool definition sent to CreateNodePool.
func BuildNodePool(spec NodePoolSpec) *containerpb.NodePool {
	pool := &containerpb.NodePool{
		Name:    spec.Name,
		Version: spec.Version,
		Config: &containerpb.NodeConfig{
			MachineType:    spec.MachineType,
			DiskType:       spec.DiskType,
			Preemptible:    spec.Preemptible,
			OauthScopes:    spec.OAuthScopes,
			ResourceLabels: spec.Labels,
		},
		Management: &containerpb.NodeManagement{
			AutoRepair: true,
		},
		InitialNodeCount: spec.NodeCount,
	}

	if spec.Autoscaling {
		pool.InitialNodeCount = spec.MinNodes
		pool.Autoscaling = &containerpb.NodePoolAutoscaling{
			Enabled:      true,
			MinNodeCount: spec.MinNodes,
			MaxNodeCount: spec.MaxNodes,
		}
	}

	return pool
}

// EnsureNodePool creates the node pool unless it exists and waits until it
// is running. An existing pool whose preemptible flag differs is rejected,
// since GKE cannot change it in place.
func (c *Client) EnsureNodePool(ctx context.Context, zone, cluster string, spec NodePoolSpec) (*containerpb.NodePool, bool, error) {
	name := naming.NodePool(c.project, zone, cluster, spec.Name)

	return (&EnsureOperation[*containerpb.NodePool]{
		Name:         spec.Name,
		ResourceType: "node pool",
		Zone:         zone,
		Get: func(ctx context.Context) (*containerpb.NodePool, error) {
			return c.api.GetNodePool(ctx, &containerpb.GetNodePoolRequest{Name: name})
		},
		Create: func(ctx context.Context) (*containerpb.Operation, error) {
			return c.api.CreateNodePool(ctx, &containerpb.CreateNodePoolRequest{
				Parent:   naming.Cluster(c.project, zone, cluster),
				NodePool: BuildNodePool(spec),
			})
		},
		Ready: func(p *containerpb.NodePool) bool {
			return p.GetStatus() == containerpb.NodePool_RUNNING
		},
		Validate: func(p *containerpb.NodePool) error {
			if p.GetStatus() == containerpb.NodePool_ERROR || p.GetStatus() == containerpb.NodePool_STOPPING {
				return fmt.Errorf("node pool %s is in state %s: %s", spec.Name, p.GetStatus(), p.GetStatusMessage())
			}
			if p.GetConfig().GetPreemptible() != spec.Preemptible {
				return fmt.Errorf("node pool %s exists with preemptible=%t (expected %t)",
					spec.Name, p.GetConfig().GetPreemptible(), spec.Preemptible)
			}
			return nil
		},
	}).Execute(ctx, c)
}

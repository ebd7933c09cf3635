package gke

import (
	"context"
	"fmt"
	"time"

	container "cloud.google.com/go/container/apiv1"
	"cloud.google.com/go/container/apiv1/containerpb"
	"google.golang.org/api/option"
)

// ClusterManager is the subset of the GKE API used by gkerunner.
type ClusterManager interface {
	CreateCluster(ctx context.Context, req *containerpb.CreateClusterRequest) (*containerpb.Operation, error)
	GetCluster(ctx context.Context, req *containerpb.GetClusterRequest) (*containerpb.Cluster, error)
	CreateNodePool(ctx context.Context, req *containerpb.CreateNodePoolRequest) (*containerpb.Operation, error)
	GetNodePool(ctx context.Context, req *containerpb.GetNodePoolRequest) (*containerpb.NodePool, error)
	DeleteNodePool(ctx context.Context, req *containerpb.DeleteNodePoolRequest) (*containerpb.Operation, error)
	GetOperation(ctx context.Context, req *containerpb.GetOperationRequest) (*containerpb.Operation, error)
	Close() error
}

// apiClient adapts the generated client to ClusterManager.
type apiClient struct {
	c *container.ClusterManagerClient
}

func (a *apiClient) CreateCluster(ctx context.Context, req *containerpb.CreateClusterRequest) (*containerpb.Operation, error) {
	return a.c.CreateCluster(ctx, req)
}

func (a *apiClient) GetCluster(ctx context.Context, req *containerpb.GetClusterRequest) (*containerpb.Cluster, error) {
	return a.c.GetCluster(ctx, req)
}

func (a *apiClient) CreateNodePool(ctx context.Context, req *containerpb.CreateNodePoolRequest) (*containerpb.Operation, error) {
	return a.c.CreateNodePool(ctx, req)
}

func (a *apiClient) GetNodePool(ctx context.Context, req *containerpb.GetNodePoolRequest) (*containerpb.NodePool, error) {
	return a.c.GetNodePool(ctx, req)
}

func (a *apiClient) DeleteNodePool(ctx context.Context, req *containerpb.DeleteNodePoolRequest) (*containerpb.Operation, error) {
	return a.c.DeleteNodePool(ctx, req)
}

func (a *apiClient) GetOperation(ctx context.Context, req *containerpb.GetOperationRequest) (*containerpb.Operation, error) {
	return a.c.GetOperation(ctx, req)
}

func (a *apiClient) Close() error {
	return a.c.Close()
}

// Client manages the clusters and node pools of one project.
type Client struct {
	api          ClusterManager
	project      string
	pollInterval time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithPollInterval sets the interval between operation status reads.
func WithPollInterval(d time.Duration) ClientOption {
	return func(c *Client) {
		c.pollInterval = d
	}
}

// NewClient creates a Client on top of an existing ClusterManager.
func NewClient(api ClusterManager, project string, opts ...ClientOption) *Client {
	c := &Client{
		api:          api,
		project:      project,
		pollInterval: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewRealClient dials the GKE API with Application Default Credentials
// unless apiOpts say otherwise.
func NewRealClient(ctx context.Context, project string, clientOpts []ClientOption, apiOpts ...option.ClientOption) (*Client, error) {
	apiOpts = append([]option.ClientOption{option.WithUserAgent("gkerunner")}, apiOpts...)
	c, err := container.NewClusterManagerClient(ctx, apiOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GKE cluster manager client: %w", err)
	}
	return NewClient(&apiClient{c: c}, project, clientOpts...), nil
}

// Project returns the project the client operates in.
func (c *Client) Project() string {
	return c.project
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.api.Close()
}

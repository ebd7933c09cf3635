package runner

import (
	"context"
	"errors"
	"fmt"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"

	"github.com/imamik/gkerunner/internal/k8sclient"
	"github.com/imamik/gkerunner/internal/provisioning"
	"github.com/imamik/gkerunner/internal/util/async"
	"github.com/imamik/gkerunner/internal/util/retry"
)

// Graph node names.
const (
	NodeServiceAccount = "runner/service-account"
	NodeRole           = "runner/role"
	NodeRoleBinding    = "runner/role-binding"
	NodeSessionService = "runner/session-service"
	NodeConfig         = "runner/config"
	NodeConfigSecret   = "runner/config-secret"
	NodeDeployment     = "runner/deployment"
)

// ErrNoSessionAddress is returned when the session config is rendered
// before the session service was applied.
var ErrNoSessionAddress = errors.New("session service address is not being watched")

// Rendered is the final runner configuration.
type Rendered struct {
	Config *Config
	TOML   []byte
	Hash   string
}

// Component declares the runner objects as graph nodes. A Component is
// used for one graph run.
type Component struct {
	params Params

	// Written by one node, read by nodes that depend on it. The graph
	// orders these accesses.
	address  *async.Future[string]
	rendered *Rendered
}

// NewComponent creates a runner component.
func NewComponent(p Params) *Component {
	return &Component{params: p}
}

// Params returns the component's parameters.
func (c *Component) Params() Params {
	return c.params
}

// Rendered returns the configuration produced by the config node, or nil
// before it ran.
func (c *Component) Rendered() *Rendered {
	return c.rendered
}

// Register adds the runner nodes to g. Every root node depends on deps.
//
//	service-account ─┐
//	role ────────────┴─ role-binding ─┐
//	session-service ─ config ─ config-secret ─┴─ deployment
func (c *Component) Register(g *provisioning.Graph, deps ...string) error {
	nodes := []node{
		{NodeServiceAccount, c.applyFunc(func() runtime.Object { return c.params.ServiceAccount() }), deps},
		{NodeRole, c.applyFunc(func() runtime.Object { return c.params.Role() }), deps},
		{NodeRoleBinding, c.applyFunc(func() runtime.Object { return c.params.RoleBinding() }), []string{NodeRole, NodeServiceAccount}},
	}

	configDeps := deps
	if c.params.InteractiveSessions {
		nodes = append(nodes, node{NodeSessionService, c.applySessionService, deps})
		configDeps = []string{NodeSessionService}
	}

	nodes = append(nodes,
		node{NodeConfig, c.renderConfig, configDeps},
		node{NodeConfigSecret, c.applySecret, []string{NodeConfig}},
		node{NodeDeployment, c.applyDeployment, []string{NodeConfigSecret, NodeRoleBinding}},
	)

	for _, n := range nodes {
		if err := g.Add(n.name, n.fn, n.deps...); err != nil {
			return err
		}
	}
	return nil
}

type node struct {
	name string
	fn   provisioning.NodeFunc
	deps []string
}

// Render builds, serializes and hashes the configuration. An empty
// sessionHost is only valid with sessions disabled.
func (c *Component) Render(sessionHost string) (*Rendered, error) {
	cfg := NewConfig(c.params)
	if c.params.InteractiveSessions {
		if sessionHost == "" {
			return nil, ErrNoSessionAddress
		}
		cfg = cfg.WithSessionServer(sessionHost)
	}

	out, err := cfg.Render()
	if err != nil {
		return nil, err
	}
	// The hash covers the session block, so a new load balancer address
	// restarts the runner with the new advertise address.
	hash, err := Hash(cfg)
	if err != nil {
		return nil, err
	}
	return &Rendered{Config: cfg, TOML: out, Hash: hash}, nil
}

// Objects returns every object of the runner in apply order, rendered with
// sessionHost as the advertised session address.
func (c *Component) Objects(sessionHost string) ([]runtime.Object, error) {
	r, err := c.Render(sessionHost)
	if err != nil {
		return nil, err
	}

	p := c.params
	objs := []runtime.Object{p.ServiceAccount(), p.Role(), p.RoleBinding()}
	if p.InteractiveSessions {
		objs = append(objs, p.Service())
	}
	return append(objs, p.Secret(r.TOML), p.Deployment(r.Hash)), nil
}

func (c *Component) applyFunc(build func() runtime.Object) provisioning.NodeFunc {
	return func(ctx *provisioning.Context) error {
		return apply(ctx, build())
	}
}

func (c *Component) applySessionService(ctx *provisioning.Context) error {
	svc := c.params.Service()
	if err := apply(ctx, svc); err != nil {
		return err
	}

	kube, err := ctx.State.Kube()
	if err != nil {
		return err
	}

	// The watcher outlives this node and is awaited by the config node. It
	// stops when the graph run returns.
	ns, name := svc.Namespace, svc.Name
	timeout, interval := ctx.Timeouts.LoadBalancerIP, ctx.Timeouts.OperationPoll
	obs := ctx.Observer
	c.address = async.Go(ctx, func(wctx context.Context) (string, error) {
		wctx, cancel := context.WithTimeout(wctx, timeout)
		defer cancel()

		var addr string
		err := retry.Do(wctx, func(rctx context.Context) error {
			a, err := kube.LoadBalancerAddress(rctx, ns, name)
			if err != nil {
				return retry.Permanent(err)
			}
			if a == "" {
				return fmt.Errorf("service %s/%s has no load balancer address yet", ns, name)
			}
			addr = a
			return nil
		}, retry.WithMaxAttempts(0), retry.WithConstantDelay(interval))
		if err != nil {
			return "", fmt.Errorf("failed to get load balancer address of service %s/%s: %w", ns, name, err)
		}

		obs.Printf("Session service %s/%s has address %s", ns, name, addr)
		return addr, nil
	})
	return nil
}

func (c *Component) renderConfig(ctx *provisioning.Context) error {
	var host string
	if c.params.InteractiveSessions {
		if c.address == nil {
			return ErrNoSessionAddress
		}
		addr, err := c.address.Await(ctx)
		if err != nil {
			return err
		}
		host = addr
	}

	r, err := c.Render(host)
	if err != nil {
		return err
	}
	c.rendered = r
	ctx.Observer.Printf("Runner config rendered (hash %s)", r.Hash)
	return nil
}

func (c *Component) applySecret(ctx *provisioning.Context) error {
	if c.rendered == nil {
		return errors.New("runner config was not rendered")
	}
	return apply(ctx, c.params.Secret(c.rendered.TOML))
}

func (c *Component) applyDeployment(ctx *provisioning.Context) error {
	if c.rendered == nil {
		return errors.New("runner config was not rendered")
	}
	return apply(ctx, c.params.Deployment(c.rendered.Hash))
}

func apply(ctx *provisioning.Context, obj runtime.Object) error {
	kube, err := ctx.State.Kube()
	if err != nil {
		return err
	}
	if err := kube.Apply(ctx, obj, k8sclient.FieldManager); err != nil {
		return err
	}

	if m, ok := obj.(metav1.Object); ok {
		provisioning.LogResourceApplied(ctx.Observer, obj.GetObjectKind().GroupVersionKind().Kind, m.GetNamespace(), m.GetName())
	}
	return nil
}

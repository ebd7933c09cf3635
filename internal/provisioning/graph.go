package provisioning

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/imamik/gkerunner/internal/util/async"
)

// Graph validation errors.
var (
	ErrDuplicateNode     = errors.New("duplicate node")
	ErrUnknownDependency = errors.New("unknown dependency")
	ErrCycle             = errors.New("dependency cycle")
	errEmptyNodeName     = errors.New("node name must not be empty")
	errNilNodeFunc       = errors.New("node function must not be nil")
	errSelfDependency    = errors.New("node depends on itself")
)

// NodeFunc provisions one node of the graph.
type NodeFunc func(ctx *Context) error

type graphNode struct {
	name string
	deps []string
	run  NodeFunc
}

// Graph is a set of named nodes with declared dependencies. Dependencies
// may name nodes that are added later; they are resolved when the graph is
// ordered.
type Graph struct {
	nodes []*graphNode
	index map[string]*graphNode
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{index: make(map[string]*graphNode)}
}

// Add registers a node that runs after all of deps.
func (g *Graph) Add(name string, fn NodeFunc, deps ...string) error {
	switch {
	case name == "":
		return errEmptyNodeName
	case fn == nil:
		return fmt.Errorf("%s: %w", name, errNilNodeFunc)
	case g.index[name] != nil:
		return fmt.Errorf("%w: %s", ErrDuplicateNode, name)
	}
	for _, d := range deps {
		if d == name {
			return fmt.Errorf("%w: %s", errSelfDependency, name)
		}
	}

	n := &graphNode{name: name, deps: append([]string(nil), deps...), run: fn}
	g.nodes = append(g.nodes, n)
	g.index[name] = n
	return nil
}

// Has reports whether a node with the given name exists.
func (g *Graph) Has(name string) bool {
	return g.index[name] != nil
}

// Names returns node names in insertion order.
func (g *Graph) Names() []string {
	names := make([]string, len(g.nodes))
	for i, n := range g.nodes {
		names[i] = n.name
	}
	return names
}

// Dependencies returns the declared dependencies of a node.
func (g *Graph) Dependencies(name string) []string {
	n := g.index[name]
	if n == nil {
		return nil
	}
	return append([]string(nil), n.deps...)
}

// Waves orders the graph into topological waves: every node appears in a
// later wave than all of its dependencies. Within a wave, nodes keep
// insertion order, so the result is deterministic.
func (g *Graph) Waves() ([][]string, error) {
	indegree := make(map[string]int, len(g.nodes))
	dependents := make(map[string][]string, len(g.nodes))

	for _, n := range g.nodes {
		seen := make(map[string]bool, len(n.deps))
		for _, d := range n.deps {
			if g.index[d] == nil {
				return nil, fmt.Errorf("%w: %s depends on %s", ErrUnknownDependency, n.name, d)
			}
			if seen[d] {
				continue
			}
			seen[d] = true
			indegree[n.name]++
			dependents[d] = append(dependents[d], n.name)
		}
	}

	var waves [][]string
	done := 0
	var current []string
	for _, n := range g.nodes {
		if indegree[n.name] == 0 {
			current = append(current, n.name)
		}
	}

	for len(current) > 0 {
		waves = append(waves, current)
		done += len(current)

		ready := make(map[string]bool)
		for _, name := range current {
			for _, dep := range dependents[name] {
				indegree[dep]--
				if indegree[dep] == 0 {
					ready[dep] = true
				}
			}
		}

		var next []string
		for _, n := range g.nodes {
			if ready[n.name] {
				next = append(next, n.name)
			}
		}
		current = next
	}

	if done != len(g.nodes) {
		var stuck []string
		for _, n := range g.nodes {
			if indegree[n.name] > 0 {
				stuck = append(stuck, n.name)
			}
		}
		return nil, fmt.Errorf("%w between: %s", ErrCycle, strings.Join(stuck, ", "))
	}

	return waves, nil
}

// Run executes the graph wave by wave. Nodes of one wave run in parallel;
// a wave with any failing node aborts the run after all of its nodes have
// returned. Work a node leaves running in the background sees its context
// canceled once Run returns.
func (g *Graph) Run(ctx *Context) error {
	waves, err := g.Waves()
	if err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	ctx = ctx.WithContext(runCtx)

	start := time.Now()
	ctx.Observer.Printf("Starting provisioning with %d nodes in %d waves...", len(g.nodes), len(waves))

	for i, wave := range waves {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("provisioning canceled before wave %d: %w", i+1, err)
		}
		ctx.Observer.Progress("graph", i, len(waves))

		tasks := make([]async.Task, 0, len(wave))
		for _, name := range wave {
			n := g.index[name]
			tasks = append(tasks, async.Task{
				Name: n.name,
				Func: func(c context.Context) error {
					return g.runNode(ctx.WithContext(c), n)
				},
			})
		}

		if err := async.RunParallel(ctx, tasks); err != nil {
			return fmt.Errorf("wave %d failed: %w", i+1, err)
		}
	}

	ctx.Observer.Progress("graph", len(waves), len(waves))
	ctx.Observer.Printf("Provisioning completed in %v", time.Since(start).Round(time.Millisecond))
	return nil
}

func (g *Graph) runNode(ctx *Context, n *graphNode) error {
	nctx := ctx.forNode(n.name)
	start := time.Now()
	LogNodeStart(nctx.Observer, n.name)

	err := n.run(nctx)
	duration := time.Since(start)
	ctx.Metrics.RecordNode(n.name, duration, err)

	if err != nil {
		LogNodeFailed(nctx.Observer, n.name, err)
		return err
	}
	LogNodeComplete(nctx.Observer, n.name, duration)
	return nil
}

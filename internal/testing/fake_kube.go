package testing

import (
	"context"
	"fmt"
	"sync"

	"k8s.io/apimachinery/pkg/api/meta"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/kubernetes/scheme"

	"github.com/imamik/gkerunner/internal/k8sclient"
)

var _ k8sclient.Client = (*FakeKubeClient)(nil)

// AppliedObject is one recorded Apply call.
type AppliedObject struct {
	Kind         string
	Namespace    string
	Name         string
	FieldManager string
	Object       runtime.Object
}

// FakeKubeClient implements k8sclient.Client in memory. It is safe for
// concurrent use.
type FakeKubeClient struct {
	mu sync.Mutex

	applied     []AppliedObject
	lbAddresses []string
	lbCalls     int

	// ApplyErr, when set, is returned for objects of the given kind.
	ApplyErr map[string]error

	// LoadBalancerErr, when set, is returned by LoadBalancerAddress.
	LoadBalancerErr error
}

// NewFakeKubeClient creates an empty fake client.
func NewFakeKubeClient() *FakeKubeClient {
	return &FakeKubeClient{ApplyErr: make(map[string]error)}
}

// WithLoadBalancerAddresses scripts the values returned by successive
// LoadBalancerAddress calls. The last value repeats.
func (f *FakeKubeClient) WithLoadBalancerAddresses(addrs ...string) *FakeKubeClient {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lbAddresses = addrs
	return f
}

// WithApplyError makes Apply fail for objects of kind.
func (f *FakeKubeClient) WithApplyError(kind string, err error) *FakeKubeClient {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ApplyErr[kind] = err
	return f
}

// Apply records obj.
func (f *FakeKubeClient) Apply(_ context.Context, obj runtime.Object, fieldManager string) error {
	kind, err := kindOf(obj)
	if err != nil {
		return err
	}
	accessor, err := meta.Accessor(obj)
	if err != nil {
		return fmt.Errorf("object has no metadata: %w", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.ApplyErr[kind]; err != nil {
		return err
	}

	f.applied = append(f.applied, AppliedObject{
		Kind:         kind,
		Namespace:    accessor.GetNamespace(),
		Name:         accessor.GetName(),
		FieldManager: fieldManager,
		Object:       obj.DeepCopyObject(),
	})
	return nil
}

// LoadBalancerAddress returns the next scripted address.
func (f *FakeKubeClient) LoadBalancerAddress(_ context.Context, _, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.LoadBalancerErr != nil {
		return "", f.LoadBalancerErr
	}
	if len(f.lbAddresses) == 0 {
		return "", nil
	}
	i := f.lbCalls
	if i >= len(f.lbAddresses) {
		i = len(f.lbAddresses) - 1
	}
	f.lbCalls++
	return f.lbAddresses[i], nil
}

// Applied returns all recorded Apply calls in order.
func (f *FakeKubeClient) Applied() []AppliedObject {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]AppliedObject(nil), f.applied...)
}

// AppliedKinds returns the kinds of all recorded objects in order.
func (f *FakeKubeClient) AppliedKinds() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	kinds := make([]string, len(f.applied))
	for i, a := range f.applied {
		kinds[i] = a.Kind
	}
	return kinds
}

// Find returns the last applied object of kind with the given name.
func (f *FakeKubeClient) Find(kind, name string) (runtime.Object, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.applied) - 1; i >= 0; i-- {
		if f.applied[i].Kind == kind && f.applied[i].Name == name {
			return f.applied[i].Object, true
		}
	}
	return nil, false
}

// LoadBalancerCalls returns how often LoadBalancerAddress was called.
func (f *FakeKubeClient) LoadBalancerCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lbCalls
}

func kindOf(obj runtime.Object) (string, error) {
	if kind := obj.GetObjectKind().GroupVersionKind().Kind; kind != "" {
		return kind, nil
	}
	gvks, _, err := scheme.Scheme.ObjectKinds(obj)
	if err != nil {
		return "", fmt.Errorf("unknown object type %T: %w", obj, err)
	}
	return gvks[0].Kind, nil
}

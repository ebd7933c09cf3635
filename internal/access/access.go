package access

import (
	"fmt"

	corev1 "k8s.io/api/core/v1"
	rbacv1 "k8s.io/api/rbac/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"

	"github.com/imamik/gkerunner/internal/config"
	"github.com/imamik/gkerunner/internal/k8sclient"
	"github.com/imamik/gkerunner/internal/provisioning"
	"github.com/imamik/gkerunner/internal/provisioning/cluster"
	"github.com/imamik/gkerunner/internal/util/labels"
)

// Graph node names.
const (
	NodeNamespace           = "namespace"
	NodeClusterAdminBinding = "cluster-admin-binding"
)

const (
	// ClusterAdminBindingName is the name of the ClusterRoleBinding.
	ClusterAdminBindingName = "cluster-admin-binding"

	// ClusterAdminRole is the built-in role granted to admins.
	ClusterAdminRole = "cluster-admin"
)

// Namespace returns the namespace holding the runner and its build pods.
func Namespace(cfg *config.Config) *corev1.Namespace {
	return &corev1.Namespace{
		TypeMeta: metav1.TypeMeta{APIVersion: "v1", Kind: "Namespace"},
		ObjectMeta: metav1.ObjectMeta{
			Name:   cfg.Namespace,
			Labels: map[string]string{labels.KeyK8sManagedBy: labels.ManagedBy},
		},
	}
}

// ClusterAdminBinding grants cluster-admin to every identity in admins.
func ClusterAdminBinding(admins []string) *rbacv1.ClusterRoleBinding {
	subjects := make([]rbacv1.Subject, 0, len(admins))
	for _, admin := range admins {
		subjects = append(subjects, rbacv1.Subject{
			APIGroup: rbacv1.GroupName,
			Kind:     rbacv1.UserKind,
			Name:     admin,
		})
	}

	return &rbacv1.ClusterRoleBinding{
		TypeMeta: metav1.TypeMeta{APIVersion: "rbac.authorization.k8s.io/v1", Kind: "ClusterRoleBinding"},
		ObjectMeta: metav1.ObjectMeta{
			Name:   ClusterAdminBindingName,
			Labels: map[string]string{labels.KeyK8sManagedBy: labels.ManagedBy},
		},
		RoleRef: rbacv1.RoleRef{
			APIGroup: rbacv1.GroupName,
			Kind:     "ClusterRole",
			Name:     ClusterAdminRole,
		},
		Subjects: subjects,
	}
}

// Objects returns every object the package applies, in apply order.
func Objects(cfg *config.Config) []runtime.Object {
	return []runtime.Object{Namespace(cfg), ClusterAdminBinding(cfg.Admins)}
}

// Register adds the namespace and admin binding nodes to g. Both depend on
// the Kubernetes client only and run in the same wave.
func Register(g *provisioning.Graph) error {
	if err := g.Add(NodeNamespace, func(ctx *provisioning.Context) error {
		return apply(ctx, Namespace(ctx.Config))
	}, cluster.NodeKubeClient); err != nil {
		return err
	}

	return g.Add(NodeClusterAdminBinding, func(ctx *provisioning.Context) error {
		return apply(ctx, ClusterAdminBinding(ctx.Config.Admins))
	}, cluster.NodeKubeClient)
}

func apply(ctx *provisioning.Context, obj runtime.Object) error {
	kube, err := ctx.State.Kube()
	if err != nil {
		return err
	}

	gvk := obj.GetObjectKind().GroupVersionKind()
	m, ok := obj.(metav1.Object)
	if !ok {
		return fmt.Errorf("%s has no metadata", gvk.Kind)
	}

	if err := kube.Apply(ctx, obj, k8sclient.FieldManager); err != nil {
		return err
	}
	provisioning.LogResourceApplied(ctx.Observer, gvk.Kind, m.GetNamespace(), m.GetName())
	return nil
}

package k8sclient

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	dynamicfake "k8s.io/client-go/dynamic/fake"
	"k8s.io/client-go/kubernetes/fake"
)

func newServiceClient(t *testing.T, objects ...runtime.Object) Client {
	t.Helper()
	//nolint:staticcheck // SA1019: NewSimpleClientset is sufficient for our testing needs
	clientset := fake.NewSimpleClientset(objects...)
	return NewFromClients(clientset, dynamicfake.NewSimpleDynamicClient(runtime.NewScheme()), createApplyTestMapper())
}

func lbService(ingress ...corev1.LoadBalancerIngress) *corev1.Service {
	return &corev1.Service{
		ObjectMeta: metav1.ObjectMeta{Name: "gitlab-runner-session", Namespace: "ci"},
		Spec:       corev1.ServiceSpec{Type: corev1.ServiceTypeLoadBalancer},
		Status: corev1.ServiceStatus{
			LoadBalancer: corev1.LoadBalancerStatus{Ingress: ingress},
		},
	}
}

func TestLoadBalancerAddress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		svc     *corev1.Service
		want    string
		wantErr string
	}{
		{
			name: "pending",
			svc:  lbService(),
			want: "",
		},
		{
			name: "ip assigned",
			svc:  lbService(corev1.LoadBalancerIngress{IP: "34.1.2.3"}),
			want: "34.1.2.3",
		},
		{
			name: "hostname assigned",
			svc:  lbService(corev1.LoadBalancerIngress{Hostname: "lb.example.com"}),
			want: "lb.example.com",
		},
		{
			name: "wrong type",
			svc: &corev1.Service{
				ObjectMeta: metav1.ObjectMeta{Name: "gitlab-runner-session", Namespace: "ci"},
				Spec:       corev1.ServiceSpec{Type: corev1.ServiceTypeClusterIP},
			},
			wantErr: "not LoadBalancer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			client := newServiceClient(t, tt.svc)

			got, err := client.LoadBalancerAddress(context.Background(), "ci", "gitlab-runner-session")
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadBalancerAddress_NotFound(t *testing.T) {
	t.Parallel()
	client := newServiceClient(t)

	_, err := client.LoadBalancerAddress(context.Background(), "ci", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get service ci/missing")
}

func TestNewFromKubeconfig_InvalidKubeconfig(t *testing.T) {
	t.Parallel()

	_, err := NewFromKubeconfig([]byte(`invalid kubeconfig content`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create REST config")
}

func TestNewFromKubeconfig_Valid(t *testing.T) {
	t.Parallel()

	kubeconfig := []byte(`apiVersion: v1
kind: Config
clusters:
- name: test
  cluster:
    server: https://127.0.0.1:6443
    insecure-skip-tls-verify: true
contexts:
- name: test
  context:
    cluster: test
    user: test
current-context: test
users:
- name: test
  user:
    token: abc
`)

	client, err := NewFromKubeconfig(kubeconfig)
	require.NoError(t, err)
	assert.NotNil(t, client)
}

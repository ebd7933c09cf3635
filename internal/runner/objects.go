package runner

import (
	"fmt"
	"maps"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	rbacv1 "k8s.io/api/rbac/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"
	"k8s.io/utils/ptr"

	"github.com/imamik/gkerunner/internal/util/labels"
)

const (
	// ConfigFile is the key of the rendered config in the Secret.
	ConfigFile = "config.toml"

	// ConfigMountPath is where the Secret is mounted in the runner pod.
	ConfigMountPath = "/config"

	// MetricsPort serves the runner's Prometheus metrics.
	MetricsPort = 9252

	configVolume = "config"
	runAsUser    = 100
	fsGroup      = 65533
)

var probeCommand = []string{"/usr/bin/pgrep", "gitlab.*runner"}

func (p Params) meta() metav1.ObjectMeta {
	return metav1.ObjectMeta{
		Name:      p.Name,
		Namespace: p.Namespace,
		Labels:    labels.ForApp(p.Name),
	}
}

// Secret holds the rendered config.toml.
func (p Params) Secret(rendered []byte) *corev1.Secret {
	return &corev1.Secret{
		TypeMeta:   metav1.TypeMeta{APIVersion: "v1", Kind: "Secret"},
		ObjectMeta: p.meta(),
		Type:       corev1.SecretTypeOpaque,
		StringData: map[string]string{ConfigFile: string(rendered)},
	}
}

// ServiceAccount is the identity of the runner pod.
func (p Params) ServiceAccount() *corev1.ServiceAccount {
	return &corev1.ServiceAccount{
		TypeMeta:   metav1.TypeMeta{APIVersion: "v1", Kind: "ServiceAccount"},
		ObjectMeta: p.meta(),
	}
}

// Role grants every verb on every core resource of the namespace. The
// runner creates build pods, secrets and config maps there.
func (p Params) Role() *rbacv1.Role {
	return &rbacv1.Role{
		TypeMeta:   metav1.TypeMeta{APIVersion: "rbac.authorization.k8s.io/v1", Kind: "Role"},
		ObjectMeta: p.meta(),
		Rules: []rbacv1.PolicyRule{{
			APIGroups: []string{""},
			Resources: []string{"*"},
			Verbs:     []string{"*"},
		}},
	}
}

// RoleBinding binds Role to ServiceAccount.
func (p Params) RoleBinding() *rbacv1.RoleBinding {
	return &rbacv1.RoleBinding{
		TypeMeta:   metav1.TypeMeta{APIVersion: "rbac.authorization.k8s.io/v1", Kind: "RoleBinding"},
		ObjectMeta: p.meta(),
		RoleRef: rbacv1.RoleRef{
			APIGroup: rbacv1.GroupName,
			Kind:     "Role",
			Name:     p.Name,
		},
		Subjects: []rbacv1.Subject{{
			Kind:      rbacv1.ServiceAccountKind,
			Name:      p.Name,
			Namespace: p.Namespace,
		}},
	}
}

// Service exposes the session server through a cloud load balancer.
func (p Params) Service() *corev1.Service {
	return &corev1.Service{
		TypeMeta:   metav1.TypeMeta{APIVersion: "v1", Kind: "Service"},
		ObjectMeta: p.meta(),
		Spec: corev1.ServiceSpec{
			Type:     corev1.ServiceTypeLoadBalancer,
			Selector: labels.Selector(p.Name),
			Ports: []corev1.ServicePort{{
				Name:       "session",
				Port:       SessionPort,
				TargetPort: intstr.FromInt32(SessionPort),
				Protocol:   corev1.ProtocolTCP,
			}},
		},
	}
}

// NonPreemptibleAffinity requires nodes without the preemptible label.
// Non-preemptible GKE nodes do not carry the label at all, so a node
// selector cannot express this.
func NonPreemptibleAffinity() *corev1.Affinity {
	return &corev1.Affinity{
		NodeAffinity: &corev1.NodeAffinity{
			RequiredDuringSchedulingIgnoredDuringExecution: &corev1.NodeSelector{
				NodeSelectorTerms: []corev1.NodeSelectorTerm{{
					MatchExpressions: []corev1.NodeSelectorRequirement{{
						Key:      labels.KeyPreemptible,
						Operator: corev1.NodeSelectorOpNotIn,
						Values:   []string{"true"},
					}},
				}},
			},
		},
	}
}

func probe(initialDelay int32) *corev1.Probe {
	return &corev1.Probe{
		ProbeHandler: corev1.ProbeHandler{
			Exec: &corev1.ExecAction{Command: append([]string(nil), probeCommand...)},
		},
		InitialDelaySeconds: initialDelay,
		TimeoutSeconds:      1,
		PeriodSeconds:       10,
		SuccessThreshold:    1,
		FailureThreshold:    3,
	}
}

// Deployment runs a single runner pod. configHash is stamped on the pod
// template so that any config change rolls the pod.
func (p Params) Deployment(configHash string) *appsv1.Deployment {
	podMeta := p.meta()
	podMeta.Name = ""
	podMeta.Namespace = ""
	podMeta.Labels = maps.Clone(podMeta.Labels)
	podMeta.Annotations = map[string]string{
		"prometheus.io/scrape": "true",
		"prometheus.io/port":   fmt.Sprint(MetricsPort),
		AnnotationConfigHash:   configHash,
	}

	return &appsv1.Deployment{
		TypeMeta:   metav1.TypeMeta{APIVersion: "apps/v1", Kind: "Deployment"},
		ObjectMeta: p.meta(),
		Spec: appsv1.DeploymentSpec{
			Replicas: ptr.To[int32](1),
			Selector: &metav1.LabelSelector{MatchLabels: labels.Selector(p.Name)},
			Template: corev1.PodTemplateSpec{
				ObjectMeta: podMeta,
				Spec: corev1.PodSpec{
					Affinity: NonPreemptibleAffinity(),
					SecurityContext: &corev1.PodSecurityContext{
						RunAsUser: ptr.To[int64](runAsUser),
						FSGroup:   ptr.To[int64](fsGroup),
					},
					ServiceAccountName: p.Name,
					Containers: []corev1.Container{{
						Name:            p.Name,
						Image:           p.CoreImage,
						ImagePullPolicy: corev1.PullIfNotPresent,
						Command:         []string{"/bin/bash", "-c"},
						Args: []string{
							"/entrypoint run --user=gitlab-runner --working-directory=/home/gitlab-runner -c " +
								ConfigMountPath + "/" + ConfigFile,
						},
						LivenessProbe:  probe(60),
						ReadinessProbe: probe(10),
						Ports: []corev1.ContainerPort{{
							Name:          "metrics",
							ContainerPort: MetricsPort,
						}},
						VolumeMounts: []corev1.VolumeMount{{
							Name:      configVolume,
							MountPath: ConfigMountPath,
							ReadOnly:  true,
						}},
						Resources: corev1.ResourceRequirements{
							Requests: corev1.ResourceList{
								corev1.ResourceCPU:    resource.MustParse("500m"),
								corev1.ResourceMemory: resource.MustParse("256Mi"),
							},
						},
					}},
					Volumes: []corev1.Volume{{
						Name: configVolume,
						VolumeSource: corev1.VolumeSource{
							Secret: &corev1.SecretVolumeSource{SecretName: p.Name},
						},
					}},
				},
			},
		},
	}
}

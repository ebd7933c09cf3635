package gke

import (
	"encoding/base64"
	"errors"
	"fmt"

	"cloud.google.com/go/container/apiv1/containerpb"
	"k8s.io/client-go/tools/clientcmd"
	clientcmdapi "k8s.io/client-go/tools/clientcmd/api"

	"github.com/imamik/gkerunner/internal/util/naming"
)

// AuthPlugin is the exec credential plugin that mints GKE access tokens.
const AuthPlugin = "gke-gcloud-auth-plugin"

// Kubeconfig builds a kubeconfig for the cluster that authenticates with
// the gcloud auth plugin, matching what `gcloud container clusters
// get-credentials` writes.
func Kubeconfig(project, zone string, cluster *containerpb.Cluster) ([]byte, error) {
	if cluster.GetEndpoint() == "" {
		return nil, errors.New("cluster has no endpoint yet")
	}

	ca, err := base64.StdEncoding.DecodeString(cluster.GetMasterAuth().GetClusterCaCertificate())
	if err != nil {
		return nil, fmt.Errorf("failed to decode cluster CA certificate: %w", err)
	}
	if len(ca) == 0 {
		return nil, errors.New("cluster has no CA certificate")
	}

	name := naming.KubeContext(project, zone, cluster.GetName())

	cfg := clientcmdapi.NewConfig()
	cfg.Clusters[name] = &clientcmdapi.Cluster{
		Server:                   "https://" + cluster.GetEndpoint(),
		CertificateAuthorityData: ca,
	}
	cfg.AuthInfos[name] = &clientcmdapi.AuthInfo{
		Exec: &clientcmdapi.ExecConfig{
			APIVersion:         "client.authentication.k8s.io/v1beta1",
			Command:            AuthPlugin,
			InstallHint:        "Install gke-gcloud-auth-plugin: gcloud components install gke-gcloud-auth-plugin",
			ProvideClusterInfo: true,
			InteractiveMode:    clientcmdapi.IfAvailableExecInteractiveMode,
		},
	}
	cfg.Contexts[name] = &clientcmdapi.Context{
		Cluster:  name,
		AuthInfo: name,
	}
	cfg.CurrentContext = name

	data, err := clientcmd.Write(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize kubeconfig: %w", err)
	}
	return data, nil
}

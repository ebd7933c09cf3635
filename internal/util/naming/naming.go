package naming

import "fmt"

// DefaultNodePool is the pool GKE creates together with every cluster.
const DefaultNodePool = "default-pool"

func Location(project, zone string) string {
	return fmt.Sprintf("projects/%s/locations/%s", project, zone)
}

func Cluster(project, zone, cluster string) string {
	return fmt.Sprintf("%s/clusters/%s", Location(project, zone), cluster)
}

func NodePool(project, zone, cluster, pool string) string {
	return fmt.Sprintf("%s/nodePools/%s", Cluster(project, zone, cluster), pool)
}

func Operation(project, zone, operation string) string {
	return fmt.Sprintf("%s/operations/%s", Location(project, zone), operation)
}

// KubeContext matches the context name gcloud writes for a cluster.
func KubeContext(project, zone, cluster string) string {
	return fmt.Sprintf("gke_%s_%s_%s", project, zone, cluster)
}

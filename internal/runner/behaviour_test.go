package runner_test

import (
	"fmt"

	"github.com/BurntSushi/toml"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"

	"github.com/imamik/gkerunner/internal/runner"
	testutil "github.com/imamik/gkerunner/internal/testing"
)

var _ = Describe("Runner component", func() {
	var params runner.Params

	BeforeEach(func() {
		params = runner.ParamsFromConfig(testutil.NewConfigBuilder().Build())
	})

	hashOf := func(p runner.Params) string {
		r, err := runner.NewComponent(p).Render("")
		Expect(err).NotTo(HaveOccurred())
		return r.Hash
	}

	Context("config hash", func() {
		It("is a pure function of the parameters", func() {
			first := hashOf(params)
			for range 10 {
				Expect(hashOf(params)).To(Equal(first))
			}
		})

		It("does not depend on the order of env entries", func() {
			env := map[string]string{}
			reversed := map[string]string{}
			for i := range 16 {
				env[fmt.Sprintf("VAR_%02d", i)] = fmt.Sprint(i)
			}
			for i := 15; i >= 0; i-- {
				reversed[fmt.Sprintf("VAR_%02d", i)] = fmt.Sprint(i)
			}

			a, b := params, params
			a.Env, b.Env = env, reversed
			Expect(hashOf(a)).To(Equal(hashOf(b)))
		})

		DescribeTable("changes when an input changes",
			func(mutate func(*runner.Params)) {
				changed := params
				changed.Env = map[string]string{}
				for k, v := range params.Env {
					changed.Env[k] = v
				}
				mutate(&changed)
				Expect(hashOf(changed)).NotTo(Equal(hashOf(params)))
			},
			Entry("concurrency", func(p *runner.Params) { p.Concurrent++ }),
			Entry("token", func(p *runner.Params) { p.Token = "rotated" }),
			Entry("env value", func(p *runner.Params) { p.Env["DOCKER_DRIVER"] = "vfs" }),
			Entry("env entry removed", func(p *runner.Params) { delete(p.Env, "DOCKER_DRIVER") }),
			Entry("helper image", func(p *runner.Params) { p.HelperImage = "gitlab/gitlab-runner-helper:v17" }),
		)
	})

	Context("session server", func() {
		It("is added with sessions enabled", func() {
			params.InteractiveSessions = true
			r, err := runner.NewComponent(params).Render("34.1.2.3")
			Expect(err).NotTo(HaveOccurred())

			var doc map[string]any
			_, err = toml.Decode(string(r.TOML), &doc)
			Expect(err).NotTo(HaveOccurred())
			Expect(doc).To(HaveKey("session_server"))
			Expect(doc["session_server"]).To(HaveKeyWithValue("listen_address", "0.0.0.0:8093"))
		})

		It("is omitted with sessions disabled", func() {
			r, err := runner.NewComponent(params).Render("")
			Expect(err).NotTo(HaveOccurred())

			var doc map[string]any
			_, err = toml.Decode(string(r.TOML), &doc)
			Expect(err).NotTo(HaveOccurred())
			Expect(doc).NotTo(HaveKey("session_server"))
		})
	})

	Context("placement", func() {
		DescribeTable("always excludes preemptible nodes",
			func(sessions bool, concurrent int) {
				params.InteractiveSessions = sessions
				params.Concurrent = concurrent

				objs, err := runner.NewComponent(params).Objects("34.1.2.3")
				Expect(err).NotTo(HaveOccurred())

				var deployment *appsv1.Deployment
				for _, o := range objs {
					if d, ok := o.(*appsv1.Deployment); ok {
						deployment = d
					}
				}
				Expect(deployment).NotTo(BeNil())

				terms := deployment.Spec.Template.Spec.Affinity.NodeAffinity.
					RequiredDuringSchedulingIgnoredDuringExecution.NodeSelectorTerms
				Expect(terms).To(HaveLen(1))
				Expect(terms[0].MatchExpressions).To(ConsistOf(corev1.NodeSelectorRequirement{
					Key:      "cloud.google.com/gke-preemptible",
					Operator: corev1.NodeSelectorOpNotIn,
					Values:   []string{"true"},
				}))
			},
			Entry("defaults", false, 50),
			Entry("sessions", true, 50),
			Entry("single job", false, 1),
			Entry("sessions and many jobs", true, 200),
		)
	})

	Context("rendered document", func() {
		It("matches the reference parameters", func() {
			params.Concurrent = 50
			params.Token = "abc"
			params.Env = map[string]string{"DOCKER_HOST": "tcp://localhost:2375"}

			r, err := runner.NewComponent(params).Render("")
			Expect(err).NotTo(HaveOccurred())

			s := string(r.TOML)
			Expect(s).To(ContainSubstring("concurrent = 50\n"))
			Expect(s).To(ContainSubstring(`token = "abc"`))
			Expect(s).To(ContainSubstring(`environment = ["DOCKER_HOST=tcp://localhost:2375"]`))
			Expect(s).NotTo(ContainSubstring("session_server"))

			var doc struct {
				Runners []map[string]any `toml:"runners"`
			}
			_, err = toml.Decode(s, &doc)
			Expect(err).NotTo(HaveOccurred())
			Expect(doc.Runners).To(HaveLen(1))
		})
	})

	Context("deployment", func() {
		It("carries the hash of the rendered config", func() {
			c := runner.NewComponent(params)
			r, err := c.Render("")
			Expect(err).NotTo(HaveOccurred())

			objs, err := c.Objects("")
			Expect(err).NotTo(HaveOccurred())
			d, ok := objs[len(objs)-1].(*appsv1.Deployment)
			Expect(ok).To(BeTrue())
			Expect(d.Spec.Template.Annotations).To(HaveKeyWithValue(runner.AnnotationConfigHash, r.Hash))
		})
	})
})

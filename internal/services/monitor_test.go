package services_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/jobrunner/internal/services"
	"github.com/kubev2v/jobrunner/pkg/engine"
	srvErrors "github.com/kubev2v/jobrunner/pkg/errors"
	"github.com/kubev2v/jobrunner/pkg/gate"
	"github.com/kubev2v/jobrunner/pkg/job"
	"github.com/kubev2v/jobrunner/pkg/task"
)

// blockingJob submits a job that holds its gate until release is closed.
func blockingJob(env *engine.Environment, name, user string, release <-chan struct{}) *job.Handle[int] {
	return job.Submit(env.Scheduler(), job.NewFunc(name, func(ctx job.Context) (int, error) {
		select {
		case <-release:
		case <-ctx.Context().Done():
		}
		return 0, nil
	}, job.WithUser(user)), nil)
}

var _ = Describe("Monitor", func() {
	var (
		env     *engine.Environment
		monitor *services.Monitor
		release chan struct{}
	)

	BeforeEach(func() {
		env = engine.New(engine.WithCPUCapacity(1))
		monitor = services.NewMonitorService(env)
		release = make(chan struct{})
	})

	AfterEach(func() {
		select {
		case <-release:
		default:
			close(release)
		}
		env.Close()
	})

	Describe("Jobs", func() {
		It("should list open jobs in submission order", func() {
			// Arrange
			first := blockingJob(env, "scan", "alice", release)
			Eventually(func() int { return env.Gates().CPU().Held() }).Should(Equal(1))
			second := blockingJob(env, "upload", "bob", release)
			Eventually(func() gate.Mode { return second.WaitingFor() }).Should(Equal(gate.ModeCPU))

			// Act
			jobs := monitor.ListJobs(services.JobListParams{})

			// Assert
			Expect(jobs).To(HaveLen(2))
			Expect(jobs[0].ID).To(Equal(first.ID()))
			Expect(jobs[0].Mode).To(Equal("CPU"))
			Expect(jobs[0].StartedAt).NotTo(BeNil())
			Expect(jobs[1].ID).To(Equal(second.ID()))
			Expect(jobs[1].WaitingFor).To(Equal("CPU"))
			Expect(jobs[1].StartedAt).To(BeNil())
		})

		It("should filter jobs", func() {
			blockingJob(env, "scan", "alice", release)
			Eventually(func() int { return env.Gates().CPU().Held() }).Should(Equal(1))
			blockingJob(env, "upload", "bob", release)
			Eventually(func() int { return env.Jobs().Len() }).Should(Equal(2))

			Expect(monitor.ListJobs(services.JobListParams{Name: "upload"})).To(HaveLen(1))
			Expect(monitor.ListJobs(services.JobListParams{User: "alice"})).To(HaveLen(1))
			Expect(monitor.ListJobs(services.JobListParams{Mode: gate.ModeCPU})).To(HaveLen(2))
			Expect(monitor.ListJobs(services.JobListParams{Mode: gate.ModeNetwork})).To(BeEmpty())
		})

		It("should get a job by id", func() {
			h := blockingJob(env, "scan", "alice", release)

			info, err := monitor.GetJob(h.ID())
			Expect(err).NotTo(HaveOccurred())
			Expect(info.Name).To(Equal("scan"))
			Expect(info.User).To(Equal("alice"))
		})

		// Given a running job
		// When it is cancelled through the monitor
		// Then the job observes the cancellation and leaves the registry
		It("should cancel a running job", func() {
			h := blockingJob(env, "scan", "alice", release)
			Eventually(func() int { return env.Gates().CPU().Held() }).Should(Equal(1))

			Expect(monitor.CancelJob(h.ID())).To(Succeed())

			Expect(h.WaitDoneTimeout(time.Second)).To(BeTrue())
			Expect(h.IsCancelled()).To(BeTrue())
			Eventually(func() int { return env.Jobs().Len() }).Should(BeZero())
		})

		It("should report unknown jobs as not found", func() {
			_, err := monitor.GetJob("missing")
			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())

			err = monitor.CancelJob("missing")
			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
		})
	})

	Describe("Tasks", func() {
		It("should list tasks ordered by id and filter by status", func() {
			// Arrange
			a := env.Tasks().NewRecord("a", func(ctx context.Context) (any, error) { return nil, nil })
			b := env.Tasks().NewRecord("b", func(ctx context.Context) (any, error) { return nil, nil })
			Expect(env.Factory().CreateWorkerQueue().Execute(a)).To(Succeed())
			Expect(a.Wait(context.Background())).To(Succeed())

			// Act
			all := monitor.ListTasks(services.TaskListParams{})
			pending := monitor.ListTasks(services.TaskListParams{Statuses: []task.Status{task.StatusPending}})

			// Assert
			Expect(all).To(HaveLen(2))
			Expect(all[0].ID).To(Equal(a.ID()))
			Expect(all[0].Status).To(Equal("FINISHED"))
			Expect(all[0].FinishAt).NotTo(BeNil())
			Expect(all[1].ID).To(Equal(b.ID()))
			Expect(pending).To(HaveLen(1))
			Expect(pending[0].Name).To(Equal("b"))
			Expect(monitor.ListTasks(services.TaskListParams{Name: "a"})).To(HaveLen(1))
		})

		It("should stop a pending task", func() {
			rec := env.Tasks().NewRecord("pending", func(ctx context.Context) (any, error) { return nil, nil })

			info, err := monitor.StopTask(rec.ID())

			Expect(err).NotTo(HaveOccurred())
			Expect(info.Status).To(Equal("STOPPED"))
			Expect(info.StopRequested).To(BeTrue())
			Expect(rec.IsFinished()).To(BeTrue())
		})

		It("should stop a running task", func() {
			started := make(chan struct{})
			rec := env.Tasks().NewRecord("running", func(ctx context.Context) (any, error) {
				close(started)
				<-ctx.Done()
				return nil, ctx.Err()
			})
			Expect(env.Factory().CreateWorkerQueue().Execute(rec)).To(Succeed())
			Eventually(started).Should(BeClosed())

			_, err := monitor.StopTask(rec.ID())
			Expect(err).NotTo(HaveOccurred())

			Expect(rec.Wait(context.Background())).To(Succeed())
			Expect(rec.Status()).To(Equal(task.StatusStopped))
		})

		It("should refuse to stop a finished task", func() {
			rec := env.Tasks().NewRecord("done", func(ctx context.Context) (any, error) { return nil, nil })
			Expect(env.Factory().CreateWorkerQueue().Execute(rec)).To(Succeed())
			Expect(rec.Wait(context.Background())).To(Succeed())

			_, err := monitor.StopTask(rec.ID())
			Expect(srvErrors.IsTaskFinishedError(err)).To(BeTrue())
		})

		It("should report unknown tasks as not found", func() {
			_, err := monitor.GetTask(999)
			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())

			_, err = monitor.StopTask(999)
			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
		})
	})

	It("should report engine statistics", func() {
		blockingJob(env, "scan", "alice", release)
		Eventually(func() int { return env.Gates().CPU().Held() }).Should(Equal(1))

		stats := monitor.Stats()

		Expect(stats.OpenJobs).To(Equal(1))
		Expect(stats.Gates).To(HaveLen(2))
		Expect(stats.Tasks).To(HaveKeyWithValue("PENDING", 0))
	})

	DescribeTable("ParseTaskID",
		func(in string, valid bool) {
			id, err := services.ParseTaskID(in)
			if valid {
				Expect(err).NotTo(HaveOccurred())
				Expect(id).To(BeNumerically(">", 0))
				return
			}
			Expect(srvErrors.IsInvalidArgumentError(err)).To(BeTrue())
		},
		Entry("positive", "12", true),
		Entry("zero", "0", false),
		Entry("negative", "-3", false),
		Entry("text", "abc", false),
	)
})

package job_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/jobrunner/pkg/gate"
	"github.com/kubev2v/jobrunner/pkg/job"
)

type fakeWork struct {
	id, name, user string
	mode           gate.Mode
	done           bool
	cancelled      bool
}

func (f *fakeWork) ID() string                        { return f.id }
func (f *fakeWork) Name() string                      { return f.name }
func (f *fakeWork) User() string                      { return f.user }
func (f *fakeWork) Message() string                   { return "" }
func (f *fakeWork) StatusMessages() map[string]string { return nil }
func (f *fakeWork) Mode() gate.Mode                   { return f.mode }
func (f *fakeWork) WaitingFor() gate.Mode             { return gate.ModeNone }
func (f *fakeWork) IsDone() bool                      { return f.done }
func (f *fakeWork) IsCancelled() bool                 { return f.cancelled }
func (f *fakeWork) SubmittedAt() time.Time            { return time.Time{} }
func (f *fakeWork) StartedAt() time.Time              { return time.Time{} }
func (f *fakeWork) FinishedAt() time.Time             { return time.Time{} }
func (f *fakeWork) Err() error                        { return nil }
func (f *fakeWork) Cancel()                           { f.cancelled = true }

var _ = Describe("Registry", func() {
	var r *job.Registry

	BeforeEach(func() {
		r = job.NewRegistry()
	})

	It("should add works idempotently", func() {
		w := &fakeWork{id: "1", name: "a"}

		r.Add(w)
		r.Add(w)

		Expect(r.Len()).To(Equal(1))
		got, ok := r.Get("1")
		Expect(ok).To(BeTrue())
		Expect(got).To(BeIdenticalTo(w))
	})

	It("should remove works", func() {
		w := &fakeWork{id: "1"}
		r.Add(w)

		r.Remove(w)

		Expect(r.Len()).To(BeZero())
		_, ok := r.Get("1")
		Expect(ok).To(BeFalse())
	})

	// Given a registry holding a work that has since finished
	// When any registry call returns
	// Then the finished work is gone
	It("should drop done works on every access", func() {
		live := &fakeWork{id: "1"}
		finished := &fakeWork{id: "2"}
		r.Add(live)
		r.Add(finished)

		finished.done = true

		Expect(r.Works()).To(ConsistOf(live))
		Expect(r.Len()).To(Equal(1))
	})

	It("should keep submission order", func() {
		for _, id := range []string{"a", "b", "c"} {
			r.Add(&fakeWork{id: id})
		}

		ids := []string{}
		for _, w := range r.Works() {
			ids = append(ids, w.ID())
		}
		Expect(ids).To(Equal([]string{"a", "b", "c"}))
	})

	It("should combine filters with AND", func() {
		r.Add(&fakeWork{id: "1", name: "sync", user: "alice", mode: gate.ModeCPU})
		r.Add(&fakeWork{id: "2", name: "sync", user: "bob", mode: gate.ModeNetwork})
		r.Add(&fakeWork{id: "3", name: "index", user: "alice", mode: gate.ModeCPU, cancelled: true})

		Expect(r.Works(job.ByName("sync"))).To(HaveLen(2))
		Expect(r.Works(job.ByUser("alice"))).To(HaveLen(2))
		Expect(r.Works(job.ByUser("alice"), job.ByMode(gate.ModeCPU), job.Cancelled())).To(HaveLen(1))
		Expect(r.Works(job.ByName("sync"), job.ByMode(gate.ModeNetwork))).To(HaveLen(1))
		Expect(r.Works(job.ByName("missing"))).To(BeEmpty())
	})
})

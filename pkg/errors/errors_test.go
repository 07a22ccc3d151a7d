package errors_test

import (
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	srvErrors "github.com/kubev2v/jobrunner/pkg/errors"
)

var _ = Describe("Errors", func() {
	It("should recognize wrapped not found errors", func() {
		err := fmt.Errorf("cancel: %w", srvErrors.NewJobNotFoundError("abc"))

		Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
		Expect(srvErrors.IsTaskFinishedError(err)).To(BeFalse())
		Expect(err.Error()).To(ContainSubstring(`job "abc" not found`))
	})

	It("should format task errors", func() {
		Expect(srvErrors.NewTaskNotFoundError(7).Error()).To(Equal(`task "7" not found`))
		Expect(srvErrors.NewTaskFinishedError(7, "FINISHED").Error()).To(Equal("task 7 already FINISHED"))
		Expect(srvErrors.IsTaskFinishedError(srvErrors.NewTaskFinishedError(7, "STOPPED"))).To(BeTrue())
	})

	It("should recognize invalid argument errors", func() {
		err := srvErrors.NewInvalidArgumentError("mode", "GPU")

		Expect(srvErrors.IsInvalidArgumentError(err)).To(BeTrue())
		Expect(err.Error()).To(Equal(`invalid mode: "GPU"`))
	})
})

package main

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/cobra"

	"github.com/kubev2v/jobrunner/internal/config"
)

var _ = Describe("Flags", func() {
	var (
		cfg *config.Configuration
		cmd *cobra.Command
	)

	BeforeEach(func() {
		cfg = config.NewConfigurationWithOptionsAndDefaults()
		cmd = &cobra.Command{Use: "test"}
		registerFlags(cmd.Flags(), cfg)
	})

	It("should keep defaults when no flag is set", func() {
		Expect(cmd.Flags().Parse(nil)).To(Succeed())

		Expect(cfg.Server.HTTPPort).To(Equal(8000))
		Expect(cfg.Engine.JobMaxWorkers).To(Equal(100))
		Expect(validate(cfg)).To(Succeed())
	})

	It("should bind flags into the configuration", func() {
		Expect(cmd.Flags().Parse([]string{
			"--http-port=9090",
			"--cpu-capacity=4",
			"--task-retention=5m",
			"--history-enabled=false",
			"--history-max-retries=2",
		})).To(Succeed())

		Expect(cfg.Server.HTTPPort).To(Equal(9090))
		Expect(cfg.Engine.CPUCapacity).To(Equal(4))
		Expect(cfg.Engine.TaskRetention).To(Equal(5 * time.Minute))
		Expect(cfg.History.HistoryEnabled).To(BeFalse())
		Expect(cfg.History.MaxRetries).To(BeEquivalentTo(2))
	})

	// Given a configuration file and a flag on the command line
	// When the file is applied
	// Then file values fill unset flags and the command line wins
	It("should fill unset flags from a configuration file", func() {
		path := filepath.Join(GinkgoT().TempDir(), "jobrunner.yaml")
		Expect(os.WriteFile(path, []byte("http-port: 7000\ncpu-capacity: 8\nlog-level: info\n"), 0o600)).To(Succeed())

		Expect(cmd.Flags().Parse([]string{"--config=" + path, "--cpu-capacity=3"})).To(Succeed())
		Expect(applyConfigFile(cmd)).To(Succeed())

		Expect(cfg.Server.HTTPPort).To(Equal(7000))
		Expect(cfg.Engine.CPUCapacity).To(Equal(3))
		Expect(cfg.LogLevel).To(Equal("info"))
	})

	It("should report invalid values from the configuration file", func() {
		path := filepath.Join(GinkgoT().TempDir(), "jobrunner.yaml")
		Expect(os.WriteFile(path, []byte("http-port: lots\n"), 0o600)).To(Succeed())

		Expect(cmd.Flags().Parse([]string{"--config=" + path})).To(Succeed())
		Expect(applyConfigFile(cmd)).To(MatchError(ContainSubstring("http-port")))
	})

	It("should fail on a missing configuration file", func() {
		Expect(cmd.Flags().Parse([]string{"--config=/does/not/exist.yaml"})).To(Succeed())
		Expect(applyConfigFile(cmd)).NotTo(Succeed())
	})

	DescribeTable("validate",
		func(mutate func(*config.Configuration), valid bool) {
			mutate(cfg)
			if valid {
				Expect(validate(cfg)).To(Succeed())
			} else {
				Expect(validate(cfg)).NotTo(Succeed())
			}
		},
		Entry("json logs", func(c *config.Configuration) { c.LogFormat = "json" }, true),
		Entry("unknown log format", func(c *config.Configuration) { c.LogFormat = "xml" }, false),
		Entry("unknown server mode", func(c *config.Configuration) { c.Server.ServerMode = "staging" }, false),
		Entry("port out of range", func(c *config.Configuration) { c.Server.HTTPPort = 70000 }, false),
		Entry("job max below core", func(c *config.Configuration) { c.Engine.JobMaxWorkers = 1; c.Engine.JobCoreWorkers = 2 }, false),
		Entry("task max below core", func(c *config.Configuration) { c.Engine.TaskMaxWorkers = 1; c.Engine.TaskCoreWorkers = 2 }, false),
		Entry("auth without secret", func(c *config.Configuration) { c.Auth.AuthEnabled = true }, false),
		Entry("auth with secret", func(c *config.Configuration) { c.Auth.AuthEnabled = true; c.Auth.JWTSecret = "k" }, true),
	)

	DescribeTable("newLogger",
		func(format, level string, valid bool) {
			logger, err := newLogger(format, level)
			if !valid {
				Expect(err).To(HaveOccurred())
				return
			}
			Expect(err).NotTo(HaveOccurred())
			Expect(logger).NotTo(BeNil())
		},
		Entry("console debug", "console", "debug", true),
		Entry("json info", "json", "info", true),
		Entry("bad level", "console", "loud", false),
	)
})

// Package config defines the configuration structure for the jobrunner daemon.
//
// Configuration is organized into logical sections (Server, Engine, History, Authentication)
// and uses code generation via optgen to create functional option helpers.
//
// # Configuration Structure
//
//	Configuration
//	├── Server         - HTTP server settings
//	├── Engine         - Gate capacities and pool sizes
//	├── History        - Persistence of finished work (DuckDB)
//	├── Auth           - Authentication settings
//	├── LogFormat      - Logging format
//	└── LogLevel       - Logging verbosity
//
// # Server Configuration
//
//	┌──────────────────┬─────────┬────────────────────────────────────────┐
//	│ Field            │ Default │ Description                            │
//	├──────────────────┼─────────┼────────────────────────────────────────┤
//	│ ServerMode       │ "dev"   │ Server mode: "prod" or "dev"           │
//	│ HTTPPort         │ 8000    │ HTTP server listen port                │
//	│ ShutdownTimeout  │ 10s     │ Grace period for in-flight requests    │
//	└──────────────────┴─────────┴────────────────────────────────────────┘
//
// # Engine Configuration
//
//	┌─────────────────┬─────────┬──────────────────────────────────────────┐
//	│ Field           │ Default │ Description                              │
//	├─────────────────┼─────────┼──────────────────────────────────────────┤
//	│ CPUCapacity     │ 2       │ Permits of the CPU gate                  │
//	│ NetworkCapacity │ 2       │ Permits of the NETWORK gate              │
//	│ JobCoreWorkers  │ 2       │ Job pool workers kept while idle         │
//	│ JobMaxWorkers   │ 100     │ Job pool worker cap                      │
//	│ JobKeepAlive    │ 10s     │ Idle time before extra job workers exit  │
//	│ TaskCoreWorkers │ 2       │ Task pool workers kept while idle        │
//	│ TaskMaxWorkers  │ 100     │ Task pool worker cap                     │
//	│ TaskKeepAlive   │ 20s     │ Idle time before extra task workers exit │
//	│ TaskRetention   │ 30m     │ How long finished tasks stay listed      │
//	└─────────────────┴─────────┴──────────────────────────────────────────┘
//
// # History Configuration
//
//	┌──────────────────┬─────────┬──────────────────────────────────────────────┐
//	│ Field            │ Default │ Description                                  │
//	├──────────────────┼─────────┼──────────────────────────────────────────────┤
//	│ HistoryEnabled   │ true    │ Persist finished jobs and tasks              │
//	│ DataFolder       │ ""      │ DuckDB folder; empty keeps history in memory │
//	│ BufferSize       │ 256     │ Entries buffered before the recorder drops   │
//	│ MaxRetries       │ 5       │ Write attempts per entry                     │
//	│ HistoryRetention │ 168h    │ Age after which entries are pruned           │
//	└──────────────────┴─────────┴──────────────────────────────────────────────┘
//
// # Authentication Configuration
//
//	┌─────────────┬─────────┬────────────────────────────────────────┐
//	│ Field       │ Default │ Description                            │
//	├─────────────┼─────────┼────────────────────────────────────────┤
//	│ AuthEnabled │ false   │ Require a JWT on /api/v1               │
//	│ JWTSecret   │ ""      │ HMAC key used to verify tokens         │
//	│ JWTIssuer   │ ""      │ Expected issuer, not checked if empty  │
//	└─────────────┴─────────┴────────────────────────────────────────┘
//
// # Code Generation
//
// The package uses optgen to generate functional option helpers:
//
//	//go:generate go run github.com/ecordell/optgen -output zz_generated.configuration.go . Configuration Server Engine History Authentication
//
// Generated helpers include:
//
//   - NewConfigurationWithOptions(...ConfigurationOption) - Create with options
//   - NewConfigurationWithOptionsAndDefaults(...ConfigurationOption) - Create with defaults + options
//   - WithServer(Server), WithEngine(Engine), etc. - Set nested structs
//   - DebugMap() - Returns map for debug logging (respects debugmap tags)
//
// # Usage Example
//
//	cfg := config.NewConfigurationWithOptionsAndDefaults(
//	    config.WithEngine(*config.NewEngineWithOptionsAndDefaults(
//	        config.WithCPUCapacity(4),
//	    )),
//	    config.WithLogLevel("info"),
//	)
//
// # Debug Logging
//
// Fields are tagged with `debugmap:"visible"`; the JWT secret is tagged
// `debugmap:"sensitive"` and is masked by DebugMap():
//
//	zap.S().Infow("configuration loaded", "config", cfg.DebugMap())
package config

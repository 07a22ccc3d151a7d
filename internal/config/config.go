package config

import "time"

//go:generate go run github.com/ecordell/optgen -output zz_generated.configuration.go . Configuration Server Engine History Authentication

type Configuration struct {
	Server    Server         `debugmap:"visible"`
	Engine    Engine         `debugmap:"visible"`
	History   History        `debugmap:"visible"`
	Auth      Authentication `debugmap:"visible"`
	LogFormat string         `debugmap:"visible" default:"console"`
	LogLevel  string         `debugmap:"visible" default:"debug"`
}

type Server struct {
	ServerMode      string        `debugmap:"visible" default:"dev"`
	HTTPPort        int           `debugmap:"visible" default:"8000"`
	ShutdownTimeout time.Duration `debugmap:"visible" default:"10s"`
}

// Engine sizes the gates and pools of the embedded engine.
type Engine struct {
	CPUCapacity     int           `debugmap:"visible" default:"2"`
	NetworkCapacity int           `debugmap:"visible" default:"2"`
	JobCoreWorkers  int           `debugmap:"visible" default:"2"`
	JobMaxWorkers   int           `debugmap:"visible" default:"100"`
	JobKeepAlive    time.Duration `debugmap:"visible" default:"10s"`
	TaskCoreWorkers int           `debugmap:"visible" default:"2"`
	TaskMaxWorkers  int           `debugmap:"visible" default:"100"`
	TaskKeepAlive   time.Duration `debugmap:"visible" default:"20s"`
	TaskRetention   time.Duration `debugmap:"visible" default:"30m"`
}

// History configures persistence of finished jobs and tasks.
type History struct {
	HistoryEnabled   bool          `debugmap:"visible" default:"true"`
	DataFolder       string        `debugmap:"visible"`
	BufferSize       int           `debugmap:"visible" default:"256"`
	MaxRetries       uint          `debugmap:"visible" default:"5"`
	HistoryRetention time.Duration `debugmap:"visible" default:"168h"`
}

type Authentication struct {
	AuthEnabled bool   `debugmap:"visible" default:"false"`
	JWTSecret   string `debugmap:"sensitive"`
	JWTIssuer   string `debugmap:"visible"`
}

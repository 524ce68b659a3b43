package config

import "time"

// NotesConfig - параметры синхронизации заметок.
type NotesConfig struct {
	OperationTimeout time.Duration `yaml:"operation_timeout" env:"GATEWAY_NOTES_OPERATION_TIMEOUT" env-default:"10s"`
	SweepInterval    time.Duration `yaml:"sweep_interval" env:"GATEWAY_NOTES_SWEEP_INTERVAL" env-default:"1m"`
}

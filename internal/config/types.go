package config

import (
	"time"

	"github.com/f3rmion/tbls/tbls"
)

type Config struct {
	// Log Config
	LogLevel   int    `json:"log_level"`   // e.g., 0 = debug, 1 = info, etc.
	LogFormat  string `json:"log_format"`  // "json" or "console"
	LogSampler bool   `json:"log_sampler"` // if true, samples logs (1 in 5)

	// HTTP server
	ListenPort          int `json:"listen_port"`           // default: 8000
	ReadTimeoutSeconds  int `json:"read_timeout_seconds"`  // default: 10
	WriteTimeoutSeconds int `json:"write_timeout_seconds"` // default: 30

	// Protocol
	ParticipantIDs []uint64 `json:"participant_ids"` // default pair for /derive and /sign when a request omits ids
	Hasher         string   `json:"hasher"`          // suite, sha256, blake2b or blake3
}

// DefaultPair returns ParticipantIDs as a pair.
func (c *Config) DefaultPair() [2]tbls.ParticipantID {
	return [2]tbls.ParticipantID{tbls.ParticipantID(c.ParticipantIDs[0]), tbls.ParticipantID(c.ParticipantIDs[1])}
}

// ReadTimeout returns the server read timeout.
func (c *Config) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutSeconds) * time.Second
}

// WriteTimeout returns the server write timeout.
func (c *Config) WriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutSeconds) * time.Second
}

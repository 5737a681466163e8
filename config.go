package emrtd

import (
	"crypto/rand"
	"io"
	"log/slog"
)

// ReaderConfig holds the knobs the orchestrator otherwise hardcodes:
// the READ BINARY chunk size, how many attempts a Data Group read
// gets before it's surfaced as a failure, the randomness source
// access control and key agreement draw from, and where protocol
// progress gets logged. Read replaces every zero-valued field with the
// corresponding DefaultConfig value, so the zero value is usable and
// only the fields to override need setting.
type ReaderConfig struct {
	ChunkSize     int
	MaxDGAttempts int
	Rand          io.Reader
	Logger        *slog.Logger
}

// DefaultConfig returns the configuration this reader uses absent any
// override: a 160-byte READ BINARY chunk (the size every chip this
// spec targets accepts), at most two attempts per Data Group before
// surfacing a read failure, crypto/rand, and a no-op logger.
func DefaultConfig() ReaderConfig {
	return ReaderConfig{
		ChunkSize:     160,
		MaxDGAttempts: 2,
		Rand:          rand.Reader,
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func (c *ReaderConfig) withDefaults() ReaderConfig {
	out := *c
	if out.ChunkSize <= 0 {
		out.ChunkSize = 160
	}
	if out.MaxDGAttempts <= 0 {
		out.MaxDGAttempts = 2
	}
	if out.Rand == nil {
		out.Rand = rand.Reader
	}
	if out.Logger == nil {
		out.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return out
}

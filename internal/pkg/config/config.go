// Package config exposes typed accessors over the application
// configuration. Missing or unconvertible keys yield zero values; callers
// that need a default apply it at the call site.
package config

import (
	"io"
	"time"
)

// TimeConfig reads duration values. The stored value is a bare integer
// interpreted in the unit named by the method.
type TimeConfig interface {
	GetSecond(key string) time.Duration
	GetMinute(key string) time.Duration
	GetHour(key string) time.Duration
	GetDay(key string) time.Duration
}

// SignedIntConfig reads signed integer values.
type SignedIntConfig interface {
	GetInt(key string) int
	GetInt32(key string) int32
	GetInt64(key string) int64
}

// UnsignedIntConfig reads unsigned integer values.
type UnsignedIntConfig interface {
	GetUint(key string) uint
	GetUint16(key string) uint16
	GetUint32(key string) uint32
	GetUint64(key string) uint64
}

// FloatConfig reads floating-point values.
type FloatConfig interface {
	GetFloat32(key string) float32
	GetFloat64(key string) float64
}

// Config is the accessor set the application depends on. Close releases
// whatever the implementation holds, such as a file watcher.
type Config interface {
	io.Closer
	TimeConfig
	SignedIntConfig
	UnsignedIntConfig
	FloatConfig

	GetBool(key string) bool
	GetString(key string) string

	// GetBinary decodes a base64-encoded value.
	GetBinary(key string) []byte

	// GetArray splits a comma-separated value, or returns a native list
	// when the backing format supports one.
	GetArray(key string) []string

	// GetMap parses "<key>:<value>,<key>:<value>" pairs.
	GetMap(key string) map[string]string
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make
// network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "outline-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// StorageConfig holds settings for the per-profile slot store.
type StorageConfig struct {
	// ProfileDir is the directory holding this profile's state
	// (slots.db and the profile lock).
	ProfileDir string `json:"profile_dir" yaml:"profile_dir"`

	// MaxBytes caps the total stored value bytes across all slots.
	// Zero means no quota. A write that would exceed the cap fails;
	// in-memory state stays authoritative.
	MaxBytes int64 `json:"max_bytes" yaml:"max_bytes"`
}

// OCRConfig holds settings for the cloud vision text-extraction gateway.
type OCRConfig struct {
	HTTPConfig `yaml:",inline"`

	// Endpoint is the vision API URL.
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// APIKey authenticates against the vision API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of retry attempts on HTTP 429 (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// DailyLimit caps extraction requests per calendar day (0 = unlimited).
	// The counter is in-memory only and resets on process restart.
	DailyLimit int `json:"daily_limit" yaml:"daily_limit"`

	// MonthlyLimit caps extraction requests per calendar month (0 = unlimited).
	MonthlyLimit int `json:"monthly_limit" yaml:"monthly_limit"`
}

// ServerConfig holds settings for the local HTTP API server.
type ServerConfig struct {
	// Addr is the listen address (default "127.0.0.1:8560").
	Addr string `json:"addr" yaml:"addr"`

	// APIKey, when non-empty, is required as a Bearer token on /api routes.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// ExportConfig holds settings for document export.
type ExportConfig struct {
	// Style is the default citation style: turabian, apa, mla, chicago, ieee.
	Style Style `json:"style" yaml:"style"`
}

// AppConfig groups all component configurations.
type AppConfig struct {
	Storage StorageConfig `json:"storage" yaml:"storage"`
	OCR     OCRConfig     `json:"ocr" yaml:"ocr"`
	Server  ServerConfig  `json:"server" yaml:"server"`
	Export  ExportConfig  `json:"export" yaml:"export"`
}

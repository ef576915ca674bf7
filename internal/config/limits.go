// Package config provides the environment-overridable limits that govern the
// filesystem core, plus the persisted settings file under the user's config
// directory.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g. THEMESMITH_CHUNK_SIZE.
const EnvPrefix = "THEMESMITH"

// Limits holds every tunable of the filesystem core. Each numeric knob is
// clamped to a fixed floor and ceiling so a bad override can degrade behavior
// but never disable a safety check.
type Limits struct {
	// Streaming
	MaxInMemorySize       int64 // files larger than this stream in chunks
	ChunkSize             int64
	ProgressIntervalBytes int64
	ThrottleBytesPerSec   int64 // 0 disables throttling

	// Resource quotas (fixed window)
	FileReadLimit      int
	FileWriteLimit     int
	ConcurrentOpsLimit int
	ResetInterval      time.Duration

	// Timeouts
	DefaultTimeout  time.Duration
	ExtendedTimeout time.Duration // multi-file bundle generation

	// Path and text constraints
	AllowedExtensions    []string
	MaxPathLength        int
	MaxNameLength        int
	MaxDescriptionLength int
	MaxVersionLength     int
	MaxPublisherLength   int

	// Theme content
	MaxThemeFileSize int64

	// Recent files
	RecentFilesLimit int
}

// DefaultLimits returns the built-in limit table.
func DefaultLimits() Limits {
	return Limits{
		MaxInMemorySize:       10 * 1024 * 1024,
		ChunkSize:             256 * 1024,
		ProgressIntervalBytes: 1024 * 1024,
		ThrottleBytesPerSec:   0,
		FileReadLimit:         100,
		FileWriteLimit:        50,
		ConcurrentOpsLimit:    10,
		ResetInterval:         time.Hour,
		DefaultTimeout:        30 * time.Second,
		ExtendedTimeout:       2 * time.Minute,
		AllowedExtensions:     []string{".conf", ".config", ".ini", ".txt", ".theme", ".colors"},
		MaxPathLength:         4096,
		MaxNameLength:         100,
		MaxDescriptionLength:  500,
		MaxVersionLength:      20,
		MaxPublisherLength:    100,
		MaxThemeFileSize:      1024 * 1024,
		RecentFilesLimit:      10,
	}
}

// Load builds the limit table from defaults overlaid with THEMESMITH_*
// environment variables, clamping every numeric value.
func Load() Limits {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := DefaultLimits()
	v.SetDefault("max_in_memory_size", d.MaxInMemorySize)
	v.SetDefault("chunk_size", d.ChunkSize)
	v.SetDefault("progress_interval_bytes", d.ProgressIntervalBytes)
	v.SetDefault("throttle_bytes_per_sec", d.ThrottleBytesPerSec)
	v.SetDefault("file_read_limit", d.FileReadLimit)
	v.SetDefault("file_write_limit", d.FileWriteLimit)
	v.SetDefault("concurrent_ops_limit", d.ConcurrentOpsLimit)
	v.SetDefault("reset_interval", d.ResetInterval)
	v.SetDefault("default_timeout", d.DefaultTimeout)
	v.SetDefault("extended_timeout", d.ExtendedTimeout)
	v.SetDefault("allowed_extensions", strings.Join(d.AllowedExtensions, ","))
	v.SetDefault("max_path_length", d.MaxPathLength)
	v.SetDefault("max_name_length", d.MaxNameLength)
	v.SetDefault("max_description_length", d.MaxDescriptionLength)
	v.SetDefault("max_version_length", d.MaxVersionLength)
	v.SetDefault("max_publisher_length", d.MaxPublisherLength)
	v.SetDefault("max_theme_file_size", d.MaxThemeFileSize)
	v.SetDefault("recent_files_limit", d.RecentFilesLimit)

	return Limits{
		MaxInMemorySize:       clampInt64(v.GetInt64("max_in_memory_size"), 64*1024, 512*1024*1024),
		ChunkSize:             clampInt64(v.GetInt64("chunk_size"), 4*1024, 8*1024*1024),
		ProgressIntervalBytes: clampInt64(v.GetInt64("progress_interval_bytes"), 64*1024, 64*1024*1024),
		ThrottleBytesPerSec:   clampInt64(v.GetInt64("throttle_bytes_per_sec"), 0, 1024*1024*1024),
		FileReadLimit:         clampInt(v.GetInt("file_read_limit"), 1, 10000),
		FileWriteLimit:        clampInt(v.GetInt("file_write_limit"), 1, 10000),
		ConcurrentOpsLimit:    clampInt(v.GetInt("concurrent_ops_limit"), 1, 128),
		ResetInterval:         clampDuration(v.GetDuration("reset_interval"), time.Minute, 24*time.Hour),
		DefaultTimeout:        clampDuration(v.GetDuration("default_timeout"), time.Second, 10*time.Minute),
		ExtendedTimeout:       clampDuration(v.GetDuration("extended_timeout"), 5*time.Second, 30*time.Minute),
		AllowedExtensions:     parseExtensions(v.GetString("allowed_extensions"), d.AllowedExtensions),
		MaxPathLength:         clampInt(v.GetInt("max_path_length"), 255, 8192),
		MaxNameLength:         clampInt(v.GetInt("max_name_length"), 1, 256),
		MaxDescriptionLength:  clampInt(v.GetInt("max_description_length"), 1, 2048),
		MaxVersionLength:      clampInt(v.GetInt("max_version_length"), 1, 64),
		MaxPublisherLength:    clampInt(v.GetInt("max_publisher_length"), 1, 256),
		MaxThemeFileSize:      clampInt64(v.GetInt64("max_theme_file_size"), 1024, 64*1024*1024),
		RecentFilesLimit:      clampInt(v.GetInt("recent_files_limit"), 1, 100),
	}
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampInt64(v, min, max int64) int64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampDuration(v, min, max time.Duration) time.Duration {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func parseExtensions(raw string, fallback []string) []string {
	parts := strings.Split(raw, ",")
	exts := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if !strings.HasPrefix(p, ".") {
			p = "." + p
		}
		exts = append(exts, p)
	}
	if len(exts) == 0 {
		return fallback
	}
	return exts
}

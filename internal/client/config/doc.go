// Package config loads runtime configuration for the CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// # JSON schema
//
// Durations accept strings like "10m" or integer nanoseconds:
//
//	{
//	  "backend_base_url": "http://localhost:8080/api/v1",
//	  "broker_base_url": "http://localhost:9000",
//	  "avatar_output_size": 512,
//	  "view_url_cache_ttl": "10m",
//	  "request_timeout": "15s",
//	  "cache_dsn": "social.db"
//	}
package config

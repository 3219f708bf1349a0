// Package config loads runtime configuration for the Slack Connect CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via flags: -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend API
//	-t int      request timeout (seconds)
//	-d string   path of the client-local database
//	-i int      token validity check interval (seconds)
//	-np         keep the bearer token in memory only
//
// # JSON schema
//
// Durations use timex.Duration, so values can be either strings like "30s"
// or integer nanoseconds:
//
//	{
//	  "base_url": "http://localhost:3001/api",
//	  "request_timeout": "30s",
//	  "database_path": "slackconnect.db",
//	  "token_check_interval": "5m"
//	}
package config

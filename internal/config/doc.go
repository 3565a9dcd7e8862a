// Package config provides centralized configuration management for the
// Excel combiner. It handles loading configuration from multiple sources,
// validation, and a type-safe API for the rest of the application.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of
// precedence:
//
//	1. Environment variables (highest priority)
//	2. A YAML configuration file (config.yaml or configs/config.yaml)
//	3. Built-in defaults (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the XLC_* namespacing pattern:
//
//	XLC_SCAN_HEADER_MARKER="Sl. No."
//	XLC_SCAN_END_MARKER="Sample"
//	XLC_SCAN_HEADER_SEARCH_ROWS=20
//	XLC_SCAN_TERMINATOR_KEYWORDS=total,summary
//	XLC_OUTPUT_FILE_NAME=combined_output.xlsx
//	XLC_LOGGING_LEVEL=info
//
// The defaults carry the marker strings found in standard report
// workbooks, so most deployments need no configuration at all.
package config

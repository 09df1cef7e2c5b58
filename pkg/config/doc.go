// Package config loads and validates pgn configuration files.
package config

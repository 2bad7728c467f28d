// Package config provides catchdb-cli configuration.
//
//   - spec.go: CLIConfig and its defaults (~/.catchdb/cli.yaml)
//   - loader.go: layered loading, validation and saving
package config

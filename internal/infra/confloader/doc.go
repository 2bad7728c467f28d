// Package confloader loads layered configuration with koanf.
//
// Priority (highest to lowest):
//
//  1. Values passed with LoadMap (command-line flags)
//  2. Environment variables (CATCHDB_ prefix)
//  3. The YAML configuration file
//  4. Whatever the target struct held before Load
//
// Watcher reports writes to configuration files through fsnotify so that
// callers can reload settings while running.
package confloader

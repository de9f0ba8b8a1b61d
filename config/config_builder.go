package config

import (
	"github.com/spf13/pflag"
)

// ConfigBuilderOption is a functional option selecting a configuration source.
type ConfigBuilderOption func(*loader)

// WithConfigFile reads the given YAML, JSON or TOML file. The format follows the extension.
//
// Parameters:
//   - path: the config file path, ignored when empty
//
// Returns:
//   - ConfigBuilderOption: a function that applies the file
func WithConfigFile(path string) ConfigBuilderOption {
	return func(l *loader) {
		l.file = path
	}
}

// WithEnvFiles loads dotenv files into the environment before resolving.
// Missing files are skipped.
//
// Parameters:
//   - paths: dotenv file paths
//
// Returns:
//   - ConfigBuilderOption: a function that applies the files
func WithEnvFiles(paths ...string) ConfigBuilderOption {
	return func(l *loader) {
		l.envFiles = append(l.envFiles, paths...)
	}
}

// WithFlags binds a flag set previously populated by BindFlags.
//
// Parameters:
//   - fs: the parsed flag set
//
// Returns:
//   - ConfigBuilderOption: a function that applies the flags
func WithFlags(fs *pflag.FlagSet) ConfigBuilderOption {
	return func(l *loader) {
		l.flags = fs
	}
}

// Package config loads and watches the churnguard configuration file.
//
// Top-level types:
//   - Config{Server, Model, Scoring, Log}: full config tree parsed from YAML
//   - ServerConfig: http_port, read_timeout, write_timeout, shutdown_timeout
//   - ModelConfig: path to the model artifact, and whether to watch it
//   - ScoringConfig: decision_threshold in [0, 1]
//   - LogConfig: level (debug|info|warn|error)
//
// Load(path) reads the YAML file, applies defaults (port 8080, 10s timeouts,
// threshold 0.20, level info), then validates required fields and ranges.
// A relative model.path is resolved against the config file's directory.
//
// Watch(ctx, path, onChange) uses fsnotify to detect file changes and calls
// onChange with the newly parsed Config. It watches the parent directory,
// so the rename→create pattern used by atomic-save editors is caught.
package config

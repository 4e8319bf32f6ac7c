package model

import (
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"github.com/churnguard/churnguard/internal/scoring"
)

// Info describes the active artifact.
type Info struct {
	Name     string    `json:"name"`
	Version  string    `json:"version"`
	Path     string    `json:"path"`
	Checksum string    `json:"checksum"`
	Width    int       `json:"features"`
	LoadedAt time.Time `json:"loaded_at"`
}

type entry struct {
	artifact *Artifact
	info     Info
}

// Registry holds the active artifact for a single artifact file.
// All methods are safe for concurrent use.
type Registry struct {
	path string
	cur  atomic.Pointer[entry]
	now  func() time.Time // injectable for deterministic tests
}

// NewRegistry returns an empty Registry for the artifact at path.
// Call Reload to load it.
func NewRegistry(path string) *Registry {
	return &Registry{path: path, now: time.Now}
}

// Path returns the artifact file the registry loads from.
func (r *Registry) Path() string { return r.path }

// Reload reads the artifact file and, if it is valid, makes it active.
// On error the previously active artifact stays in place.
func (r *Registry) Reload() error {
	a, err := Load(r.path)
	if err != nil {
		return err
	}
	r.Set(a)
	slog.Info("model: artifact loaded",
		"path", r.path,
		"name", a.Name,
		"version", a.Version,
		"features", a.Width(),
	)
	return nil
}

// Refresh reloads the artifact file only when its content differs from the
// active artifact. It reports whether a new artifact was made active. On
// error the previously active artifact stays in place.
func (r *Registry) Refresh() (bool, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return false, fmt.Errorf("model: read file: %w", err)
	}
	if cur := r.Current(); cur != nil && cur.Checksum == checksum(data) {
		return false, nil
	}
	a, err := Parse(data)
	if err != nil {
		return false, fmt.Errorf("model: %s: %w", r.path, err)
	}
	r.Set(a)
	slog.Info("model: artifact loaded",
		"path", r.path,
		"name", a.Name,
		"version", a.Version,
		"features", a.Width(),
	)
	return true, nil
}

// Set makes a the active artifact.
func (r *Registry) Set(a *Artifact) {
	r.cur.Store(&entry{
		artifact: a,
		info: Info{
			Name:     a.Name,
			Version:  a.Version,
			Path:     r.path,
			Checksum: a.Checksum,
			Width:    a.Width(),
			LoadedAt: r.now().UTC(),
		},
	})
}

// Current returns the active artifact, or nil if none is loaded.
func (r *Registry) Current() *Artifact {
	if e := r.cur.Load(); e != nil {
		return e.artifact
	}
	return nil
}

// Adapter implements pipeline.AdapterSource.
func (r *Registry) Adapter() (*scoring.Adapter, error) {
	a := r.Current()
	if a == nil {
		return nil, scoring.ErrNoArtifact
	}
	return a.Adapter(), nil
}

// Info returns metadata about the active artifact and whether one is loaded.
func (r *Registry) Info() (Info, bool) {
	if e := r.cur.Load(); e != nil {
		return e.info, true
	}
	return Info{}, false
}

package model

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/churnguard/churnguard/internal/scoring"
)

// File is the on-disk layout of a model artifact.
type File struct {
	Name         string           `yaml:"name"`
	Version      string           `yaml:"version"`
	Preprocessor PreprocessorSpec `yaml:"preprocessor"`
	Classifier   ClassifierSpec   `yaml:"classifier"`
}

// PreprocessorSpec lists the fitted columns. Numeric columns come first in
// the transformed vector, then categorical columns, each in file order.
type PreprocessorSpec struct {
	Numeric     []NumericColumn     `yaml:"numeric"`
	Categorical []CategoricalColumn `yaml:"categorical"`
}

// NumericColumn is a standard-scaled feature: (x - Mean) / Scale.
type NumericColumn struct {
	Feature string  `yaml:"feature"`
	Mean    float64 `yaml:"mean"`
	Scale   float64 `yaml:"scale"`
}

// CategoricalColumn is a one-hot encoded feature. Values not listed in
// Categories encode as all zeros.
type CategoricalColumn struct {
	Feature    string   `yaml:"feature"`
	Categories []string `yaml:"categories"`
}

// ClassifierSpec holds the fitted logistic regression parameters.
type ClassifierSpec struct {
	Intercept    float64   `yaml:"intercept"`
	Coefficients []float64 `yaml:"coefficients"`
}

// Artifact is a loaded, validated model. It is immutable.
type Artifact struct {
	Name     string
	Version  string
	Checksum string // sha256 of the source bytes

	pre     *Preprocessor
	clf     *LogisticClassifier
	adapter *scoring.Adapter
}

// Preprocessor returns the artifact's fitted preprocessor.
func (a *Artifact) Preprocessor() *Preprocessor { return a.pre }

// Classifier returns the artifact's fitted classifier.
func (a *Artifact) Classifier() *LogisticClassifier { return a.clf }

// Adapter returns a scoring adapter over this artifact.
func (a *Artifact) Adapter() *scoring.Adapter { return a.adapter }

// Width is the length of the transformed feature vector.
func (a *Artifact) Width() int { return a.pre.Width() }

// Load reads and parses the artifact file at path.
func Load(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("model: read file: %w", err)
	}
	a, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("model: %s: %w", path, err)
	}
	return a, nil
}

// Parse decodes and validates an artifact from YAML bytes.
// Unknown keys are rejected.
func Parse(data []byte) (*Artifact, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	if f.Name == "" {
		return nil, errors.New("name is required")
	}

	pre, err := NewPreprocessor(f.Preprocessor)
	if err != nil {
		return nil, err
	}
	clf, err := NewLogisticClassifier(f.Classifier, pre.Width())
	if err != nil {
		return nil, err
	}
	adapter, err := scoring.NewAdapter(pre, clf)
	if err != nil {
		return nil, err
	}

	return &Artifact{
		Name:     f.Name,
		Version:  f.Version,
		Checksum: checksum(data),
		pre:      pre,
		clf:      clf,
		adapter:  adapter,
	}, nil
}

// checksum is the hex sha256 of an artifact's source bytes.
func checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

package model

import (
	"errors"
	"fmt"
	"math"

	"github.com/churnguard/churnguard/pkg/types"
)

// Preprocessor applies a fitted standard scaler to numeric features and a
// fitted one-hot encoder to categorical features.
type Preprocessor struct {
	numeric     []NumericColumn
	categorical []encodedColumn
	width       int
}

type encodedColumn struct {
	feature string
	index   map[string]int // category -> offset within the column
	size    int
}

// NewPreprocessor validates spec and builds a Preprocessor from it.
func NewPreprocessor(spec PreprocessorSpec) (*Preprocessor, error) {
	if len(spec.Numeric) == 0 && len(spec.Categorical) == 0 {
		return nil, errors.New("preprocessor: no columns")
	}

	seen := make(map[string]bool)
	p := &Preprocessor{}

	for i, col := range spec.Numeric {
		if !types.IsNumericFeature(col.Feature) {
			return nil, fmt.Errorf("preprocessor: numeric[%d]: unknown numeric feature %q", i, col.Feature)
		}
		if seen[col.Feature] {
			return nil, fmt.Errorf("preprocessor: numeric[%d]: duplicate feature %q", i, col.Feature)
		}
		if col.Scale == 0 || !finite(col.Scale) || !finite(col.Mean) {
			return nil, fmt.Errorf("preprocessor: numeric[%d] %q: scale must be non-zero and finite", i, col.Feature)
		}
		seen[col.Feature] = true
		p.numeric = append(p.numeric, col)
	}

	for i, col := range spec.Categorical {
		if !types.IsCategoricalFeature(col.Feature) {
			return nil, fmt.Errorf("preprocessor: categorical[%d]: unknown categorical feature %q", i, col.Feature)
		}
		if seen[col.Feature] {
			return nil, fmt.Errorf("preprocessor: categorical[%d]: duplicate feature %q", i, col.Feature)
		}
		if len(col.Categories) == 0 {
			return nil, fmt.Errorf("preprocessor: categorical[%d] %q: categories are required", i, col.Feature)
		}
		enc := encodedColumn{feature: col.Feature, index: make(map[string]int, len(col.Categories)), size: len(col.Categories)}
		for j, c := range col.Categories {
			if _, dup := enc.index[c]; dup {
				return nil, fmt.Errorf("preprocessor: categorical[%d] %q: duplicate category %q", i, col.Feature, c)
			}
			enc.index[c] = j
		}
		seen[col.Feature] = true
		p.categorical = append(p.categorical, enc)
	}

	p.width = len(p.numeric)
	for _, c := range p.categorical {
		p.width += c.size
	}
	return p, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Width is the length of every vector returned by Transform.
func (p *Preprocessor) Width() int { return p.width }

// Transform encodes rec into a feature vector of length Width.
func (p *Preprocessor) Transform(rec *types.EnrichedRecord) ([]float64, error) {
	if rec == nil {
		return nil, errors.New("nil record")
	}
	x := make([]float64, p.width)
	i := 0
	for _, col := range p.numeric {
		v, ok := rec.Numeric(col.Feature)
		if !ok {
			return nil, fmt.Errorf("numeric feature %q not present", col.Feature)
		}
		x[i] = (v - col.Mean) / col.Scale
		i++
	}
	for _, col := range p.categorical {
		v, ok := rec.Categorical(col.feature)
		if !ok {
			return nil, fmt.Errorf("categorical feature %q not present", col.feature)
		}
		if j, known := col.index[v]; known {
			x[i+j] = 1
		}
		i += col.size
	}
	return x, nil
}

package estimator

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/okian/ctcpredict/internal/domain/frame"
)

// Model kinds understood by New.
const (
	KindLinear = "linear"
	KindForest = "forest"
)

// leafFeature marks a tree node without a split.
const leafFeature = -1

// Artifact is the serialized, already-fit model. It also carries the
// preprocessing configuration the model was fit with, so the dropper and
// filler cannot drift from the encoders.
type Artifact struct {
	Kind        string               `json:"kind"`
	Version     string               `json:"version"`
	Target      string               `json:"target"`
	Preprocess  Preprocessing        `json:"preprocess"`
	Numeric     []NumericFeature     `json:"numeric"`
	Categorical []CategoricalFeature `json:"categorical"`
	Linear      *LinearParams        `json:"linear,omitempty"`
	Forest      *ForestParams        `json:"forest,omitempty"`
}

// Preprocessing is the drop list and fill sentinel used at fit time.
type Preprocessing struct {
	DropColumns []string    `json:"drop_columns"`
	FillValue   frame.Value `json:"fill_value"`
}

// NumericFeature is a standard-scaled column. When Missing is set, a text
// cell equal to it is replaced by Impute before scaling.
type NumericFeature struct {
	Name    string  `json:"name"`
	Mean    float64 `json:"mean"`
	Scale   float64 `json:"scale"`
	Missing string  `json:"missing,omitempty"`
	Impute  float64 `json:"impute,omitempty"`
}

// CategoricalFeature is a one-hot encoded column with its fitted categories.
type CategoricalFeature struct {
	Name       string   `json:"name"`
	Categories []string `json:"categories"`
}

// LinearParams holds a fitted linear regression over the encoded features.
type LinearParams struct {
	Intercept    float64   `json:"intercept"`
	Coefficients []float64 `json:"coefficients"`
}

// ForestParams holds an ensemble of regression trees; the prediction is
// the mean of the tree outputs.
type ForestParams struct {
	Trees []Tree `json:"trees"`
}

// Tree is a regression tree stored as a flat node array rooted at 0.
type Tree struct {
	Nodes []Node `json:"nodes"`
}

// Node is a split (Feature >= 0) or a leaf (Feature == -1). Rows with
// x[Feature] <= Threshold go Left.
type Node struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold,omitempty"`
	Left      int     `json:"left,omitempty"`
	Right     int     `json:"right,omitempty"`
	Value     float64 `json:"value,omitempty"`
}

// Load reads and validates the artifact at path.
func Load(ctx context.Context, path string) (*Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrArtifact, err)
	}
	defer func() { _ = fh.Close() }()
	return Decode(fh)
}

// Decode parses and validates an artifact from r.
func Decode(r io.Reader) (*Artifact, error) {
	var a Artifact
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&a); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrArtifact, err)
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &a, nil
}

// Width returns the length of the encoded feature vector.
func (a *Artifact) Width() int {
	n := len(a.Numeric)
	for _, c := range a.Categorical {
		n += len(c.Categories)
	}
	return n
}

// Validate checks the artifact for internal consistency.
func (a *Artifact) Validate() error {
	if len(a.Numeric)+len(a.Categorical) == 0 {
		return fmt.Errorf("%w: no features", ErrArtifact)
	}
	dropped := make(map[string]struct{}, len(a.Preprocess.DropColumns))
	for _, c := range a.Preprocess.DropColumns {
		dropped[c] = struct{}{}
	}
	seen := make(map[string]struct{})
	for _, n := range a.Numeric {
		if err := checkName(seen, dropped, n.Name); err != nil {
			return err
		}
		if n.Scale < 0 {
			return fmt.Errorf("%w: feature %q has negative scale", ErrArtifact, n.Name)
		}
	}
	for _, c := range a.Categorical {
		if err := checkName(seen, dropped, c.Name); err != nil {
			return err
		}
		if len(c.Categories) == 0 {
			return fmt.Errorf("%w: feature %q has no categories", ErrArtifact, c.Name)
		}
		cats := make(map[string]struct{}, len(c.Categories))
		for _, v := range c.Categories {
			if _, dup := cats[v]; dup {
				return fmt.Errorf("%w: feature %q repeats category %q", ErrArtifact, c.Name, v)
			}
			cats[v] = struct{}{}
		}
	}

	width := a.Width()
	switch a.Kind {
	case KindLinear:
		if a.Linear == nil {
			return fmt.Errorf("%w: linear model without parameters", ErrArtifact)
		}
		if len(a.Linear.Coefficients) != width {
			return fmt.Errorf("%w: %d coefficients for %d features", ErrArtifact, len(a.Linear.Coefficients), width)
		}
	case KindForest:
		if a.Forest == nil || len(a.Forest.Trees) == 0 {
			return fmt.Errorf("%w: forest without trees", ErrArtifact)
		}
		for i, t := range a.Forest.Trees {
			if err := t.validate(width); err != nil {
				return fmt.Errorf("%w: tree %d: %w", ErrArtifact, i, err)
			}
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrArtifact, a.Kind)
	}
	return nil
}

// checkName rejects unnamed and repeated features, and features the
// preprocessing would drop before they reach the model.
func checkName(seen, dropped map[string]struct{}, name string) error {
	if name == "" {
		return fmt.Errorf("%w: feature without name", ErrArtifact)
	}
	if _, drop := dropped[name]; drop {
		return fmt.Errorf("%w: feature %q is also a dropped column", ErrArtifact, name)
	}
	if _, dup := seen[name]; dup {
		return fmt.Errorf("%w: feature %q declared twice", ErrArtifact, name)
	}
	seen[name] = struct{}{}
	return nil
}

// validate requires children to follow their parent so traversal always
// terminates.
func (t Tree) validate(width int) error {
	if len(t.Nodes) == 0 {
		return fmt.Errorf("empty tree")
	}
	for i, n := range t.Nodes {
		if n.Feature == leafFeature {
			continue
		}
		if n.Feature < 0 || n.Feature >= width {
			return fmt.Errorf("node %d splits on feature %d outside [0, %d)", i, n.Feature, width)
		}
		if n.Left <= i || n.Left >= len(t.Nodes) || n.Right <= i || n.Right >= len(t.Nodes) {
			return fmt.Errorf("node %d has invalid children %d/%d", i, n.Left, n.Right)
		}
	}
	return nil
}

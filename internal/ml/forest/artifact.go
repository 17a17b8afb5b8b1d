package forest

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"

	"wine-classifier-service/internal/core/domain"
)

// FormatVersion is bumped whenever the artifact layout changes.
const FormatVersion = 1

type artifact struct {
	FormatVersion int    `json:"format_version"`
	Params        Params `json:"params"`
	NFeatures     int    `json:"n_features"`
	NClasses      int    `json:"n_classes"`
	Trees         []Tree `json:"trees"`
}

// Save writes the fitted forest as gzip-compressed JSON.
func (f *RandomForest) Save(w io.Writer) error {
	if len(f.trees) == 0 {
		return domain.ErrModelNotTrained
	}

	zw := gzip.NewWriter(w)
	err := json.NewEncoder(zw).Encode(artifact{
		FormatVersion: FormatVersion,
		Params:        f.params,
		NFeatures:     f.nFeatures,
		NClasses:      f.nClasses,
		Trees:         f.trees,
	})
	if err != nil {
		zw.Close()
		return fmt.Errorf("encode artifact: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("flush artifact: %w", err)
	}
	return nil
}

// Load reads an artifact written by Save.
func Load(r io.Reader) (*RandomForest, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidArtifact, err)
	}
	defer zr.Close()

	var a artifact
	if err := json.NewDecoder(zr).Decode(&a); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidArtifact, err)
	}
	if err := a.validate(); err != nil {
		return nil, err
	}

	f := New(
		WithEstimators(a.Params.Estimators),
		WithMaxDepth(a.Params.MaxDepth),
		WithMinSamplesSplit(a.Params.MinSamplesSplit),
		WithMaxFeatures(a.Params.MaxFeatures),
		WithSeed(a.Params.Seed),
	)
	f.nFeatures = a.NFeatures
	f.nClasses = a.NClasses
	f.trees = a.Trees
	return f, nil
}

func (a *artifact) validate() error {
	if a.FormatVersion != FormatVersion {
		return fmt.Errorf("%w: unsupported format version %d", domain.ErrInvalidArtifact, a.FormatVersion)
	}
	if a.NFeatures <= 0 || a.NClasses <= 0 {
		return fmt.Errorf("%w: n_features=%d n_classes=%d", domain.ErrInvalidArtifact, a.NFeatures, a.NClasses)
	}
	if len(a.Trees) == 0 {
		return fmt.Errorf("%w: no trees", domain.ErrInvalidArtifact)
	}
	for t, tree := range a.Trees {
		if len(tree.Nodes) == 0 {
			return fmt.Errorf("%w: tree %d is empty", domain.ErrInvalidArtifact, t)
		}
		for i, node := range tree.Nodes {
			if node.Leaf {
				if len(node.Proba) != a.NClasses {
					return fmt.Errorf("%w: tree %d node %d has %d class weights", domain.ErrInvalidArtifact, t, i, len(node.Proba))
				}
				continue
			}
			// Children must point forward, which also rules out cycles.
			if node.Feature < 0 || node.Feature >= a.NFeatures ||
				node.Left <= i || node.Left >= len(tree.Nodes) ||
				node.Right <= i || node.Right >= len(tree.Nodes) {
				return fmt.Errorf("%w: tree %d node %d is malformed", domain.ErrInvalidArtifact, t, i)
			}
		}
	}
	return nil
}

// Package forest implements a bagged ensemble of CART decision trees
// for tabular multi-class classification.
package forest

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"runtime"

	"golang.org/x/sync/errgroup"

	"wine-classifier-service/internal/core/domain"
)

const (
	DefaultEstimators      = 100
	DefaultMinSamplesSplit = 2
	DefaultSeed            = 42
)

// ErrFeatureMismatch is returned when an input row has the wrong width.
var ErrFeatureMismatch = errors.New("feature count does not match fitted model")

type Params struct {
	Estimators      int   `json:"n_estimators"`
	MaxDepth        int   `json:"max_depth"`
	MinSamplesSplit int   `json:"min_samples_split"`
	MaxFeatures     int   `json:"max_features"`
	Seed            int64 `json:"seed"`
	Workers         int   `json:"-"`
}

type Option func(*Params)

func WithEstimators(n int) Option { return func(p *Params) { p.Estimators = n } }

// WithMaxDepth limits tree depth. Zero grows trees until leaves are pure.
func WithMaxDepth(d int) Option { return func(p *Params) { p.MaxDepth = d } }

func WithMinSamplesSplit(n int) Option { return func(p *Params) { p.MinSamplesSplit = n } }

// WithMaxFeatures sets the features drawn per split. Zero means floor(sqrt(n_features)).
func WithMaxFeatures(n int) Option { return func(p *Params) { p.MaxFeatures = n } }

func WithSeed(seed int64) Option { return func(p *Params) { p.Seed = seed } }

// WithWorkers bounds how many trees are grown concurrently.
func WithWorkers(n int) Option { return func(p *Params) { p.Workers = n } }

type RandomForest struct {
	params    Params
	nFeatures int
	nClasses  int
	trees     []Tree
}

func New(opts ...Option) *RandomForest {
	p := Params{
		Estimators:      DefaultEstimators,
		MinSamplesSplit: DefaultMinSamplesSplit,
		Seed:            DefaultSeed,
	}
	for _, opt := range opts {
		opt(&p)
	}
	if p.Estimators <= 0 {
		p.Estimators = DefaultEstimators
	}
	if p.MinSamplesSplit < 2 {
		p.MinSamplesSplit = DefaultMinSamplesSplit
	}
	if p.Workers <= 0 {
		p.Workers = runtime.GOMAXPROCS(0)
	}
	return &RandomForest{params: p}
}

func (f *RandomForest) Params() Params { return f.params }

func (f *RandomForest) NumFeatures() int { return f.nFeatures }

func (f *RandomForest) NumClasses() int { return f.nClasses }

func (f *RandomForest) NumTrees() int { return len(f.trees) }

// Fit grows every tree on its own bootstrap sample. Each tree's randomness is
// derived from the seed and the tree index, so the result does not depend on
// scheduling.
func (f *RandomForest) Fit(ctx context.Context, x [][]float64, y []int) error {
	if len(x) == 0 || len(y) == 0 {
		return domain.ErrEmptyDataset
	}
	if len(x) != len(y) {
		return domain.ErrDatasetMismatch
	}

	nFeatures := len(x[0])
	if nFeatures == 0 {
		return domain.ErrEmptyDataset
	}
	nClasses := 0
	for i, row := range x {
		if len(row) != nFeatures {
			return fmt.Errorf("%w: row %d has %d features, want %d", ErrFeatureMismatch, i, len(row), nFeatures)
		}
		if y[i] < 0 {
			return fmt.Errorf("negative class label %d at row %d", y[i], i)
		}
		if y[i]+1 > nClasses {
			nClasses = y[i] + 1
		}
	}

	maxFeatures := f.params.MaxFeatures
	if maxFeatures <= 0 || maxFeatures > nFeatures {
		maxFeatures = int(math.Sqrt(float64(nFeatures)))
		if maxFeatures < 1 {
			maxFeatures = 1
		}
	}

	trees := make([]Tree, f.params.Estimators)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.params.Workers)
	for t := range trees {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rng := rand.New(rand.NewPCG(uint64(f.params.Seed), uint64(t)))
			b := &treeBuilder{
				x:           x,
				y:           y,
				nClasses:    nClasses,
				maxDepth:    f.params.MaxDepth,
				minSplit:    f.params.MinSamplesSplit,
				maxFeatures: maxFeatures,
				rng:         rng,
			}
			trees[t] = b.grow(bootstrap(rng, len(x)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	f.trees = trees
	f.nFeatures = nFeatures
	f.nClasses = nClasses
	return nil
}

// PredictProba averages the leaf class distributions of all trees.
func (f *RandomForest) PredictProba(x []float64) ([]float64, error) {
	if len(f.trees) == 0 {
		return nil, domain.ErrModelNotTrained
	}
	if len(x) != f.nFeatures {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrFeatureMismatch, f.nFeatures, len(x))
	}

	proba := make([]float64, f.nClasses)
	for i := range f.trees {
		for c, p := range f.trees[i].proba(x) {
			proba[c] += p
		}
	}
	n := float64(len(f.trees))
	for c := range proba {
		proba[c] /= n
	}
	return proba, nil
}

// Predict returns the most probable class. Ties go to the lowest index.
func (f *RandomForest) Predict(x []float64) (int, error) {
	proba, err := f.PredictProba(x)
	if err != nil {
		return 0, err
	}
	return argmax(proba), nil
}

func bootstrap(rng *rand.Rand, n int) []int {
	samples := make([]int, n)
	for i := range samples {
		samples[i] = rng.IntN(n)
	}
	return samples
}

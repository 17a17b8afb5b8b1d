// Package dataset reads the Wine dataset from disk and splits it for training.
//
// Two row layouts are understood:
//
//   - UCI wine.data: no header, the class (1..3) first, then 13 features.
//   - sklearn: a header row, 13 features, then the class (0..2) last. This
//     covers DataFrame.to_csv exports, with or without the index column, and
//     the wine_data.csv file bundled with scikit-learn.
package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"wine-classifier-service/internal/core/domain"
)

var ErrMalformedRow = errors.New("malformed dataset row")

type Loader struct{}

func NewLoader() *Loader { return &Loader{} }

// Load reads the dataset at path. An empty path selects the built-in copy.
func (l *Loader) Load(ctx context.Context, path string) (*domain.Dataset, error) {
	if path == "" {
		return Builtin(ctx)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return Read(ctx, f)
}

// layout says where the label sits in each record and whether a leading
// row-index column has to be dropped first.
type layout struct {
	labelFirst bool
	skipIndex  bool
}

// Read parses a dataset from r, detecting the layout from the first record.
func Read(ctx context.Context, r io.Reader) (*domain.Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	ds := &domain.Dataset{}
	lay := layout{labelFirst: true}
	line := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedRow, err)
		}
		line++

		if line == 1 && isHeader(record) {
			if lay, err = headerLayout(record); err != nil {
				return nil, fmt.Errorf("%w: line 1: %v", ErrMalformedRow, err)
			}
			continue
		}

		if lay.skipIndex && len(record) > 0 {
			record = record[1:]
		}
		if len(record) != domain.FeatureCount+1 {
			return nil, fmt.Errorf("%w: line %d: expected %d fields, got %d",
				ErrMalformedRow, line, domain.FeatureCount+1, len(record))
		}

		features, label, err := parseRecord(record, lay.labelFirst)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedRow, line, err)
		}
		ds.Features = append(ds.Features, features)
		ds.Labels = append(ds.Labels, label)
	}

	if ds.Len() == 0 {
		return nil, domain.ErrEmptyDataset
	}
	return ds, nil
}

func isHeader(record []string) bool {
	for _, field := range record {
		if _, err := strconv.ParseFloat(strings.TrimSpace(field), 64); err != nil {
			return true
		}
	}
	return false
}

// headerLayout understands three headers:
//
//   - column names ending in "target" (DataFrame.to_csv without the index)
//   - the same with an unnamed leading index column (to_csv defaults)
//   - "n_samples,n_features,class_0,..." from sklearn's bundled wine_data.csv,
//     whose rows carry the 0-based class last
func headerLayout(record []string) (layout, error) {
	if nFeatures, ok := sklearnBundleHeader(record); ok {
		if nFeatures != domain.FeatureCount {
			return layout{}, fmt.Errorf("header declares %d features, want %d", nFeatures, domain.FeatureCount)
		}
		return layout{}, nil
	}

	lay := layout{labelFirst: true}
	if len(record) > 0 && strings.TrimSpace(record[0]) == "" {
		lay.skipIndex = true
		record = record[1:]
	}
	if len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[len(record)-1]), "target") {
		lay.labelFirst = false
	}
	return lay, nil
}

func sklearnBundleHeader(record []string) (int, bool) {
	if len(record) < 3 {
		return 0, false
	}
	if _, err := strconv.Atoi(strings.TrimSpace(record[0])); err != nil {
		return 0, false
	}
	nFeatures, err := strconv.Atoi(strings.TrimSpace(record[1]))
	if err != nil {
		return 0, false
	}
	return nFeatures, true
}

func parseRecord(record []string, labelFirst bool) ([]float64, int, error) {
	labelField := record[len(record)-1]
	featureFields := record[:len(record)-1]
	if labelFirst {
		labelField = record[0]
		featureFields = record[1:]
	}

	label, err := strconv.ParseFloat(strings.TrimSpace(labelField), 64)
	if err != nil || label != math.Trunc(label) {
		return nil, 0, fmt.Errorf("invalid class %q", labelField)
	}
	class := int(label)
	if labelFirst {
		// UCI numbers the cultivars from 1.
		class--
	}
	if class < 0 || class >= domain.ClassCount {
		return nil, 0, fmt.Errorf("class %q out of range", labelField)
	}

	features := make([]float64, len(featureFields))
	for i, field := range featureFields {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, 0, fmt.Errorf("feature %s: %v", domain.FeatureNames[i], err)
		}
		features[i] = v
	}
	return features, class, nil
}

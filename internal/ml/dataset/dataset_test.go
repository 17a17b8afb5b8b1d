package dataset

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wine-classifier-service/internal/core/domain"
	"wine-classifier-service/internal/testutil"
)

const ucisample = `1,14.23,1.71,2.43,15.6,127,2.8,3.06,.28,2.29,5.64,1.04,3.92,1065
2,12.37,.94,1.36,10.6,88,1.98,.57,.28,.42,1.95,1.05,1.82,520
3,12.86,1.35,2.32,18,122,1.51,1.25,.21,.94,4.1,.76,1.29,630
`

const sklearnSample = `alcohol,malic_acid,ash,alcalinity_of_ash,magnesium,total_phenols,flavanoids,nonflavanoid_phenols,proanthocyanins,color_intensity,hue,od280/od315_of_diluted_wines,proline,target
14.23,1.71,2.43,15.6,127.0,2.8,3.06,0.28,2.29,5.64,1.04,3.92,1065.0,0
12.37,0.94,1.36,10.6,88.0,1.98,0.57,0.28,0.42,1.95,1.05,1.82,520.0,1
`

func TestRead_UCILayout(t *testing.T) {
	ds, err := Read(context.Background(), strings.NewReader(ucisample))
	require.NoError(t, err)

	assert.Equal(t, 3, ds.Len())
	assert.Equal(t, []int{0, 1, 2}, ds.Labels)
	assert.Len(t, ds.Features[0], domain.FeatureCount)
	assert.Equal(t, 14.23, ds.Features[0][0])
	assert.Equal(t, 1065.0, ds.Features[0][12])
}

func TestRead_SklearnLayout(t *testing.T) {
	ds, err := Read(context.Background(), strings.NewReader(sklearnSample))
	require.NoError(t, err)

	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, []int{0, 1}, ds.Labels)
	assert.Equal(t, 0.94, ds.Features[1][1])
}

func TestRead_PandasIndexColumn(t *testing.T) {
	lines := strings.Split(strings.TrimSpace(sklearnSample), "\n")
	input := "," + lines[0] + "\n0," + lines[1] + "\n1," + lines[2] + "\n"

	ds, err := Read(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, ds.Labels)
	assert.Equal(t, 14.23, ds.Features[0][0])
	assert.Equal(t, 520.0, ds.Features[1][12])
}

func TestRead_SklearnBundledFile(t *testing.T) {
	input := "178,13,class_0,class_1,class_2\n" +
		"14.23,1.71,2.43,15.6,127,2.8,3.06,0.28,2.29,5.64,1.04,3.92,1065,0\n" +
		"12.86,1.35,2.32,18,122,1.51,1.25,0.21,0.94,4.1,0.76,1.29,630,2\n"

	ds, err := Read(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, ds.Labels)
	assert.Equal(t, 1065.0, ds.Features[0][12])

	_, err = Read(context.Background(), strings.NewReader(strings.Replace(input, "178,13", "178,12", 1)))
	assert.ErrorIs(t, err, ErrMalformedRow)
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		err   error
	}{
		{name: "empty", input: "", err: domain.ErrEmptyDataset},
		{name: "header only", input: strings.SplitN(sklearnSample, "\n", 2)[0] + "\n", err: domain.ErrEmptyDataset},
		{name: "short row", input: "1,2,3\n", err: ErrMalformedRow},
		{name: "ragged row", input: ucisample + "1,2,3\n", err: ErrMalformedRow},
		{name: "class out of range", input: strings.Replace(ucisample, "3,12.86", "4,12.86", 1), err: ErrMalformedRow},
		{name: "bad feature", input: strings.Replace(ucisample, "12.37", "abc", 1), err: ErrMalformedRow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(context.Background(), strings.NewReader(tt.input))
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestLoader_Load(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, testutil.WriteUCI(&buf, testutil.SyntheticWine(1)))
	path := filepath.Join(t.TempDir(), "wine.data")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	ds, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 178, ds.Len())

	_, err = NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

package dataset

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"wine-classifier-service/internal/core/domain"
)

const builtinFile = "data/wine.data"

//go:embed data
var builtinFS embed.FS

// ErrBuiltinMissing means the binary was built without data/wine.data.
var ErrBuiltinMissing = errors.New("built-in wine dataset is not bundled")

// Builtin parses the Wine dataset compiled into the binary.
func Builtin(ctx context.Context) (*domain.Dataset, error) {
	return readBuiltin(ctx, builtinFS)
}

func readBuiltin(ctx context.Context, fsys fs.FS) (*domain.Dataset, error) {
	raw, err := fs.ReadFile(fsys, builtinFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: add %s or configure a dataset path", ErrBuiltinMissing, builtinFile)
	}
	if err != nil {
		return nil, fmt.Errorf("read built-in dataset: %w", err)
	}
	return Read(ctx, bytes.NewReader(raw))
}

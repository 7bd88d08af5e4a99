package currency

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/xiebiao/bookcatalog/internal/domain/currency"
	infracurrency "github.com/xiebiao/bookcatalog/internal/infrastructure/currency"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

func TestReloadUseCase(t *testing.T) {
	defaults := domain.Defaults{Country: "us", Symbol: "$"}
	path := filepath.Join(t.TempDir(), "currencies.csv")
	require.NoError(t, os.WriteFile(path, []byte("Country Code|Currency Symbol|Rate\nus|$|1\njp|¥|110\ngb|£|0.785\n"), 0o644))

	store := domain.NewStore(nil, defaults)
	uc := NewReloadUseCase(infracurrency.NewReloader(store, path, defaults, nil))

	result, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, result.Rates)
	assert.Equal(t, "us", result.DefaultCountry)
	assert.Equal(t, 3, store.Current().Len())

	require.NoError(t, os.Remove(path))
	_, err = uc.Execute(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrServiceUnavailable)
	assert.Equal(t, 3, store.Current().Len(), "失败时保留旧快照")
}

package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietddude/bizday/internal/infra/store/memory"
	"github.com/vietddude/bizday/internal/registry"
)

func TestSeedHolidays(t *testing.T) {
	ctx := context.Background()
	mem := memory.NewMemoryStorage(memory.Config{PageSize: 4})

	n, err := seedHolidays(ctx, mem, "dev_feriado_tb", "sa-east-1", "data", []int{2018, 2019})
	require.NoError(t, err)
	assert.Equal(t, mem.Len("dev_feriado_tb", "sa-east-1"), n)

	set, err := registry.New(mem, registry.Config{}).Load(ctx, "dev_feriado_tb", "sa-east-1")
	require.NoError(t, err)
	assert.Equal(t, n, set.Len())
}

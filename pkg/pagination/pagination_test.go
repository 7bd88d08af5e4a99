package pagination

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	t.Run("整除", func(t *testing.T) {
		p := New(1, 5, 10)
		assert.Equal(t, 2, p.TotalPages)
		assert.True(t, p.HasNext)
		assert.False(t, p.HasPrev)
	})

	t.Run("非整除向上取整", func(t *testing.T) {
		p := New(3, 5, 12)
		assert.Equal(t, 3, p.TotalPages)
		assert.False(t, p.HasNext, "最后一页没有下一页")
		assert.True(t, p.HasPrev)
	})

	t.Run("超出最后一页", func(t *testing.T) {
		p := New(9, 5, 12)
		assert.Equal(t, 3, p.TotalPages)
		assert.False(t, p.HasNext)
		assert.True(t, p.HasPrev)
	})

	t.Run("空结果", func(t *testing.T) {
		p := New(1, 15, 0)
		assert.Equal(t, 0, p.TotalPages)
		assert.False(t, p.HasNext)
		assert.False(t, p.HasPrev)
	})

	t.Run("pageSize为0时不除零", func(t *testing.T) {
		p := New(1, 0, 12)
		assert.Equal(t, 0, p.TotalPages)
		assert.False(t, p.HasNext)
	})
}

func TestIsAllowedPageSize(t *testing.T) {
	for _, s := range []int{5, 15, 20, 25} {
		assert.True(t, IsAllowedPageSize(s), s)
	}
	for _, s := range []int{0, 1, 10, 30, 100} {
		assert.False(t, IsAllowedPageSize(s), s)
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Offset(1, 15))
	assert.Equal(t, 30, Offset(3, 15))
	assert.Equal(t, 0, Offset(0, 15))
	assert.Equal(t, 0, Offset(3, 0))

	// 超大页码不回绕为负数
	assert.Equal(t, math.MaxInt, Offset(368934881474191034, 25))
	assert.Equal(t, math.MaxInt, Offset(math.MaxInt, 5))
}

func TestBeyondEnd(t *testing.T) {
	assert.False(t, BeyondEnd(0, 12))
	assert.False(t, BeyondEnd(10, 12))
	assert.True(t, BeyondEnd(12, 12))
	assert.True(t, BeyondEnd(0, 0))
	assert.True(t, BeyondEnd(-5, 12))
	assert.True(t, BeyondEnd(Offset(368934881474191034, 25), 12))
}

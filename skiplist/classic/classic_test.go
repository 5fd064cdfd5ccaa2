package classic

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toki5537/skiplab/skiplist"
)

// fakeCoin 依序回傳預先排好的擲硬幣結果，用完後固定回傳 1.0
type fakeCoin struct {
	seq []float64
	pos int
}

func (c *fakeCoin) Float64() float64 {
	if c.pos >= len(c.seq) {
		return 1.0
	}
	v := c.seq[c.pos]
	c.pos++
	return v
}

// coinForHeights 產生讓接下來每次抽高度依序得到指定值的硬幣序列
func coinForHeights(heights ...int) *fakeCoin {
	var seq []float64
	for _, h := range heights {
		for i := 1; i < h; i++ {
			seq = append(seq, 0.0)
		}
		if h < maxLevel {
			seq = append(seq, 1.0)
		}
	}
	return &fakeCoin{seq: seq}
}

func TestClassicSkipListInterface(t *testing.T) {
	var _ skiplist.List = (*ClassicSkipList)(nil)
	var _ skiplist.Analyable = (*ClassicSkipList)(nil)
	var _ skiplist.Nodelike = (*classicNode)(nil)
}

func TestSearchAndSize(t *testing.T) {
	sl := New(42)
	keys := []skiplist.K{5, 1, 9, 3}
	values := []skiplist.V{"a", "b", "c", "d"}
	for i, k := range keys {
		sl.Insert(k, values[i])
	}

	v, ok := sl.Search(3)
	require.True(t, ok)
	assert.Equal(t, "d", v)

	_, ok = sl.Search(7)
	assert.False(t, ok)
	assert.Equal(t, 4, sl.Size())
}

func TestRemove(t *testing.T) {
	sl := New(42)
	keys := []skiplist.K{5, 1, 9, 3}
	values := []skiplist.V{"a", "b", "c", "d"}
	for i, k := range keys {
		sl.Insert(k, values[i])
	}

	v, ok := sl.Remove(1)
	require.True(t, ok)
	assert.Equal(t, "b", v)

	_, ok = sl.Search(1)
	assert.False(t, ok)
	assert.Equal(t, 3, sl.Size())

	// 其餘元素不受影響
	for i, k := range keys {
		if k == 1 {
			continue
		}
		v, ok := sl.Search(k)
		require.True(t, ok, "key %d", k)
		assert.Equal(t, values[i], v)
	}
}

func TestRemoveAbsent(t *testing.T) {
	sl := New(42)
	_, ok := sl.Remove(42)
	assert.False(t, ok)
	assert.Equal(t, 0, sl.Size())
	assert.Equal(t, 1, sl.Level())

	sl.Insert(7, "x")
	_, ok = sl.Remove(8)
	assert.False(t, ok)
	assert.Equal(t, 1, sl.Size())
}

func TestDuplicateInsertIsNoop(t *testing.T) {
	sl := New(42)
	sl.Insert(10, "first")
	sl.Insert(10, "second")

	assert.Equal(t, 1, sl.Size())
	v, ok := sl.Search(10)
	require.True(t, ok)
	assert.Equal(t, "first", v)
}

func TestHeadGrowAndShrink(t *testing.T) {
	coin := coinForHeights(4, 1)
	sl := NewWithCoin(coin)

	sl.Insert(10, "tall")
	assert.Equal(t, 4, sl.Level())
	assert.Equal(t, 4, sl.Head().Height())

	sl.Insert(5, "short")
	assert.Equal(t, 4, sl.Level())

	// 移除最高的節點後 level 應回落，head 同步截短
	_, ok := sl.Remove(10)
	require.True(t, ok)
	assert.Equal(t, 1, sl.Level())
	assert.Equal(t, 1, sl.Head().Height())

	v, ok := sl.Search(5)
	require.True(t, ok)
	assert.Equal(t, "short", v)

	_, ok = sl.Remove(5)
	require.True(t, ok)
	assert.Equal(t, 0, sl.Size())
	assert.Equal(t, 1, sl.Level())
	assert.Equal(t, 1, sl.Head().Height())
}

func TestDump(t *testing.T) {
	coin := coinForHeights(2, 1)
	sl := NewWithCoin(coin)
	sl.Insert(1, "a")
	sl.Insert(2, "b")

	rows := sl.Dump()
	require.Len(t, rows, 3)
	assert.Equal(t, strings.Repeat(" [  ] ", 2), rows[0])
	assert.Equal(t, strings.Repeat(" [ a ] ", 2), rows[1])
	assert.Equal(t, " [ b ] ", rows[2])
}

func TestOrderingInvariant(t *testing.T) {
	const n = 1000
	rng := rand.New(rand.NewSource(7))
	sl := New(42)

	keys := rng.Perm(n * 10)[:n]
	for _, k := range keys {
		sl.Insert(skiplist.K(k), fmt.Sprintf("v%d", k))
	}
	require.Equal(t, n, sl.Size())

	// 底層走訪必須嚴格遞增，且節點數等於 size
	count := 0
	var prev skiplist.K
	for cur := sl.Head().Next(0); cur != nil; cur = cur.Next(0) {
		if count > 0 {
			require.Less(t, prev, cur.Key())
		}
		prev = cur.Key()
		count++
	}
	assert.Equal(t, n, count)

	for _, k := range keys {
		v, ok := sl.Search(skiplist.K(k))
		require.True(t, ok, "key %d", k)
		require.Equal(t, fmt.Sprintf("v%d", k), v)
	}

	assert.GreaterOrEqual(t, sl.Level(), 1)
	assert.LessOrEqual(t, sl.Level(), maxLevel)
}

func TestRemoveManyKeepsOthers(t *testing.T) {
	const n = 400
	rng := rand.New(rand.NewSource(11))
	sl := New(42)

	keys := rng.Perm(n * 4)[:n]
	for _, k := range keys {
		sl.Insert(skiplist.K(k), fmt.Sprintf("v%d", k))
	}

	for i, k := range keys {
		if i%2 != 0 {
			continue
		}
		before := sl.Size()
		v, ok := sl.Remove(skiplist.K(k))
		require.True(t, ok, "key %d", k)
		require.Equal(t, fmt.Sprintf("v%d", k), v)
		require.Equal(t, before-1, sl.Size())

		_, ok = sl.Search(skiplist.K(k))
		require.False(t, ok)
	}

	for i, k := range keys {
		v, ok := sl.Search(skiplist.K(k))
		if i%2 == 0 {
			require.False(t, ok, "key %d", k)
		} else {
			require.True(t, ok, "key %d", k)
			require.Equal(t, fmt.Sprintf("v%d", k), v)
		}
	}
	assert.Equal(t, n/2, sl.Size())
}

func TestLevelBoundsUnderChurn(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	sl := New(42)

	for i := 0; i < 5000; i++ {
		k := skiplist.K(rng.Intn(500))
		switch rng.Intn(3) {
		case 0:
			sl.Insert(k, "v")
		case 1:
			sl.Remove(k)
		default:
			sl.Search(k)
		}
		require.GreaterOrEqual(t, sl.Level(), 1)
		require.LessOrEqual(t, sl.Level(), maxLevel)
		require.Equal(t, sl.Level(), sl.Head().Height())
	}
}

func TestRandomHeightDistribution(t *testing.T) {
	sl := New(42)
	for i := 0; i < 10000; i++ {
		h := sl.randomHeight()
		require.GreaterOrEqual(t, h, 1)
		require.LessOrEqual(t, h, maxLevel)
	}
}

package workload

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toki5537/skiplab/skiplist"
	"github.com/toki5537/skiplab/skiplist/classic"
	"github.com/toki5537/skiplab/skiplist/inspect"
)

func TestWriteAndReadFile(t *testing.T) {
	n := 8
	k := 200
	gen := NewZipf(n, 1.2, 0.0, 42)

	path := filepath.Join(t.TempDir(), "work.bin")
	require.NoError(t, WriteFile(gen, k, 0.05, 42, path))

	f, err := ReadFile(path)
	require.NoError(t, err)

	// 分布 map 應與產生器一致
	exp := gen.KeyProbs()
	require.Len(t, f.Dist, len(exp))
	for key, want := range exp {
		got, ok := f.Dist[key]
		require.True(t, ok, "missing key %d", key)
		assert.InDelta(t, want, got, 1e-12)
	}

	// 操作序列：第一次出現必為 Insert，刪除後的 key 需重新 Insert
	require.Len(t, f.Ops, k)
	present := map[skiplist.K]bool{}
	for i, op := range f.Ops {
		if !present[op.Key] {
			require.Equal(t, OpInsert, op.Type, "op[%d]", i)
		}
		switch op.Type {
		case OpInsert:
			present[op.Key] = true
		case OpDelete:
			require.True(t, present[op.Key], "op[%d] deletes absent key", i)
			present[op.Key] = false
		}
	}
}

func TestReadFileRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.bin")
	require.NoError(t, os.WriteFile(path, []byte("NOTMAGIC-------"), 0644))

	_, err := ReadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad magic")
}

func TestReplayMatchesMap(t *testing.T) {
	gen := NewUniform(64, 9)
	path := filepath.Join(t.TempDir(), "work.bin")
	require.NoError(t, WriteFile(gen, 3000, 0.1, 9, path))

	f, err := ReadFile(path)
	require.NoError(t, err)

	sl := classic.New(42)
	f.Replay(sl)
	require.NoError(t, inspect.CheckStruct(sl))

	// 用 map 重跑一次同樣的語意（重複 Insert 不覆寫）
	ref := map[skiplist.K]string{}
	for _, op := range f.Ops {
		switch op.Type {
		case OpInsert:
			if _, ok := ref[op.Key]; !ok {
				ref[op.Key] = "v"
			}
		case OpDelete:
			delete(ref, op.Key)
		}
	}

	assert.Equal(t, len(ref), sl.Size())
	for key := range ref {
		assert.True(t, sl.Contains(key), "key %d", key)
	}
}

func TestStream(t *testing.T) {
	ops := []Op{{OpInsert, 1}, {OpQuery, 1}, {OpDelete, 1}}
	s := NewStream(ops)
	require.Equal(t, 3, s.Len())

	count := 0
	for {
		op, ok := s.Next()
		if !ok {
			break
		}
		assert.Equal(t, ops[count], op)
		count++
	}
	assert.Equal(t, 3, count)

	s.Reset()
	op, ok := s.Next()
	require.True(t, ok)
	assert.Equal(t, ops[0], op)
}

package workload

import (
	"encoding/binary"
	"math/rand"
	"os"
	"sort"
	"strconv"

	"github.com/pkg/errors"

	"github.com/toki5537/skiplab/skiplist"
)

// 檔案格式（LittleEndian）：
// [8]byte  Magic: "SLWORK01"
// uint16   Version: 1
// uint16   Reserved: 0
// uint32   DistCount
// 重複 DistCount 次：
//   int64   Key
//   float64 Weight
// uint64   OpCount
// 重複 OpCount 次：
//   uint8   OpType (0=Query,1=Insert,2=Delete)
//   int64   Key

var fileMagic = [8]byte{'S', 'L', 'W', 'O', 'R', 'K', '0', '1'}

const fileVersion = uint16(1)

// queryRatio 已出現過的 key 產生 Query 的機率，其餘依 deleteRatio 分給 Delete
const queryRatio = 0.9

// File 一份已載入的 workload：鍵值分布與操作序列
type File struct {
	Dist map[skiplist.K]float64
	Ops  []Op
}

// WriteFile 以產生器抽出 ops 筆操作並寫入二進位檔。
// 規則：
//   - 某 key 第一次出現時輸出 Insert
//   - 已出現過則 queryRatio 機率 Query、deleteRatio 機率 Delete（僅當目前存在時）、其餘 Insert
//   - 刪除後的 key 再次出現時重新輸出 Insert
func WriteFile(gen Generator, ops int, deleteRatio float64, seed int64, path string) error {
	if gen == nil {
		return errors.New("nil generator")
	}
	if ops < 0 {
		return errors.Errorf("invalid ops count: %d", ops)
	}
	if deleteRatio < 0 || queryRatio+deleteRatio > 1 {
		return errors.Errorf("invalid delete ratio: %f", deleteRatio)
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create workload file")
	}
	defer file.Close()

	if _, err := file.Write(fileMagic[:]); err != nil {
		return errors.Wrap(err, "write magic")
	}
	if err := binary.Write(file, binary.LittleEndian, fileVersion); err != nil {
		return errors.Wrap(err, "write version")
	}
	if err := binary.Write(file, binary.LittleEndian, uint16(0)); err != nil { // reserved
		return errors.Wrap(err, "write reserved")
	}

	// 分布依 key 升冪輸出，確保可重現
	dist := gen.KeyProbs()
	keys := make([]int, 0, len(dist))
	for k := range dist {
		keys = append(keys, int(k))
	}
	sort.Ints(keys)

	if err := binary.Write(file, binary.LittleEndian, uint32(len(keys))); err != nil {
		return errors.Wrap(err, "write dist count")
	}
	for _, ik := range keys {
		if err := binary.Write(file, binary.LittleEndian, int64(ik)); err != nil {
			return errors.Wrap(err, "write dist key")
		}
		if err := binary.Write(file, binary.LittleEndian, dist[skiplist.K(ik)]); err != nil {
			return errors.Wrap(err, "write dist weight")
		}
	}

	if err := binary.Write(file, binary.LittleEndian, uint64(ops)); err != nil {
		return errors.Wrap(err, "write op count")
	}

	rng := rand.New(rand.NewSource(seed))
	present := make(map[int]bool, len(keys))

	for i := 0; i < ops; i++ {
		idx := gen.Next()
		var op OpType

		if !present[idx] {
			op = OpInsert
			present[idx] = true
		} else {
			r := rng.Float64()
			switch {
			case r < queryRatio:
				op = OpQuery
			case r < queryRatio+deleteRatio:
				op = OpDelete
				present[idx] = false
			default:
				op = OpInsert
			}
		}

		if err := binary.Write(file, binary.LittleEndian, uint8(op)); err != nil {
			return errors.Wrap(err, "write op type")
		}
		if err := binary.Write(file, binary.LittleEndian, int64(idx)); err != nil {
			return errors.Wrap(err, "write op key")
		}
	}
	return nil
}

// ReadFile 讀回 WriteFile 產生的 workload 檔
func ReadFile(path string) (*File, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open workload file")
	}
	defer file.Close()

	var magic [8]byte
	if _, err := file.Read(magic[:]); err != nil {
		return nil, errors.Wrap(err, "read magic")
	}
	if magic != fileMagic {
		return nil, errors.Errorf("bad magic %q", magic[:])
	}

	var version, reserved uint16
	if err := binary.Read(file, binary.LittleEndian, &version); err != nil {
		return nil, errors.Wrap(err, "read version")
	}
	if version != fileVersion {
		return nil, errors.Errorf("unsupported version %d", version)
	}
	if err := binary.Read(file, binary.LittleEndian, &reserved); err != nil {
		return nil, errors.Wrap(err, "read reserved")
	}

	var distCount uint32
	if err := binary.Read(file, binary.LittleEndian, &distCount); err != nil {
		return nil, errors.Wrap(err, "read dist count")
	}
	dist := make(map[skiplist.K]float64, distCount)
	for i := uint32(0); i < distCount; i++ {
		var key int64
		var weight float64
		if err := binary.Read(file, binary.LittleEndian, &key); err != nil {
			return nil, errors.Wrap(err, "read dist key")
		}
		if err := binary.Read(file, binary.LittleEndian, &weight); err != nil {
			return nil, errors.Wrap(err, "read dist weight")
		}
		dist[skiplist.K(key)] = weight
	}

	var opCount uint64
	if err := binary.Read(file, binary.LittleEndian, &opCount); err != nil {
		return nil, errors.Wrap(err, "read op count")
	}
	opsList := make([]Op, 0, opCount)
	for i := uint64(0); i < opCount; i++ {
		var t uint8
		var key int64
		if err := binary.Read(file, binary.LittleEndian, &t); err != nil {
			return nil, errors.Wrapf(err, "read op %d type", i)
		}
		if err := binary.Read(file, binary.LittleEndian, &key); err != nil {
			return nil, errors.Wrapf(err, "read op %d key", i)
		}
		if OpType(t) > OpDelete {
			return nil, errors.Errorf("op %d has unknown type %d", i, t)
		}
		opsList = append(opsList, Op{Type: OpType(t), Key: skiplist.K(key)})
	}

	return &File{Dist: dist, Ops: opsList}, nil
}

// Stream 建立操作序列的重播游標
func (f *File) Stream() *Stream {
	return NewStream(f.Ops)
}

// Replay 依序把操作套用到 list 上
func (f *File) Replay(l skiplist.List) {
	for _, op := range f.Ops {
		switch op.Type {
		case OpQuery:
			l.Search(op.Key)
		case OpInsert:
			l.Insert(op.Key, strconv.FormatInt(int64(op.Key), 10))
		case OpDelete:
			l.Remove(op.Key)
		}
	}
}

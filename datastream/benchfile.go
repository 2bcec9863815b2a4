package datastream

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Hakuto4838/ArenaSkipList.git/skiplist"
)

// 檔案格式（LittleEndian）：
// [8]byte  Magic: "ALBENCH1"
// uint16   Version: 1
// uint16   Reserved: 0
// uint32   DistCount
// 重複 DistCount 次：
//   int64   Value
//   float64 Weight
// uint64   OpCount
// 重複 OpCount 次：
//   uint8   OperationType (0=Search,1=Insert,2=Delete)
//   int64   Value

var (
	benchMagic   = [8]byte{'A', 'L', 'B', 'E', 'N', 'C', 'H', '1'}
	benchVersion = uint16(1)
)

type BenchOp struct {
	Type  OperationType
	Value skiplist.V
}

type BenchFile struct {
	Dist map[skiplist.V]float64
	Ops  []BenchOp
}

// WriteBenchFileFromZipf 以 ZipfDataGenerator 與操作數 k 產生對應 bin 檔。
// 規則：
//   - 若 Zipf.Next() 給的值未曾出現過，則輸出 Insert
//   - 若已出現過且目前存在，則 90% Search、5% Delete、其餘 Insert（重複插入）
//   - 已出現但先前被刪除的值重新 Insert
//   - 搜尋與刪除僅會在該值至少插入過一次之後才可能出現
func WriteBenchFileFromZipf(gen *ZipfDataGenerator, k int, filename string) error {
	if gen == nil {
		return errors.New("nil ZipfDataGenerator")
	}
	if k < 0 {
		return fmt.Errorf("invalid op count: %d", k)
	}

	present := make(map[skiplist.V]bool)
	ops := make([]BenchOp, 0, k)
	for i := 0; i < k; i++ {
		v := skiplist.V(gen.Next())
		if alive, seen := present[v]; !seen || !alive {
			present[v] = true
			ops = append(ops, BenchOp{Type: OpInsert, Value: v})
			continue
		}
		switch r := gen.rng.Float64(); {
		case r < 0.90:
			ops = append(ops, BenchOp{Type: OpSearch, Value: v})
		case r < 0.95:
			present[v] = false
			ops = append(ops, BenchOp{Type: OpDelete, Value: v})
		default:
			ops = append(ops, BenchOp{Type: OpInsert, Value: v})
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	if err := writeBench(w, gen.GetValueMap(), ops); err != nil {
		return err
	}
	return w.Flush()
}

func writeBench(w io.Writer, dist map[skiplist.V]float64, ops []BenchOp) error {
	if err := binary.Write(w, binary.LittleEndian, benchMagic); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, benchVersion); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(0)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(dist))); err != nil {
		return err
	}
	for v, weight := range dist {
		if err := binary.Write(w, binary.LittleEndian, int64(v)); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, weight); err != nil {
			return err
		}
	}
	if err := binary.Write(w, binary.LittleEndian, uint64(len(ops))); err != nil {
		return err
	}
	for _, op := range ops {
		if err := binary.Write(w, binary.LittleEndian, uint8(op.Type)); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, int64(op.Value)); err != nil {
			return err
		}
	}
	return nil
}

// ReadBenchFile 讀取 WriteBenchFileFromZipf 產生的 bin 檔
func ReadBenchFile(filename string) (*BenchFile, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := bufio.NewReader(file)

	var magic [8]byte
	if err := binary.Read(r, binary.LittleEndian, &magic); err != nil {
		return nil, fmt.Errorf("read magic: %w", err)
	}
	if magic != benchMagic {
		return nil, fmt.Errorf("bad magic: %q", magic[:])
	}
	var version, reserved uint16
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, fmt.Errorf("read version: %w", err)
	}
	if version != benchVersion {
		return nil, fmt.Errorf("unsupported version: %d", version)
	}
	if err := binary.Read(r, binary.LittleEndian, &reserved); err != nil {
		return nil, fmt.Errorf("read reserved: %w", err)
	}

	var distCount uint32
	if err := binary.Read(r, binary.LittleEndian, &distCount); err != nil {
		return nil, fmt.Errorf("read dist count: %w", err)
	}
	dist := make(map[skiplist.V]float64, distCount)
	for i := uint32(0); i < distCount; i++ {
		var v int64
		var weight float64
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return nil, fmt.Errorf("read dist value: %w", err)
		}
		if err := binary.Read(r, binary.LittleEndian, &weight); err != nil {
			return nil, fmt.Errorf("read dist weight: %w", err)
		}
		dist[skiplist.V(v)] = weight
	}

	var opCount uint64
	if err := binary.Read(r, binary.LittleEndian, &opCount); err != nil {
		return nil, fmt.Errorf("read op count: %w", err)
	}
	ops := make([]BenchOp, 0, opCount)
	for i := uint64(0); i < opCount; i++ {
		var t uint8
		var v int64
		if err := binary.Read(r, binary.LittleEndian, &t); err != nil {
			return nil, fmt.Errorf("read op type: %w", err)
		}
		if t > uint8(OpDelete) {
			return nil, fmt.Errorf("bad op type: %d", t)
		}
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return nil, fmt.Errorf("read op value: %w", err)
		}
		ops = append(ops, BenchOp{Type: OperationType(t), Value: skiplist.V(v)})
	}

	return &BenchFile{Dist: dist, Ops: ops}, nil
}

// ToSequenceModel 將 BenchFile 的操作轉為可重播的 SequenceModel
func (bf *BenchFile) ToSequenceModel() *SequenceModel {
	ops := make([]Operation, len(bf.Ops))
	for i, op := range bf.Ops {
		ops[i] = Operation{Type: op.Type, Value: op.Value}
	}
	return NewSequenceModelFromOps(ops)
}

package datastream

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/Hakuto4838/ArenaSkipList.git/skiplist"
)

func floatAlmostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestWriteAndReadBenchFileFromZipf(t *testing.T) {
	n := 8
	a := 1.2
	b := 0.0
	seed := int64(42)
	k := 200

	gen := NewZipfDataGenerator(n, a, b, seed)
	if gen == nil {
		t.Fatalf("NewZipfDataGenerator returned nil")
	}

	tmp := t.TempDir()
	file := filepath.Join(tmp, "bench.bin")

	if err := WriteBenchFileFromZipf(gen, k, file); err != nil {
		t.Fatalf("WriteBenchFileFromZipf error: %v", err)
	}

	bf, err := ReadBenchFile(file)
	if err != nil {
		t.Fatalf("ReadBenchFile error: %v", err)
	}

	// 驗證分布 map
	exp := gen.GetValueMap()
	if len(bf.Dist) != len(exp) {
		t.Fatalf("dist len mismatch: got %d, want %d", len(bf.Dist), len(exp))
	}
	for vexp, wexp := range exp {
		wgot, ok := bf.Dist[vexp]
		if !ok {
			t.Fatalf("missing value in dist: %v", vexp)
		}
		if !floatAlmostEqual(wgot, wexp, 1e-12) {
			t.Fatalf("weight mismatch for value %v: got %v, want %v", vexp, wgot, wexp)
		}
	}

	// 驗證操作序列：首次出現必為 Insert，Search/Delete 只會發生在值目前存在時
	if len(bf.Ops) != k {
		t.Fatalf("ops len mismatch: got %d, want %d", len(bf.Ops), k)
	}
	present := map[skiplist.V]bool{}
	for i, op := range bf.Ops {
		switch op.Type {
		case OpInsert:
			present[op.Value] = true
		case OpSearch:
			if !present[op.Value] {
				t.Fatalf("op[%d] searches absent value %d", i, op.Value)
			}
		case OpDelete:
			if !present[op.Value] {
				t.Fatalf("op[%d] deletes absent value %d", i, op.Value)
			}
			present[op.Value] = false
		default:
			t.Fatalf("op[%d] has unknown type %v", i, op.Type)
		}
	}

	// 驗證 ToSequenceModel
	m := bf.ToSequenceModel()
	count := 0
	for {
		op, ok := m.Next()
		if !ok {
			break
		}
		if op.Type > OpDelete {
			t.Fatalf("sequence op %d has bad type %v", count, op.Type)
		}
		count++
	}
	if count != k {
		t.Fatalf("sequence model length mismatch: got %d, want %d", count, k)
	}
	m.Reset()
	if got := m.NextN(10); len(got) != 10 {
		t.Fatalf("NextN(10) after Reset returned %d ops", len(got))
	}
}

func TestReadBenchFileRejectsGarbage(t *testing.T) {
	tmp := t.TempDir()

	if _, err := ReadBenchFile(filepath.Join(tmp, "missing.bin")); err == nil {
		t.Error("ReadBenchFile on missing file did not error")
	}

	garbage := filepath.Join(tmp, "garbage.bin")
	if err := os.WriteFile(garbage, []byte("NOTABENCHFILEAT ALL"), 0o644); err != nil {
		t.Fatalf("write garbage file: %v", err)
	}
	if _, err := ReadBenchFile(garbage); err == nil {
		t.Error("ReadBenchFile on garbage file did not error")
	}
}

func TestZipfGenerator(t *testing.T) {
	n := 100
	gen := NewZipfDataGenerator(n, 1.07, 1.0, 42)

	sum := 0.0
	for _, w := range gen.Weights {
		sum += w
	}
	if !floatAlmostEqual(sum, 1.0, 1e-9) {
		t.Errorf("weights sum = %v, want 1", sum)
	}

	for _, idx := range gen.GenerateSequence(1000) {
		if idx < 0 || idx >= n {
			t.Fatalf("Next() = %d, out of [0, %d)", idx, n)
		}
	}

	cdf := gen.GetCDF()
	for i := 1; i < len(cdf); i++ {
		if cdf[i] < cdf[i-1] {
			t.Fatalf("CDF not monotone at %d", i)
		}
	}
	if h := gen.Entropy(); h <= 0 || h > math.Log2(float64(n)) {
		t.Errorf("entropy = %v, out of (0, log2(n)]", h)
	}
}

func TestUniformGenerator(t *testing.T) {
	n := 16
	gen := NewUniformDataGenerator(n, 42)

	for _, idx := range gen.GenerateSequence(1000) {
		if idx < 0 || idx >= n {
			t.Fatalf("Next() = %d, out of [0, %d)", idx, n)
		}
	}

	if h := gen.Entropy(); !floatAlmostEqual(h, math.Log2(float64(n)), 1e-9) {
		t.Errorf("entropy = %v, want log2(%d)", h, n)
	}

	vm := gen.GetValueMap()
	if len(vm) != n {
		t.Fatalf("value map len = %d, want %d", len(vm), n)
	}
	for v, p := range vm {
		if !floatAlmostEqual(p, 1.0/float64(n), 1e-12) {
			t.Errorf("value %d probability = %v, want uniform", v, p)
		}
	}
}

func TestDataStreamInterface(t *testing.T) {
	var _ DataStream = (*ZipfDataGenerator)(nil)
	var _ DataStream = (*UniformDataGenerator)(nil)
}

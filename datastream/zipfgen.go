package datastream

import (
	"math"
	"math/rand"

	"github.com/Hakuto4838/ArenaSkipList.git/skiplist"
)

// ZipfDataGenerator 產生符合 Zipf 分布的取值序列
type ZipfDataGenerator struct {
	n       int
	a, b    float64
	Weights []float64
	cdf     []float64
	rng     *rand.Rand
}

func NewZipfDataGenerator(n int, a, b float64, seed int64) *ZipfDataGenerator {
	rng := rand.New(rand.NewSource(seed))
	weights := make([]float64, n)
	var sum float64
	for i := 1; i <= n; i++ {
		weights[i-1] = 1.0 / math.Pow(float64(i)+b, a)
		sum += weights[i-1]
	}
	// 正規化
	for i := range weights {
		weights[i] /= sum
	}
	rng.Shuffle(len(weights), func(i, j int) {
		weights[i], weights[j] = weights[j], weights[i]
	})
	// 建立累積分布函數 (CDF)
	cdf := make([]float64, n)
	cdf[0] = weights[0]
	for i := 1; i < n; i++ {
		cdf[i] = cdf[i-1] + weights[i]
	}
	return &ZipfDataGenerator{
		n:       n,
		a:       a,
		b:       b,
		Weights: weights,
		cdf:     cdf,
		rng:     rng,
	}
}

// Next 產生一筆取值 (回傳索引 0~n-1)
func (z *ZipfDataGenerator) Next() int {
	r := z.rng.Float64()
	// 二分搜尋 cdf
	lo, hi := 0, z.n-1
	for lo < hi {
		mid := (lo + hi) / 2
		if r > z.cdf[mid] {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// GenerateSequence 產生指定長度的取值序列
func (z *ZipfDataGenerator) GenerateSequence(seqLen int) []int {
	seq := make([]int, seqLen)
	for i := 0; i < seqLen; i++ {
		seq[i] = z.Next()
	}
	return seq
}

// GetDistribute 回傳每個取值的機率分布
func (z *ZipfDataGenerator) GetDistribute() map[int]float64 {
	result := make(map[int]float64, z.n)
	for i := 0; i < z.n; i++ {
		result[i] = z.Weights[i]
	}
	return result
}

func (z *ZipfDataGenerator) Close() error {
	return nil
}

func (z *ZipfDataGenerator) GetValueMap() map[skiplist.V]float64 {
	result := make(map[skiplist.V]float64, z.n)
	for i := 0; i < z.n; i++ {
		result[skiplist.V(i)] = z.Weights[i]
	}
	return result
}

// GetCDF 計算累積分布函數，回傳新的 slice，避免汙染原本的 Weights
func (z *ZipfDataGenerator) GetCDF() []float64 {
	cdf := make([]float64, len(z.Weights))
	sum := 0.0
	for i, w := range z.Weights {
		sum += w
		cdf[i] = sum
	}
	return cdf
}

func (z *ZipfDataGenerator) GetPDF() []float64 {
	pdf := make([]float64, len(z.Weights))
	copy(pdf, z.Weights)
	return pdf
}

func (z *ZipfDataGenerator) Entropy() float64 {
	h := 0.0
	for _, p := range z.Weights {
		if p > 0 {
			h -= p * math.Log2(p)
		}
	}
	return h
}

package math

import (
	"math/rand"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/db47h/bigfloat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// loadPi returns the first 10000 decimal digits of π.
func loadPi(t *testing.T) string {
	t.Helper()
	b, err := os.ReadFile("testdata/pi10000.txt")
	require.NoError(t, err)
	return strings.TrimSpace(string(b))
}

// refPi returns π rounded according to o. The truncated digits are accurate
// to 2**-33000 which is enough for precisions below 30000 bits.
func refPi(t *testing.T, digits string, o bigfloat.Options) *bigfloat.Float {
	t.Helper()
	z, _, err := bigfloat.ParseFloat(o, digits, 10)
	assert.NoError(t, err)
	return z
}

func TestPi(t *testing.T) {
	digits := loadPi(t)
	for _, p := range []uint{2, 10, 24, 53, 64, 100, 1000, 3000} {
		for _, mode := range []bigfloat.RoundingMode{bigfloat.ToNearestEven, bigfloat.ToZero, bigfloat.ToPositiveInf} {
			o := bigfloat.Options{Prec: p, Mode: mode}
			var z bigfloat.Float
			s := Pi(&z, o)
			assert.Equal(t, bigfloat.Inexact, s)
			want := refPi(t, digits, o)
			assert.Equal(t, bigfloat.Equal, z.Cmp(want), "prec %d %s: got %s want %s", p, mode, z.Text('g', 40), want.Text('g', 40))
		}
	}

	var z bigfloat.Float
	Pi(&z, bigfloat.Float64Options(bigfloat.ToNearestEven))
	f, _ := z.Float64(bigfloat.ToNearestEven)
	assert.Equal(t, 3.141592653589793, f)

	// infinite precision falls back to InfPrec bits
	Pi(&z, bigfloat.Options{Prec: bigfloat.PrecInf})
	assert.LessOrEqual(t, z.MinPrec(), uint(InfPrec))
	assert.Equal(t, bigfloat.Equal, z.Cmp(refPi(t, digits, bigfloat.Options{Prec: InfPrec})))
}

func TestPiConcurrent(t *testing.T) {
	digits := loadPi(t)
	maxPrec := 20000
	if testing.Short() {
		maxPrec = 4000
	}
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			r := rand.New(rand.NewSource(seed))
			for j := 0; j < 5; j++ {
				o := bigfloat.Options{Prec: uint(r.Intn(maxPrec) + 1)}
				var z bigfloat.Float
				Pi(&z, o)
				if !assert.Equal(t, bigfloat.Equal, z.Cmp(refPi(t, digits, o)), "prec %d", o.Prec) {
					return
				}
			}
		}(int64(i))
	}
	wg.Wait()
	assert.GreaterOrEqual(t, _pi.prec, uint(guard))
}

func BenchmarkPi(b *testing.B) {
	for i := 0; i < b.N; i++ {
		var z bigfloat.Float
		pi(&z, 1000)
	}
}

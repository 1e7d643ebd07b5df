package math_test

import (
	stdmath "math"
	"math/rand"
	"strconv"
	"testing"

	"github.com/db47h/bigfloat"
	"github.com/db47h/bigfloat/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var precs = []uint{24, 53, 100, 200, 300}

func parse(t *testing.T, o bigfloat.Options, s string) *bigfloat.Float {
	t.Helper()
	z, _, err := bigfloat.ParseFloat(o, s, 0)
	require.NoError(t, err, s)
	return z
}

// assertUlp checks that got is within one ulp of want at precision p.
func assertUlp(t *testing.T, want, got *bigfloat.Float, p uint, msgAndArgs ...interface{}) bool {
	t.Helper()
	var d bigfloat.Float
	d.Sub(bigfloat.Options{Prec: bigfloat.PrecInf}, want, got)
	if d.IsZero() {
		return true
	}
	var ulp bigfloat.Float
	ulp.MulPow2(bigfloat.Options{Prec: bigfloat.PrecInf}, bigfloat.NewFloat(1), want.MantExp(nil)-int64(p))
	return assert.NotEqual(t, bigfloat.Greater, d.CmpAbs(&ulp), msgAndArgs...)
}

type fn func(z *bigfloat.Float, o bigfloat.Options, x *bigfloat.Float) bigfloat.Status

func TestFunctions(t *testing.T) {
	for _, test := range []struct {
		name string
		f    fn
		x    string
		want string
	}{
		{"log", math.Log, "3", "1.098612288668109691395245236922525704647490557822749451734694333637494293218608966873615754813732088787970029065957865742368004226"},
		{"log", math.Log, "0.75", "-0.2876820724517809274392190059938274315035097108977610565066656853492929507207804643381108991791052862960329329751835057250030362456"},
		{"log", math.Log, "0x1.000000000000001p0", "8.673617379884035468298040484328213668081394570221655338468751732014828643297568096457048129842267449984897415214511427139733300926e-19"},
		{"log", math.Log, "0x1p-1000", "-693.1471805599453094172321214581765680755001343602552541206800094933936219696947156058633269964186875420014810205706857336855202358"},
		{"log", math.Log, "1e6", "13.81551055796427410410794872810618524560660893177263785619996740580543565806411488141598323053758979005180670425371749180045715279"},
		{"log", math.Log, "2", "0.6931471805599453094172321214581765680755001343602552541206800094933936219696947156058633269964186875420014810205706857336855202358"},
		{"log2", math.Log2, "3", "1.584962500721156181453738943947816508759814407692481060455752654541098227794358562522280474918088242090980662475059167343717552441"},
		{"log2", math.Log2, "10", "3.321928094887362347870319429489390175864831393024580612054756395815934776608625215850139743359370155099657371710250251826824096984"},
		{"log10", math.Log10, "2", "0.3010299956639811952137388947244930267681898814621085413104274611271081892744245094869272521181861720406844771914309953790947678811"},
		{"log10", math.Log10, "7", "0.8450980400142568307122162585926361934835723963239654065036349537182534399020791660661115278474885733414243100753543455862416061707"},
		{"expm1", math.Expm1, "0x1p-30", "9.313225750491593847538340347920469844993447701933340209396785855309108527498781178820618249340884051236324382525155744008879961654e-10"},
		{"expm1", math.Expm1, "-0.25", "-0.2211992169285951317548297330216793527032277095738585257586826337317543879464807553680009847526861793958756629769381774875583556589"},
		{"expm1", math.Expm1, "1", "1.718281828459045235360287471352662497757247093699959574966967627724076630353547594571382178525166427427466391932003059921817413597"},
		{"expm1", math.Expm1, "-3", "-0.9502129316321360570206575843499382233683004078115767844323722723939393322698004498459457557633666554735986713491063180491353566133"},
		{"expm1", math.Expm1, "10", "22025.46579480671651695790064528424436635351261855678107423542635522520281857079257519912096816452589545155550109245783665242329161"},
	} {
		x := parse(t, bigfloat.Options{Prec: bigfloat.PrecInf}, test.x)
		for _, p := range precs {
			o := bigfloat.Options{Prec: p}
			want := parse(t, o, test.want)
			var z bigfloat.Float
			s := test.f(&z, o, x)
			assert.Equal(t, bigfloat.Inexact, s, "%s(%s) prec %d", test.name, test.x, p)
			assertUlp(t, want, &z, p, "%s(%s) prec %d: got %s", test.name, test.x, p, z.Text('g', 40))
		}
	}
}

func TestLogExact(t *testing.T) {
	for _, test := range []struct {
		f    fn
		x    string
		want int64
	}{
		{math.Log2, "1024", 10},
		{math.Log2, "0.125", -3},
		{math.Log2, "0x1p-100000", -100000},
		{math.Log10, "10", 1},
		{math.Log10, "1e50", 50},
		{math.Log10, "100000000000000000000000000000000000000000000000000000000000000000000000000000000", 80},
	} {
		x := parse(t, bigfloat.Options{Prec: bigfloat.PrecInf}, test.x)
		var z bigfloat.Float
		s := test.f(&z, bigfloat.DefaultOptions, x)
		assert.Equal(t, bigfloat.Ok, s, test.x)
		i, acc := z.Int64()
		assert.Equal(t, bigfloat.Exact, acc, test.x)
		assert.Equal(t, test.want, i, test.x)
	}

	// near a power of ten
	var z bigfloat.Float
	s := math.Log10(&z, bigfloat.DefaultOptions, parse(t, bigfloat.Options{Prec: bigfloat.PrecInf}, "1000000000000000000001"))
	assert.Equal(t, bigfloat.Inexact, s)
	f, _ := z.Float64(bigfloat.ToNearestEven)
	assert.Equal(t, 21.0, f)
}

func TestLogSpecial(t *testing.T) {
	for _, f := range []fn{math.Log, math.Log2, math.Log10} {
		for _, test := range []struct {
			x      string
			want   string
			status bigfloat.Status
		}{
			{"+Inf", "+Inf", bigfloat.Ok},
			{"0", "-Inf", bigfloat.DivideByZero},
			{"-0", "-Inf", bigfloat.DivideByZero},
			{"-1", "NaN", bigfloat.InvalidOperation},
			{"-Inf", "NaN", bigfloat.InvalidOperation},
			{"NaN", "NaN", bigfloat.Ok},
			{"1", "0", bigfloat.Ok},
		} {
			var z bigfloat.Float
			s := f(&z, bigfloat.DefaultOptions, parse(t, bigfloat.DefaultOptions, test.x))
			assert.Equal(t, test.want, z.String(), test.x)
			assert.Equal(t, test.status, s, test.x)
		}
	}
}

func TestLogAgainstTaylor(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		p := uint(r.Intn(400) + 20)
		o := bigfloat.Options{Prec: p}
		x := bigfloat.NewFloat(stdmath.Ldexp(r.Float64()+0.5, r.Intn(200)-100))
		var agm, taylor bigfloat.Float
		math.Log(&agm, o.WithPrec(p+8), x)
		taylor.Log(o.WithPrec(p+8), x)
		assertUlp(t, &taylor, &agm, p, "log(%s) prec %d", x, p)
	}
}

func TestExpm1Special(t *testing.T) {
	for _, test := range []struct {
		x      string
		want   string
		status bigfloat.Status
	}{
		{"0", "0", bigfloat.Ok},
		{"-0", "-0", bigfloat.Ok},
		{"+Inf", "+Inf", bigfloat.Ok},
		{"-Inf", "-1", bigfloat.Ok},
		{"NaN", "NaN", bigfloat.Ok},
		{"-1e10", "-1", bigfloat.Inexact},
		{"1e10", "+Inf", bigfloat.Overflow | bigfloat.Inexact},
	} {
		var z bigfloat.Float
		s := math.Expm1(&z, bigfloat.DefaultOptions, parse(t, bigfloat.DefaultOptions, test.x))
		assert.Equal(t, test.want, z.String(), test.x)
		assert.Equal(t, test.status, s, test.x)
	}

	// tiny arguments keep full precision
	var z bigfloat.Float
	x := parse(t, bigfloat.DefaultOptions, "1e-300")
	math.Expm1(&z, bigfloat.DefaultOptions, x)
	assert.Equal(t, "1e-300", z.String())
}

func TestHypot(t *testing.T) {
	o := bigfloat.Float64Options(bigfloat.ToNearestEven)
	for _, test := range []struct {
		x, y   float64
		want   float64
		status bigfloat.Status
	}{
		{3, 4, 5, bigfloat.Ok},
		{-3, 4, 5, bigfloat.Ok},
		{0, 0, 0, bigfloat.Ok},
		{0, -2, 2, bigfloat.Ok},
		{1, 1, stdmath.Sqrt2, bigfloat.Inexact},
		{1e300, 1e300, 1.4142135623730952e300, bigfloat.Inexact},
		{stdmath.MaxFloat64, stdmath.MaxFloat64, stdmath.Inf(1), bigfloat.Overflow | bigfloat.Inexact},
		{stdmath.Inf(-1), stdmath.NaN(), stdmath.Inf(1), bigfloat.Ok},
		{stdmath.NaN(), 1, stdmath.NaN(), bigfloat.Ok},
	} {
		var z bigfloat.Float
		s := math.Hypot(&z, o, bigfloat.NewFloat(test.x), bigfloat.NewFloat(test.y))
		f, _ := z.Float64(bigfloat.ToNearestEven)
		if stdmath.IsNaN(test.want) {
			assert.True(t, stdmath.IsNaN(f))
		} else {
			assert.Equal(t, test.want, f, "hypot(%g, %g)", test.x, test.y)
		}
		assert.Equal(t, test.status, s, "hypot(%g, %g)", test.x, test.y)
	}

	// huge exponents
	x := parse(t, bigfloat.DefaultOptions, "0x3p2000000000")
	y := parse(t, bigfloat.DefaultOptions, "0x4p2000000000")
	var z bigfloat.Float
	assert.Equal(t, bigfloat.Ok, math.Hypot(&z, bigfloat.DefaultOptions, x, y))
	var w bigfloat.Float
	w.MulPow2(bigfloat.DefaultOptions, bigfloat.NewFloat(5), 2000000000)
	assert.Equal(t, bigfloat.Equal, z.Cmp(&w))
}

func TestHypotRandom(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	o := bigfloat.Float64Options(bigfloat.ToNearestEven)
	for i := 0; i < 2000; i++ {
		x := stdmath.Ldexp(r.Float64(), r.Intn(100)-50)
		y := stdmath.Ldexp(r.Float64(), r.Intn(100)-50)
		var z bigfloat.Float
		math.Hypot(&z, o, bigfloat.NewFloat(x), bigfloat.NewFloat(y))
		f, _ := z.Float64(bigfloat.ToNearestEven)
		// math.Hypot is not correctly rounded
		assert.InEpsilon(t, stdmath.Hypot(x, y), f, 1e-15)
	}
}

func TestProxies(t *testing.T) {
	o := bigfloat.DefaultOptions
	var z bigfloat.Float
	assert.Equal(t, bigfloat.Ok, math.Sqrt(&z, o, bigfloat.NewFloat(2.25)))
	assert.Equal(t, "1.5", z.String())
	assert.Equal(t, bigfloat.Ok, math.Pow(&z, o, bigfloat.NewFloat(2), bigfloat.NewFloat(-2)))
	assert.Equal(t, "0.25", z.String())
	assert.Equal(t, bigfloat.Ok, math.FMA(&z, o, bigfloat.NewFloat(2), bigfloat.NewFloat(3), bigfloat.NewFloat(1)))
	assert.Equal(t, "7", z.String())
	assert.Equal(t, bigfloat.Ok, math.Exp(&z, o, bigfloat.NewFloat(0)))
	assert.Equal(t, "1", z.String())
}

func BenchmarkLog(b *testing.B) {
	x := bigfloat.NewFloat(3.7)
	for _, p := range []uint{100, 1000, 10000} {
		o := bigfloat.Options{Prec: p}
		b.Run("agm/"+strconv.Itoa(int(p)), func(b *testing.B) {
			var z bigfloat.Float
			for i := 0; i < b.N; i++ {
				math.Log(&z, o, x)
			}
		})
		b.Run("taylor/"+strconv.Itoa(int(p)), func(b *testing.B) {
			var z bigfloat.Float
			for i := 0; i < b.N; i++ {
				z.Log(o, x)
			}
		})
	}
}

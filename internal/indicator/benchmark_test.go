package indicator

import (
	"math"
	"testing"
)

func sineSeries(n int) []float64 {
	series := make([]float64, n)
	for i := range series {
		series[i] = 100 + 10*math.Sin(float64(i)/10)
	}

	return series
}

func BenchmarkIndicators(b *testing.B) {
	series := sineSeries(10000)

	constructors := map[string]func() (Indicator, error){
		"MA":   func() (Indicator, error) { return NewMA(20) },
		"EMA":  func() (Indicator, error) { return NewEMA(20) },
		"RSI":  func() (Indicator, error) { return NewRSI(14) },
		"MACD": func() (Indicator, error) { return NewMACD(12, 26, 9) },
		"BOLL": func() (Indicator, error) { return NewBollingerBands(20, 2) },
	}

	for name, newIndicator := range constructors {
		b.Run(name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				ind, err := newIndicator()
				if err != nil {
					b.Fatal(err)
				}

				for _, v := range series {
					ind.Update(v)
				}
			}
		})
	}
}

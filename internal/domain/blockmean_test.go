package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlockMeans(t *testing.T) {
	t.Run("daily and weekly means over one week of 0..167", func(t *testing.T) {
		temps := make([]float64, HoursPerWeek)
		for i := range temps {
			temps[i] = float64(i)
		}

		daily := BlockMeans(temps, HoursPerDay)
		for i := 0; i < HoursPerDay; i++ {
			assert.Equal(t, 11.5, daily[i], "hour %d of day 0", i)
		}
		// Second day: mean of 24..47.
		for i := HoursPerDay; i < 2*HoursPerDay; i++ {
			assert.Equal(t, 35.5, daily[i], "hour %d of day 1", i)
		}

		weekly := BlockMeans(temps, HoursPerWeek)
		for i := range weekly {
			assert.Equal(t, 83.5, weekly[i], "hour %d", i)
		}
	})

	t.Run("every hour in a block shares one value", func(t *testing.T) {
		temps := []float64{1, 2, 3, 100, 200, 300}
		out := BlockMeans(temps, 3)
		assert.Equal(t, []float64{2, 2, 2, 200, 200, 200}, out)
	})

	t.Run("final short block averages only its own hours", func(t *testing.T) {
		temps := []float64{10, 20, 30, 40, 50}
		out := BlockMeans(temps, 3)
		assert.Equal(t, []float64{20, 20, 20, 45, 45}, out)
	})

	t.Run("NaN excluded from numerator and denominator", func(t *testing.T) {
		temps := []float64{10, math.NaN(), 20}
		out := BlockMeans(temps, 3)
		assert.Equal(t, 15.0, out[0])
		assert.Equal(t, 15.0, out[1])
		assert.Equal(t, 15.0, out[2])
	})

	t.Run("fully missing block yields NaN", func(t *testing.T) {
		temps := []float64{math.NaN(), math.NaN()}
		out := BlockMeans(temps, 2)
		assert.True(t, math.IsNaN(out[0]))
		assert.True(t, math.IsNaN(out[1]))
	})
}

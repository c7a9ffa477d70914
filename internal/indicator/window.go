package indicator

import "math"

// Window is a fixed capacity ring buffer that keeps the running sum and sum
// of squares of its contents.
type Window struct {
	values []float64
	next   int
	count  int
	sum    float64
	sumSq  float64
	pushes int
}

// NewWindow creates a window holding up to size values.
func NewWindow(size int) *Window {
	return &Window{values: make([]float64, size)}
}

// Push appends value, evicting the oldest one once the window is full.
// It returns the evicted value and whether an eviction happened.
func (w *Window) Push(value float64) (evicted float64, ok bool) {
	if w.count == len(w.values) {
		evicted = w.values[w.next]
		ok = true
		w.sum -= evicted
		w.sumSq -= evicted * evicted
	} else {
		w.count++
	}

	w.values[w.next] = value
	w.next = (w.next + 1) % len(w.values)
	w.sum += value
	w.sumSq += value * value

	// Resync the running sums once per full rotation to stop rounding drift.
	w.pushes++
	if w.pushes >= len(w.values) {
		w.pushes = 0
		w.resync()
	}

	return evicted, ok
}

func (w *Window) resync() {
	w.sum = 0
	w.sumSq = 0

	for i := 0; i < w.count; i++ {
		w.sum += w.values[i]
		w.sumSq += w.values[i] * w.values[i]
	}
}

// Len returns the number of values currently held.
func (w *Window) Len() int {
	return w.count
}

// Cap returns the window size.
func (w *Window) Cap() int {
	return len(w.values)
}

// Full reports whether the window holds Cap values.
func (w *Window) Full() bool {
	return w.count == len(w.values)
}

// Sum returns the sum of the held values.
func (w *Window) Sum() float64 {
	return w.sum
}

// Mean returns the arithmetic mean of the held values, 0 when empty.
func (w *Window) Mean() float64 {
	if w.count == 0 {
		return 0
	}

	return w.sum / float64(w.count)
}

// SampleVariance uses the N-1 denominator and is never negative.
func (w *Window) SampleVariance() float64 {
	if w.count < 2 {
		return 0
	}

	n := float64(w.count)

	variance := (w.sumSq - w.sum*w.sum/n) / (n - 1)
	if variance < 0 {
		return 0
	}

	return variance
}

// SampleStdDev returns the sample standard deviation of the held values.
func (w *Window) SampleStdDev() float64 {
	return math.Sqrt(w.SampleVariance())
}

// Oldest returns the value that the next Push on a full window evicts.
func (w *Window) Oldest() float64 {
	if w.count < len(w.values) {
		return w.values[0]
	}

	return w.values[w.next]
}

// Reset empties the window.
func (w *Window) Reset() {
	for i := range w.values {
		w.values[i] = 0
	}

	w.next = 0
	w.count = 0
	w.sum = 0
	w.sumSq = 0
	w.pushes = 0
}

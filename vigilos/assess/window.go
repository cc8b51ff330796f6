package assess

// WindowSize is the number of samples each sliding window retains.
const WindowSize = 5

// Window is a fixed-capacity FIFO of confidence samples.
//
// Pushing at capacity evicts the oldest sample. The zero value is an empty
// window and ready to use.
type Window struct {
	vals [WindowSize]float32
	head int
	n    int
}

// Push appends a sample, evicting the oldest when full.
func (w *Window) Push(v float32) {
	w.vals[(w.head+w.n)%WindowSize] = v
	if w.n < WindowSize {
		w.n++
		return
	}
	w.head = (w.head + 1) % WindowSize
}

// Len returns the number of samples currently held.
func (w *Window) Len() int { return w.n }

// Mean returns the average of the held samples, 0 for an empty window.
func (w *Window) Mean() float32 {
	if w.n == 0 {
		return 0
	}
	var sum float32
	for i := 0; i < w.n; i++ {
		sum += w.vals[(w.head+i)%WindowSize]
	}
	return sum / float32(w.n)
}

// Values returns a copy of the held samples, oldest first.
func (w *Window) Values() []float32 {
	out := make([]float32, w.n)
	for i := 0; i < w.n; i++ {
		out[i] = w.vals[(w.head+i)%WindowSize]
	}
	return out
}

// Mean averages a sample slice over its current length, 0 when empty.
func Mean(vals []float32) float32 {
	if len(vals) == 0 {
		return 0
	}
	var sum float32
	for _, v := range vals {
		sum += v
	}
	return sum / float32(len(vals))
}

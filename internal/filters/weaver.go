package filters

// WeaverFilterTaps is the number of unique (symmetric) a-tap coefficients.
const WeaverFilterTaps = 10

// WeaverFilterSize is the ring buffer length (taps + 1 center).
const WeaverFilterSize = WeaverFilterTaps + 1

// WeaverReverseMaxGain compensates for the fixed filter's passband gain so
// that unity input maps to unity output.
const WeaverReverseMaxGain = 1.0 / 5.279294303e+02

// weaverATaps are the symmetric binomial-weighted coefficients applied to
// the input ring buffer, from the outermost pair (1) to the center tap (252).
var weaverATaps = [6]float64{1, 10, 45, 120, 210, 252}

// weaverBTaps are the recursive coefficients applied to the output history,
// oldest output first.
var weaverBTaps = [WeaverFilterTaps]float64{
	-0.0000223708, 0.0002921703, -0.0040647116, 0.0147536451, -0.0945583553,
	0.1621107260, -0.6336867140, 0.5477895114, -1.4564581781, 0.5241910939,
}

// WeaverIIR is the fixed 10-tap Butterworth IIR used as the Weaver SSB
// modulator's audio delay/shaping filter ahead of the 38kHz mixer.
type WeaverIIR struct {
	inBuf  [WeaverFilterSize]float64
	outBuf [WeaverFilterSize]float64
	index  int

	// prevNumSamples tracks how many samples have been pushed so far for
	// this instance, replacing the original's file-scope static counter;
	// the in-phase and quadrature Weaver branches each get their own
	// WeaverIIR and thus their own count, alongside their separate ring
	// buffers.
	prevNumSamples int
}

// NewWeaverIIR returns a zeroed Weaver IIR filter instance.
func NewWeaverIIR() *WeaverIIR {
	return &WeaverIIR{}
}

// Apply pushes sample (pre-scaled by WeaverReverseMaxGain) through the ring
// buffers and returns the filtered output.
func (w *WeaverIIR) Apply(sample float64) float64 {
	sample *= WeaverReverseMaxGain

	w.index = (w.index + 1) % WeaverFilterSize
	w.inBuf[w.index] = sample

	var out float64

	// Center tap plus five symmetric pairs from the input ring buffer.
	center := w.index - WeaverFilterTaps/2
	for center < 0 {
		center += WeaverFilterSize
	}
	out += weaverATaps[5] * w.inBuf[center]

	for i := 1; i <= 5; i++ {
		prev := center - i
		for prev < 0 {
			prev += WeaverFilterSize
		}
		next := center + i
		for next >= WeaverFilterSize {
			next -= WeaverFilterSize
		}
		out += weaverATaps[5-i] * (w.inBuf[prev] + w.inBuf[next])
	}

	for i := 0; i < WeaverFilterTaps; i++ {
		idx := w.index - WeaverFilterTaps + i
		for idx < 0 {
			idx += WeaverFilterSize
		}
		out += weaverBTaps[i] * w.outBuf[idx]
	}

	w.outBuf[w.index] = out
	w.prevNumSamples++

	return out
}

package spectrum

// N is the number of hero wavelengths carried per path, per spec §3.
const N = 4

// Wavelengths holds N hero wavelengths and their sampling PDFs. A
// dispersive BSDF that terminates the secondary lanes sets Terminated,
// after which PDF[0] *= 1/N and PDF[1:] are zeroed (spec §3).
type Wavelengths struct {
	Lambda      [N]float64
	PDF         [N]float64
	Terminated  bool
}

// SampleUniform builds hero wavelengths via stratified wrap-around sampling
// of [LambdaMin, LambdaMax) from a single u in [0,1), per spec §3: the
// stratification keeps the N lanes spread across the visible range while
// remaining driven by one scalar sample.
func SampleUniform(u float64) Wavelengths {
	var w Wavelengths
	span := LambdaMax - LambdaMin
	w.Lambda[0] = LambdaMin + u*span
	for i := 1; i < N; i++ {
		lambda := w.Lambda[0] + span*float64(i)/float64(N)
		if lambda > LambdaMax {
			lambda -= span
		}
		w.Lambda[i] = lambda
	}
	pdf := 1 / span
	for i := range w.PDF {
		w.PDF[i] = pdf
	}
	return w
}

// Terminate zeroes out all but the hero (index 0) lane, as dispersive
// BSDFs do once they've committed to a single wavelength (spec §3, §4.6).
func (w *Wavelengths) Terminate() {
	if w.Terminated {
		return
	}
	w.PDF[0] *= 1.0 / float64(N)
	for i := 1; i < N; i++ {
		w.PDF[i] = 0
	}
	w.Terminated = true
}

// SecondaryTerminated reports whether Terminate has been called.
func (w Wavelengths) SecondaryTerminated() bool { return w.Terminated }

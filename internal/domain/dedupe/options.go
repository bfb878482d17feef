package dedupe

// defaultMaxSize covers several full events at 25 Hz.
const defaultMaxSize = 10_000

// Option applies a configuration option to the deduper.
type Option func(*windowDeduper)

// WithMaxSize sets the number of keys to remember.
// If maxSize > 0: bounded mode, oldest keys are forgotten first.
// If maxSize <= 0: unbounded mode.
func WithMaxSize(maxSize int) Option {
	return func(d *windowDeduper) {
		d.maxSize = maxSize
	}
}

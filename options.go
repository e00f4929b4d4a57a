package statestore

// Option configures an Archive.
type Option func(*Archive)

// WithLogger sets the logger used for load/store diagnostics.
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(a *Archive) {
		if l == nil {
			l = NoopLogger()
		}
		a.logger = l
	}
}

// WithMetadataSize reserves n auxiliary bytes per stored state.
//
// Archives written with n > 0 record n in the header's metadata size field
// and append each state's metadata after its serialized bytes. Archives
// written with the default of 0 still read back metadata faithfully when a
// header declares it; the size is adopted from the loaded header.
func WithMetadataSize(n int) Option {
	return func(a *Archive) {
		if n < 0 {
			n = 0
		}
		a.metaSize = n
	}
}

// WithSamplerSeed fixes the seed used for precomputed samplers allocated
// from this archive. Each allocated sampler draws from its own stream
// derived from the seed, so allocation order is reproducible.
func WithSamplerSeed(seed int64) Option {
	return func(a *Archive) {
		a.seed = seed
	}
}

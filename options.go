package ink

// ContextOption configures a Context during creation.
//
// Example:
//
//	dc := ink.NewContext(target)
//	dc := ink.NewContext(target, ink.WithTolerance(0.01))
type ContextOption func(*contextOptions)

// contextOptions holds optional configuration for Context creation.
type contextOptions struct {
	tolerance float64
	antialias Antialias
}

// defaultContextOptions returns the default context options.
func defaultContextOptions() contextOptions {
	return contextOptions{
		tolerance: defaultTolerance,
		antialias: AntialiasDefault,
	}
}

// WithTolerance sets the initial curve-flattening tolerance, in device
// units. Values below the device resolution are clamped up.
func WithTolerance(t float64) ContextOption {
	return func(o *contextOptions) {
		o.tolerance = t
	}
}

// WithAntialias sets the initial antialiasing mode.
func WithAntialias(a Antialias) ContextOption {
	return func(o *contextOptions) {
		o.antialias = a
	}
}

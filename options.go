package hydrate

import "time"

// Option configures a Hydrator.
type Option func(*Hydrator)

// WithLogger sets the collaborator that receives field-level warnings.
// A nil logger is ignored.
func WithLogger(l Logger) Option {
	return func(h *Hydrator) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithTimeLayout sets the layout used to parse textual timestamps.
// The default is DefaultTimeLayout.
func WithTimeLayout(layout string) Option {
	return func(h *Hydrator) {
		if layout != "" {
			h.coercer.layout = layout
		}
	}
}

// WithLocation sets the location textual timestamps are interpreted in.
// The default is UTC.
func WithLocation(loc *time.Location) Option {
	return func(h *Hydrator) {
		if loc != nil {
			h.coercer.loc = loc
		}
	}
}

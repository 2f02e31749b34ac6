package hrtree

const (
	// DefaultMaxElements is the default number of entries per cell and
	// children per branch.
	DefaultMaxElements = 16

	// DefaultMaxHilbertOrder is the default maximum leaf order. It is
	// lowered for high dimensional frames so that D*order stays within
	// the supported curve size.
	DefaultMaxHilbertOrder = 3
)

type options struct {
	maxElements int
	maxOrder    int
	maxOrderSet bool
	calculator  Calculator
	logger      *Logger
}

// Option configures a Tree.
type Option func(*options)

// WithMaxElements sets the maximum number of entries per cell, which is also
// the branching factor of interior nodes. Must be at least 2.
func WithMaxElements(n int) Option {
	return func(o *options) {
		o.maxElements = n
	}
}

// WithMaxHilbertOrder sets how far a leaf may refine its curve before it is
// physically split. Must be between 1 and 16, with dimension*order <= 20.
func WithMaxHilbertOrder(order int) Option {
	return func(o *options) {
		o.maxOrder = order
		o.maxOrderSet = true
	}
}

// WithCalculator injects the cost functions used for subtree choice and
// splits.
func WithCalculator(c Calculator) Option {
	return func(o *options) {
		o.calculator = c
	}
}

// WithLogger configures debug logging of structural changes.
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

func defaultOptions(dim int) options {
	order := DefaultMaxHilbertOrder
	if dim > 0 {
		order = max(1, min(order, maxCurveBits/dim))
	}
	return options{
		maxElements: DefaultMaxElements,
		maxOrder:    order,
		calculator:  DefaultCalculator{},
		logger:      NoopLogger(),
	}
}

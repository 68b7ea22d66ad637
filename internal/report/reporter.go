package report

import (
	"fmt"
	"sync"
)

// Category distinguishes the four error taxonomies of spec.md §7.
type Category int

const (
	// GeneratorError: the AST was valid but cannot be lowered. Generation
	// continues with the offending site skipped.
	GeneratorError Category = iota
	// InvalidSignature: the signature resolver rejected a reference string
	// synthesized by the generator. Indicates a generator bug; halts the
	// current module's generation.
	InvalidSignature
	// BackendError: an I/O failure in the text renderer or binary builder.
	// That module's output is abandoned.
	BackendError
	// DriverError: a project-level failure (missing output directory,
	// unreadable embedded library, missing root modules). Halts the run.
	DriverError
)

// Diagnostic is a single reported error or warning.
type Diagnostic struct {
	Category Category
	Module   string
	Span     *Span // nil if the diagnostic has no associated source text
	Message  string
	IsError  bool
}

// Collector gathers diagnostics for one compilation run. It is safe for
// concurrent use; each module's generator reports into the same collector.
type Collector struct {
	mu    sync.Mutex
	diags []Diagnostic
}

// NewCollector returns a fresh, empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Error posts an error-level diagnostic.
func (c *Collector) Error(category Category, module string, span *Span, format string, args ...any) {
	c.post(category, module, span, true, format, args...)
}

// Warn posts a warning-level diagnostic.
func (c *Collector) Warn(category Category, module string, span *Span, format string, args ...any) {
	c.post(category, module, span, false, format, args...)
}

func (c *Collector) post(category Category, module string, span *Span, isError bool, format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.diags = append(c.diags, Diagnostic{
		Category: category,
		Module:   module,
		Span:     span,
		Message:  fmt.Sprintf(format, args...),
		IsError:  isError,
	})
}

// HadErrors reports whether any error-level diagnostic has been posted.
func (c *Collector) HadErrors() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, d := range c.diags {
		if d.IsError {
			return true
		}
	}
	return false
}

// ModuleHadErrors reports whether any error-level diagnostic was posted for
// the named module specifically -- used by the code generator to report
// whether that module translated without errors.
func (c *Collector) ModuleHadErrors(module string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, d := range c.diags {
		if d.IsError && d.Module == module {
			return true
		}
	}
	return false
}

// ErrorCount returns the total number of error-level diagnostics posted.
func (c *Collector) ErrorCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, d := range c.diags {
		if d.IsError {
			n++
		}
	}
	return n
}

// All returns a snapshot of every diagnostic posted so far, in post order.
func (c *Collector) All() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Diagnostic, len(c.diags))
	copy(out, c.diags)
	return out
}

package mockhttp

// Matcher is an opaque predicate over a Request. Implementers must not
// perform blocking I/O: matchers may be evaluated on every dispatched
// request.
type Matcher interface {
	Matches(r *Request) bool
	// Describe renders a short, human-readable diagnostic of what this
	// matcher checks for, used in verification reports.
	Describe() string
}

// MatcherFunc adapts a plain func(*Request) bool into a Matcher, so a
// closure of the right shape can be registered directly.
type MatcherFunc func(r *Request) bool

// Matches implements Matcher.
func (f MatcherFunc) Matches(r *Request) bool { return f(r) }

// Describe implements Matcher.
func (f MatcherFunc) Describe() string { return "custom matcher" }

// namedMatcherFunc is MatcherFunc with a caller-supplied description, used
// internally where a closure needs a meaningful diagnostic.
type namedMatcherFunc struct {
	fn   func(r *Request) bool
	desc string
}

func (n namedMatcherFunc) Matches(r *Request) bool { return n.fn(r) }
func (n namedMatcherFunc) Describe() string        { return n.desc }

// NewMatcher builds a Matcher from a closure and a diagnostic description.
func NewMatcher(desc string, fn func(r *Request) bool) Matcher {
	return namedMatcherFunc{fn: fn, desc: desc}
}

// And conjoins ms into a single Matcher, short-circuiting on the first
// false, evaluated in declaration order. It is useful for composing a
// reusable sub-matcher out of several smaller ones before passing it to
// MockBuilder.Given.
func And(ms ...Matcher) Matcher {
	return andMatcher{matchers: append([]Matcher(nil), ms...)}
}

// andMatcher conjoins a list of matchers, short-circuiting on the first
// false, evaluated in declaration order.
type andMatcher struct {
	matchers []Matcher
}

func (a andMatcher) Matches(r *Request) bool {
	for _, m := range a.matchers {
		if !m.Matches(r) {
			return false
		}
	}
	return true
}

func (a andMatcher) Describe() string {
	if len(a.matchers) == 0 {
		return "AND()"
	}
	desc := "AND("
	for i, m := range a.matchers {
		if i > 0 {
			desc += ", "
		}
		desc += m.Describe()
	}
	return desc + ")"
}

package listener

// Wildcard is the text form of the filter that matches every name.
const Wildcard = "*"

// Filter selects the property names a subscription is notified for.
// The zero Filter matches nothing and is rejected by AddListener.
type Filter struct {
	name string
	all  bool
}

// Name matches exactly one property name, compared byte-wise.
func Name(name string) Filter {
	return Filter{name: name}
}

// Any matches every property name, on set and on unset.
func Any() Filter {
	return Filter{all: true}
}

// ParseFilter maps Wildcard to Any and everything else to Name.
func ParseFilter(s string) Filter {
	if s == Wildcard {
		return Any()
	}
	return Name(s)
}

// IsAny reports whether f is the broadcast filter.
func (f Filter) IsAny() bool {
	return f.all
}

// Target returns the name matched by a per-name filter, "" for Any.
func (f Filter) Target() string {
	return f.name
}

// Matches reports whether a change to name is delivered under f.
func (f Filter) Matches(name string) bool {
	return f.all || f.name == name
}

func (f Filter) String() string {
	if f.all {
		return Wildcard
	}
	return f.name
}

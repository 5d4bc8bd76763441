package person

import "time"

// AttributeSet is the PersonAttributeSet of spec.md §3: an unordered
// multiset of Attribute. It is represented as a slice because duplicate
// attributes (same type, different temporal slice) are meaningful and
// common — see the bi-temporal time-travel scenario in spec.md §8.
type AttributeSet []Attribute

// Filter returns the subset of a matching predicate pred, preserving order.
func (a AttributeSet) Filter(pred func(Attribute) bool) AttributeSet {
	out := make(AttributeSet, 0, len(a))
	for _, attr := range a {
		if pred(attr) {
			out = append(out, attr)
		}
	}
	return out
}

// ValidOn returns the attributes valid on date d.
func (a AttributeSet) ValidOn(d time.Time) AttributeSet {
	return a.Filter(func(attr Attribute) bool { return attr.ValidOn(d) })
}

// CurrentlyValid is ValidOn(now).
func (a AttributeSet) CurrentlyValid(now time.Time) AttributeSet {
	return a.ValidOn(now)
}

// OfCategory returns the attributes tagged with the given category.
func (a AttributeSet) OfCategory(c AttributeCategory) AttributeSet {
	return a.Filter(func(attr Attribute) bool { return attr.Type.Category == c })
}

// OfType returns the attributes of an exact AttributeType.
func (a AttributeSet) OfType(t AttributeType) AttributeSet {
	return a.Filter(func(attr Attribute) bool { return attr.Type == t })
}

// Union is the monoidal ∪ over attribute sets: simple concatenation, since
// the set is an unordered multiset and duplicates are meaningful.
func (a AttributeSet) Union(other AttributeSet) AttributeSet {
	out := make(AttributeSet, 0, len(a)+len(other))
	out = append(out, a...)
	out = append(out, other...)
	return out
}

// With returns a copy of a with attr appended.
func (a AttributeSet) With(attr Attribute) AttributeSet {
	out := make(AttributeSet, 0, len(a)+1)
	out = append(out, a...)
	out = append(out, attr)
	return out
}

// Without returns a copy of a with every attribute satisfying pred removed.
func (a AttributeSet) Without(pred func(Attribute) bool) AttributeSet {
	return a.Filter(func(attr Attribute) bool { return !pred(attr) })
}

// Replace returns a copy of a with every attribute satisfying pred mapped
// through f.
func (a AttributeSet) Replace(pred func(Attribute) bool, f func(Attribute) Attribute) AttributeSet {
	out := make(AttributeSet, 0, len(a))
	for _, attr := range a {
		if pred(attr) {
			out = append(out, f(attr))
		} else {
			out = append(out, attr)
		}
	}
	return out
}

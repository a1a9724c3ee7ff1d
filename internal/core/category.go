package core

// Category identifies a fixed expense bucket. Unrecognized values are
// preserved on storage but fold into Other for aggregation.
type Category string

const (
	Food          Category = "food"
	Transport     Category = "transport"
	Shopping      Category = "shopping"
	Bills         Category = "bills"
	Entertainment Category = "entertainment"
	Health        Category = "health"
	Education     Category = "education"
	Other         Category = "other"
)

// Categories lists every known category in display order.
func Categories() []Category {
	return []Category{Food, Transport, Shopping, Bills, Entertainment, Health, Education, Other}
}

// String implements fmt.Stringer
func (c Category) String() string {
	return string(c)
}

// IsValid returns true if the category is one of the known set.
func (c Category) IsValid() bool {
	switch c {
	case Food, Transport, Shopping, Bills, Entertainment, Health, Education, Other:
		return true
	default:
		return false
	}
}

// Normalize folds unknown or missing categories into Other.
func (c Category) Normalize() Category {
	if c.IsValid() {
		return c
	}
	return Other
}

// Label returns the display name for a category.
func (c Category) Label() string {
	switch c.Normalize() {
	case Food:
		return "Food & Dining"
	case Transport:
		return "Transport"
	case Shopping:
		return "Shopping"
	case Bills:
		return "Bills & Utilities"
	case Entertainment:
		return "Entertainment"
	case Health:
		return "Health & Fitness"
	case Education:
		return "Education"
	default:
		return "Other"
	}
}

package core

import (
	"errors"
	"strings"
	"time"
)

type (
	// Expense is a single spending record. Date is the caller-supplied
	// ISO-8601 timestamp of when the expense occurred; CreatedAt is
	// assigned by the storage engine and is independent of Date.
	Expense struct {
		ID        int64     `json:"id"`
		Name      string    `json:"name"`
		Price     float64   `json:"price"`
		Category  Category  `json:"category"`
		Date      string    `json:"date"`
		CreatedAt time.Time `json:"created_at"`
	}

	// Settings is the single logical record holding income and budget.
	// Budget 0 means "no budget set".
	Settings struct {
		Income float64 `json:"income"`
		Budget float64 `json:"budget"`
	}
)

var (
	ErrEmptyName       = errors.New("empty name")
	ErrInvalidPrice    = errors.New("invalid price")
	ErrMissingCategory = errors.New("missing category")
)

func (e Expense) Validate() error {
	if len(strings.TrimSpace(e.Name)) == 0 {
		return ErrEmptyName
	}
	if len(e.Name) > 200 {
		return errors.New("name too long (max 200 characters)")
	}
	if e.Price < 0 || e.Price != e.Price {
		return ErrInvalidPrice
	}
	if strings.TrimSpace(string(e.Category)) == "" {
		return ErrMissingCategory
	}
	return nil
}

func (s Settings) Validate() error {
	if s.Income < 0 || s.Income != s.Income {
		return errors.New("invalid income: must be a non-negative number")
	}
	if s.Budget < 0 || s.Budget != s.Budget {
		return errors.New("invalid budget: must be a non-negative number")
	}
	return nil
}

// ParseDate parses an expense date string. Stored dates are RFC 3339,
// but date-only input from clients is accepted too.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty date")
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("unparseable date: " + s)
}

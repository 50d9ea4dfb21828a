package model

import "github.com/guregu/null/v5"

// Snapshot is the raw point-in-time quote returned by a provider, keyed by
// the provider's field names (currentPrice, previousClose, dayLow, ...).
// A field that the provider omitted or returned empty is simply absent.
type Snapshot struct {
	Numbers map[string]float64
	Strings map[string]string
}

// NewSnapshot returns an empty snapshot ready for population.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Numbers: make(map[string]float64),
		Strings: make(map[string]string),
	}
}

// Empty reports whether the provider returned no usable fields at all.
func (s *Snapshot) Empty() bool {
	return s == nil || (len(s.Numbers) == 0 && len(s.Strings) == 0)
}

// SetNumber records a numeric field. The first value set for a name wins.
func (s *Snapshot) SetNumber(name string, v float64) {
	if _, ok := s.Numbers[name]; !ok {
		s.Numbers[name] = v
	}
}

// SetString records a text field. Empty strings are ignored and the first
// value set for a name wins.
func (s *Snapshot) SetString(name, v string) {
	if v == "" {
		return
	}
	if _, ok := s.Strings[name]; !ok {
		s.Strings[name] = v
	}
}

// Number looks up a numeric field as a Present/Absent value.
func (s *Snapshot) Number(name string) null.Float {
	if s == nil {
		return null.Float{}
	}
	v, ok := s.Numbers[name]
	if !ok {
		return null.Float{}
	}
	return null.FloatFrom(v)
}

// String looks up a text field.
func (s *Snapshot) String(name string) (string, bool) {
	if s == nil {
		return "", false
	}
	v, ok := s.Strings[name]
	return v, ok
}

package cache

import "time"

// Slot holds one cached value and its expiry.
//
// Slot is not safe for concurrent use; the owner serializes access.
type Slot[T any] struct {
	value     T
	expiresAt time.Time
	filled    bool
}

// Get returns the value if one is stored and now is strictly before its
// expiry. Returns (zero, false) on miss or expiry.
func (s *Slot[T]) Get(now time.Time) (T, bool) {
	if !s.filled || !now.Before(s.expiresAt) {
		var zero T
		return zero, false
	}
	return s.value, true
}

// Set stores a value that stays eligible until expiresAt.
func (s *Slot[T]) Set(value T, expiresAt time.Time) {
	s.value = value
	s.expiresAt = expiresAt
	s.filled = true
}

// Last returns the most recently stored value regardless of expiry.
func (s *Slot[T]) Last() (T, bool) {
	return s.value, s.filled
}

// ExpiresAt returns the expiry of the stored value, zero if empty.
func (s *Slot[T]) ExpiresAt() time.Time {
	return s.expiresAt
}

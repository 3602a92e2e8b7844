package memory

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// LoginAttemptStore tracks failed login attempts per username so the auth
// service can lock out brute-force attempts. Entries expire on their own,
// which is what resets the counter after the lockout window.
type LoginAttemptStore struct {
	cache  *cache.Cache
	window time.Duration
}

func NewLoginAttemptStore(window time.Duration) *LoginAttemptStore {
	c := cache.New(window, 10*time.Minute)
	return &LoginAttemptStore{
		cache:  c,
		window: window,
	}
}

// RecordFailure bumps the counter for the username and returns the new total.
func (s *LoginAttemptStore) RecordFailure(username string) int {
	if x, found := s.cache.Get(username); found {
		count := x.(int) + 1
		s.cache.Set(username, count, cache.DefaultExpiration)
		return count
	}
	s.cache.Set(username, 1, cache.DefaultExpiration)
	return 1
}

func (s *LoginAttemptStore) Failures(username string) int {
	if x, found := s.cache.Get(username); found {
		return x.(int)
	}
	return 0
}

// Reset clears the counter after a successful login.
func (s *LoginAttemptStore) Reset(username string) {
	s.cache.Delete(username)
}

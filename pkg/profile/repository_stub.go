package profile

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// RepositoryStub keeps profiles in memory. It backs the service when no database is
// configured and is used by tests.
type RepositoryStub struct {
	mu       sync.Mutex
	nextId   int
	profiles map[string]Profile
	now      func() time.Time
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{
		profiles: make(map[string]Profile),
		now:      time.Now,
	}
}

func (s *RepositoryStub) Store(ctx context.Context, profile Profile) (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.nameTaken(profile.Name, profile.Uid) {
		return Profile{}, fmt.Errorf("%w: %s", ErrProfileNameTaken, profile.Name)
	}
	s.nextId++
	profile.Id = s.nextId
	profile.CreatedAt = s.now()
	profile.UpdatedAt = profile.CreatedAt
	s.profiles[profile.Uid] = profile
	return profile, nil
}

func (s *RepositoryStub) GetByUid(ctx context.Context, uid string) (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, ok := s.profiles[uid]
	if !ok {
		return Profile{}, ErrProfileNotFound
	}
	return profile, nil
}

func (s *RepositoryStub) GetByName(ctx context.Context, name string) (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, profile := range s.profiles {
		if profile.Name == name {
			return profile, nil
		}
	}
	return Profile{}, ErrProfileNotFound
}

func (s *RepositoryStub) List(ctx context.Context) ([]Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profiles := make([]Profile, 0, len(s.profiles))
	for _, profile := range s.profiles {
		profiles = append(profiles, profile)
	}
	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].Name < profiles[j].Name
	})
	return profiles, nil
}

func (s *RepositoryStub) Update(ctx context.Context, profile Profile) (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.profiles[profile.Uid]
	if !ok {
		return Profile{}, ErrProfileNotFound
	}
	if s.nameTaken(profile.Name, profile.Uid) {
		return Profile{}, fmt.Errorf("%w: %s", ErrProfileNameTaken, profile.Name)
	}
	profile.Id = existing.Id
	profile.CreatedAt = existing.CreatedAt
	profile.UpdatedAt = s.now()
	s.profiles[profile.Uid] = profile
	return profile, nil
}

func (s *RepositoryStub) Delete(ctx context.Context, uid string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[uid]; !ok {
		return false, nil
	}
	delete(s.profiles, uid)
	return true, nil
}

// Cleanup removes all stored profiles.
func (s *RepositoryStub) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextId = 0
	s.profiles = make(map[string]Profile)
}

func (s *RepositoryStub) nameTaken(name, uid string) bool {
	for _, other := range s.profiles {
		if other.Name == name && other.Uid != uid {
			return true
		}
	}
	return false
}

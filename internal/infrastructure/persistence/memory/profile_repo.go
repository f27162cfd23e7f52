package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/seal-hub/seal-progress-hub/internal/domain/shared"
	"github.com/seal-hub/seal-progress-hub/internal/domain/user"
)

// ProfileRepository implements user.Repository in memory.
type ProfileRepository struct {
	mu       sync.Mutex
	byID     map[shared.UserID]user.Profile
	byName   map[shared.Username]shared.UserID
	creation []shared.UserID
}

// NewProfileRepository creates an empty ProfileRepository.
func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{
		byID:   make(map[shared.UserID]user.Profile),
		byName: make(map[shared.Username]shared.UserID),
	}
}

// Create stores a new profile.
func (r *ProfileRepository) Create(_ context.Context, profile *user.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byName[profile.Username]; ok {
		return shared.ErrUsernameTaken
	}
	r.byID[profile.ID] = *profile
	r.byName[profile.Username] = profile.ID
	r.creation = append(r.creation, profile.ID)
	return nil
}

// ByID returns the profile with the given ID.
func (r *ProfileRepository) ByID(_ context.Context, id shared.UserID) (*user.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile, ok := r.byID[id]
	if !ok {
		return nil, shared.ErrProfileNotFound
	}
	return &profile, nil
}

// ByUsername returns the profile with the given username, case-sensitively.
func (r *ProfileRepository) ByUsername(_ context.Context, username shared.Username) (*user.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byName[username]
	if !ok {
		return nil, shared.ErrProfileNotFound
	}
	profile := r.byID[id]
	return &profile, nil
}

// ListAll returns every profile in registration order.
func (r *ProfileRepository) ListAll(_ context.Context) ([]user.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	profiles := make([]user.Profile, 0, len(r.creation))
	for _, id := range r.creation {
		profiles = append(profiles, r.byID[id])
	}
	sort.SliceStable(profiles, func(i, j int) bool {
		return profiles[i].CreatedAt.Before(profiles[j].CreatedAt)
	})
	return profiles, nil
}

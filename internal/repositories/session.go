package repositories

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"kayaai/career-navigator/internal/models"
)

type SessionRepository interface {
	Create() (*models.Session, error)
	FindByID(id uuid.UUID) (*models.Session, error)
	Update(id uuid.UUID, fn func(s *models.Session) error) (*models.Session, error)
	Delete(id uuid.UUID) error
	Count() int
}

// sessionRepository keeps sessions in process memory only.
type sessionRepository struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*models.Session
}

func NewSessionRepository() SessionRepository {
	return &sessionRepository{
		sessions: make(map[uuid.UUID]*models.Session),
	}
}

// Create implements SessionRepository.
func (r *sessionRepository) Create() (*models.Session, error) {
	s := models.NewSession()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[s.ID]; exists {
		return nil, fmt.Errorf("failed to create session: duplicate id %s", s.ID)
	}
	r.sessions[s.ID] = s

	return s.Clone(), nil
}

// FindByID implements SessionRepository.
func (r *sessionRepository) FindByID(id uuid.UUID) (*models.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrSessionNotFound, id)
	}

	return s.Clone(), nil
}

// Update applies fn to a copy of the session and stores the copy only when fn
// succeeds, so a rejected transition leaves the stored state untouched.
func (r *sessionRepository) Update(id uuid.UUID, fn func(s *models.Session) error) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrSessionNotFound, id)
	}

	next := current.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	r.sessions[id] = next

	return next.Clone(), nil
}

// Delete implements SessionRepository.
func (r *sessionRepository) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", models.ErrSessionNotFound, id)
	}
	delete(r.sessions, id)

	return nil
}

// Count implements SessionRepository.
func (r *sessionRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

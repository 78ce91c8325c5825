package quiz

import (
	"sync"
	"time"

	"github.com/wichananm65/skincare-storefront/internal/product"
)

// Catalog resolves recommended slugs to products.
type Catalog interface {
	BySlugs(slugs []string) []product.Product
}

// Recommendation is a Result with its products resolved from the catalog.
type Recommendation struct {
	Result
	Products []product.Product `json:"products"`
}

// Service keeps one engine per session.
type Service struct {
	catalog Catalog
	now     func() time.Time

	mu      sync.Mutex
	engines map[string]*sessionEngine
}

type sessionEngine struct {
	engine   *Engine
	lastSeen time.Time
}

func NewService(catalog Catalog) *Service {
	return &Service{catalog: catalog, now: time.Now, engines: make(map[string]*sessionEngine)}
}

func (s *Service) Questions() []Question {
	return Questions
}

// with runs fn on the engine of sessionID while holding the service lock.
func (s *Service) with(sessionID string, fn func(*Engine) error) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.engines[sessionID]
	if !ok {
		entry = &sessionEngine{engine: NewEngine(Questions)}
		s.engines[sessionID] = entry
	}
	entry.lastSeen = s.now()
	e := entry.engine
	if err := fn(e); err != nil {
		return e.State(), err
	}
	return e.State(), nil
}

func (s *Service) State(sessionID string) State {
	st, _ := s.with(sessionID, func(*Engine) error { return nil })
	return st
}

func (s *Service) Answer(sessionID string, questionID int, optionID string) (State, error) {
	return s.with(sessionID, func(e *Engine) error { return e.Answer(questionID, optionID) })
}

func (s *Service) Advance(sessionID string) (State, error) {
	return s.with(sessionID, func(e *Engine) error { return e.Advance() })
}

func (s *Service) Retreat(sessionID string) State {
	st, _ := s.with(sessionID, func(e *Engine) error { e.Retreat(); return nil })
	return st
}

func (s *Service) Restart(sessionID string) State {
	st, _ := s.with(sessionID, func(e *Engine) error { e.Restart(); return nil })
	return st
}

func (s *Service) Result(sessionID string) (Recommendation, error) {
	var res Result
	_, err := s.with(sessionID, func(e *Engine) error {
		var err error
		res, err = e.Result()
		return err
	})
	if err != nil {
		return Recommendation{}, err
	}
	return Recommendation{Result: res, Products: s.catalog.BySlugs(res.RecommendedProducts)}, nil
}

// EvictIdle drops the quiz progress of sessions not seen for longer than
// idle and reports how many were dropped.
func (s *Service) EvictIdle(idle time.Duration) int {
	cutoff := s.now().Add(-idle)
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, entry := range s.engines {
		if entry.lastSeen.Before(cutoff) {
			delete(s.engines, id)
			n++
		}
	}
	return n
}

// Len is the number of sessions with quiz progress in memory.
func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.engines)
}

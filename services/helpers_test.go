package services

import (
	"context"
	"sync"

	"profile_finder/models"
)

type recordingNotifier struct {
	mu      sync.Mutex
	notices []models.Notice
}

func (r *recordingNotifier) Notify(n models.Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

func (r *recordingNotifier) all() []models.Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Notice(nil), r.notices...)
}

// stubSearcher 可阻塞的假搜索，block关闭或ctx取消后返回
type stubSearcher struct {
	mu      sync.Mutex
	calls   []models.SearchCriteria
	results []models.ProfileResult
	err     error
	block   chan struct{}
}

func (s *stubSearcher) Search(ctx context.Context, c models.SearchCriteria) ([]models.ProfileResult, error) {
	s.mu.Lock()
	s.calls = append(s.calls, c)
	block := s.block
	s.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.results, s.err
}

func (s *stubSearcher) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func threeProfiles() []models.ProfileResult {
	return []models.ProfileResult{
		{Name: "Ada Lovelace", JobTitle: "Engineer", Company: "Analytical", LinkedinURL: "https://linkedin.com/in/ada"},
		{Name: "Grace Hopper", JobTitle: "Admiral", Company: "Navy", LinkedinURL: "https://linkedin.com/in/grace", LinkedinFollowers: "1200"},
		{Name: "Alan Turing", JobTitle: "Mathematician", Company: "Bletchley", LinkedinURL: "https://linkedin.com/in/alan"},
	}
}

var validCriteria = models.SearchCriteria{JobTitle: "Engineer", Location: "NYC", Industry: "Tech"}

package services

import (
	"sort"

	"go.uber.org/zap"

	"github.com/bibliotek/catalog/internal/database/authors"
	"github.com/bibliotek/catalog/internal/database/books"
	"github.com/bibliotek/catalog/internal/database/subjects"
	"github.com/bibliotek/catalog/internal/entities"
	"github.com/bibliotek/catalog/internal/logging"
)

const (
	recentBooksLimit = 5
	topSubjectsLimit = 10
)

// DashboardService composes the landing-page aggregates from the three
// repositories. It carries no state of its own.
type DashboardService struct {
	books    *books.Repository
	authors  *authors.Repository
	subjects *subjects.Repository
	log      logging.Logger
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(b *books.Repository, a *authors.Repository, sub *subjects.Repository, log logging.Logger) *DashboardService {
	return &DashboardService{books: b, authors: a, subjects: sub, log: log}
}

// DashboardSummary is the aggregate payload the dashboard renders.
type DashboardSummary struct {
	Books       int64                           `json:"bookCount"`
	Authors     int64                           `json:"authorCount"`
	Subjects    int64                           `json:"subjectCount"`
	RecentBooks []entities.Book                 `json:"recentBooks"`
	TopSubjects []subjects.SubjectWithBookCount `json:"topSubjects"`
}

// GetSummary returns entity counts, the five most recent books (authors
// loaded) and the ten subjects with the most books.
func (s *DashboardService) GetSummary() (*DashboardSummary, error) {
	s.log.Info("building dashboard summary")

	bookCount, err := s.books.Count()
	if err != nil {
		s.log.Error("failed to count books", zap.Error(err))
		return nil, err
	}
	authorCount, err := s.authors.Count()
	if err != nil {
		s.log.Error("failed to count authors", zap.Error(err))
		return nil, err
	}
	subjectCount, err := s.subjects.Count()
	if err != nil {
		s.log.Error("failed to count subjects", zap.Error(err))
		return nil, err
	}

	recent, err := s.recentBooks(recentBooksLimit)
	if err != nil {
		s.log.Error("failed to fetch recent books", zap.Error(err))
		return nil, err
	}

	top, err := s.subjects.TopByBookCount(topSubjectsLimit)
	if err != nil {
		s.log.Error("failed to fetch top subjects", zap.Error(err))
		return nil, err
	}

	return &DashboardSummary{
		Books:       bookCount,
		Authors:     authorCount,
		Subjects:    subjectCount,
		RecentBooks: recent,
		TopSubjects: top,
	}, nil
}

func (s *DashboardService) recentBooks(limit int) ([]entities.Book, error) {
	items, err := s.books.GetAll()
	if err != nil {
		return nil, err
	}
	// Re-sort before slicing; the fetch order tracks relation preloading,
	// not a guaranteed id order.
	sort.Slice(items, func(i, j int) bool { return items[i].ID > items[j].ID })
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

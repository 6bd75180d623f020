package services

import (
	"go.uber.org/zap"

	"github.com/bibliotek/catalog/internal/database"
	"github.com/bibliotek/catalog/internal/database/subjects"
	"github.com/bibliotek/catalog/internal/dto"
	"github.com/bibliotek/catalog/internal/entities"
	"github.com/bibliotek/catalog/internal/logging"
)

// SubjectService orchestrates subject operations.
type SubjectService struct {
	repo *subjects.Repository
	log  logging.Logger
}

// NewSubjectService creates a new subject service.
func NewSubjectService(repo *subjects.Repository, log logging.Logger) *SubjectService {
	return &SubjectService{repo: repo, log: log}
}

// GetAll returns every subject.
func (s *SubjectService) GetAll() ([]entities.Subject, error) {
	s.log.Info("fetching all subjects")
	items, err := s.repo.GetAll()
	if err != nil {
		s.log.Error("failed to fetch all subjects", zap.Error(err))
		return nil, err
	}
	return items, nil
}

// List returns one page of subjects matching filters.
func (s *SubjectService) List(filters map[string]string, page, perPage int) (*database.Page[entities.Subject], error) {
	s.log.Info("fetching paginated subjects",
		zap.Any("filters", filters), zap.Int("page", page), zap.Int("per_page", perPage))
	result, err := s.repo.Paginate(filters, page, perPage)
	if err != nil {
		s.log.Error("failed to fetch paginated subjects", zap.Error(err), zap.Any("filters", filters))
		return nil, err
	}
	return result, nil
}

// Count returns the number of subjects.
func (s *SubjectService) Count() (int64, error) {
	return s.repo.Count()
}

// GetOne fetches a subject by id; a miss is a NotFoundError.
func (s *SubjectService) GetOne(id uint) (*entities.Subject, error) {
	s.log.Info("fetching subject", zap.Uint("subject_id", id))
	subject, err := s.repo.FindByID(id)
	if err != nil {
		err = mapFindErr("subject", id, err)
		s.log.Error("failed to fetch subject", zap.Uint("subject_id", id), zap.Error(err))
		return nil, err
	}
	return subject, nil
}

// Create persists a new subject inside a transaction.
func (s *SubjectService) Create(d *dto.SubjectDTO) (*entities.Subject, error) {
	s.log.Info("creating subject", zap.Any("payload", d.Serialize()))

	subject := &entities.Subject{Description: d.Description}
	err := s.repo.Transaction(func(tx *subjects.Repository) error {
		return tx.Create(subject)
	})
	if err != nil {
		err = mapWriteErr("subject", "create subject", err)
		s.log.Error("failed to create subject", zap.Error(err), zap.Any("payload", d.Serialize()))
		return nil, err
	}

	s.log.Info("subject created",
		zap.Uint("subject_id", subject.ID), zap.String("description", subject.Description))
	return subject, nil
}

// Update persists field changes to the subject inside a transaction.
func (s *SubjectService) Update(subject *entities.Subject, d *dto.SubjectDTO) (*entities.Subject, error) {
	s.log.Info("updating subject", zap.Uint("subject_id", subject.ID), zap.Any("payload", d.Serialize()))

	subject.Description = d.Description
	err := s.repo.Transaction(func(tx *subjects.Repository) error {
		return tx.Update(subject)
	})
	if err != nil {
		err = mapWriteErr("subject", "update subject", err)
		s.log.Error("failed to update subject",
			zap.Uint("subject_id", subject.ID), zap.Error(err), zap.Any("payload", d.Serialize()))
		return nil, err
	}

	s.log.Info("subject updated", zap.Uint("subject_id", subject.ID))
	return subject, nil
}

// Delete removes the subject; associated join rows are cascade-deleted.
func (s *SubjectService) Delete(subject *entities.Subject) (bool, error) {
	s.log.Info("deleting subject", zap.Uint("subject_id", subject.ID))
	if err := s.repo.Delete(subject); err != nil {
		s.log.Error("failed to delete subject", zap.Uint("subject_id", subject.ID), zap.Error(err))
		return false, err
	}
	s.log.Info("subject deleted", zap.Uint("subject_id", subject.ID))
	return true, nil
}

// TopByBookCount returns up to limit subjects ranked by book count.
func (s *SubjectService) TopByBookCount(limit int) ([]subjects.SubjectWithBookCount, error) {
	return s.repo.TopByBookCount(limit)
}

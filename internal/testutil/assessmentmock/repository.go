package assessmentmock

import (
	"context"
	"errors"

	domain "agrichain-backend/internal/domain/assessment"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("assessmentmock: method not implemented")

// Repo is a function-backed mock that satisfies assessment.Repository.
type Repo struct {
	CreateFn            func(ctx context.Context, a *domain.CropAssessment) error
	GetByAssessmentIDFn func(ctx context.Context, assessmentID string) (*domain.CropAssessment, error)
	ListByFarmerIDFn    func(ctx context.Context, farmerID string) ([]domain.CropAssessment, error)
}

func (m *Repo) Create(ctx context.Context, a *domain.CropAssessment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByAssessmentID(ctx context.Context, assessmentID string) (*domain.CropAssessment, error) {
	if m.GetByAssessmentIDFn != nil {
		return m.GetByAssessmentIDFn(ctx, assessmentID)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListByFarmerID(ctx context.Context, farmerID string) ([]domain.CropAssessment, error) {
	if m.ListByFarmerIDFn != nil {
		return m.ListByFarmerIDFn(ctx, farmerID)
	}
	return nil, errUnimplemented
}

package assessment

import "context"

type Repository interface {
	Create(ctx context.Context, a *CropAssessment) error
	GetByAssessmentID(ctx context.Context, assessmentID string) (*CropAssessment, error)
	ListByFarmerID(ctx context.Context, farmerID string) ([]CropAssessment, error)
}

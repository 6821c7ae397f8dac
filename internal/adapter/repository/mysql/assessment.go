package mysql

import (
	"context"

	assessmentDomain "agrichain-backend/internal/domain/assessment"

	"gorm.io/gorm"
)

type AssessmentRepository struct{ db *gorm.DB }

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{db: db}
}

func (r *AssessmentRepository) Create(ctx context.Context, a *assessmentDomain.CropAssessment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AssessmentRepository) GetByAssessmentID(ctx context.Context, assessmentID string) (*assessmentDomain.CropAssessment, error) {
	var out assessmentDomain.CropAssessment
	res := r.db.WithContext(ctx).Where("assessment_id = ?", assessmentID).First(&out)
	return &out, res.Error
}

func (r *AssessmentRepository) ListByFarmerID(ctx context.Context, farmerID string) ([]assessmentDomain.CropAssessment, error) {
	var out []assessmentDomain.CropAssessment
	res := r.db.WithContext(ctx).
		Where("farmer_id = ?", farmerID).
		Order("assessment_date DESC, id DESC").
		Find(&out)
	return out, res.Error
}

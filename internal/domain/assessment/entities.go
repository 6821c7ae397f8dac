package assessment

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("assessment not found")

type Band string

const (
	BandLow    Band = "Low"
	BandMedium Band = "Medium"
	BandHigh   Band = "High"
)

type CropAssessment struct {
	ID                uint64         `gorm:"primaryKey;column:id" json:"-"`
	AssessmentID      string         `gorm:"size:32;uniqueIndex:ux_assessments_assessment_id" json:"assessment_id"`
	FarmerID          string         `gorm:"size:32;index:idx_assessments_farmer" json:"farmer_id"`
	CropType          string         `gorm:"size:64" json:"crop_type"`
	HealthScore       float64        `gorm:"type:decimal(3,2)" json:"health_score"`
	YieldEstimate     Band           `gorm:"type:enum('Low','Medium','High')" json:"yield_estimate"`
	RiskLevel         Band           `gorm:"type:enum('Low','Medium','High')" json:"risk_level"`
	AssessmentDate    time.Time      `gorm:"type:date" json:"assessment_date"`
	AreaCovered       string         `gorm:"size:64" json:"area_covered"`
	Recommendations   string         `gorm:"type:text" json:"recommendations"`
	CreditScoreImpact int            `json:"credit_score_impact"`
	CreatedAt         time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

func (CropAssessment) TableName() string { return "crop_assessments" }

// YieldFor bands a health score into a yield estimate.
func YieldFor(score float64) Band {
	switch {
	case score > 0.85:
		return BandHigh
	case score > 0.70:
		return BandMedium
	default:
		return BandLow
	}
}

// RiskFor bands a health score into a risk level. Note the lower cutoff
// differs from YieldFor on purpose.
func RiskFor(score float64) Band {
	switch {
	case score > 0.85:
		return BandLow
	case score > 0.65:
		return BandMedium
	default:
		return BandHigh
	}
}

package assessment

import (
	"context"
	"errors"
	"strings"
	"testing"

	domainAssessment "agrichain-backend/internal/domain/assessment"
	domainUser "agrichain-backend/internal/domain/user"
	"agrichain-backend/internal/testutil/assessmentmock"
	"agrichain-backend/internal/testutil/usermock"

	"gorm.io/gorm"
)

const testFarmerID = "c3c3c3c3c3c3c3c3c3c3c3c3c3c3c3c3"

func newUsecase(role domainUser.Role, score float64) (*Usecase, *[]domainAssessment.CropAssessment) {
	stored := &[]domainAssessment.CropAssessment{}
	users := &usermock.Repo{
		GetByUserIDFn: func(_ context.Context, userID string) (*domainUser.User, error) {
			if userID != testFarmerID {
				return nil, gorm.ErrRecordNotFound
			}
			return &domainUser.User{UserID: testFarmerID, Role: role}, nil
		},
	}
	assessments := &assessmentmock.Repo{
		CreateFn: func(_ context.Context, a *domainAssessment.CropAssessment) error {
			*stored = append(*stored, *a)
			return nil
		},
	}
	uc := NewUsecase(assessments, users).WithScoreFn(func() float64 { return score })
	return uc, stored
}

func TestCreateDerivesEverythingFromScore(t *testing.T) {
	tests := []struct {
		name       string
		score      float64
		wantYield  domainAssessment.Band
		wantRisk   domainAssessment.Band
		wantImpact int
		wantRec    string
	}{
		{
			name:       "high score",
			score:      0.92,
			wantYield:  domainAssessment.BandHigh,
			wantRisk:   domainAssessment.BandLow,
			wantImpact: 55, // int(0.92 * 60)
			wantRec:    "premium market pricing",
		},
		{
			name:       "mid score",
			score:      0.78,
			wantYield:  domainAssessment.BandMedium,
			wantRisk:   domainAssessment.BandMedium,
			wantImpact: 46,
			wantRec:    "balanced fertilizer",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			uc, _ := newUsecase(domainUser.RoleFarmer, tc.score)

			a, err := uc.Create(context.Background(), CreateInput{
				FarmerID: testFarmerID,
				CropType: "Rice",
			})
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			if a.HealthScore != tc.score {
				t.Errorf("score = %v, want %v", a.HealthScore, tc.score)
			}
			if a.YieldEstimate != tc.wantYield || a.RiskLevel != tc.wantRisk {
				t.Errorf("bands = %s/%s, want %s/%s", a.YieldEstimate, a.RiskLevel, tc.wantYield, tc.wantRisk)
			}
			if a.CreditScoreImpact != tc.wantImpact {
				t.Errorf("credit impact = %d, want %d", a.CreditScoreImpact, tc.wantImpact)
			}
			if !strings.Contains(a.Recommendations, tc.wantRec) {
				t.Errorf("recommendations missing %q:\n%s", tc.wantRec, a.Recommendations)
			}
			if a.AreaCovered != "1.0 acres" {
				t.Errorf("default area = %q", a.AreaCovered)
			}
			if len(a.AssessmentID) != 32 {
				t.Errorf("assessment id = %q", a.AssessmentID)
			}
		})
	}
}

func TestCreateRequiresFarmer(t *testing.T) {
	uc, _ := newUsecase(domainUser.RoleBuyer, 0.8)
	_, err := uc.Create(context.Background(), CreateInput{FarmerID: testFarmerID, CropType: "Rice"})
	if !errors.Is(err, domainUser.ErrNotFarmer) {
		t.Errorf("err = %v, want ErrNotFarmer", err)
	}
}

func TestCreateRequiresCropType(t *testing.T) {
	uc, stored := newUsecase(domainUser.RoleFarmer, 0.8)
	_, err := uc.Create(context.Background(), CreateInput{FarmerID: testFarmerID})
	if err == nil {
		t.Fatal("expected error for missing crop_type")
	}
	if len(*stored) != 0 {
		t.Errorf("invalid input was persisted")
	}
}

func TestDefaultScoreStaysInRange(t *testing.T) {
	uc, _ := newUsecase(domainUser.RoleFarmer, 0)
	uc.scoreFn = NewUsecase(nil, nil).scoreFn

	for i := 0; i < 1000; i++ {
		s := uc.scoreFn()
		if s < 0.70 || s >= 0.95 {
			t.Fatalf("score %v out of [0.70, 0.95)", s)
		}
	}
}

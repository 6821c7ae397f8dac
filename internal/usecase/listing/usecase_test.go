package listing

import (
	"context"
	"errors"
	"testing"

	domainAssessment "agrichain-backend/internal/domain/assessment"
	domainListing "agrichain-backend/internal/domain/listing"
	"agrichain-backend/internal/domain/uow"
	domainUser "agrichain-backend/internal/domain/user"
	"agrichain-backend/internal/testutil/assessmentmock"
	"agrichain-backend/internal/testutil/listingmock"
	"agrichain-backend/internal/testutil/uowmock"
	"agrichain-backend/internal/testutil/usermock"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	testFarmerID     = "d4d4d4d4d4d4d4d4d4d4d4d4d4d4d4d4"
	testAssessmentID = "e5e5e5e5e5e5e5e5e5e5e5e5e5e5e5e5"
)

type fixture struct {
	stored map[string]*domainListing.Listing
	uc     *Usecase
}

func newFixture(role domainUser.Role) *fixture {
	f := &fixture{stored: map[string]*domainListing.Listing{}}

	users := &usermock.Repo{
		GetByUserIDFn: func(_ context.Context, userID string) (*domainUser.User, error) {
			if userID != testFarmerID {
				return nil, gorm.ErrRecordNotFound
			}
			return &domainUser.User{UserID: testFarmerID, Name: "Rajesh Kumar", Role: role, Location: "Punjab"}, nil
		},
	}
	assessments := &assessmentmock.Repo{
		GetByAssessmentIDFn: func(_ context.Context, assessmentID string) (*domainAssessment.CropAssessment, error) {
			if assessmentID != testAssessmentID {
				return nil, gorm.ErrRecordNotFound
			}
			return &domainAssessment.CropAssessment{
				AssessmentID: testAssessmentID,
				FarmerID:     testFarmerID,
				HealthScore:  0.88,
			}, nil
		},
	}
	listings := &listingmock.Repo{
		CreateFn: func(_ context.Context, l *domainListing.Listing) error {
			f.stored[l.ListingID] = l
			return nil
		},
		GetByListingIDFn: func(_ context.Context, listingID string) (*domainListing.Listing, error) {
			l, ok := f.stored[listingID]
			if !ok {
				return nil, gorm.ErrRecordNotFound
			}
			return l, nil
		},
		GetByListingIDForUpdateFn: func(_ context.Context, listingID string) (*domainListing.Listing, error) {
			l, ok := f.stored[listingID]
			if !ok {
				return nil, gorm.ErrRecordNotFound
			}
			return l, nil
		},
	}

	tx := uowmock.Passthrough(uow.Repos{Listings: listings, Users: users, Assessments: assessments})
	f.uc = NewUsecase(listings, users, assessments, tx)
	return f
}

func createInput() CreateListingInput {
	return CreateListingInput{
		FarmerID:     testFarmerID,
		ProductName:  "Premium Basmati Rice",
		CropType:     "Rice",
		Quantity:     decimal.NewFromInt(500),
		PricePerUnit: decimal.NewFromInt(45),
		Location:     "Punjab",
	}
}

func TestCreateDefaultsAndTotals(t *testing.T) {
	f := newFixture(domainUser.RoleFarmer)

	dto, err := f.uc.Create(context.Background(), createInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !dto.TotalPrice.Equal(decimal.NewFromInt(22500)) {
		t.Errorf("total = %s, want 22500", dto.TotalPrice)
	}
	if dto.Unit != "kg" || dto.DeliveryMethod != string(domainListing.DeliveryCourier) {
		t.Errorf("defaults not applied: unit=%q method=%q", dto.Unit, dto.DeliveryMethod)
	}
	if dto.Status != string(domainListing.StatusActive) {
		t.Errorf("status = %s, want ACTIVE", dto.Status)
	}
}

func TestCreateLinksAssessmentBadge(t *testing.T) {
	f := newFixture(domainUser.RoleFarmer)

	in := createInput()
	in.AssessmentID = testAssessmentID
	dto, err := f.uc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if dto.HealthBadge != 0.88 {
		t.Errorf("health badge = %v, want 0.88 from the linked assessment", dto.HealthBadge)
	}

	in.AssessmentID = "00000000000000000000000000000000"
	if _, err := f.uc.Create(context.Background(), in); !errors.Is(err, domainAssessment.ErrNotFound) {
		t.Errorf("unknown assessment: err = %v, want ErrNotFound", err)
	}
}

func TestCreateRequiresFarmerRole(t *testing.T) {
	f := newFixture(domainUser.RoleBuyer)
	_, err := f.uc.Create(context.Background(), createInput())
	if !errors.Is(err, domainUser.ErrNotFarmer) {
		t.Errorf("err = %v, want ErrNotFarmer", err)
	}
}

func TestUpdateAppliesPartialFieldsAndRecomputesTotal(t *testing.T) {
	f := newFixture(domainUser.RoleFarmer)
	dto, err := f.uc.Create(context.Background(), createInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	newPrice := decimal.NewFromInt(50)
	updated, err := f.uc.Update(context.Background(), dto.ListingID, UpdateListingInput{PricePerUnit: &newPrice})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !updated.PricePerUnit.Equal(newPrice) {
		t.Errorf("price = %s, want 50", updated.PricePerUnit)
	}
	if !updated.TotalPrice.Equal(decimal.NewFromInt(25000)) {
		t.Errorf("total not recomputed: %s, want 25000", updated.TotalPrice)
	}
	if updated.ProductName != dto.ProductName {
		t.Errorf("untouched field changed: %q", updated.ProductName)
	}

	bad := "PUBLISHED"
	if _, err := f.uc.Update(context.Background(), dto.ListingID, UpdateListingInput{Status: &bad}); err == nil {
		t.Error("invalid status accepted")
	}
}

func TestProductDetailBumpsViewsAndJoins(t *testing.T) {
	f := newFixture(domainUser.RoleFarmer)
	in := createInput()
	in.AssessmentID = testAssessmentID
	dto, err := f.uc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	for i := 1; i <= 3; i++ {
		detail, err := f.uc.ProductDetail(context.Background(), dto.ListingID)
		if err != nil {
			t.Fatalf("ProductDetail: %v", err)
		}
		if detail.ViewCount != i {
			t.Errorf("view count = %d, want %d", detail.ViewCount, i)
		}
		if detail.Farmer == nil || detail.Farmer.Name != "Rajesh Kumar" {
			t.Errorf("farmer join missing: %+v", detail.Farmer)
		}
		if detail.Assessment == nil || detail.Assessment.AssessmentID != testAssessmentID {
			t.Errorf("assessment join missing: %+v", detail.Assessment)
		}
	}
}

func TestDeleteUnknownListing(t *testing.T) {
	f := newFixture(domainUser.RoleFarmer)
	err := f.uc.Delete(context.Background(), "ffffffffffffffffffffffffffffffff")
	if !errors.Is(err, domainListing.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

package listing

import (
	"context"
	"errors"
	"time"

	domainAssessment "agrichain-backend/internal/domain/assessment"
	domainListing "agrichain-backend/internal/domain/listing"
	"agrichain-backend/internal/domain/uow"
	domainUser "agrichain-backend/internal/domain/user"
	"agrichain-backend/pkg/id"

	"github.com/shopspring/decimal"
)

type Usecase struct {
	listings    domainListing.Repository
	users       domainUser.Repository
	assessments domainAssessment.Repository
	uow         uow.UnitOfWork
}

func NewUsecase(listings domainListing.Repository, users domainUser.Repository, assessments domainAssessment.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{listings: listings, users: users, assessments: assessments, uow: tx}
}

type CreateListingInput struct {
	FarmerID       string          `json:"farmer_id"`
	ProductName    string          `json:"product_name"`
	CropType       string          `json:"crop_type"`
	Quantity       decimal.Decimal `json:"quantity"`
	Unit           string          `json:"unit"`
	PricePerUnit   decimal.Decimal `json:"price_per_unit"`
	AssessmentID   string          `json:"assessment_id,omitempty"`
	Location       string          `json:"location"`
	Description    string          `json:"description"`
	DeliveryMethod string          `json:"delivery_method,omitempty"`
	Draft          bool            `json:"draft,omitempty"`
}

// UpdateListingInput carries partial updates; nil fields are untouched.
type UpdateListingInput struct {
	ProductName  *string          `json:"product_name,omitempty"`
	Quantity     *decimal.Decimal `json:"quantity,omitempty"`
	PricePerUnit *decimal.Decimal `json:"price_per_unit,omitempty"`
	Location     *string          `json:"location,omitempty"`
	Description  *string          `json:"description,omitempty"`
	Status       *string          `json:"status,omitempty"`
}

type ListingDTO struct {
	ListingID      string          `json:"listing_id"`
	FarmerID       string          `json:"farmer_id"`
	ProductName    string          `json:"product_name"`
	CropType       string          `json:"crop_type"`
	Quantity       decimal.Decimal `json:"quantity"`
	Unit           string          `json:"unit"`
	PricePerUnit   decimal.Decimal `json:"price_per_unit"`
	TotalPrice     decimal.Decimal `json:"total_price"`
	AssessmentID   string          `json:"assessment_id,omitempty"`
	HealthBadge    float64         `json:"health_badge,omitempty"`
	Status         string          `json:"status"`
	ListedDate     string          `json:"listed_date"`
	Location       string          `json:"location"`
	Description    string          `json:"description"`
	ViewCount      int             `json:"view_count"`
	DeliveryMethod string          `json:"delivery_method"`
}

type ProductDetailDTO struct {
	ListingDTO
	Farmer     *FarmerSummary                   `json:"farmer,omitempty"`
	Assessment *domainAssessment.CropAssessment `json:"assessment,omitempty"`
}

type FarmerSummary struct {
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

func today() time.Time {
	y, m, d := time.Now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func toDTO(l *domainListing.Listing) *ListingDTO {
	return &ListingDTO{
		ListingID:      l.ListingID,
		FarmerID:       l.FarmerID,
		ProductName:    l.ProductName,
		CropType:       l.CropType,
		Quantity:       l.Quantity,
		Unit:           l.Unit,
		PricePerUnit:   l.PricePerUnit,
		TotalPrice:     l.TotalPrice,
		AssessmentID:   l.AssessmentID,
		HealthBadge:    l.HealthBadge,
		Status:         string(l.Status),
		ListedDate:     l.ListedDate.Format("2006-01-02"),
		Location:       l.Location,
		Description:    l.Description,
		ViewCount:      l.ViewCount,
		DeliveryMethod: string(l.DeliveryMethod),
	}
}

// Create publishes a listing. When an assessment is linked, its health
// score becomes the listing's health badge.
func (u *Usecase) Create(ctx context.Context, in CreateListingInput) (*ListingDTO, error) {
	if in.ProductName == "" || in.CropType == "" || !in.Quantity.IsPositive() || !in.PricePerUnit.IsPositive() {
		return nil, errors.New("invalid input")
	}
	farmer, err := u.users.GetByUserID(ctx, in.FarmerID)
	if err != nil {
		return nil, domainUser.ErrNotFound
	}
	if farmer.Role != domainUser.RoleFarmer {
		return nil, domainUser.ErrNotFarmer
	}

	unit := in.Unit
	if unit == "" {
		unit = "kg"
	}
	method := domainListing.DeliveryCourier
	if in.DeliveryMethod == string(domainListing.DeliveryPickup) {
		method = domainListing.DeliveryPickup
	}
	status := domainListing.StatusActive
	if in.Draft {
		status = domainListing.StatusDraft
	}

	l := &domainListing.Listing{
		ListingID:      id.NewID32(),
		FarmerID:       in.FarmerID,
		ProductName:    in.ProductName,
		CropType:       in.CropType,
		Quantity:       in.Quantity,
		Unit:           unit,
		PricePerUnit:   in.PricePerUnit,
		TotalPrice:     in.Quantity.Mul(in.PricePerUnit),
		Status:         status,
		ListedDate:     today(),
		Location:       in.Location,
		Description:    in.Description,
		DeliveryMethod: method,
	}
	if in.AssessmentID != "" {
		a, err := u.assessments.GetByAssessmentID(ctx, in.AssessmentID)
		if err != nil {
			return nil, domainAssessment.ErrNotFound
		}
		l.AssessmentID = a.AssessmentID
		l.HealthBadge = a.HealthScore
	}

	if err := u.listings.Create(ctx, l); err != nil {
		return nil, err
	}
	return toDTO(l), nil
}

func (u *Usecase) Update(ctx context.Context, listingID string, in UpdateListingInput) (*ListingDTO, error) {
	var dto *ListingDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Listings.GetByListingIDForUpdate(ctx, listingID)
		if err != nil {
			return domainListing.ErrNotFound
		}
		if in.ProductName != nil {
			l.ProductName = *in.ProductName
		}
		if in.Quantity != nil {
			l.Quantity = *in.Quantity
		}
		if in.PricePerUnit != nil {
			l.PricePerUnit = *in.PricePerUnit
		}
		if in.Quantity != nil || in.PricePerUnit != nil {
			l.TotalPrice = l.Quantity.Mul(l.PricePerUnit)
		}
		if in.Location != nil {
			l.Location = *in.Location
		}
		if in.Description != nil {
			l.Description = *in.Description
		}
		if in.Status != nil {
			switch domainListing.Status(*in.Status) {
			case domainListing.StatusActive, domainListing.StatusSold, domainListing.StatusDraft:
				l.Status = domainListing.Status(*in.Status)
			default:
				return errors.New("invalid status")
			}
		}
		if err := r.Listings.Save(ctx, l); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) Delete(ctx context.Context, listingID string) error {
	if _, err := u.listings.GetByListingID(ctx, listingID); err != nil {
		return domainListing.ErrNotFound
	}
	return u.listings.Delete(ctx, listingID)
}

func (u *Usecase) FarmerListings(ctx context.Context, farmerID string) ([]ListingDTO, error) {
	list, err := u.listings.ListByFarmerID(ctx, farmerID)
	if err != nil {
		return nil, err
	}
	out := make([]ListingDTO, 0, len(list))
	for i := range list {
		out = append(out, *toDTO(&list[i]))
	}
	return out, nil
}

func (u *Usecase) Marketplace(ctx context.Context, f domainListing.Filter) ([]ListingDTO, error) {
	list, err := u.listings.Marketplace(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]ListingDTO, 0, len(list))
	for i := range list {
		out = append(out, *toDTO(&list[i]))
	}
	return out, nil
}

// ProductDetail bumps the view counter and joins farmer and assessment
// info for the detail page.
func (u *Usecase) ProductDetail(ctx context.Context, listingID string) (*ProductDetailDTO, error) {
	var l *domainListing.Listing
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		got, err := r.Listings.GetByListingIDForUpdate(ctx, listingID)
		if err != nil {
			return domainListing.ErrNotFound
		}
		got.ViewCount++
		if err := r.Listings.Save(ctx, got); err != nil {
			return err
		}
		l = got
		return nil
	})
	if err != nil {
		return nil, err
	}

	detail := &ProductDetailDTO{ListingDTO: *toDTO(l)}
	if farmer, err := u.users.GetByUserID(ctx, l.FarmerID); err == nil {
		detail.Farmer = &FarmerSummary{UserID: farmer.UserID, Name: farmer.Name, Location: farmer.Location}
	}
	if l.AssessmentID != "" {
		if a, err := u.assessments.GetByAssessmentID(ctx, l.AssessmentID); err == nil {
			detail.Assessment = a
		}
	}
	return detail, nil
}

func (u *Usecase) SimilarProducts(ctx context.Context, listingID string) ([]ListingDTO, error) {
	l, err := u.listings.GetByListingID(ctx, listingID)
	if err != nil {
		return nil, domainListing.ErrNotFound
	}
	list, err := u.listings.SimilarActive(ctx, l.CropType, l.ListingID, 4)
	if err != nil {
		return nil, err
	}
	out := make([]ListingDTO, 0, len(list))
	for i := range list {
		out = append(out, *toDTO(&list[i]))
	}
	return out, nil
}

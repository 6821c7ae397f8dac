package http

import (
	"net/http"
	"strconv"

	domainListing "agrichain-backend/internal/domain/listing"
	uc "agrichain-backend/internal/usecase/listing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type ListingHandler struct{ uc *uc.Usecase }

func NewListingHandler(u *uc.Usecase) *ListingHandler { return &ListingHandler{uc: u} }

type createListingReq struct {
	FarmerID       string  `json:"farmer_id"       validate:"required,hex32"`
	ProductName    string  `json:"product_name"    validate:"required"`
	CropType       string  `json:"crop_type"       validate:"required"`
	Quantity       float64 `json:"quantity"        validate:"required,gt=0,dec2"`
	Unit           string  `json:"unit"`
	PricePerUnit   float64 `json:"price_per_unit"  validate:"required,gt=0,dec2"`
	AssessmentID   string  `json:"assessment_id"   validate:"omitempty,hex32"`
	Location       string  `json:"location"        validate:"required"`
	Description    string  `json:"description"`
	DeliveryMethod string  `json:"delivery_method" validate:"omitempty,oneof=DELIVERY PICKUP"`
	Draft          bool    `json:"draft"`
}

func (h *ListingHandler) CreateListing(c echo.Context) error {
	var req createListingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Create(c.Request().Context(), uc.CreateListingInput{
		FarmerID:       req.FarmerID,
		ProductName:    req.ProductName,
		CropType:       req.CropType,
		Quantity:       decimal.NewFromFloat(req.Quantity),
		Unit:           req.Unit,
		PricePerUnit:   decimal.NewFromFloat(req.PricePerUnit),
		AssessmentID:   req.AssessmentID,
		Location:       req.Location,
		Description:    req.Description,
		DeliveryMethod: req.DeliveryMethod,
		Draft:          req.Draft,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

type updateListingReq struct {
	ProductName  *string  `json:"product_name"`
	Quantity     *float64 `json:"quantity"       validate:"omitempty,gt=0,dec2"`
	PricePerUnit *float64 `json:"price_per_unit" validate:"omitempty,gt=0,dec2"`
	Location     *string  `json:"location"`
	Description  *string  `json:"description"`
	Status       *string  `json:"status"         validate:"omitempty,oneof=ACTIVE SOLD DRAFT"`
}

func (h *ListingHandler) UpdateListing(c echo.Context) error {
	var req updateListingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	in := uc.UpdateListingInput{
		ProductName: req.ProductName,
		Location:    req.Location,
		Description: req.Description,
		Status:      req.Status,
	}
	if req.Quantity != nil {
		q := decimal.NewFromFloat(*req.Quantity)
		in.Quantity = &q
	}
	if req.PricePerUnit != nil {
		p := decimal.NewFromFloat(*req.PricePerUnit)
		in.PricePerUnit = &p
	}
	dto, err := h.uc.Update(c.Request().Context(), c.Param("listing_id"), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ListingHandler) DeleteListing(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), c.Param("listing_id")); err != nil {
		return writeDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ListingHandler) FarmerListings(c echo.Context) error {
	list, err := h.uc.FarmerListings(c.Request().Context(), c.Param("farmer_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *ListingHandler) Marketplace(c echo.Context) error {
	f := domainListing.Filter{
		CropType: c.QueryParam("crop_type"),
		Search:   c.QueryParam("search"),
		SortBy:   domainListing.SortBy(c.QueryParam("sort_by")),
	}
	if v := c.QueryParam("min_health_score"); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			f.MinHealthScore = n
		}
	}
	if v := c.QueryParam("max_price"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			f.MaxPrice = d
		}
	}
	list, err := h.uc.Marketplace(c.Request().Context(), f)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *ListingHandler) ProductDetail(c echo.Context) error {
	dto, err := h.uc.ProductDetail(c.Request().Context(), c.Param("listing_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ListingHandler) SimilarProducts(c echo.Context) error {
	list, err := h.uc.SimilarProducts(c.Request().Context(), c.Param("listing_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

package http

import (
	"net/http"

	uc "agrichain-backend/internal/usecase/assessment"

	"github.com/labstack/echo/v4"
)

type AssessmentHandler struct{ uc *uc.Usecase }

func NewAssessmentHandler(u *uc.Usecase) *AssessmentHandler { return &AssessmentHandler{uc: u} }

type createAssessmentReq struct {
	FarmerID    string `json:"farmer_id"    validate:"required,hex32"`
	CropType    string `json:"crop_type"    validate:"required"`
	AreaCovered string `json:"area_covered"`
}

func (h *AssessmentHandler) CreateAssessment(c echo.Context) error {
	var req createAssessmentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	a, err := h.uc.Create(c.Request().Context(), uc.CreateInput(req))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *AssessmentHandler) GetAssessment(c echo.Context) error {
	a, err := h.uc.Get(c.Request().Context(), c.Param("assessment_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *AssessmentHandler) FarmerAssessments(c echo.Context) error {
	list, err := h.uc.FarmerAssessments(c.Request().Context(), c.Param("farmer_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

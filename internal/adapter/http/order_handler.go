package http

import (
	"net/http"

	uc "agrichain-backend/internal/usecase/order"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type OrderHandler struct{ uc *uc.Usecase }

func NewOrderHandler(u *uc.Usecase) *OrderHandler { return &OrderHandler{uc: u} }

type createOrderReq struct {
	BuyerID         string  `json:"buyer_id"         validate:"required,hex32"`
	ListingID       string  `json:"listing_id"       validate:"required,hex32"`
	Quantity        float64 `json:"quantity"         validate:"required,gt=0,dec2"`
	DeliveryAddress string  `json:"delivery_address" validate:"required"`
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	var req createOrderReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Create(c.Request().Context(), uc.CreateOrderInput{
		BuyerID:         req.BuyerID,
		ListingID:       req.ListingID,
		Quantity:        decimal.NewFromFloat(req.Quantity),
		DeliveryAddress: req.DeliveryAddress,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

type dispatchReq struct {
	FarmerID string `json:"farmer_id" validate:"required,hex32"`
}

func (h *OrderHandler) MarkDispatched(c echo.Context) error {
	orderID := c.Param("order_id")
	var req dispatchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.MarkDispatched(c.Request().Context(), orderID, req.FarmerID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type receiptReq struct {
	BuyerID string `json:"buyer_id" validate:"required,hex32"`
	Rating  int    `json:"rating"   validate:"required,min=1,max=5"`
	Review  string `json:"review"`
}

func (h *OrderHandler) ConfirmReceipt(c echo.Context) error {
	orderID := c.Param("order_id")
	var req receiptReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.ConfirmReceipt(c.Request().Context(), orderID, uc.ConfirmReceiptInput{
		BuyerID: req.BuyerID,
		Rating:  req.Rating,
		Review:  req.Review,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("order_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *OrderHandler) BuyerOrders(c echo.Context) error {
	list, err := h.uc.BuyerOrders(c.Request().Context(), c.Param("buyer_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *OrderHandler) FarmerOrders(c echo.Context) error {
	list, err := h.uc.FarmerOrders(c.Request().Context(), c.Param("farmer_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

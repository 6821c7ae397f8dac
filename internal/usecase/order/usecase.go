package order

import (
	"context"
	"fmt"
	"time"

	domainListing "agrichain-backend/internal/domain/listing"
	domainOrder "agrichain-backend/internal/domain/order"
	"agrichain-backend/internal/domain/uow"
	domainWallet "agrichain-backend/internal/domain/wallet"
	"agrichain-backend/pkg/id"

	"github.com/shopspring/decimal"
)

type Usecase struct {
	orders domainOrder.Repository
	uow    uow.UnitOfWork
}

// NewUsecase: repo for reads, UoW for the transactional flows.
func NewUsecase(orders domainOrder.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{orders: orders, uow: tx}
}

type CreateOrderInput struct {
	BuyerID         string          `json:"buyer_id"`
	ListingID       string          `json:"listing_id"`
	Quantity        decimal.Decimal `json:"quantity"`
	DeliveryAddress string          `json:"delivery_address"`
}

type TimelineStepDTO struct {
	Status    string  `json:"status"`
	Date      *string `json:"date"`
	Completed bool    `json:"completed"`
}

type OrderDTO struct {
	OrderID           string            `json:"order_id"`
	BuyerID           string            `json:"buyer_id"`
	ListingID         string            `json:"listing_id"`
	FarmerID          string            `json:"farmer_id"`
	ProductName       string            `json:"product_name"`
	Quantity          decimal.Decimal   `json:"quantity"`
	Unit              string            `json:"unit"`
	PricePerUnit      decimal.Decimal   `json:"price_per_unit"`
	TotalAmount       decimal.Decimal   `json:"total_amount"`
	Status            string            `json:"status"`
	EscrowStatus      string            `json:"escrow_status"`
	OrderDate         string            `json:"order_date"`
	EstimatedDelivery string            `json:"estimated_delivery"`
	DeliveryAddress   string            `json:"delivery_address"`
	DeliveryMethod    string            `json:"delivery_method"`
	CompletedDate     *string           `json:"completed_date,omitempty"`
	BuyerRating       *int              `json:"buyer_rating,omitempty"`
	BuyerReview       string            `json:"buyer_review,omitempty"`
	Timeline          []TimelineStepDTO `json:"timeline"`
}

func dateStr(t time.Time) string { return t.Format("2006-01-02") }

func today() time.Time {
	y, m, d := time.Now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func toDTO(o *domainOrder.Order) *OrderDTO {
	dto := &OrderDTO{
		OrderID:           o.OrderID,
		BuyerID:           o.BuyerID,
		ListingID:         o.ListingID,
		FarmerID:          o.FarmerID,
		ProductName:       o.ProductName,
		Quantity:          o.Quantity,
		Unit:              o.Unit,
		PricePerUnit:      o.PricePerUnit,
		TotalAmount:       o.TotalAmount,
		Status:            string(o.Status),
		EscrowStatus:      string(o.EscrowStatus),
		OrderDate:         dateStr(o.OrderDate),
		EstimatedDelivery: dateStr(o.EstimatedDelivery),
		DeliveryAddress:   o.DeliveryAddress,
		DeliveryMethod:    string(o.DeliveryMethod),
		BuyerRating:       o.BuyerRating,
		BuyerReview:       o.BuyerReview,
	}
	if o.CompletedDate != nil {
		s := dateStr(*o.CompletedDate)
		dto.CompletedDate = &s
	}
	for _, step := range o.Timeline {
		s := TimelineStepDTO{Status: string(step.Status), Completed: step.Completed}
		if step.StepDate != nil {
			d := dateStr(*step.StepDate)
			s.Date = &d
		}
		dto.Timeline = append(dto.Timeline, s)
	}
	return dto
}

// Create places an order against an ACTIVE listing. In a single
// transaction it locks the listing row, debits the buyer's wallet with the
// order total plus the 2% service fee, reserves stock and writes the order
// with escrow LOCKED. Payment is captured into escrow immediately; there
// is no separate authorization step.
func (u *Usecase) Create(ctx context.Context, in CreateOrderInput) (*OrderDTO, error) {
	if !in.Quantity.IsPositive() {
		return nil, domainWallet.ErrInvalidAmount
	}
	var dto *OrderDTO

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		lst, err := r.Listings.GetByListingIDForUpdate(ctx, in.ListingID)
		if err != nil {
			return domainListing.ErrNotFound
		}
		if lst.Status != domainListing.StatusActive || in.Quantity.GreaterThan(lst.Quantity) {
			return domainOrder.ErrListingUnavailable
		}

		w, err := r.Wallets.GetByUserIDForUpdate(ctx, in.BuyerID)
		if err != nil {
			return domainWallet.ErrNotFound
		}

		total := in.Quantity.Mul(lst.PricePerUnit)
		fee := domainOrder.ServiceFee(total)
		grand := total.Add(fee)

		if err := w.Debit(grand); err != nil {
			return err
		}
		if err := r.Wallets.Save(ctx, w); err != nil {
			return err
		}

		orderID := id.NewID32()
		ledger := &domainWallet.Transaction{
			TxID:        id.NewID32(),
			WalletID:    w.ID,
			Type:        domainWallet.TxPurchase,
			Description: fmt.Sprintf("Order %s: %s (incl. %s service fee)", orderID, lst.ProductName, fee),
			Amount:      grand.Neg(),
		}
		if err := r.Wallets.AppendTransaction(ctx, ledger); err != nil {
			return err
		}

		lst.ReserveStock(in.Quantity)
		if err := r.Listings.Save(ctx, lst); err != nil {
			return err
		}

		now := today()
		o := &domainOrder.Order{
			OrderID:           orderID,
			BuyerID:           in.BuyerID,
			ListingID:         lst.ListingID,
			FarmerID:          lst.FarmerID,
			ProductName:       lst.ProductName,
			Quantity:          in.Quantity,
			Unit:              lst.Unit,
			PricePerUnit:      lst.PricePerUnit,
			TotalAmount:       total,
			Status:            domainOrder.StatusPaid,
			EscrowStatus:      domainOrder.EscrowLocked,
			OrderDate:         now,
			EstimatedDelivery: now.AddDate(0, 0, domainOrder.EstimatedDeliveryDays),
			DeliveryAddress:   in.DeliveryAddress,
			DeliveryMethod:    lst.DeliveryMethod,
			Timeline:          domainOrder.NewTimeline(now),
		}
		if err := r.Orders.Create(ctx, o); err != nil {
			return err
		}
		dto = toDTO(o)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// MarkDispatched moves a PAID order to DISPATCHED. Only the order's farmer
// may call it.
func (u *Usecase) MarkDispatched(ctx context.Context, orderID, farmerID string) (*OrderDTO, error) {
	var dto *OrderDTO
	err := u.uow.WithinOrderTx(ctx, orderID, func(r uow.Repos, o *domainOrder.Order) error {
		if o.FarmerID != farmerID {
			return domainOrder.ErrNotOrderFarmer
		}
		if o.Status != domainOrder.StatusPaid {
			return domainOrder.ErrInvalidTransition
		}
		o.Status = domainOrder.StatusDispatched
		o.CompleteStepsThrough(2, today())
		if err := r.Orders.Save(ctx, o); err != nil {
			return err
		}
		dto = toDTO(o)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

type ConfirmReceiptInput struct {
	BuyerID string `json:"buyer_id"`
	Rating  int    `json:"rating"`
	Review  string `json:"review"`
}

// ConfirmReceipt completes the order and releases escrow. The state
// transition and the farmer wallet credit happen in one transaction; a
// COMPLETED order with uncredited escrow is never observable.
func (u *Usecase) ConfirmReceipt(ctx context.Context, orderID string, in ConfirmReceiptInput) (*OrderDTO, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, domainOrder.ErrInvalidRating
	}
	var dto *OrderDTO
	err := u.uow.WithinOrderTx(ctx, orderID, func(r uow.Repos, o *domainOrder.Order) error {
		if o.BuyerID != in.BuyerID {
			return domainOrder.ErrNotOrderBuyer
		}
		if o.Status == domainOrder.StatusCompleted || !o.ReceiptEligible() {
			return domainOrder.ErrInvalidTransition
		}

		now := today()
		o.Status = domainOrder.StatusCompleted
		o.EscrowStatus = domainOrder.EscrowReleased
		o.CompletedDate = &now
		rating := in.Rating
		o.BuyerRating = &rating
		o.BuyerReview = in.Review
		o.CompleteStepsThrough(4, now)
		if err := r.Orders.Save(ctx, o); err != nil {
			return err
		}

		w, err := r.Wallets.GetByUserIDForUpdate(ctx, o.FarmerID)
		if err != nil {
			return domainWallet.ErrNotFound
		}
		// the service fee stays with the platform; the farmer receives
		// exactly the order total
		if err := w.Credit(o.TotalAmount); err != nil {
			return err
		}
		if err := r.Wallets.Save(ctx, w); err != nil {
			return err
		}
		ledger := &domainWallet.Transaction{
			TxID:        id.NewID32(),
			WalletID:    w.ID,
			Type:        domainWallet.TxSale,
			Description: fmt.Sprintf("Escrow release for order %s", o.OrderID),
			Amount:      o.TotalAmount,
		}
		if err := r.Wallets.AppendTransaction(ctx, ledger); err != nil {
			return err
		}

		dto = toDTO(o)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) Get(ctx context.Context, orderID string) (*OrderDTO, error) {
	o, err := u.orders.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, domainOrder.ErrNotFound
	}
	return toDTO(o), nil
}

func (u *Usecase) BuyerOrders(ctx context.Context, buyerID string) ([]OrderDTO, error) {
	list, err := u.orders.ListByBuyerID(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	out := make([]OrderDTO, 0, len(list))
	for i := range list {
		out = append(out, *toDTO(&list[i]))
	}
	return out, nil
}

func (u *Usecase) FarmerOrders(ctx context.Context, farmerID string) ([]OrderDTO, error) {
	list, err := u.orders.ListByFarmerID(ctx, farmerID)
	if err != nil {
		return nil, err
	}
	out := make([]OrderDTO, 0, len(list))
	for i := range list {
		out = append(out, *toDTO(&list[i]))
	}
	return out, nil
}

package user

import (
	"context"
	"errors"
	"time"

	"agrichain-backend/internal/domain/uow"
	domainUser "agrichain-backend/internal/domain/user"
	domainWallet "agrichain-backend/internal/domain/wallet"
	"agrichain-backend/pkg/id"

	"github.com/shopspring/decimal"
)

type Usecase struct {
	users domainUser.Repository
	uow   uow.UnitOfWork
}

func NewUsecase(users domainUser.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{users: users, uow: tx}
}

type CreateUserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Location string `json:"location"`
}

type UserDTO struct {
	UserID      string `json:"user_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	CreditScore int    `json:"credit_score,omitempty"`
	Location    string `json:"location"`
	JoinDate    string `json:"join_date"`
}

func toDTO(u *domainUser.User) *UserDTO {
	return &UserDTO{
		UserID:      u.UserID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        string(u.Role),
		CreditScore: u.CreditScore,
		Location:    u.Location,
		JoinDate:    u.JoinDate.Format("2006-01-02"),
	}
}

// Create registers a user and opens their wallet in one transaction.
// Farmers start at the default credit score.
func (u *Usecase) Create(ctx context.Context, in CreateUserInput) (*UserDTO, error) {
	role := domainUser.Role(in.Role)
	if role != domainUser.RoleFarmer && role != domainUser.RoleBuyer {
		return nil, errors.New("role must be FARMER or BUYER")
	}
	if in.Name == "" {
		return nil, errors.New("name is required")
	}

	score := 0
	if role == domainUser.RoleFarmer {
		score = domainUser.DefaultCreditScore
	}
	y, m, d := time.Now().UTC().Date()
	usr := &domainUser.User{
		UserID:      id.NewID32(),
		Name:        in.Name,
		Email:       in.Email,
		Role:        role,
		CreditScore: score,
		Location:    in.Location,
		JoinDate:    time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
	}

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Users.Create(ctx, usr); err != nil {
			return err
		}
		w := &domainWallet.Wallet{UserID: usr.UserID, Balance: decimal.Zero}
		return r.Wallets.Create(ctx, w)
	})
	if err != nil {
		return nil, err
	}
	return toDTO(usr), nil
}

func (u *Usecase) Get(ctx context.Context, userID string) (*UserDTO, error) {
	usr, err := u.users.GetByUserID(ctx, userID)
	if err != nil {
		return nil, domainUser.ErrNotFound
	}
	return toDTO(usr), nil
}

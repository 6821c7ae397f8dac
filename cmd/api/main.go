package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	httpadp "agrichain-backend/internal/adapter/http"
	mw "agrichain-backend/internal/adapter/middleware"
	"agrichain-backend/internal/adapter/repository/mysql"
	"agrichain-backend/internal/config"
	domainAssessment "agrichain-backend/internal/domain/assessment"
	domainListing "agrichain-backend/internal/domain/listing"
	domainLoan "agrichain-backend/internal/domain/loan"
	domainOrder "agrichain-backend/internal/domain/order"
	domainUser "agrichain-backend/internal/domain/user"
	domainWallet "agrichain-backend/internal/domain/wallet"
	"agrichain-backend/internal/infrastructure/cache"
	"agrichain-backend/internal/infrastructure/db"
	ucAssessment "agrichain-backend/internal/usecase/assessment"
	ucListing "agrichain-backend/internal/usecase/listing"
	ucLoan "agrichain-backend/internal/usecase/loan"
	ucOrder "agrichain-backend/internal/usecase/order"
	ucUser "agrichain-backend/internal/usecase/user"
	ucWallet "agrichain-backend/internal/usecase/wallet"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	if err := gdb.AutoMigrate(
		&domainUser.User{},
		&domainWallet.Wallet{},
		&domainWallet.Transaction{},
		&domainListing.Listing{},
		&domainOrder.Order{},
		&domainOrder.TimelineStep{},
		&domainLoan.Loan{},
		&domainLoan.Payment{},
		&domainAssessment.CropAssessment{},
	); err != nil {
		log.Fatal(err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	userRepo := mysql.NewUserRepository(gdb)
	walletRepo := mysql.NewWalletRepository(gdb)
	listingRepo := mysql.NewListingRepository(gdb)
	orderRepo := mysql.NewOrderRepository(gdb)
	loanRepo := mysql.NewLoanRepository(gdb)
	assessmentRepo := mysql.NewAssessmentRepository(gdb)
	unit := mysql.NewGormUoW(gdb)

	userH := httpadp.NewUserHandler(ucUser.NewUsecase(userRepo, unit))
	walletH := httpadp.NewWalletHandler(ucWallet.NewUsecase(walletRepo, unit))
	listingH := httpadp.NewListingHandler(ucListing.NewUsecase(listingRepo, userRepo, assessmentRepo, unit))
	orderH := httpadp.NewOrderHandler(ucOrder.NewUsecase(orderRepo, unit))
	loanH := httpadp.NewLoanHandler(ucLoan.NewUsecase(loanRepo, userRepo, unit))
	assessmentH := httpadp.NewAssessmentHandler(ucAssessment.NewUsecase(assessmentRepo, userRepo))
	h := httpadp.NewHandler()

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Logger(), middleware.Recover(), middleware.CORS())

	idemp := mw.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)

	e.GET("/health", h.Health)

	e.POST("/users", userH.CreateUser)
	e.GET("/users/:user_id", userH.GetUser)

	e.POST("/wallets/:user_id/deposits", walletH.Deposit, idemp)
	e.POST("/wallets/:user_id/debits", walletH.Debit, idemp)
	e.GET("/wallets/:user_id", walletH.Balance)
	e.GET("/wallets/:user_id/transactions", walletH.Transactions)

	e.POST("/listings", listingH.CreateListing, idemp)
	e.PATCH("/listings/:listing_id", listingH.UpdateListing, idemp)
	e.DELETE("/listings/:listing_id", listingH.DeleteListing, idemp)
	e.GET("/farmers/:farmer_id/listings", listingH.FarmerListings)
	e.GET("/marketplace", listingH.Marketplace)
	e.GET("/marketplace/:listing_id", listingH.ProductDetail)
	e.GET("/marketplace/:listing_id/similar", listingH.SimilarProducts)

	e.POST("/orders", orderH.CreateOrder, idemp)
	e.POST("/orders/:order_id/dispatch", orderH.MarkDispatched, idemp)
	e.POST("/orders/:order_id/receipt", orderH.ConfirmReceipt, idemp)
	e.GET("/orders/:order_id", orderH.GetOrder)
	e.GET("/buyers/:buyer_id/orders", orderH.BuyerOrders)
	e.GET("/farmers/:farmer_id/orders", orderH.FarmerOrders)

	e.POST("/loans", loanH.ApplyForLoan, idemp)
	e.POST("/loans/:loan_id/approve", loanH.ApproveLoan, idemp)
	e.POST("/loans/:loan_id/reject", loanH.RejectLoan, idemp)
	e.POST("/loans/:loan_id/disburse", loanH.DisburseLoan, idemp)
	e.POST("/loans/:loan_id/payments", loanH.MakePayment, idemp)
	e.GET("/loans/:loan_id", loanH.GetLoan)
	e.GET("/farmers/:farmer_id/loans", loanH.FarmerLoans)

	e.POST("/assessments", assessmentH.CreateAssessment, idemp)
	e.GET("/assessments/:assessment_id", assessmentH.GetAssessment)
	e.GET("/farmers/:farmer_id/assessments", assessmentH.FarmerAssessments)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

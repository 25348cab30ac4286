// Command seed fills the database with fake users, contractors and
// transactions for local development.
package main

import (
	"context"
	"flag"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"golang.org/x/crypto/bcrypt"

	"github.com/greenstreet/ledger-api/internal/core/domain"
	"github.com/greenstreet/ledger-api/internal/infrastructure/config"
	mongodb "github.com/greenstreet/ledger-api/internal/infrastructure/db/mongo"
	"github.com/greenstreet/ledger-api/pkg/logger"
)

func main() {
	users := flag.Int("users", 5, "number of users to create")
	contractors := flag.Int("contractors", 10, "number of contractors to create")
	transactions := flag.Int("transactions", 50, "number of transactions to create")
	flag.Parse()

	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	if cfg.Production() {
		log.Fatal().Msg("refusing to seed a production database")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer client.Disconnect(context.Background())

	identityRepo := mongodb.NewIdentityRepository(db)
	contractorRepo := mongodb.NewContractorRepository(db)
	transactionRepo := mongodb.NewTransactionRepository(db)

	// Known credentials for manual testing, then random accounts.
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("bcrypt failed")
	}
	if _, err := identityRepo.Create(ctx, &domain.User{
		Username:     "demo1234",
		Email:        "demo@example.com",
		PasswordHash: string(hash),
		Verified:     true,
	}); err != nil {
		log.Warn().Err(err).Msg("demo user not created")
	}

	for i := 0; i < *users; i++ {
		if _, err := identityRepo.Create(ctx, &domain.User{
			Username:     gofakeit.Username() + gofakeit.DigitN(4),
			Email:        gofakeit.Email(),
			PasswordHash: string(hash),
			Verified:     gofakeit.Bool(),
		}); err != nil {
			log.Warn().Err(err).Msg("user not created")
		}
	}
	log.Info().Int("count", *users).Msg("users seeded")

	ids := make([]string, 0, *contractors)
	for i := 0; i < *contractors; i++ {
		contractor, err := contractorRepo.Insert(ctx, &domain.Contractor{
			Name: gofakeit.Company(),
		})
		if err != nil {
			log.Fatal().Err(err).Msg("contractor not created")
		}
		ids = append(ids, contractor.ID)
	}
	log.Info().Int("count", *contractors).Msg("contractors seeded")

	currencies := []domain.Currency{domain.CurrencyUSD, domain.CurrencyEUR, domain.CurrencyGBP}
	methods := []domain.PaymentMethod{domain.MethodCardPayment, domain.MethodTransaction, domain.MethodOnlineTransfer}

	for i := 0; i < *transactions; i++ {
		tx := &domain.Transaction{
			ContractorID: ids[gofakeit.Number(0, len(ids)-1)],
			Amount:       gofakeit.Price(10, 5000),
			Currency:     currencies[gofakeit.Number(0, len(currencies)-1)],
			Method:       methods[gofakeit.Number(0, len(methods)-1)],
			Status:       domain.TransactionSent,
			TrackingID:   gofakeit.UUID(),
		}
		sentAt := gofakeit.DateRange(time.Now().AddDate(0, -6, 0), time.Now())
		tx.SentAt = &sentAt

		// Advance a subset through the status lifecycle.
		if gofakeit.Bool() {
			receivedAt := sentAt.Add(time.Duration(gofakeit.Number(1, 72)) * time.Hour)
			tx.Status = domain.TransactionReceived
			tx.ReceivedAt = &receivedAt
			if gofakeit.Bool() {
				payedAt := receivedAt.Add(time.Duration(gofakeit.Number(1, 240)) * time.Hour)
				tx.Status = domain.TransactionPayed
				tx.PayedAt = &payedAt
			}
		}

		if _, err := transactionRepo.Insert(ctx, tx); err != nil {
			log.Fatal().Err(err).Msg("transaction not created")
		}
	}
	log.Info().Int("count", *transactions).Msg("transactions seeded")
}

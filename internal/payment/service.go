// AngelaMos | 2026
// service.go

package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/etuitionbd/server/internal/application"
	"github.com/etuitionbd/server/internal/config"
	"github.com/etuitionbd/server/internal/core"
	"github.com/etuitionbd/server/internal/tuition"
)

const (
	metaApplicationID = "application_id"
	metaTuitionID     = "tuition_id"
	metaTutorEmail    = "tutor_email"
)

type Service struct {
	provider Provider
	rates    RateSource
	store    Store
	apps     application.Repository
	tuitions tuition.Repository
	cfg      config.PaymentConfig
	exchange config.ExchangeConfig
	logger   *slog.Logger
}

func NewService(
	provider Provider,
	rates RateSource,
	store Store,
	apps application.Repository,
	tuitions tuition.Repository,
	cfg config.PaymentConfig,
	exchange config.ExchangeConfig,
	logger *slog.Logger,
) *Service {
	return &Service{
		provider: provider,
		rates:    rates,
		store:    store,
		apps:     apps,
		tuitions: tuitions,
		cfg:      cfg,
		exchange: exchange,
		logger:   logger,
	}
}

// InitiateCheckout converts the agreed salary into the settlement currency,
// asks the provider for a hosted session, and hands back the redirect URL.
// No local state changes here. The application and tuition ids ride along
// as session metadata so confirmation can find them again.
func (s *Service) InitiateCheckout(
	ctx context.Context,
	req CreateCheckoutRequest,
) (string, error) {
	app, err := s.apps.Get(ctx, req.ApplicationID)
	if err != nil {
		return "", err
	}

	posting, err := s.tuitions.Get(ctx, req.TuitionID, false)
	if err != nil {
		return "", err
	}

	if app.TuitionID != posting.ID {
		return "", fmt.Errorf(
			"application %s does not belong to tuition %s: %w",
			app.ID,
			posting.ID,
			core.ErrInvalidInput,
		)
	}

	if posting.IsClosed() {
		return "", fmt.Errorf(
			"initiate checkout: posting is closed: %w",
			core.ErrConflict,
		)
	}

	rate, err := s.rates.Rate(
		ctx,
		s.exchange.BaseCurrency,
		s.cfg.SettlementCurrency,
	)
	if err != nil {
		return "", err
	}

	amountMinor := int64(math.Round(float64(req.TutorSalary) * rate * 100))
	if amountMinor < 1 {
		amountMinor = 1
	}

	sess, err := s.provider.CreateSession(ctx, SessionRequest{
		AmountMinor:   amountMinor,
		Currency:      strings.ToLower(s.cfg.SettlementCurrency),
		ProductName:   fmt.Sprintf("Tuition fee for %s", req.TutorName),
		CustomerEmail: strings.ToLower(req.StudentEmail),
		SuccessURL:    s.cfg.SuccessURL,
		CancelURL:     s.cfg.CancelURL,
		Metadata: map[string]string{
			metaApplicationID: req.ApplicationID,
			metaTuitionID:     req.TuitionID,
			metaTutorEmail:    strings.ToLower(req.TutorEmail),
		},
	})
	if err != nil {
		return "", err
	}

	s.logger.Info("checkout session created",
		"session_id", sess.ID,
		"tuition_id", req.TuitionID,
		"application_id", req.ApplicationID,
		"amount_minor", amountMinor,
	)

	return sess.URL, nil
}

// ConfirmPayment settles a session into the hire transition. An unpaid
// session is a successful no-op so the client can poll. A paid session
// approves the application, closes the siblings, and closes the posting
// atomically. Re-confirming a settled session is a no-op, not an error.
func (s *Service) ConfirmPayment(
	ctx context.Context,
	sessionID string,
) (*ConfirmResponse, error) {
	sess, err := s.provider.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !sess.Paid {
		return &ConfirmResponse{Success: true, Completed: false}, nil
	}

	applicationID := sess.Metadata[metaApplicationID]
	tuitionID := sess.Metadata[metaTuitionID]
	tutorEmail := sess.Metadata[metaTutorEmail]
	if applicationID == "" || tuitionID == "" || tutorEmail == "" {
		return nil, fmt.Errorf(
			"session %s missing hire metadata: %w",
			sessionID,
			core.ErrInvalidInput,
		)
	}

	err = s.store.CompleteHire(ctx, applicationID, tuitionID, tutorEmail)
	if errors.Is(err, ErrAlreadyFinalized) {
		return &ConfirmResponse{Success: true, Completed: true}, nil
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("hire finalized",
		"session_id", sessionID,
		"tuition_id", tuitionID,
		"application_id", applicationID,
	)

	return &ConfirmResponse{Success: true, Completed: true}, nil
}

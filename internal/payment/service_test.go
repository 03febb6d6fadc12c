// AngelaMos | 2026
// service_test.go

package payment

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/etuitionbd/server/internal/application"
	"github.com/etuitionbd/server/internal/config"
	"github.com/etuitionbd/server/internal/core"
	"github.com/etuitionbd/server/internal/tuition"
)

type fakeProvider struct {
	mu        sync.Mutex
	created   []SessionRequest
	sessions  map[string]*Session
	createErr error
	getErr    error
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{sessions: make(map[string]*Session)}
}

func (p *fakeProvider) CreateSession(
	_ context.Context,
	req SessionRequest,
) (*Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.createErr != nil {
		return nil, p.createErr
	}

	p.created = append(p.created, req)
	sess := &Session{
		ID:       "cs_test_1",
		URL:      "https://checkout.example.com/cs_test_1",
		Metadata: req.Metadata,
	}
	p.sessions[sess.ID] = sess
	return sess, nil
}

func (p *fakeProvider) GetSession(
	_ context.Context,
	id string,
) (*Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.getErr != nil {
		return nil, p.getErr
	}

	sess, ok := p.sessions[id]
	if !ok {
		return nil, core.ErrUpstream
	}
	return sess, nil
}

type fakeRates struct {
	rate float64
	err  error
}

func (f *fakeRates) Rate(_ context.Context, _, _ string) (float64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.rate, nil
}

// fakeStore mimics the guarded transition: first confirmation per tuition
// wins, the same application may re-confirm, a different one conflicts.
type fakeStore struct {
	mu          sync.Mutex
	knownApps   map[string]bool
	finalizedBy map[string]string
}

func newFakeStore(appIDs ...string) *fakeStore {
	known := make(map[string]bool, len(appIDs))
	for _, id := range appIDs {
		known[id] = true
	}
	return &fakeStore{
		knownApps:   known,
		finalizedBy: make(map[string]string),
	}
}

func (s *fakeStore) CompleteHire(
	_ context.Context,
	applicationID, tuitionID, _ string,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.knownApps[applicationID] {
		return core.ErrNotFound
	}

	if winner, ok := s.finalizedBy[tuitionID]; ok {
		if winner == applicationID {
			return ErrAlreadyFinalized
		}
		return core.ErrConflict
	}

	s.finalizedBy[tuitionID] = applicationID
	return nil
}

type fakeAppRepo struct {
	apps map[string]*application.Application
}

func (f *fakeAppRepo) Get(
	_ context.Context,
	id string,
) (*application.Application, error) {
	app, ok := f.apps[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return app, nil
}

func (f *fakeAppRepo) Create(context.Context, *application.Application) error {
	return nil
}

func (f *fakeAppRepo) List(context.Context) ([]application.Application, error) {
	return nil, nil
}

func (f *fakeAppRepo) ListFor(
	context.Context,
	string,
) ([]application.Application, error) {
	return nil, nil
}

func (f *fakeAppRepo) Update(context.Context, *application.Application) error {
	return nil
}

func (f *fakeAppRepo) UpdateStatus(context.Context, string, string) error {
	return nil
}

func (f *fakeAppRepo) Delete(context.Context, string) error {
	return nil
}

type fakeTuitionRepo struct {
	tuitions map[string]*tuition.Tuition
}

func (f *fakeTuitionRepo) Get(
	_ context.Context,
	id string,
	_ bool,
) (*tuition.Tuition, error) {
	t, ok := f.tuitions[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return t, nil
}

func (f *fakeTuitionRepo) Create(context.Context, *tuition.Tuition) error {
	return nil
}

func (f *fakeTuitionRepo) List(
	context.Context,
	tuition.ListParams,
) ([]tuition.Tuition, error) {
	return nil, nil
}

func (f *fakeTuitionRepo) Latest(context.Context) ([]tuition.Tuition, error) {
	return nil, nil
}

func (f *fakeTuitionRepo) Update(context.Context, *tuition.Tuition) error {
	return nil
}

func (f *fakeTuitionRepo) UpdateStatus(context.Context, string, string) error {
	return nil
}

func (f *fakeTuitionRepo) MarkUnderReview(context.Context, string) error {
	return nil
}

func (f *fakeTuitionRepo) Delete(context.Context, string) error {
	return nil
}

const (
	testTuitionID = "7b8e7e2a-1111-4a2a-9c3d-000000000001"
	testAppID     = "7b8e7e2a-2222-4a2a-9c3d-000000000002"
	testAppID2    = "7b8e7e2a-3333-4a2a-9c3d-000000000003"
)

func testService(
	provider Provider,
	rates RateSource,
	store Store,
	apps application.Repository,
	tuitions tuition.Repository,
) *Service {
	return NewService(
		provider,
		rates,
		store,
		apps,
		tuitions,
		config.PaymentConfig{
			SettlementCurrency: "usd",
			SuccessURL:         "https://app.example.com/success",
			CancelURL:          "https://app.example.com/cancel",
		},
		config.ExchangeConfig{BaseCurrency: "BDT"},
		slog.New(slog.DiscardHandler),
	)
}

func openFixtures() (*fakeAppRepo, *fakeTuitionRepo) {
	apps := &fakeAppRepo{apps: map[string]*application.Application{
		testAppID: {
			ID:         testAppID,
			TuitionID:  testTuitionID,
			TutorEmail: "tutor@example.com",
			Status:     application.StatusPending,
		},
	}}
	tuitions := &fakeTuitionRepo{tuitions: map[string]*tuition.Tuition{
		testTuitionID: {
			ID:     testTuitionID,
			Email:  "student@example.com",
			Salary: 5000,
			Status: tuition.StatusPending,
		},
	}}
	return apps, tuitions
}

func checkoutRequest() CreateCheckoutRequest {
	return CreateCheckoutRequest{
		TutorSalary:   5000,
		TutorName:     "Tutor One",
		StudentEmail:  "student@example.com",
		ApplicationID: testAppID,
		TuitionID:     testTuitionID,
		TutorEmail:    "tutor@example.com",
	}
}

func TestInitiateCheckoutConvertsAndEmbedsMetadata(t *testing.T) {
	provider := newFakeProvider()
	apps, tuitions := openFixtures()
	svc := testService(
		provider,
		&fakeRates{rate: 0.0085},
		newFakeStore(testAppID),
		apps,
		tuitions,
	)

	url, err := svc.InitiateCheckout(context.Background(), checkoutRequest())
	if err != nil {
		t.Fatalf("InitiateCheckout() error = %v", err)
	}
	if url == "" {
		t.Fatal("InitiateCheckout() returned empty URL")
	}

	if len(provider.created) != 1 {
		t.Fatalf("sessions created = %d, want 1", len(provider.created))
	}

	created := provider.created[0]

	// 5000 BDT * 0.0085 = 42.5 USD = 4250 cents
	if created.AmountMinor != 4250 {
		t.Errorf("AmountMinor = %d, want 4250", created.AmountMinor)
	}
	if created.Currency != "usd" {
		t.Errorf("Currency = %q, want %q", created.Currency, "usd")
	}
	if created.Metadata[metaApplicationID] != testAppID {
		t.Errorf("metadata application_id = %q, want %q",
			created.Metadata[metaApplicationID], testAppID)
	}
	if created.Metadata[metaTuitionID] != testTuitionID {
		t.Errorf("metadata tuition_id = %q, want %q",
			created.Metadata[metaTuitionID], testTuitionID)
	}
	if created.Metadata[metaTutorEmail] != "tutor@example.com" {
		t.Errorf("metadata tutor_email = %q, want %q",
			created.Metadata[metaTutorEmail], "tutor@example.com")
	}
}

func TestInitiateCheckoutRateFailure(t *testing.T) {
	provider := newFakeProvider()
	apps, tuitions := openFixtures()
	svc := testService(
		provider,
		&fakeRates{err: core.ErrUpstream},
		newFakeStore(testAppID),
		apps,
		tuitions,
	)

	_, err := svc.InitiateCheckout(context.Background(), checkoutRequest())
	if !errors.Is(err, core.ErrUpstream) {
		t.Fatalf("InitiateCheckout() error = %v, want ErrUpstream", err)
	}

	if len(provider.created) != 0 {
		t.Errorf("sessions created = %d, want 0", len(provider.created))
	}
}

func TestInitiateCheckoutMissingRecords(t *testing.T) {
	apps, tuitions := openFixtures()

	tests := []struct {
		name    string
		mutate  func(req *CreateCheckoutRequest)
		wantErr error
	}{
		{
			name: "unknown application",
			mutate: func(req *CreateCheckoutRequest) {
				req.ApplicationID = testAppID2
			},
			wantErr: core.ErrNotFound,
		},
		{
			name: "unknown tuition",
			mutate: func(req *CreateCheckoutRequest) {
				req.TuitionID = "7b8e7e2a-9999-4a2a-9c3d-000000000009"
			},
			wantErr: core.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := testService(
				newFakeProvider(),
				&fakeRates{rate: 0.0085},
				newFakeStore(testAppID),
				apps,
				tuitions,
			)

			req := checkoutRequest()
			tt.mutate(&req)

			_, err := svc.InitiateCheckout(context.Background(), req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("InitiateCheckout() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestInitiateCheckoutClosedPosting(t *testing.T) {
	apps, tuitions := openFixtures()
	tuitions.tuitions[testTuitionID].Status = tuition.StatusClosed

	svc := testService(
		newFakeProvider(),
		&fakeRates{rate: 0.0085},
		newFakeStore(testAppID),
		apps,
		tuitions,
	)

	_, err := svc.InitiateCheckout(context.Background(), checkoutRequest())
	if !errors.Is(err, core.ErrConflict) {
		t.Fatalf("InitiateCheckout() error = %v, want ErrConflict", err)
	}
}

func TestConfirmPaymentUnpaidSessionIsNoOp(t *testing.T) {
	provider := newFakeProvider()
	provider.sessions["cs_unpaid"] = &Session{
		ID:   "cs_unpaid",
		Paid: false,
		Metadata: map[string]string{
			metaApplicationID: testAppID,
			metaTuitionID:     testTuitionID,
			metaTutorEmail:    "tutor@example.com",
		},
	}
	store := newFakeStore(testAppID)
	apps, tuitions := openFixtures()
	svc := testService(provider, &fakeRates{rate: 1}, store, apps, tuitions)

	result, err := svc.ConfirmPayment(context.Background(), "cs_unpaid")
	if err != nil {
		t.Fatalf("ConfirmPayment() error = %v", err)
	}
	if !result.Success || result.Completed {
		t.Errorf("result = %+v, want success without completion", result)
	}
	if len(store.finalizedBy) != 0 {
		t.Error("store mutated on unpaid session")
	}
}

func TestConfirmPaymentPaidSessionFinalizes(t *testing.T) {
	provider := newFakeProvider()
	provider.sessions["cs_paid"] = &Session{
		ID:   "cs_paid",
		Paid: true,
		Metadata: map[string]string{
			metaApplicationID: testAppID,
			metaTuitionID:     testTuitionID,
			metaTutorEmail:    "tutor@example.com",
		},
	}
	store := newFakeStore(testAppID)
	apps, tuitions := openFixtures()
	svc := testService(provider, &fakeRates{rate: 1}, store, apps, tuitions)

	result, err := svc.ConfirmPayment(context.Background(), "cs_paid")
	if err != nil {
		t.Fatalf("ConfirmPayment() error = %v", err)
	}
	if !result.Success || !result.Completed {
		t.Errorf("result = %+v, want success and completion", result)
	}
	if store.finalizedBy[testTuitionID] != testAppID {
		t.Errorf("finalized by %q, want %q",
			store.finalizedBy[testTuitionID], testAppID)
	}
}

func TestConfirmPaymentIsIdempotent(t *testing.T) {
	provider := newFakeProvider()
	provider.sessions["cs_paid"] = &Session{
		ID:   "cs_paid",
		Paid: true,
		Metadata: map[string]string{
			metaApplicationID: testAppID,
			metaTuitionID:     testTuitionID,
			metaTutorEmail:    "tutor@example.com",
		},
	}
	store := newFakeStore(testAppID)
	apps, tuitions := openFixtures()
	svc := testService(provider, &fakeRates{rate: 1}, store, apps, tuitions)

	for i := 0; i < 3; i++ {
		result, err := svc.ConfirmPayment(context.Background(), "cs_paid")
		if err != nil {
			t.Fatalf("ConfirmPayment() call %d error = %v", i+1, err)
		}
		if !result.Success || !result.Completed {
			t.Errorf("call %d result = %+v, want success and completion",
				i+1, result)
		}
	}

	if len(store.finalizedBy) != 1 {
		t.Errorf("finalized tuitions = %d, want 1", len(store.finalizedBy))
	}
}

func TestConfirmPaymentRivalApplicationConflicts(t *testing.T) {
	provider := newFakeProvider()
	for sessID, appID := range map[string]string{
		"cs_a1": testAppID,
		"cs_a2": testAppID2,
	} {
		provider.sessions[sessID] = &Session{
			ID:   sessID,
			Paid: true,
			Metadata: map[string]string{
				metaApplicationID: appID,
				metaTuitionID:     testTuitionID,
				metaTutorEmail:    "tutor@example.com",
			},
		}
	}
	store := newFakeStore(testAppID, testAppID2)
	apps, tuitions := openFixtures()
	svc := testService(provider, &fakeRates{rate: 1}, store, apps, tuitions)

	if _, err := svc.ConfirmPayment(context.Background(), "cs_a1"); err != nil {
		t.Fatalf("first ConfirmPayment() error = %v", err)
	}

	_, err := svc.ConfirmPayment(context.Background(), "cs_a2")
	if !errors.Is(err, core.ErrConflict) {
		t.Fatalf("rival ConfirmPayment() error = %v, want ErrConflict", err)
	}

	if store.finalizedBy[testTuitionID] != testAppID {
		t.Errorf("finalized by %q, want %q",
			store.finalizedBy[testTuitionID], testAppID)
	}
}

func TestConfirmPaymentConcurrentCallsApproveOnce(t *testing.T) {
	provider := newFakeProvider()
	for sessID, appID := range map[string]string{
		"cs_a1": testAppID,
		"cs_a2": testAppID2,
	} {
		provider.sessions[sessID] = &Session{
			ID:   sessID,
			Paid: true,
			Metadata: map[string]string{
				metaApplicationID: appID,
				metaTuitionID:     testTuitionID,
				metaTutorEmail:    "tutor@example.com",
			},
		}
	}
	store := newFakeStore(testAppID, testAppID2)
	apps, tuitions := openFixtures()
	svc := testService(provider, &fakeRates{rate: 1}, store, apps, tuitions)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		sessID := "cs_a1"
		if i%2 == 1 {
			sessID = "cs_a2"
		}
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			//nolint:errcheck // losers are expected to conflict
			_, _ = svc.ConfirmPayment(context.Background(), id)
		}(sessID)
	}
	wg.Wait()

	if len(store.finalizedBy) != 1 {
		t.Fatalf("finalized tuitions = %d, want exactly 1",
			len(store.finalizedBy))
	}
}

func TestConfirmPaymentMissingMetadata(t *testing.T) {
	provider := newFakeProvider()
	provider.sessions["cs_bare"] = &Session{
		ID:       "cs_bare",
		Paid:     true,
		Metadata: map[string]string{},
	}
	apps, tuitions := openFixtures()
	svc := testService(
		provider,
		&fakeRates{rate: 1},
		newFakeStore(testAppID),
		apps,
		tuitions,
	)

	_, err := svc.ConfirmPayment(context.Background(), "cs_bare")
	if !errors.Is(err, core.ErrInvalidInput) {
		t.Fatalf("ConfirmPayment() error = %v, want ErrInvalidInput", err)
	}
}

func TestConfirmPaymentProviderFailure(t *testing.T) {
	provider := newFakeProvider()
	provider.getErr = core.ErrUpstream
	store := newFakeStore(testAppID)
	apps, tuitions := openFixtures()
	svc := testService(provider, &fakeRates{rate: 1}, store, apps, tuitions)

	_, err := svc.ConfirmPayment(context.Background(), "cs_any")
	if !errors.Is(err, core.ErrUpstream) {
		t.Fatalf("ConfirmPayment() error = %v, want ErrUpstream", err)
	}
	if len(store.finalizedBy) != 0 {
		t.Error("store mutated despite provider failure")
	}
}

// AngelaMos | 2026
// service_test.go

package application

import (
	"context"
	"errors"
	"testing"

	"github.com/etuitionbd/server/internal/core"
	"github.com/etuitionbd/server/internal/tuition"
)

type fakeRepo struct {
	apps map[string]*Application
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{apps: make(map[string]*Application)}
}

func (f *fakeRepo) Create(_ context.Context, app *Application) error {
	f.apps[app.ID] = app
	return nil
}

func (f *fakeRepo) Get(_ context.Context, id string) (*Application, error) {
	app, ok := f.apps[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return app, nil
}

func (f *fakeRepo) List(context.Context) ([]Application, error) {
	apps := make([]Application, 0, len(f.apps))
	for _, app := range f.apps {
		apps = append(apps, *app)
	}
	return apps, nil
}

func (f *fakeRepo) ListFor(
	_ context.Context,
	email string,
) ([]Application, error) {
	var apps []Application
	for _, app := range f.apps {
		if app.StudentEmail == email || app.TutorEmail == email {
			apps = append(apps, *app)
		}
	}
	return apps, nil
}

func (f *fakeRepo) Update(_ context.Context, app *Application) error {
	if _, ok := f.apps[app.ID]; !ok {
		return core.ErrNotFound
	}
	f.apps[app.ID] = app
	return nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id, status string) error {
	app, ok := f.apps[id]
	if !ok {
		return core.ErrNotFound
	}
	app.Status = status
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.apps[id]; !ok {
		return core.ErrNotFound
	}
	delete(f.apps, id)
	return nil
}

type fakeTuitionRepo struct {
	tuitions    map[string]*tuition.Tuition
	underReview []string
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

func (f *fakeTuitionRepo) MarkUnderReview(_ context.Context, id string) error {
	f.underReview = append(f.underReview, id)
	return nil
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

func (f *fakeTuitionRepo) Delete(context.Context, string) error {
	return nil
}

const openTuitionID = "11111111-1111-4111-9111-111111111111"

func openTuitions() *fakeTuitionRepo {
	return &fakeTuitionRepo{tuitions: map[string]*tuition.Tuition{
		openTuitionID: {
			ID:     openTuitionID,
			Email:  "student@example.com",
			Status: tuition.StatusApproved,
		},
	}}
}

func createRequest() CreateApplicationRequest {
	return CreateApplicationRequest{
		TuitionID:    openTuitionID,
		StudentEmail: "Student@Example.com",
		TutorEmail:   "Tutor@Example.com",
		TutorName:    "Tutor One",
	}
}

func TestCreateSetsPendingAndFlagsPosting(t *testing.T) {
	repo := newFakeRepo()
	tuitions := openTuitions()
	svc := NewService(repo, tuitions)

	app, err := svc.Create(context.Background(), createRequest())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if app.Status != StatusPending {
		t.Errorf("Status = %q, want %q", app.Status, StatusPending)
	}
	if app.StudentEmail != "student@example.com" {
		t.Errorf("StudentEmail = %q, want lowercased", app.StudentEmail)
	}
	if app.TutorEmail != "tutor@example.com" {
		t.Errorf("TutorEmail = %q, want lowercased", app.TutorEmail)
	}

	if len(tuitions.underReview) != 1 || tuitions.underReview[0] != openTuitionID {
		t.Errorf("underReview = %v, want [%s]",
			tuitions.underReview, openTuitionID)
	}
}

func TestCreateRejectsClosedPosting(t *testing.T) {
	tuitions := openTuitions()
	tuitions.tuitions[openTuitionID].Status = tuition.StatusClosed
	svc := NewService(newFakeRepo(), tuitions)

	_, err := svc.Create(context.Background(), createRequest())
	if !errors.Is(err, core.ErrConflict) {
		t.Fatalf("Create() error = %v, want ErrConflict", err)
	}
}

func TestCreateRejectsUnknownPosting(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeTuitionRepo{
		tuitions: map[string]*tuition.Tuition{},
	})

	_, err := svc.Create(context.Background(), createRequest())
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("Create() error = %v, want ErrNotFound", err)
	}
}

func TestListForMatchesEitherSide(t *testing.T) {
	repo := newFakeRepo()
	repo.apps["a1"] = &Application{
		ID:           "a1",
		StudentEmail: "student@example.com",
		TutorEmail:   "tutor@example.com",
	}
	repo.apps["a2"] = &Application{
		ID:           "a2",
		StudentEmail: "other@example.com",
		TutorEmail:   "student@example.com",
	}
	repo.apps["a3"] = &Application{
		ID:           "a3",
		StudentEmail: "other@example.com",
		TutorEmail:   "third@example.com",
	}
	svc := NewService(repo, openTuitions())

	apps, err := svc.ListFor(context.Background(), "STUDENT@example.com")
	if err != nil {
		t.Fatalf("ListFor() error = %v", err)
	}
	if len(apps) != 2 {
		t.Errorf("ListFor() returned %d applications, want 2", len(apps))
	}

	all, err := svc.ListFor(context.Background(), "")
	if err != nil {
		t.Fatalf("ListFor(\"\") error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("ListFor(\"\") returned %d applications, want 3", len(all))
	}
}

func TestSetStatusReservesApprovalForPayment(t *testing.T) {
	repo := newFakeRepo()
	repo.apps["a1"] = &Application{ID: "a1", Status: StatusPending}
	svc := NewService(repo, openTuitions())

	_, err := svc.SetStatus(context.Background(), "a1", StatusApproved)
	if !errors.Is(err, core.ErrInvalidInput) {
		t.Fatalf("SetStatus(approved) error = %v, want ErrInvalidInput", err)
	}
	if repo.apps["a1"].Status != StatusPending {
		t.Errorf("status changed to %q", repo.apps["a1"].Status)
	}

	app, err := svc.SetStatus(context.Background(), "a1", StatusClosed)
	if err != nil {
		t.Fatalf("SetStatus(closed) error = %v", err)
	}
	if app.Status != StatusClosed {
		t.Errorf("Status = %q, want %q", app.Status, StatusClosed)
	}
}

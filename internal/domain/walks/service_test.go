package walks

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byID      map[string]WalkRequest
	cancelled map[string]bool // requestID -> postulaciones rechazadas
}

func newTestRepo() *testRepo {
	return &testRepo{
		byID:      map[string]WalkRequest{},
		cancelled: map[string]bool{},
	}
}

func (r *testRepo) Create(ctx context.Context, wr WalkRequest) error {
	if wr.ID == "" {
		return errors.New("repo: id required")
	}
	r.byID[wr.ID] = wr
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (WalkRequest, error) {
	wr, ok := r.byID[id]
	if !ok {
		return WalkRequest{}, ErrNotFound
	}
	return wr, nil
}

func (r *testRepo) Cancel(ctx context.Context, id string) error {
	wr, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	if !CanTransition(wr.Status, StatusCancelled) {
		return ErrBadState
	}
	wr.Status = StatusCancelled
	r.byID[id] = wr
	r.cancelled[id] = true
	return nil
}

func (r *testRepo) Complete(ctx context.Context, id string) error {
	wr, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	if !CanTransition(wr.Status, StatusCompleted) {
		return ErrBadState
	}
	wr.Status = StatusCompleted
	r.byID[id] = wr
	return nil
}

func (r *testRepo) ListFeed(ctx context.Context, ownerID string) ([]FeedItem, error) {
	out := make([]FeedItem, 0)
	for _, wr := range r.byID {
		if wr.Status != StatusOpen && wr.Status != StatusPending {
			continue
		}
		owner := testDogOwners[wr.DogID]
		if ownerID != "" && owner != ownerID {
			continue
		}
		out = append(out, FeedItem{
			RequestID:     wr.ID,
			DogID:         wr.DogID,
			OwnerID:       owner,
			RequestedTime: wr.RequestedTime,
			Status:        wr.Status,
		})
	}
	return out, nil
}

var testDogOwners = map[string]string{
	"dog-1": "owner-1",
	"dog-2": "owner-2",
}

type testOwners struct{}

func (testOwners) OwnerOf(ctx context.Context, dogID string) (string, error) {
	owner, ok := testDogOwners[dogID]
	if !ok {
		return "", errRepoNotFound
	}
	return owner, nil
}

func newService(repo *testRepo) *Service {
	svc := NewService(repo, testOwners{})
	svc.now = func() time.Time {
		return time.Date(2026, 6, 10, 8, 0, 0, 0, time.UTC)
	}
	return svc
}

func validInput() CreateInput {
	return CreateInput{
		DogID:           "dog-1",
		RequestedTime:   time.Date(2026, 6, 12, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 30,
		Location:        "Parklands",
	}
}

func TestService_Create_OK(t *testing.T) {
	repo := newTestRepo()
	svc := newService(repo)

	wr, err := svc.Create(context.Background(), "owner-1", validInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if wr.Status != StatusOpen {
		t.Fatalf("expected status open, got %s", wr.Status)
	}
	if wr.RequestedTime.Location() != time.UTC {
		t.Fatalf("expected requested time stored in UTC")
	}
}

func TestService_Create_NormalizesToUTC(t *testing.T) {
	repo := newTestRepo()
	svc := newService(repo)

	loc := time.FixedZone("UTC+10", 10*3600)
	in := validInput()
	in.RequestedTime = time.Date(2026, 6, 12, 20, 0, 0, 0, loc)

	wr, err := svc.Create(context.Background(), "owner-1", in)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	want := time.Date(2026, 6, 12, 10, 0, 0, 0, time.UTC)
	if !wr.RequestedTime.Equal(want) || wr.RequestedTime.Location() != time.UTC {
		t.Fatalf("expected %v in UTC, got %v", want, wr.RequestedTime)
	}
}

func TestService_Create_DogNotOwned(t *testing.T) {
	svc := newService(newTestRepo())

	_, err := svc.Create(context.Background(), "owner-2", validInput())
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestService_Create_UnknownDog(t *testing.T) {
	svc := newService(newTestRepo())

	in := validInput()
	in.DogID = "dog-999"
	_, err := svc.Create(context.Background(), "owner-1", in)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_Create_BadDuration(t *testing.T) {
	svc := newService(newTestRepo())

	in := validInput()
	in.DurationMinutes = 0
	if _, err := svc.Create(context.Background(), "owner-1", in); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for duration 0, got %v", err)
	}

	in.DurationMinutes = -15
	if _, err := svc.Create(context.Background(), "owner-1", in); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative duration, got %v", err)
	}
}

func TestService_Create_ZeroTime(t *testing.T) {
	svc := newService(newTestRepo())

	in := validInput()
	in.RequestedTime = time.Time{}
	if _, err := svc.Create(context.Background(), "owner-1", in); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for zero time, got %v", err)
	}
}

func TestService_Cancel_OK(t *testing.T) {
	repo := newTestRepo()
	svc := newService(repo)

	wr, _ := svc.Create(context.Background(), "owner-1", validInput())

	if err := svc.Cancel(context.Background(), "owner-1", wr.ID); err != nil {
		t.Fatalf("Cancel error: %v", err)
	}
	got, _ := repo.GetByID(context.Background(), wr.ID)
	if got.Status != StatusCancelled {
		t.Fatalf("expected cancelled, got %s", got.Status)
	}
	if !repo.cancelled[wr.ID] {
		t.Fatalf("expected pending applications to be rejected with the cancel")
	}
}

func TestService_Cancel_NotOwner(t *testing.T) {
	repo := newTestRepo()
	svc := newService(repo)

	wr, _ := svc.Create(context.Background(), "owner-1", validInput())

	err := svc.Cancel(context.Background(), "owner-2", wr.ID)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	got, _ := repo.GetByID(context.Background(), wr.ID)
	if got.Status != StatusOpen {
		t.Fatalf("expected request untouched, got %s", got.Status)
	}
}

func TestService_Cancel_NotFound(t *testing.T) {
	svc := newService(newTestRepo())

	err := svc.Cancel(context.Background(), "owner-1", "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_Cancel_TerminalState(t *testing.T) {
	repo := newTestRepo()
	svc := newService(repo)

	wr, _ := svc.Create(context.Background(), "owner-1", validInput())

	// completed y cancelled no se pueden cancelar
	for _, st := range []Status{StatusCompleted, StatusCancelled, StatusAccepted} {
		cur := repo.byID[wr.ID]
		cur.Status = st
		repo.byID[wr.ID] = cur

		err := svc.Cancel(context.Background(), "owner-1", wr.ID)
		if !errors.Is(err, ErrBadState) {
			t.Fatalf("expected ErrBadState cancelling from %s, got %v", st, err)
		}
		if got := repo.byID[wr.ID].Status; got != st {
			t.Fatalf("expected status unchanged (%s), got %s", st, got)
		}
	}
}

func TestService_Complete_OnlyFromAccepted(t *testing.T) {
	repo := newTestRepo()
	svc := newService(repo)

	wr, _ := svc.Create(context.Background(), "owner-1", validInput())

	if err := svc.Complete(context.Background(), wr.ID); !errors.Is(err, ErrBadState) {
		t.Fatalf("expected ErrBadState completing an open request, got %v", err)
	}

	cur := repo.byID[wr.ID]
	cur.Status = StatusAccepted
	repo.byID[wr.ID] = cur

	if err := svc.Complete(context.Background(), wr.ID); err != nil {
		t.Fatalf("Complete error: %v", err)
	}
	if got := repo.byID[wr.ID].Status; got != StatusCompleted {
		t.Fatalf("expected completed, got %s", got)
	}
}

func TestCanTransition_Graph(t *testing.T) {
	legal := [][2]Status{
		{StatusOpen, StatusPending},
		{StatusOpen, StatusCancelled},
		{StatusPending, StatusAccepted},
		{StatusPending, StatusCancelled},
		{StatusAccepted, StatusCompleted},
	}
	all := []Status{StatusOpen, StatusPending, StatusAccepted, StatusCompleted, StatusCancelled}

	isLegal := func(from, to Status) bool {
		for _, p := range legal {
			if p[0] == from && p[1] == to {
				return true
			}
		}
		return false
	}

	for _, from := range all {
		for _, to := range all {
			if got, want := CanTransition(from, to), isLegal(from, to); got != want {
				t.Fatalf("CanTransition(%s, %s) = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestService_ListFeed_OwnerRestricted(t *testing.T) {
	repo := newTestRepo()
	svc := newService(repo)

	wr1, _ := svc.Create(context.Background(), "owner-1", validInput())
	in2 := validInput()
	in2.DogID = "dog-2"
	wr2, _ := svc.Create(context.Background(), "owner-2", in2)

	items, err := svc.ListFeed(context.Background(), "owner", "owner-1")
	if err != nil {
		t.Fatalf("ListFeed error: %v", err)
	}
	if len(items) != 1 || items[0].RequestID != wr1.ID {
		t.Fatalf("expected only owner-1 requests, got %#v", items)
	}

	// walker ve todo
	items, err = svc.ListFeed(context.Background(), "walker", "walker-1")
	if err != nil {
		t.Fatalf("ListFeed error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items for walker, got %d", len(items))
	}
	_ = wr2
}

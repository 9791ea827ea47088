package services

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/propmitra/propmitra-backend/app/models"
	apperrors "github.com/propmitra/propmitra-backend/pkg/errors"
	"github.com/propmitra/propmitra-backend/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeListingStore keeps listings in a map and mirrors the conditional
// update semantics of the SQL layer: transitions only succeed from the
// states the real statements allow.
type fakeListingStore struct {
	mu       sync.Mutex
	listings map[uuid.UUID]models.Listing
}

func newFakeListingStore() *fakeListingStore {
	return &fakeListingStore{listings: map[uuid.UUID]models.Listing{}}
}

func (s *fakeListingStore) put(l models.Listing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listings[l.ID] = l
}

func (s *fakeListingStore) get(id uuid.UUID) models.Listing {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listings[id]
}

func (s *fakeListingStore) CreateListing(ctx context.Context, l *models.Listing) error {
	s.put(*l)
	return nil
}

func (s *fakeListingStore) GetListingByID(ctx context.Context, id uuid.UUID) (models.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.listings[id]
	if !ok {
		return models.Listing{}, apperrors.NotFound("listing", id.String())
	}
	return l, nil
}

func (s *fakeListingStore) UpdateListingContent(ctx context.Context, l *models.Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.listings[l.ID]
	if !ok {
		return apperrors.NotFound("listing", l.ID.String())
	}
	switch cur.Status {
	case models.StatusDraft, models.StatusPendingVerification, models.StatusRejected:
		l.Status = cur.Status
		// Mirrors the RETURNING updated_at stamp of the real statement.
		l.UpdatedAt = time.Now()
		s.listings[l.ID] = *l
		return nil
	}
	return apperrors.InvalidState("listing cannot be edited in its current status")
}

func (s *fakeListingStore) SubmitListing(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.listings[id]
	if !ok {
		return apperrors.NotFound("listing", id.String())
	}
	if cur.Status != models.StatusDraft && cur.Status != models.StatusRejected {
		return apperrors.InvalidState("listing cannot be submitted in its current status")
	}
	cur.Status = models.StatusPendingVerification
	cur.RejectionReason = nil
	s.listings[id] = cur
	return nil
}

func (s *fakeListingStore) ApproveListing(ctx context.Context, id uuid.UUID, adminID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.listings[id]
	if !ok || cur.Status != models.StatusPendingVerification {
		return apperrors.NotPending("listing is not pending verification")
	}
	now := time.Now()
	cur.Status = models.StatusLive
	cur.ReviewedAt = &now
	cur.ReviewedBy = &adminID
	s.listings[id] = cur
	return nil
}

func (s *fakeListingStore) RejectListing(ctx context.Context, id uuid.UUID, adminID uuid.UUID, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.listings[id]
	if !ok || cur.Status != models.StatusPendingVerification {
		return apperrors.NotPending("listing is not pending verification")
	}
	now := time.Now()
	cur.Status = models.StatusRejected
	cur.RejectionReason = &reason
	cur.ReviewedAt = &now
	cur.ReviewedBy = &adminID
	s.listings[id] = cur
	return nil
}

func (s *fakeListingStore) MarkListingFromLive(ctx context.Context, id uuid.UUID, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.listings[id]
	if !ok {
		return apperrors.NotFound("listing", id.String())
	}
	if cur.Status != models.StatusLive {
		return apperrors.InvalidState("only live listings can be marked " + status)
	}
	cur.Status = status
	s.listings[id] = cur
	return nil
}

func (s *fakeListingStore) ListPendingListings(ctx context.Context) ([]models.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Listing{}
	for _, l := range s.listings {
		if l.Status == models.StatusPendingVerification {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *fakeListingStore) ListListingsByPromoter(ctx context.Context, promoterID uuid.UUID) ([]models.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Listing{}
	for _, l := range s.listings {
		if l.PromoterID == promoterID {
			out = append(out, l)
		}
	}
	return out, nil
}

// recordingNotifier collects events on a channel so tests can wait for the
// fire-and-forget goroutine without sleeping.
type recordingNotifier struct {
	events chan map[string]interface{}
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{events: make(chan map[string]interface{}, 8)}
}

func (n *recordingNotifier) Send(userID uuid.UUID, payload interface{}) error {
	event := payload.(map[string]interface{})
	event["user_id"] = userID
	n.events <- event
	return nil
}

func (n *recordingNotifier) wait(t *testing.T) map[string]interface{} {
	t.Helper()
	select {
	case event := <-n.events:
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for notification")
		return nil
	}
}

func promoter() utils.Principal {
	return utils.Principal{UserID: uuid.New(), Role: utils.RolePromoter}
}

func admin() utils.Principal {
	return utils.Principal{UserID: uuid.New(), Role: utils.RoleAdmin}
}

func customer() utils.Principal {
	return utils.Principal{UserID: uuid.New(), Role: utils.RoleCustomer}
}

func validCreateRequest() *models.CreateListingRequest {
	return &models.CreateListingRequest{
		Title:              "3BHK in Whitefield",
		Description:        strings.Repeat("Spacious apartment close to the metro. ", 3),
		City:               "Bengaluru",
		PropertyType:       "apartment",
		Bedrooms:           3,
		TotalPrice:         9_500_000,
		TotalSqft:          1_450,
		Images:             []string{"a.jpg", "b.jpg", "c.jpg"},
		CommissionAccepted: true,
	}
}

func TestCreateListingEntersReviewQueue(t *testing.T) {
	store := newFakeListingStore()
	svc := NewListingService(store, nil)
	p := promoter()

	l, err := svc.CreateListing(context.Background(), p, validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, models.StatusPendingVerification, l.Status)
	assert.Equal(t, p.UserID, l.PromoterID)
	assert.InDelta(t, 9_500_000.0/1_450, l.PricePerSqft, 0.01)
	assert.Equal(t, l, store.get(l.ID))
}

func TestCreateListingDraftSkipsValidation(t *testing.T) {
	store := newFakeListingStore()
	svc := NewListingService(store, nil)

	req := &models.CreateListingRequest{
		Title: "untitled plot",
		City:  "Pune",
		Draft: true,
	}
	l, err := svc.CreateListing(context.Background(), promoter(), req)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDraft, l.Status)
	assert.NotNil(t, l.Images)
}

func TestCreateListingRejectsIncompleteSubmission(t *testing.T) {
	store := newFakeListingStore()
	svc := NewListingService(store, nil)

	req := validCreateRequest()
	req.TotalPrice = 0
	req.Images = []string{"only.jpg"}
	req.CommissionAccepted = false

	_, err := svc.CreateListing(context.Background(), promoter(), req)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	assert.Contains(t, apperrors.Message(err), "total price must be positive")
	assert.Contains(t, apperrors.Message(err), "at least 3 images")
	assert.Contains(t, apperrors.Message(err), "commission agreement")
	assert.Empty(t, store.listings)
}

func TestCreateListingCustomerForbidden(t *testing.T) {
	svc := NewListingService(newFakeListingStore(), nil)
	_, err := svc.CreateListing(context.Background(), customer(), validCreateRequest())
	assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(err))
}

func TestUpdateListingRecomputesPricePerSqft(t *testing.T) {
	store := newFakeListingStore()
	svc := NewListingService(store, nil)
	p := promoter()

	l, err := svc.CreateListing(context.Background(), p, validCreateRequest())
	require.NoError(t, err)

	newPrice := 10_000_000.0
	updated, err := svc.UpdateListing(context.Background(), p, l.ID, &models.UpdateListingRequest{
		TotalPrice: &newPrice,
	})
	require.NoError(t, err)
	assert.InDelta(t, newPrice/l.TotalSqft, updated.PricePerSqft, 0.01)
	assert.Equal(t, l.Description, updated.Description)

	// The returned timestamp is the one the store wrote, not a second
	// client-side clock read.
	assert.Equal(t, store.get(l.ID).UpdatedAt, updated.UpdatedAt)
}

func TestUpdateListingNotOwner(t *testing.T) {
	store := newFakeListingStore()
	svc := NewListingService(store, nil)

	l, err := svc.CreateListing(context.Background(), promoter(), validCreateRequest())
	require.NoError(t, err)

	title := "hijacked"
	_, err = svc.UpdateListing(context.Background(), promoter(), l.ID, &models.UpdateListingRequest{Title: &title})
	assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(err))
	assert.Equal(t, l.Title, store.get(l.ID).Title)
}

func TestUpdateListingLiveIsInvalidState(t *testing.T) {
	store := newFakeListingStore()
	svc := NewListingService(store, nil)
	p := promoter()

	l, err := svc.CreateListing(context.Background(), p, validCreateRequest())
	require.NoError(t, err)
	require.NoError(t, store.ApproveListing(context.Background(), l.ID, uuid.New()))

	title := "new title"
	_, err = svc.UpdateListing(context.Background(), p, l.ID, &models.UpdateListingRequest{Title: &title})
	assert.Equal(t, apperrors.KindInvalidState, apperrors.KindOf(err))
}

func TestApproveListing(t *testing.T) {
	store := newFakeListingStore()
	notifier := newRecordingNotifier()
	svc := NewListingService(store, notifier)
	p := promoter()

	l, err := svc.CreateListing(context.Background(), p, validCreateRequest())
	require.NoError(t, err)

	a := admin()
	require.NoError(t, svc.ApproveListing(context.Background(), a, l.ID))

	stored := store.get(l.ID)
	assert.Equal(t, models.StatusLive, stored.Status)
	require.NotNil(t, stored.ReviewedBy)
	assert.Equal(t, a.UserID, *stored.ReviewedBy)
	assert.NotNil(t, stored.ReviewedAt)

	event := notifier.wait(t)
	assert.Equal(t, "listing_approved", event["event"])
	assert.Equal(t, p.UserID, event["user_id"])
}

func TestApproveListingRequiresAdmin(t *testing.T) {
	store := newFakeListingStore()
	svc := NewListingService(store, nil)

	l, err := svc.CreateListing(context.Background(), promoter(), validCreateRequest())
	require.NoError(t, err)

	err = svc.ApproveListing(context.Background(), customer(), l.ID)
	assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(err))
	assert.Equal(t, models.StatusPendingVerification, store.get(l.ID).Status)
}

func TestApproveAfterRejectIsNotPending(t *testing.T) {
	store := newFakeListingStore()
	svc := NewListingService(store, nil)
	a := admin()

	l, err := svc.CreateListing(context.Background(), promoter(), validCreateRequest())
	require.NoError(t, err)
	require.NoError(t, svc.RejectListing(context.Background(), a, l.ID, "blurry photos"))

	err = svc.ApproveListing(context.Background(), a, l.ID)
	assert.Equal(t, apperrors.KindNotPending, apperrors.KindOf(err))

	// The losing review must not mutate the listing.
	stored := store.get(l.ID)
	assert.Equal(t, models.StatusRejected, stored.Status)
	require.NotNil(t, stored.RejectionReason)
	assert.Equal(t, "blurry photos", *stored.RejectionReason)
}

func TestRejectListingRequiresReason(t *testing.T) {
	store := newFakeListingStore()
	svc := NewListingService(store, nil)

	l, err := svc.CreateListing(context.Background(), promoter(), validCreateRequest())
	require.NoError(t, err)

	err = svc.RejectListing(context.Background(), admin(), l.ID, "   ")
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	assert.Equal(t, models.StatusPendingVerification, store.get(l.ID).Status)
}

func TestResubmitRejectedListing(t *testing.T) {
	store := newFakeListingStore()
	svc := NewListingService(store, nil)
	p := promoter()

	l, err := svc.CreateListing(context.Background(), p, validCreateRequest())
	require.NoError(t, err)
	require.NoError(t, svc.RejectListing(context.Background(), admin(), l.ID, "blurry photos"))

	require.NoError(t, svc.SubmitListing(context.Background(), p, l.ID))
	stored := store.get(l.ID)
	assert.Equal(t, models.StatusPendingVerification, stored.Status)
	assert.Nil(t, stored.RejectionReason)
}

func TestSubmitIncompleteDraftFailsValidation(t *testing.T) {
	store := newFakeListingStore()
	svc := NewListingService(store, nil)
	p := promoter()

	l, err := svc.CreateListing(context.Background(), p, &models.CreateListingRequest{
		Title: "untitled plot",
		City:  "Pune",
		Draft: true,
	})
	require.NoError(t, err)

	err = svc.SubmitListing(context.Background(), p, l.ID)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	assert.Equal(t, models.StatusDraft, store.get(l.ID).Status)
}

func TestMarkListingSold(t *testing.T) {
	store := newFakeListingStore()
	svc := NewListingService(store, nil)
	p := promoter()

	l, err := svc.CreateListing(context.Background(), p, validCreateRequest())
	require.NoError(t, err)
	require.NoError(t, store.ApproveListing(context.Background(), l.ID, uuid.New()))

	require.NoError(t, svc.MarkListing(context.Background(), p, l.ID, models.StatusSold))
	assert.Equal(t, models.StatusSold, store.get(l.ID).Status)

	// Already sold, no longer LIVE.
	err = svc.MarkListing(context.Background(), p, l.ID, models.StatusInactive)
	assert.Equal(t, apperrors.KindInvalidState, apperrors.KindOf(err))
}

func TestMarkListingRejectsArbitraryStatus(t *testing.T) {
	svc := NewListingService(newFakeListingStore(), nil)
	err := svc.MarkListing(context.Background(), promoter(), uuid.New(), models.StatusLive)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestGetListingVisibility(t *testing.T) {
	store := newFakeListingStore()
	svc := NewListingService(store, nil)
	p := promoter()

	l, err := svc.CreateListing(context.Background(), p, validCreateRequest())
	require.NoError(t, err)

	// Pending: hidden from the public and from other users.
	_, err = svc.GetListing(context.Background(), nil, l.ID)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

	other := customer()
	_, err = svc.GetListing(context.Background(), &other, l.ID)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

	// Visible to the owner and to admins.
	got, err := svc.GetListing(context.Background(), &p, l.ID)
	require.NoError(t, err)
	assert.Equal(t, l.ID, got.ID)

	a := admin()
	_, err = svc.GetListing(context.Background(), &a, l.ID)
	require.NoError(t, err)

	// Public once LIVE.
	require.NoError(t, store.ApproveListing(context.Background(), l.ID, uuid.New()))
	got, err = svc.GetListing(context.Background(), nil, l.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusLive, got.Status)
}

func TestPendingListingsAdminOnly(t *testing.T) {
	store := newFakeListingStore()
	svc := NewListingService(store, nil)

	_, err := svc.CreateListing(context.Background(), promoter(), validCreateRequest())
	require.NoError(t, err)

	_, err = svc.PendingListings(context.Background(), promoter())
	assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(err))

	pending, err := svc.PendingListings(context.Background(), admin())
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestPricePerSqftZeroArea(t *testing.T) {
	assert.Zero(t, PricePerSqft(1_000_000, 0))
	assert.Zero(t, PricePerSqft(1_000_000, -5))
}

func TestConcurrentApproveAndReject(t *testing.T) {
	store := newFakeListingStore()
	svc := NewListingService(store, nil)
	a := admin()

	l, err := svc.CreateListing(context.Background(), promoter(), validCreateRequest())
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make(chan error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		results <- svc.ApproveListing(context.Background(), a, l.ID)
	}()
	go func() {
		defer wg.Done()
		results <- svc.RejectListing(context.Background(), a, l.ID, "blurry photos")
	}()
	wg.Wait()
	close(results)

	successes := 0
	for err := range results {
		if err == nil {
			successes++
		} else {
			assert.Equal(t, apperrors.KindNotPending, apperrors.KindOf(err))
		}
	}
	assert.Equal(t, 1, successes, "exactly one review must win")

	// The loser must not have mutated the listing: it is fully in the
	// winner's end state.
	stored := store.get(l.ID)
	switch stored.Status {
	case models.StatusLive:
		assert.Nil(t, stored.RejectionReason)
	case models.StatusRejected:
		require.NotNil(t, stored.RejectionReason)
		assert.Equal(t, "blurry photos", *stored.RejectionReason)
	default:
		t.Fatalf("listing ended in unexpected status %s", stored.Status)
	}
	require.NotNil(t, stored.ReviewedBy)
	assert.NotNil(t, stored.ReviewedAt)
}

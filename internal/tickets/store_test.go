package tickets_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticket-journal/internal/models"
	"ticket-journal/internal/tickets"
)

// newTestStore builds a store with a deterministic id sequence and a clock
// that advances one second per reading.
func newTestStore(userID string) *tickets.Store {
	store := tickets.NewStore(userID)

	n := 0
	store.NewID = func() string {
		n++
		return fmt.Sprintf("ticket-%d", n)
	}

	clock := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	store.Now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return store
}

func foreignTicket(id, owner string) models.Ticket {
	return models.Ticket{
		ID:          id,
		Title:       "Someone else's night out",
		Status:      models.StatusPublic,
		UserID:      owner,
		PerformedAt: time.Date(2026, 2, 10, 20, 0, 0, 0, time.UTC),
		CreatedAt:   time.Date(2026, 2, 10, 21, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2026, 2, 10, 21, 0, 0, 0, time.UTC),
	}
}

func TestAddAssignsUniqueIDs(t *testing.T) {
	store := tickets.NewStore("user-1")

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		ticket, err := store.Add(validCreateData())
		require.NoError(t, err)
		assert.False(t, seen[ticket.ID], "duplicate id %s", ticket.ID)
		seen[ticket.ID] = true
	}
}

func TestAddStampsOwnershipAndTimestamps(t *testing.T) {
	store := newTestStore("user-1")

	ticket, err := store.Add(validCreateData())
	require.NoError(t, err)

	assert.Equal(t, "ticket-1", ticket.ID)
	assert.Equal(t, "user-1", ticket.UserID)
	assert.Equal(t, models.StatusPublic, ticket.Status)
	assert.Equal(t, ticket.CreatedAt, ticket.UpdatedAt)
	assert.False(t, ticket.CreatedAt.IsZero())
}

func TestAddDefaultsStatusToPublic(t *testing.T) {
	store := newTestStore("user-1")

	data := validCreateData()
	data.Status = ""
	ticket, err := store.Add(data)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPublic, ticket.Status)
}

func TestAddValidationFailureLeavesStoreUntouched(t *testing.T) {
	store := newTestStore("user-1")

	data := validCreateData()
	data.Title = ""
	_, err := store.Add(data)

	var validation *tickets.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "title", validation.Field)
	assert.Empty(t, store.List())
}

func TestAddEnforcesPerUserLimit(t *testing.T) {
	store := newTestStore("user-1")

	for i := 0; i < models.MaxTicketsPerUser; i++ {
		_, err := store.Add(validCreateData())
		require.NoError(t, err)
	}

	_, err := store.Add(validCreateData())
	var limit *tickets.LimitExceededError
	require.ErrorAs(t, err, &limit)
	assert.Equal(t, "user-1", limit.UserID)

	// The cap is per user: a different session user can still add.
	store.SetUser("user-2")
	_, err = store.Add(validCreateData())
	assert.NoError(t, err)
}

func TestAddAttachesReviewAndImages(t *testing.T) {
	store := newTestStore("user-1")

	data := validCreateData()
	data.ReviewText = "best night of the year"
	data.Images = []string{"file:///photos/1.jpg", "file:///photos/2.jpg"}

	ticket, err := store.Add(data)
	require.NoError(t, err)
	require.NotNil(t, ticket.Review)
	assert.Equal(t, "best night of the year", ticket.Review.ReviewText)
	assert.Equal(t, ticket.CreatedAt, ticket.Review.CreatedAt)
	assert.Len(t, ticket.Images, 2)
}

func TestUpdatePreservesIdentityFields(t *testing.T) {
	store := newTestStore("user-1")

	created, err := store.Add(validCreateData())
	require.NoError(t, err)

	title := "renamed"
	updated, err := store.Update(created.ID, models.UpdateTicketData{Title: &title})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.UserID, updated.UserID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "renamed", updated.Title)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
}

func TestUpdateDoesNotMutateEarlierReads(t *testing.T) {
	store := newTestStore("user-1")

	data := validCreateData()
	data.ReviewText = "original review"
	created, err := store.Add(data)
	require.NoError(t, err)

	before := store.List()[0]

	newReview := "rewritten review"
	_, err = store.Update(created.ID, models.UpdateTicketData{ReviewText: &newReview})
	require.NoError(t, err)

	// The value read before the update keeps reading consistently.
	assert.Equal(t, "original review", before.Review.ReviewText)
	assert.Equal(t, created.Title, before.Title)
}

func TestUpdateNotFound(t *testing.T) {
	store := newTestStore("user-1")

	title := "whatever"
	_, err := store.Update("nonexistent", models.UpdateTicketData{Title: &title})

	var notFound *tickets.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "nonexistent", notFound.ID)
}

func TestUpdateForbiddenForForeignTicket(t *testing.T) {
	store := newTestStore("user-1")
	store.Load(foreignTicket("foreign-1", "user-2"))

	title := "mine now"
	_, err := store.Update("foreign-1", models.UpdateTicketData{Title: &title})

	var forbidden *tickets.ForbiddenError
	require.ErrorAs(t, err, &forbidden)

	// Unchanged, still owned by user-2.
	assert.Equal(t, "user-2", store.List()[0].UserID)
	assert.Equal(t, "Someone else's night out", store.List()[0].Title)
}

func TestUpdateInvalidFieldRejected(t *testing.T) {
	store := newTestStore("user-1")
	created, err := store.Add(validCreateData())
	require.NoError(t, err)

	badDate := "not-a-date"
	_, err = store.Update(created.ID, models.UpdateTicketData{PerformedAt: &badDate})

	var validation *tickets.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "performed_at", validation.Field)
}

func TestUpdateClearsReviewWithEmptyText(t *testing.T) {
	store := newTestStore("user-1")

	data := validCreateData()
	data.ReviewText = "to be removed"
	created, err := store.Add(data)
	require.NoError(t, err)

	empty := ""
	updated, err := store.Update(created.ID, models.UpdateTicketData{ReviewText: &empty})
	require.NoError(t, err)
	assert.Nil(t, updated.Review)
}

func TestDelete(t *testing.T) {
	store := newTestStore("user-1")
	created, err := store.Add(validCreateData())
	require.NoError(t, err)

	require.NoError(t, store.Delete(created.ID))
	assert.Empty(t, store.List())

	var notFound *tickets.NotFoundError
	assert.ErrorAs(t, store.Delete(created.ID), &notFound)
}

func TestDeleteForbidden(t *testing.T) {
	store := newTestStore("user-1")
	store.Load(foreignTicket("foreign-1", "user-2"))

	var forbidden *tickets.ForbiddenError
	require.ErrorAs(t, store.Delete("foreign-1"), &forbidden)
	assert.Len(t, store.List(), 1)
}

func TestBulkDeletePartialFailure(t *testing.T) {
	store := newTestStore("user-1")

	owned, err := store.Add(validCreateData())
	require.NoError(t, err)
	store.Load(foreignTicket("foreign-1", "user-2"))

	result := store.BulkDelete([]string{owned.ID, "missing", "foreign-1"})

	assert.Equal(t, 1, result.DeletedCount)
	assert.Equal(t, []string{owned.ID}, result.DeletedIDs)
	assert.Equal(t, []string{"missing", "foreign-1"}, result.FailedIDs)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, tickets.ReasonNotFound, result.Errors[0].Reason)
	assert.Equal(t, tickets.ReasonNotAuthorized, result.Errors[1].Reason)

	// The owned ticket is gone; the foreign one survives with its owner.
	remaining := store.List()
	require.Len(t, remaining, 1)
	assert.Equal(t, "foreign-1", remaining[0].ID)
	assert.Equal(t, "user-2", remaining[0].UserID)
}

func TestListRoundTrip(t *testing.T) {
	store := newTestStore("user-1")

	data := validCreateData()
	data.ReviewText = "unforgettable"
	data.Images = []string{"file:///photos/1.jpg"}

	created, err := store.Add(data)
	require.NoError(t, err)

	list := store.List()
	require.Len(t, list, 1)
	assert.Equal(t, *created, list[0])
}

func TestListKeepsInsertionOrder(t *testing.T) {
	store := newTestStore("user-1")

	var ids []string
	for i := 0; i < 5; i++ {
		ticket, err := store.Add(validCreateData())
		require.NoError(t, err)
		ids = append(ids, ticket.ID)
	}

	list := store.List()
	require.Len(t, list, 5)
	for i, ticket := range list {
		assert.Equal(t, ids[i], ticket.ID)
	}
}

func TestOwnershipNeverChangesAcrossUpdates(t *testing.T) {
	store := newTestStore("user-1")

	created, err := store.Add(validCreateData())
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		title := fmt.Sprintf("rename %d", i)
		updated, err := store.Update(created.ID, models.UpdateTicketData{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, "user-1", updated.UserID)
	}
}

func TestStoreErrorsAreInspectable(t *testing.T) {
	store := newTestStore("user-1")

	_, err := store.Add(models.CreateTicketData{})
	assert.True(t, errors.As(err, new(*tickets.ValidationError)))
	assert.NotEmpty(t, err.Error())
}

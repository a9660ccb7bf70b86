package profile_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ticket-journal/internal/profile"
)

func TestUpdateChangesOnlySuppliedFields(t *testing.T) {
	store := profile.NewStore("gig-goer")
	store.Now = func() time.Time { return time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC) }

	avatar := "file:///avatars/me.png"
	updated := store.Update(nil, &avatar)

	assert.Equal(t, "gig-goer", updated.Nickname)
	assert.Equal(t, avatar, updated.AvatarURI)
	assert.Equal(t, time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC), updated.UpdatedAt)

	nickname := "front-row"
	updated = store.Update(&nickname, nil)
	assert.Equal(t, "front-row", updated.Nickname)
	assert.Equal(t, avatar, updated.AvatarURI)

	assert.Equal(t, updated, store.Get())
}

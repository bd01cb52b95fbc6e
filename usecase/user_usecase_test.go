package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"messenger-api/apperror"
	"messenger-api/dto/req"
	"messenger-api/entity"
)

func TestGetUser(t *testing.T) {
	f := newFixture(t)
	ada := f.seedUser(t, "Ada", "ada@example.com")

	user, err := f.users.GetUser(testCtx(), ada.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", user.FirstName)
	assert.Equal(t, "ada@example.com", user.Email)
}

func TestGetUserMissing(t *testing.T) {
	f := newFixture(t)

	_, err := f.users.GetUser(testCtx(), "0b9a3f6e-27e7-41a7-9a34-1af0cf6a7a60")
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestUpdateProfile(t *testing.T) {
	f := newFixture(t)
	ada := f.seedUser(t, "Ada", "ada@example.com")

	err := f.users.UpdateProfile(testCtx(), ada.ID, &req.UpdateProfileRequest{
		FirstName: strPtr("Adaline"),
	}, ada.ID)
	require.NoError(t, err)

	user, err := f.users.GetUser(testCtx(), ada.ID)
	require.NoError(t, err)
	assert.Equal(t, "Adaline", user.FirstName)
	assert.Equal(t, "Tester", user.LastName)
}

func TestUpdateProfileOfAnotherUser(t *testing.T) {
	f := newFixture(t)
	ada := f.seedUser(t, "Ada", "ada@example.com")
	bob := f.seedUser(t, "Bob", "bob@example.com")

	err := f.users.UpdateProfile(testCtx(), ada.ID, &req.UpdateProfileRequest{
		FirstName: strPtr("Mallory"),
	}, bob.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindForbidden))
}

func TestDeleteUserHidesThemEverywhere(t *testing.T) {
	f := newFixture(t)
	ada := f.seedUser(t, "Ada", "ada@example.com")
	bob := f.seedUser(t, "Bob", "bob@example.com")

	require.NoError(t, f.users.DeleteUser(testCtx(), bob.ID))

	_, err := f.users.GetUser(testCtx(), bob.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))

	// a soft-deleted user cannot be pulled into a new private chat
	_, err = f.chats.StartPrivateChat(testCtx(), ada.ID, &req.StartPrivateChatRequest{UserID: bob.ID})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	// the row itself survives as a tombstone
	var stored entity.User
	require.NoError(t, f.db.Unscoped().Where("id = ?", bob.ID).First(&stored).Error)
	assert.True(t, stored.DeletedAt.Valid)
}

func TestListUsersExcludesDeleted(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "Ada", "ada@example.com")
	bob := f.seedUser(t, "Bob", "bob@example.com")

	require.NoError(t, f.users.DeleteUser(testCtx(), bob.ID))

	users, err := f.users.ListUsers(testCtx())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Ada", users[0].FirstName)
}

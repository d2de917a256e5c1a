package services

import (
	"testing"

	"github.com/jobtrail/jobtrail-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignUpCreatesBoardWithDefaultColumns(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	user, err := svc.SignUp("alice@x.com", "pw1", "pw1")
	require.NoError(t, err)
	require.NotEqual(t, "pw1", user.PasswordHash)

	var board models.Board
	require.NoError(t, db.First(&board, "owner_id = ?", user.ID).Error)
	require.Len(t, board.ColumnOrder, 5)

	wantTitles := []string{"Wish List", "Applied", "Phone Screen", "Interview", "Offer"}
	for i, colID := range board.ColumnOrder {
		var col models.Column
		require.NoError(t, db.First(&col, "id = ?", colID).Error)
		assert.Equal(t, wantTitles[i], col.Title)
		assert.Equal(t, user.ID, col.OwnerID)
		assert.Equal(t, board.ID, col.BoardID)
		assert.Empty(t, col.CellOrder)
	}
}

func TestSignUpDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.SignUp("alice@x.com", "pw1", "pw1")
	require.NoError(t, err)

	_, err = svc.SignUp("alice@x.com", "other", "other")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignUpBadParams(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.SignUp("alice@x.com", "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.SignUp("alice@x.com", "pw1", "pw2")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Nothing should have been persisted.
	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSignInIssuesToken(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.SignUp("alice@x.com", "pw1", "pw1")
	require.NoError(t, err)

	user, token, err := svc.SignIn("alice@x.com", "pw1")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotNil(t, user.SessionTokenHash)
	assert.NotEqual(t, token, *user.SessionTokenHash)

	got, err := svc.Authenticate(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestSignInWrongPassword(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.SignUp("alice@x.com", "pw1", "pw1")
	require.NoError(t, err)

	_, _, err = svc.SignIn("alice@x.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// No token may be issued on failure.
	var user models.User
	require.NoError(t, db.First(&user, "email = ?", "alice@x.com").Error)
	assert.Nil(t, user.SessionTokenHash)
}

func TestSignInUnknownEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	_, _, err := svc.SignIn("nobody@x.com", "pw1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignInRotatesToken(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.SignUp("alice@x.com", "pw1", "pw1")
	require.NoError(t, err)

	_, first, err := svc.SignIn("alice@x.com", "pw1")
	require.NoError(t, err)
	_, second, err := svc.SignIn("alice@x.com", "pw1")
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	_, err = svc.Authenticate(first)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = svc.Authenticate(second)
	assert.NoError(t, err)
}

func TestSignOutInvalidatesSession(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.SignUp("alice@x.com", "pw1", "pw1")
	require.NoError(t, err)

	user, token, err := svc.SignIn("alice@x.com", "pw1")
	require.NoError(t, err)

	require.NoError(t, svc.SignOut(user.ID))

	_, err = svc.Authenticate(token)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestChangePassword(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	user, err := svc.SignUp("alice@x.com", "pw1", "pw1")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.ChangePassword(user.ID, "wrong", "pw2"), ErrInvalidCredentials)
	assert.ErrorIs(t, svc.ChangePassword(user.ID, "pw1", ""), ErrInvalidCredentials)

	require.NoError(t, svc.ChangePassword(user.ID, "pw1", "pw2"))

	_, _, err = svc.SignIn("alice@x.com", "pw1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.SignIn("alice@x.com", "pw2")
	assert.NoError(t, err)
}

func TestAuthenticateEmptyToken(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.Authenticate("")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

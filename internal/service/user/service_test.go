package user

import (
	"context"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turbo-fm/facility-backend-go/internal/domain/user"
)

type fakeUserRepo struct {
	user.UserRepository
	byID map[string]user.User
}

func (f *fakeUserRepo) List(ctx context.Context) ([]user.User, error) {
	return []user.User{f.byID["u2"], f.byID["u1"]}, nil
}

func (f *fakeUserRepo) UpdateRole(ctx context.Context, id string, role user.Role) (user.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	u.Role = role
	f.byID[id] = u
	return u, nil
}

func (f *fakeUserRepo) UpdateVerification(ctx context.Context, id string, verified bool) (user.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	u.IsVerified = verified
	f.byID[id] = u
	return u, nil
}

func callerContext(t *testing.T, userID string) context.Context {
	t.Helper()
	tokenAuth := jwtauth.New("HS256", []byte("secret"), nil)
	token, _, err := tokenAuth.Encode(map[string]interface{}{"user_id": userID, "role": "master_admin"})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func newUserFixture() (user.UserService, *fakeUserRepo) {
	repo := &fakeUserRepo{byID: map[string]user.User{
		"u1": {ID: "u1", Email: "boss@turbo.fm", Role: user.RoleMasterAdmin, IsVerified: true},
		"u2": {ID: "u2", Email: "new@turbo.fm", Role: user.RoleUser},
	}}
	return NewUserService(repo), repo
}

func TestUserService_UpdateRole(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		role    string
		wantErr error
	}{
		{name: "promote other user", id: "u2", role: "admin"},
		{name: "self", id: "u1", role: "user", wantErr: user.ErrCannotModifySelf},
		{name: "missing user", id: "u9", role: "admin", wantErr: user.ErrUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newUserFixture()
			resp, err := svc.UpdateRole(callerContext(t, "u1"), user.UpdateUserRoleRequest{ID: tt.id, Role: tt.role})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.role, resp.Role)
			assert.Equal(t, user.Role(tt.role), repo.byID[tt.id].Role)
		})
	}
}

func TestUserService_UpdateRole_InvalidRole(t *testing.T) {
	svc, _ := newUserFixture()
	_, err := svc.UpdateRole(callerContext(t, "u1"), user.UpdateUserRoleRequest{ID: "u2", Role: "owner"})
	assert.Error(t, err)
}

func TestUserService_UpdateVerification(t *testing.T) {
	svc, repo := newUserFixture()
	approve := true

	resp, err := svc.UpdateVerification(callerContext(t, "u1"), user.UpdateVerificationRequest{ID: "u2", IsVerified: &approve})
	require.NoError(t, err)
	assert.True(t, resp.IsVerified)
	assert.True(t, repo.byID["u2"].IsVerified)

	_, err = svc.UpdateVerification(callerContext(t, "u1"), user.UpdateVerificationRequest{ID: "u1", IsVerified: &approve})
	assert.ErrorIs(t, err, user.ErrCannotModifySelf)

	_, err = svc.UpdateVerification(callerContext(t, "u1"), user.UpdateVerificationRequest{ID: "u2"})
	assert.Error(t, err)
}

func TestUserService_ListUsers(t *testing.T) {
	svc, _ := newUserFixture()
	list, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "new@turbo.fm", list[0].Email)
}

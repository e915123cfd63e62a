package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajputgovind/Trip--Project-Apis/internal/config"
	"github.com/rajputgovind/Trip--Project-Apis/internal/domain/role"
	"github.com/rajputgovind/Trip--Project-Apis/internal/domain/user"
	"github.com/rajputgovind/Trip--Project-Apis/internal/middleware"
)

const testSecret = "router-test-secret"

type userDirectory struct {
	users map[string]*user.User
}

func (d *userDirectory) Create(_ context.Context, u user.User) (*user.User, error) {
	cp := u
	d.users[u.ID] = &cp
	return &u, nil
}

func (d *userDirectory) Get(_ context.Context, id string) (*user.User, error) {
	u, ok := d.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", user.ErrNotFound, id)
	}
	cp := *u
	return &cp, nil
}

func (d *userDirectory) GetByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range d.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (d *userDirectory) Update(_ context.Context, u *user.User) error {
	cp := *u
	d.users[u.ID] = &cp
	return nil
}

func (d *userDirectory) ListByRole(_ context.Context, roleID string) ([]user.User, error) {
	var out []user.User
	for _, u := range d.users {
		if u.RoleID == roleID && !u.IsDeleted {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (d *userDirectory) CountByRole(_ context.Context, roleID string) (int, error) {
	out, _ := d.ListByRole(context.Background(), roleID)
	return len(out), nil
}

type roleDirectory struct{}

func (roleDirectory) Get(_ context.Context, id string) (*role.Role, error) {
	for _, name := range []string{role.Admin, role.Organizer, role.User} {
		if id == "role-"+name {
			return &role.Role{ID: id, RoleName: name}, nil
		}
	}
	return nil, fmt.Errorf("role %s not found", id)
}

func (roleDirectory) GetByName(_ context.Context, roleName string) (*role.Role, error) {
	return &role.Role{ID: "role-" + roleName, RoleName: roleName}, nil
}

type noTrips struct{}

func (noTrips) Count(_ context.Context) (int, error) { return 0, nil }

type noMail struct{}

func (noMail) OrganizerRegistered(_, _, _ string)    {}
func (noMail) OrganizerDecision(_, _ string, _ bool) {}
func (noMail) PasswordResetOTP(_, _ string)          {}

func adminRouter(t *testing.T) (http.Handler, *userDirectory) {
	t.Helper()
	store := &userDirectory{users: map[string]*user.User{
		"u-org":   {ID: "u-org", Name: "Olga Organizer", Email: "olga@trips.example", RoleID: "role-" + role.Organizer, IsOrganizer: true},
		"u-plain": {ID: "u-plain", Name: "Pat Plain", Email: "pat@trips.example", RoleID: "role-" + role.User},
	}}
	sign := func(userID, email, roleName string, isOrganizer bool) (string, error) {
		return middleware.SignToken(testSecret, userID, email, roleName, isOrganizer)
	}
	svc := user.NewService(store, roleDirectory{}, noTrips{}, noMail{}, sign)
	h := NewRouter(RouterDeps{
		Cfg:     config.Config{JWTSecret: testSecret},
		UserSvc: svc,
	})
	return h, store
}

func adminGet(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	token, err := middleware.SignToken(testSecret, "u-admin", "admin@trips.example", role.Admin, false)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAdminUserDetailRoutes(t *testing.T) {
	h, _ := adminRouter(t)

	t.Run("fetches a user with its role", func(t *testing.T) {
		rec := adminGet(t, h, "/v1/admin/users/u-plain")
		require.Equal(t, 200, rec.Code)

		var body struct {
			Success bool `json:"success"`
			Data    struct {
				ID   string `json:"id"`
				Role *struct {
					RoleName string `json:"roleName"`
				} `json:"role"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.True(t, body.Success)
		assert.Equal(t, "u-plain", body.Data.ID)
		require.NotNil(t, body.Data.Role)
		assert.Equal(t, role.User, body.Data.Role.RoleName)
	})

	t.Run("unknown user is 404", func(t *testing.T) {
		rec := adminGet(t, h, "/v1/admin/users/ghost")
		assert.Equal(t, 404, rec.Code)
	})

	t.Run("fetches a single organizer", func(t *testing.T) {
		rec := adminGet(t, h, "/v1/admin/organizers/u-org")
		require.Equal(t, 200, rec.Code)

		var body struct {
			Data struct {
				ID   string `json:"id"`
				Role *struct {
					RoleName string `json:"roleName"`
				} `json:"role"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "u-org", body.Data.ID)
		require.NotNil(t, body.Data.Role)
		assert.Equal(t, role.Organizer, body.Data.Role.RoleName)
	})

	t.Run("plain users are not organizers", func(t *testing.T) {
		rec := adminGet(t, h, "/v1/admin/organizers/u-plain")
		assert.Equal(t, 404, rec.Code)
	})

	t.Run("non-admin tokens are forbidden", func(t *testing.T) {
		token, err := middleware.SignToken(testSecret, "u-plain", "pat@trips.example", role.User, false)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/v1/admin/users/u-plain", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, 403, rec.Code)
	})
}

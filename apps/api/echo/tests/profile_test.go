package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/elevate/core/profile"
	"github.com/trezcool/elevate/tests"
)

func TestHome(t *testing.T) {
	a := setup(t)
	req, rec := newRequest(http.MethodGet, "/")
	a.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome to Elevate API!", rec.Body.String())
}

func TestCreateAccount(t *testing.T) {
	a := setup(t)

	body := marshalObj(t, profile.NewProfile{Name: " Alice ", Age: 15, School: "Greenwood", Grade: "10TH", Theme: "Ocean"})
	req, rec := newRequest(http.MethodPost, "/v1/auth", body)
	a.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var res struct {
		Message string `json:"message"`
		UserID  string `json:"user_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "user created successfully", res.Message)
	_, err := uuid.Parse(res.UserID)
	assert.NoError(t, err)

	p, err := a.profileRepo.GetProfileByID(context.Background(), res.UserID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", p.Name)
	assert.Equal(t, 15, p.Age)
	assert.Equal(t, "Greenwood", p.School)
	assert.Equal(t, profile.Grade10, p.Grade)
	assert.Equal(t, profile.ThemeOcean, p.Theme)
	assert.False(t, p.JoinedAt.IsZero())

	// the admins are notified
	sent := a.mail.SentMessages()
	require.Len(t, sent, 1)
	assert.Equal(t, "New sign-up: Alice", sent[0].Subject)
	assert.Equal(t, "admin@elevate.test", sent[0].To[0].Address)
	assert.Contains(t, sent[0].TextContent, "School: Greenwood")
}

func TestCreateAccountInvalid(t *testing.T) {
	a := setup(t)

	tests := []httpTest{
		{
			name:     "missing fields",
			method:   http.MethodPost,
			path:     "/v1/auth",
			body:     []byte(`{"name":"Alice","age":15,"school":"Greenwood"}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"grade":"this field is required","theme":"this field is required"}`),
		},
		{
			name:     "invalid choices",
			method:   http.MethodPost,
			path:     "/v1/auth",
			body:     []byte(`{"name":"Jane3","age":15,"school":"Greenwood","grade":"8th","theme":"neon"}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{
				"name":"names can only contain letters, spaces, and apostrophes",
				"grade":"please select a valid grade",
				"theme":"please select a valid theme"
			}`),
		},
		{
			name:     "malformed json",
			method:   http.MethodPost,
			path:     "/v1/auth",
			body:     []byte(`{"name":`),
			wantCode: http.StatusBadRequest,
		},
	}
	runTests(t, a, tests)

	profiles, err := a.profileRepo.FilterProfiles(context.Background(), profile.QueryFilter{})
	require.NoError(t, err)
	assert.Empty(t, profiles)
	assert.Empty(t, a.mail.SentMessages())
}

func TestCatalogues(t *testing.T) {
	a := setup(t)

	tests := []httpTest{
		{
			name:     "grades",
			method:   http.MethodGet,
			path:     "/v1/grades",
			wantCode: http.StatusOK,
			wantData: []byte(`["9th","10th","11th","12th"]`),
		},
		{
			name:     "themes",
			method:   http.MethodGet,
			path:     "/v1/themes",
			wantCode: http.StatusOK,
			wantData: marshalObj(t, profile.Themes),
		},
	}
	runTests(t, a, tests)
}

func TestProfileDetail(t *testing.T) {
	a := setup(t)
	p := testutil.CreateProfile(t, a.profileRepo, "Alice", 15, "Greenwood", profile.Grade10, profile.ThemeOcean)

	tests := []httpTest{
		{
			name:     "existing",
			method:   http.MethodGet,
			path:     "/v1/profiles/" + p.ID,
			wantCode: http.StatusOK,
			wantData: marshalObj(t, p),
		},
		{
			name:     "unknown",
			method:   http.MethodGet,
			path:     "/v1/profiles/" + uuid.NewString(),
			wantCode: http.StatusNotFound,
			wantData: marshalObj(t, httpErr{Error: "not found"}),
		},
		{
			name:     "malformed id",
			method:   http.MethodGet,
			path:     "/v1/profiles/abc",
			wantCode: http.StatusNotFound,
			wantData: marshalObj(t, httpErr{Error: "not found"}),
		},
	}
	runTests(t, a, tests)
}

func TestUpdateProfile(t *testing.T) {
	a := setup(t)
	joined := time.Now().UTC().Add(-24 * time.Hour)
	p := testutil.CreateProfile(t, a.profileRepo, "Alice", 15, "Greenwood", profile.Grade10, profile.ThemeOcean, joined)

	req, rec := newRequest(http.MethodPut, "/v1/profiles/"+p.ID, []byte(`{"theme":"dracula","age":16}`))
	a.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got profile.Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, "Alice", got.Name)
	assert.Equal(t, 16, got.Age)
	assert.Equal(t, profile.ThemeDracula, got.Theme)
	assert.True(t, got.JoinedAt.Equal(p.JoinedAt))
	assert.True(t, got.UpdatedAt.After(p.UpdatedAt))

	stored, err := a.profileRepo.GetProfileByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, profile.ThemeDracula, stored.Theme)

	tests := []httpTest{
		{
			name:     "invalid theme",
			method:   http.MethodPut,
			path:     "/v1/profiles/" + p.ID,
			body:     []byte(`{"theme":"neon"}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"theme":"please select a valid theme"}`),
		},
		{
			name:     "unknown profile",
			method:   http.MethodPut,
			path:     "/v1/profiles/" + uuid.NewString(),
			body:     []byte(`{"theme":"dark"}`),
			wantCode: http.StatusNotFound,
		},
	}
	runTests(t, a, tests)
}

func TestDeleteProfile(t *testing.T) {
	a := setup(t)
	p := testutil.CreateProfile(t, a.profileRepo, "Alice", 15, "Greenwood", profile.Grade10, profile.ThemeOcean)
	other := testutil.CreateProfile(t, a.profileRepo, "Bob", 14, "Riverside", profile.Grade9, profile.ThemeDark)

	req, rec := newRequest(http.MethodDelete, "/v1/profiles/"+p.ID)
	a.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	_, err := a.profileRepo.GetProfileByID(context.Background(), p.ID)
	assert.Equal(t, profile.ErrNotFound, err)
	_, err = a.profileRepo.GetProfileByID(context.Background(), other.ID)
	assert.NoError(t, err)

	req, rec = newRequest(http.MethodDelete, "/v1/profiles/"+p.ID)
	a.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

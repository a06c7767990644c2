package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sahayak/sahayak-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_InjectsBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := New(server.URL, func() string { return "token-123" })
	_, err := client.MySubjects(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Bearer token-123", gotAuth)
}

func TestClient_AnonymousOmitsAuthHeader(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := New(server.URL, func() string { return "" })
	_, err := client.ListSubjects(context.Background(), "", 0, "")

	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClient_ListSubjectsQueryParams(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := New(server.URL, func() string { return "" })
	_, err := client.ListSubjects(context.Background(), "CSE", 2, "math")

	require.NoError(t, err)
	assert.Contains(t, gotQuery, "department=CSE")
	assert.Contains(t, gotQuery, "semester=2")
	assert.Contains(t, gotQuery, "search=math")
}

func TestClient_DetailSurfacedVerbatim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"detail": "Slug already in use"}`))
	}))
	defer server.Close()

	client := New(server.URL, func() string { return "t" })
	_, err := client.CreateSubject(context.Background(), &domain.SubjectCreateRequest{Slug: "os"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "Slug already in use", apiErr.Detail)
}

func TestClient_EnvelopeErrorMessageFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": {"code": "BAD_REQUEST", "message": "role must be one of admin, contributor, reader"}}`))
	}))
	defer server.Close()

	client := New(server.URL, func() string { return "t" })
	err := client.UpdateSubject(context.Background(), "s-1", &domain.SubjectUpdateRequest{})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "role must be one of admin, contributor, reader", apiErr.Detail)
}

func TestClient_UnparsableErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`upstream exploded`))
	}))
	defer server.Close()

	client := New(server.URL, func() string { return "" })
	_, err := client.GetSubject(context.Background(), "os")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "request failed", apiErr.Detail)
}

func TestIsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail": "Subject not found"}`))
	}))
	defer server.Close()

	client := New(server.URL, func() string { return "" })
	_, err := client.GetSubject(context.Background(), "missing")

	assert.True(t, IsNotFound(err))
	assert.False(t, IsNotFound(nil))
}

func TestClient_CreateSubjectReturnsID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"message": "Subject submitted for review", "id": "s-new"}`))
	}))
	defer server.Close()

	client := New(server.URL, func() string { return "t" })
	id, err := client.CreateSubject(context.Background(), &domain.SubjectCreateRequest{
		Name: "Operating Systems",
		Slug: "os",
	})

	require.NoError(t, err)
	assert.Equal(t, "s-new", id)
}

func TestClient_LoginDecodesSessionUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"access_token": "tok", "token_type": "bearer", "user": {"id": "u-1", "username": "asha", "display_name": "Asha", "role": "contributor"}}`))
	}))
	defer server.Close()

	client := New(server.URL, func() string { return "" })
	resp, err := client.Login(context.Background(), "asha@test.com", "password123")

	require.NoError(t, err)
	assert.Equal(t, "tok", resp.AccessToken)
	assert.Equal(t, "bearer", resp.TokenType)
	require.NotNil(t, resp.User)
	assert.Equal(t, domain.RoleContributor, resp.User.Role)
}

package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fleveque/company-lookup/internal/model"
)

// fakeAPI stands in for the Amplemarket endpoint and counts the requests it receives.
type fakeAPI struct {
	server  *httptest.Server
	calls   atomic.Int32
	lastReq atomic.Pointer[http.Request]
}

func newFakeAPI(t *testing.T, handler http.HandlerFunc) *fakeAPI {
	t.Helper()

	api := &fakeAPI{}
	api.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		api.calls.Add(1)
		api.lastReq.Store(r.Clone(context.Background()))
		handler(w, r)
	}))
	t.Cleanup(api.server.Close)
	return api
}

func jsonResponse(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func TestFindCompany_Success(t *testing.T) {
	api := newFakeAPI(t, jsonResponse(http.StatusOK,
		`{"name":"Acme","website":"acme.com","technologies":["AWS","React"],"employees":120}`))
	p := NewAmplemarketProvider("secret", api.server.URL, 0, zap.NewNop())

	rec, err := p.FindCompany(context.Background(), "https://acme.com/about")
	require.NoError(t, err)

	want := model.CompanyRecord{
		"name":         "Acme",
		"website":      "acme.com",
		"technologies": []any{"AWS", "React"},
		"employees":    float64(120),
	}
	if diff := cmp.Diff(want, rec); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}

	req := api.lastReq.Load()
	require.NotNil(t, req)
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "Bearer secret", req.Header.Get("Authorization"))
	assert.Equal(t, "acme.com", req.URL.Query().Get("domain"))
	assert.Len(t, req.URL.Query(), 1, "exactly one query parameter")
	assert.Equal(t, int32(1), api.calls.Load())
}

func TestFindCompany_LinkedInParam(t *testing.T) {
	api := newFakeAPI(t, jsonResponse(http.StatusOK, `{"name":"Acme"}`))
	p := NewAmplemarketProvider("secret", api.server.URL, 0, zap.NewNop())

	_, err := p.FindCompany(context.Background(), "https://www.linkedin.com/company/acme")
	require.NoError(t, err)

	q := api.lastReq.Load().URL.Query()
	assert.Equal(t, "https://www.linkedin.com/company/acme", q.Get("linkedin_url"))
	assert.False(t, q.Has("domain"))
}

func TestFindCompany_MissingCredential(t *testing.T) {
	api := newFakeAPI(t, jsonResponse(http.StatusOK, `{}`))
	p := NewAmplemarketProvider("", api.server.URL, 0, zap.NewNop())

	rec, err := p.FindCompany(context.Background(), "acme.com")
	assert.Nil(t, rec)
	assert.ErrorIs(t, err, ErrMissingCredential)
	assert.Equal(t, int32(0), api.calls.Load(), "no request without a credential")
}

func TestFindCompany_NotFound(t *testing.T) {
	api := newFakeAPI(t, jsonResponse(http.StatusNotFound, `{"error":"not found"}`))
	p := NewAmplemarketProvider("secret", api.server.URL, 0, zap.NewNop())

	rec, err := p.FindCompany(context.Background(), "nope.example")
	assert.Nil(t, rec)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindCompany_HTTPError(t *testing.T) {
	api := newFakeAPI(t, jsonResponse(http.StatusInternalServerError, "upstream exploded\n"))
	p := NewAmplemarketProvider("secret", api.server.URL, 0, zap.NewNop())

	rec, err := p.FindCompany(context.Background(), "acme.com")
	assert.Nil(t, rec)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	assert.Equal(t, "upstream exploded\n", httpErr.Body)
	assert.Equal(t, "500 Internal Server Error", httpErr.Error())
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestFindCompany_Unauthorized(t *testing.T) {
	api := newFakeAPI(t, jsonResponse(http.StatusUnauthorized, `{"error":"bad token"}`))
	p := NewAmplemarketProvider("wrong", api.server.URL, 0, zap.NewNop())

	_, err := p.FindCompany(context.Background(), "acme.com")

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.StatusCode)
}

func TestFindCompany_DecodeError(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "html", body: "<html>oops</html>"},
		{name: "array", body: `["a","b"]`},
		{name: "null", body: "null"},
		{name: "empty", body: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeAPI(t, jsonResponse(http.StatusOK, tt.body))
			p := NewAmplemarketProvider("secret", api.server.URL, 0, zap.NewNop())

			rec, err := p.FindCompany(context.Background(), "acme.com")
			assert.Nil(t, rec)
			assert.ErrorIs(t, err, ErrDecode)

			var decodeErr *DecodeError
			require.ErrorAs(t, err, &decodeErr)
			assert.Equal(t, tt.body, decodeErr.Body)
		})
	}
}

func TestFindCompany_ConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	p := NewAmplemarketProvider("secret", addr, 0, zap.NewNop())

	rec, err := p.FindCompany(context.Background(), "acme.com")
	assert.Nil(t, rec)
	assert.ErrorIs(t, err, ErrConnection)
}

func TestFindCompany_Timeout(t *testing.T) {
	api := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})
	p := NewAmplemarketProvider("secret", api.server.URL, 50*time.Millisecond, zap.NewNop())

	rec, err := p.FindCompany(context.Background(), "acme.com")
	assert.Nil(t, rec)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.NotErrorIs(t, err, ErrConnection)
}

func TestFindCompany_ContextDeadline(t *testing.T) {
	api := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	p := NewAmplemarketProvider("secret", api.server.URL, 0, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := p.FindCompany(ctx, "acme.com")
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestFindCompany_OtherRequestError(t *testing.T) {
	p := NewAmplemarketProvider("secret", "ftp://api.example.com/companies/find", 0, zap.NewNop())

	rec, err := p.FindCompany(context.Background(), "acme.com")
	assert.Nil(t, rec)
	assert.ErrorIs(t, err, ErrRequest)
}

func TestFindCompany_EmptyBaseURL(t *testing.T) {
	p := NewAmplemarketProvider("secret", "", 0, zap.NewNop())
	assert.Equal(t, "amplemarket", p.Name())

	rec, err := p.FindCompany(context.Background(), "acme.com")
	assert.Nil(t, rec)
	assert.ErrorIs(t, err, ErrRequest)
}

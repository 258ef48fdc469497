package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lorekeeper-lab/backend/config"
	"github.com/lorekeeper-lab/backend/pkg/errorx"
	"github.com/lorekeeper-lab/backend/pkg/logger"
	"github.com/lorekeeper-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

type echoRequest struct {
	Name string `form:"name" json:"name"`
}

type echoResponse struct {
	Greeting string `json:"greeting"`
	UserID   string `json:"user_id"`
}

func echo(ctx context.Context, req *echoRequest) (*echoResponse, error) {
	switch req.Name {
	case "":
		return nil, errorx.New(errorx.BadRequest, "Required name")
	case "boom":
		return nil, errors.New("database is on fire")
	}

	return &echoResponse{Greeting: "hello " + req.Name, UserID: xcontext.RequestUserID(ctx)}, nil
}

type envelope struct {
	Code  int64        `json:"code"`
	Error string       `json:"error"`
	Data  echoResponse `json:"data"`
}

func newTestRouter() *Router {
	ctx := xcontext.WithLogger(context.Background(), logger.NewNopLogger())
	return New(ctx)
}

func do(t *testing.T, h http.Handler, method, target, body string) (int, envelope) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func TestRouter_Envelope(t *testing.T) {
	r := newTestRouter()
	GET(r, "/echo", echo)
	POST(r, "/echo", echo)
	h := r.Handler(config.ServerConfigs{})

	tests := []struct {
		name       string
		method     string
		target     string
		body       string
		wantStatus int
		wantCode   int64
		wantError  string
		wantData   string
	}{
		{
			name:       "get binds query",
			method:     http.MethodGet,
			target:     "/echo?name=alice",
			wantStatus: http.StatusOK,
			wantData:   "hello alice",
		},
		{
			name:       "post binds json",
			method:     http.MethodPost,
			target:     "/echo",
			body:       `{"name":"bob"}`,
			wantStatus: http.StatusOK,
			wantData:   "hello bob",
		},
		{
			name:       "malformed json",
			method:     http.MethodPost,
			target:     "/echo",
			body:       `{"name":`,
			wantStatus: http.StatusBadRequest,
			wantCode:   int64(errorx.BadRequest),
			wantError:  "Invalid request",
		},
		{
			name:       "domain error",
			method:     http.MethodGet,
			target:     "/echo",
			wantStatus: http.StatusBadRequest,
			wantCode:   int64(errorx.BadRequest),
			wantError:  "Required name",
		},
		{
			name:       "unknown error is not echoed",
			method:     http.MethodGet,
			target:     "/echo?name=boom",
			wantStatus: http.StatusInternalServerError,
			wantCode:   int64(errorx.Unknown.Code),
			wantError:  errorx.Unknown.Message,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := do(t, h, tt.method, tt.target, tt.body)
			require.Equal(t, tt.wantStatus, status)
			require.Equal(t, tt.wantCode, resp.Code)
			require.Equal(t, tt.wantError, resp.Error)
			require.Equal(t, tt.wantData, resp.Data.Greeting)
		})
	}
}

func TestRouter_BeforeAndCloser(t *testing.T) {
	r := newTestRouter()

	var closedErr error
	closed := 0
	r.AddCloser(func(ctx context.Context) {
		closed++
		closedErr = xcontext.Error(ctx)
	})

	authRouter := r.Branch()
	authRouter.Before(func(ctx context.Context) (context.Context, error) {
		if xcontext.HTTPRequest(ctx).Header.Get("Authorization") == "" {
			return ctx, errorx.New(errorx.Unauthenticated, "")
		}
		return xcontext.WithRequestUserID(ctx, "user1"), nil
	})

	GET(r, "/public", echo)
	GET(authRouter, "/private", echo)
	h := r.Handler(config.ServerConfigs{})

	// The middleware of the branch does not leak into the parent router.
	status, resp := do(t, h, http.MethodGet, "/public?name=alice", "")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "", resp.Data.UserID)
	require.NoError(t, closedErr)

	status, resp = do(t, h, http.MethodGet, "/private?name=alice", "")
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, int64(errorx.Unauthenticated), resp.Code)
	require.True(t, errorx.Is(closedErr, errorx.Unauthenticated))

	req := httptest.NewRequest(http.MethodGet, "/private?name=alice", nil)
	req.Header.Set("Authorization", "Bearer x")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"user_id":"user1"`)

	require.Equal(t, 3, closed)
}

func TestRouter_Handle(t *testing.T) {
	r := newTestRouter()
	r.Handle(http.MethodGet, "/metrics", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	w := httptest.NewRecorder()
	r.Handler(config.ServerConfigs{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "ok", w.Body.String())
}

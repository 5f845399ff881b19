package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"lombard-backend/pkg/id"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

type idempApp struct {
	e     *echo.Echo
	rdb   *redis.Client
	calls int
}

func newIdempApp(t *testing.T) *idempApp {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	app := &idempApp{e: echo.New(), rdb: rdb}
	app.e.POST("/loans", func(c echo.Context) error {
		app.calls++
		return c.JSON(http.StatusCreated, map[string]any{"loan_id": id.NewID32(), "call": app.calls})
	}, RequireIdentity(), Idempotency(rdb, 5*time.Minute))
	app.e.GET("/loans", func(c echo.Context) error {
		app.calls++
		return c.JSON(http.StatusOK, map[string]int{"call": app.calls})
	}, RequireIdentity(), Idempotency(rdb, 5*time.Minute))
	return app
}

func (a *idempApp) do(method, body string, headers map[string]string) *httptest.ResponseRecorder {
	var rd *strings.Reader
	if body == "" {
		rd = strings.NewReader("")
	} else {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, "/loans", rd)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func idempHeaders(userID, reqID string) map[string]string {
	return map[string]string{
		"Ax-User-Id":    userID,
		"Ax-User-Role":  "borrower",
		"Ax-Request-Id": reqID,
		"Ax-Request-At": fmt.Sprintf("%d", time.Now().Unix()),
	}
}

func TestIdempotencyReplaysRecordedResponse(t *testing.T) {
	app := newIdempApp(t)
	userID := id.NewID32()
	reqID := id.NewID32()
	body := `{"principal":50000}`

	first := app.do(http.MethodPost, body, idempHeaders(userID, reqID))
	if first.Code != http.StatusCreated {
		t.Fatalf("first status = %d, want 201", first.Code)
	}

	second := app.do(http.MethodPost, body, idempHeaders(userID, reqID))
	if second.Code != http.StatusCreated {
		t.Fatalf("replay status = %d, want 201", second.Code)
	}
	if app.calls != 1 {
		t.Fatalf("handler ran %d times, want 1", app.calls)
	}
	if first.Body.String() != second.Body.String() {
		t.Errorf("replay body differs:\nfirst:  %s\nsecond: %s", first.Body.String(), second.Body.String())
	}
}

func TestIdempotencyRejectsReuseWithDifferentBody(t *testing.T) {
	app := newIdempApp(t)
	userID := id.NewID32()
	reqID := id.NewID32()

	if rec := app.do(http.MethodPost, `{"principal":50000}`, idempHeaders(userID, reqID)); rec.Code != http.StatusCreated {
		t.Fatalf("first status = %d", rec.Code)
	}
	rec := app.do(http.MethodPost, `{"principal":99999}`, idempHeaders(userID, reqID))
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "different body") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestIdempotencyScopedPerUser(t *testing.T) {
	app := newIdempApp(t)
	reqID := id.NewID32()
	body := `{"principal":50000}`

	if rec := app.do(http.MethodPost, body, idempHeaders(id.NewID32(), reqID)); rec.Code != http.StatusCreated {
		t.Fatalf("first status = %d", rec.Code)
	}
	if rec := app.do(http.MethodPost, body, idempHeaders(id.NewID32(), reqID)); rec.Code != http.StatusCreated {
		t.Fatalf("second user status = %d", rec.Code)
	}
	if app.calls != 2 {
		t.Fatalf("handler ran %d times, want 2 (one per user)", app.calls)
	}
}

func TestIdempotencyHeaderValidation(t *testing.T) {
	app := newIdempApp(t)
	userID := id.NewID32()

	cases := []struct {
		name   string
		mutate func(h map[string]string)
		want   string
	}{
		{"missing request id", func(h map[string]string) { delete(h, "Ax-Request-Id") }, "missing Ax-Request-Id"},
		{"malformed request id", func(h map[string]string) { h["Ax-Request-Id"] = "not-an-id" }, "invalid Ax-Request-Id"},
		{"missing request at", func(h map[string]string) { delete(h, "Ax-Request-At") }, "missing Ax-Request-At"},
		{"naive timestamp", func(h map[string]string) { h["Ax-Request-At"] = "2026-03-01 10:00:00" }, "RFC3339"},
		{"stale timestamp", func(h map[string]string) {
			h["Ax-Request-At"] = fmt.Sprintf("%d", time.Now().Add(-time.Hour).Unix())
		}, "too skewed"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := idempHeaders(userID, id.NewID32())
			tc.mutate(h)
			rec := app.do(http.MethodPost, `{}`, h)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tc.want) {
				t.Errorf("body = %s, want %q", rec.Body.String(), tc.want)
			}
		})
	}
}

func TestIdempotencyAcceptsUUIDRequestID(t *testing.T) {
	app := newIdempApp(t)
	h := idempHeaders(id.NewID32(), "3f2e1d4c-aa12-4b34-9c56-0011aabbccdd")
	if rec := app.do(http.MethodPost, `{}`, h); rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
}

func TestIdempotencySkipsReads(t *testing.T) {
	app := newIdempApp(t)
	h := map[string]string{"Ax-User-Id": id.NewID32(), "Ax-User-Role": "borrower"}
	for i := 0; i < 2; i++ {
		if rec := app.do(http.MethodGet, "", h); rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
	}
	if app.calls != 2 {
		t.Fatalf("handler ran %d times, want 2 (no idempotency on GET)", app.calls)
	}
}

func TestIdempotencyRejectsInFlightDuplicate(t *testing.T) {
	app := newIdempApp(t)
	userID := id.NewID32()
	reqID := id.NewID32()
	body := `{"principal":50000}`

	// plant a provisional lock as if the first attempt is still running
	entry := idempEntry{InProgress: true, BodySHA256: bodyHash([]byte(body)), RequestID: reqID}
	payload, _ := json.Marshal(entry)
	key := buildKey(http.MethodPost, "/loans", userID, reqID)
	if err := app.rdb.Set(context.Background(), key, payload, time.Minute).Err(); err != nil {
		t.Fatalf("seed lock: %v", err)
	}

	rec := app.do(http.MethodPost, body, idempHeaders(userID, reqID))
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "in progress") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

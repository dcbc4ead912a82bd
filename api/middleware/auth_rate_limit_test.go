package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sathwikreddyb/aqua-farms-backend/pkg/logger"
)

type memoryCounterStore struct {
	counts map[string]int64
}

func (s *memoryCounterStore) IncrWithTTL(_ context.Context, key string, _ time.Duration) (int64, error) {
	if s.counts == nil {
		s.counts = map[string]int64{}
	}
	s.counts[key]++
	return s.counts[key], nil
}

func TestAuthRateLimit(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})

	policy := ThrottlePolicy{Name: "login", Window: time.Minute, IPLimit: 3, EmailLimit: 2}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The body must still be readable downstream after the email sniff.
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), "email") {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	send := func(handler http.Handler, remoteAddr, email string) *httptest.ResponseRecorder {
		payload := `{"email":"` + email + `","password":"secret123"}`
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(payload))
		req.RemoteAddr = remoteAddr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	t.Run("per email", func(t *testing.T) {
		handler := AuthRateLimit(policy, &memoryCounterStore{}, logg)(next)

		// Distinct IPs keep the IP counters below their limit.
		assert.Equal(t, http.StatusOK, send(handler, "10.0.0.1:1111", "a@b.com").Code)
		assert.Equal(t, http.StatusOK, send(handler, "10.0.0.2:1111", "a@b.com").Code)
		assert.Equal(t, http.StatusTooManyRequests, send(handler, "10.0.0.3:1111", "a@b.com").Code)

		// Another email is unaffected.
		assert.Equal(t, http.StatusOK, send(handler, "10.0.0.4:1111", "c@d.com").Code)
	})

	t.Run("per ip", func(t *testing.T) {
		handler := AuthRateLimit(policy, &memoryCounterStore{}, logg)(next)

		for i := 0; i < 3; i++ {
			email := string(rune('a'+i)) + "@example.com"
			assert.Equal(t, http.StatusOK, send(handler, "10.1.0.1:2222", email).Code)
		}
		assert.Equal(t, http.StatusTooManyRequests, send(handler, "10.1.0.1:2222", "z@example.com").Code)
	})

	t.Run("disabled policy passes through", func(t *testing.T) {
		handler := AuthRateLimit(ThrottlePolicy{}, &memoryCounterStore{}, logg)(next)
		for i := 0; i < 10; i++ {
			assert.Equal(t, http.StatusOK, send(handler, "10.2.0.1:3333", "a@b.com").Code)
		}
	})
}

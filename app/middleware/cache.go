package middleware

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"yatube/app/auth"
	"yatube/app/cache"
	"yatube/app/logger"
)

// bodyRecorder tees the response so it can be stored after the handler ran.
type bodyRecorder struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (r *bodyRecorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

// PageCacheKey identifies a cacheable response: the same URL renders
// differently per user and per output format.
func PageCacheKey(r *http.Request) string {
	userID := 0
	if user := auth.UserFromContext(r.Context()); user != nil {
		userID = user.ID
	}
	return fmt.Sprintf("%s|json=%t|user=%d|%s", r.Method, WantsJSON(r), userID, r.URL.RequestURI())
}

// CachePage serves successful GET responses from c for ttl. Anything that
// is not a 200 is passed through untouched.
func CachePage(c cache.PageCache, ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if c == nil || r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			key := PageCacheKey(r)
			if entry, ok := c.Get(r.Context(), key); ok {
				w.Header().Set("Content-Type", entry.ContentType)
				w.Header().Set("X-Cache", "HIT")
				w.WriteHeader(entry.Status)
				w.Write(entry.Body)
				return
			}

			rec := &bodyRecorder{ResponseWriter: w}
			w.Header().Set("X-Cache", "MISS")
			next.ServeHTTP(rec, r)
			if rec.status != http.StatusOK && rec.status != 0 {
				return
			}
			entry := &cache.Entry{
				Status:      http.StatusOK,
				ContentType: w.Header().Get("Content-Type"),
				Body:        rec.body.Bytes(),
			}
			if err := c.Set(r.Context(), key, entry, ttl); err != nil {
				logger.Log.WithError(err).WithField("key", key).Warn("page not cached")
			}
		})
	}
}

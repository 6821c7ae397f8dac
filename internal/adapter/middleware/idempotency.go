package middleware

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

const (
	// A crashed handler releases its claim after this long.
	provisionalLockTTL = 60 * time.Second
	// Tolerated drift between the Ax-Request-At header and server time.
	maxClockSkew = 10 * time.Minute
)

// idempEntry is the Redis record for one keyed request: a claim while the
// handler runs, then the final response kept around for replay.
type idempEntry struct {
	InProgress  bool      `json:"in_progress"`
	Code        int       `json:"code"`
	Body        []byte    `json:"body"`
	BodySHA256  string    `json:"body_sha256"`
	RequestID   string    `json:"request_id"`
	RequestAtMS int64     `json:"request_at_ms"`
	CreatedAt   time.Time `json:"created_at"`
}

// captureWriter tees the response so the final body can be stored for replay.
type captureWriter struct {
	http.ResponseWriter
	buf  bytes.Buffer
	code int
}

func (w *captureWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyMiddleware guards mutating routes: the same actor replaying the
// same Ax-Request-Id with the same body gets the stored response back instead
// of a second execution. A different body under the same id, or a request
// still in flight, is a conflict. Reads pass through untouched. The actor is
// whoever performs the mutation: buyer on checkout, farmer on dispatch or
// loan payment.
func IdempotencyMiddleware(rdb *redis.Client, ttl time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			switch req.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}

			reqID, actorID, reqAt, err := readIdempHeaders(req)
			if err != nil {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
			}

			var body []byte
			if req.Body != nil {
				body, _ = io.ReadAll(req.Body)
			}
			req.Body = io.NopCloser(bytes.NewReader(body))
			hash := bodyHash(body)

			key := buildKey(req.Method, c.Path(), actorID, reqID)
			ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
			defer cancel()

			claimed, err := provisionalSet(ctx, rdb, key, idempEntry{
				InProgress:  true,
				BodySHA256:  hash,
				RequestID:   reqID,
				RequestAtMS: reqAt.UnixMilli(),
				CreatedAt:   nowUTC(),
			})
			if err != nil {
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "idempotency store unavailable"})
			}
			if !claimed {
				return replayOrConflict(ctx, c, rdb, key, hash)
			}

			cw := &captureWriter{ResponseWriter: c.Response().Writer, code: http.StatusOK}
			c.Response().Writer = cw
			if err := next(c); err != nil {
				c.Error(err)
			}

			_ = saveFinal(context.Background(), rdb, key, idempEntry{
				Code:        cw.code,
				Body:        cw.buf.Bytes(),
				BodySHA256:  hash,
				RequestID:   reqID,
				RequestAtMS: reqAt.UnixMilli(),
				CreatedAt:   nowUTC(),
			}, ttl)
			return nil
		}
	}
}

func readIdempHeaders(req *http.Request) (reqID, actorID string, reqAt time.Time, err error) {
	reqID = strings.TrimSpace(req.Header.Get("Ax-Request-Id"))
	if reqID == "" {
		return "", "", time.Time{}, errors.New("missing Ax-Request-Id")
	}
	if !validReqID(reqID) {
		return "", "", time.Time{}, errors.New("invalid Ax-Request-Id format")
	}

	reqAt, err = parseAxRequestAt(req.Header.Get("Ax-Request-At"))
	if err != nil {
		return "", "", time.Time{}, err
	}
	now := nowUTC()
	if reqAt.Before(now.Add(-maxClockSkew)) || reqAt.After(now.Add(maxClockSkew)) {
		return "", "", time.Time{}, errors.New("Ax-Request-At outside allowed clock skew")
	}

	actorID = strings.TrimSpace(req.Header.Get("Ax-Actor-Id"))
	if actorID == "" {
		return "", "", time.Time{}, errors.New("missing Ax-Actor-Id")
	}
	if !reHex32.MatchString(actorID) {
		return "", "", time.Time{}, errors.New("invalid Ax-Actor-Id")
	}
	return reqID, actorID, reqAt, nil
}

func replayOrConflict(ctx context.Context, c echo.Context, rdb *redis.Client, key, hash string) error {
	cur, err := loadEntry(ctx, rdb, key)
	if err != nil {
		log.Printf("idempotency: load %s: %v", key, err)
	}
	if cur.BodySHA256 != "" && cur.BodySHA256 != hash {
		return c.JSON(http.StatusConflict, map[string]string{"error": "Ax-Request-Id reused with different body"})
	}
	if !cur.InProgress && cur.Code != 0 && len(cur.Body) > 0 {
		return c.Blob(cur.Code, echo.MIMEApplicationJSON, cur.Body)
	}
	return c.JSON(http.StatusConflict, map[string]string{"error": "request is already in progress"})
}

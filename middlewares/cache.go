package middlewares

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/gob"
	"encoding/hex"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type cachedBody struct {
	Status int
	Header map[string][]string
	Body   []byte
}

// sha1Hex keeps Redis keys short regardless of query-string length.
func sha1Hex(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// CacheKeyFrom namespaces keys by list vs item so the invalidator can purge
// them separately. Only the public event reads are cacheable; everything
// under /events/:id/* and the per-user views carry caller-specific bodies
// and must never be served from cache.
func CacheKeyFrom(c *gin.Context) (string, string) {
	method := c.Request.Method
	path := c.FullPath()
	rawq := c.Request.URL.RawQuery

	if method != "GET" || path == "" {
		return "", ""
	}

	switch path {
	case "/events/:id":
		id := c.Param("id")
		return "cache:events:item:" + sha1Hex("GET|/events/"+id), "item"
	case "/events":
		return "cache:events:list:" + sha1Hex("GET|/events|"+rawq), "list"
	default:
		return "", ""
	}
}

func ResponseCache(rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, _ := CacheKeyFrom(c)
		if key == "" {
			c.Next()
			return
		}

		if b, err := rdb.Get(context.Background(), key).Bytes(); err == nil && len(b) > 0 {
			var hit cachedBody
			if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&hit); err == nil {
				for k, vals := range hit.Header {
					for _, v := range vals {
						c.Writer.Header().Add(k, v)
					}
				}
				c.Writer.Header().Set("X-Cache", "HIT")
				c.Status(hit.Status)
				_, _ = c.Writer.Write(hit.Body)
				c.Abort()
				return
			}
		}

		buf := &bytes.Buffer{}
		bw := &bufferedWriter{ResponseWriter: c.Writer, buf: buf}
		c.Writer = bw

		// headers flush on the first body write, so the marker must be set
		// before the handler runs
		c.Writer.Header().Set("X-Cache", "MISS")

		c.Next()

		// only 2xx responses are worth keeping
		if bw.Status() >= 200 && bw.Status() < 300 {
			item := cachedBody{
				Status: bw.Status(),
				Header: c.Writer.Header(),
				Body:   buf.Bytes(),
			}

			var o bytes.Buffer
			if err := gob.NewEncoder(&o).Encode(item); err == nil {
				_ = rdb.Set(context.Background(), key, o.Bytes(), ttl).Err()
			}
		}
	}
}

type bufferedWriter struct {
	gin.ResponseWriter
	buf *bytes.Buffer
}

func (w *bufferedWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

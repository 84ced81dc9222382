package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter() *gin.Engine {
	return gin.New()
}

// RequestID Tests
func TestRequestID(t *testing.T) {
	router := newTestRouter()
	router.Use(RequestID())
	router.GET("/test", func(c *gin.Context) {
		if RequestIDFromContext(c.Request.Context()) != GetRequestID(c) {
			t.Error("request context and gin context disagree on the request id")
		}
		c.String(http.StatusOK, GetRequestID(c))
	})

	t.Run("generates new request ID", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Status = %v, want %v", w.Code, http.StatusOK)
		}

		headerID := w.Header().Get(RequestIDHeader)
		if headerID == "" {
			t.Error("RequestID header not set")
		}
		if w.Body.String() != headerID {
			t.Errorf("Body = %v, want %v", w.Body.String(), headerID)
		}
	})

	t.Run("uses provided request ID", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(RequestIDHeader, "custom-id")
		router.ServeHTTP(w, req)

		if got := w.Header().Get(RequestIDHeader); got != "custom-id" {
			t.Errorf("RequestID header = %v, want custom-id", got)
		}
	})
}

func TestGetRequestID_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	if id := GetRequestID(c); id != "" {
		t.Errorf("GetRequestID() = %v, want empty", id)
	}
	if id := RequestIDFromContext(c.Request.Context()); id != "" {
		t.Errorf("RequestIDFromContext() = %v, want empty", id)
	}

	c.Set(RequestIDKey, 42)
	if id := GetRequestID(c); id != "" {
		t.Errorf("GetRequestID() with non-string = %v, want empty", id)
	}
}

// CORS Tests
func TestDefaultCORSConfig(t *testing.T) {
	cfg := DefaultCORSConfig()

	if len(cfg.AllowOrigins) == 0 || cfg.AllowOrigins[0] != "*" {
		t.Error("AllowOrigins should include *")
	}
	if len(cfg.AllowMethods) == 0 {
		t.Error("AllowMethods should not be empty")
	}
	if cfg.AllowCredentials {
		t.Error("AllowCredentials should be false with a wildcard origin")
	}
	if cfg.MaxAge != 12*time.Hour {
		t.Errorf("MaxAge = %v, want %v", cfg.MaxAge, 12*time.Hour)
	}
}

func TestCORS(t *testing.T) {
	router := newTestRouter()
	router.Use(CORS(DefaultCORSConfig()))
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	t.Run("regular request", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Origin", "http://example.com")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Status = %v, want %v", w.Code, http.StatusOK)
		}
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://example.com" {
			t.Errorf("Allow-Origin = %v", got)
		}
		if w.Header().Get("Access-Control-Expose-Headers") == "" {
			t.Error("Expose-Headers not set")
		}
	})

	t.Run("OPTIONS preflight", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, "/test", nil)
		req.Header.Set("Origin", "http://example.com")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("Status = %v, want %v", w.Code, http.StatusNoContent)
		}
		if w.Header().Get("Access-Control-Allow-Methods") == "" {
			t.Error("Allow-Methods header not set")
		}
		if got := w.Header().Get("Access-Control-Max-Age"); got != "43200" {
			t.Errorf("Max-Age = %v, want 43200", got)
		}
	})

	t.Run("no origin header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		router.ServeHTTP(w, req)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("Allow-Origin = %v, want *", got)
		}
	})
}

func TestCORS_SpecificOrigins(t *testing.T) {
	cfg := CORSConfig{
		AllowOrigins:     []string{"http://allowed.com"},
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Content-Type"},
		AllowCredentials: true,
	}

	router := newTestRouter()
	router.Use(CORS(cfg))
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	t.Run("allowed origin", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Origin", "http://allowed.com")
		router.ServeHTTP(w, req)

		if origin := w.Header().Get("Access-Control-Allow-Origin"); origin != "http://allowed.com" {
			t.Errorf("Allow-Origin = %v, want http://allowed.com", origin)
		}
		if w.Header().Get("Access-Control-Allow-Credentials") != "true" {
			t.Error("Allow-Credentials not set")
		}
	})

	t.Run("disallowed origin", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Origin", "http://notallowed.com")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Status = %v, want %v", w.Code, http.StatusOK)
		}
		if origin := w.Header().Get("Access-Control-Allow-Origin"); origin != "" {
			t.Errorf("Allow-Origin = %v, want empty", origin)
		}
	})
}

// Logger Middleware Tests
func TestLogger_StatusLevels(t *testing.T) {
	tests := []struct {
		name   string
		status int
		level  zapcore.Level
	}{
		{"success", http.StatusOK, zapcore.InfoLevel},
		{"redirect", http.StatusFound, zapcore.DebugLevel},
		{"client error", http.StatusBadRequest, zapcore.WarnLevel},
		{"not found", http.StatusNotFound, zapcore.WarnLevel},
		{"server error", http.StatusInternalServerError, zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			router := newTestRouter()
			router.Use(RequestID())
			router.Use(Logger(zap.New(core)))
			router.GET("/test", func(c *gin.Context) {
				c.String(tt.status, "response")
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/test?page=1", nil)
			router.ServeHTTP(w, req)

			entries := logs.All()
			if len(entries) != 1 {
				t.Fatalf("log entries = %d, want 1", len(entries))
			}
			if entries[0].Level != tt.level {
				t.Errorf("Level = %v, want %v", entries[0].Level, tt.level)
			}
			fields := entries[0].ContextMap()
			if fields["route"] != "/test" || fields["query"] != "page=1" {
				t.Errorf("fields = %v", fields)
			}
			if fields["request_id"] == "" {
				t.Error("request_id not logged")
			}
		})
	}
}

func TestLogger_TruncatesLongQuery(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	router := newTestRouter()
	router.Use(Logger(zap.New(core)))
	router.GET("/movies", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	long := "q=" + strings.Repeat("x", 1000)
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/movies?"+long, nil))

	if logs.Len() != 1 {
		t.Fatalf("log entries = %d, want 1", logs.Len())
	}
	query, _ := logs.All()[0].ContextMap()["query"].(string)
	if want := long[:maxLoggedQuery] + "..."; query != want {
		t.Errorf("query length = %d, want %d", len(query), len(want))
	}
}

func TestLogger_SkipPaths(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	router := newTestRouter()
	router.Use(Logger(zap.New(core), "/health"))
	router.GET("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if logs.Len() != 0 {
		t.Errorf("log entries = %d, want 0", logs.Len())
	}
}

// Recovery Middleware Tests
func TestRecovery(t *testing.T) {
	router := newTestRouter()
	router.Use(Recovery(zap.NewNop()))
	router.GET("/panic", func(c *gin.Context) {
		panic("test panic")
	})
	router.GET("/ok", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	t.Run("recovers from panic", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/panic", nil)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("Status = %v, want %v", w.Code, http.StatusInternalServerError)
		}

		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if body["error"] != "internal server error" {
			t.Errorf("error = %v", body["error"])
		}
	})

	t.Run("panic is visible to outer middleware", func(t *testing.T) {
		var errs []*gin.Error
		outer := newTestRouter()
		outer.Use(func(c *gin.Context) {
			c.Next()
			errs = c.Errors
		})
		outer.Use(Recovery(zap.NewNop()))
		outer.GET("/panic", func(c *gin.Context) {
			panic("store exploded")
		})

		outer.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/panic", nil))
		if len(errs) != 1 || errs[0].Error() != "panic: store exploded" {
			t.Errorf("c.Errors = %v", errs)
		}
	})

	t.Run("normal request", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ok", nil)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Status = %v, want %v", w.Code, http.StatusOK)
		}
	})
}

// Benchmarks
func BenchmarkRequestID(b *testing.B) {
	router := newTestRouter()
	router.Use(RequestID())
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
	}
}

func BenchmarkCORS(b *testing.B) {
	router := newTestRouter()
	router.Use(CORS(DefaultCORSConfig()))
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Origin", "http://example.com")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
	}
}

package content

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStore_Resolve(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/primary":
			w.Write([]byte("primary content"))
		case "/secondary":
			w.Write([]byte("secondary content"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	store := NewHTTPStore(NewHTTPStoreOptions{
		URLs: map[Variant]string{
			"primary":   server.URL + "/primary",
			"secondary": server.URL + "/secondary",
			"broken":    server.URL + "/missing",
		},
	})

	tests := []struct {
		name     string
		variant  Variant
		wantData string
		wantErr  bool
	}{
		{
			name:     "primary variant",
			variant:  "primary",
			wantData: "primary content",
		},
		{
			name:     "secondary variant",
			variant:  "secondary",
			wantData: "secondary content",
		},
		{
			name:    "missing resource",
			variant: "broken",
			wantErr: true,
		},
		{
			name:    "unconfigured variant",
			variant: "tertiary",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := store.Resolve(context.Background(), tt.variant)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, IsFetchError(err), "expected a fetch error, got %v", err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.variant, payload.Variant)
			assert.Equal(t, tt.wantData, string(payload.Data))
			assert.False(t, payload.FetchedAt.IsZero())
		})
	}
}

func TestCachingStore_ReadThrough(t *testing.T) {
	fetches := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches++
		w.Write([]byte("cached content"))
	}))
	defer server.Close()

	store := NewCachingStore(NewHTTPStore(NewHTTPStoreOptions{
		URLs: map[Variant]string{"primary": server.URL},
	}), NewInMemoryCache())

	for i := 0; i < 3; i++ {
		payload, err := store.Resolve(context.Background(), "primary")
		assert.NoError(t, err)
		assert.Equal(t, "cached content", string(payload.Data))
	}
	assert.Equal(t, 1, fetches)
}

func TestCachingStore_FetchErrorPassesThrough(t *testing.T) {
	store := NewCachingStore(NewHTTPStore(NewHTTPStoreOptions{
		URLs: map[Variant]string{},
	}), NewInMemoryCache())

	_, err := store.Resolve(context.Background(), "primary")
	assert.True(t, IsFetchError(err))
}

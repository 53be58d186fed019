package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFetchPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != randomSpeciesPath {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("<html>fish</html>"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", time.Second)
	body, err := c.FetchPage(context.Background())
	require.NoError(t, err)
	require.Equal(t, "<html>fish</html>", string(body))
}

func TestFetchImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/images/a.jpg" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte{0xff, 0xd8, 0xff})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	img, err := c.FetchImage(context.Background(), srv.URL+"/images/a.jpg")
	require.NoError(t, err)
	require.Equal(t, []byte{0xff, 0xd8, 0xff}, img)

	_, err = c.FetchImage(context.Background(), srv.URL+"/images/missing.jpg")
	require.ErrorIs(t, err, ErrFetch)
}

func TestFetchErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	c := NewClient(srv.URL, time.Second)

	_, err := c.FetchPage(context.Background())
	require.ErrorIs(t, err, ErrFetch)

	srv.Close()
	_, err = c.FetchPage(context.Background())
	require.ErrorIs(t, err, ErrFetch)
}

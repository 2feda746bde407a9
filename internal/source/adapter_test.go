// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/litfetch/pkg/types"
)

const fakePDF = "%PDF-1.4 fake body"

var testHTTP = types.HTTPConfig{UserAgent: "litfetch-test/0.1 (mailto:dev@example.org)"}

// overrideBases points all adapter base URLs at the test server and
// returns a cleanup restoring the originals.
func overrideBases(tsURL string) func() {
	origSpringer := springerAPIBase
	origWiley := wileyAPIBase
	origElsevier := elsevierAPIBase

	springerAPIBase = tsURL + "/springer/"
	wileyAPIBase = tsURL + "/wiley/"
	elsevierAPIBase = tsURL + "/elsevier/"

	return func() {
		springerAPIBase = origSpringer
		wileyAPIBase = origWiley
		elsevierAPIBase = origElsevier
	}
}

func TestForSource(t *testing.T) {
	for _, src := range types.Sources {
		a, ok := ForSource(src)
		require.True(t, ok, "adapter for %s", src)
		assert.Equal(t, src, a.Source())
	}
	_, ok := ForSource(types.SourceUnknown)
	assert.False(t, ok)
}

func TestSpringerFetchAuthAndBody(t *testing.T) {
	var gotKey, gotAccept, gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("api_key")
		gotAccept = r.Header.Get("Accept")
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/pdf")
		fmt.Fprint(w, fakePDF)
	}))
	defer ts.Close()
	defer overrideBases(ts.URL)()

	a, _ := ForSource(types.SourceSpringerNature)
	body, err := a.Fetch(context.Background(), ts.Client(), testHTTP, "10.1007/s00253-021-11284-0", "K1")
	require.NoError(t, err)
	assert.Equal(t, fakePDF, string(body))
	assert.Equal(t, "K1", gotKey, "springer key travels as query parameter")
	assert.Equal(t, "application/pdf", gotAccept)
	assert.Equal(t, testHTTP.UserAgent, gotUA)
}

func TestElsevierFetchAuthHeader(t *testing.T) {
	var gotKey string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-ELS-APIKey")
		w.Header().Set("Content-Type", "application/pdf")
		fmt.Fprint(w, fakePDF)
	}))
	defer ts.Close()
	defer overrideBases(ts.URL)()

	a, _ := ForSource(types.SourceElsevier)
	body, err := a.Fetch(context.Background(), ts.Client(), testHTTP, "10.1016/j.soilbio.2019.107567", "K2")
	require.NoError(t, err)
	assert.Equal(t, fakePDF, string(body))
	assert.Equal(t, "K2", gotKey, "elsevier key travels in X-ELS-APIKey")
}

func TestWileyFetchTokenHeader(t *testing.T) {
	var gotToken string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("Wiley-TDM-Client-Token")
		w.Header().Set("Content-Type", "application/pdf")
		fmt.Fprint(w, fakePDF)
	}))
	defer ts.Close()
	defer overrideBases(ts.URL)()

	a, _ := ForSource(types.SourceWiley)
	body, err := a.Fetch(context.Background(), ts.Client(), testHTTP, "10.1002/jez.1234", "T1")
	require.NoError(t, err)
	assert.Equal(t, fakePDF, string(body))
	assert.Equal(t, "T1", gotToken, "wiley token travels in Wiley-TDM-Client-Token")
}

func TestFetchClassification(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind Kind
	}{
		{"401 unauthorized", http.StatusUnauthorized, "", KindNoEntitlement},
		{"403 forbidden", http.StatusForbidden, "", KindNoEntitlement},
		{"404 not found", http.StatusNotFound, "", KindNotFound},
		{"429 rate limited", http.StatusTooManyRequests, "", KindTransient},
		{"500 server error", http.StatusInternalServerError, "", KindTransient},
		{"503 unavailable", http.StatusServiceUnavailable, "", KindTransient},
		{"418 unrecognized", http.StatusTeapot, "", KindTransient},
		{"200 html body", http.StatusOK, "<html>denied</html>", KindNoEntitlement},
		{"200 empty body", http.StatusOK, "", KindNoEntitlement},
	}

	for _, src := range types.Sources {
		for _, tt := range tests {
			t.Run(string(src)+"/"+tt.name, func(t *testing.T) {
				ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(tt.status)
					fmt.Fprint(w, tt.body)
				}))
				defer ts.Close()
				defer overrideBases(ts.URL)()

				a, _ := ForSource(src)
				_, err := a.Fetch(context.Background(), ts.Client(), testHTTP, "10.1002/jez.1234", "K")
				require.Error(t, err)

				var fe *FetchError
				require.True(t, errors.As(err, &fe), "error should be a *FetchError, got %T", err)
				assert.Equal(t, tt.wantKind, fe.Kind)
				assert.Equal(t, src, fe.Source)
			})
		}
	}
}

func TestFetchNetworkErrorIsTransient(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // connection refused from here on
	defer overrideBases(ts.URL)()

	a, _ := ForSource(types.SourceElsevier)
	_, err := a.Fetch(context.Background(), http.DefaultClient, testHTTP, "10.1016/x", "K")
	require.Error(t, err)

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, KindTransient, fe.Kind)
}

func TestKindErrorKind(t *testing.T) {
	assert.Equal(t, types.ErrKindNoEntitlement, KindNoEntitlement.ErrorKind())
	assert.Equal(t, types.ErrKindNotFound, KindNotFound.ErrorKind())
	assert.Equal(t, types.ErrKindTransient, KindTransient.ErrorKind())
}

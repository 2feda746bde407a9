// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"net/http"
	"net/url"

	"github.com/pdiddy/litfetch/pkg/types"
)

// wileyAPIBase is the Wiley text-and-data-mining endpoint, which returns
// the raw PDF bytes directly on success.
// Declared as a var so tests can substitute an httptest server.
var wileyAPIBase = "https://api.wiley.com/onlinelibrary/tdm/v1/articles/"

// wileyAdapter fetches from the Wiley TDM API. The token travels in the
// bearer-style Wiley-TDM-Client-Token header.
type wileyAdapter struct{}

func (wileyAdapter) Source() types.Source { return types.SourceWiley }

func (wileyAdapter) Fetch(ctx context.Context, client *http.Client, cfg types.HTTPConfig, doi, credential string) ([]byte, error) {
	u := wileyAPIBase + url.PathEscape(doi)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &FetchError{Source: types.SourceWiley, DOI: doi, Kind: KindTransient, Err: err}
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	req.Header.Set("Wiley-TDM-Client-Token", credential)

	return doRequest(client, req, types.SourceWiley, doi)
}

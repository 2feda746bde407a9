// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"net/http"
	"net/url"

	"github.com/pdiddy/litfetch/pkg/types"
)

// springerAPIBase is the Springer-Nature open-access content endpoint.
// Declared as a var so tests can substitute an httptest server.
var springerAPIBase = "https://api.springernature.com/openaccess/content/pdf/"

// springerAdapter fetches from the Springer-Nature open-access API. The
// API key travels as the api_key query parameter, per the API's
// convention.
type springerAdapter struct{}

func (springerAdapter) Source() types.Source { return types.SourceSpringerNature }

func (springerAdapter) Fetch(ctx context.Context, client *http.Client, cfg types.HTTPConfig, doi, credential string) ([]byte, error) {
	u := springerAPIBase + url.PathEscape(doi) + "?api_key=" + url.QueryEscape(credential)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &FetchError{Source: types.SourceSpringerNature, DOI: doi, Kind: KindTransient, Err: err}
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	req.Header.Set("Accept", "application/pdf")

	return doRequest(client, req, types.SourceSpringerNature, doi)
}

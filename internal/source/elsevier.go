// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"net/http"
	"net/url"

	"github.com/pdiddy/litfetch/pkg/types"
)

// elsevierAPIBase is the Elsevier full-text article endpoint.
// Declared as a var so tests can substitute an httptest server.
var elsevierAPIBase = "https://api.elsevier.com/content/article/doi/"

// elsevierAdapter fetches from the Elsevier content API. The key travels
// in the X-ELS-APIKey header and the PDF rendition is selected with the
// Accept header.
type elsevierAdapter struct{}

func (elsevierAdapter) Source() types.Source { return types.SourceElsevier }

func (elsevierAdapter) Fetch(ctx context.Context, client *http.Client, cfg types.HTTPConfig, doi, credential string) ([]byte, error) {
	u := elsevierAPIBase + url.PathEscape(doi)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &FetchError{Source: types.SourceElsevier, DOI: doi, Kind: KindTransient, Err: err}
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	req.Header.Set("Accept", "application/pdf")
	req.Header.Set("X-ELS-APIKey", credential)

	return doRequest(client, req, types.SourceElsevier, doi)
}

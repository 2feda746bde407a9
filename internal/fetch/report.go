// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pdiddy/litfetch/pkg/types"
)

// ReportName is the failed-DOI report filename written under the output
// root after a run. Downstream tooling consumes it to decide what to
// retry in a later campaign.
const ReportName = "failed_dois.json"

// WriteReport writes a JSON report to path mapping each BioProject to the
// DOIs that did not end in a download, in processing order. Skips count
// as failures here: an unentitled or quota-starved DOI is still work left
// undone.
func WriteReport(path string, results []types.FetchResult) error {
	failed := make(map[string][]string)
	for _, r := range results {
		if !r.Failed() {
			continue
		}
		failed[r.Target.BioProject] = append(failed[r.Target.BioProject], r.Target.DOI)
	}

	data, err := json.MarshalIndent(failed, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling failed-DOI report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing failed-DOI report: %w", err)
	}
	return nil
}

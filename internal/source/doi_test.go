// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"testing"

	"github.com/pdiddy/litfetch/pkg/types"
)

func TestInfer(t *testing.T) {
	tests := []struct {
		name string
		doi  string
		want types.Source
	}{
		{"springer 10.1007", "10.1007/s00253-021-11284-0", types.SourceSpringerNature},
		{"nature 10.1038", "10.1038/s41586-024-07487-w", types.SourceSpringerNature},
		{"bmc 10.1186", "10.1186/s40168-020-00875-0", types.SourceSpringerNature},
		{"elsevier 10.1016", "10.1016/j.soilbio.2019.107567", types.SourceElsevier},
		{"elsevier legacy 10.1006", "10.1006/jmbi.1998.2354", types.SourceElsevier},
		{"wiley 10.1002", "10.1002/jez.1234", types.SourceWiley},
		{"uppercase trimmed", "  10.1002/JEZ.1234  ", types.SourceWiley},
		{"plos unknown", "10.1371/journal.pone.0123456", types.SourceUnknown},
		{"ieee unknown", "10.1109/5.771073", types.SourceUnknown},
		{"no slash", "10.1002", types.SourceUnknown},
		{"empty", "", types.SourceUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Infer(tt.doi); got != tt.want {
				t.Errorf("Infer(%q) = %q, want %q", tt.doi, got, tt.want)
			}
		})
	}
}

func TestValidDOI(t *testing.T) {
	tests := []struct {
		doi  string
		want bool
	}{
		{"10.1002/jez.1234", true},
		{"10.1038/s41586-024-07487-w", true},
		{"10.1016/j.soilbio.2019.107567", true},
		{"not-a-doi", false},
		{"10.1002", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ValidDOI(tt.doi); got != tt.want {
			t.Errorf("ValidDOI(%q) = %v, want %v", tt.doi, got, tt.want)
		}
	}
}

func TestEncodeDOIRoundTrip(t *testing.T) {
	dois := []string{
		"10.1002/jez.1234",
		"10.1016/j.soilbio.2019.107567",
		"10.1038/s41586-024-07487-w",
		"10.1007/s00253-021-11284-0",
		"10.1002/(SICI)1097-4547(19960515)44:4<305::AID-JNR1>3.0.CO;2-J",
		"10.1186/s40168-020-00875-0%weird",
	}
	for _, doi := range dois {
		t.Run(doi, func(t *testing.T) {
			enc := EncodeDOI(doi)
			for _, c := range enc {
				if c == '/' {
					t.Fatalf("EncodeDOI(%q) = %q still contains a path separator", doi, enc)
				}
			}
			dec, err := DecodeDOI(enc)
			if err != nil {
				t.Fatalf("DecodeDOI(%q): %v", enc, err)
			}
			if dec != doi {
				t.Errorf("round trip = %q, want %q", dec, doi)
			}
		})
	}
}

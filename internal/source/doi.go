// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package source routes DOIs to publisher APIs and performs the
// source-specific fetch protocol for each of them.
package source

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/pdiddy/litfetch/pkg/types"
)

// doiPattern matches DOIs: "10.1002/jez.1234".
var doiPattern = regexp.MustCompile(`^10\.\d{4,9}/[^\s]+$`)

// registrants maps DOI registrant prefixes to the publisher that owns
// them. Only the three supported publishers appear; anything else is
// unknown and skipped by the catalog.
var registrants = map[string]types.Source{
	"10.1007": types.SourceSpringerNature,
	"10.1038": types.SourceSpringerNature,
	"10.1186": types.SourceSpringerNature,
	"10.1016": types.SourceElsevier,
	"10.1006": types.SourceElsevier,
	"10.1002": types.SourceWiley,
}

// ValidDOI reports whether s has the shape of a DOI.
func ValidDOI(s string) bool {
	return doiPattern.MatchString(strings.TrimSpace(s))
}

// Infer returns the publisher implied by the DOI's registrant prefix, or
// SourceUnknown when the prefix belongs to no supported publisher.
func Infer(doi string) types.Source {
	doi = strings.ToLower(strings.TrimSpace(doi))
	prefix, _, ok := strings.Cut(doi, "/")
	if !ok {
		return types.SourceUnknown
	}
	return registrants[prefix]
}

// EncodeDOI returns a filesystem-safe encoding of doi. DOIs contain "/",
// so the encoding must be reversible: percent-escaping round-trips where
// the obvious "/"→"-" replacement would not.
func EncodeDOI(doi string) string {
	return url.PathEscape(doi)
}

// DecodeDOI reverses EncodeDOI.
func DecodeDOI(encoded string) (string, error) {
	return url.PathUnescape(encoded)
}

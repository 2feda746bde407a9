// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the value types shared across litfetch stages.
package types

// Source identifies one of the publisher APIs litfetch fetches from. It is
// the key for credentials, quota counters, and adapter selection.
type Source string

const (
	SourceSpringerNature Source = "springer-nature"
	SourceWiley          Source = "wiley"
	SourceElsevier       Source = "elsevier"

	// SourceUnknown marks a DOI whose registrant prefix matches no
	// supported publisher.
	SourceUnknown Source = ""
)

// Sources lists the supported publishers in stable order.
var Sources = []Source{SourceSpringerNature, SourceWiley, SourceElsevier}

// Known reports whether s is one of the three supported publishers.
func (s Source) Known() bool {
	switch s {
	case SourceSpringerNature, SourceWiley, SourceElsevier:
		return true
	}
	return false
}

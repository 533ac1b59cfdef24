// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"encoding/hex"
	"sort"
	"strings"

	"github.com/MKhiriev/go-geo-sync/models"
	"golang.org/x/crypto/blake2b"
)

type schemaFingerprinter struct{}

// NewFingerprinter returns the BLAKE2b-256 schema fingerprinter.
func NewFingerprinter() Fingerprinter {
	return schemaFingerprinter{}
}

// Fingerprint hashes the canonical form "geometry_type;name:type;..." with
// columns sorted by name.
func (schemaFingerprinter) Fingerprint(schema models.Schema) string {
	cols := make([]string, 0, len(schema.Columns))
	for _, c := range schema.Columns {
		cols = append(cols, strings.ToLower(c.Name)+":"+c.Type.String())
	}
	sort.Strings(cols)

	canonical := strings.ToLower(schema.GeometryType) + ";" + strings.Join(cols, ";")
	sum := blake2b.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])
}

// Fingerprint is a shorthand for NewFingerprinter().Fingerprint(schema).
func Fingerprint(schema models.Schema) string {
	return schemaFingerprinter{}.Fingerprint(schema)
}

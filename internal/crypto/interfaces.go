package crypto

import "github.com/MKhiriev/go-geo-sync/models"

// Fingerprinter derives the schema fingerprint stored in every container and
// compared against the remote before any delta is applied.
//
// Two schemas with the same geometry type and the same set of (name, type)
// columns produce the same fingerprint regardless of column order.
type Fingerprinter interface {
	Fingerprint(schema models.Schema) string
}

// Signer produces and checks keyed digests of request bodies. The delta
// upload path sends the digest in the HashSHA256 header.
type Signer interface {
	// Sign returns the hex-encoded HMAC-SHA256 of data. An empty key yields
	// an empty signature.
	Sign(data []byte) string
	// Verify reports whether signature matches data. With an empty key every
	// body is accepted.
	Verify(data []byte, signature string) bool
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// OperationKind is the change applied by a single [DeltaRecord].
//
// The numeric values double as the operation tags of the binary delta
// format, so they must never be renumbered.
type OperationKind uint8

const (
	// OperationInsert creates a new feature with the supplied values.
	OperationInsert OperationKind = 1
	// OperationUpdate overwrites the supplied columns of an existing feature.
	OperationUpdate OperationKind = 2
	// OperationDelete removes the feature. Delete records carry no values.
	OperationDelete OperationKind = 3
)

// String returns the lowercase protocol name of the operation.
func (o OperationKind) String() string {
	switch o {
	case OperationInsert:
		return "insert"
	case OperationUpdate:
		return "update"
	case OperationDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Valid reports whether o is one of the three known operations.
func (o OperationKind) Valid() bool {
	return o >= OperationInsert && o <= OperationDelete
}

// ParseOperationKind maps a protocol name back to its [OperationKind].
func ParseOperationKind(s string) (OperationKind, bool) {
	switch s {
	case "insert":
		return OperationInsert, true
	case "update":
		return OperationUpdate, true
	case "delete":
		return OperationDelete, true
	default:
		return 0, false
	}
}

// DeltaRecord is an ordered, immutable unit of change against one feature.
//
// Seq is monotonic within the replica that produced the record: for local
// edits it is the pending-log sequence, for fetched records it is the remote
// change-log version at which the change was committed.
//
// Values is only meaningful for Insert and Update. The geometry travels as the
// [GeometryColumn] entry.
//
// Origin is the source id of the replica that created the record. It lets a
// replica recognise its own changes when they come back from the remote log.
type DeltaRecord struct {
	Seq       int64            `json:"seq"`
	Op        OperationKind    `json:"op"`
	FeatureID string           `json:"feature_id"`
	Values    map[string]Value `json:"values,omitempty"`
	Origin    string           `json:"origin,omitempty"`
}

// FeatureIDs returns the distinct feature identifiers referenced by records,
// in first-seen order.
func FeatureIDs(records []DeltaRecord) []string {
	seen := make(map[string]struct{}, len(records))
	ids := make([]string, 0, len(records))
	for _, r := range records {
		if _, ok := seen[r.FeatureID]; ok {
			continue
		}
		seen[r.FeatureID] = struct{}{}
		ids = append(ids, r.FeatureID)
	}
	return ids
}

// DeltaPage is one page of the remote change log as returned by the fetch
// endpoint.
type DeltaPage struct {
	// Deltas are the records of the page in commit order.
	Deltas []DeltaRecord
	// Since is the version the page was requested after.
	Since int64
	// ToVersion is the remote version the replica reaches once the page is
	// applied.
	ToVersion int64
	// HasMore reports that further pages exist after ToVersion.
	HasMore bool
	// Fingerprint is the remote schema fingerprint the page was produced under.
	Fingerprint string
}

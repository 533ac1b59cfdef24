package models

import "github.com/paulmach/orb"

// FeatureRecord is one row of a local container.
//
// ID is generated locally and never changes. RemoteID is filled once the
// remote has acknowledged the feature; until then the feature exists only in
// this replica. Revision is the sequence of the newest pending local delta
// touching the feature and is zero when nothing is pending.
type FeatureRecord struct {
	ID         string           `json:"id"`
	RemoteID   string           `json:"remote_id,omitempty"`
	Geometry   orb.Geometry     `json:"-"`
	Attributes map[string]Value `json:"attributes,omitempty"`
	Revision   int64            `json:"revision"`
}

// HasPendingEdits reports whether an unsent local delta references the feature.
func (f FeatureRecord) HasPendingEdits() bool {
	return f.Revision != 0
}

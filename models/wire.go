// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// RecordOutcome is the remote verdict on one uploaded delta.
type RecordOutcome struct {
	Seq       int64  `json:"seq"`
	FeatureID string `json:"feature_id"`
	Accepted  bool   `json:"accepted"`
	RemoteID  string `json:"remote_id,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// UploadResult is the response to a delta upload. Version is the remote
// layer version after the accepted records were committed.
type UploadResult struct {
	Version  int64           `json:"version"`
	Outcomes []RecordOutcome `json:"outcomes"`
}

// Accepted returns the outcomes the remote committed.
func (u UploadResult) Accepted() []RecordOutcome {
	out := make([]RecordOutcome, 0, len(u.Outcomes))
	for _, o := range u.Outcomes {
		if o.Accepted {
			out = append(out, o)
		}
	}
	return out
}

// Rejected returns the outcomes the remote refused.
func (u UploadResult) Rejected() []RecordOutcome {
	out := make([]RecordOutcome, 0)
	for _, o := range u.Outcomes {
		if !o.Accepted {
			out = append(out, o)
		}
	}
	return out
}

// UploadAck marks one local pending delta as durably accepted by the remote.
type UploadAck struct {
	Seq       int64
	FeatureID string
	RemoteID  string
}

// Snapshot is a full copy of a remote layer at Version.
type Snapshot struct {
	LayerID     string
	Version     int64
	Fingerprint string
	Schema      Schema
	Versioning  VersioningState
	Features    []FeatureRecord
}

// SessionCommit is what the commit stage persists once every stage of a
// session succeeded.
type SessionCommit struct {
	RemoteVersion int64
	Versioning    VersioningState
}

// Protocol headers and media types shared by the Web GIS API and its client.
const (
	HeaderLayerVersion      = "X-Layer-Version"
	HeaderHasMore           = "X-Has-More"
	HeaderSchemaFingerprint = "X-Schema-Fingerprint"
	HeaderSourceID          = "X-Source-ID"
	HeaderBodyHash          = "HashSHA256"

	ContentTypeDelta   = "application/x-geosync-delta"
	ContentTypeGeoJSON = "application/geo+json"
)

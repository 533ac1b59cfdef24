// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"time"
)

// ApplyKind tags the variant held by an [ApplyResult].
type ApplyKind uint8

const (
	ApplyApplied ApplyKind = iota
	ApplyStructuralConflict
	ApplyDataConflict
)

// ApplyResult is the typed outcome of applying one remote delta page.
//
// Applied carries Count. StructuralConflict carries Reason and means nothing
// was written. DataConflict carries FeatureIDs: the page was committed with
// the remote values winning and the local pending edits on those features
// were discarded.
type ApplyResult struct {
	Kind       ApplyKind
	Count      int
	Reason     string
	FeatureIDs []string
}

func Applied(count int) ApplyResult {
	return ApplyResult{Kind: ApplyApplied, Count: count}
}

func StructuralConflict(reason string) ApplyResult {
	return ApplyResult{Kind: ApplyStructuralConflict, Reason: reason}
}

func DataConflict(count int, featureIDs []string) ApplyResult {
	return ApplyResult{Kind: ApplyDataConflict, Count: count, FeatureIDs: featureIDs}
}

func (r ApplyResult) String() string {
	switch r.Kind {
	case ApplyApplied:
		return fmt.Sprintf("Applied(%d)", r.Count)
	case ApplyStructuralConflict:
		return fmt.Sprintf("StructuralConflict(%s)", r.Reason)
	case ApplyDataConflict:
		return fmt.Sprintf("DataConflict(%v)", r.FeatureIDs)
	}
	return "ApplyResult(?)"
}

// Stage is one step of a sync session pipeline.
type Stage uint8

const (
	StageReconcile Stage = iota
	StageFetch
	StageApply
	StageUpload
	StageCommit
)

var stageNames = [...]string{
	StageReconcile: "reconcile",
	StageFetch:     "fetch",
	StageApply:     "apply",
	StageUpload:    "upload",
	StageCommit:    "commit",
}

func (s Stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return fmt.Sprintf("stage(%d)", uint8(s))
}

func (s Stage) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Stage) UnmarshalText(b []byte) error {
	for i, name := range stageNames {
		if name == string(b) {
			*s = Stage(i)
			return nil
		}
	}
	return fmt.Errorf("unknown stage %q", string(b))
}

// Progress is a single progress report of a running session. Fraction is the
// completion of the current stage in [0, 1]; Percent is the completion of the
// whole session. Both only increase within a session.
type Progress struct {
	LayerID   string  `json:"layer_id"`
	SessionID string  `json:"session_id"`
	Stage     Stage   `json:"stage"`
	Fraction  float64 `json:"fraction"`
	Percent   int     `json:"percent"`
	Done      bool    `json:"done,omitempty"`
}

// Decision is the Reconciler's verdict before any delta is fetched.
type Decision uint8

const (
	// DecisionContinue syncs deltas on top of the current replica.
	DecisionContinue Decision = iota
	// DecisionSnapshot rebuilds the replica from a full remote snapshot.
	DecisionSnapshot
)

func (d Decision) String() string {
	if d == DecisionSnapshot {
		return "snapshot"
	}
	return "continue"
}

// SyncOutcome is the single result a session reports to its caller.
type SyncOutcome struct {
	LayerID       string        `json:"layer_id"`
	SessionID     string        `json:"session_id"`
	Status        SyncStatus    `json:"status"`
	Decision      Decision      `json:"-"`
	Applied       int           `json:"applied"`
	Uploaded      int           `json:"uploaded"`
	Rejected      []string      `json:"rejected,omitempty"`
	Discarded     []string      `json:"discarded,omitempty"`
	LocalVersion  int64         `json:"local_version"`
	RemoteVersion int64         `json:"remote_version"`
	Duration      time.Duration `json:"duration"`
	Err           error         `json:"-"`
}

// Succeeded reports whether the session converged.
func (o SyncOutcome) Succeeded() bool {
	return o.Err == nil && o.Status == StatusSynchronized
}

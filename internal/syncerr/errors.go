// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package syncerr defines the typed failures a sync session can end with.
//
// Every pipeline stage reports problems as an [*Error] carrying a [Kind], the
// [models.Stage] that detected it, a human-readable reason and, for
// feature-level conflicts, the affected feature identifiers. Callers match a
// kind with errors.Is against the Err* sentinels and decide on automatic
// retries with [IsRetryable].
package syncerr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-geo-sync/models"
)

// Kind classifies a sync failure.
type Kind uint8

const (
	KindNetwork Kind = iota + 1
	KindAuth
	KindStructuralConflict
	KindDataConflict
	KindFormat
	KindLayerBusy
	KindContainerMissing
)

// Sentinels matched by errors.Is against any [*Error] of the same kind.
var (
	ErrNetwork            = errors.New("network error")
	ErrAuth               = errors.New("authentication error")
	ErrStructuralConflict = errors.New("structural conflict")
	ErrDataConflict       = errors.New("data conflict")
	ErrFormat             = errors.New("format error")
	ErrLayerBusy          = errors.New("layer busy")
	ErrContainerMissing   = errors.New("container missing")
)

var kindSentinels = map[Kind]error{
	KindNetwork:            ErrNetwork,
	KindAuth:               ErrAuth,
	KindStructuralConflict: ErrStructuralConflict,
	KindDataConflict:       ErrDataConflict,
	KindFormat:             ErrFormat,
	KindLayerBusy:          ErrLayerBusy,
	KindContainerMissing:   ErrContainerMissing,
}

var kindNames = map[Kind]string{
	KindNetwork:            "network",
	KindAuth:               "auth",
	KindStructuralConflict: "structural_conflict",
	KindDataConflict:       "data_conflict",
	KindFormat:             "format",
	KindLayerBusy:          "layer_busy",
	KindContainerMissing:   "container_missing",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Error is a typed sync failure.
type Error struct {
	Kind       Kind
	Stage      models.Stage
	Reason     string
	FeatureIDs []string
	Err        error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Stage.String())
	b.WriteString(": ")
	b.WriteString(kindSentinels[e.Kind].Error())
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	if len(e.FeatureIDs) > 0 {
		fmt.Fprintf(&b, " (features: %s)", strings.Join(e.FeatureIDs, ", "))
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Is matches the kind sentinel.
func (e *Error) Is(target error) bool {
	return kindSentinels[e.Kind] == target
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds an [*Error]. cause may be nil.
func New(kind Kind, stage models.Stage, reason string, cause error) *Error {
	return &Error{Kind: kind, Stage: stage, Reason: reason, Err: cause}
}

func Network(stage models.Stage, cause error) *Error {
	return New(KindNetwork, stage, "", cause)
}

func Auth(stage models.Stage, reason string, cause error) *Error {
	return New(KindAuth, stage, reason, cause)
}

func Structural(stage models.Stage, reason string) *Error {
	return New(KindStructuralConflict, stage, reason, nil)
}

func Data(stage models.Stage, reason string, featureIDs []string) *Error {
	e := New(KindDataConflict, stage, reason, nil)
	e.FeatureIDs = featureIDs
	return e
}

func Format(stage models.Stage, cause error) *Error {
	return New(KindFormat, stage, "", cause)
}

func LayerBusy(layerID, reason string) *Error {
	return New(KindLayerBusy, models.StageReconcile, fmt.Sprintf("layer %s: %s", layerID, reason), nil)
}

func ContainerMissing(layerID string, cause error) *Error {
	return New(KindContainerMissing, models.StageReconcile, "layer "+layerID, cause)
}

// As extracts the [*Error] from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf returns the kind of a typed failure.
func KindOf(err error) (Kind, bool) {
	if e, ok := As(err); ok {
		return e.Kind, true
	}
	return 0, false
}

// IsRetryable reports whether err is a transient network failure. Every other
// kind needs user action and is never retried automatically.
func IsRetryable(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindNetwork
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-geo-sync/models"
	"github.com/google/uuid"
)

// Field names accepted by [DeltaValidator.Validate] to restrict checks.
const (
	FieldOperation = "op"
	FieldFeatureID = "feature_id"
	FieldValues    = "values"
)

// LayerDelta binds a delta to the schema of the layer it targets.
type LayerDelta struct {
	Schema models.Schema
	Delta  models.DeltaRecord
}

// LayerBatch binds an ordered delta batch to its layer schema.
type LayerBatch struct {
	Schema models.Schema
	Deltas []models.DeltaRecord
}

// DeltaValidator checks deltas against the schema of their layer: the
// operation is known, the feature id is a UUID, every value names an existing
// column with a matching type, and inserts carry a geometry of the layer's
// geometry type.
type DeltaValidator struct{}

func NewDeltaValidator() Validator {
	return &DeltaValidator{}
}

func (v *DeltaValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case LayerDelta:
		return v.validateDelta(value.Schema, value.Delta, fields...)
	case *LayerDelta:
		return v.validateDelta(value.Schema, value.Delta, fields...)
	case LayerBatch:
		return v.validateBatch(value, fields...)
	case *LayerBatch:
		return v.validateBatch(*value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *DeltaValidator) validateBatch(batch LayerBatch, fields ...string) error {
	if len(batch.Deltas) == 0 {
		return ErrEmptyBatch
	}

	var errs []error
	for i, d := range batch.Deltas {
		if err := v.validateDelta(batch.Schema, d, fields...); err != nil {
			errs = append(errs, fmt.Errorf("delta %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

func (v *DeltaValidator) validateDelta(schema models.Schema, d models.DeltaRecord, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldOperation, FieldFeatureID, FieldValues}
	}

	for _, field := range fields {
		var err error
		switch field {
		case FieldOperation:
			if !d.Op.Valid() {
				err = fmt.Errorf("%w: %d", ErrInvalidOperation, d.Op)
			}
		case FieldFeatureID:
			if !utf8.ValidString(d.FeatureID) {
				err = fmt.Errorf("%w: feature id %q", ErrInvalidString, d.FeatureID)
			} else if _, parseErr := uuid.Parse(d.FeatureID); parseErr != nil {
				err = fmt.Errorf("%w: %q", ErrInvalidFeatureID, d.FeatureID)
			}
		case FieldValues:
			err = validateValues(schema, d)
		default:
			err = fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func validateValues(schema models.Schema, d models.DeltaRecord) error {
	switch d.Op {
	case models.OperationDelete:
		if len(d.Values) > 0 {
			return ErrDeleteCarriesValues
		}
		return nil
	case models.OperationUpdate:
		if len(d.Values) == 0 {
			return ErrNoValues
		}
	case models.OperationInsert:
		g, ok := d.Values[models.GeometryColumn]
		if !ok || g.IsNull() {
			return ErrMissingGeometry
		}
	}

	for name, value := range d.Values {
		if name == models.GeometryColumn {
			if err := validateGeometry(schema, value); err != nil {
				return err
			}
			continue
		}

		col, ok := schema.Column(name)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownColumn, name)
		}
		if !value.IsNull() && value.Kind != col.Type {
			return fmt.Errorf("%w: %s is %s, got %s", ErrColumnTypeMismatch, name, col.Type, value.Kind)
		}
		if value.Kind == models.KindString && !utf8.ValidString(value.Str) {
			return fmt.Errorf("%w: column %s", ErrInvalidString, name)
		}
	}

	return nil
}

func validateGeometry(schema models.Schema, value models.Value) error {
	if value.IsNull() {
		return nil
	}
	if value.Kind != models.KindGeometry {
		return fmt.Errorf("%w: %s is geometry, got %s", ErrColumnTypeMismatch, models.GeometryColumn, value.Kind)
	}
	if schema.GeometryType != "" && !strings.EqualFold(schema.GeometryType, value.Geom.GeoJSONType()) {
		return fmt.Errorf("%w: want %s, got %s", ErrGeometryTypeInvalid, schema.GeometryType, value.Geom.GeoJSONType())
	}
	return nil
}

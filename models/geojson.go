package models

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb/geojson"
)

// ErrUnknownColumn is returned when a GeoJSON property has no column in the
// layer schema.
var ErrUnknownColumn = errors.New("unknown column")

// GeoJSON renders the feature with its id, geometry and attribute properties.
func (f FeatureRecord) GeoJSON() *geojson.Feature {
	gf := geojson.NewFeature(f.Geometry)
	gf.ID = f.ID
	for name, v := range f.Attributes {
		gf.Properties[name] = v.Any()
	}
	return gf
}

// FeatureCollection renders every snapshot feature.
func (s Snapshot) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, f := range s.Features {
		fc.Append(f.GeoJSON())
	}
	return fc
}

// FeatureFromGeoJSON types the properties of gf by schema.
func FeatureFromGeoJSON(gf *geojson.Feature, schema Schema) (FeatureRecord, error) {
	id, err := featureID(gf)
	if err != nil {
		return FeatureRecord{}, err
	}

	attrs, err := typedProperties(gf.Properties, schema)
	if err != nil {
		return FeatureRecord{}, fmt.Errorf("feature %s: %w", id, err)
	}

	return FeatureRecord{ID: id, RemoteID: id, Geometry: gf.Geometry, Attributes: attrs}, nil
}

// DeltaFromGeoJSON builds a local edit. The geometry column is set only when
// the feature carries a geometry, so an Update may touch attributes alone.
func DeltaFromGeoJSON(op OperationKind, gf *geojson.Feature, schema Schema) (DeltaRecord, error) {
	if !op.Valid() {
		return DeltaRecord{}, fmt.Errorf("unknown operation %d", op)
	}
	id, err := featureID(gf)
	if err != nil {
		return DeltaRecord{}, err
	}

	d := DeltaRecord{Op: op, FeatureID: id}
	if op == OperationDelete {
		return d, nil
	}

	if d.Values, err = typedProperties(gf.Properties, schema); err != nil {
		return DeltaRecord{}, fmt.Errorf("feature %s: %w", id, err)
	}
	if gf.Geometry != nil {
		d.Values[GeometryColumn] = GeometryValue(gf.Geometry)
	}
	return d, nil
}

func featureID(gf *geojson.Feature) (string, error) {
	if gf == nil {
		return "", errors.New("missing feature")
	}
	switch id := gf.ID.(type) {
	case string:
		return id, nil
	case nil:
		return "", nil
	}
	return "", fmt.Errorf("feature id must be a string, got %T", gf.ID)
}

func typedProperties(props geojson.Properties, schema Schema) (map[string]Value, error) {
	values := make(map[string]Value, len(props)+1)
	for name, raw := range props {
		col, ok := schema.Column(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, name)
		}
		v, err := ValueFromAny(raw, col.Type)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", name, err)
		}
		values[name] = v
	}
	return values, nil
}

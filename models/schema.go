package models

// Column is one attribute column of a layer.
type Column struct {
	Name string    `json:"name" yaml:"name"`
	Type ValueKind `json:"type" yaml:"type"`
}

// Schema describes the column set of a vector layer and its geometry type
// (for example "Point" or "MultiPolygon").
type Schema struct {
	GeometryType string   `json:"geometry_type" yaml:"geometry_type"`
	Columns      []Column `json:"columns" yaml:"columns"`
}

// Column looks up a column by name.
func (s Schema) Column(name string) (Column, bool) {
	for _, c := range s.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// SchemaInfo is the remote answer to the schema probe.
type SchemaInfo struct {
	LayerID     string `json:"layer_id"`
	Schema      Schema `json:"schema"`
	Fingerprint string `json:"fingerprint"`
}

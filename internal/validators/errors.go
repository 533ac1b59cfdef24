package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidOperation    = errors.New("invalid operation")
	ErrInvalidFeatureID    = errors.New("invalid feature id")
	ErrUnknownColumn       = errors.New("unknown column")
	ErrColumnTypeMismatch  = errors.New("value does not match column type")
	ErrMissingGeometry     = errors.New("insert requires a geometry")
	ErrGeometryTypeInvalid = errors.New("geometry type does not match layer")
	ErrDeleteCarriesValues = errors.New("delete must not carry values")
	ErrNoValues            = errors.New("update must change at least one column")
	ErrEmptyBatch          = errors.New("delta batch cannot be empty")
	ErrInvalidString       = errors.New("text is not valid utf-8")
)

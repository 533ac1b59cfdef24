// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package codec

import (
	"encoding/binary"
	"fmt"
	"math"
	"sort"
	"unicode/utf8"

	"github.com/MKhiriev/go-geo-sync/models"
	"github.com/golang/snappy"
	"github.com/paulmach/orb/encoding/wkb"
)

const (
	magic         = "GSD1"
	formatVersion = 1
)

// Encode serialises records in order. Empty value maps are written as an
// empty block and decode back as nil.
func Encode(records []models.DeltaRecord) ([]byte, error) {
	buf := make([]byte, 0, 16+len(records)*48)
	buf = append(buf, magic...)
	buf = append(buf, formatVersion)
	buf = binary.AppendUvarint(buf, uint64(len(records)))

	var err error
	for i, r := range records {
		if !r.Op.Valid() {
			return nil, fmt.Errorf("%w: record %d: unknown operation %d", ErrEncode, i, r.Op)
		}
		buf = append(buf, byte(r.Op))
		buf = binary.AppendVarint(buf, r.Seq)
		if buf, err = appendString(buf, r.FeatureID); err != nil {
			return nil, fmt.Errorf("record %d feature id: %w", i, err)
		}
		if buf, err = appendString(buf, r.Origin); err != nil {
			return nil, fmt.Errorf("record %d (%s) origin: %w", i, r.FeatureID, err)
		}
		if buf, err = appendValues(buf, r.Values); err != nil {
			return nil, fmt.Errorf("record %d (%s): %w", i, r.FeatureID, err)
		}
	}

	return buf, nil
}

// Decode is the inverse of [Encode].
func Decode(data []byte) ([]models.DeltaRecord, error) {
	d := &decoder{buf: data}

	head, err := d.readBytes(len(magic))
	if err != nil || string(head) != magic {
		return nil, &FormatError{Offset: 0, Reason: "bad magic"}
	}
	v, err := d.readByte()
	if err != nil {
		return nil, err
	}
	if v != formatVersion {
		return nil, d.fail("unsupported format version %d", v)
	}

	count, err := d.uvarint()
	if err != nil {
		return nil, err
	}
	// every record needs at least four bytes
	if count > uint64(d.remaining()/4) {
		return nil, d.fail("record count %d exceeds stream size", count)
	}

	records := make([]models.DeltaRecord, 0, count)
	for range count {
		r, err := d.record()
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}

	if d.remaining() != 0 {
		return nil, d.fail("%d trailing bytes", d.remaining())
	}

	return records, nil
}

// EncodeWire encodes records and frames them with snappy for transport.
func EncodeWire(records []models.DeltaRecord) ([]byte, error) {
	raw, err := Encode(records)
	if err != nil {
		return nil, err
	}
	return snappy.Encode(nil, raw), nil
}

// DecodeWire is the inverse of [EncodeWire].
func DecodeWire(data []byte) ([]models.DeltaRecord, error) {
	raw, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, &FormatError{Offset: 0, Reason: "snappy: " + err.Error()}
	}
	return Decode(raw)
}

// EncodeValues serialises a single values block. The container stores
// feature attributes and pending-delta payloads in this form.
func EncodeValues(values map[string]models.Value) ([]byte, error) {
	return appendValues(nil, values)
}

// DecodeValues is the inverse of [EncodeValues].
func DecodeValues(data []byte) (map[string]models.Value, error) {
	d := &decoder{buf: data}
	values, err := d.values()
	if err != nil {
		return nil, err
	}
	if d.remaining() != 0 {
		return nil, d.fail("%d trailing bytes", d.remaining())
	}
	return values, nil
}

// appendString refuses what the decoder would refuse, so every encoded
// stream decodes.
func appendString(buf []byte, s string) ([]byte, error) {
	if !utf8.ValidString(s) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidString, s)
	}
	buf = binary.AppendUvarint(buf, uint64(len(s)))
	return append(buf, s...), nil
}

func appendValues(buf []byte, values map[string]models.Value) ([]byte, error) {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	buf = binary.AppendUvarint(buf, uint64(len(names)))
	for _, name := range names {
		v := values[name]
		var err error
		if buf, err = appendString(buf, name); err != nil {
			return nil, fmt.Errorf("column name: %w", err)
		}
		buf = append(buf, byte(v.Kind))

		switch v.Kind {
		case models.KindNull:
		case models.KindBool:
			if v.Bool {
				buf = append(buf, 1)
			} else {
				buf = append(buf, 0)
			}
		case models.KindInt:
			buf = binary.AppendVarint(buf, v.Int)
		case models.KindFloat:
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v.Float))
		case models.KindString:
			if buf, err = appendString(buf, v.Str); err != nil {
				return nil, fmt.Errorf("column %q: %w", name, err)
			}
		case models.KindGeometry:
			if v.Geom == nil {
				return nil, fmt.Errorf("%w: column %q: geometry value without geometry", ErrEncode, name)
			}
			raw, err := wkb.Marshal(v.Geom, binary.LittleEndian)
			if err != nil {
				return nil, fmt.Errorf("%w: column %q: wkb: %w", ErrEncode, name, err)
			}
			buf = binary.AppendUvarint(buf, uint64(len(raw)))
			buf = append(buf, raw...)
		default:
			return nil, fmt.Errorf("%w: column %q: unknown value kind %d", ErrEncode, name, v.Kind)
		}
	}

	return buf, nil
}

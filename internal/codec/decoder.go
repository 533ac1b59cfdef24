package codec

import (
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/MKhiriev/go-geo-sync/models"
	"github.com/paulmach/orb/encoding/wkb"
)

type decoder struct {
	buf []byte
	off int
}

func (d *decoder) remaining() int {
	return len(d.buf) - d.off
}

func (d *decoder) fail(format string, args ...any) *FormatError {
	return &FormatError{Offset: d.off, Reason: fmt.Sprintf(format, args...)}
}

func (d *decoder) readByte() (byte, error) {
	if d.remaining() < 1 {
		return 0, d.fail("truncated stream")
	}
	b := d.buf[d.off]
	d.off++
	return b, nil
}

func (d *decoder) readBytes(n int) ([]byte, error) {
	if n < 0 || d.remaining() < n {
		return nil, d.fail("truncated stream: need %d bytes, have %d", n, d.remaining())
	}
	b := d.buf[d.off : d.off+n]
	d.off += n
	return b, nil
}

func (d *decoder) uvarint() (uint64, error) {
	v, n := binary.Uvarint(d.buf[d.off:])
	if n <= 0 {
		return 0, d.fail("bad uvarint")
	}
	d.off += n
	return v, nil
}

func (d *decoder) varint() (int64, error) {
	v, n := binary.Varint(d.buf[d.off:])
	if n <= 0 {
		return 0, d.fail("bad varint")
	}
	d.off += n
	return v, nil
}

func (d *decoder) length() (int, error) {
	n, err := d.uvarint()
	if err != nil {
		return 0, err
	}
	if n > uint64(d.remaining()) {
		return 0, d.fail("length %d exceeds stream", n)
	}
	return int(n), nil
}

func (d *decoder) readString() (string, error) {
	n, err := d.length()
	if err != nil {
		return "", err
	}
	b, err := d.readBytes(n)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", d.fail("invalid utf-8 string")
	}
	return string(b), nil
}

func (d *decoder) record() (models.DeltaRecord, error) {
	var r models.DeltaRecord

	tag, err := d.readByte()
	if err != nil {
		return r, err
	}
	r.Op = models.OperationKind(tag)
	if !r.Op.Valid() {
		d.off--
		return r, d.fail("unknown operation tag %d", tag)
	}

	if r.Seq, err = d.varint(); err != nil {
		return r, err
	}
	if r.FeatureID, err = d.readString(); err != nil {
		return r, err
	}
	if r.Origin, err = d.readString(); err != nil {
		return r, err
	}
	if r.Values, err = d.values(); err != nil {
		return r, err
	}

	return r, nil
}

func (d *decoder) values() (map[string]models.Value, error) {
	count, err := d.uvarint()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}
	// a name length byte and a tag byte at minimum
	if count > uint64(d.remaining()/2) {
		return nil, d.fail("value count %d exceeds stream size", count)
	}

	values := make(map[string]models.Value, count)
	for range count {
		name, err := d.readString()
		if err != nil {
			return nil, err
		}
		if _, dup := values[name]; dup {
			return nil, d.fail("duplicate column %q", name)
		}
		v, err := d.value()
		if err != nil {
			return nil, err
		}
		values[name] = v
	}

	return values, nil
}

func (d *decoder) value() (models.Value, error) {
	tag, err := d.readByte()
	if err != nil {
		return models.Value{}, err
	}

	switch models.ValueKind(tag) {
	case models.KindNull:
		return models.NullValue(), nil
	case models.KindBool:
		b, err := d.readByte()
		if err != nil {
			return models.Value{}, err
		}
		if b > 1 {
			return models.Value{}, d.fail("bad bool byte %d", b)
		}
		return models.BoolValue(b == 1), nil
	case models.KindInt:
		i, err := d.varint()
		if err != nil {
			return models.Value{}, err
		}
		return models.IntValue(i), nil
	case models.KindFloat:
		raw, err := d.readBytes(8)
		if err != nil {
			return models.Value{}, err
		}
		return models.FloatValue(math.Float64frombits(binary.LittleEndian.Uint64(raw))), nil
	case models.KindString:
		s, err := d.readString()
		if err != nil {
			return models.Value{}, err
		}
		return models.StringValue(s), nil
	case models.KindGeometry:
		n, err := d.length()
		if err != nil {
			return models.Value{}, err
		}
		start := d.off
		raw, err := d.readBytes(n)
		if err != nil {
			return models.Value{}, err
		}
		g, err := wkb.Unmarshal(raw)
		if err != nil {
			return models.Value{}, &FormatError{Offset: start, Reason: "wkb: " + err.Error()}
		}
		return models.GeometryValue(g), nil
	}

	d.off--
	return models.Value{}, d.fail("unknown value tag %d", tag)
}

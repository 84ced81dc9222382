package entity

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IDKind tells which representation an ID holds.
type IDKind uint8

const (
	IDKindNone IDKind = iota
	IDKindNumeric
	IDKindObjectID
)

// ErrInvalidID is returned when a path segment is neither a digit string nor a 24-hex ObjectID.
var ErrInvalidID = errors.New("invalid id")

var digitsOnly = regexp.MustCompile(`^\d+$`)

// ID identifies a user, movie or cinema. Documents imported from MovieLens
// carry integer ids while documents created through the API get ObjectIDs,
// so an ID holds exactly one of the two.
type ID struct {
	kind IDKind
	num  int64
	oid  primitive.ObjectID
}

// NumericID wraps an integer id.
func NumericID(n int64) ID {
	return ID{kind: IDKindNumeric, num: n}
}

// ObjectID wraps a MongoDB ObjectID.
func ObjectID(oid primitive.ObjectID) ID {
	return ID{kind: IDKindObjectID, oid: oid}
}

// NewObjectID returns a freshly generated ObjectID id.
func NewObjectID() ID {
	return ObjectID(primitive.NewObjectID())
}

// ParseID resolves a path segment: digit strings become numeric ids,
// 24-hex strings become ObjectIDs, anything else is ErrInvalidID.
func ParseID(s string) (ID, error) {
	if digitsOnly.MatchString(s) {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return ID{}, fmt.Errorf("%w: %q", ErrInvalidID, s)
		}
		return NumericID(n), nil
	}
	return ParseObjectID(s)
}

// ParseObjectID accepts only the 24-hex ObjectID form.
func ParseObjectID(s string) (ID, error) {
	oid, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return ID{}, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return ObjectID(oid), nil
}

// Kind returns the representation held by id.
func (id ID) Kind() IDKind {
	return id.kind
}

// IsZero reports whether id is unset. The bson encoder uses it for omitempty,
// which lets the store assign _id on insert.
func (id ID) IsZero() bool {
	return id.kind == IDKindNone
}

// Int64 returns the numeric value when id is numeric.
func (id ID) Int64() (int64, bool) {
	return id.num, id.kind == IDKindNumeric
}

// ObjectID returns the ObjectID value when id is one.
func (id ID) ObjectID() (primitive.ObjectID, bool) {
	return id.oid, id.kind == IDKindObjectID
}

// Equal reports whether both ids have the same kind and value.
func (id ID) Equal(other ID) bool {
	return id == other
}

func (id ID) String() string {
	switch id.kind {
	case IDKindNumeric:
		return strconv.FormatInt(id.num, 10)
	case IDKindObjectID:
		return id.oid.Hex()
	default:
		return ""
	}
}

// Value returns the raw value used in query filters.
func (id ID) Value() any {
	switch id.kind {
	case IDKindNumeric:
		return id.num
	case IDKindObjectID:
		return id.oid
	default:
		return nil
	}
}

// MarshalBSONValue implements bson.ValueMarshaler.
func (id ID) MarshalBSONValue() (bsontype.Type, []byte, error) {
	switch id.kind {
	case IDKindNumeric:
		return bson.MarshalValue(id.num)
	case IDKindObjectID:
		return bson.MarshalValue(id.oid)
	default:
		return bson.TypeNull, nil, nil
	}
}

// UnmarshalBSONValue implements bson.ValueUnmarshaler.
func (id *ID) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bson.TypeObjectID:
		*id = ObjectID(raw.ObjectID())
	case bson.TypeInt32:
		*id = NumericID(int64(raw.Int32()))
	case bson.TypeInt64:
		*id = NumericID(raw.Int64())
	case bson.TypeDouble:
		f := raw.Double()
		if f != math.Trunc(f) {
			return fmt.Errorf("%w: non-integer id %v", ErrInvalidID, f)
		}
		*id = NumericID(int64(f))
	case bson.TypeString:
		parsed, err := ParseID(raw.StringValue())
		if err != nil {
			return err
		}
		*id = parsed
	case bson.TypeNull, bson.TypeUndefined:
		*id = ID{}
	default:
		return fmt.Errorf("%w: unsupported bson type %s", ErrInvalidID, t)
	}
	return nil
}

// MarshalJSON renders numeric ids as numbers and ObjectIDs as hex strings.
func (id ID) MarshalJSON() ([]byte, error) {
	switch id.kind {
	case IDKindNumeric:
		return json.Marshal(id.num)
	case IDKindObjectID:
		return json.Marshal(id.oid.Hex())
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts a JSON number or an id string.
func (id *ID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = ID{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := ParseID(s)
		if err != nil {
			return err
		}
		*id = parsed
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidID, data)
	}
	parsed, ok := IDFromAny(f)
	if !ok {
		return fmt.Errorf("%w: %s", ErrInvalidID, data)
	}
	*id = parsed
	return nil
}

// IDFromAny converts a decoded JSON or bson value into an ID. Numbers must be
// positive integers; strings go through ParseID.
func IDFromAny(v any) (ID, bool) {
	switch val := v.(type) {
	case float64:
		if val <= 0 || val != math.Trunc(val) || val > math.MaxInt64 {
			return ID{}, false
		}
		return NumericID(int64(val)), true
	case int:
		if val <= 0 {
			return ID{}, false
		}
		return NumericID(int64(val)), true
	case int32:
		if val <= 0 {
			return ID{}, false
		}
		return NumericID(int64(val)), true
	case int64:
		if val <= 0 {
			return ID{}, false
		}
		return NumericID(val), true
	case string:
		id, err := ParseID(val)
		return id, err == nil
	case primitive.ObjectID:
		return ObjectID(val), true
	case ID:
		return val, !val.IsZero()
	default:
		return ID{}, false
	}
}

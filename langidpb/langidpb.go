// Package langidpb reads and writes language models in the protocol buffer
// format of langid.c:
//
//	message LanguageIdentifier {
//	  required uint32 num_feats   = 1;
//	  required uint32 num_langs   = 2;
//	  required uint32 num_states  = 3;
//	  repeated uint32 tk_nextmove = 4 [packed=true];
//	  repeated uint32 tk_output_c = 5 [packed=true];
//	  repeated uint32 tk_output_s = 6 [packed=true];
//	  repeated uint32 tk_output   = 7 [packed=true];
//	  repeated double nb_pc       = 8 [packed=true];
//	  repeated double nb_ptc      = 9 [packed=true];
//	  repeated string nb_classes  = 10;
//	}
//
// The message is decoded directly from the wire format; repeated scalars are
// accepted packed and unpacked. Decoded values are copied into owned slices,
// so the input buffer may be released after Decode returns.
package langidpb

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"fortio.org/safecast"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/npillmayer/langid/model"
)

const (
	fieldNumFeats   protowire.Number = 1
	fieldNumLangs   protowire.Number = 2
	fieldNumStates  protowire.Number = 3
	fieldNextMove   protowire.Number = 4
	fieldOutputC    protowire.Number = 5
	fieldOutputS    protowire.Number = 6
	fieldOutput     protowire.Number = 7
	fieldLogPrior   protowire.Number = 8
	fieldLogLikely  protowire.Number = 9
	fieldClassNames protowire.Number = 10
)

// ErrMissingField is returned when one of the required cardinalities is absent.
var ErrMissingField = errors.New("langidpb: missing required field")

// Decode parses a serialized LanguageIdentifier message and validates it.
func Decode(data []byte) (*model.Model, error) {
	if len(data) == 0 {
		return nil, errors.New("langidpb: empty message")
	}
	var t model.Tables
	var seen [fieldNumStates + 1]bool
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fmt.Errorf("langidpb: %w", protowire.ParseError(n))
		}
		data = data[n:]
		var err error
		switch num {
		case fieldNumFeats:
			n, err = consumeCardinality(typ, data, &t.NumFeatures)
		case fieldNumLangs:
			n, err = consumeCardinality(typ, data, &t.NumLanguages)
		case fieldNumStates:
			n, err = consumeCardinality(typ, data, &t.NumStates)
		case fieldNextMove:
			n, err = consumeUint32s(typ, data, &t.Transitions)
		case fieldOutputC:
			n, err = consumeUint32s(typ, data, &t.OutputCount)
		case fieldOutputS:
			n, err = consumeUint32s(typ, data, &t.OutputStart)
		case fieldOutput:
			n, err = consumeUint32s(typ, data, &t.Output)
		case fieldLogPrior:
			n, err = consumeDoubles(typ, data, &t.LogPrior)
		case fieldLogLikely:
			n, err = consumeDoubles(typ, data, &t.LogLikelihood)
		case fieldClassNames:
			n, err = consumeString(typ, data, &t.Labels)
		default:
			if n = protowire.ConsumeFieldValue(num, typ, data); n < 0 {
				err = protowire.ParseError(n)
			}
		}
		if err != nil {
			return nil, fmt.Errorf("langidpb: field %d: %w", num, err)
		}
		if num <= fieldNumStates && num >= fieldNumFeats {
			seen[num] = true
		}
		data = data[n:]
	}
	for _, num := range []protowire.Number{fieldNumFeats, fieldNumLangs, fieldNumStates} {
		if !seen[num] {
			return nil, fmt.Errorf("%w %d", ErrMissingField, num)
		}
	}
	return model.New(t)
}

func wireTypeError(typ protowire.Type) error {
	return fmt.Errorf("unexpected wire type %d", typ)
}

func consumeCardinality(typ protowire.Type, data []byte, dst *int) (int, error) {
	if typ != protowire.VarintType {
		return 0, wireTypeError(typ)
	}
	v, n := protowire.ConsumeVarint(data)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	u, err := safecast.Conv[uint32](v)
	if err != nil {
		return 0, err
	}
	*dst = int(u)
	return n, nil
}

// consumeUint32s appends one unpacked value or a packed run to dst and
// returns the number of bytes consumed.
func consumeUint32s(typ protowire.Type, data []byte, dst *[]uint32) (int, error) {
	switch typ {
	case protowire.VarintType:
		v, n := protowire.ConsumeVarint(data)
		if n < 0 {
			return 0, protowire.ParseError(n)
		}
		u, err := safecast.Conv[uint32](v)
		if err != nil {
			return 0, err
		}
		*dst = append(*dst, u)
		return n, nil
	case protowire.BytesType:
		packed, n := protowire.ConsumeBytes(data)
		if n < 0 {
			return 0, protowire.ParseError(n)
		}
		for len(packed) > 0 {
			v, m := protowire.ConsumeVarint(packed)
			if m < 0 {
				return 0, protowire.ParseError(m)
			}
			u, err := safecast.Conv[uint32](v)
			if err != nil {
				return 0, err
			}
			*dst = append(*dst, u)
			packed = packed[m:]
		}
		return n, nil
	}
	return 0, wireTypeError(typ)
}

func consumeDoubles(typ protowire.Type, data []byte, dst *[]float64) (int, error) {
	switch typ {
	case protowire.Fixed64Type:
		v, n := protowire.ConsumeFixed64(data)
		if n < 0 {
			return 0, protowire.ParseError(n)
		}
		*dst = append(*dst, math.Float64frombits(v))
		return n, nil
	case protowire.BytesType:
		packed, n := protowire.ConsumeBytes(data)
		if n < 0 {
			return 0, protowire.ParseError(n)
		}
		if len(packed)%8 != 0 {
			return 0, fmt.Errorf("packed doubles of %d bytes", len(packed))
		}
		*dst = slices.Grow(*dst, len(packed)/8)
		for len(packed) > 0 {
			v, m := protowire.ConsumeFixed64(packed)
			if m < 0 {
				return 0, protowire.ParseError(m)
			}
			*dst = append(*dst, math.Float64frombits(v))
			packed = packed[m:]
		}
		return n, nil
	}
	return 0, wireTypeError(typ)
}

func consumeString(typ protowire.Type, data []byte, dst *[]string) (int, error) {
	if typ != protowire.BytesType {
		return 0, wireTypeError(typ)
	}
	b, n := protowire.ConsumeBytes(data)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	*dst = append(*dst, string(b))
	return n, nil
}

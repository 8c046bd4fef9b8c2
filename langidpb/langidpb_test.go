package langidpb

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/npillmayer/langid/compile"
	"github.com/npillmayer/langid/model"
)

func toyModel(t testing.TB) *model.Model {
	t.Helper()
	b, err := compile.New([]string{"en", "fr"}, []float64{math.Log(0.5), math.Log(0.5)})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := b.AddFeature([]byte("ab"), []float64{math.Log(0.9), math.Log(0.1)}); err != nil {
		t.Fatal(err)
	}
	if _, err := b.AddFeature([]byte("b"), []float64{math.Log(0.3), math.Log(0.7)}); err != nil {
		t.Fatal(err)
	}
	m, err := b.Compile()
	if err != nil {
		t.Fatal(err)
	}
	return m
}

// singleState builds a one-state, zero-feature message field by field,
// with every repeated scalar unpacked.
func singleState(skip protowire.Number) []byte {
	var b []byte
	varint := func(num protowire.Number, v uint64) {
		if num == skip {
			return
		}
		b = protowire.AppendTag(b, num, protowire.VarintType)
		b = protowire.AppendVarint(b, v)
	}
	varint(fieldNumFeats, 0)
	varint(fieldNumLangs, 1)
	varint(fieldNumStates, 1)
	for range model.AlphabetSize {
		varint(fieldNextMove, 0)
	}
	varint(fieldOutputC, 0)
	varint(fieldOutputS, 0)
	b = protowire.AppendTag(b, fieldLogPrior, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, math.Float64bits(0))
	b = protowire.AppendTag(b, fieldClassNames, protowire.BytesType)
	b = protowire.AppendString(b, "xx")
	return b
}

func TestEncodeDecode(t *testing.T) {
	m := toyModel(t)
	decoded, err := Decode(Encode(m))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(decoded.Tables(), m.Tables()) {
		t.Fatalf("decoded tables differ from encoded model")
	}
}

func TestDecodeUnpacked(t *testing.T) {
	m, err := Decode(singleState(0))
	if err != nil {
		t.Fatal(err)
	}
	if m.NumStates() != 1 || m.NumLanguages() != 1 || m.Label(0) != "xx" {
		t.Fatalf("unexpected model %v labels=%v", m, m.Labels())
	}
}

func TestDecodeSkipsUnknownFields(t *testing.T) {
	data := protowire.AppendTag(nil, 42, protowire.BytesType)
	data = protowire.AppendString(data, "ignored")
	data = append(data, singleState(0)...)
	if _, err := Decode(data); err != nil {
		t.Fatalf("unknown field should be skipped: %v", err)
	}
}

func TestDecodeFailures(t *testing.T) {
	valid := Encode(toyModel(t))
	wrongType := protowire.AppendTag(nil, fieldNumStates, protowire.BytesType)
	wrongType = protowire.AppendString(wrongType, "3")
	tests := []struct {
		name string
		data []byte
		is   error
	}{
		{"empty", nil, nil},
		{"missing state count", singleState(fieldNumStates), ErrMissingField},
		{"truncated", valid[:len(valid)-3], nil},
		{"cardinality with wrong wire type", append(wrongType, singleState(0)...), nil},
		{"missing language count", singleState(fieldNumLangs), ErrMissingField},
		{"garbage", []byte{0xff, 0xff, 0xff}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Decode(tt.data)
			if err == nil || m != nil {
				t.Fatalf("expected failure, got model=%v err=%v", m, err)
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Fatalf("error %v does not wrap %v", err, tt.is)
			}
		})
	}
}

func TestDecodeRejectsLengthMismatch(t *testing.T) {
	data := singleState(0)
	data = protowire.AppendTag(data, fieldLogPrior, protowire.Fixed64Type)
	data = protowire.AppendFixed64(data, math.Float64bits(-1)) // second prior, one language
	_, err := Decode(data)
	if !errors.Is(err, model.ErrInvalidModel) {
		t.Fatalf("expected ErrInvalidModel, got %v", err)
	}
}

func FuzzDecode(f *testing.F) {
	f.Add(Encode(toyModel(f)))
	f.Add(singleState(0))
	f.Fuzz(func(t *testing.T, data []byte) {
		m, err := Decode(data)
		if err != nil {
			return
		}
		// a model that passed validation must be safe to walk
		for s := range m.NumStates() {
			for _, feat := range m.Outputs(uint32(s)) {
				_ = m.Likelihoods(feat)
			}
			_ = m.Next(uint32(s), 0xff)
		}
	})
}

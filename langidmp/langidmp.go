// Package langidmp reads and writes language models as msgpack documents.
//
// The document is a map holding the same tables as the protocol buffer
// format of package langidpb, under the same field names, plus a format
// marker and a schema version. It is typically smaller to decode than the
// protobuf form because doubles and state ids need no varint unpacking.
package langidmp

import (
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/npillmayer/langid/model"
)

// Format is the value of the format marker of every document.
const Format = "langid-model"

// SchemaVersion is incremented whenever the document layout changes.
const SchemaVersion uint16 = 1

// ErrNotAModel is returned for msgpack documents without the format marker.
var ErrNotAModel = errors.New("langidmp: not a language model document")

type document struct {
	Format  string `msgpack:"format"`
	Version uint16 `msgpack:"version"`

	NumFeatures  int `msgpack:"num_feats"`
	NumLanguages int `msgpack:"num_langs"`
	NumStates    int `msgpack:"num_states"`

	Transitions []uint32 `msgpack:"tk_nextmove"`
	OutputCount []uint32 `msgpack:"tk_output_c"`
	OutputStart []uint32 `msgpack:"tk_output_s"`
	Output      []uint32 `msgpack:"tk_output"`

	LogPrior      []float64 `msgpack:"nb_pc"`
	LogLikelihood []float64 `msgpack:"nb_ptc"`
	Labels        []string  `msgpack:"nb_classes"`
}

// Decode parses a msgpack model document and validates it.
func Decode(data []byte) (*model.Model, error) {
	var doc document
	if err := msgpack.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("langidmp: %w", err)
	}
	if doc.Format != Format {
		return nil, ErrNotAModel
	}
	if doc.Version != SchemaVersion {
		return nil, fmt.Errorf("langidmp: schema version %d, want %d", doc.Version, SchemaVersion)
	}
	return model.New(model.Tables{
		NumStates:     doc.NumStates,
		NumFeatures:   doc.NumFeatures,
		NumLanguages:  doc.NumLanguages,
		Transitions:   doc.Transitions,
		OutputStart:   doc.OutputStart,
		OutputCount:   doc.OutputCount,
		Output:        doc.Output,
		LogPrior:      doc.LogPrior,
		LogLikelihood: doc.LogLikelihood,
		Labels:        doc.Labels,
	})
}

// Encode serializes m as a msgpack document.
func Encode(m *model.Model) ([]byte, error) {
	t := m.Tables()
	return msgpack.Marshal(&document{
		Format:        Format,
		Version:       SchemaVersion,
		NumFeatures:   t.NumFeatures,
		NumLanguages:  t.NumLanguages,
		NumStates:     t.NumStates,
		Transitions:   t.Transitions,
		OutputCount:   t.OutputCount,
		OutputStart:   t.OutputStart,
		Output:        t.Output,
		LogPrior:      t.LogPrior,
		LogLikelihood: t.LogLikelihood,
		Labels:        t.Labels,
	})
}

// IsDocument reports whether data starts like a msgpack map, the outer
// shape of every model document. A protobuf model never starts this way:
// its first byte is the tag of a field numbered below 16.
func IsDocument(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	c := data[0]
	return c&0xf0 == 0x80 || c == 0xde || c == 0xdf
}

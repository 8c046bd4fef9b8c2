// Package builtin provides the compiled-in default language model.
//
// The model covers ten languages (az de en es fr it nl pt ru tr) from their
// top character trigram profiles, with uniform priors. It is embedded as a
// protocol buffer model file and decoded, and thereby validated, on first
// use. Larger models are loaded from files.
//
// default.txt is the feature table the model is compiled from; both files
// are generated:
//
//	go generate ./builtin
package builtin

import (
	_ "embed"
	"sync"

	"github.com/npillmayer/langid/langidpb"
	"github.com/npillmayer/langid/model"
)

//go:generate go run gen_table.go
//go:generate go run ../cmd/langid compile --to protobuf default.txt default.pb

//go:embed default.pb
var defaultPB []byte

var defaultModel = sync.OnceValue(func() *model.Model {
	m, err := langidpb.Decode(defaultPB)
	if err != nil {
		panic("builtin: embedded model is corrupt: " + err.Error())
	}
	return m
})

// Model returns the default model. It is decoded on first use and shared
// afterwards; models are immutable, so sharing is safe.
func Model() *model.Model {
	return defaultModel()
}

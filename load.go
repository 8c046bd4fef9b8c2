package langid

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/npillmayer/langid/langidmp"
	"github.com/npillmayer/langid/langidpb"
	"github.com/npillmayer/langid/model"
)

// ErrModelLoad is matched by every error returned from model loading.
var ErrModelLoad = errors.New("langid: cannot load model")

// LoadError reports a failure to load a model from Path. Err holds the
// cause, such as a file system error or model.ErrInvalidModel.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("langid: cannot load model from %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrModelLoad) hold for every *LoadError.
func (e *LoadError) Is(target error) bool { return target == ErrModelLoad }

// Load reads the model at path and returns an Identifier for it.
// There is no fallback: if loading fails, no Identifier is returned.
func Load(path string) (*Identifier, error) {
	m, err := LoadModel(path)
	if err != nil {
		return nil, err
	}
	return New(m), nil
}

// LoadModel reads and decodes the model file at path. Files starting with
// a msgpack map are read as langidmp documents, everything else as langid.c
// protocol buffer messages. The model owns all of its tables; the file is
// not referenced after LoadModel returns.
func LoadModel(path string) (*model.Model, error) {
	data, err := os.ReadFile(path)
	if err == nil && len(data) == 0 {
		err = errors.New("empty model file")
	}
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	m, err := decode(data)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	tracer().Infof("loaded model from %s: %v", path, m)
	return m, nil
}

// ReadModel decodes a model from r, which is read to the end. Errors carry
// the path "<reader>".
func ReadModel(r io.Reader) (*model.Model, error) {
	data, err := io.ReadAll(r)
	if err == nil && len(data) == 0 {
		err = errors.New("empty model data")
	}
	if err != nil {
		return nil, &LoadError{Path: "<reader>", Err: err}
	}
	m, err := decode(data)
	if err != nil {
		return nil, &LoadError{Path: "<reader>", Err: err}
	}
	return m, nil
}

func decode(data []byte) (*model.Model, error) {
	if langidmp.IsDocument(data) {
		return langidmp.Decode(data)
	}
	return langidpb.Decode(data)
}

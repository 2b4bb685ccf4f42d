// Package production provides integrations around the engine: tape fixture
// stores, replay, action sources and publishing, and mode-graph visualization.
package production

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

var ErrTapeNotFound = errors.New("tape not found")

// Tape is a scripted key sequence with an optional expected outcome.
type Tape struct {
	ID     string       `json:"id" yaml:"id"`
	Name   string       `json:"name" yaml:"name" validate:"required,excludesall=/\\"`
	Keys   []string     `json:"keys" yaml:"keys" validate:"required,min=1,dive,required"`
	Expect *Expectation `json:"expect,omitempty" yaml:"expect,omitempty"`
}

// Expectation is the snapshot a tape should end on.
type Expectation struct {
	Display    string `json:"display" yaml:"display" validate:"required"`
	Expression string `json:"expression" yaml:"expression"`
}

var validate = validator.New()

// Validate checks the tape's struct constraints.
func (t *Tape) Validate() error {
	if err := validate.Struct(t); err != nil {
		return fmt.Errorf("invalid tape: %w", err)
	}
	return nil
}

// TapeStore saves and loads tapes by name.
type TapeStore interface {
	Save(ctx context.Context, tape *Tape) error
	Load(ctx context.Context, name string) (*Tape, error)
}

type codec struct {
	ext       string
	marshal   func(any) ([]byte, error)
	unmarshal func([]byte, any) error
}

// fileStore keeps one file per tape in dir.
type fileStore struct {
	dir   string
	codec codec
}

func newFileStore(dir string, c codec) (*fileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &fileStore{dir: dir, codec: c}, nil
}

func (s *fileStore) path(name string) string {
	return filepath.Join(s.dir, name+s.codec.ext)
}

// Save writes the tape, assigning an ID if it has none.
func (s *fileStore) Save(ctx context.Context, tape *Tape) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := tape.Validate(); err != nil {
		return err
	}
	if tape.ID == "" {
		tape.ID = uuid.New().String()
	}

	data, err := s.codec.marshal(tape)
	if err != nil {
		return fmt.Errorf("%s marshal: %w", strings.TrimPrefix(s.codec.ext, "."), err)
	}

	fn := s.path(tape.Name)
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", fn, err)
	}
	return nil
}

func (s *fileStore) Load(ctx context.Context, name string) (*Tape, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fn := s.path(name)
	data, err := os.ReadFile(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q: %w", ErrTapeNotFound, name, os.ErrNotExist)
		}
		return nil, fmt.Errorf("read %s: %w", fn, err)
	}
	return s.decode(data, name)
}

func (s *fileStore) decode(data []byte, name string) (*Tape, error) {
	var tape Tape
	if err := s.codec.unmarshal(data, &tape); err != nil {
		return nil, fmt.Errorf("%s unmarshal: %w", strings.TrimPrefix(s.codec.ext, "."), err)
	}
	if tape.Name == "" {
		tape.Name = name
	}
	if err := tape.Validate(); err != nil {
		return nil, err
	}
	return &tape, nil
}

var (
	jsonCodec = codec{
		ext: ".json",
		marshal: func(v any) ([]byte, error) {
			return json.MarshalIndent(v, "", "  ")
		},
		unmarshal: json.Unmarshal,
	}
	yamlCodec = codec{
		ext:       ".yaml",
		marshal:   yaml.Marshal,
		unmarshal: yaml.Unmarshal,
	}
)

// JSONTapeStore stores tapes as indented JSON.
type JSONTapeStore struct{ *fileStore }

// NewJSONTapeStore creates a JSONTapeStore, ensuring the directory exists.
func NewJSONTapeStore(dir string) (*JSONTapeStore, error) {
	fs, err := newFileStore(dir, jsonCodec)
	if err != nil {
		return nil, err
	}
	return &JSONTapeStore{fs}, nil
}

// YAMLTapeStore stores tapes as YAML.
type YAMLTapeStore struct{ *fileStore }

// NewYAMLTapeStore creates a YAMLTapeStore, ensuring the directory exists.
func NewYAMLTapeStore(dir string) (*YAMLTapeStore, error) {
	fs, err := newFileStore(dir, yamlCodec)
	if err != nil {
		return nil, err
	}
	return &YAMLTapeStore{fs}, nil
}

// OpenTape loads a single tape file, choosing the codec by extension
// (.json, .yaml, .yml).
func OpenTape(ctx context.Context, path string) (*Tape, error) {
	dir, base := filepath.Split(path)
	ext := filepath.Ext(base)
	if dir == "" {
		dir = "."
	}

	var c codec
	switch strings.ToLower(ext) {
	case ".json":
		c = jsonCodec
	case ".yaml", ".yml":
		c = yamlCodec
	default:
		return nil, fmt.Errorf("unsupported tape format %q", ext)
	}
	c.ext = ext
	store := &fileStore{dir: dir, codec: c}
	return store.Load(ctx, strings.TrimSuffix(base, ext))
}

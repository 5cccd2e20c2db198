package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/hoops/internal/leaderboard"
)

// document is the persisted form of a leaderboard.
type document struct {
	Version int      `json:"version" yaml:"version"`
	Entries []record `json:"entries" yaml:"entries"`
}

type record struct {
	Score      int              `json:"score" yaml:"score"`
	RecordedOn leaderboard.Date `json:"recorded_on" yaml:"recorded_on"`
}

// codec encodes documents for one file format.
type codec struct {
	name      string
	marshal   func(v any) ([]byte, error)
	unmarshal func(data []byte, v any) error
}

var (
	jsonCodec = codec{
		name: "json",
		marshal: func(v any) ([]byte, error) {
			data, err := json.MarshalIndent(v, "", "  ")
			if err != nil {
				return nil, err
			}
			return append(data, '\n'), nil
		},
		unmarshal: json.Unmarshal,
	}
	yamlCodec = codec{
		name:      "yaml",
		marshal:   yaml.Marshal,
		unmarshal: yaml.Unmarshal,
	}
)

// codecFor picks the format from the file extension. JSON is the default.
func codecFor(path string) codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yamlCodec
	default:
		return jsonCodec
	}
}

// FileStore keeps the leaderboard in a single document file.
// Saves write a temporary file in the same directory and rename it over the
// target, so a failed save never leaves a half-written store behind.
type FileStore struct {
	path  string
	codec codec
}

// NewFileStore returns a store at path. The file is not touched until the
// first Load or Save; a missing file loads as an empty leaderboard.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("storage: empty store path")
	}
	expanded, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}
	return &FileStore{path: expanded, codec: codecFor(expanded)}, nil
}

// Path returns the resolved file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the leaderboard from disk.
func (s *FileStore) Load() (leaderboard.Board, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return leaderboard.Board{}, nil
	}
	if err != nil {
		return leaderboard.Board{}, fmt.Errorf("storage: cannot read %s: %w", s.path, err)
	}

	var doc document
	if err := s.codec.unmarshal(data, &doc); err != nil {
		return leaderboard.Board{}, &leaderboard.CorruptStoreError{Path: s.path, Err: fmt.Errorf("decode %s: %w", s.codec.name, err)}
	}
	return boardFromDocument(s.path, doc)
}

// Save replaces the file contents with b.
func (s *FileStore) Save(b leaderboard.Board) error {
	data, err := s.codec.marshal(documentFromBoard(b))
	if err != nil {
		return &leaderboard.StoreWriteError{Path: s.path, Err: err}
	}
	if err := writeFileAtomic(s.path, data); err != nil {
		return &leaderboard.StoreWriteError{Path: s.path, Err: err}
	}
	return nil
}

// Close is a no-op; FileStore holds no open handles.
func (s *FileStore) Close() error {
	return nil
}

func documentFromBoard(b leaderboard.Board) document {
	doc := document{Version: schemaVersion, Entries: make([]record, 0, b.Len())}
	for _, e := range b.Entries() {
		doc.Entries = append(doc.Entries, record{Score: e.Score, RecordedOn: e.RecordedOn})
	}
	return doc
}

func boardFromDocument(path string, doc document) (leaderboard.Board, error) {
	if doc.Version != schemaVersion {
		return leaderboard.Board{}, &leaderboard.CorruptStoreError{
			Path: path,
			Err:  fmt.Errorf("unsupported schema version %d", doc.Version),
		}
	}

	entries := make([]leaderboard.Entry, 0, len(doc.Entries))
	for _, r := range doc.Entries {
		entries = append(entries, leaderboard.Entry{Score: r.Score, RecordedOn: r.RecordedOn})
	}
	b, err := leaderboard.FromEntries(entries)
	if err != nil {
		return leaderboard.Board{}, &leaderboard.CorruptStoreError{Path: path, Err: err}
	}
	return b, nil
}

// writeFileAtomic writes data next to path and renames it into place.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	// Removing after a successful rename fails harmlessly.
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}

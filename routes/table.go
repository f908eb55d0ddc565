package routes

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed default_routes.yaml
var defaultRoutesYAML []byte

var defaultTable = sync.OnceValue(func() *Table {
	t, err := Load(bytes.NewReader(defaultRoutesYAML))
	if err != nil {
		panic(fmt.Sprintf("routes: built-in table invalid: %v", err))
	}
	return t
})

// DefaultTable returns the built-in EventX route table.
func DefaultTable() *Table {
	return defaultTable()
}

type tableFile struct {
	Routes []Entry `yaml:"routes"`
}

// Load reads a YAML route table and validates it like NewTable.
func Load(r io.Reader) (*Table, error) {
	var file tableFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("routes: decode table: %w", err)
	}
	if len(file.Routes) == 0 {
		return nil, fmt.Errorf("routes: table defines no routes")
	}
	return NewTable(file.Routes)
}

// LoadFile is Load for a file on disk.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("routes: open table: %w", err)
	}
	defer f.Close()
	return Load(f)
}

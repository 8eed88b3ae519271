package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	yaml "gopkg.in/yaml.v3"

	"github.com/wdm0006/optimus/pkg/optimus"
)

// Config describes one cleaning run: where rows come from, the ordered
// steps applied to them and where they go.
type Config struct {
	Input     IOConfig              `json:"input" yaml:"input" toml:"input"`
	Output    IOConfig              `json:"output" yaml:"output" toml:"output"`
	ChunkSize int                   `json:"chunk_size" yaml:"chunk_size" toml:"chunk_size"`
	Steps     []map[string]StepArgs `json:"steps" yaml:"steps" toml:"steps"`
}

type IOConfig struct {
	Path      string `json:"path" yaml:"path" toml:"path"`
	Type      string `json:"type" yaml:"type" toml:"type"` // csv|jsonl|parquet; default from the extension
	HasHeader *bool  `json:"has_header" yaml:"has_header" toml:"has_header"`
	Delimiter string `json:"delimiter" yaml:"delimiter" toml:"delimiter"`
}

// StepArgs is the union of every step's arguments. Each step reads the
// fields it needs.
type StepArgs struct {
	Column    string               `json:"column" yaml:"column" toml:"column"`
	Columns   []string             `json:"columns" yaml:"columns" toml:"columns"`
	Value     any                  `json:"value" yaml:"value" toml:"value"`
	Values    []string             `json:"values" yaml:"values" toml:"values"`
	Map       map[string]string    `json:"map" yaml:"map" toml:"map"`
	Keys      []string             `json:"keys" yaml:"keys" toml:"keys"`
	ReplaceBy string               `json:"replace_by" yaml:"replace_by" toml:"replace_by"`
	Pattern   string               `json:"pattern" yaml:"pattern" toml:"pattern"`
	Replace   string               `json:"replace" yaml:"replace" toml:"replace"`
	Min       *float64             `json:"min" yaml:"min" toml:"min"`
	Max       *float64             `json:"max" yaml:"max" toml:"max"`
	K         float64              `json:"k" yaml:"k" toml:"k"`
	Pairs     []optimus.ColumnPair `json:"pairs" yaml:"pairs" toml:"pairs"`
	Types     []optimus.ColumnType `json:"types" yaml:"types" toml:"types"`
	Ref       string               `json:"ref" yaml:"ref" toml:"ref"`
	Position  string               `json:"position" yaml:"position" toml:"position"`
	Format    string               `json:"format" yaml:"format" toml:"format"`
	Output    string               `json:"output" yaml:"output" toml:"output"`
}

// columns merges the single-column shorthand with the list form.
func (a StepArgs) columns() []string {
	if a.Column == "" {
		return a.Columns
	}
	return append([]string{a.Column}, a.Columns...)
}

// loadConfig decodes path as JSON, YAML or TOML by its extension.
func loadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json", "":
		err = json.Unmarshal(b, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &cfg)
	case ".toml":
		err = toml.Unmarshal(b, &cfg)
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Input.Path == "" {
		return nil, fmt.Errorf("config %s: input.path is required", path)
	}
	if cfg.Output.Path == "" {
		cfg.Output.Path = "-"
	}
	return &cfg, nil
}

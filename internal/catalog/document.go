package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidDocument is returned when a catalog document breaks its invariants.
	ErrInvalidDocument = errors.New("invalid catalog document")

	// ErrUnsupportedFormat is returned for a catalog file that is neither JSON nor YAML.
	ErrUnsupportedFormat = errors.New("unsupported catalog format")
)

// Format is the encoding of a catalog document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the document format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Document is the external shape of a catalog:
//
//	{"total_reasons": 3, "categories": {"Work": {"count": 2, "reasons": [...]}}}
//
// Category order follows key order in the source.
type Document struct {
	TotalReasons int          `json:"total_reasons" yaml:"total_reasons" validate:"gte=0"`
	Categories   CategoryList `json:"categories" yaml:"categories" validate:"unique=Name,dive"`
}

// CategoryDocument is one entry of the categories object.
type CategoryDocument struct {
	// Name is the object key. All is reserved for the whole catalog.
	Name    string   `json:"-" yaml:"-" validate:"required,ne=All"`
	Count   int      `json:"count" yaml:"count" validate:"gte=0"`
	Reasons []string `json:"reasons" yaml:"reasons" validate:"dive,required"`
}

// CategoryList is an ordered categories object.
type CategoryList []CategoryDocument

// UnmarshalJSON decodes the categories object keeping key order.
func (l *CategoryList) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*l = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("categories: expected object, got %v", tok)
	}

	var out CategoryList
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, _ := tok.(string)

		var entry CategoryDocument
		if err := dec.Decode(&entry); err != nil {
			return fmt.Errorf("category %q: %w", name, err)
		}
		entry.Name = name
		out = append(out, entry)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*l = out
	return nil
}

// MarshalJSON encodes the categories object in list order.
func (l CategoryList) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range l {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c.Name)
		if err != nil {
			return nil, err
		}
		body, err := json.Marshal(c)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(body)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalYAML decodes the categories mapping keeping key order.
func (l *CategoryList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("categories: expected mapping at line %d", value.Line)
	}

	out := make(CategoryList, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		name := value.Content[i].Value

		var entry CategoryDocument
		if err := value.Content[i+1].Decode(&entry); err != nil {
			return fmt.Errorf("category %q: %w", name, err)
		}
		entry.Name = name
		out = append(out, entry)
	}

	*l = out
	return nil
}

// MarshalYAML encodes the categories mapping in list order.
func (l CategoryList) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, c := range l {
		var body yaml.Node
		if err := body.Encode(c); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: c.Name},
			&body,
		)
	}
	return node, nil
}

// Decode parses a document without validating it.
func Decode(data []byte, format Format) (*Document, error) {
	var doc Document
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode catalog json: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode catalog yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return &doc, nil
}

// Encode writes a document in the given format.
func Encode(doc *Document, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(doc, "", "  ")
	case FormatYAML:
		return yaml.Marshal(doc)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Parse decodes and validates a document and builds the catalog from it.
func Parse(data []byte, format Format) (*Catalog, error) {
	doc, err := Decode(data, format)
	if err != nil {
		return nil, err
	}
	return FromDocument(doc)
}

// LoadFile reads a JSON or YAML catalog from disk.
func LoadFile(path string) (*Catalog, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	return Parse(data, format)
}

// ReadDocument reads and validates a document from disk without building a catalog.
func ReadDocument(path string) (*Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	doc, err := Decode(data, format)
	if err != nil {
		return nil, err
	}
	if err := Validate(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// FromDocument validates doc and builds the catalog, keeping its counts.
func FromDocument(doc *Document) (*Catalog, error) {
	if err := Validate(doc); err != nil {
		return nil, err
	}

	c := &Catalog{
		categories: make([]Category, 0, len(doc.Categories)),
		index:      make(map[string]int, len(doc.Categories)),
		owner:      make(map[string]string),
	}
	for _, cd := range doc.Categories {
		c.add(Category{Name: cd.Name, Count: cd.Count, Reasons: cd.Reasons})
	}
	return c, nil
}

// Document returns the catalog in its external shape.
func (c *Catalog) Document() *Document {
	doc := &Document{
		TotalReasons: c.total,
		Categories:   make(CategoryList, 0, len(c.categories)),
	}
	for _, cat := range c.categories {
		doc.Categories = append(doc.Categories, CategoryDocument{
			Name:    cat.Name,
			Count:   cat.Count,
			Reasons: append([]string(nil), cat.Reasons...),
		})
	}
	return doc
}

package internal

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/lychee-technology/schemalens"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var schemaFileExtensions = map[string]bool{".json": true, ".yaml": true, ".yml": true}

// fileSchemaRegistry is a SchemaRegistry that loads every JSON or YAML schema
// document under a directory. Ids are slash-separated paths relative to the
// directory; names are file base names without extension.
type fileSchemaRegistry struct {
	mu        sync.RWMutex
	schemaDir string
	byID      map[string]schemalens.Schema
	nameToID  map[string]string
	ids       []string
}

// NewFileSchemaRegistryFromDirectory scans schemaDir recursively and loads every
// *.json, *.yaml and *.yml file as a schema. Files that cannot be decoded are
// logged and skipped.
func NewFileSchemaRegistryFromDirectory(schemaDir string) (schemalens.SchemaRegistry, error) {
	registry := &fileSchemaRegistry{
		schemaDir: schemaDir,
		byID:      make(map[string]schemalens.Schema),
		nameToID:  make(map[string]string),
	}

	if err := registry.loadSchemasFromDirectory(); err != nil {
		return nil, err
	}

	return registry, nil
}

func (r *fileSchemaRegistry) loadSchemasFromDirectory() error {
	var paths []string
	err := filepath.WalkDir(r.schemaDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != r.schemaDir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if schemaFileExtensions[strings.ToLower(filepath.Ext(p))] {
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to read schema directory: %w", err)
	}
	sort.Strings(paths)

	contents := make(map[string]any, len(paths))
	for _, p := range paths {
		schema, err := r.loadSchemaFile(p)
		if errors.Is(err, errUndecodableDocument) {
			zap.S().Warnw("skipping undecodable schema file", "path", p, "error", err)
			continue
		}
		if err != nil {
			return err
		}
		if existing, dup := r.nameToID[schema.Name]; dup {
			zap.S().Warnw("duplicate schema name, lookups by name return the first file",
				"name", schema.Name, "kept", existing, "ignored", schema.ID)
		} else {
			r.nameToID[schema.Name] = schema.ID
		}
		r.byID[schema.ID] = schema
		r.ids = append(r.ids, schema.ID)
		contents[schema.ID] = schema.Content
	}

	if len(r.ids) == 0 {
		return fmt.Errorf("no loadable schema files found in directory: %s", r.schemaDir)
	}

	relations := NewRelationIndex(contents)
	for id, schema := range r.byID {
		schema.References = relations.References(id)
		schema.ReferencedBy = relations.ReferencedBy(schema.Name)
		r.byID[id] = schema
	}

	zap.S().Infow("loaded schemas", "dir", r.schemaDir, "count", len(r.ids))
	return nil
}

func (r *fileSchemaRegistry) loadSchemaFile(p string) (schemalens.Schema, error) {
	rel, err := filepath.Rel(r.schemaDir, p)
	if err != nil {
		return schemalens.Schema{}, schemalens.NewSchemaLoadError(p, err)
	}
	id := filepath.ToSlash(rel)

	info, err := os.Stat(p)
	if err != nil {
		return schemalens.Schema{}, schemalens.NewSchemaLoadError(id, err)
	}
	raw, err := os.ReadFile(p)
	if err != nil {
		return schemalens.Schema{}, schemalens.NewSchemaLoadError(id, err)
	}
	content, err := decodeSchemaDocument(raw, filepath.Ext(p))
	if err != nil {
		return schemalens.Schema{}, schemalens.NewSchemaLoadError(id, fmt.Errorf("%w: %w", errUndecodableDocument, err))
	}

	base := filepath.Base(p)
	schema := schemalens.Schema{
		ID:      id,
		Name:    strings.TrimSuffix(base, filepath.Ext(base)),
		Content: content,
		Metadata: schemalens.SchemaMetadata{
			LastModified: info.ModTime(),
			FileSize:     info.Size(),
		},
		ValidationStatus: validateSchemaDocument(content, p),
	}
	if obj, ok := content.(map[string]any); ok {
		schema.Metadata.Title, _ = obj["title"].(string)
		schema.Metadata.Description, _ = obj["description"].(string)
	}
	return schema, nil
}

// decodeSchemaDocument decodes JSON or YAML. YAML documents are round-tripped
// through JSON so both formats yield the same Go value shapes.
var errUndecodableDocument = errors.New("undecodable schema document")

func decodeSchemaDocument(raw []byte, ext string) (any, error) {
	var content any
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		var doc any
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
		normalized, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to convert YAML to JSON: %w", err)
		}
		raw = normalized
	}
	if err := json.Unmarshal(raw, &content); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return content, nil
}

// validateSchemaDocument reports whether content is a resolvable JSON Schema.
// Remote references resolve to the empty schema, so only the document itself is checked.
func validateSchemaDocument(content any, filePath string) schemalens.ValidationStatus {
	raw, err := json.Marshal(content)
	if err != nil {
		return schemalens.ValidationStatusInvalid
	}
	var schema jsonschema.Schema
	if err := json.Unmarshal(raw, &schema); err != nil {
		zap.S().Debugw("schema document does not decode as JSON Schema", "path", filePath, "error", err)
		return schemalens.ValidationStatusInvalid
	}

	opts := &jsonschema.ResolveOptions{
		Loader: func(*url.URL) (*jsonschema.Schema, error) { return &jsonschema.Schema{}, nil },
	}
	if abs, err := filepath.Abs(filePath); err == nil {
		opts.BaseURI = (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()
	}
	if _, err := schema.Resolve(opts); err != nil {
		zap.S().Debugw("schema document does not resolve", "path", filePath, "error", err)
		return schemalens.ValidationStatusInvalid
	}
	return schemalens.ValidationStatusValid
}

// GetSchemaByName retrieves a schema by name
func (r *fileSchemaRegistry) GetSchemaByName(name string) (schemalens.Schema, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.nameToID[name]
	if !exists {
		return schemalens.Schema{}, schemalens.NewSchemaNotFoundError(name)
	}
	return r.byID[id], nil
}

// GetSchemaByID retrieves a schema by id
func (r *fileSchemaRegistry) GetSchemaByID(id string) (schemalens.Schema, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	schema, exists := r.byID[id]
	if !exists {
		return schemalens.Schema{}, schemalens.NewSchemaNotFoundError(id)
	}
	return schema, nil
}

// ListSchemas returns a list of all registered schema names
func (r *fileSchemaRegistry) ListSchemas() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := MapKeys(r.nameToID)
	sort.Strings(names)
	return names
}

// Schemas returns every loaded schema ordered by id
func (r *fileSchemaRegistry) Schemas() []schemalens.Schema {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]schemalens.Schema, 0, len(r.ids))
	for _, id := range r.ids {
		out = append(out, r.byID[id])
	}
	return out
}

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"ai-router/internal/domain/aimodel"
	"ai-router/internal/infrastructure/logger"

	"github.com/buger/jsonparser"
	"gopkg.in/yaml.v3"
)

// LoadCatalog reads the model document at path and builds the catalog.
// Every failure is a *aimodel.ConfigLoadError.
func LoadCatalog(path string) (*aimodel.Catalog, error) {
	doc, err := LoadModelDocument(path)
	if err != nil {
		return nil, err
	}
	catalog, err := aimodel.NewCatalog(doc)
	if err != nil {
		var loadErr *aimodel.ConfigLoadError
		if errors.As(err, &loadErr) && loadErr.Source == "" {
			loadErr.Source = path
		}
		return nil, err
	}

	log := logger.GetLogger()
	log.Info().
		Str("path", path).
		Int("models", len(catalog.Models())).
		Msg("loaded AI model catalog")
	return catalog, nil
}

// LoadModelDocument parses a JSON or YAML model document. The format is
// chosen by extension; anything other than .yml/.yaml is read as JSON.
// Environment references like ${VAR} are expanded before parsing.
func LoadModelDocument(path string) (*aimodel.Document, error) {
	if strings.TrimSpace(path) == "" {
		return nil, &aimodel.ConfigLoadError{Reason: "model config path is empty"}
	}

	cleanPath := filepath.Clean(path)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, &aimodel.ConfigLoadError{Source: cleanPath, Reason: "read file", Err: err}
	}
	data = expandEnv(data)

	switch strings.ToLower(filepath.Ext(cleanPath)) {
	case ".yml", ".yaml":
		return parseYAMLDocument(cleanPath, data)
	default:
		return parseJSONDocument(cleanPath, data)
	}
}

func parseJSONDocument(source string, data []byte) (*aimodel.Document, error) {
	doc := aimodel.NewDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, &aimodel.ConfigLoadError{Source: source, Reason: "malformed JSON", Err: err}
	}
	if err := rejectDuplicateModels(source, data); err != nil {
		return nil, err
	}
	return doc, nil
}

// rejectDuplicateModels scans the raw models object, since the ordered map
// keeps the last of two equal keys.
func rejectDuplicateModels(source string, data []byte) error {
	seen := make(map[string]struct{})
	err := jsonparser.ObjectEach(data, func(key, _ []byte, _ jsonparser.ValueType, _ int) error {
		id := string(key)
		if _, exists := seen[id]; exists {
			return &aimodel.ConfigLoadError{Source: source, Reason: fmt.Sprintf("duplicate model %q", id)}
		}
		seen[id] = struct{}{}
		return nil
	}, "models")
	if err == nil || errors.Is(err, jsonparser.KeyPathNotFoundError) {
		return nil
	}
	var loadErr *aimodel.ConfigLoadError
	if errors.As(err, &loadErr) {
		return loadErr
	}
	return &aimodel.ConfigLoadError{Source: source, Reason: "malformed JSON", Err: err}
}

var envReference = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnv replaces ${VAR} with its value. A bare $name is left as is so
// model ids and parameter strings may contain dollar signs.
func expandEnv(data []byte) []byte {
	return envReference.ReplaceAllFunc(data, func(ref []byte) []byte {
		return []byte(os.Getenv(string(ref[2 : len(ref)-1])))
	})
}

type yamlDocument struct {
	Models        yaml.Node         `yaml:"models"`
	RoutingRules  map[string]string `yaml:"routing_rules"`
	FallbackRules map[string]string `yaml:"fallback_rules"`
}

// parseYAMLDocument walks the models mapping node by node so declaration
// order survives.
func parseYAMLDocument(source string, data []byte) (*aimodel.Document, error) {
	var raw yamlDocument
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &aimodel.ConfigLoadError{Source: source, Reason: "malformed YAML", Err: err}
	}

	doc := aimodel.NewDocument()
	if raw.RoutingRules != nil {
		doc.RoutingRules = raw.RoutingRules
	}
	if raw.FallbackRules != nil {
		doc.FallbackRules = raw.FallbackRules
	}

	if raw.Models.Kind == 0 {
		return doc, nil
	}
	if raw.Models.Kind != yaml.MappingNode {
		return nil, &aimodel.ConfigLoadError{Source: source, Reason: "models must be a mapping"}
	}
	for i := 0; i+1 < len(raw.Models.Content); i += 2 {
		keyNode, valueNode := raw.Models.Content[i], raw.Models.Content[i+1]
		var def aimodel.ModelDefinition
		if err := valueNode.Decode(&def); err != nil {
			return nil, &aimodel.ConfigLoadError{
				Source: source,
				Reason: fmt.Sprintf("model %q (line %d)", keyNode.Value, keyNode.Line),
				Err:    err,
			}
		}
		if _, exists := doc.Models.Get(keyNode.Value); exists {
			return nil, &aimodel.ConfigLoadError{Source: source, Reason: fmt.Sprintf("duplicate model %q", keyNode.Value)}
		}
		doc.Models.Set(keyNode.Value, def)
	}
	return doc, nil
}

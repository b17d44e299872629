package aimodel

import (
	"fmt"
	"strings"
)

// Catalog is the immutable registry built from a Document. It holds the
// models in declaration order together with the routing and fallback tables.
// A Catalog is never mutated after NewCatalog returns, so it is safe for
// concurrent readers.
type Catalog struct {
	models    []*Model
	byID      map[string]*Model
	routes    map[TaskCategory]string
	fallbacks map[ProviderFamily]FallbackRule
}

// NewCatalog validates the document and builds the catalog.
func NewCatalog(doc *Document) (*Catalog, error) {
	if doc == nil || doc.Models == nil || doc.Models.Len() == 0 {
		return nil, configErrorf("models section is missing or empty")
	}

	c := &Catalog{
		byID:      make(map[string]*Model, doc.Models.Len()),
		routes:    make(map[TaskCategory]string, len(TaskCategories)),
		fallbacks: make(map[ProviderFamily]FallbackRule, len(Families)),
	}

	for pair := doc.Models.Oldest(); pair != nil; pair = pair.Next() {
		model, err := buildModel(pair.Key, pair.Value, len(c.models))
		if err != nil {
			return nil, err
		}
		c.models = append(c.models, model)
		c.byID[model.ID] = model
	}

	if err := c.loadRoutes(doc.RoutingRules); err != nil {
		return nil, err
	}
	if err := c.loadFallbacks(doc.FallbackRules); err != nil {
		return nil, err
	}
	return c, nil
}

func buildModel(id string, def ModelDefinition, priority int) (*Model, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, configErrorf("model with empty identifier")
	}
	family, ok := ParseProviderFamily(def.Provider)
	if !ok {
		return nil, configErrorf("model %q: unknown provider %q", id, def.Provider)
	}
	if strings.TrimSpace(def.ModelID) == "" {
		return nil, configErrorf("model %q: model_id is required", id)
	}
	if def.CostPerToken < 0 {
		return nil, configErrorf("model %q: cost_per_token must not be negative", id)
	}
	if def.ContextWindow < 0 {
		return nil, configErrorf("model %q: context_window must not be negative", id)
	}

	capabilities := make([]Capability, 0, len(def.Capabilities))
	for _, tag := range def.Capabilities {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			capabilities = append(capabilities, Capability(tag))
		}
	}

	return &Model{
		ID:             id,
		DisplayName:    def.Name,
		Family:         family,
		BackendModelID: def.ModelID,
		Capabilities:   capabilities,
		ContextWindow:  def.ContextWindow,
		CostPerToken:   def.CostPerToken,
		UseCases:       append([]string(nil), def.UseCases...),
		Parameters:     Params(def.Parameters).Clone(),
		Priority:       priority,
	}, nil
}

func (c *Catalog) loadRoutes(rules map[string]string) error {
	for key, target := range rules {
		category, err := ParseTaskCategory(key)
		if err != nil {
			return configErrorf("routing_rules: unknown task category %q", key)
		}
		if _, ok := c.byID[target]; !ok {
			return configErrorf("routing_rules: %s routes to unknown model %q", category, target)
		}
		c.routes[category] = target
	}
	for _, category := range TaskCategories {
		if _, ok := c.routes[category]; !ok {
			return configErrorf("routing_rules: no model routed for %s", category)
		}
	}
	return nil
}

func (c *Catalog) loadFallbacks(rules map[string]string) error {
	for key, raw := range rules {
		family, ok := parseFallbackKey(key)
		if !ok {
			return configErrorf("fallback_rules: unknown failure key %q", key)
		}
		if _, dup := c.fallbacks[family]; dup {
			return configErrorf("fallback_rules: more than one entry for %s", family)
		}
		rule, err := parseFallbackDirective(raw)
		if err != nil {
			err.Reason = fmt.Sprintf("fallback_rules %q: %s", key, err.Reason)
			return err
		}
		switch rule.Kind {
		case FallbackToModel:
			target, ok := c.byID[rule.ModelID]
			if !ok {
				return configErrorf("fallback_rules %q: unknown model %q", key, rule.ModelID)
			}
			if target.Family == family {
				return configErrorf("fallback_rules %q: %q shares provider family %s", key, rule.ModelID, family)
			}
		case FallbackCapabilityScan:
			if rule.Family == family {
				return configErrorf("fallback_rules %q: %q scans the failing family %s", key, rule.Directive, family)
			}
		}
		c.fallbacks[family] = rule
	}
	return nil
}

// Model looks up a model by identifier.
func (c *Catalog) Model(id string) (*Model, bool) {
	m, ok := c.byID[id]
	return m, ok
}

// Models returns every model in priority (declaration) order.
func (c *Catalog) Models() []*Model {
	out := make([]*Model, len(c.models))
	copy(out, c.models)
	return out
}

// RouteTarget returns the model identifier routed for the category.
func (c *Catalog) RouteTarget(category TaskCategory) (string, bool) {
	id, ok := c.routes[category]
	return id, ok
}

// Route returns the routed model for the category.
func (c *Catalog) Route(category TaskCategory) (*Model, bool) {
	id, ok := c.routes[category]
	if !ok {
		return nil, false
	}
	return c.Model(id)
}

// Fallback returns the fallback entry for a provider family.
func (c *Catalog) Fallback(family ProviderFamily) (FallbackRule, bool) {
	rule, ok := c.fallbacks[family]
	return rule, ok
}

// ModelsByCapability returns models carrying the tag, in priority order.
func (c *Catalog) ModelsByCapability(capability Capability) []*Model {
	out := make([]*Model, 0)
	for _, m := range c.models {
		if m.HasCapability(capability) {
			out = append(out, m)
		}
	}
	return out
}

// Families returns the distinct provider families used by the catalog in
// first-seen order.
func (c *Catalog) Families() []ProviderFamily {
	seen := make(map[ProviderFamily]struct{}, len(Families))
	out := make([]ProviderFamily, 0, len(Families))
	for _, m := range c.models {
		if _, ok := seen[m.Family]; ok {
			continue
		}
		seen[m.Family] = struct{}{}
		out = append(out, m.Family)
	}
	return out
}

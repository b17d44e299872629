package airouter

import (
	"fmt"

	"ai-router/internal/domain/aimodel"
)

// FallbackResolver picks a substitute for a model that cannot serve a request.
// Resolution is a single hop; the substitute is not re-checked here.
type FallbackResolver struct {
	catalog *aimodel.Catalog
}

func NewFallbackResolver(catalog *aimodel.Catalog) *FallbackResolver {
	return &FallbackResolver{catalog: catalog}
}

// Resolve returns the substitute for failed under the category's capability.
func (r *FallbackResolver) Resolve(category aimodel.TaskCategory, failed *aimodel.Model) (*aimodel.Model, error) {
	rule, ok := r.catalog.Fallback(failed.Family)
	if !ok {
		return nil, fmt.Errorf("%w: no fallback rule for %s (model %q)", ErrNoFallbackAvailable, failed.Family, failed.ID)
	}

	if rule.Kind == aimodel.FallbackToModel {
		substitute, ok := r.catalog.Model(rule.ModelID)
		if !ok {
			return nil, fmt.Errorf("%w: fallback model %q is not registered", ErrNoFallbackAvailable, rule.ModelID)
		}
		return substitute, nil
	}

	capability, ok := aimodel.RequiredCapability(category)
	if !ok {
		return nil, fmt.Errorf("%w: no capability mapped for %s", ErrNoFallbackAvailable, category)
	}
	scope, scoped := rule.ScopedTo()
	for _, candidate := range r.catalog.Models() {
		if candidate.Family == failed.Family {
			continue
		}
		if scoped && candidate.Family != scope {
			continue
		}
		if candidate.HasCapability(capability) {
			return candidate, nil
		}
	}
	return nil, fmt.Errorf("%w: no %s model with capability %s to replace %q", ErrNoFallbackAvailable, scopeLabel(scope, scoped), capability, failed.ID)
}

func scopeLabel(scope aimodel.ProviderFamily, scoped bool) string {
	if scoped {
		return string(scope)
	}
	return "other-family"
}

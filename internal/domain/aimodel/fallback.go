package aimodel

import (
	"strings"
)

// FallbackKind distinguishes a fixed substitute from a registry scan.
type FallbackKind int

const (
	FallbackToModel FallbackKind = iota
	FallbackCapabilityScan
)

const (
	DirectiveCapabilityScan = "capability_scan"
	DirectiveAnyCapable     = "any_capable_model"
	directiveFamilySuffix   = "_models_only"
)

// FallbackRule is the parsed fallback entry for one provider family.
type FallbackRule struct {
	Kind      FallbackKind
	ModelID   string
	Family    ProviderFamily
	Directive string
}

// ScopedTo reports whether a scan is limited to a single family.
func (r FallbackRule) ScopedTo() (ProviderFamily, bool) {
	return r.Family, r.Kind == FallbackCapabilityScan && r.Family != ""
}

var fallbackKeySuffixes = []string{"_unavailable", "_quota_exceeded", "_failure"}

// parseFallbackKey maps keys like ollama_unavailable or hosted_chat_quota_exceeded to a family.
func parseFallbackKey(key string) (ProviderFamily, bool) {
	trimmed := strings.ToLower(strings.TrimSpace(key))
	for _, suffix := range fallbackKeySuffixes {
		if base, found := strings.CutSuffix(trimmed, suffix); found {
			return ParseProviderFamily(base)
		}
	}
	return ParseProviderFamily(trimmed)
}

func parseFallbackDirective(raw string) (FallbackRule, *ConfigLoadError) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return FallbackRule{}, configErrorf("empty fallback directive")
	}
	switch strings.ToLower(value) {
	case DirectiveCapabilityScan, DirectiveAnyCapable:
		return FallbackRule{Kind: FallbackCapabilityScan, Directive: value}, nil
	}
	if base, found := strings.CutSuffix(strings.ToLower(value), directiveFamilySuffix); found {
		family, ok := ParseProviderFamily(base)
		if !ok {
			return FallbackRule{}, configErrorf("fallback directive %q names unknown provider %q", value, base)
		}
		return FallbackRule{Kind: FallbackCapabilityScan, Family: family, Directive: value}, nil
	}
	return FallbackRule{Kind: FallbackToModel, ModelID: value, Directive: value}, nil
}

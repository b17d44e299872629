package availability

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ai-router/internal/domain/aimodel"
	"ai-router/internal/utils/httpclients"
	"ai-router/internal/utils/platformerrors"

	"github.com/tidwall/gjson"
	"resty.dev/v3"
)

// Prober checks one provider family. A nil error means the model can serve.
type Prober interface {
	Family() aimodel.ProviderFamily
	Probe(ctx context.Context, model *aimodel.Model) error
}

type probeClient struct {
	client  *resty.Client
	baseURL string
	bearer  string
}

func newProbeClient(name, baseURL, bearer string, timeout time.Duration) probeClient {
	return probeClient{
		client:  httpclients.NewClient(name+"-probe", timeout),
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		bearer:  bearer,
	}
}

func (p probeClient) get(ctx context.Context, path string) (string, error) {
	req := p.client.R().SetContext(ctx)
	if p.bearer != "" {
		req.SetHeader("Authorization", "Bearer "+p.bearer)
	}
	resp, err := req.Get(p.baseURL + path)
	if err != nil {
		return "", platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, "probe "+path)
	}
	if resp.IsError() {
		return "", platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeUnavailable,
			fmt.Sprintf("probe %s returned %d", path, resp.StatusCode()), nil, "").WithStatus(resp.StatusCode())
	}
	return resp.String(), nil
}

func unavailable(ctx context.Context, format string, args ...any) error {
	return platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeUnavailable, fmt.Sprintf(format, args...), nil, "")
}

// OllamaProber asks the local engine whether the model is pulled.
type OllamaProber struct {
	client probeClient
}

func NewOllamaProber(baseURL string, timeout time.Duration) *OllamaProber {
	return &OllamaProber{client: newProbeClient("ollama", baseURL, "", timeout)}
}

func (p *OllamaProber) Family() aimodel.ProviderFamily { return aimodel.FamilyLocalInference }

func (p *OllamaProber) Probe(ctx context.Context, model *aimodel.Model) error {
	body, err := p.client.get(ctx, "/api/tags")
	if err != nil {
		return err
	}
	want := normalizeOllamaTag(model.BackendModelID)
	found := false
	gjson.Get(body, "models").ForEach(func(_, entry gjson.Result) bool {
		for _, field := range []string{"name", "model"} {
			if normalizeOllamaTag(entry.Get(field).String()) == want {
				found = true
				return false
			}
		}
		return true
	})
	if !found {
		return unavailable(ctx, "model %s is not pulled", model.BackendModelID)
	}
	return nil
}

// normalizeOllamaTag treats "llama3" and "llama3:latest" as the same model.
func normalizeOllamaTag(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name != "" && !strings.Contains(name, ":") {
		name += ":latest"
	}
	return name
}

// OpenRouterProber reads the key endpoint and reports exhausted credit as
// unavailable.
type OpenRouterProber struct {
	client probeClient
}

func NewOpenRouterProber(baseURL, apiKey string, timeout time.Duration) *OpenRouterProber {
	return &OpenRouterProber{client: newProbeClient("openrouter", baseURL, apiKey, timeout)}
}

func (p *OpenRouterProber) Family() aimodel.ProviderFamily { return aimodel.FamilyHostedChat }

func (p *OpenRouterProber) Probe(ctx context.Context, model *aimodel.Model) error {
	if p.client.bearer == "" {
		return unavailable(ctx, "no API key configured for %s", model.Family)
	}
	body, err := p.client.get(ctx, "/key")
	if err != nil {
		return err
	}
	remaining := gjson.Get(body, "data.limit_remaining")
	if remaining.Exists() && remaining.Type != gjson.Null && remaining.Float() <= 0 {
		return unavailable(ctx, "quota exhausted for %s", model.Family)
	}
	return nil
}

// ReplicateProber checks that the account endpoint accepts the token.
type ReplicateProber struct {
	client probeClient
}

func NewReplicateProber(baseURL, apiToken string, timeout time.Duration) *ReplicateProber {
	return &ReplicateProber{client: newProbeClient("replicate", baseURL, apiToken, timeout)}
}

func (p *ReplicateProber) Family() aimodel.ProviderFamily { return aimodel.FamilyHostedImage }

func (p *ReplicateProber) Probe(ctx context.Context, model *aimodel.Model) error {
	if p.client.bearer == "" {
		return unavailable(ctx, "no API token configured for %s", model.Family)
	}
	_, err := p.client.get(ctx, "/v1/account")
	return err
}

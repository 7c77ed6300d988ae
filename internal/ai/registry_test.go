package ai

import (
	"context"
	"testing"
)

type nopProvider struct{ model string }

func (p *nopProvider) Chat(ctx context.Context, messages []Message) (string, error) {
	return "", nil
}

func TestRegistry_GetRegistered(t *testing.T) {
	reg := NewRegistry()
	reg.Register("OpenAI", func(model string) (Provider, error) {
		return &nopProvider{model: model}, nil
	})

	// lookup is case-insensitive
	p, err := reg.Get("openai", "gpt-4o-mini")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if np, ok := p.(*nopProvider); !ok || np.model != "gpt-4o-mini" {
		t.Fatalf("unexpected provider %+v", p)
	}
}

func TestRegistry_Unknown(t *testing.T) {
	reg := NewRegistry()
	if _, err := reg.Get("nope", ""); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}

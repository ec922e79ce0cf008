package service

import (
	"errors"
	"testing"

	"darely/internal/domain"
	"darely/internal/models"
)

type memPrompts struct {
	prompts map[string]*models.DarePrompt // kind+tier -> prompt
}

func (m *memPrompts) Random(kind, tier string) (*models.DarePrompt, error) {
	p, ok := m.prompts[kind+tier]
	if !ok {
		return nil, errors.New("record not found")
	}
	return p, nil
}

type memSettings struct {
	values map[string]string
}

func (m *memSettings) Get(key string) (string, error) {
	v, ok := m.values[key]
	if !ok {
		return "", errors.New("record not found")
	}
	return v, nil
}

func newPricing(overrides map[string]string) *PricingService {
	prompts := &memPrompts{prompts: map[string]*models.DarePrompt{
		domain.KindSystemDare + domain.TierBronze:  {Text: "Do a spin"},
		domain.KindSystemTruth + domain.TierSilver: {Text: "First crush?"},
	}}
	if overrides == nil {
		overrides = map[string]string{}
	}
	return NewPricingService(prompts, &memSettings{values: overrides})
}

func TestResolveSystemKindUsesTierPriceAndPrompt(t *testing.T) {
	amount, content, err := newPricing(nil).Resolve(ResolveInput{
		Kind: domain.KindSystemDare,
		Tier: domain.TierBronze,
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if amount != 500 {
		t.Errorf("amount = %d, want 500 (bronze default)", amount)
	}
	if content != "Do a spin" {
		t.Errorf("content = %q, want prompt text", content)
	}
}

func TestResolveSystemKindHonorsAdminOverride(t *testing.T) {
	svc := newPricing(map[string]string{
		SettingTierPricePrefix + domain.TierBronze: "750",
	})
	amount, _, err := svc.Resolve(ResolveInput{Kind: domain.KindSystemDare, Tier: domain.TierBronze})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if amount != 750 {
		t.Errorf("amount = %d, want 750 override", amount)
	}
}

func TestResolveSystemKindUnknownTier(t *testing.T) {
	_, _, err := newPricing(nil).Resolve(ResolveInput{Kind: domain.KindSystemDare, Tier: "PLATINUM"})
	if !errors.Is(err, ErrUnknownTier) {
		t.Fatalf("err = %v, want ErrUnknownTier", err)
	}
}

func TestResolveSystemKindNoPrompts(t *testing.T) {
	_, _, err := newPricing(nil).Resolve(ResolveInput{Kind: domain.KindSystemTruth, Tier: domain.TierGold})
	if !errors.Is(err, ErrNoPrompts) {
		t.Fatalf("err = %v, want ErrNoPrompts", err)
	}
}

func TestResolveCustomKindRequiresContentAndMinimum(t *testing.T) {
	svc := newPricing(nil)

	if _, _, err := svc.Resolve(ResolveInput{Kind: domain.KindCustomDare, AmountCents: 300}); !errors.Is(err, ErrContentMissing) {
		t.Errorf("missing content: err = %v, want ErrContentMissing", err)
	}
	if _, _, err := svc.Resolve(ResolveInput{Kind: domain.KindCustomDare, Content: "x", AmountCents: 100}); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("below minimum: err = %v, want ErrInvalidAmount", err)
	}
	amount, content, err := svc.Resolve(ResolveInput{Kind: domain.KindCustomTruth, Content: "Tell us", AmountCents: 250})
	if err != nil {
		t.Fatalf("valid custom: %v", err)
	}
	if amount != 250 || content != "Tell us" {
		t.Errorf("got amount=%d content=%q", amount, content)
	}
}

func TestResolveCustomMinimumOverride(t *testing.T) {
	svc := newPricing(map[string]string{SettingCustomMinimum: "1000"})
	if _, _, err := svc.Resolve(ResolveInput{Kind: domain.KindCustomDare, Content: "x", AmountCents: 500}); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("below raised minimum: err = %v, want ErrInvalidAmount", err)
	}
}

func TestResolveTip(t *testing.T) {
	svc := newPricing(nil)
	amount, content, err := svc.Resolve(ResolveInput{Kind: domain.KindTip, AmountCents: 50, Content: "love the stream"})
	if err != nil {
		t.Fatalf("tip: %v", err)
	}
	if amount != 50 || content != "love the stream" {
		t.Errorf("got amount=%d content=%q", amount, content)
	}
	if _, _, err := svc.Resolve(ResolveInput{Kind: domain.KindTip, AmountCents: 0}); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("zero tip: err = %v, want ErrInvalidAmount", err)
	}
}

func TestResolveUnknownKind(t *testing.T) {
	_, _, err := newPricing(nil).Resolve(ResolveInput{Kind: "KARAOKE"})
	if !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("err = %v, want ErrUnknownKind", err)
	}
}

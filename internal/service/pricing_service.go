package service

import (
	"errors"
	"strconv"

	"darely/internal/domain"
	"darely/internal/models"
)

var (
	ErrUnknownKind    = errors.New("unknown interaction kind")
	ErrUnknownTier    = errors.New("unknown tier")
	ErrContentMissing = errors.New("content required for custom requests")
	ErrNoPrompts      = errors.New("no prompts available for tier")
)

// Setting keys for admin price overrides.
const (
	SettingTierPricePrefix = "pricing.tier." // + BRONZE/SILVER/GOLD
	SettingCustomMinimum   = "pricing.custom.minimum_cents"
)

// PromptSource picks a system prompt for a kind+tier.
type PromptSource interface {
	Random(kind, tier string) (*models.DarePrompt, error)
}

// SettingSource reads admin-configured overrides.
type SettingSource interface {
	Get(key string) (string, error)
}

// PricingService resolves (kind, tier, caller input) into the fixed amount
// and content a settlement will carry. Pure input resolution: it never
// writes anything.
type PricingService struct {
	prompts  PromptSource
	settings SettingSource
}

func NewPricingService(prompts PromptSource, settings SettingSource) *PricingService {
	return &PricingService{prompts: prompts, settings: settings}
}

// ResolveInput is what the fan submitted; amount and content are only read
// for custom requests and tips.
type ResolveInput struct {
	Kind        string
	Tier        string
	Content     string
	AmountCents int64
}

// Resolve returns the settled amount and content for the request.
func (s *PricingService) Resolve(in ResolveInput) (amountCents int64, content string, err error) {
	switch in.Kind {
	case domain.KindSystemTruth, domain.KindSystemDare:
		if !domain.ValidTier(in.Tier) {
			return 0, "", ErrUnknownTier
		}
		amount := s.tierPrice(in.Tier)
		p, err := s.prompts.Random(in.Kind, in.Tier)
		if err != nil || p == nil {
			return 0, "", ErrNoPrompts
		}
		return amount, p.Text, nil
	case domain.KindCustomTruth, domain.KindCustomDare:
		if in.Content == "" {
			return 0, "", ErrContentMissing
		}
		if in.AmountCents < s.customMinimum() {
			return 0, "", ErrInvalidAmount
		}
		return in.AmountCents, in.Content, nil
	case domain.KindTip:
		if in.AmountCents <= 0 {
			return 0, "", ErrInvalidAmount
		}
		return in.AmountCents, in.Content, nil
	default:
		return 0, "", ErrUnknownKind
	}
}

func (s *PricingService) tierPrice(tier string) int64 {
	if v, err := s.settings.Get(SettingTierPricePrefix + tier); err == nil {
		if cents, perr := strconv.ParseInt(v, 10, 64); perr == nil && cents > 0 {
			return cents
		}
	}
	return domain.DefaultTierPriceCents[tier]
}

func (s *PricingService) customMinimum() int64 {
	if v, err := s.settings.Get(SettingCustomMinimum); err == nil {
		if cents, perr := strconv.ParseInt(v, 10, 64); perr == nil && cents > 0 {
			return cents
		}
	}
	return domain.MinCustomAmountCents
}

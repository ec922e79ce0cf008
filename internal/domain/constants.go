package domain

const (
	RoleFan     = "FAN"
	RoleCreator = "CREATOR"
	RoleAdmin   = "ADMIN"
)

const (
	RoomStatusLive  = "LIVE"
	RoomStatusEnded = "ENDED"
)

const (
	KindSystemTruth = "SYSTEM_TRUTH"
	KindSystemDare  = "SYSTEM_DARE"
	KindCustomTruth = "CUSTOM_TRUTH"
	KindCustomDare  = "CUSTOM_DARE"
	KindTip         = "TIP"
)

const (
	RequestStatusPending   = "PENDING"
	RequestStatusActive    = "ACTIVE"
	RequestStatusCompleted = "COMPLETED"
	RequestStatusRejected  = "REJECTED"
)

const (
	TierBronze = "BRONZE"
	TierSilver = "SILVER"
	TierGold   = "GOLD"
)

const (
	TxTypeInteraction = "INTERACTION"
	TxTypeEarning     = "EARNING"
	TxTypeDeposit     = "DEPOSIT"
	TxTypeWithdrawal  = "WITHDRAWAL"
	TxTypeRefund      = "REFUND"
)

// Default tier prices in cents. Admin overrides live in system_settings
// under keys like pricing.tier.BRONZE.
var DefaultTierPriceCents = map[string]int64{
	TierBronze: 500,
	TierSilver: 1500,
	TierGold:   5000,
}

// MinCustomAmountCents is the floor for custom truth/dare requests.
const MinCustomAmountCents int64 = 200

func ValidKind(kind string) bool {
	switch kind {
	case KindSystemTruth, KindSystemDare, KindCustomTruth, KindCustomDare, KindTip:
		return true
	}
	return false
}

func ValidTier(tier string) bool {
	switch tier {
	case TierBronze, TierSilver, TierGold:
		return true
	}
	return false
}

// SystemKind reports whether the kind draws its prompt from the system pool.
func SystemKind(kind string) bool {
	return kind == KindSystemTruth || kind == KindSystemDare
}

package services

import (
	"math"
	"time"

	"launchboard_backend/internal/models"
	"launchboard_backend/internal/repositories"
	"launchboard_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// professionalBaseline is added to the live professional signup count.
// Inherited business adjustment; do not remove.
const professionalBaseline = 67

// assumedDailyRegistrations drives the estimated-days-to-next-tier figure.
// It is a fixed assumption, not a measured rate.
const assumedDailyRegistrations = 12.0

// defaultAmounts are the last-resort prices when no brackets exist for a
// (stakeholderType, currency) pair.
var defaultAmounts = map[models.StakeholderType]map[string]float64{
	models.StakeholderEcosystem:    {"INR": 999, "USD": 14.99},
	models.StakeholderProfessional: {"INR": 99, "USD": 1.49},
}

type PriceQuote struct {
	Amount      float64                 `json:"currentPrice"`
	Currency    string                  `json:"currency"`
	SignupCount int64                   `json:"signupCount"`
	Bracket     *models.PricingBracket  `json:"bracket"`
	AllBrackets []models.PricingBracket `json:"allBrackets"`
}

type TierStats struct {
	CurrentAmount      float64    `json:"currentAmount"`
	NextAmount         *float64   `json:"nextAmount,omitempty"`
	SpotsRemaining     *int       `json:"spotsRemaining,omitempty"`
	EstimatedDays      *int       `json:"estimatedDays,omitempty"`
	EstimatedTierDate  *time.Time `json:"estimatedTierDate,omitempty"`
}

type DynamicStats struct {
	StakeholderType models.StakeholderType `json:"stakeholderType"`
	SignupCount     int64                  `json:"signupCount"`
	ByCurrency      map[string]TierStats   `json:"byCurrency"`
}

type PricingService interface {
	GetCurrentPrice(db *gorm.DB, st models.StakeholderType, currency string) (*PriceQuote, error)
	GetDynamicStats(db *gorm.DB, st models.StakeholderType) (*DynamicStats, error)
}

type pricingService struct {
	userRepo    repositories.UserRepository
	pricingRepo repositories.PricingRepository
}

func NewPricingService(userRepo repositories.UserRepository, pricingRepo repositories.PricingRepository) PricingService {
	return &pricingService{userRepo: userRepo, pricingRepo: pricingRepo}
}

// signupCount returns the effective signup count for pricing purposes.
func (s *pricingService) signupCount(db *gorm.DB, st models.StakeholderType) (int64, error) {
	count, err := s.userRepo.CountByStakeholderType(db, st)
	if err != nil {
		return 0, err
	}
	if st == models.StakeholderProfessional {
		count += professionalBaseline
	}
	return count, nil
}

// GetCurrentPrice selects the bracket with the largest minSignups that is
// still <= signupCount+1. The +1 prices the NEXT registrant's position, not
// the current count; this look-ahead is intentional.
func (s *pricingService) GetCurrentPrice(db *gorm.DB, st models.StakeholderType, currency string) (*PriceQuote, error) {
	count, err := s.signupCount(db, st)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	brackets, err := s.pricingRepo.FindBrackets(db, st, currency)
	if err != nil {
		if apperrors.Is(err, repositories.ErrNoBrackets) {
			return &PriceQuote{
				Amount:      defaultAmounts[st][currency],
				Currency:    currency,
				SignupCount: count,
			}, nil
		}
		return nil, apperrors.InternalError(err)
	}

	quote := &PriceQuote{
		Currency:    currency,
		SignupCount: count,
		AllBrackets: brackets,
	}

	position := count + 1
	var selected *models.PricingBracket
	for i := range brackets {
		if int64(brackets[i].MinSignups) <= position {
			selected = &brackets[i]
		}
	}
	if selected == nil {
		// Below every bracket: fall back to the lowest one.
		selected = &brackets[0]
	}

	quote.Amount = selected.Amount
	quote.Bracket = selected
	return quote, nil
}

func (s *pricingService) GetDynamicStats(db *gorm.DB, st models.StakeholderType) (*DynamicStats, error) {
	count, err := s.signupCount(db, st)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	stats := &DynamicStats{
		StakeholderType: st,
		SignupCount:     count,
		ByCurrency:      make(map[string]TierStats),
	}

	for _, currency := range []string{"INR", "USD"} {
		quote, err := s.GetCurrentPrice(db, st, currency)
		if err != nil {
			return nil, err
		}

		tier := TierStats{CurrentAmount: quote.Amount}

		if quote.Bracket != nil {
			var next *models.PricingBracket
			for i := range quote.AllBrackets {
				if quote.AllBrackets[i].MinSignups > quote.Bracket.MinSignups {
					next = &quote.AllBrackets[i]
					break
				}
			}
			if next != nil {
				tier.NextAmount = &next.Amount
				spots := int(int64(next.MinSignups) - (count + 1))
				if spots < 0 {
					spots = 0
				}
				tier.SpotsRemaining = &spots

				days := int(math.Ceil(float64(spots) / assumedDailyRegistrations))
				tier.EstimatedDays = &days
				tierDate := time.Now().AddDate(0, 0, days)
				tier.EstimatedTierDate = &tierDate
			}
		}

		stats.ByCurrency[currency] = tier
	}

	return stats, nil
}

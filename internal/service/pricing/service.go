package pricing

import (
	"math"

	"github.com/parkhub/parkhub-booking/internal/domain"
)

// Tier labels, ordered by occupancy pressure
const (
	TierStandard = "Standard"
	TierModerate = "Moderate"
	TierPeak     = "Peak"
	TierPremium  = "Premium"
)

// Quote расчет цены для заданной загруженности и длительности
// Снимок Quote фиксируется в бронировании при создании и больше не пересчитывается
type Quote struct {
	BasePrice     float64 `json:"basePrice"`
	Multiplier    float64 `json:"multiplier"`
	HourlyRate    float64 `json:"hourlyRate"`
	Hours         float64 `json:"hours"`
	TotalPrice    float64 `json:"totalPrice"`
	OccupancyRate float64 `json:"occupancyRate"` // проценты, 0.0-100.0
	Tier          string  `json:"tier"`
	IsSurge       bool    `json:"isSurgePricing"`
}

// Service сервис динамического ценообразования
// Детерминированный и без состояния: все параметры задаются конструктором,
// никаких глобальных синглтонов
type Service struct {
	basePrice           float64
	minMultiplier       float64
	maxMultiplier       float64
	highDemandThreshold float64
}

// NewService создает сервис ценообразования с параметрами из конфига
// Нулевые значения заменяются дефолтами домена
func NewService(basePrice, minMultiplier, maxMultiplier, highDemandThreshold float64) *Service {
	if basePrice <= 0 {
		basePrice = domain.DefaultBaseHourlyRate
	}
	if minMultiplier <= 0 {
		minMultiplier = domain.DefaultMinMultiplier
	}
	if maxMultiplier <= 0 {
		maxMultiplier = domain.DefaultMaxMultiplier
	}
	if highDemandThreshold <= 0 || highDemandThreshold >= 1 {
		highDemandThreshold = domain.DefaultHighDemandThreshold
	}

	return &Service{
		basePrice:           basePrice,
		minMultiplier:       minMultiplier,
		maxMultiplier:       maxMultiplier,
		highDemandThreshold: highDemandThreshold,
	}
}

// Multiplier вычисляет ценовой множитель по текущей загруженности
// Ниже порога множитель минимальный, выше - линейно растет до максимума при 100%
func (s *Service) Multiplier(occupancyRate float64) float64 {
	if occupancyRate <= s.highDemandThreshold {
		return s.minMultiplier
	}

	excess := occupancyRate - s.highDemandThreshold
	rangeAbove := 1.0 - s.highDemandThreshold
	additional := (excess / rangeAbove) * (s.maxMultiplier - s.minMultiplier)

	multiplier := s.minMultiplier + additional

	return round2(math.Min(s.maxMultiplier, multiplier))
}

// Tier возвращает текстовую метку ценового уровня по загруженности
func (s *Service) Tier(occupancyRate float64) string {
	switch {
	case occupancyRate < 0.5:
		return TierStandard
	case occupancyRate < 0.7:
		return TierModerate
	case occupancyRate < 0.85:
		return TierPeak
	default:
		return TierPremium
	}
}

// Quote рассчитывает полную стоимость парковки на hours часов
// при текущей загруженности occupancyRate (0.0-1.0)
func (s *Service) Quote(occupancyRate, hours float64) *Quote {
	multiplier := s.Multiplier(occupancyRate)
	hourlyRate := round2(s.basePrice * multiplier)
	totalPrice := round2(hourlyRate * hours)

	return &Quote{
		BasePrice:     s.basePrice,
		Multiplier:    multiplier,
		HourlyRate:    hourlyRate,
		Hours:         hours,
		TotalPrice:    totalPrice,
		OccupancyRate: round1(occupancyRate * 100),
		Tier:          s.Tier(occupancyRate),
		IsSurge:       multiplier > s.minMultiplier,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

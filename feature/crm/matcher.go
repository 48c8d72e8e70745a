package crm

import (
	"context"
	"errors"
	"fmt"

	"catalog-sync/core/utils"

	"gorm.io/gorm"
)

// normalizedPhone strips the formatting characters customers usually type.
const normalizedPhone = "REPLACE(REPLACE(REPLACE(REPLACE(REPLACE(REPLACE(phone, ' ', ''), '-', ''), '+', ''), '(', ''), ')', ''), '.', '')"

// CustomerMatcher resolves a sender phone to a customer.
type CustomerMatcher interface {
	MatchCustomer(ctx context.Context, phone string) (*uint, error)
}

// PhoneMatcher matches customers by the trailing digits of their phone number.
type PhoneMatcher struct {
	db     *gorm.DB
	digits int
}

// NewPhoneMatcher creates a matcher comparing the last digits of each phone.
func NewPhoneMatcher(db *gorm.DB, digits int) *PhoneMatcher {
	if digits <= 0 {
		digits = 9
	}
	return &PhoneMatcher{db: db, digits: digits}
}

// MatchCustomer returns the lowest customer id whose phone ends with the same
// digits as phone, or nil when no customer matches.
func (m *PhoneMatcher) MatchCustomer(ctx context.Context, phone string) (*uint, error) {
	suffix := utils.PhoneSuffix(phone, m.digits)
	if suffix == "" {
		return nil, nil
	}

	var candidates []Customer
	err := m.db.WithContext(ctx).
		Select("id", "phone").
		Where(normalizedPhone+" LIKE ?", "%"+suffix).
		Order("id").
		Find(&candidates).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to match customer: %w", err)
	}

	// Formatting characters outside the SQL replace list are handled here.
	for _, c := range candidates {
		if utils.PhoneSuffix(c.Phone, m.digits) == suffix {
			id := c.ID
			return &id, nil
		}
	}
	return nil, nil
}

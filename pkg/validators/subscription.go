package validators

import (
	"errors"
	"slices"

	"github.com/Drwalbin/contacts-api/internal/model"
)

var (
	ErrSubscriptionEmpty   = errors.New("no subscription provided")
	ErrSubscriptionInvalid = errors.New("subscription must be one of starter, pro or business")
)

var validSubscriptions = []string{
	model.SubscriptionStarter,
	model.SubscriptionPro,
	model.SubscriptionBusiness,
}

func SubscriptionValidator(s string) error {
	if s == "" {
		return ErrSubscriptionEmpty
	}

	if !slices.Contains(validSubscriptions, s) {
		return ErrSubscriptionInvalid
	}

	return nil
}

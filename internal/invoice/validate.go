package invoice

import (
	"fmt"
	"regexp"
	"strings"
)

// Field length limits from the remote invoice schema.
const (
	maxItemNameLen        = 200
	maxItemDescriptionLen = 1000
	maxAddressLine1Len    = 300
	maxCityLen            = 120
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validate runs every check group over the draft and returns the full
// ordered list of violations: customer first, then items, then business.
// It never fails and never mutates the draft.
func Validate(d *Draft) ValidationResult {
	var errs []string
	errs = append(errs, validateCustomer(d.Customer)...)
	errs = append(errs, validateItems(d.Items)...)
	errs = append(errs, validateBusiness(d.Business)...)

	return ValidationResult{
		Valid:  len(errs) == 0,
		Errors: errs,
	}
}

func validateCustomer(customer Party) []string {
	var errs []string

	if customer.Email == "" {
		errs = append(errs, "customer email is required")
	} else if !emailPattern.MatchString(customer.Email) {
		errs = append(errs, fmt.Sprintf("customer email %q is not a valid email address", customer.Email))
	}

	if strings.TrimSpace(customer.GivenName) == "" {
		errs = append(errs, "customer given name is required")
	}
	if strings.TrimSpace(customer.Surname) == "" {
		errs = append(errs, "customer surname is required")
	}

	if customer.Address != nil {
		errs = append(errs, validateAddress(customer.Address, "customer")...)
	}

	return errs
}

func validateAddress(addr *Address, owner string) []string {
	var errs []string

	if len(addr.Line1) > maxAddressLine1Len {
		errs = append(errs, fmt.Sprintf("%s address line 1 exceeds %d characters", owner, maxAddressLine1Len))
	}
	if len(addr.City) > maxCityLen {
		errs = append(errs, fmt.Sprintf("%s city exceeds %d characters", owner, maxCityLen))
	}
	if addr.CountryCode != "" && !IsValidCountryCode(addr.CountryCode) {
		errs = append(errs, fmt.Sprintf("%s country code %q is not a valid ISO 3166-1 alpha-2 code", owner, addr.CountryCode))
	}

	return errs
}

func validateItems(items []LineItem) []string {
	if len(items) == 0 {
		return []string{"at least one line item is required"}
	}

	var errs []string
	for i, item := range items {
		n := i + 1

		if strings.TrimSpace(item.Name) == "" {
			errs = append(errs, fmt.Sprintf("item %d: name is required", n))
		} else if len(item.Name) > maxItemNameLen {
			errs = append(errs, fmt.Sprintf("item %d: name exceeds %d characters", n, maxItemNameLen))
		}

		if item.Quantity <= 0 {
			errs = append(errs, fmt.Sprintf("item %d: quantity must be greater than zero", n))
		}

		switch item.Kind {
		case ItemKindAdjustment:
			if item.UnitAmount >= 0 {
				errs = append(errs, fmt.Sprintf("item %d: adjustment amount must be negative", n))
			}
		default:
			if item.UnitAmount <= 0 {
				errs = append(errs, fmt.Sprintf("item %d: unit amount must be greater than zero", n))
			}
		}

		if item.Currency == "" {
			errs = append(errs, fmt.Sprintf("item %d: currency code is required", n))
		} else if !IsValidCurrencyCode(item.Currency) {
			errs = append(errs, fmt.Sprintf("item %d: currency code %q is not a valid ISO 4217 code", n, item.Currency))
		}

		if len(item.Description) > maxItemDescriptionLen {
			errs = append(errs, fmt.Sprintf("item %d: description exceeds %d characters", n, maxItemDescriptionLen))
		}
	}

	return errs
}

func validateBusiness(biz Party) []string {
	var errs []string

	if strings.TrimSpace(biz.BusinessName) == "" {
		errs = append(errs, "business name is required")
	}
	if biz.Email == "" {
		errs = append(errs, "business email is required")
	} else if !emailPattern.MatchString(biz.Email) {
		errs = append(errs, fmt.Sprintf("business email %q is not a valid email address", biz.Email))
	}

	return errs
}

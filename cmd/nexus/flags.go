package main

import (
	"time"

	domainerrors "nexus/internal/domain/errors"
	"nexus/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
)

// personFlags are the identity flags shared by client and proprietor commands.
type personFlags struct {
	taxID   string
	name    string
	email   string
	address usecase.AddressInput
}

func (f *personFlags) register(flags *pflag.FlagSet) {
	flags.StringVar(&f.taxID, "tax-id", "", "tax identifier (CPF/CNPJ)")
	flags.StringVar(&f.name, "name", "", "display name")
	flags.StringVar(&f.email, "email", "", "contact email")
	flags.StringVar(&f.address.Street, "street", "", "address street")
	flags.StringVar(&f.address.Neighborhood, "neighborhood", "", "address neighborhood")
	flags.StringVar(&f.address.City, "city", "", "address city")
	flags.StringVar(&f.address.Number, "number", "", "address number")
	flags.StringVar(&f.address.Complement, "complement", "", "address complement")
}

func parseMoney(flag, value string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, domainerrors.ErrValidationFailed.WithDetails("--" + flag + " must be a decimal amount, got " + value)
	}

	return amount, nil
}

// parseDate parses a YYYY-MM-DD flag. An empty value yields the zero time.
func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}

	date, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, domainerrors.ErrValidationFailed.WithDetails("--date must be YYYY-MM-DD, got " + value)
	}

	return date, nil
}

// parseMonth parses a YYYY-MM flag into a reporting period.
func parseMonth(value string) (usecase.Period, error) {
	month, err := time.Parse(monthLayout, value)
	if err != nil {
		return usecase.Period{}, domainerrors.ErrValidationFailed.WithDetails("--month must be YYYY-MM, got " + value)
	}

	return usecase.Period{Year: month.Year(), Month: month.Month()}, nil
}

package model

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	apperrors "github.com/yama6a/pathe-portal/internal/pkg/errors"
)

const (
	GenderUnset  Gender = 0
	GenderMale   Gender = 1
	GenderFemale Gender = 2

	CountryNetherlands   Country = "NL"
	CountryBelgium       Country = "BE"
	CountryGermany       Country = "DE"
	CountryLuxembourg    Country = "LU"
	CountryFrance        Country = "FR"
	CountryUnitedKingdom Country = "GB"
)

type (
	// Gender uses the numeric codes of the portal's Gender_<code> radio buttons.
	Gender  int
	Country string
)

//nolint:gochecknoglobals
var (
	AllGenders   = []Gender{GenderMale, GenderFemale}
	AllCountries = []Country{
		CountryNetherlands, CountryBelgium, CountryGermany,
		CountryLuxembourg, CountryFrance, CountryUnitedKingdom,
	}
)

func (g Gender) Valid() bool {
	return slices.Contains(AllGenders, g)
}

func (g Gender) String() string {
	switch g {
	case GenderMale:
		return "male"
	case GenderFemale:
		return "female"
	case GenderUnset:
		return "unset"
	}
	return "gender(" + strconv.Itoa(int(g)) + ")"
}

// ParseGenderCode parses a numeric gender code such as the "1" in "Gender_1".
func ParseGenderCode(code string) (Gender, error) {
	n, err := strconv.Atoi(strings.TrimSpace(code))
	if err != nil {
		return GenderUnset, fmt.Errorf("%w: %q", apperrors.ErrUnknownGender, code)
	}
	g := Gender(n)
	if !g.Valid() {
		return GenderUnset, fmt.Errorf("%w: %q", apperrors.ErrUnknownGender, code)
	}
	return g, nil
}

func (c Country) Valid() bool {
	return slices.Contains(AllCountries, c)
}

func ParseCountry(code string) (Country, error) {
	c := Country(strings.ToUpper(strings.TrimSpace(code)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", apperrors.ErrUnknownCountry, code)
	}
	return c, nil
}

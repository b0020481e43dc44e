package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	apperrors "github.com/yama6a/pathe-portal/internal/pkg/errors"
	"github.com/yama6a/pathe-portal/internal/pkg/model"
	"go.uber.org/zap"
)

// genderScriptRegex finds the radio button the page's script checks, e.g. getElementById('Gender_2').
var genderScriptRegex = regexp.MustCompile(`getElementById\(\s*['"]Gender_(\d+)['"]\s*\)`)

const (
	inputTypeCheckbox = "checkbox"
	inputTypeRadio    = "radio"
	attrChecked       = "checked"
	attrSelected      = "selected"
)

// ParsePersonalData reads the profile form of the personal data page. The gender radio buttons are
// checked by an inline script, so the gender is taken from the page's last script. Empty values
// leave their field unset. A page without a form yields an empty profile.
func (p *Parser) ParsePersonalData(html string) (model.PersonalData, error) {
	var pd model.PersonalData

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return pd, fmt.Errorf("failed parsing html: %w", err)
	}

	if m := genderScriptRegex.FindStringSubmatch(doc.Find("script").Last().Text()); m != nil {
		gender, err := model.ParseGenderCode(m[1])
		if err != nil {
			return pd, err //nolint:wrapcheck // already carries the offending code
		}
		if err := pd.SetGender(gender); err != nil {
			return pd, err //nolint:wrapcheck // already carries the offending code
		}
	}

	form := doc.Find("form").First()
	if form.Length() == 0 {
		p.logger.Debug("no personal data form found")
		return pd, nil
	}

	var fieldErr error
	form.Find("input").EachWithBreak(func(_ int, input *goquery.Selection) bool {
		name := input.AttrOr("name", "")
		value := strings.TrimSpace(input.AttrOr("value", ""))

		switch strings.ToLower(input.AttrOr("type", "")) {
		case inputTypeCheckbox:
			if name == model.FieldNewsletter {
				pd.SetNewsletter(input.AttrOr(attrChecked, "") == attrChecked)
			}
			return true
		case inputTypeRadio:
			if _, checked := input.Attr(attrChecked); !checked {
				return true
			}
		}

		fieldErr = p.setField(&pd, name, value)
		return fieldErr == nil
	})
	if fieldErr != nil {
		return pd, fieldErr
	}

	form.Find("select").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		fieldErr = p.setField(&pd, sel.AttrOr("name", ""), selectedOption(sel))
		return fieldErr == nil
	})

	return pd, fieldErr
}

// selectedOption returns the value of the option marked selected="selected", else of the first option.
func selectedOption(sel *goquery.Selection) string {
	options := sel.Find("option")
	option := options.FilterFunction(func(_ int, o *goquery.Selection) bool {
		return o.AttrOr(attrSelected, "") == attrSelected
	}).First()
	if option.Length() == 0 {
		option = options.First()
	}

	if value, ok := option.Attr("value"); ok {
		return strings.TrimSpace(value)
	}
	return strings.TrimSpace(option.Text())
}

//nolint:cyclop // one case per form field
func (p *Parser) setField(pd *model.PersonalData, name, value string) error {
	if value == "" {
		return nil
	}

	var err error
	switch name {
	case model.FieldUsername:
		err = pd.SetUsername(value)
	case model.FieldPassword:
		err = pd.SetPassword(value)
	case model.FieldEmail:
		err = pd.SetEmail(value)
	case model.FieldGender:
		var gender model.Gender
		if gender, err = model.ParseGenderCode(value); err == nil {
			err = pd.SetGender(gender)
		}
	case model.FieldFirstName:
		err = pd.SetFirstName(value)
	case model.FieldInsertion:
		err = pd.SetInsertion(value)
	case model.FieldLastName:
		err = pd.SetLastName(value)
	case model.FieldStreet:
		err = pd.SetStreet(value)
	case model.FieldHouseNumber:
		err = pd.SetHouseNumber(value)
	case model.FieldHouseNumberAddition:
		err = pd.SetHouseNumberAddition(value)
	case model.FieldPostalCode:
		err = pd.SetPostalCode(value)
	case model.FieldCity:
		err = pd.SetCity(value)
	case model.FieldCountry:
		var country model.Country
		if country, err = model.ParseCountry(value); err == nil {
			err = pd.SetCountry(country)
		}
	case model.FieldMobilePhone:
		err = pd.SetMobilePhone(value)
	case model.FieldBirthDay:
		err = setBirthPart(value, pd.SetBirthDay)
	case model.FieldBirthMonth:
		err = setBirthPart(value, pd.SetBirthMonth)
	case model.FieldBirthYear:
		err = setBirthPart(value, pd.SetBirthYear)
	default:
		return nil
	}

	if err != nil {
		p.logger.Warn("invalid personal data field", zap.String("field", name), zap.Error(err))
		return fmt.Errorf("field %s: %w", name, err)
	}
	return nil
}

func setBirthPart(value string, set func(int) error) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidBirthDate, value)
	}
	return set(n)
}

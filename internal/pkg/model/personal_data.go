package model

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	apperrors "github.com/yama6a/pathe-portal/internal/pkg/errors"
)

// Form field names used by the portal's personal data page.
const (
	FieldUsername            = "Username"
	FieldPassword            = "Password"
	FieldEmail               = "Email"
	FieldGender              = "Gender"
	FieldFirstName           = "FirstName"
	FieldInsertion           = "Insertion"
	FieldLastName            = "LastName"
	FieldStreet              = "Street"
	FieldHouseNumber         = "HouseNumber"
	FieldHouseNumberAddition = "HouseNumberAddition"
	FieldPostalCode          = "PostalCode"
	FieldCity                = "City"
	FieldCountry             = "Country"
	FieldMobilePhone         = "MobilePhone"
	FieldBirthDay            = "BirthDay"
	FieldBirthMonth          = "BirthMonth"
	FieldBirthYear           = "BirthYear"
	FieldNewsletter          = "Newsletter"

	maxNameLength     = 50
	minPasswordLength = 6
	maxPasswordLength = 40
	minBirthYear      = 1900
	maxBirthYear      = 2100
)

var (
	usernameRegex    = regexp.MustCompile(`^[A-Za-z0-9._@\-]{3,50}$`)
	emailRegex       = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[A-Za-z]{2,}$`)
	houseNumberRegex = regexp.MustCompile(`^\d{1,5}$`)
	additionRegex    = regexp.MustCompile(`^[A-Za-z0-9\- ]{0,6}$`)
	phoneRegex       = regexp.MustCompile(`^\+?[0-9][0-9 \-]{7,14}$`)
	// NL "1234 AB", BE/LU/DE/FR four or five digits, GB outward + inward code.
	postalCodeRegex = regexp.MustCompile(`^(\d{4} ?[A-Za-z]{2}|\d{4,5}|[A-Za-z0-9]{2,4} ?[A-Za-z0-9]{3})$`)
)

// PersonalData is the profile of a portal account. Every setter validates its input and
// leaves the field untouched when validation fails.
type PersonalData struct {
	username            string
	password            string
	email               string
	gender              Gender
	firstName           string
	insertion           string
	lastName            string
	street              string
	houseNumber         string
	houseNumberAddition string
	postalCode          string
	city                string
	country             Country
	mobilePhone         string
	birthDay            int
	birthMonth          int
	birthYear           int
	newsletter          bool
}

func (p *PersonalData) Username() string            { return p.username }
func (p *PersonalData) Password() string            { return p.password }
func (p *PersonalData) Email() string               { return p.email }
func (p *PersonalData) Gender() Gender              { return p.gender }
func (p *PersonalData) FirstName() string           { return p.firstName }
func (p *PersonalData) Insertion() string           { return p.insertion }
func (p *PersonalData) LastName() string            { return p.lastName }
func (p *PersonalData) Street() string              { return p.street }
func (p *PersonalData) HouseNumber() string         { return p.houseNumber }
func (p *PersonalData) HouseNumberAddition() string { return p.houseNumberAddition }
func (p *PersonalData) PostalCode() string          { return p.postalCode }
func (p *PersonalData) City() string                { return p.city }
func (p *PersonalData) Country() Country            { return p.country }
func (p *PersonalData) MobilePhone() string         { return p.mobilePhone }
func (p *PersonalData) BirthDay() int               { return p.birthDay }
func (p *PersonalData) BirthMonth() int             { return p.birthMonth }
func (p *PersonalData) BirthYear() int              { return p.birthYear }
func (p *PersonalData) Newsletter() bool            { return p.newsletter }

func (p *PersonalData) SetUsername(username string) error {
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidUsername, username)
	}
	if p.password != "" && strings.EqualFold(p.password, username) {
		return fmt.Errorf("%w: username must differ from password", apperrors.ErrInvalidUsername)
	}
	p.username = username
	return nil
}

func (p *PersonalData) SetPassword(password string) error {
	n := utf8.RuneCountInString(password)
	switch {
	case n < minPasswordLength || n > maxPasswordLength:
		return fmt.Errorf("%w: length must be between %d and %d", apperrors.ErrInvalidPassword, minPasswordLength, maxPasswordLength)
	case p.username != "" && strings.EqualFold(password, p.username):
		return fmt.Errorf("%w: password must differ from username", apperrors.ErrInvalidPassword)
	case p.email != "" && strings.EqualFold(password, p.email):
		return fmt.Errorf("%w: password must differ from email", apperrors.ErrInvalidPassword)
	}
	p.password = password
	return nil
}

func (p *PersonalData) SetEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidEmail, email)
	}
	if p.password != "" && strings.EqualFold(p.password, email) {
		return fmt.Errorf("%w: email must differ from password", apperrors.ErrInvalidEmail)
	}
	p.email = email
	return nil
}

func (p *PersonalData) SetGender(g Gender) error {
	if !g.Valid() {
		return fmt.Errorf("%w: %d", apperrors.ErrUnknownGender, g)
	}
	p.gender = g
	return nil
}

func (p *PersonalData) SetFirstName(name string) error {
	return setName(&p.firstName, name)
}

func (p *PersonalData) SetInsertion(insertion string) error {
	return setName(&p.insertion, insertion)
}

func (p *PersonalData) SetLastName(name string) error {
	return setName(&p.lastName, name)
}

func (p *PersonalData) SetStreet(street string) error {
	return setName(&p.street, street)
}

func (p *PersonalData) SetCity(city string) error {
	return setName(&p.city, city)
}

func setName(field *string, value string) error {
	if utf8.RuneCountInString(value) > maxNameLength || strings.ContainsAny(value, "<>") {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidName, value)
	}
	*field = value
	return nil
}

func (p *PersonalData) SetHouseNumber(number string) error {
	if !houseNumberRegex.MatchString(number) {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidHouseNumber, number)
	}
	p.houseNumber = number
	return nil
}

func (p *PersonalData) SetHouseNumberAddition(addition string) error {
	if !additionRegex.MatchString(addition) {
		return fmt.Errorf("%w: addition %q", apperrors.ErrInvalidHouseNumber, addition)
	}
	p.houseNumberAddition = addition
	return nil
}

func (p *PersonalData) SetPostalCode(code string) error {
	if !postalCodeRegex.MatchString(code) {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidPostalCode, code)
	}
	p.postalCode = strings.ToUpper(code)
	return nil
}

func (p *PersonalData) SetCountry(c Country) error {
	if !c.Valid() {
		return fmt.Errorf("%w: %q", apperrors.ErrUnknownCountry, c)
	}
	p.country = c
	return nil
}

func (p *PersonalData) SetMobilePhone(phone string) error {
	if !phoneRegex.MatchString(phone) {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidPhoneNumber, phone)
	}
	p.mobilePhone = phone
	return nil
}

func (p *PersonalData) SetNewsletter(subscribed bool) {
	p.newsletter = subscribed
}

func (p *PersonalData) SetBirthDay(day int) error {
	if day < 1 || day > 31 {
		return fmt.Errorf("%w: day %d", apperrors.ErrInvalidBirthDate, day)
	}
	return p.setBirthDate(day, p.birthMonth, p.birthYear)
}

func (p *PersonalData) SetBirthMonth(month int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: month %d", apperrors.ErrInvalidBirthDate, month)
	}
	return p.setBirthDate(p.birthDay, month, p.birthYear)
}

func (p *PersonalData) SetBirthYear(year int) error {
	if year < minBirthYear || year > maxBirthYear {
		return fmt.Errorf("%w: year %d", apperrors.ErrInvalidBirthDate, year)
	}
	return p.setBirthDate(p.birthDay, p.birthMonth, year)
}

// SetBirthDate replaces all three parts at once, so a date can move to one that is only valid
// with every part changed, e.g. from 31-01-2000 to 28-02-2000.
func (p *PersonalData) SetBirthDate(day, month, year int) error {
	switch {
	case day < 1 || day > 31:
		return fmt.Errorf("%w: day %d", apperrors.ErrInvalidBirthDate, day)
	case month < 1 || month > 12:
		return fmt.Errorf("%w: month %d", apperrors.ErrInvalidBirthDate, month)
	case year < minBirthYear || year > maxBirthYear:
		return fmt.Errorf("%w: year %d", apperrors.ErrInvalidBirthDate, year)
	}
	return p.setBirthDate(day, month, year)
}

// setBirthDate stores the parts; once all three are known they must form a real date.
func (p *PersonalData) setBirthDate(day, month, year int) error {
	if day != 0 && month != 0 && year != 0 {
		date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		if date.Day() != day || int(date.Month()) != month {
			return fmt.Errorf("%w: %02d-%02d-%04d", apperrors.ErrInvalidBirthDate, day, month, year)
		}
	}
	p.birthDay, p.birthMonth, p.birthYear = day, month, year
	return nil
}

// BirthDate returns the composed birth date; false while any part is unset.
func (p *PersonalData) BirthDate() (time.Time, bool) {
	if p.birthDay == 0 || p.birthMonth == 0 || p.birthYear == 0 {
		return time.Time{}, false
	}
	return time.Date(p.birthYear, time.Month(p.birthMonth), p.birthDay, 0, 0, 0, 0, time.UTC), true
}

// FormValues renders the profile as the portal's update form expects it. Unset fields are omitted.
func (p *PersonalData) FormValues() url.Values {
	values := url.Values{}
	set := func(key, value string) {
		if value != "" {
			values.Set(key, value)
		}
	}

	set(FieldUsername, p.username)
	set(FieldPassword, p.password)
	set(FieldEmail, p.email)
	if p.gender != GenderUnset {
		set(FieldGender, strconv.Itoa(int(p.gender)))
	}
	set(FieldFirstName, p.firstName)
	set(FieldInsertion, p.insertion)
	set(FieldLastName, p.lastName)
	set(FieldStreet, p.street)
	set(FieldHouseNumber, p.houseNumber)
	set(FieldHouseNumberAddition, p.houseNumberAddition)
	set(FieldPostalCode, p.postalCode)
	set(FieldCity, p.city)
	set(FieldCountry, string(p.country))
	set(FieldMobilePhone, p.mobilePhone)
	if p.birthDay != 0 {
		set(FieldBirthDay, strconv.Itoa(p.birthDay))
	}
	if p.birthMonth != 0 {
		set(FieldBirthMonth, strconv.Itoa(p.birthMonth))
	}
	if p.birthYear != 0 {
		set(FieldBirthYear, strconv.Itoa(p.birthYear))
	}
	if p.newsletter {
		set(FieldNewsletter, "on")
	}

	return values
}

package errors

import (
	"errors"
)

var (
	ErrInvalidTicketCount       = errors.New("invalid ticket count")
	ErrUnknownReservationStatus = errors.New("unknown reservation status")
	ErrUnknownGender            = errors.New("unknown gender")
	ErrUnknownCountry           = errors.New("unknown country")
	ErrInvalidName              = errors.New("invalid name")
	ErrInvalidEmail             = errors.New("invalid email address")
	ErrInvalidPassword          = errors.New("invalid password")
	ErrInvalidUsername          = errors.New("invalid username")
	ErrInvalidPostalCode        = errors.New("invalid postal code")
	ErrInvalidHouseNumber       = errors.New("invalid house number")
	ErrInvalidPhoneNumber       = errors.New("invalid phone number")
	ErrInvalidBirthDate         = errors.New("invalid birth date")
	ErrInvalidCardNumber        = errors.New("invalid card number")

	ErrLoginFailed      = errors.New("login failed")
	ErrNotLoggedIn      = errors.New("not logged in")
	ErrUnexpectedStatus = errors.New("unexpected http status")
	ErrAPIStatus        = errors.New("api responded with error status")
)

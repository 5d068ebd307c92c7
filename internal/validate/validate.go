// Package validate checks the shape of request payloads before any
// persistence call. All checks are pure functions of their input; the
// first constraint violated wins and is returned as a single
// human-readable error.
package validate

import (
	"errors"
	"regexp"
	"unicode/utf8"
)

// Field limits.
const (
	MinUsernameLength = 3
	MinEmailLength    = 6
	MinPasswordLength = 6
	MaxTitleLength    = 70
)

// Error is a constraint violation. The message text is what API
// clients see.
type Error struct {
	msg string
}

func (e *Error) Error() string {
	return e.msg
}

func newError(msg string) *Error {
	return &Error{msg: msg}
}

// IsError reports whether err is a validation error from this package.
func IsError(err error) bool {
	var vErr *Error
	return errors.As(err, &vErr)
}

// Validation errors.
var (
	ErrUsernameRequired = newError("username is required")
	ErrUsernameTooShort = newError("username must be at least 3 characters")
	ErrEmailRequired    = newError("email is required")
	ErrEmailTooShort    = newError("email must be at least 6 characters")
	ErrEmailInvalid     = newError("email must be a valid email address")
	ErrPasswordRequired = newError("password is required")
	ErrPasswordTooShort = newError("password must be at least 6 characters")
	ErrTitleRequired    = newError("title is required")
	ErrTitleTooLong     = newError("title must be at most 70 characters")
	ErrContentRequired  = newError("content is required")
	ErrImageURLRequired = newError("imageURL is required")
	ErrNoFields         = newError("at least one field must be provided")
)

// emailPattern matches a standard email grammar: local part, "@", domain
// with at least one dot. Deliberately loose; the address is never used
// for delivery by this system.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Registration validates a registration payload. All fields are required.
func Registration(username, email, password string) error {
	if err := checkUsername(username); err != nil {
		return err
	}
	if err := checkEmail(email); err != nil {
		return err
	}
	return checkPassword(password)
}

// Login validates a login payload. Only email and password are checked.
func Login(email, password string) error {
	if err := checkEmail(email); err != nil {
		return err
	}
	return checkPassword(password)
}

// UserUpdate validates a partial update. Only supplied (non-nil) fields
// are checked, each against its registration rule. Supplying no fields
// at all is an error.
func UserUpdate(username, email, password *string) error {
	if username == nil && email == nil && password == nil {
		return ErrNoFields
	}
	if username != nil {
		if err := checkUsername(*username); err != nil {
			return err
		}
	}
	if email != nil {
		if err := checkEmail(*email); err != nil {
			return err
		}
	}
	if password != nil {
		if err := checkPassword(*password); err != nil {
			return err
		}
	}
	return nil
}

// Post validates a post-creation payload. All fields are required.
func Post(title, content, imageURL string) error {
	if title == "" {
		return ErrTitleRequired
	}
	// Length limits count characters, not bytes, to match the
	// char_length database constraint.
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	if content == "" {
		return ErrContentRequired
	}
	if imageURL == "" {
		return ErrImageURLRequired
	}
	return nil
}

func checkUsername(username string) error {
	if username == "" {
		return ErrUsernameRequired
	}
	if utf8.RuneCountInString(username) < MinUsernameLength {
		return ErrUsernameTooShort
	}
	return nil
}

func checkEmail(email string) error {
	if email == "" {
		return ErrEmailRequired
	}
	if utf8.RuneCountInString(email) < MinEmailLength {
		return ErrEmailTooShort
	}
	if !emailPattern.MatchString(email) {
		return ErrEmailInvalid
	}
	return nil
}

func checkPassword(password string) error {
	if password == "" {
		return ErrPasswordRequired
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

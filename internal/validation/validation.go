// Package validation checks post and contact form input. The functions are
// pure: they trim the fields and report every rule that was
// violated, in field order.
package validation

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	MaxUsernameLen = 50
	MinShayriLen   = 10
	MaxShayriLen   = 500
	MaxNameLen     = 100
	MaxMessageLen  = 1000
)

const (
	MsgUsernameRequired = "Username is required"
	MsgUsernameTooLong  = "Username must be less than 50 characters"
	MsgShayriRequired   = "Quote/Shayri is required"
	MsgShayriTooShort   = "Quote/Shayri must be at least 10 characters long"
	MsgShayriTooLong    = "Quote/Shayri must be less than 500 characters"
	MsgNameRequired     = "Name is required"
	MsgNameTooLong      = "Name must be less than 100 characters"
	MsgEmailRequired    = "Email is required"
	MsgEmailInvalid     = "Invalid email format"
	MsgMessageRequired  = "Message is required"
	MsgMessageTooLong   = "Message must be less than 1000 characters"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Result is the outcome of validating one form. Data holds the trimmed
// fields whether or not the input was valid.
type Result[T any] struct {
	Valid  bool
	Errors []string
	Data   T
}

type PostInput struct {
	Username string
	Shayri   string
}

type ContactInput struct {
	Name    string
	Email   string
	Message string
}

// Clean trims surrounding white space, including a byte order mark. The
// text in between is kept exactly as submitted.
func Clean(s string) string {
	return strings.TrimFunc(s, isTrimmed)
}

func isTrimmed(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// Len counts code points.
func Len(s string) int {
	return utf8.RuneCountInString(s)
}

func ValidatePost(username, shayri string) Result[PostInput] {
	data := PostInput{Username: Clean(username), Shayri: Clean(shayri)}
	var errs []string

	switch n := Len(data.Username); {
	case n == 0:
		errs = append(errs, MsgUsernameRequired)
	case n > MaxUsernameLen:
		errs = append(errs, MsgUsernameTooLong)
	}

	errs = append(errs, shayriErrors(data.Shayri)...)

	return Result[PostInput]{Valid: len(errs) == 0, Errors: errs, Data: data}
}

// ValidatePostEdit validates the body of an existing post. The username is
// not editable, so only the shayri rules apply.
func ValidatePostEdit(shayri string) Result[string] {
	res := ValidatePost("", shayri)
	errs := make([]string, 0, len(res.Errors))
	for _, e := range res.Errors {
		if e == MsgUsernameRequired || e == MsgUsernameTooLong {
			continue
		}
		errs = append(errs, e)
	}
	if len(errs) == 0 {
		errs = nil
	}
	return Result[string]{Valid: len(errs) == 0, Errors: errs, Data: res.Data.Shayri}
}

func shayriErrors(shayri string) []string {
	switch n := Len(shayri); {
	case n == 0:
		return []string{MsgShayriRequired}
	case n < MinShayriLen:
		return []string{MsgShayriTooShort}
	case n > MaxShayriLen:
		return []string{MsgShayriTooLong}
	}
	return nil
}

func ValidateContact(name, email, message string) Result[ContactInput] {
	data := ContactInput{Name: Clean(name), Email: Clean(email), Message: Clean(message)}
	var errs []string

	switch n := Len(data.Name); {
	case n == 0:
		errs = append(errs, MsgNameRequired)
	case n > MaxNameLen:
		errs = append(errs, MsgNameTooLong)
	}

	switch {
	case data.Email == "":
		errs = append(errs, MsgEmailRequired)
	case !emailPattern.MatchString(data.Email):
		errs = append(errs, MsgEmailInvalid)
	}

	switch n := Len(data.Message); {
	case n == 0:
		errs = append(errs, MsgMessageRequired)
	case n > MaxMessageLen:
		errs = append(errs, MsgMessageTooLong)
	}

	return Result[ContactInput]{Valid: len(errs) == 0, Errors: errs, Data: data}
}

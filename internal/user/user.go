package user

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/wichananm65/basket-api/internal/apperror"
)

var ErrNotFound = apperror.ResourceNotFound("User not found")

// emailPattern is the WHATWG "valid e-mail address" production.
var emailPattern = regexp.MustCompile(
	"^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)+$",
)

type User struct {
	ID        int
	Email     string
	FirstName string
	LastName  string
}

// Input is the payload accepted by create and upsert. All fields are replaced
// on update.
type Input struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// maxLength is the size of the VARCHAR columns, in characters.
const maxLength = 255

// Validate returns an *apperror.ValidationError listing every invalid field.
func (in Input) Validate() error {
	ve := &apperror.ValidationError{}
	switch {
	case strings.TrimSpace(in.Email) == "":
		ve.Add("email", "must not be blank")
	case tooLong(in.Email):
		ve.Add("email", tooLongMessage)
	case !emailPattern.MatchString(in.Email):
		ve.Add("email", "must be a valid email address")
	}
	checkName(ve, "firstName", in.FirstName)
	checkName(ve, "lastName", in.LastName)
	return ve.OrNil()
}

var tooLongMessage = fmt.Sprintf("must be at most %d characters", maxLength)

func checkName(ve *apperror.ValidationError, field, value string) {
	switch {
	case strings.TrimSpace(value) == "":
		ve.Add(field, "must not be blank")
	case tooLong(value):
		ve.Add(field, tooLongMessage)
	}
}

func tooLong(s string) bool {
	return utf8.RuneCountInString(s) > maxLength
}

type response struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func toResponse(u User) response {
	return response{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

func toResponseList(users []User) []response {
	out := make([]response, 0, len(users))
	for _, u := range users {
		out = append(out, toResponse(u))
	}
	return out
}

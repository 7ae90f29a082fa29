package validation

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestValidatePost(t *testing.T) {
	tests := []struct {
		name     string
		username string
		shayri   string
		want     []string
	}{
		{
			name:     "valid",
			username: "Sahib",
			shayri:   "Keep going, never give up today",
		},
		{
			name:     "blank username and short shayri",
			username: "",
			shayri:   "short",
			want:     []string{MsgUsernameRequired, MsgShayriTooShort},
		},
		{
			name:     "whitespace only",
			username: "   ",
			shayri:   "\t\n",
			want:     []string{MsgUsernameRequired, MsgShayriRequired},
		},
		{
			name:     "username too long",
			username: strings.Repeat("u", 51),
			shayri:   "A perfectly fine quote",
			want:     []string{MsgUsernameTooLong},
		},
		{
			name:     "username at limit after trim",
			username: "  " + strings.Repeat("u", 50) + "  ",
			shayri:   "A perfectly fine quote",
		},
		{
			name:     "shayri too long",
			username: "Adit",
			shayri:   strings.Repeat("s", 501),
			want:     []string{MsgShayriTooLong},
		},
		{
			name:     "byte order mark is blank",
			username: "\uFEFF",
			shayri:   " \uFEFF\uFEFF ",
			want:     []string{MsgUsernameRequired, MsgShayriRequired},
		},
		{
			name:     "nukta letters are stored as submitted",
			username: "Adit",
			shayri:   strings.Repeat("\u0958", 300),
		},
		{
			name:     "shayri bounds",
			username: "Adit",
			shayri:   strings.Repeat("s", 10),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidatePost(tt.username, tt.shayri)

			assert.Equal(t, len(tt.want) == 0, res.Valid)
			assert.Equal(t, tt.want, res.Errors)
			assert.Equal(t, strings.Trim(tt.username, " \t\n\uFEFF"), res.Data.Username)
			assert.Equal(t, strings.Trim(tt.shayri, " \t\n\uFEFF"), res.Data.Shayri)
		})
	}
}

func TestValidatePostCountsCodePoints(t *testing.T) {
	// Ten Devanagari letters are more than ten bytes but exactly ten characters.
	shayri := strings.Repeat("क", 10)
	assert.True(t, ValidatePost("Ansh", shayri).Valid)

	// A decomposed "é" is two code points and is not recomposed.
	decomposed := strings.Repeat("e\u0301", 5)
	res := ValidatePost("Ansh", decomposed)
	assert.True(t, res.Valid)
	assert.Equal(t, decomposed, res.Data.Shayri)

	// U+0958 is a composition exclusion; it must not be split in two.
	nukta := strings.Repeat("\u0958", 300)
	res = ValidatePost("Ansh", nukta)
	assert.True(t, res.Valid)
	assert.Equal(t, []byte(nukta), []byte(res.Data.Shayri))
	assert.Equal(t, 300, Len(res.Data.Shayri))
}

func TestValidatePostEdit(t *testing.T) {
	res := ValidatePostEdit("tiny")
	assert.False(t, res.Valid)
	assert.Equal(t, []string{MsgShayriTooShort}, res.Errors)

	res = ValidatePostEdit("  This is a sufficiently long updated quote text ")
	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)
	assert.Equal(t, "This is a sufficiently long updated quote text", res.Data)
}

func TestValidateContact(t *testing.T) {
	tests := []struct {
		name    string
		cname   string
		email   string
		message string
		want    []string
	}{
		{
			name:    "valid",
			cname:   "Jo",
			email:   "jo@example.com",
			message: "hello",
		},
		{
			name:    "bad email only",
			cname:   "Jo",
			email:   "not-an-email",
			message: "hello",
			want:    []string{MsgEmailInvalid},
		},
		{
			name: "everything missing",
			want: []string{MsgNameRequired, MsgEmailRequired, MsgMessageRequired},
		},
		{
			name:    "limits exceeded",
			cname:   strings.Repeat("n", 101),
			email:   "a b@c.d",
			message: strings.Repeat("m", 1001),
			want:    []string{MsgNameTooLong, MsgEmailInvalid, MsgMessageTooLong},
		},
		{
			name:    "email trimmed before match",
			cname:   "Jo",
			email:   "  jo@example.org ",
			message: "hello",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateContact(tt.cname, tt.email, tt.message)
			assert.Equal(t, len(tt.want) == 0, res.Valid)
			assert.Equal(t, tt.want, res.Errors)
			assert.Equal(t, strings.TrimSpace(tt.email), res.Data.Email)
		})
	}
}

func TestEmailPattern(t *testing.T) {
	valid := []string{"a@b.c", "first.last@sub.example.co", "x+y@z.io"}
	invalid := []string{"", "a@b", "@b.c", "a@.c", "a@@b.c", "a b@c.d", "a@b.", "ab.c"}

	for _, e := range valid {
		assert.True(t, emailPattern.MatchString(e), e)
	}
	for _, e := range invalid {
		assert.False(t, emailPattern.MatchString(e), e)
	}
}

func TestShayriLengthProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("lengths in [10,500] are accepted", prop.ForAll(
		func(n int, pad int) bool {
			ws := strings.Repeat(" ", pad)
			res := ValidatePost("Sahib", ws+strings.Repeat("q", n)+ws)
			return res.Valid && Len(res.Data.Shayri) == n
		},
		gen.IntRange(MinShayriLen, MaxShayriLen),
		gen.IntRange(0, 5),
	))

	properties.Property("short bodies name the minimum", prop.ForAll(
		func(n int) bool {
			res := ValidatePostEdit(strings.Repeat("q", n))
			return !res.Valid && len(res.Errors) == 1 && res.Errors[0] == MsgShayriTooShort
		},
		gen.IntRange(1, MinShayriLen-1),
	))

	properties.Property("long bodies name the maximum", prop.ForAll(
		func(n int) bool {
			res := ValidatePostEdit(strings.Repeat("q", n))
			return !res.Valid && len(res.Errors) == 1 && res.Errors[0] == MsgShayriTooLong
		},
		gen.IntRange(MaxShayriLen+1, MaxShayriLen+300),
	))

	properties.Property("usernames up to 50 are accepted", prop.ForAll(
		func(n int) bool {
			return ValidatePost(strings.Repeat("u", n), "Ten chars!").Valid
		},
		gen.IntRange(1, MaxUsernameLen),
	))

	properties.TestingRun(t)
}

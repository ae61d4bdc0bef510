package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateMissingRequiredFieldReportsOnlyThatField(t *testing.T) {
	s := Schema{Fields: []Field{
		{Name: "name", Type: TypeString, Required: true, MinLen: 1, MaxLen: 100},
		{Name: "email", Type: TypeString, Required: true, Email: true},
	}}

	_, vErr := s.Validate(map[string]any{"email": "user@domain.tld"})
	require.NotNil(t, vErr)
	require.Len(t, vErr.Fields, 1)
	assert.Equal(t, "name", vErr.Fields[0].Field)
}

func TestValidateAggregatesAllFailures(t *testing.T) {
	s := Schema{Fields: []Field{
		{Name: "name", Type: TypeString, Required: true, MinLen: 1},
		{Name: "email", Type: TypeString, Required: true, Email: true},
		{Name: "message", Type: TypeString, Required: true, MinLen: 10},
	}}

	_, vErr := s.Validate(map[string]any{
		"email":   "not-an-email",
		"message": "too short",
	})
	require.NotNil(t, vErr)
	fields := vErr.FieldMap()
	assert.Len(t, fields, 3)
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "message")
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"user@domain.tld", true},
		{"first.last@sub.domain.io", true},
		{"userdomain.tld", false},
		{"user@domaintld", false},
		{"user@@domain.tld", false},
		{"@domain.tld", false},
		{"user@", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidEmail(tt.email))
		})
	}
}

func TestValidateStringBounds(t *testing.T) {
	s := Schema{Fields: []Field{
		{Name: "message", Type: TypeString, Required: true, MinLen: 10, MaxLen: 5000},
	}}

	_, vErr := s.Validate(map[string]any{"message": "123456789"})
	require.NotNil(t, vErr)
	assert.Equal(t, "message", vErr.Fields[0].Field)

	normalized, vErr := s.Validate(map[string]any{"message": "1234567890"})
	require.Nil(t, vErr)
	assert.Equal(t, "1234567890", normalized["message"])
}

func TestValidateNormalizesAndDropsUndeclaredFields(t *testing.T) {
	s := Schema{Fields: []Field{
		{Name: "name", Type: TypeString, Required: true},
		{Name: "count", Type: TypeInt},
	}}

	normalized, vErr := s.Validate(map[string]any{
		"name":       "  Ada  ",
		"count":      float64(3), // JSON numbers decode as float64
		"undeclared": "dropped",
	})
	require.Nil(t, vErr)
	assert.Equal(t, "Ada", normalized["name"])
	assert.Equal(t, 3, normalized["count"])
	assert.NotContains(t, normalized, "undeclared")
}

func TestValidateTypeMismatches(t *testing.T) {
	s := Schema{Fields: []Field{
		{Name: "draft", Type: TypeBool},
		{Name: "tags", Type: TypeStringList},
		{Name: "count", Type: TypeInt},
	}}

	_, vErr := s.Validate(map[string]any{
		"draft": "yes",
		"tags":  []any{"go", 7},
		"count": 1.5,
	})
	require.NotNil(t, vErr)
	assert.Len(t, vErr.Fields, 3)
}

func TestValidateOptionalFieldsAbsent(t *testing.T) {
	s := Schema{Fields: []Field{
		{Name: "title", Type: TypeString, Required: true},
		{Name: "summary", Type: TypeString},
	}}

	normalized, vErr := s.Validate(map[string]any{"title": "Hello"})
	require.Nil(t, vErr)
	assert.NotContains(t, normalized, "summary")
}

func TestValidURL(t *testing.T) {
	assert.True(t, ValidURL("https://github.com/user/repo"))
	assert.True(t, ValidURL("http://example.com"))
	assert.False(t, ValidURL("ftp://example.com"))
	assert.False(t, ValidURL("not a url"))
	assert.False(t, ValidURL("/relative/path"))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-03-14")
	require.NoError(t, err)
	assert.Equal(t, 2025, d.Year())

	_, err = ParseDate("14/03/2025")
	assert.Error(t, err)
}

package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractMessage_FallbackChain(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "plain string body",
			body: `upstream exploded`,
			want: "upstream exploded",
		},
		{
			name: "json string body",
			body: `"quota exceeded"`,
			want: "quota exceeded",
		},
		{
			name: "error field",
			body: `{"error": "File must be a CSV file"}`,
			want: "File must be a CSV file",
		},
		{
			name: "details list joined",
			body: `{"details": ["row 3: bad date", "row 7: bad amount"]}`,
			want: "row 3: bad date, row 7: bad amount",
		},
		{
			name: "details string",
			body: `{"details": "malformed header"}`,
			want: "malformed header",
		},
		{
			name: "message field",
			body: `{"message": "No new transactions imported."}`,
			want: "No new transactions imported.",
		},
		{
			name: "non_field_errors list",
			body: `{"non_field_errors": ["Unable to log in with provided credentials."]}`,
			want: "Unable to log in with provided credentials.",
		},
		{
			name: "error wins over message",
			body: `{"message": "second", "error": "first"}`,
			want: "first",
		},
		{
			name: "first field fallback with list value",
			body: `{"email": ["This field is required."]}`,
			want: "email: This field is required.",
		},
		{
			name: "first field fallback with string value",
			body: `{"password": "too short"}`,
			want: "password: too short",
		},
		{
			name: "first field in document order",
			body: `{"zeta": "z first", "alpha": "a second"}`,
			want: "zeta: z first",
		},
		{
			name: "empty body",
			body: ``,
			want: "request failed",
		},
		{
			name: "empty object",
			body: `{}`,
			want: "request failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractMessage([]byte(tt.body)))
		})
	}
}

package validators

import (
	"strings"
	"testing"

	"github.com/facegram/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestValidateCreateAccountRequest(t *testing.T) {
	v := NewValidator()

	valid := models.CreateAccountRequest{
		Fullname: "Alice Example",
		Email:    "alice@example.com",
		Username: "alice01",
		Password: "secret1",
	}
	assert.NoError(t, v.Validate(&valid))

	cases := map[string]models.CreateAccountRequest{
		"short username": {Fullname: "A", Email: "a@example.com", Username: "ab", Password: "secret1"},
		"long username":  {Fullname: "A", Email: "a@example.com", Username: strings.Repeat("a", 16), Password: "secret1"},
		"non-alnum":      {Fullname: "A", Email: "a@example.com", Username: "al_ice", Password: "secret1"},
		"bad email":      {Fullname: "A", Email: "not-an-email", Username: "alice01", Password: "secret1"},
		"short password": {Fullname: "A", Email: "a@example.com", Username: "alice01", Password: "12345"},
	}
	for name, req := range cases {
		assert.Error(t, v.Validate(&req), name)
	}
}

func TestValidateCreatePostRequest(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(&models.CreatePostRequest{Caption: "a day at the beach"}))
	assert.Error(t, v.Validate(&models.CreatePostRequest{Caption: ""}), "empty caption")
	assert.Error(t, v.Validate(&models.CreatePostRequest{Caption: strings.Repeat("x", 256)}), "caption too long")
}

package validators

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/nanomedia/social-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(models.PostRequest{Title: "t", Text: "long enough text"}))

	err := v.Validate(models.PostRequest{Title: "t", Text: "short"})
	require.Error(t, err)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)

	assert.Error(t, v.Validate(models.RegisterRequest{Login: "al", Email: "not-an-email", Password: "pw"}))
}

package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/shared/apperror"
)

func render(err error) (*httptest.ResponseRecorder, map[string]any) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

	Error(c, err)

	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestError_AppError(t *testing.T) {
	w, body := render(apperror.NotFound("GENRE_NOT_FOUND", "Genre not found"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, body["success"])
	errBody := body["error"].(map[string]any)
	assert.Equal(t, "GENRE_NOT_FOUND", errBody["code"])
	assert.Equal(t, "Genre not found", errBody["message"])
	assert.NotContains(t, errBody, "details")
}

func TestError_ValidationCarriesFieldDetails(t *testing.T) {
	fields := validation.Errors{"name": errors.New("cannot be blank")}
	w, body := render(apperror.Validation(fields))

	require.Equal(t, http.StatusBadRequest, w.Code)
	errBody := body["error"].(map[string]any)
	assert.Equal(t, "VALIDATION_ERROR", errBody["code"])
	assert.Equal(t, map[string]any{"name": "cannot be blank"}, errBody["details"])
}

func TestError_InternalIsMasked(t *testing.T) {
	w, body := render(errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	errBody := body["error"].(map[string]any)
	assert.NotContains(t, errBody["message"], "connection refused")
}

func TestSuccessWithMeta(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	SuccessWithMeta(c, http.StatusOK, []string{"a"}, &Meta{Limit: 10, Offset: 0, Total: 1})

	assert.JSONEq(t, `{"success":true,"data":["a"],"meta":{"limit":10,"offset":0,"total":1}}`, w.Body.String())
}

func TestErrorResponse_DecodesIntoEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	ErrorResponse(c, http.StatusConflict, "GENRE_SLUG_ALREADY_EXISTS", "Slug already in use")

	var env Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.NotNil(t, env.Error)
	assert.Equal(t, ErrorBody{Code: "GENRE_SLUG_ALREADY_EXISTS", Message: "Slug already in use"}, *env.Error)
}

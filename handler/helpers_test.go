package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"echocity/models"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestValidationMessage(t *testing.T) {
	v := validator.New()

	err := v.Struct(models.CreateComplaintRequest{CategoryID: "1", Description: "d"})
	assert.Equal(t, "title is required", validationMessage(err))

	err = v.Struct(models.UpdateStatusRequest{Status: "closed"})
	assert.Equal(t, "status must be one of: pending, in_progress, resolved", validationMessage(err))

	assert.Equal(t, "boom", validationMessage(errors.New("boom")))
}

func TestDecodeAndValidate_BadJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{not json"))

	var dst models.LoginRequest
	ok := decodeAndValidate(rec, req, validator.New(), &dst)

	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid request","message":"Failed to parse request body","code":400}`, rec.Body.String())
}

package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, ""},
		{"not found", ErrNotFound("meeting_not_found"), KindNotFound},
		{"forbidden", ErrForbidden("not_host"), KindForbidden},
		{"conflict", ErrConflict("time_conflict", nil), KindConflict},
		{"invalid", ErrBusiness("invalid_day"), KindInvalidInput},
		{"wrapped", fmt.Errorf("update: %w", ErrForbidden("not_host")), KindForbidden},
		{"plain", errors.New("connection reset"), KindInternal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, KindOf(tc.err))
		})
	}
}

func TestIsBusinessMatchesCode(t *testing.T) {
	err := fmt.Errorf("wrap: %w", ErrConflict("time_conflict", nil))

	assert.True(t, IsBusiness(err, "time_conflict"))
	assert.False(t, IsBusiness(err, "other"))
	assert.False(t, IsBusiness(errors.New("time_conflict"), "time_conflict"))
}

func TestFromErrorWritesStatusAndDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{ErrNotFound("meeting_not_found"), http.StatusNotFound, "meeting_not_found"},
		{ErrForbidden("not_host"), http.StatusForbidden, "not_host"},
		{ErrConflict("participant_conflict", []string{"b@x.com"}), http.StatusConflict, "participant_conflict"},
		{ErrInvalid("invalid_day"), http.StatusBadRequest, "invalid_day"},
		{errors.New("pq: boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.wantCode, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			FromError(c, tc.err)

			assert.Equal(t, tc.wantStatus, w.Code)
			var body HTTPError
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tc.wantCode, body.Code)
			assert.NotContains(t, w.Body.String(), "pq: boom")
		})
	}
}

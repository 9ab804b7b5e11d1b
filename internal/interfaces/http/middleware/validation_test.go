package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSetupValidator(t *testing.T) {
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	assert.True(t, ok)
	assert.NotNil(t, v)
}

func TestDecimalPositiveValidation(t *testing.T) {
	SetupValidator()
	gin.SetMode(gin.TestMode)

	type payload struct {
		Amount decimal.Decimal `json:"amount" binding:"required,dpositive"`
	}

	engine := gin.New()
	engine.POST("/test", func(c *gin.Context) {
		var req payload
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"amount": req.Amount})
	})

	cases := []struct {
		name string
		body string
		want int
	}{
		{"positive amount", `{"amount": "150.50"}`, http.StatusOK},
		{"zero amount", `{"amount": "0"}`, http.StatusBadRequest},
		{"negative amount", `{"amount": "-25"}`, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/test", bytes.NewBufferString(tc.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)

			assert.Equal(t, tc.want, w.Code)
		})
	}
}

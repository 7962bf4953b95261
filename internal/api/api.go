package api

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"alert-dashboard/internal/models"
)

// statusUpdateQuery is the query string of PATCH /alerts/:id/status.
// Absent reviewedBy or notes bind as nil.
type statusUpdateQuery struct {
	Status     string  `form:"status" binding:"required,alertstatus"`
	ReviewedBy *string `form:"reviewedBy" binding:"omitempty,max=100"`
	Notes      *string `form:"notes"`
}

func (q statusUpdateQuery) toUpdate() models.StatusUpdate {
	return models.StatusUpdate{
		Status:     models.Status(q.Status),
		ReviewedBy: q.ReviewedBy,
		Notes:      q.Notes,
	}
}

var registerOnce sync.Once

// registerValidators adds the alertstatus tag to gin's validator engine.
func registerValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("alertstatus", func(fl validator.FieldLevel) bool {
				return models.Status(fl.Field().String()).Valid()
			})
		}
	})
}

type errorDetail struct {
	Field string `json:"field"`
	Info  string `json:"info"`
}

// badRequest writes a 400, listing failed fields for validation errors.
func badRequest(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	details := make([]errorDetail, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, errorDetail{Field: fe.Field(), Info: validationMessage(fe)})
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": details})
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "alertstatus":
		return fe.Field() + " must be one of NEW, REVIEWED, CONFIRMED_FRAUD, FALSE_POSITIVE"
	case "max":
		return fe.Field() + " must be at most " + fe.Param() + " characters"
	default:
		return fe.Field() + " is invalid"
	}
}

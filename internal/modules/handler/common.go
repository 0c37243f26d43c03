package handler

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/leogretz2/bp-planner1/internal/modules/serializer"
	"github.com/leogretz2/bp-planner1/internal/modules/service"
	"github.com/shopspring/decimal"
)

var slugRE = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// RegisterValidators adds the custom binding tags used by request structs.
// It must run before the first request is bound.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected binding validator engine")
	}
	return v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugRE.MatchString(fl.Field().String())
	})
}

// maxHourDigits bounds both the significant digits and the exponent of an
// hour value, so its decimal text stays short.
const maxHourDigits = 38

var errHoursOutOfRange = errors.New("hours value out of range")

// checkHours rejects hour values whose expansion would exceed maxHourDigits.
func checkHours(hours ...*decimal.Decimal) error {
	for _, h := range hours {
		if h == nil {
			continue
		}
		exp := h.Exponent()
		if h.NumDigits() > maxHourDigits || exp > maxHourDigits || exp < -maxHourDigits {
			return errHoursOutOfRange
		}
	}
	return nil
}

// IDReq is the input of every getById-style query.
type IDReq struct {
	ID string `form:"id" json:"id" binding:"required,uuid" example:"123e4567-e89b-12d3-a456-426614174000"`
}

// respondErr maps service errors onto the envelope.
func respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
	case errors.Is(err, service.ErrConstraint):
		c.JSON(http.StatusConflict, serializer.ConflictErr("", err))
	default:
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
	}
}

// parseOptUUID parses a validated optional id; empty means absent.
func parseOptUUID(s *string) (*uuid.UUID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

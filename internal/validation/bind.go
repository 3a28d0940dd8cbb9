package validation

import (
	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	apierrors "github.com/sokoyetu/soko-api/internal/shared/errors"
)

// BindAndValidate binds the JSON body into out and runs validation. On
// failure it writes a problem response and returns an error so the
// handler can short-circuit.
func BindAndValidate(c *gin.Context, out any, v *validatorv10.Validate) error {
	if err := c.ShouldBindJSON(out); err != nil {
		apierrors.Respond(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return err
	}
	if err := v.Struct(out); err != nil {
		apierrors.Respond(c, apierrors.NewValidationProblem(ErrorsToMap(err)))
		return err
	}
	return nil
}

package sokoserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	messagingapp "github.com/sokoyetu/soko-api/internal/domains/messaging/application"
	ordersapp "github.com/sokoyetu/soko-api/internal/domains/orders/application"
	orderdomain "github.com/sokoyetu/soko-api/internal/domains/orders/domain"
	orderports "github.com/sokoyetu/soko-api/internal/domains/orders/ports"
	productsapp "github.com/sokoyetu/soko-api/internal/domains/products/application"
	productports "github.com/sokoyetu/soko-api/internal/domains/products/ports"
	usersapp "github.com/sokoyetu/soko-api/internal/domains/users/application"
	userports "github.com/sokoyetu/soko-api/internal/domains/users/ports"
	apierrors "github.com/sokoyetu/soko-api/internal/shared/errors"
)

// serviceResponder maps application and domain sentinels onto RFC 7807
// problem responses.
var serviceResponder = apierrors.NewChainedResponder("", mapServiceError)

func mapServiceError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, orderports.ErrNotFound),
		errors.Is(err, productports.ErrNotFound),
		errors.Is(err, userports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, ordersapp.ErrNotParticipant),
		errors.Is(err, orderdomain.ErrUnauthorizedActor):
		return apierrors.ErrForbidden.WithDetail(err.Error()), true
	case errors.Is(err, orderdomain.ErrIllegalTransition),
		errors.Is(err, userports.ErrEmailTaken):
		return apierrors.ErrConflict.WithDetail(err.Error()), true
	case errors.Is(err, orderports.ErrProductUnavailable),
		errors.Is(err, orderports.ErrInsufficientStock):
		return apierrors.ErrUnprocessable.WithDetail(err.Error()), true
	case errors.Is(err, usersapp.ErrAuthentication):
		return apierrors.ErrUnauthorized.WithDetail(err.Error()), true
	case errors.Is(err, ordersapp.ErrInvalidInput),
		errors.Is(err, productsapp.ErrInvalidInput),
		errors.Is(err, usersapp.ErrInvalidInput),
		errors.Is(err, messagingapp.ErrInvalidInput),
		errors.Is(err, orderdomain.ErrMissingEvidence):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

// respondServiceError writes the problem response for a use case failure.
func respondServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	serviceResponder.RespondError(c, err)
}

// respondProblem writes an explicit problem response.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	apierrors.Respond(c, problem)
}

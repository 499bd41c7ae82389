package http

import (
	"context"
	"errors"

	"quadras/web/internal/backend"
	"quadras/web/internal/cooldown"
	"quadras/web/internal/domain/arena"
	"quadras/web/internal/domain/booking"
	"quadras/web/internal/domain/court"
	"quadras/web/internal/domain/opengame"
	"quadras/web/internal/domain/subscription"
	"quadras/web/internal/payment"
	"quadras/web/internal/recurrence"
	"quadras/web/internal/validation"
)

const msgUnavailable = "Não foi possível falar com o servidor. Tente novamente."

func orBackend(err error, fallback string) string {
	if m := backend.Message(err); m != "" {
		return m
	}
	return fallback
}

// mapCommonError covers what any route can hit: validation and backend answers.
func mapCommonError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	switch {
	case validation.IsErrInvalid(err):
		return 400, "Dados inválidos."
	case cooldown.IsErrCoolingDown(err):
		return 429, err.Error()
	case errors.Is(err, context.Canceled):
		return 499, "request canceled"
	case backend.IsErrBadRequest(err):
		return 400, orBackend(err, "Requisição inválida.")
	case backend.IsErrUnauthorized(err):
		return 401, "Sessão expirada. Entre novamente."
	case backend.IsErrForbidden(err):
		return 403, orBackend(err, "Acesso negado.")
	case backend.IsErrNotFound(err):
		return 404, orBackend(err, "Não encontrado.")
	case backend.IsErrConflict(err):
		return 409, orBackend(err, "Operação não permitida no estado atual.")
	case errors.Is(err, backend.ErrUnavailable):
		return 502, msgUnavailable
	default:
		return 500, err.Error()
	}
}

func mapBookingError(err error) (int, string) {
	switch {
	case booking.IsErrUnauthorized(err):
		return 403, err.Error()
	case booking.IsErrNotFound(err):
		return 404, err.Error()
	case booking.IsErrBadRequest(err):
		return 400, err.Error()
	default:
		return mapCommonError(err)
	}
}

func mapCourtError(err error) (int, string) {
	switch {
	case court.IsErrNotFound(err):
		return 404, err.Error()
	case court.IsErrBadRequest(err):
		return 400, err.Error()
	case subscription.IsErrLimitReached(err):
		return 402, err.Error()
	default:
		return mapCommonError(err)
	}
}

func mapArenaError(err error) (int, string) {
	switch {
	case arena.IsErrNotFound(err):
		return 404, err.Error()
	case arena.IsErrBadRequest(err):
		return 400, err.Error()
	default:
		return mapCommonError(err)
	}
}

func mapOpenGameError(err error) (int, string) {
	switch {
	case opengame.IsErrBadRequest(err):
		return 400, err.Error()
	default:
		return mapCommonError(err)
	}
}

func mapSubscriptionError(err error) (int, string) {
	switch {
	case subscription.IsErrNotFound(err):
		return 404, err.Error()
	case subscription.IsErrBadRequest(err):
		return 400, err.Error()
	case subscription.IsErrLimitReached(err):
		return 402, err.Error()
	default:
		return mapCommonError(err)
	}
}

func mapPaymentError(err error) (int, string) {
	switch {
	case payment.IsErrBadRequest(err):
		return 400, err.Error()
	case payment.IsErrNotConfigured(err):
		return 501, err.Error()
	default:
		return mapCommonError(err)
	}
}

// mapRecurrenceError passes backend refusals through verbatim.
func mapRecurrenceError(err error) (int, string) {
	switch {
	case recurrence.IsErrSeriesLocked(err):
		return 409, "Não é possível cancelar: há agendamentos pagos ou confirmados nesta série."
	case recurrence.IsErrActionNotOffered(err):
		return 409, "Ação indisponível para este agendamento."
	case recurrence.IsErrNotFound(err):
		return 404, err.Error()
	case recurrence.IsErrBadRequest(err):
		return 400, err.Error()
	default:
		return mapBookingError(err)
	}
}

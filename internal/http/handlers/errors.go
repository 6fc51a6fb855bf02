package handlers

import (
	"errors"
	"net/http"

	"crowdfund/internal/domain"
	"crowdfund/internal/i18n"
)

type errorMapping struct {
	err    error
	status int
	code   string
}

var errorTable = []errorMapping{
	{domain.ErrInvalidGoal, http.StatusBadRequest, i18n.CodeInvalidGoal},
	{domain.ErrInvalidDuration, http.StatusBadRequest, i18n.CodeInvalidDuration},
	{domain.ErrInvalidAmount, http.StatusBadRequest, i18n.CodeInvalidAmount},
	{domain.ErrInvalidAmountFormat, http.StatusBadRequest, i18n.CodeInvalidAmount},
	{domain.ErrInvalidPrincipal, http.StatusBadRequest, i18n.CodeInvalidPrincipal},
	{domain.ErrUnauthorized, http.StatusUnauthorized, i18n.CodeUnauthorized},
	{domain.ErrNotOwner, http.StatusForbidden, i18n.CodeNotOwner},
	{domain.ErrNotFound, http.StatusNotFound, i18n.CodeNotFound},
	{domain.ErrProjectEnded, http.StatusConflict, i18n.CodeProjectEnded},
	{domain.ErrNotYetDue, http.StatusConflict, i18n.CodeNotYetDue},
	{domain.ErrNotCompleted, http.StatusConflict, i18n.CodeNotCompleted},
	{domain.ErrAlreadyWithdrawn, http.StatusConflict, i18n.CodeAlreadyWithdrawn},
	{domain.ErrTimeNotElapsed, http.StatusConflict, i18n.CodeTimeNotElapsed},
	{domain.ErrGoalMet, http.StatusConflict, i18n.CodeGoalMet},
	{domain.ErrNotDonor, http.StatusConflict, i18n.CodeNotDonor},
	{domain.ErrNothingToClaim, http.StatusConflict, i18n.CodeNothingToClaim},
	{domain.ErrJournalFailed, http.StatusServiceUnavailable, i18n.CodeJournalUnavailable},
	{domain.ErrTransferFailed, http.StatusBadGateway, i18n.CodeTransferFailed},
}

func classify(err error) (int, string) {
	for _, m := range errorTable {
		if errors.Is(err, m.err) {
			return m.status, m.code
		}
	}
	return http.StatusInternalServerError, i18n.CodeInternal
}

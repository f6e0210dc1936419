// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
)

// VerifyPayment handles GET /api/verify-payment?session_id=...
func (a *API) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "Missing session_id")
		return
	}

	if a.payments == nil {
		writeError(w, http.StatusServiceUnavailable, "Payment verification not configured")
		return
	}

	session, err := a.payments.VerifySession(r.Context(), sessionID)
	if err != nil {
		slog.Error("payment verification failed", "session_id", sessionID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to verify payment")
		return
	}

	writeJSON(w, http.StatusOK, session)
}

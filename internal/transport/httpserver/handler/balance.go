package handler

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	balancedomain "expense-ledger-go/internal/domain/balance"
)

func (h *Handlers) BalanceSheet(w http.ResponseWriter, r *http.Request) {
	sheet, err := h.Balance.Sheet(r.Context())
	if err != nil {
		h.logger(r).InternalError("balance.sheet: build failed", err)
		writeInternalError(w)
		return
	}

	writeJSON(w, http.StatusOK, h.toBalanceSheetResponse(*sheet))
}

func (h *Handlers) DownloadBalanceSheet(w http.ResponseWriter, r *http.Request) {
	format, err := balancedomain.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "format must be csv or xlsx")
		return
	}

	// Buffer so a failure halfway through still yields a JSON error.
	var buf bytes.Buffer
	if err := h.Balance.Export(r.Context(), format, &buf); err != nil {
		if errors.Is(err, balancedomain.ErrUnsupportedFormat) {
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		h.logger(r).InternalError("balance.download: export failed", err, "format", string(format))
		writeInternalError(w)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", "attachment; filename="+format.Filename())
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"prisoner-profile/internal/format"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func parseInt64(s string) (int64, error) {
	if s == "" {
		return 0, errors.New("missing")
	}
	return strconv.ParseInt(s, 10, 64)
}

// parseDate YYYY-MM-DD; empty gives def
func parseDate(s string, def time.Time) (time.Time, error) {
	if s == "" {
		if def.IsZero() {
			return time.Time{}, errors.New("missing")
		}
		return def, nil
	}
	t, err := time.Parse(format.QueryDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected %s", format.QueryDateLayout)
	}
	return t, nil
}

// sessionID cookie first, then the X-Session-Id header
func sessionID(r *http.Request, cookieName string) string {
	if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
		return c.Value
	}
	return r.Header.Get("X-Session-Id")
}

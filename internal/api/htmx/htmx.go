package htmx

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

func IsRequest(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("HX-Request"), "true")
}

// Trigger asks htmx to dispatch event with detail on the requesting element
// once the response is received.
func Trigger(w http.ResponseWriter, event string, detail any) error {
	payload, err := json.Marshal(map[string]any{event: detail})
	if err != nil {
		return fmt.Errorf("encode HX-Trigger %s: %w", event, err)
	}
	w.Header().Set("HX-Trigger", string(payload))
	return nil
}

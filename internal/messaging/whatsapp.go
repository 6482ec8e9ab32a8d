// Package messaging builds outbound message links and texts.
package messaging

import (
	"net/url"
	"strings"

	"github.com/BruksfildServices01/massage-scheduler/internal/httperr"
)

const whatsAppBase = "https://wa.me/"

// NormalizePhone keeps digits and '+' only.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '+' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// WhatsAppLink returns a wa.me deep link with text form-encoded.
func WhatsAppLink(phone, text string) (string, error) {
	p := NormalizePhone(phone)
	if p == "" {
		return "", httperr.ErrBusiness(httperr.CodeMissingPhone)
	}
	return whatsAppBase + p + "?text=" + url.QueryEscape(text), nil
}

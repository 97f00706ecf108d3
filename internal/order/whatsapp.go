package order

import (
	"net/url"
	"strings"
)

// WhatsAppLink builds the wa.me deep link that opens a chat with the shop,
// pre-filled with the order message. Spaces are percent-encoded because
// WhatsApp renders a literal plus sign otherwise.
func WhatsAppLink(phone, message string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return "https://wa.me/" + strings.TrimPrefix(phone, "+") + "?text=" + escaped
}

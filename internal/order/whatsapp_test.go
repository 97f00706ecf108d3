package order

import (
	"strings"
	"testing"
)

func TestWhatsAppLink(t *testing.T) {
	link := WhatsAppLink("+972501234567", "*Hi!*\n1. Dress\n")

	if !strings.HasPrefix(link, "https://wa.me/972501234567?text=") {
		t.Fatalf("expected wa.me link without the plus prefix, got %s", link)
	}
	if strings.Contains(link, "+") {
		t.Fatalf("expected no plus signs in the encoded text, got %s", link)
	}
	if !strings.Contains(link, "%0A") {
		t.Fatalf("expected encoded newlines, got %s", link)
	}
}

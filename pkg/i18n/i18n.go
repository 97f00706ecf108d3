package i18n

import "github.com/bellakids/storefront-backend/pkg/enums"

// Labels holds the translated strings stitched into the order message. Numeric
// computation never depends on these; only the wording does.
type Labels struct {
	OrderIntro string
	Size       string
	Color      string
	Variant    string
	ItemCode   string
	Subtotal   string
	Delivery   string
	Total      string
	Currency   string
}

var labelsByLocale = map[enums.Locale]Labels{
	enums.LocaleEN: {
		OrderIntro: "Hi Bella Kids! I want to order:",
		Size:       "Size",
		Color:      "Color",
		Variant:    "Style",
		ItemCode:   "Code",
		Subtotal:   "Subtotal",
		Delivery:   "Delivery",
		Total:      "Total",
		Currency:   "₪",
	},
	enums.LocaleAR: {
		OrderIntro: "مرحباً بيلا كيدز! أود طلب ما يلي:",
		Size:       "المقاس",
		Color:      "اللون",
		Variant:    "الموديل",
		ItemCode:   "الرمز",
		Subtotal:   "المجموع الفرعي",
		Delivery:   "التوصيل",
		Total:      "المجموع الكلي",
		Currency:   "₪",
	},
}

// For returns the label set for the locale, falling back to Arabic, the shop's
// primary language.
func For(locale enums.Locale) Labels {
	if labels, ok := labelsByLocale[locale]; ok {
		return labels
	}
	return labelsByLocale[enums.LocaleAR]
}

// ParseLocale maps a raw string onto a supported locale, defaulting to Arabic.
func ParseLocale(raw string) enums.Locale {
	return ParseLocaleOr(raw, enums.LocaleAR)
}

// ParseLocaleOr maps a raw string onto a supported locale, falling back to the
// given locale (typically the shop's configured default) when raw is not one.
func ParseLocaleOr(raw string, fallback enums.Locale) enums.Locale {
	locale := enums.Locale(raw)
	if locale.IsValid() {
		return locale
	}
	if fallback.IsValid() {
		return fallback
	}
	return enums.LocaleAR
}

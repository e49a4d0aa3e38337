package validation

import "strings"

type Locale string

const (
	LocaleID Locale = "id"
	LocaleEN Locale = "en"

	DefaultLocale = LocaleID
)

var messages = map[Locale]map[string]string{
	LocaleID: {
		"name.required":          "Nama wajib diisi",
		"origin.required":        "Kota asal wajib dipilih",
		"destination.required":   "Kota tujuan wajib dipilih",
		"destination.nefield":    "Kota asal dan tujuan tidak boleh sama",
		"departureDate.required": "Tanggal berangkat wajib dipilih",
		"departureDate.notpast":  "Tanggal berangkat harus hari ini atau di masa depan",
		"minPrice.nonnegative":   "Harga minimal harus angka positif",
		"maxPrice.nonnegative":   "Harga maksimal harus angka positif",
		"maxPrice.gtefield":      "Harga minimal tidak boleh lebih besar dari harga maksimal",
	},
	LocaleEN: {
		"name.required":          "Name is required",
		"origin.required":        "Origin city is required",
		"destination.required":   "Destination city is required",
		"destination.nefield":    "Origin and destination cannot be the same",
		"departureDate.required": "Departure date is required",
		"departureDate.notpast":  "Departure date must be today or later",
		"minPrice.nonnegative":   "Minimum price must be a positive number",
		"maxPrice.nonnegative":   "Maximum price must be a positive number",
		"maxPrice.gtefield":      "Minimum price cannot be greater than maximum price",
	},
}

// Message looks up the text for a field/rule pair, falling back to the
// default locale and then to the bare key.
func Message(locale Locale, field, rule string) string {
	key := field + "." + rule
	if m, ok := messages[locale][key]; ok {
		return m
	}
	if m, ok := messages[DefaultLocale][key]; ok {
		return m
	}
	return key
}

// ParseLocale picks a supported locale from an Accept-Language style value
// such as "en-US,en;q=0.9". Anything unsupported yields DefaultLocale.
func ParseLocale(s string) Locale {
	for _, part := range strings.Split(s, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		tag = strings.ToLower(strings.SplitN(tag, "-", 2)[0])
		switch Locale(tag) {
		case LocaleID, LocaleEN:
			return Locale(tag)
		}
	}
	return DefaultLocale
}

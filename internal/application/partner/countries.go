package partner

import (
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// ISO 3166-1 alpha-2 codes
var countryCodes = []string{
	"AD", "AE", "AF", "AG", "AI", "AL", "AM", "AO", "AQ", "AR", "AS", "AT", "AU", "AW", "AX", "AZ",
	"BA", "BB", "BD", "BE", "BF", "BG", "BH", "BI", "BJ", "BL", "BM", "BN", "BO", "BQ", "BR", "BS",
	"BT", "BV", "BW", "BY", "BZ", "CA", "CC", "CD", "CF", "CG", "CH", "CI", "CK", "CL", "CM", "CN",
	"CO", "CR", "CU", "CV", "CW", "CX", "CY", "CZ", "DE", "DJ", "DK", "DM", "DO", "DZ", "EC", "EE",
	"EG", "EH", "ER", "ES", "ET", "FI", "FJ", "FK", "FM", "FO", "FR", "GA", "GB", "GD", "GE", "GF",
	"GG", "GH", "GI", "GL", "GM", "GN", "GP", "GQ", "GR", "GS", "GT", "GU", "GW", "GY", "HK", "HM",
	"HN", "HR", "HT", "HU", "ID", "IE", "IL", "IM", "IN", "IO", "IQ", "IR", "IS", "IT", "JE", "JM",
	"JO", "JP", "KE", "KG", "KH", "KI", "KM", "KN", "KP", "KR", "KW", "KY", "KZ", "LA", "LB", "LC",
	"LI", "LK", "LR", "LS", "LT", "LU", "LV", "LY", "MA", "MC", "MD", "ME", "MF", "MG", "MH", "MK",
	"ML", "MM", "MN", "MO", "MP", "MQ", "MR", "MS", "MT", "MU", "MV", "MW", "MX", "MY", "MZ", "NA",
	"NC", "NE", "NF", "NG", "NI", "NL", "NO", "NP", "NR", "NU", "NZ", "OM", "PA", "PE", "PF", "PG",
	"PH", "PK", "PL", "PM", "PN", "PR", "PS", "PT", "PW", "PY", "QA", "RE", "RO", "RS", "RU", "RW",
	"SA", "SB", "SC", "SD", "SE", "SG", "SH", "SI", "SJ", "SK", "SL", "SM", "SN", "SO", "SR", "SS",
	"ST", "SV", "SX", "SY", "SZ", "TC", "TD", "TF", "TG", "TH", "TJ", "TK", "TL", "TM", "TN", "TO",
	"TR", "TT", "TV", "TW", "TZ", "UA", "UG", "UM", "US", "UY", "UZ", "VA", "VC", "VE", "VG", "VI",
	"VN", "VU", "WF", "WS", "YE", "YT", "ZA", "ZM", "ZW",
}

var (
	countriesOnce sync.Once
	countries     []CountryResponse
	countrySet    map[string]struct{}
)

func loadCountries() {
	namer := display.English.Regions()
	countries = make([]CountryResponse, 0, len(countryCodes))
	countrySet = make(map[string]struct{}, len(countryCodes))
	for _, code := range countryCodes {
		name := code
		if region, err := language.ParseRegion(code); err == nil {
			if n := namer.Name(region); n != "" {
				name = n
			}
		}
		countries = append(countries, CountryResponse{Code: code, Name: name})
		countrySet[code] = struct{}{}
	}
	sort.SliceStable(countries, func(i, j int) bool {
		return countries[i].Name < countries[j].Name
	})
}

// Countries returns the ISO 3166-1 countries with English names, sorted by name
func Countries() []CountryResponse {
	countriesOnce.Do(loadCountries)
	out := make([]CountryResponse, len(countries))
	copy(out, countries)
	return out
}

// IsCountryCode reports whether code is a known ISO 3166-1 alpha-2 code
func IsCountryCode(code string) bool {
	countriesOnce.Do(loadCountries)
	_, ok := countrySet[strings.ToUpper(strings.TrimSpace(code))]
	return ok
}

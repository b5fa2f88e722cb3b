package canonical

import (
	"strings"
)

// Nationality is an ISO-3166-1 alpha-3 country code, uppercase.
type Nationality string

// NewNationality validates that code is exactly three uppercase ASCII letters.
func NewNationality(code string) (Nationality, error) {
	if len(code) != 3 {
		return "", validationf("nationality %q is not a 3-letter code", code)
	}
	for i := 0; i < len(code); i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return "", validationf("nationality %q is not uppercase letters", code)
		}
	}
	return Nationality(code), nil
}

// nationalityTable maps lowercase country names, demonyms, Hebrew names and
// common feed aliases to ISO alpha-3 codes. The Hebrew entries cover the
// Winner League feeds, which publish nationality in Hebrew.
var nationalityTable = map[string]Nationality{
	"united states": "USA", "united states of america": "USA", "usa": "USA",
	"us": "USA", "u.s.a.": "USA", "american": "USA", "america": "USA",
	"ארצות הברית": "USA", "אמריקאי": "USA",

	"israel": "ISR", "israeli": "ISR", "ישראל": "ISR", "ישראלי": "ISR",

	"spain": "ESP", "spanish": "ESP", "espana": "ESP", "españa": "ESP", "ספרד": "ESP",
	"france": "FRA", "french": "FRA", "צרפת": "FRA",
	"greece": "GRC", "greek": "GRC", "hellas": "GRC", "יוון": "GRC",
	"italy": "ITA", "italian": "ITA", "italia": "ITA", "איטליה": "ITA",
	"germany": "DEU", "german": "DEU", "deutschland": "DEU", "ger": "DEU", "גרמניה": "DEU",
	"turkey": "TUR", "turkish": "TUR", "turkiye": "TUR", "türkiye": "TUR", "טורקיה": "TUR",
	"serbia": "SRB", "serbian": "SRB", "srbija": "SRB", "סרביה": "SRB",
	"croatia": "HRV", "croatian": "HRV", "hrvatska": "HRV", "cro": "HRV", "קרואטיה": "HRV",
	"slovenia": "SVN", "slovenian": "SVN", "slo": "SVN", "סלובניה": "SVN",
	"lithuania": "LTU", "lithuanian": "LTU", "lietuva": "LTU", "ליטא": "LTU",
	"latvia": "LVA", "latvian": "LVA", "lat": "LVA", "לטביה": "LVA",
	"montenegro": "MNE", "montenegrin": "MNE", "מונטנגרו": "MNE",
	"bosnia": "BIH", "bosnia and herzegovina": "BIH", "bosnian": "BIH", "bih": "BIH",
	"בוסניה": "BIH",
	"north macedonia": "MKD", "macedonia": "MKD", "macedonian": "MKD", "מקדוניה": "MKD",
	"russia": "RUS", "russian": "RUS", "russian federation": "RUS", "רוסיה": "RUS",
	"ukraine": "UKR", "ukrainian": "UKR", "אוקראינה": "UKR",
	"poland": "POL", "polish": "POL", "פולין": "POL",
	"czech republic": "CZE", "czechia": "CZE", "czech": "CZE", "צ'כיה": "CZE",
	"georgia": "GEO", "georgian": "GEO", "גאורגיה": "GEO",
	"belgium": "BEL", "belgian": "BEL", "בלגיה": "BEL",
	"netherlands": "NLD", "dutch": "NLD", "holland": "NLD", "ned": "NLD", "הולנד": "NLD",
	"united kingdom": "GBR", "great britain": "GBR", "british": "GBR", "gbr": "GBR",
	"england": "GBR", "english": "GBR", "בריטניה": "GBR",
	"finland": "FIN", "finnish": "FIN", "פינלנד": "FIN",
	"sweden": "SWE", "swedish": "SWE", "שוודיה": "SWE",
	"denmark": "DNK", "danish": "DNK", "den": "DNK", "דנמרק": "DNK",
	"portugal": "PRT", "portuguese": "PRT", "por": "PRT", "פורטוגל": "PRT",
	"austria": "AUT", "austrian": "AUT", "אוסטריה": "AUT",
	"hungary": "HUN", "hungarian": "HUN", "הונגריה": "HUN",
	"bulgaria": "BGR", "bulgarian": "BGR", "בולגריה": "BGR",
	"romania": "ROU", "romanian": "ROU", "רומניה": "ROU",
	"estonia": "EST", "estonian": "EST", "אסטוניה": "EST",
	"canada": "CAN", "canadian": "CAN", "קנדה": "CAN",
	"mexico": "MEX", "mexican": "MEX", "מקסיקו": "MEX",
	"brazil": "BRA", "brazilian": "BRA", "brasil": "BRA", "ברזיל": "BRA",
	"argentina": "ARG", "argentine": "ARG", "argentinian": "ARG", "ארגנטינה": "ARG",
	"australia": "AUS", "australian": "AUS", "אוסטרליה": "AUS",
	"new zealand": "NZL", "nzl": "NZL", "ניו זילנד": "NZL",
	"nigeria": "NGA", "nigerian": "NGA", "ניגריה": "NGA",
	"senegal": "SEN", "senegalese": "SEN", "סנגל": "SEN",
	"cameroon": "CMR", "cameroonian": "CMR", "קמרון": "CMR",
	"angola": "AGO", "angolan": "AGO", "אנגולה": "AGO",
	"japan": "JPN", "japanese": "JPN", "יפן": "JPN",
	"china": "CHN", "chinese": "CHN", "סין": "CHN",
	"philippines": "PHL", "filipino": "PHL", "הפיליפינים": "PHL",
	"dominican republic": "DOM", "dominican": "DOM", "הרפובליקה הדומיניקנית": "DOM",
	"puerto rico": "PRI", "puerto rican": "PRI", "פוארטו ריקו": "PRI",
}

// nationalityCodes is the set of codes ParseNationality will accept as-is.
var nationalityCodes = func() map[Nationality]struct{} {
	out := make(map[Nationality]struct{}, len(nationalityTable)+8)
	for _, code := range nationalityTable {
		out[code] = struct{}{}
	}
	// Codes that appear in feeds but have no alias entry above.
	for _, code := range []Nationality{"ISL", "IRL", "NOR", "CHE", "SVK", "MLI", "CIV", "COD", "EGY", "TUN", "VEN", "URY", "CHL", "COL", "PAN"} {
		out[code] = struct{}{}
	}
	return out
}()

// ParseNationality resolves country names, demonyms, Hebrew spellings and ISO
// codes case-insensitively. Unknown input yields no value; the table never
// guesses from partial matches.
func ParseNationality(raw string) (Nationality, bool) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return "", false
	}

	if code, ok := nationalityTable[value]; ok {
		return code, true
	}

	if len([]rune(value)) == 3 {
		code, err := NewNationality(strings.ToUpper(value))
		if err == nil {
			if _, known := nationalityCodes[code]; known {
				return code, true
			}
		}
	}

	return "", false
}

package license

import (
	"strings"

	"github.com/debresearch/licensetrend/internal/model"
)

// knownLicenses maps raw declared-license spellings, as they appear in
// copyright documents, to canonical tokens. The table is case- and
// punctuation-sensitive: lookups happen after the trailing "+" is
// stripped but with no other cleanup.
var knownLicenses = map[string]model.License{
	"Allegro-gift-ware":              "Allegro",
	"Apache-2.0":                     "Apache-2.0",
	"Artistic or GPL-1":              "Artistic",
	"Artistic-2.0":                   "Artistic-2",
	"BSD":                            "BSD",
	"BSD-3-clause":                   "BSD",
	"BSD-like":                       "BSD",
	"CC-BY-SA-3.0":                   "CC-BY-SA-3",
	"CeCILL-C":                       "CeCILL-C",
	"EPL":                            "EPL",
	"Expat":                          "Expat",
	"GNU Lesser GPL v3":              "LGPL-3",
	"GPL-2":                          "GPL-2",
	"GPL-2 and LGPL-2.1":             "LGPL-2",
	"GPL-2 and Other":                "GPL-2",
	"GPL-2.0":                        "GPL-2",
	"GPL-2+ with OpenSSL exemption":  "GPL-2",
	"GPL-2+ with Autoconf exception": "GPL-2",
	"GPL-3":                          "GPL-3",
	"GPL-3.0":                        "GPL-3",
	"GPL2":                           "GPL-2",
	"GPL3":                           "GPL-3",
	"ISC":                            "ISC",
	"LGPL":                           "LGPL",
	"LGPL-2":                         "LGPL-2",
	"LGPL-2.1":                       "LGPL-2",
	"LGPLv2.1":                       "LGPL-2",
	"LGPL-3":                         "LGPL-3",
	"MIT":                            "MIT",
	"MPL-1.1":                        "MPL-1.1",
	"PD":                             "PD",
	"Public_Domain_1":                "PD",
	"Zlib":                           "Zlib",
	"other-BSD":                      "BSD",
	"public-domain":                  "PD",
}

// Normalize maps a raw license identifier to its canonical token.
// A trailing "+" ("this version or later") is irrelevant to the
// classification and is stripped first. Unknown spellings pass through
// verbatim rather than erroring, so Normalize is total.
func Normalize(raw string) model.License {
	trimmed := strings.TrimRight(raw, "+")
	if canonical, ok := knownLicenses[trimmed]; ok {
		return canonical
	}
	return model.License(trimmed)
}

package model

// originUnknownStr is the string representation for unknown origin values.
const originUnknownStr = "unknown"

// Origin describes how a package's licenses were determined.
type Origin string

// Origin constants.
const (
	// OriginUnknown represents an unknown origin.
	OriginUnknown Origin = ""
	// OriginParsed means the copyright document was machine readable and
	// the licenses come from its structured file paragraphs.
	OriginParsed Origin = "parsed"
	// OriginGuessed means the document was free text and the licenses
	// come from the pattern guesser.
	OriginGuessed Origin = "guessed"
)

// String returns the string representation of the Origin.
func (o Origin) String() string {
	if o == OriginUnknown {
		return originUnknownStr
	}
	return string(o)
}

// IsValid returns true if this is a known origin.
func (o Origin) IsValid() bool {
	switch o {
	case OriginParsed, OriginGuessed:
		return true
	default:
		return false
	}
}

// ParseOrigin converts a string to an Origin.
func ParseOrigin(s string) Origin {
	switch s {
	case "parsed":
		return OriginParsed
	case "guessed":
		return OriginGuessed
	default:
		return OriginUnknown
	}
}

// Detection is the classification result for one package in one release
// channel: where the licenses came from and the distinct set of canonical
// tokens that apply.
type Detection struct {
	// Origin records whether the result came from a structured parse or
	// from pattern guessing.
	Origin Origin

	// Licenses holds the distinct canonical tokens, sorted
	// lexicographically. It is never empty for a successful detection:
	// an unclassifiable document yields [unknown] and a machine-readable
	// document with no usable declaration yields [missing].
	Licenses []License
}

// Document is the raw copyright text fetched for one (package, channel)
// pair, or the absence thereof. A non-2xx response maps to Found=false
// rather than an error: a package legitimately may exist in only one or
// two of the three channels.
type Document struct {
	// Found reports whether the remote service had the document.
	Found bool

	// Body is the raw document text. Empty when Found is false.
	Body string
}

package charset

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// Lookup resolves an encoding by ECI name or alias, then by IANA name.
// It returns nil for names it does not know.
func Lookup(name string) encoding.Encoding {
	if eci := ByName(name); eci != nil {
		return eci.Encoding
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil
	}
	return enc
}

// Decode converts data from the named encoding to UTF-8. Data in an unknown
// encoding, or that fails to convert, is returned unchanged.
func Decode(data []byte, name string) string {
	enc := Lookup(name)
	if enc == nil || enc == encoding.Nop {
		return string(data)
	}
	decoded, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return string(data)
	}
	return string(decoded)
}

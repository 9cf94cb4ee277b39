// Package charset maps ECI designators and character set names to text
// encodings and converts byte segments to UTF-8.
package charset

import (
	"errors"
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
)

// ErrUnknownECI indicates an ECI value outside the assigned character sets.
var ErrUnknownECI = errors.New("charset: unknown ECI value")

// ECI is a character set Extended Channel Interpretation.
type ECI struct {
	Values   []int
	Name     string
	Aliases  []string
	Encoding encoding.Encoding
}

// Value returns the primary designator of the character set.
func (e *ECI) Value() int { return e.Values[0] }

func (e *ECI) String() string { return e.Name }

var ecis = []*ECI{
	{[]int{0, 2}, "Cp437", []string{"IBM437"}, charmap.CodePage437},
	{[]int{1, 3}, "ISO-8859-1", []string{"ISO8859_1"}, charmap.ISO8859_1},
	{[]int{4}, "ISO-8859-2", []string{"ISO8859_2"}, charmap.ISO8859_2},
	{[]int{5}, "ISO-8859-3", []string{"ISO8859_3"}, charmap.ISO8859_3},
	{[]int{6}, "ISO-8859-4", []string{"ISO8859_4"}, charmap.ISO8859_4},
	{[]int{7}, "ISO-8859-5", []string{"ISO8859_5"}, charmap.ISO8859_5},
	{[]int{8}, "ISO-8859-6", []string{"ISO8859_6"}, charmap.ISO8859_6},
	{[]int{9}, "ISO-8859-7", []string{"ISO8859_7"}, charmap.ISO8859_7},
	{[]int{10}, "ISO-8859-8", []string{"ISO8859_8"}, charmap.ISO8859_8},
	{[]int{11}, "ISO-8859-9", []string{"ISO8859_9"}, charmap.ISO8859_9},
	{[]int{12}, "ISO-8859-10", []string{"ISO8859_10"}, charmap.ISO8859_10},
	{[]int{13}, "ISO-8859-11", []string{"ISO8859_11", "TIS-620"}, charmap.Windows874},
	{[]int{15}, "ISO-8859-13", []string{"ISO8859_13"}, charmap.ISO8859_13},
	{[]int{16}, "ISO-8859-14", []string{"ISO8859_14"}, charmap.ISO8859_14},
	{[]int{17}, "ISO-8859-15", []string{"ISO8859_15"}, charmap.ISO8859_15},
	{[]int{18}, "ISO-8859-16", []string{"ISO8859_16"}, charmap.ISO8859_16},
	{[]int{20}, "Shift_JIS", []string{"SJIS"}, japanese.ShiftJIS},
	{[]int{21}, "windows-1250", []string{"Cp1250"}, charmap.Windows1250},
	{[]int{22}, "windows-1251", []string{"Cp1251"}, charmap.Windows1251},
	{[]int{23}, "windows-1252", []string{"Cp1252"}, charmap.Windows1252},
	{[]int{24}, "windows-1256", []string{"Cp1256"}, charmap.Windows1256},
	{[]int{25}, "UTF-16BE", []string{"UnicodeBigUnmarked", "UnicodeBig"},
		unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)},
	{[]int{26}, "UTF-8", []string{"UTF8"}, unicode.UTF8},
	{[]int{27, 170}, "US-ASCII", []string{"ASCII"}, encoding.Nop},
	{[]int{28}, "Big5", nil, traditionalchinese.Big5},
	{[]int{29}, "GB18030", []string{"GB2312", "EUC_CN", "GBK"}, simplifiedchinese.GB18030},
	{[]int{30}, "EUC-KR", []string{"EUC_KR"}, korean.EUCKR},
}

var (
	valueToECI = make(map[int]*ECI)
	nameToECI  = make(map[string]*ECI)
)

func init() {
	for _, eci := range ecis {
		for _, v := range eci.Values {
			valueToECI[v] = eci
		}
		nameToECI[eci.Name] = eci
		for _, alias := range eci.Aliases {
			nameToECI[alias] = eci
		}
	}
}

// ByValue returns the character set for an ECI designator.
func ByValue(value int) (*ECI, error) {
	eci, ok := valueToECI[value]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownECI, value)
	}
	return eci, nil
}

// ByName returns the character set registered under name or one of its
// aliases, or nil.
func ByName(name string) *ECI {
	return nameToECI[name]
}

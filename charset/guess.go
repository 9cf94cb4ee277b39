package charset

// Names returned by Guess.
const (
	UTF8      = "UTF-8"
	UTF16     = "UTF-16"
	ShiftJIS  = "Shift_JIS"
	ISO8859_1 = "ISO-8859-1"
)

type utf8State struct {
	ok        bool
	pending   int
	multiByte int
}

func (s *utf8State) feed(b byte) {
	if !s.ok {
		return
	}
	switch {
	case s.pending > 0:
		if b&0xC0 != 0x80 {
			s.ok = false
			return
		}
		s.pending--
	case b&0x80 == 0:
	case b&0xE0 == 0xC0:
		s.pending = 1
		s.multiByte++
	case b&0xF0 == 0xE0:
		s.pending = 2
		s.multiByte++
	case b&0xF8 == 0xF0:
		s.pending = 3
		s.multiByte++
	default:
		s.ok = false
	}
}

type latin1State struct {
	ok        bool
	highOther int
}

func (s *latin1State) feed(b byte) {
	if !s.ok {
		return
	}
	if b > 0x7F && b < 0xA0 {
		s.ok = false
	} else if b > 0x9F && (b < 0xC0 || b == 0xD7 || b == 0xF7) {
		s.highOther++
	}
}

type sjisState struct {
	ok                     bool
	pending                int
	katakana               int
	katakanaRun, doubleRun int
	maxKatakana, maxDouble int
}

func (s *sjisState) feed(b byte) {
	if !s.ok {
		return
	}
	switch {
	case s.pending > 0:
		if b < 0x40 || b == 0x7F || b > 0xFC {
			s.ok = false
			return
		}
		s.pending--
	case b == 0x80 || b == 0xA0 || b > 0xEF:
		s.ok = false
	case b > 0xA0 && b < 0xE0:
		s.katakana++
		s.doubleRun = 0
		s.katakanaRun++
		s.maxKatakana = max(s.maxKatakana, s.katakanaRun)
	case b > 0x7F:
		s.pending++
		s.katakanaRun = 0
		s.doubleRun++
		s.maxDouble = max(s.maxDouble, s.doubleRun)
	default:
		s.katakanaRun = 0
		s.doubleRun = 0
	}
}

// Guess picks the most plausible encoding of a byte segment that carries no
// ECI designator. A non-empty hint is returned as is.
func Guess(data []byte, hint string) string {
	if hint != "" {
		return hint
	}
	if len(data) > 2 && ((data[0] == 0xFE && data[1] == 0xFF) || (data[0] == 0xFF && data[1] == 0xFE)) {
		return UTF16
	}

	u := utf8State{ok: true}
	l := latin1State{ok: true}
	s := sjisState{ok: true}
	for _, b := range data {
		if !u.ok && !l.ok && !s.ok {
			break
		}
		u.feed(b)
		l.feed(b)
		s.feed(b)
	}
	u.ok = u.ok && u.pending == 0
	s.ok = s.ok && s.pending == 0

	bom := len(data) > 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF
	switch {
	case u.ok && (bom || u.multiByte > 0):
		return UTF8
	case s.ok && (s.maxKatakana >= 3 || s.maxDouble >= 3):
		return ShiftJIS
	case l.ok && s.ok:
		if (s.maxKatakana == 2 && s.katakana == 2) || l.highOther*10 >= len(data) {
			return ShiftJIS
		}
		return ISO8859_1
	case l.ok:
		return ISO8859_1
	case s.ok:
		return ShiftJIS
	}
	return UTF8
}

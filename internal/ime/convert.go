package ime

import "unicode/utf16"

// UTF16Length returns s's length in UTF-16 code units (what the
// platform's selectedRange/markedRange expect), not bytes or runes.
func UTF16Length(s string) int {
	return len(utf16.Encode([]rune(s)))
}

// ByteOffsetToUTF16 converts a byte offset within s (must fall on a rune
// boundary) to a UTF-16 code unit offset.
func ByteOffsetToUTF16(s string, byteOffset int) int {
	units := 0
	b := 0
	for _, r := range s {
		if b >= byteOffset {
			break
		}
		b += runeLen(r)
		if r > 0xFFFF {
			units += 2
		} else {
			units++
		}
	}
	return units
}

// UTF16OffsetToByte converts a UTF-16 code unit offset back to a byte
// offset within s.
func UTF16OffsetToByte(s string, utf16Offset int) int {
	units := 0
	for i, r := range s {
		if units >= utf16Offset {
			return i
		}
		if r > 0xFFFF {
			units += 2
		} else {
			units++
		}
	}
	return len(s)
}

func runeLen(r rune) int {
	switch {
	case r < 0x80:
		return 1
	case r < 0x800:
		return 2
	case r < 0x10000:
		return 3
	default:
		return 4
	}
}

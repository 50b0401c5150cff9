package scanner

func IsSpace[T byte | rune](b T) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func IsDigit[T byte | rune](b T) bool {
	return b >= '0' && b <= '9'
}

func IsNonZeroDigit[T byte | rune](b T) bool {
	return b >= '1' && b <= '9'
}

func IsHexDigit[T byte | rune](b T) bool {
	return IsDigit(b) || b >= 'a' && b <= 'f' || b >= 'A' && b <= 'F'
}

// IsNumberStart reports whether b may begin a number.  A leading '.' is
// tolerated here and rejected later if no digits follow.
func IsNumberStart[T byte | rune](b T) bool {
	return b == '-' || b == '.' || IsDigit(b)
}

func IsExponent[T byte | rune](b T) bool {
	return b == 'e' || b == 'E'
}

func IsSign[T byte | rune](b T) bool {
	return b == '-' || b == '+'
}

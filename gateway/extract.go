package gateway

// ExtractObject scans text for the first top-level balanced {...} substring.
// The model is instructed to return bare JSON but routinely wraps it in
// commentary or ```json fences; both are tolerated because only the object
// itself is consumed. Returns false when no balanced object exists.
func ExtractObject(text string) ([]byte, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(text); i++ {
		c := text[i]

		if start == -1 {
			if c == '{' {
				start = i
				depth = 1
			}
			continue
		}

		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return []byte(text[start : i+1]), true
				}
			}
		}
	}
	return nil, false
}

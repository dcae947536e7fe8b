package util

// Safe accessors for decoded JSON documents. The backend's schemas vary per
// document type and documents may be hand-edited, so every lookup tolerates
// missing keys and wrong types, returning the zero value instead of failing.

// SafeString returns the string at key, or "" if missing/wrong type.
func SafeString(m map[string]interface{}, key string) string {
	if m == nil {
		return ""
	}
	val, ok := m[key].(string)
	if !ok {
		return ""
	}
	return val
}

// SafeSlice returns the slice at key, or nil if missing/wrong type.
func SafeSlice(m map[string]interface{}, key string) []interface{} {
	if m == nil {
		return nil
	}
	val, ok := m[key].([]interface{})
	if !ok {
		return nil
	}
	return val
}

// SafeStringSlice returns the string elements of the slice at key.
// Non-string elements are skipped. Returns nil if the key is missing or
// holds something other than a slice.
func SafeStringSlice(m map[string]interface{}, key string) []string {
	raw := SafeSlice(m, key)
	if raw == nil {
		return nil
	}
	var result []string
	for _, v := range raw {
		if s, ok := v.(string); ok {
			result = append(result, s)
		}
	}
	return result
}

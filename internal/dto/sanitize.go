package dto

// StripBlanks removes keys whose value is an empty string from a patch map,
// e.g. {"title": "", "color": "blue"} -> {"color": "blue"}. Clients send every
// form field on PATCH; an empty string means "not provided", not "clear it".
func StripBlanks(form map[string]interface{}) map[string]interface{} {
	if form == nil {
		return nil
	}
	out := make(map[string]interface{}, len(form))
	for k, v := range form {
		if s, ok := v.(string); ok && s == "" {
			continue
		}
		out[k] = v
	}
	return out
}

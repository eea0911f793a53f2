package mapitem

import "encoding/json"

// Nameless is returned by ExtractName for banners without a custom name.
const Nameless = "[nameless]"

// ExtractName returns the plain text name of the banner. The stored name
// is JSON text: either an object with a "text" field or a bare string. If
// neither parses the stored name is returned unchanged.
func (b Banner) ExtractName() string {
	if b.Name == nil {
		return Nameless
	}

	var object struct {
		Text *string `json:"text"`
	}
	if err := json.Unmarshal([]byte(*b.Name), &object); err == nil && object.Text != nil {
		return *object.Text
	}

	var s *string
	if err := json.Unmarshal([]byte(*b.Name), &s); err == nil && s != nil {
		return *s
	}

	return *b.Name
}

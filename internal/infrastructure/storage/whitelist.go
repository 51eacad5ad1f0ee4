package storage

// Whitelist is the set of MIME types accepted for upload. Membership is
// exact-string: no case folding, no parameter stripping. Loaded once at
// process start, never mutated afterwards.
type Whitelist map[string]struct{}

func NewWhitelist(contentTypes []string) Whitelist {
	w := make(Whitelist, len(contentTypes))
	for _, ct := range contentTypes {
		w[ct] = struct{}{}
	}
	return w
}

func (w Whitelist) Allow(contentType string) error {
	if _, ok := w[contentType]; !ok {
		return ErrForbiddenMimeType
	}
	return nil
}

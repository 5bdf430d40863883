package models

// Validate checks the follower and author references. Self-follows pass;
// only the follow action skips them.
func (f *Follow) Validate() error {
	return validate.Struct(f)
}

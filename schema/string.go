package schema

// String is a bare string schema, used for free-form prompts and tool payloads.
type String string

func (s String) Attachement() *Attachement {
	return nil
}

func (s String) String() string {
	return string(s)
}

func (s *String) Unmarshal(bs []byte) error {
	*s = String(bs)
	return nil
}

package schema

// Base is embedded by concrete schemas to satisfy the Schema interface.
type Base struct {
	attachement *Attachement `json:"-"`
}

// Attachement returns the schema attachement
func (b Base) Attachement() *Attachement {
	return b.attachement
}

func (b *Base) SetAttachement(v *Attachement) {
	b.attachement = v
}

package domain

// NewMobile declares a mobile app container
func NewMobile(alias, label, technology, description string) (*Container, error) {
	return NewContainer(alias, label, ContainerTypeMobile, technology, description)
}

// DeclareMobile declares a mobile app container for a kind
func DeclareMobile[K Kind](technology, description string) (*Container, error) {
	return Declare[K](ContainerTypeMobile, technology, description)
}

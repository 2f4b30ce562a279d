package catalog

type Kind string

const (
	KindCar  Kind = "car"
	KindGear Kind = "gear"
)

func (k Kind) String() string {
	return string(k)
}

func (k Kind) IsValid() bool {
	switch k {
	case KindCar, KindGear:
		return true
	default:
		return false
	}
}

package plugin

// Kind identifies where a plugin sits in the application order.
type Kind string

const (
	// KindOptions injects the resolved entry, target and arguments. Always first.
	KindOptions Kind = "options"

	// KindFramework covers the fixed transform and lint stages.
	KindFramework Kind = "framework"

	// KindGlobal fills in defaults after every earlier stage has run.
	KindGlobal Kind = "global"

	// KindProject is a plugin declared in the project configuration.
	KindProject Kind = "project"
)

// IsValid returns true if the kind is recognized.
func (k Kind) IsValid() bool {
	switch k {
	case KindOptions, KindFramework, KindGlobal, KindProject:
		return true
	default:
		return false
	}
}

// String returns the string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

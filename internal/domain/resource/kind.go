package resource

// Kind names a resource (wood, stone, food...). The set of valid kinds is the
// reference table held by the production catalog and is checked when it loads.
type Kind string

func (k Kind) String() string {
	return string(k)
}

func (k Kind) IsZero() bool {
	return k == ""
}

//go:build !icicle

package gpu

// HasIcicle reports whether the icicle backend is compiled in.
const HasIcicle = false

// NewEngine fails when the binary was built without the icicle build tag.
func NewEngine() (Engine, error) {
	return nil, ErrNoDevice
}

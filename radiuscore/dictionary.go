package radiuscore

import (
	"strings"
	"sync"
)

// Vendor is a RADIUS vendor registered by a VENDOR directive. Identity is
// the lowercased name.
type Vendor struct {
	Name string
	ID   uint32
}

// EnumValue is one VALUE entry attached to an AttributeDef.
type EnumValue struct {
	Label string
	Value WireValue
}

// AttributeDef is one ATTRIBUTE directive. Identity is the lowercased name;
// Code is unique only within its Vendor scope (including the no-vendor
// scope).
type AttributeDef struct {
	Name             string
	Code             byte
	WireType         TypeTag
	Vendor           *Vendor
	EnumeratedValues []EnumValue
}

// ResolveEnum reports whether value matches one of def's enumerated values,
// comparing by parsed value rather than by label (spec 4.3). An attribute
// with no enumerated values allows anything.
func (d *AttributeDef) ResolveEnum(value WireValue) bool {
	if len(d.EnumeratedValues) == 0 {
		return true
	}
	for _, ev := range d.EnumeratedValues {
		if Equal(ev.Value, value) {
			return true
		}
	}
	return false
}

// Dictionary is the read-only, process-wide catalog of attributes and
// vendors built by loading one or more FreeRADIUS-style text files.
type Dictionary struct {
	Attributes map[string]*AttributeDef
	Vendors    map[string]*Vendor
}

func newDictionary() *Dictionary {
	return &Dictionary{
		Attributes: make(map[string]*AttributeDef),
		Vendors:    make(map[string]*Vendor),
	}
}

// FindAttribute looks up an attribute by name, case insensitively.
func (d *Dictionary) FindAttribute(name string) (*AttributeDef, error) {
	def, ok := d.Attributes[strings.ToLower(name)]
	if !ok {
		return nil, &UnknownAttributeError{Name: name}
	}
	return def, nil
}

// FindVendor looks up a vendor by name, case insensitively.
func (d *Dictionary) FindVendor(name string) (*Vendor, error) {
	v, ok := d.Vendors[strings.ToLower(name)]
	if !ok {
		return nil, &UnknownAttributeError{Name: name}
	}
	return v, nil
}

var (
	globalDictOnce sync.Once
	globalDict     *Dictionary
	globalDictErr  error
	globalDictPath string
	globalDictFile string
)

// Configure sets the path and root filename used by GlobalDictionary on
// first access. Mirrors the Python original's initialize(dict_path,
// dict_file)/get_dictionary() split (original_source/libradi/dictionary.py):
// parameters are recorded ahead of time, the catalog itself is built lazily
// and only once per process.
func Configure(path, filename string) {
	globalDictPath = path
	globalDictFile = filename
}

// GlobalDictionary returns the process-wide Dictionary, building it on the
// first call via sync.Once (spec 9: "a one-shot initialized shared resource
// with load-once semantics; never as hidden mutable global"). Subsequent
// calls return the same instance and the same error, if any.
func GlobalDictionary() (*Dictionary, error) {
	globalDictOnce.Do(func() {
		globalDict, globalDictErr = LoadDictionary(globalDictPath, globalDictFile)
	})
	return globalDict, globalDictErr
}

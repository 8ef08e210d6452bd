package radiuscore

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// pendingValue is a buffered VALUE tuple: the literal is not parsed until
// every file has been read, because the attribute it names may be defined
// later in the same file or in a file included later (spec 4.2 step 3).
type pendingValue struct {
	attrName string
	label    string
	literal  string
}

// loadState accumulates a Dictionary across one root file and its
// transitive $INCLUDEs, grounded on core/freeradius_parser.go's recursive
// single-pass walk generalized to build the final Dictionary directly
// instead of through a JSON intermediate (spec 4.2: no jRadiusDict here).
type loadState struct {
	dict          *Dictionary
	pending       []pendingValue
	visitedFiles  map[string]bool
	currentVendor *Vendor
}

// LoadDictionary parses the dictionary file at filepath.Join(path, filename)
// and every file it $INCLUDEs, returning a fully resolved Dictionary.
func LoadDictionary(path, filename string) (*Dictionary, error) {
	st := &loadState{
		dict:         newDictionary(),
		visitedFiles: make(map[string]bool),
	}

	root := filepath.Join(path, filename)
	if err := st.parseFile(root); err != nil {
		return nil, err
	}

	for _, pv := range st.pending {
		def, err := st.dict.FindAttribute(pv.attrName)
		if err != nil {
			return nil, &DictionaryIoError{Path: root, Err: &UnknownAttributeError{Name: pv.attrName}}
		}
		value, err := ParseByTag(def.WireType, pv.literal, 1)
		if err != nil {
			return nil, &DictionaryIoError{Path: root, Err: err}
		}
		def.EnumeratedValues = append(def.EnumeratedValues, EnumValue{Label: pv.label, Value: value})
	}

	return st.dict, nil
}

// parseFile reads one dictionary file and recurses into its $INCLUDEs.
// Paths are canonicalized so a cycle is a no-op rather than infinite
// recursion (spec 9 open question, not handled in the original source).
func (st *loadState) parseFile(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return &DictionaryIoError{Path: path, Err: err}
	}
	abs = filepath.Clean(abs)
	if st.visitedFiles[abs] {
		return nil
	}
	st.visitedFiles[abs] = true

	f, err := os.Open(abs)
	if err != nil {
		return &DictionaryIoError{Path: path, Err: err}
	}
	defer f.Close()

	dir := filepath.Dir(abs)
	savedVendor := st.currentVendor
	st.currentVendor = nil

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if cpos := strings.IndexByte(line, '#'); cpos >= 0 {
			line = line[:cpos]
			line = strings.TrimSpace(line)
		}
		if line == "" {
			continue
		}

		words := strings.Fields(line)
		switch words[0] {
		case "$INCLUDE":
			if len(words) < 2 {
				continue
			}
			includePath := words[1]
			if !filepath.IsAbs(includePath) {
				includePath = filepath.Join(dir, includePath)
			}
			if err := st.parseFile(includePath); err != nil {
				return err
			}

		case "VENDOR":
			if len(words) < 3 {
				continue
			}
			st.registerVendor(words[1], words[2])

		case "BEGIN-VENDOR":
			if len(words) < 2 {
				continue
			}
			v, err := st.dict.FindVendor(words[1])
			if err != nil {
				return &DictionaryIoError{Path: abs, Err: err}
			}
			st.currentVendor = v

		case "END-VENDOR":
			st.currentVendor = nil

		case "ATTRIBUTE":
			if len(words) < 4 {
				continue
			}
			st.registerAttribute(words[1], words[2], words[3])

		case "VALUE":
			if len(words) < 4 {
				continue
			}
			st.pending = append(st.pending, pendingValue{
				attrName: words[1],
				label:    words[2],
				literal:  words[3],
			})
		}
	}
	if err := scanner.Err(); err != nil {
		return &DictionaryIoError{Path: abs, Err: err}
	}

	st.currentVendor = savedVendor
	return nil
}

func (st *loadState) registerVendor(name, idLiteral string) {
	key := strings.ToLower(name)
	if _, exists := st.dict.Vendors[key]; exists {
		return
	}
	id, err := strconv.ParseUint(idLiteral, 10, 32)
	if err != nil {
		return
	}
	st.dict.Vendors[key] = &Vendor{Name: name, ID: uint32(id)}
}

func (st *loadState) registerAttribute(name, codeLiteral, typeLiteral string) {
	code, err := strconv.ParseUint(codeLiteral, 10, 8)
	if err != nil {
		return
	}
	tag, err := ParseTypeTag(typeLiteral)
	if err != nil {
		return
	}
	key := strings.ToLower(name)
	st.dict.Attributes[key] = &AttributeDef{
		Name:     name,
		Code:     byte(code),
		WireType: tag,
		Vendor:   st.currentVendor,
	}
}

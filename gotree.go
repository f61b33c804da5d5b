package jsontree

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// FromGo reads in a Go-value and generates a tree with text and spans.
// Map keys are emitted sorted, struct fields honor the name, "-",
// omitempty and string options of their json tag.
func FromGo(val interface{}) (*Tree, error) {
	nodes, err := buildGo(RootID, val)
	if err != nil {
		return nil, err
	}
	t := &Tree{nodes: nodes}
	t.Stringify()
	t.version = 0
	return t, nil
}

// buildGo creates the nodes for val, rooted at id. The nodes have no spans.
func buildGo(id string, val interface{}) (map[string]*Node, error) {
	nodes := make(map[string]*Node)
	if err := goNode(nodes, id, "", reflect.ValueOf(val)); err != nil {
		return nil, err
	}
	return nodes, nil
}

// goNode adds the node for v under id. rawKey is the key token of an
// object member.
func goNode(nodes map[string]*Node, id, rawKey string, v reflect.Value) error {
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			break
		}
		v = v.Elem()
	}
	n := &Node{ID: id, RawKey: rawKey}
	nodes[id] = n
	if !v.IsValid() || ((v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface ||
		v.Kind() == reflect.Map || v.Kind() == reflect.Slice) && v.IsNil()) {
		n.Type, n.Raw = Null, "null"
		return nil
	}
	switch v.Kind() {
	case reflect.Bool:
		n.Type, n.Value, n.Raw = Bool, v.Bool(), strconv.FormatBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n.Type, n.Value, n.Raw = Number, float64(v.Int()), strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n.Type, n.Value, n.Raw = Number, float64(v.Uint()), strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		if f := v.Float(); math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("unsupported number %v", f)
		}
		n.Type, n.Value, n.Raw = Number, v.Float(), strconv.FormatFloat(v.Float(), 'g', -1, v.Type().Bits())
	case reflect.String:
		n.Type, n.Value, n.Raw = String, v.String(), quote(v.String())
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			s := string(v.Bytes())
			n.Type, n.Value, n.Raw = String, s, quote(s)
			return nil
		}
		fallthrough
	case reflect.Array:
		n.Type = Array
		for i := 0; i < v.Len(); i++ {
			k := Index(i)
			n.Keys = append(n.Keys, k)
			if err := goNode(nodes, ChildID(id, k), "", v.Index(i)); err != nil {
				return err
			}
		}
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("invalid map key type %s", v.Type().Key())
		}
		n.Type = Object
		names := make([]string, 0, v.Len())
		for _, key := range v.MapKeys() {
			if !utf8.ValidString(key.String()) {
				return fmt.Errorf("invalid UTF-8 in map key %q", key.String())
			}
			names = append(names, key.String())
		}
		sort.Strings(names)
		for _, name := range names {
			k := Field(name)
			n.Keys = append(n.Keys, k)
			elem := v.MapIndex(reflect.ValueOf(name).Convert(v.Type().Key()))
			if err := goNode(nodes, ChildID(id, k), quote(name), elem); err != nil {
				return err
			}
		}
	case reflect.Struct:
		n.Type = Object
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			elemT := t.Field(i)
			if r, _ := utf8.DecodeRuneInString(elemT.Name); !unicode.IsUpper(r) {
				continue
			}
			tags := strings.Split(elemT.Tag.Get("json"), ",")
			if tags[0] == "-" && len(tags) == 1 {
				continue
			}
			name := tags[0]
			if name == "" {
				name = elemT.Name
			}
			if !utf8.ValidString(name) {
				return fmt.Errorf("invalid UTF-8 in field name %q", name)
			}
			var omitempty, strfy bool
			for _, tag := range tags[1:] {
				switch tag {
				case "omitempty":
					omitempty = true
				case "string":
					strfy = true
				}
			}
			if omitempty && isEmptyValue(v.Field(i)) {
				continue
			}
			k := Field(name)
			cid := ChildID(id, k)
			if _, dup := nodes[cid]; dup {
				return fmt.Errorf("duplicate field %q in %s", name, t)
			}
			n.Keys = append(n.Keys, k)
			if err := goNode(nodes, cid, quote(name), v.Field(i)); err != nil {
				return err
			}
			if c := nodes[cid]; strfy && (c.Type == Bool || c.Type == Number || c.Type == String) {
				c.Type, c.Value, c.Raw = String, c.Raw, quote(c.Raw)
			}
		}
	default:
		return fmt.Errorf("invalid type %s", v.Kind())
	}
	return nil
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Ptr:
		return v.IsNil()
	}
	return false
}

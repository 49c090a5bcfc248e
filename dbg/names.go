package dbg

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	petname "github.com/dustinkirkland/golang-petname"
)

// This converts arbitrary values into random readable names. It flagrantly
// leaks memory but generates the names lazily, so it's not a problem unless
// you're actually using it. Face 812 and face 821 are easy to mix up in a
// dump; BraveOtter and QuietMole are not.

var memo map[any]string

func init() {
	memo = make(map[any]string)
	// Since the ids are generated in order of demand, we make them
	// nondeterministic to remind the user that the same name doesn't refer to
	// the same thing between runs.
	petname.NonDeterministicMode()
}

// Name returns the readable name for a comparable value, creating one on
// first use.
func Name(obj any) string {
	if obj == nil {
		return "Ø"
	}
	if v := reflect.ValueOf(obj); v.Kind() == reflect.Pointer && v.IsNil() {
		return "Ø"
	}

	if r, ok := memo[obj]; ok {
		return r
	}
	r := fmt.Sprintf("%s%s", strings.Title(petname.Adjective()), strings.Title(petname.Name()))
	memo[obj] = r
	return r
}

// TempPath returns a fresh path in the temp directory for a debug artifact.
func TempPath(ext string) string {
	return filepath.Join(os.TempDir(), "cdt-"+petname.Generate(2, "-")+ext)
}

// Package structdiff compares two parsed documents (maps, slices,
// scalars) and renders one display row per differing leaf, addressed by
// a dotted key path with [n] array indices.
package structdiff

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/samsaffron/term-diff/internal/render"
)

// Options controls row formatting.
type Options struct {
	Width  int           // wrap width, <= 0 uses the render default
	Styler render.Styler // zero value renders plain rows
}

// Walk compares two document trees and returns one row per leaf
// difference:
//
//	path = oldValue -> newValue   changed leaf
//	- path = value                leaf only under old
//	+ path = value                leaf only under new
//
// Map keys are visited in sorted order. Equal inputs produce no rows.
func Walk(oldVal, newVal any, opts Options) []string {
	w := &walker{
		opts:       opts,
		visitedOld: map[uintptr]bool{},
		visitedNew: map[uintptr]bool{},
	}
	w.walk("", oldVal, newVal)
	return w.rows
}

type walker struct {
	opts Options
	rows []string

	// ancestry guards, one per document side
	visitedOld map[uintptr]bool
	visitedNew map[uintptr]bool
}

func (w *walker) walk(path string, oldVal, newVal any) {
	switch oldTyped := oldVal.(type) {
	case map[string]any:
		if newTyped, ok := newVal.(map[string]any); ok {
			release, ok := w.enterBoth(path, oldVal, newVal)
			if !ok {
				return
			}
			defer release()
			w.walkMaps(path, oldTyped, newTyped)
			return
		}
	case []any:
		if newTyped, ok := newVal.([]any); ok {
			release, ok := w.enterBoth(path, oldVal, newVal)
			if !ok {
				return
			}
			defer release()
			w.walkSlices(path, oldTyped, newTyped)
			return
		}
	}

	if leafEqual(oldVal, newVal) {
		return
	}
	// Mismatched kinds render as a removal of the old subtree followed
	// by an addition of the new one.
	if isContainer(oldVal) || isContainer(newVal) {
		w.removedTree(path, oldVal)
		w.addedTree(path, newVal)
		return
	}
	w.changed(path, oldVal, newVal)
}

// enterBoth registers a matched container pair on both ancestry stacks. A
// side that is already its own ancestor emits one cycle row instead.
func (w *walker) enterBoth(path string, oldVal, newVal any) (func(), bool) {
	oldRef, ok := enter(w.visitedOld, oldVal)
	if !ok {
		w.cycle(path)
		return nil, false
	}
	newRef, ok := enter(w.visitedNew, newVal)
	if !ok {
		leave(w.visitedOld, oldRef)
		w.cycle(path)
		return nil, false
	}
	return func() {
		leave(w.visitedOld, oldRef)
		leave(w.visitedNew, newRef)
	}, true
}

func (w *walker) walkMaps(path string, oldMap, newMap map[string]any) {
	keys := make([]string, 0, len(oldMap)+len(newMap))
	for k := range oldMap {
		keys = append(keys, k)
	}
	for k := range newMap {
		if _, ok := oldMap[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	for _, k := range keys {
		oldChild, inOld := oldMap[k]
		newChild, inNew := newMap[k]
		cp := childPath(path, k)
		switch {
		case inOld && inNew:
			w.walk(cp, oldChild, newChild)
		case inOld:
			w.removedTree(cp, oldChild)
		default:
			w.addedTree(cp, newChild)
		}
	}
}

func (w *walker) walkSlices(path string, oldSlice, newSlice []any) {
	n := len(oldSlice)
	if len(newSlice) > n {
		n = len(newSlice)
	}
	for i := 0; i < n; i++ {
		cp := childPath(path, strconv.Itoa(i))
		switch {
		case i < len(oldSlice) && i < len(newSlice):
			w.walk(cp, oldSlice[i], newSlice[i])
		case i < len(oldSlice):
			w.removedTree(cp, oldSlice[i])
		default:
			w.addedTree(cp, newSlice[i])
		}
	}
}

// removedTree emits one removed row per leaf under v.
func (w *walker) removedTree(path string, v any) {
	ref, ok := enter(w.visitedOld, v)
	if !ok {
		w.push(w.styleRemoved(fmt.Sprintf("- %s = <cycle>", path)))
		return
	}
	defer leave(w.visitedOld, ref)

	switch val := v.(type) {
	case map[string]any:
		if len(val) == 0 {
			break
		}
		for _, k := range sortedKeys(val) {
			w.removedTree(childPath(path, k), val[k])
		}
		return
	case []any:
		if len(val) == 0 {
			break
		}
		for i, item := range val {
			w.removedTree(childPath(path, strconv.Itoa(i)), item)
		}
		return
	}
	w.push(w.styleRemoved(fmt.Sprintf("- %s = %s", path, formatValue(v))))
}

// addedTree emits one added row per leaf under v.
func (w *walker) addedTree(path string, v any) {
	ref, ok := enter(w.visitedNew, v)
	if !ok {
		w.push(w.styleAdded(fmt.Sprintf("+ %s = <cycle>", path)))
		return
	}
	defer leave(w.visitedNew, ref)

	switch val := v.(type) {
	case map[string]any:
		if len(val) == 0 {
			break
		}
		for _, k := range sortedKeys(val) {
			w.addedTree(childPath(path, k), val[k])
		}
		return
	case []any:
		if len(val) == 0 {
			break
		}
		for i, item := range val {
			w.addedTree(childPath(path, strconv.Itoa(i)), item)
		}
		return
	}
	w.push(w.styleAdded(fmt.Sprintf("+ %s = %s", path, formatValue(v))))
}

func (w *walker) changed(path string, oldVal, newVal any) {
	w.push(fmt.Sprintf("%s = %s -> %s", path,
		w.styleRemoved(formatValue(oldVal)),
		w.styleAdded(formatValue(newVal))))
}

func (w *walker) cycle(path string) {
	w.push(fmt.Sprintf("%s = %s", path, w.styleMarker("<cycle>")))
}

func (w *walker) push(row string) {
	width := w.opts.Width
	if width <= 0 {
		width = render.DefaultWidth
	}
	w.rows = append(w.rows, strings.Split(render.Wrap(row, 2, width), "\n")...)
}

func (w *walker) styleRemoved(s string) string {
	if w.opts.Styler.Removed == nil {
		return s
	}
	return w.opts.Styler.Removed(s)
}

func (w *walker) styleAdded(s string) string {
	if w.opts.Styler.Added == nil {
		return s
	}
	return w.opts.Styler.Added(s)
}

func (w *walker) styleMarker(s string) string {
	if w.opts.Styler.Marker == nil {
		return s
	}
	return w.opts.Styler.Marker(s)
}

var allDigits = regexp.MustCompile(`^[0-9]+$`)

// childPath appends a key to a path: all-digit keys use bracket index
// notation, string keys dot notation (bare at the root).
func childPath(path, key string) string {
	if allDigits.MatchString(key) {
		return path + "[" + key + "]"
	}
	if path == "" {
		return key
	}
	return path + "." + key
}

// enter registers a container on the ancestry stack. Reports false if
// the container is already an ancestor of itself.
func enter(visited map[uintptr]bool, v any) (uintptr, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice:
		if rv.IsNil() || rv.Len() == 0 {
			return 0, true
		}
		p := rv.Pointer()
		if visited[p] {
			return 0, false
		}
		visited[p] = true
		return p, true
	}
	return 0, true
}

func leave(visited map[uintptr]bool, ref uintptr) {
	if ref != 0 {
		delete(visited, ref)
	}
}

func isContainer(v any) bool {
	switch v.(type) {
	case map[string]any, []any:
		return true
	}
	return false
}

// leafEqual compares scalars, normalizing numeric types so YAML's int
// and JSON's float64 representations of the same number compare equal.
func leafEqual(a, b any) bool {
	if na, ok := toFloat(a); ok {
		nb, ok := toFloat(b)
		return ok && na == nb
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(val)
	case map[string]any:
		if len(val) == 0 {
			return "{}"
		}
		return "{...}"
	case []any:
		if len(val) == 0 {
			return "[]"
		}
		return "[...]"
	default:
		return fmt.Sprintf("%v", val)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package main

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"github.com/Tnze/go-mc/nbt"
	"github.com/klauspost/compress/gzip"
)

// Arrays at least this long are summarised
const maxArrayValues = 8

func array[T any](kind, name string, values []T) string {
	if len(values) < maxArrayValues {
		return fmt.Sprintf("%s: %s = %v", kind, name, values)
	}
	return fmt.Sprintf("%s: %s = [%d values]", kind, name, len(values))
}

func describe(name string, v any) string {
	switch v := v.(type) {
	case int8:
		return fmt.Sprintf("Byte: %s = %d", name, v)
	case uint8:
		return fmt.Sprintf("Byte: %s = %d", name, int8(v))
	case int16:
		return fmt.Sprintf("Short: %s = %d", name, v)
	case int32:
		return fmt.Sprintf("Int: %s = %d", name, v)
	case int64:
		return fmt.Sprintf("Long: %s = %d", name, v)
	case float32:
		return fmt.Sprintf("Float: %s = %g", name, v)
	case float64:
		return fmt.Sprintf("Double: %s = %g", name, v)
	case string:
		return fmt.Sprintf("String: %s = %q", name, v)
	case []byte:
		return array("ByteArray", name, v)
	case []int8:
		return array("ByteArray", name, v)
	case []int32:
		return array("IntArray", name, v)
	case []int64:
		return array("LongArray", name, v)
	case []any:
		return fmt.Sprintf("List: %s ×%d", name, len(v))
	case map[string]any:
		return fmt.Sprintf("Compound: %s", name)
	}
	return fmt.Sprintf("%T: %s = %v", v, name, v)
}

func printTag(w io.Writer, prefix string, last bool, name string, v any) {
	branch, indent := "├── ", "│   "
	if last {
		branch, indent = "└── ", "    "
	}
	fmt.Fprintf(w, "%s%s%s\n", prefix, branch, describe(name, v))

	prefix += indent
	switch v := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for i, k := range keys {
			printTag(w, prefix, i == len(keys)-1, k, v[k])
		}
	case []any:
		for i, e := range v {
			printTag(w, prefix, i == len(v)-1, "", e)
		}
	}
}

// dump prints the tag tree of the gzip compressed NBT stream r under the
// heading name. Compound entries are sorted by name.
func dump(w io.Writer, name string, r io.Reader) error {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return err
	}
	defer zr.Close()

	root := make(map[string]any)
	rootName, err := nbt.NewDecoder(zr).Decode(&root)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, name)
	printTag(bw, "", true, rootName, root)

	return bw.Flush()
}

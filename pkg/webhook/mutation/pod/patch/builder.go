package patch

import (
	"strconv"
	"strings"

	"gomodules.xyz/jsonpatch/v2"
)

const (
	OpAdd     = "add"
	OpReplace = "replace"

	appendMarker = "-"
)

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// Builder collects JSON Patch operations in the order they have to be applied.
type Builder struct {
	operations []jsonpatch.JsonPatchOperation
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) Replace(path string, value any) {
	b.operations = append(b.operations, jsonpatch.NewOperation(OpReplace, path, value))
}

func (b *Builder) Add(path string, value any) {
	b.operations = append(b.operations, jsonpatch.NewOperation(OpAdd, path, value))
}

func (b *Builder) Len() int {
	return len(b.operations)
}

func (b *Builder) Operations() []jsonpatch.JsonPatchOperation {
	return b.operations
}

// AddToList adds items to the list at listPath. A populated list gets one append per item,
// an absent or empty list is created with all items in a single operation.
// Appends never depend on indices, so earlier operations on the same list can't shift them.
func AddToList[T any](b *Builder, listPath string, populated bool, items ...T) {
	if len(items) == 0 {
		return
	}

	if !populated {
		b.Add(listPath, items)

		return
	}

	for _, item := range items {
		b.Add(Path(listPath, appendMarker), item)
	}
}

// Path joins a JSON pointer from a base pointer and reference tokens, escaping "~" and "/" in the tokens.
func Path(base string, tokens ...string) string {
	var sb strings.Builder

	sb.WriteString(base)

	for _, token := range tokens {
		sb.WriteByte('/')
		sb.WriteString(pointerEscaper.Replace(token))
	}

	return sb.String()
}

// Index is the reference token of a list position.
func Index(i int) string {
	return strconv.Itoa(i)
}

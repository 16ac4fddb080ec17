package jsonutil

import (
	"bytes"
	"io"

	"github.com/fatih/structs"
	"github.com/hokaccha/go-prettyjson"
)

var formatter *prettyjson.Formatter

func init() {
	formatter = prettyjson.NewFormatter()
	formatter.Indent = 0
	formatter.Newline = ""
}

// SetColor enables or disables color output.
func SetColor(enabled bool) {
	formatter.DisabledColor = !enabled
}

// MarshalCompactPretty formats the exported fields of struct v, one "Name: value" per line,
// in the order they are declared, with JSON values colored.
func MarshalCompactPretty(v any) ([]byte, error) {
	var buf bytes.Buffer
	for _, field := range structs.New(v).Fields() {
		if !field.IsExported() {
			continue
		}
		b, err := formatter.Marshal(field.Value())
		if err != nil {
			return nil, err
		}
		buf.WriteString(field.Name())
		buf.WriteString(": ")
		buf.Write(b)
		buf.WriteRune('\n')
	}
	return buf.Bytes(), nil
}

// Fprint writes v to w formatted with MarshalCompactPretty.
func Fprint(w io.Writer, v any) error {
	b, err := MarshalCompactPretty(v)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

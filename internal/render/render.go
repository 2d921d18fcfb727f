// package render turns a document into the plain text the browser prints.
// It knows nothing about the network: tags are dropped, &lt; and &gt; are
// decoded and every other entity is kept as written.
package render

import (
	"bufio"
	"io"
	"strings"
	"unicode"
)

var entities = map[string]string{
	"&lt;": "<",
	"&gt;": ">",
}

// Show writes the text content of body to w.
func Show(w io.Writer, body string) error {
	bw := bufio.NewWriter(w)
	inTag := false
	var entity strings.Builder
	flush := func() {
		bw.WriteString(entity.String())
		entity.Reset()
	}

	for _, c := range body {
		switch {
		case c == '<':
			flush()
			inTag = true
		case c == '>':
			inTag = false
		case inTag:
		case c == '&':
			flush()
			entity.WriteRune(c)
		case entity.Len() > 0:
			if unicode.IsSpace(c) {
				flush()
				bw.WriteRune(c)
				continue
			}
			entity.WriteRune(c)
			if c == ';' {
				if s, ok := entities[entity.String()]; ok {
					bw.WriteString(s)
					entity.Reset()
				} else {
					flush()
				}
			}
		default:
			bw.WriteRune(c)
		}
	}
	flush()
	return bw.Flush()
}

// Text is [Show] into a string.
func Text(body string) string {
	var sb strings.Builder
	Show(&sb, body)
	return sb.String()
}

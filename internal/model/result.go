package model

// Kind tells the content of a [Result] from the soft failures the engine
// reports in its place.
type Kind int

const (
	KindDocument Kind = iota
	KindFileNotFound
	KindMalformedData
	KindDecodeError
	KindTooManyRedirects
)

var kindNames = [...]string{
	KindDocument:         "document",
	KindFileNotFound:     "file not found",
	KindMalformedData:    "malformed data url",
	KindDecodeError:      "decode error",
	KindTooManyRedirects: "too many redirects",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

const (
	MsgMalformedData    = "Malformed data: URL"
	MsgTooManyRedirects = "Too many redirects"
)

// Result is the outcome of a fetch that did not fail fatally. For any Kind
// but KindDocument, Text holds a user readable message.
type Result struct {
	Kind Kind
	Text string

	// ViewSource is set when the text must be shown verbatim.
	ViewSource bool
}

func Document(text string) Result {
	return Result{Kind: KindDocument, Text: text}
}

func Failure(kind Kind, msg string) Result {
	return Result{Kind: kind, Text: msg}
}

func (r Result) OK() bool {
	return r.Kind == KindDocument
}

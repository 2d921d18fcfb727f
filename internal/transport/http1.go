package transport

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/http/httpguts"

	"github.com/frankli0324/go-browse/internal/model"
)

type HTTP1 struct{}

// Write writes the request line and headers of a GET request, e.g.:
//
//	GET / HTTP/1.1\r\n
//	Host: www.example.com\r\n
//	Connection: keep-alive\r\n
//	User-Agent: go-browse/0.1\r\n
//	\r\n
//
// header order is fixed and nothing follows the blank line.
func (t HTTP1) Write(w io.Writer, r *model.Request) error {
	header := bufio.NewWriter(w) // default bufsize is 4096

	header.WriteString("GET ")
	header.WriteString(r.URL.RequestURI())
	header.WriteString(" HTTP/1.1\r\n")

	header.WriteString("Host: ")
	header.WriteString(r.URL.HostHeader())
	header.WriteString("\r\nConnection: keep-alive\r\n")
	header.WriteString("User-Agent: ")
	header.WriteString(r.UserAgent)
	if _, err := header.WriteString("\r\n\r\n"); err != nil {
		return err
	}
	return header.Flush()
}

// MaxHeaderBytes bounds the status line plus header block of a response.
const MaxHeaderBytes = 1 << 20

// preamble reads the CRLF or LF terminated lines of a response preamble,
// failing once more than MaxHeaderBytes were consumed.
type preamble struct {
	br   *bufio.Reader
	left int
}

func (p *preamble) readLine() (string, error) {
	var line []byte
	for {
		frag, err := p.br.ReadSlice('\n')
		if p.left -= len(frag); p.left < 0 {
			return "", ErrHeaderTooLarge
		}
		line = append(line, frag...)
		if err == bufio.ErrBufferFull {
			continue
		}
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return "", err
		}
		line = bytes.TrimSuffix(line[:len(line)-1], []byte{'\r'})
		return string(line), nil
	}
}

// Read parses the status line and headers from br and frames the body.
// resp.Body reads from br, so br must not be used for anything else
// until the body is consumed.
func (t HTTP1) Read(br *bufio.Reader, resp *model.Response) (err error) {
	if _, err := br.Peek(1); err != nil {
		return wrapErr{ErrNoResponse, err}
	}
	p := &preamble{br: br, left: MaxHeaderBytes}

	line, err := p.readLine()
	if err != nil {
		return err
	}
	proto, status, ok := strings.Cut(line, " ")
	if !ok {
		return &ProtocolError{"missing status code", line}
	}
	resp.Proto, resp.Status = proto, status

	statusCode, reason, _ := strings.Cut(status, " ")
	if len(statusCode) != 3 {
		return &ProtocolError{"malformed status code", line}
	}
	resp.StatusCode, err = strconv.Atoi(statusCode)
	if err != nil || resp.StatusCode < 0 {
		return &ProtocolError{"malformed status code", line}
	}
	resp.Reason = reason

	if resp.Header, err = readHeader(p); err != nil {
		return err
	}
	return t.readTransfer(br, resp)
}

// readHeader reads header lines up to the blank line. Field names are
// case-folded and values trimmed, a repeated field overwrites the former.
func readHeader(p *preamble) (model.Header, error) {
	h := model.Header{}
	for {
		line, err := p.readLine()
		if err != nil {
			return nil, err
		}
		if line == "" {
			return h, nil
		}
		k, v, ok := strings.Cut(line, ":")
		if !ok {
			return nil, &ProtocolError{"missing colon in header line", line}
		}
		if !httpguts.ValidHeaderFieldName(k) {
			return nil, &ProtocolError{"invalid header field name", line}
		}
		h[strings.ToLower(k)] = strings.TrimSpace(v)
	}
}

func (t HTTP1) readTransfer(br *bufio.Reader, resp *model.Response) error {
	for _, k := range []string{"transfer-encoding", "content-encoding"} {
		if v, ok := resp.Header.Get(k); ok {
			return wrapErr{ErrUnsupportedFraming, fmt.Errorf("%s: %s", k, v)}
		}
	}

	resp.ContentLength = -1
	if cl, ok := resp.Header.Get("content-length"); ok {
		n, err := strconv.ParseUint(cl, 10, 63)
		if err != nil {
			return &ProtocolError{"invalid Content-Length", cl}
		}
		resp.ContentLength = int64(n)
	}

	switch {
	case resp.ContentLength > 0:
		resp.Body = io.LimitReader(br, resp.ContentLength)
	case resp.ContentLength == 0:
		resp.Body = strings.NewReader("")
	default:
		resp.Body = br
	}
	return nil
}

// ReadBody reads the whole body of resp. A length-delimited body that
// ends early is an error.
func ReadBody(resp *model.Response) ([]byte, error) {
	if resp.ContentLength < 0 {
		return io.ReadAll(resp.Body)
	}
	// the declared length is not trusted for allocation
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if int64(len(b)) < resp.ContentLength {
		return nil, wrapErr{ErrShortBody, io.ErrUnexpectedEOF}
	}
	return b, nil
}

// Discard drains a length-delimited body so the next response on the
// connection starts at a message boundary. Errors are ignored.
func Discard(resp *model.Response) {
	if resp.ContentLength > 0 {
		io.Copy(io.Discard, resp.Body)
	}
}

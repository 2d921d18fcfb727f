package transport_test

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frankli0324/go-browse/internal/model"
	"github.com/frankli0324/go-browse/internal/transport"
	"github.com/frankli0324/go-browse/internal/url"
)

type tCase struct {
	data []byte
	url  string
}

var reqShouldBe = map[string]tCase{
	"BasicRequest": {
		url:  "http://www.example.com",
		data: []byte("GET / HTTP/1.1\r\nHost: www.example.com\r\nConnection: keep-alive\r\nUser-Agent: test-agent\r\n\r\n"),
	},
	"QueryNonStandard": {
		url:  "http://www.example.com/test?1=33=1",
		data: []byte("GET /test?1=33=1 HTTP/1.1\r\nHost: www.example.com\r\nConnection: keep-alive\r\nUser-Agent: test-agent\r\n\r\n"),
	},
	"URIFragmentNotIncluded": {
		url:  "http://www.example.com/?test=1#frag",
		data: []byte("GET /?test=1 HTTP/1.1\r\nHost: www.example.com\r\nConnection: keep-alive\r\nUser-Agent: test-agent\r\n\r\n"),
	},
	"NonDefaultPortInHost": {
		url:  "https://www.example.com:8443/a",
		data: []byte("GET /a HTTP/1.1\r\nHost: www.example.com:8443\r\nConnection: keep-alive\r\nUser-Agent: test-agent\r\n\r\n"),
	},
}

func TestRequestSerialize(t *testing.T) {
	for name, cas := range reqShouldBe {
		tCase := cas
		t.Run(name, func(t *testing.T) {
			u, err := url.Parse(tCase.url)
			require.NoError(t, err)
			buf := &bytes.Buffer{}
			require.NoError(t, transport.HTTP1{}.Write(buf, &model.Request{URL: u, UserAgent: "test-agent"}))
			if err := iotest.TestReader(buf, tCase.data); err != nil {
				t.Error(err)
			}
		})
	}
}

func readResponse(raw string) (*model.Response, error) {
	resp := &model.Response{}
	err := transport.HTTP1{}.Read(bufio.NewReader(strings.NewReader(raw)), resp)
	return resp, err
}

func TestReadResponse(t *testing.T) {
	resp, err := readResponse("HTTP/1.1 301 Moved Permanently\r\nLocation: /new\r\nX-Thing:   spaced  \r\nCONTENT-LENGTH: 5\r\n\r\nhello, and more")
	require.NoError(t, err)
	assert.Equal(t, "HTTP/1.1", resp.Proto)
	assert.Equal(t, 301, resp.StatusCode)
	assert.Equal(t, "Moved Permanently", resp.Reason)
	assert.True(t, resp.IsRedirect())
	assert.Equal(t, model.Header{"location": "/new", "x-thing": "spaced", "content-length": "5"}, resp.Header)
	assert.EqualValues(t, 5, resp.ContentLength)

	body, err := transport.ReadBody(resp)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(body))
}

func TestReadCloseDelimited(t *testing.T) {
	resp, err := readResponse("HTTP/1.0 200 OK\r\n\r\nuntil the end")
	require.NoError(t, err)
	assert.EqualValues(t, -1, resp.ContentLength)
	assert.False(t, resp.KeepAlive())
	body, err := transport.ReadBody(resp)
	require.NoError(t, err)
	assert.Equal(t, "until the end", string(body))
}

func TestReadDuplicateHeaderLastWins(t *testing.T) {
	resp, err := readResponse("HTTP/1.1 200 OK\r\nX-A: 1\r\nx-a: 2\r\nContent-Length: 0\r\n\r\n")
	require.NoError(t, err)
	assert.Equal(t, "2", resp.Header["x-a"])
	assert.True(t, resp.KeepAlive())
}

func TestReadKeepAlive(t *testing.T) {
	resp, err := readResponse("HTTP/1.1 200 OK\r\nConnection: close\r\nContent-Length: 0\r\n\r\n")
	require.NoError(t, err)
	assert.False(t, resp.KeepAlive())

	resp, err = readResponse("HTTP/1.0 200 OK\r\nConnection: Keep-Alive\r\nContent-Length: 0\r\n\r\n")
	require.NoError(t, err)
	assert.True(t, resp.KeepAlive())
}

func TestReadRejectsFraming(t *testing.T) {
	for _, h := range []string{"Transfer-Encoding: chunked", "Content-Encoding: gzip"} {
		_, err := readResponse("HTTP/1.1 200 OK\r\n" + h + "\r\n\r\n5\r\nhello\r\n0\r\n\r\n")
		assert.ErrorIs(t, err, transport.ErrUnsupportedFraming, h)
	}
}

func TestReadMalformed(t *testing.T) {
	for name, raw := range map[string]string{
		"NoSpace":       "HTTP/1.1\r\n\r\n",
		"BadCode":       "HTTP/1.1 2x0 OK\r\n\r\n",
		"LongCode":      "HTTP/1.1 2000 OK\r\n\r\n",
		"HeaderNoColon": "HTTP/1.1 200 OK\r\nbroken header\r\n\r\n",
		"HeaderBadName": "HTTP/1.1 200 OK\r\nbad name: x\r\n\r\n",
		"BadLength":     "HTTP/1.1 200 OK\r\nContent-Length: -1\r\n\r\n",
		"NonNumericLen": "HTTP/1.1 200 OK\r\nContent-Length: ten\r\n\r\n",
	} {
		_, err := readResponse(raw)
		var pe *transport.ProtocolError
		assert.True(t, errors.As(err, &pe), name)
	}
}

func TestReadTruncated(t *testing.T) {
	_, err := readResponse("")
	assert.ErrorIs(t, err, transport.ErrNoResponse)
	assert.ErrorIs(t, err, io.EOF)

	_, err = readResponse("HTTP/1.1 200 OK\r\nContent-Length: 1\r\n")
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.NotErrorIs(t, err, transport.ErrNoResponse)

	resp, err := readResponse("HTTP/1.1 200 OK\r\nContent-Length: 10\r\n\r\nshort")
	require.NoError(t, err)
	_, err = transport.ReadBody(resp)
	assert.ErrorIs(t, err, transport.ErrShortBody)
}

func TestDiscard(t *testing.T) {
	br := bufio.NewReader(strings.NewReader("HTTP/1.1 302 Found\r\nLocation: /x\r\nContent-Length: 3\r\n\r\nabcHTTP/1.1 200 OK\r\nContent-Length: 2\r\n\r\nok"))
	resp := &model.Response{}
	require.NoError(t, transport.HTTP1{}.Read(br, resp))
	transport.Discard(resp)

	next := &model.Response{}
	require.NoError(t, transport.HTTP1{}.Read(br, next))
	assert.Equal(t, 200, next.StatusCode)
}

// endless never runs out of bytes.
type endless byte

func (b endless) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(b)
	}
	return len(p), nil
}

func TestReadHeaderTooLarge(t *testing.T) {
	// a single header line that never ends
	r := io.MultiReader(strings.NewReader("HTTP/1.1 200 OK\r\nX-Long: "), endless('a'))
	err := transport.HTTP1{}.Read(bufio.NewReader(r), &model.Response{})
	assert.ErrorIs(t, err, transport.ErrHeaderTooLarge)

	// many short lines adding up
	many := "HTTP/1.1 200 OK\r\n" + strings.Repeat("X-A: b\r\n", transport.MaxHeaderBytes/8+1) + "\r\n"
	_, err = readResponse(many)
	assert.ErrorIs(t, err, transport.ErrHeaderTooLarge)

	// just below the limit is fine
	fits := "HTTP/1.1 200 OK\r\n" + strings.Repeat("X-A: b\r\n", transport.MaxHeaderBytes/8-10) + "Content-Length: 0\r\n\r\n"
	resp, err := readResponse(fits)
	require.NoError(t, err)
	assert.Equal(t, "b", resp.Header["x-a"])
}

package engine_test

import (
	"bufio"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/frankli0324/go-browse/internal/config"
	"github.com/frankli0324/go-browse/internal/engine"
	"github.com/frankli0324/go-browse/internal/url"
)

type request struct {
	conn   int
	line   string
	header []string
}

// respondFunc returns the raw response for the n-th request on connection
// conn. With hangup set the server closes the connection after writing it,
// an empty response with hangup closes without answering.
type respondFunc func(conn, n int, path string) (resp string, hangup bool)

type cannedServer struct {
	net.Listener
	respond respondFunc

	mu    sync.Mutex
	conns int
	reqs  []request
}

func newServer(t *testing.T, respond respondFunc) *cannedServer {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	s := &cannedServer{Listener: l, respond: respond}
	go s.serve()
	t.Cleanup(func() { l.Close() })
	return s
}

func (s *cannedServer) serve() {
	for {
		c, err := s.Accept()
		if err != nil {
			return
		}
		s.mu.Lock()
		s.conns++
		id := s.conns
		s.mu.Unlock()
		go s.handle(id, c)
	}
}

func (s *cannedServer) handle(id int, c net.Conn) {
	defer c.Close()
	br := bufio.NewReader(c)
	for n := 1; ; n++ {
		line, err := br.ReadString('\n')
		if err != nil {
			return
		}
		req := request{conn: id, line: strings.TrimRight(line, "\r\n")}
		for {
			h, err := br.ReadString('\n')
			if err != nil {
				return
			}
			if h == "\r\n" {
				break
			}
			req.header = append(req.header, strings.TrimRight(h, "\r\n"))
		}
		s.mu.Lock()
		s.reqs = append(s.reqs, req)
		s.mu.Unlock()

		path := strings.Split(req.line, " ")[1]
		s.mu.Lock()
		respond := s.respond
		s.mu.Unlock()
		resp, hangup := respond(id, n, path)
		if resp != "" {
			if _, err := c.Write([]byte(resp)); err != nil {
				return
			}
		}
		if hangup {
			return
		}
	}
}

func (s *cannedServer) SetRespond(respond respondFunc) {
	s.mu.Lock()
	s.respond = respond
	s.mu.Unlock()
}

func (s *cannedServer) URL(path string) string {
	return "http://" + s.Addr().String() + path
}

func (s *cannedServer) Conns() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conns
}

func (s *cannedServer) Requests() []request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]request(nil), s.reqs...)
}

func ok(body string) string {
	return "HTTP/1.1 200 OK\r\nContent-Length: " + strconv.Itoa(len(body)) + "\r\n\r\n" + body
}

func redirect(code, location string) string {
	return "HTTP/1.1 " + code + " Redirect\r\nLocation: " + location + "\r\nContent-Length: 7\r\n\r\nmoved!\n"
}

func newEngine(t *testing.T) *engine.Engine {
	cfg := config.Default()
	cfg.UserAgent = "test-agent"
	e := engine.New(cfg, zaptest.NewLogger(t))
	t.Cleanup(func() { e.Close() })
	return e
}

func mustParse(t *testing.T, s string) *url.URL {
	u, err := url.Parse(s)
	require.NoError(t, err)
	return u
}

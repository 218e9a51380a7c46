package slack

import (
	"net/http"
	"net/http/httptest"
)

// mockSlackServer serves canned Slack API responses, one handler per API
// method path.
type mockSlackServer struct {
	server   *httptest.Server
	handlers map[string]http.HandlerFunc
}

func newMockSlackServer() *mockSlackServer {
	m := &mockSlackServer{handlers: make(map[string]http.HandlerFunc)}
	m.server = httptest.NewServer(http.HandlerFunc(m.dispatch))
	return m
}

func (m *mockSlackServer) dispatch(w http.ResponseWriter, r *http.Request) {
	if handler, ok := m.handlers[r.URL.Path]; ok {
		handler(w, r)
		return
	}
	http.Error(w, "unexpected call: "+r.URL.Path, http.StatusNotFound)
}

func (m *mockSlackServer) addHandler(path string, handler http.HandlerFunc) {
	m.handlers[path] = handler
}

func (m *mockSlackServer) close() {
	m.server.Close()
}

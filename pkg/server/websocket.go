package server

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/vglob"
	"github.com/vango-dev/vglob/internal/errors"
)

// idleTimeout closes a live-match session that sends nothing for this long.
const idleTimeout = 2 * time.Minute

// LiveMatch is the reply to one path sent over /v1/ws/match.
type LiveMatch struct {
	Path    string `json:"path"`
	Matched bool   `json:"matched"`
}

// handleLiveMatch upgrades to a WebSocket on which every text frame is a
// path and every reply is a LiveMatch. The pattern and its options come from
// the query string.
func (s *Server) handleLiveMatch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	glob := query.Get("pattern")
	if glob == "" {
		writeError(w, http.StatusBadRequest, errors.New("E202").
			WithExample("/v1/ws/match?pattern=**/*.go&dot=true"))
		return
	}
	opts, err := queryOptions(query, s.compiler.Options())
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("E201").
			WithDetail("Option flags in the query string must be booleans.").
			Wrap(err))
		return
	}

	p, ok := s.compile(w, r, &globRequest{Pattern: glob, Options: &opts})
	if !ok {
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error
		s.metrics.RecordWebSocketError("upgrade")
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	s.metrics.RecordSessionOpen()
	logger := s.logger.With("pattern", glob, "remote", r.RemoteAddr)
	logger.Debug("live match session opened")
	defer func() {
		conn.Close()
		s.metrics.RecordSessionClose()
		logger.Debug("live match session closed")
	}()

	s.liveMatchLoop(conn, p)
}

func (s *Server) liveMatchLoop(conn *websocket.Conn, p *vglob.Pattern) {
	for {
		conn.SetReadDeadline(time.Now().Add(idleTimeout))

		msgType, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure) {
				s.metrics.RecordWebSocketError("read")
				s.logger.Error("websocket read error", "error", err)
			}
			return
		}
		if msgType != websocket.TextMessage {
			s.metrics.RecordWebSocketError("binary_frame")
			continue
		}

		path := string(msg)
		matched := p.Match(path)
		s.metrics.RecordMatch(matched)

		if err := conn.WriteJSON(LiveMatch{Path: path, Matched: matched}); err != nil {
			s.metrics.RecordWebSocketError("write")
			s.logger.Error("websocket write error", "error", err)
			return
		}
	}
}

// queryFlags maps query parameters to the option they set.
var queryFlags = []struct {
	name string
	set  func(*vglob.Options, bool)
}{
	{"dot", func(o *vglob.Options, v bool) { o.Dot = v }},
	{"noBrace", func(o *vglob.Options, v bool) { o.NoBrace = v }},
	{"noCase", func(o *vglob.Options, v bool) { o.NoCase = v }},
	{"noExtGlob", func(o *vglob.Options, v bool) { o.NoExtGlob = v }},
	{"noGlobStar", func(o *vglob.Options, v bool) { o.NoGlobStar = v }},
	{"noNegate", func(o *vglob.Options, v bool) { o.NoNegate = v }},
}

// queryOptions applies the option flags present in query to base.
func queryOptions(query url.Values, base vglob.Options) (vglob.Options, error) {
	opts := base
	for _, f := range queryFlags {
		raw, ok := query[f.name]
		if !ok || len(raw) == 0 {
			continue
		}
		// A bare flag (?dot) means true
		if raw[0] == "" {
			f.set(&opts, true)
			continue
		}
		v, err := strconv.ParseBool(raw[0])
		if err != nil {
			return base, err
		}
		f.set(&opts, v)
	}
	return opts, nil
}

// SameOriginCheck accepts WebSocket requests without an Origin header or
// whose Origin host matches the request host.
func SameOriginCheck(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if r.Host == "" {
		return false
	}
	return originURL.Host == r.Host
}

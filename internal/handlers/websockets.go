package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = (pongWait * 9) / 10
	maxMsgSize       = 1 << 12 // 4 KB
	defaultInterval  = 1 * time.Second
	maxInterval      = 10 * time.Second
	maxIntervalMilli = 10_000 // 10s in ms
	maxTimerLength   = time.Hour
)

const (
	msgTick  = "tick"
	msgDone  = "done"
	msgError = "error"
)

var errTimerLength = errors.New("timer needs 'duration' (minutes) or 'seconds' between 1s and 1h")

// Envelope used for WebSocket messages.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

type timerTick struct {
	RemainingSeconds int `json:"remaining_seconds"`
	TotalSeconds     int `json:"total_seconds"`
}

// originChecker accepts requests whose Origin is listed. "*" accepts any
// origin; an empty list keeps gorilla's same-host check.
func originChecker(origins []string) func(*http.Request) bool {
	if len(origins) == 0 {
		return nil
	}
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		allowed[strings.TrimRight(o, "/")] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || allowed[origin]
	}
}

// @Summary      Session countdown
// @Description  Upgrades to a WebSocket and streams tick frames until the timer ends, then a done frame.
// @Tags         sessions
// @Param        duration     query  int     false  "Length in minutes"
// @Param        seconds      query  int     false  "Length in seconds (overrides duration)"
// @Param        interval     query  string  false  "Tick interval as a Go duration, max 10s"  example(1s)
// @Param        interval_ms  query  int     false  "Tick interval in milliseconds"
// @Router       /ws/timer [get]
func (h *Handler) timerStream(c *gin.Context) {
	interval := h.parseInterval(c)
	length, lengthErr := parseTimerLength(c)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	if lengthErr != nil {
		_ = writeEnvelope(conn, wsEnvelope{Type: msgError, Error: lengthErr.Error()})
		closeNormally(conn, "invalid timer")
		return
	}

	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	go h.startReader(conn, done)

	deadline := time.Now().Add(length)
	total := int(length / time.Second)

	ticker := time.NewTicker(interval)
	ping := time.NewTicker(pingPeriod)
	finish := time.NewTimer(length)
	defer func() {
		ticker.Stop()
		ping.Stop()
		finish.Stop()
	}()

	if err := writeEnvelope(conn, wsEnvelope{Type: msgTick, Data: timerTick{RemainingSeconds: total, TotalSeconds: total}}); err != nil {
		if h.log != nil {
			h.log.Infow("ws_write_failed_initial", "err", err)
		}
		return
	}

	for {
		select {
		case <-done:
			return
		case <-c.Request.Context().Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				if h.log != nil {
					h.log.Infow("ws_ping_failed", "err", err)
				}
				return
			}
		case <-finish.C:
			if err := writeEnvelope(conn, wsEnvelope{Type: msgDone, Data: timerTick{TotalSeconds: total}}); err != nil {
				if h.log != nil {
					h.log.Infow("ws_write_failed", "err", err)
				}
				return
			}
			closeNormally(conn, msgDone)
			return
		case <-ticker.C:
			remaining := ceilSeconds(time.Until(deadline))
			if remaining <= 0 {
				continue
			}
			if err := writeEnvelope(conn, wsEnvelope{Type: msgTick, Data: timerTick{RemainingSeconds: remaining, TotalSeconds: total}}); err != nil {
				if h.log != nil {
					h.log.Infow("ws_write_failed", "err", err)
				}
				return
			}
		}
	}
}

// parseTimerLength reads ?seconds=N or ?duration=M (minutes); seconds wins.
func parseTimerLength(c *gin.Context) (time.Duration, error) {
	switch {
	case c.Query("seconds") != "":
		return timerUnits(c.Query("seconds"), time.Second)
	case c.Query("duration") != "":
		return timerUnits(c.Query("duration"), time.Minute)
	}
	return 0, errTimerLength
}

// timerUnits parses s as a count of unit, bounded to (0, maxTimerLength]
// before multiplying.
func timerUnits(s string, unit time.Duration) (time.Duration, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 || n > int(maxTimerLength/unit) {
		return 0, errTimerLength
	}
	return time.Duration(n) * unit, nil
}

func ceilSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}

// Helper: parseInterval reads ?interval=2s or ?interval_ms=2000 with bounds.
func (h *Handler) parseInterval(c *gin.Context) time.Duration {
	interval := defaultInterval

	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 && d <= maxInterval {
			return d
		}
	}

	if ms := c.Query("interval_ms"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v > 0 && v <= maxIntervalMilli {
			return time.Duration(v) * time.Millisecond
		}
	}

	return interval
}

// Helper: startReader drains incoming messages to handle control frames and detect closure.
func (h *Handler) startReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if h.log != nil {
				h.log.Infow("ws_read_closed", "err", err)
			}
			return
		}
	}
}

func writeEnvelope(conn *websocket.Conn, env wsEnvelope) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(env)
}

func closeNormally(conn *websocket.Conn, reason string) {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason)
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
}

package server

import (
	"context"
	"net/http"
	"testing"
	"time"
)

func TestNormalizeAddr(t *testing.T) {
	cases := map[string]string{"": "", "8080": ":8080", ":9090": ":9090"}
	for in, want := range cases {
		if got := normalizeAddr(in); got != want {
			t.Errorf("normalizeAddr(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNewHTTPServer_UsesTimeouts(t *testing.T) {
	s := New(Timeouts{Write: 30 * time.Second})
	srv := newHTTPServer(":0", http.NotFoundHandler(), s.timeouts)

	if srv.WriteTimeout != 30*time.Second {
		t.Errorf("write timeout = %v", srv.WriteTimeout)
	}
	if srv.ReadHeaderTimeout != defaultTimeouts.ReadHeader || srv.IdleTimeout != defaultTimeouts.Idle {
		t.Errorf("zero timeouts must fall back to defaults: %+v", srv)
	}
	if srv.MaxHeaderBytes != maxHeaderBytes {
		t.Errorf("max header bytes = %d", srv.MaxHeaderBytes)
	}
}

func TestShutdownBeforeRun(t *testing.T) {
	if err := New(Timeouts{}).Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown before Run: %v", err)
	}
}

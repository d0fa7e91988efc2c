package main

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jcorbin/stackgolf/internal/callers"
	"github.com/jcorbin/stackgolf/internal/logio"
	"github.com/jcorbin/stackgolf/internal/panicerr"
)

const (
	recordBacklog     = 200
	defaultRunTimeout = 10 * time.Second
)

// server runs programs submitted over HTTP, recording who ran what.
type server struct {
	callers   callers.Store
	log       *logio.Logger
	staticDir string
	timeout   time.Duration
	vmOpts    []VMOption

	now     func() time.Time
	records chan runRecord
}

type runRecord struct {
	addr   string
	at     time.Time
	prog   string
	input  string
	result string
}

func newServer(store callers.Store, log *logio.Logger, opts ...VMOption) *server {
	return &server{
		callers:   store,
		log:       log,
		staticDir: "static",
		timeout:   defaultRunTimeout,
		vmOpts:    opts,
		now:       time.Now,
		records:   make(chan runRecord, recordBacklog),
	}
}

func (srv *server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/run", srv.handleRun)
	mux.HandleFunc("/favicon.ico", srv.handleStatic("favicon.ico"))
	mux.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/" {
			http.NotFound(w, req)
			return
		}
		srv.handleStatic("index.html")(w, req)
	})
	return mux
}

func (srv *server) handleStatic(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		http.ServeFile(w, req, filepath.Join(srv.staticDir, name))
	}
}

func (srv *server) handleRun(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := req.URL.Query()
	prog := query.Get("s")
	input := strings.ReplaceAll(query.Get("input"), "\r", "")

	ctx := req.Context()
	if srv.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, srv.timeout)
		defer cancel()
	}

	out := &logio.Writer{Logf: srv.log.Leveledf("OUT")}
	opts := append(srv.vmOpts[:len(srv.vmOpts):len(srv.vmOpts)], WithOutput(out))
	vals, err := RunWithInput(ctx, prog, strings.NewReader(input), opts...)
	out.Close()

	var status int
	var body, result string
	switch {
	case err == nil:
		status = http.StatusOK
		body = FormatValues(vals)
		result = "Ok: " + body
	case panicerr.IsPanic(err):
		status = http.StatusInternalServerError
		body = fmt.Sprintf("panicked at '%v'", err)
		result = body
		srv.log.Errorf("%+v", err)
	default:
		status = http.StatusBadRequest
		body = err.Error()
		result = "Err: " + body
	}

	srv.enqueue(runRecord{
		addr:   remoteHost(req.RemoteAddr),
		at:     srv.now(),
		prog:   prog,
		input:  input,
		result: result,
	})

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprintf(w, `<p style="color: rgba(198,199,196,255)">%s</p>`, html.EscapeString(body))
}

func remoteHost(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}

// enqueue hands a record to the recorder without waiting; records are
// dropped while the backlog is full.
func (srv *server) enqueue(rec runRecord) {
	select {
	case srv.records <- rec:
	default:
		srv.log.Printf("WARN", "record backlog full, dropping record from %v", rec.addr)
	}
}

// record logs each run under its caller's name until records is closed.
func (srv *server) record() {
	srv.log.Printf("INFO", "recorder starting up")
	defer srv.log.Printf("INFO", "recorder shutting down")
	for rec := range srv.records {
		user, err := srv.callers.Lookup(rec.addr)
		if err != nil {
			srv.log.Errorf("caller lookup failed: %v", err)
			user = rec.addr
		}
		srv.log.Printf("RUN", "%v@[%v] %q %q => %v",
			user, rec.at.UTC().Format(time.RFC3339Nano), rec.prog, rec.input, rec.result)
	}
}

// serve listens on addr until ctx is done or the listener fails, then shuts
// down gracefully and drains the record backlog.
func (srv *server) serve(ctx context.Context, addr string) error {
	hs := &http.Server{
		Addr:              addr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		srv.record()
		return nil
	})
	eg.Go(func() error {
		srv.log.Printf("INFO", "listening on %v", addr)
		if err := hs.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := hs.Shutdown(shutdownCtx)
		close(srv.records)
		return err
	})
	return eg.Wait()
}

package vizserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/jbeda/geom"
	"go.uber.org/zap"

	"github.com/katalvlaran/pairviz/builder"
	"github.com/katalvlaran/pairviz/closestpair"
	"github.com/katalvlaran/pairviz/config"
	"github.com/katalvlaran/pairviz/geometry"
	"github.com/katalvlaran/pairviz/playback"
)

// maxBodyBytes caps request bodies of the JSON endpoints and the size of a
// single websocket frame.
const maxBodyBytes = 1 << 20

// ErrTooManyPoints indicates a point set above Options.MaxPoints.
var ErrTooManyPoints = errors.New("vizserver: too many points")

// Option configures a VizService.
type Option func(*Options)

// Options holds VizService configuration.
type Options struct {
	Speed      time.Duration
	PointCount int
	Seed       int64
	Bounds     geom.Rect
	MaxPoints  int // largest point set a client may generate or upload
	Logger     *zap.Logger
}

// DefaultOptions mirrors config.Default.
func DefaultOptions() Options {
	return Options{
		Speed:      playback.DefaultSpeed,
		PointCount: 15,
		Seed:       1,
		Bounds:     builder.DefaultBounds(),
		MaxPoints:  config.MaxPointCount,
		Logger:     zap.NewNop(),
	}
}

// WithSpeed sets the initial playback speed of new sessions.
func WithSpeed(d time.Duration) Option {
	return func(o *Options) { o.Speed = d }
}

// WithPoints sets the size, seed and bounds of generated point sets.
func WithPoints(count int, seed int64, bounds geom.Rect) Option {
	if count < 2 {
		panic("vizserver: WithPoints(count<2)")
	}
	return func(o *Options) {
		o.PointCount, o.Seed, o.Bounds = count, seed, bounds
	}
}

// WithMaxPoints caps the size of point sets accepted from clients.
// Panics if max < 2.
func WithMaxPoints(limit int) Option {
	if limit < 2 {
		panic("vizserver: WithMaxPoints(limit<2)")
	}
	return func(o *Options) { o.MaxPoints = limit }
}

// WithLogger installs a zap logger. Panics on nil.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("vizserver: WithLogger(nil)")
	}
	return func(o *Options) { o.Logger = l }
}

// VizService is the HTTP front end.
type VizService struct {
	addr     string
	opts     Options
	sessions *SessionMap
	upgrader websocket.Upgrader
}

// NewVizService returns a service that will listen on addr. Options are
// applied in order over DefaultOptions; nothing is bound until ListenAndServe.
func NewVizService(addr string, opts ...Option) *VizService {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	// Generated sets obey the same cap as uploaded ones.
	if o.PointCount > o.MaxPoints {
		o.PointCount = o.MaxPoints
	}

	return &VizService{
		addr:     addr,
		opts:     o,
		sessions: NewSessionMap(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Sessions returns the live session map.
func (viz *VizService) Sessions() *SessionMap {
	return viz.sessions
}

// Router builds the route table. Every route is wrapped in an access log
// written through the service logger.
//
//	GET  /healthz     liveness probe, plain "ok"
//	POST /api/solve   {"points": [...]} → Result
//	POST /api/trace   {"points": [...]} → TraceResponse
//	GET  /ws          websocket session (see Command and Message)
func (viz *VizService) Router() http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/healthz", viz.healthz).Methods(http.MethodGet)
	router.HandleFunc("/api/solve", viz.solve).Methods(http.MethodPost)
	router.HandleFunc("/api/trace", viz.trace).Methods(http.MethodPost)
	router.HandleFunc("/ws", viz.websocket).Methods(http.MethodGet)

	access := zap.NewStdLog(viz.opts.Logger.Named("access")).Writer()
	return handlers.CombinedLoggingHandler(access, router)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
//
// Errors:
//   - the listener error if the server stops on its own (e.g. address in use).
//   - a wrapped shutdown error if in-flight requests outlive the 5s grace period.
//   - nil after a clean shutdown.
func (viz *VizService) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{Addr: viz.addr, Handler: viz.Router(), ReadHeaderTimeout: 10 * time.Second}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	viz.opts.Logger.Info("vizserver: listening", zap.String("addr", viz.addr))

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			return fmt.Errorf("vizserver: shutdown: %w", err)
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (viz *VizService) healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (viz *VizService) solve(w http.ResponseWriter, r *http.Request) {
	points, ok := viz.readPoints(w, r)
	if !ok {
		return
	}

	res, elapsed, err := closestpair.Instant(points, closestpair.WithLogger(viz.opts.Logger))
	if err != nil {
		viz.fail(w, http.StatusBadRequest, err)
		return
	}

	viz.writeJSON(w, Result{Pair: res, Distance: res.Distance, ElapsedMs: float64(elapsed) / float64(time.Millisecond)})
}

func (viz *VizService) trace(w http.ResponseWriter, r *http.Request) {
	points, ok := viz.readPoints(w, r)
	if !ok {
		return
	}

	tr, res, err := closestpair.Visualize(points, closestpair.WithLogger(viz.opts.Logger))
	if err != nil {
		viz.fail(w, http.StatusBadRequest, err)
		return
	}

	out := TraceResponse{Steps: envelopes(tr.Steps()), Result: Result{Pair: res, Distance: res.Distance}}
	if sum, ok := tr.Summary(); ok {
		out.Result.ElapsedMs = sum.ElapsedMs()
	}
	viz.writeJSON(w, out)
}

func (viz *VizService) websocket(w http.ResponseWriter, r *http.Request) {
	conn, err := viz.upgrader.Upgrade(w, r, nil)
	if err != nil {
		viz.opts.Logger.Warn("vizserver: upgrade", zap.Error(err))
		return
	}
	defer conn.Close()
	// Oversized frames close the connection with CloseMessageTooBig.
	conn.SetReadLimit(maxBodyBytes)

	s, err := newSession(conn, viz.opts)
	if err != nil {
		viz.opts.Logger.Error("vizserver: new session", zap.Error(err))
		return
	}

	viz.sessions.Set(s)
	defer viz.sessions.Remove(s.ID())
	viz.opts.Logger.Info("vizserver: session opened",
		zap.String("session", s.ID()), zap.String("remote", r.RemoteAddr), zap.Int("live", viz.sessions.Len()))

	s.run()

	viz.opts.Logger.Info("vizserver: session closed", zap.String("session", s.ID()))
}

func (viz *VizService) readPoints(w http.ResponseWriter, r *http.Request) ([]geometry.Point, bool) {
	var req PointsRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		viz.fail(w, http.StatusBadRequest, fmt.Errorf("vizserver: decode points: %w", err))
		return nil, false
	}
	if err := checkCount(len(req.Points), viz.opts.MaxPoints); err != nil {
		viz.fail(w, http.StatusRequestEntityTooLarge, err)
		return nil, false
	}
	return req.Points, true
}

func (viz *VizService) fail(w http.ResponseWriter, code int, err error) {
	viz.opts.Logger.Info("vizserver: request failed", zap.Int("status", code), zap.Error(err))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(Message{Type: MsgError, Error: err.Error()})
}

func (viz *VizService) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		viz.opts.Logger.Warn("vizserver: encode response", zap.Error(err))
	}
}

func checkCount(n, limit int) error {
	if n > limit {
		return fmt.Errorf("vizserver: %d points (max %d): %w", n, limit, ErrTooManyPoints)
	}
	return nil
}

var _ playback.Renderer = (*Session)(nil)

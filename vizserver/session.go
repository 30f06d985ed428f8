package vizserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/katalvlaran/pairviz/builder"
	"github.com/katalvlaran/pairviz/closestpair"
	"github.com/katalvlaran/pairviz/geometry"
	"github.com/katalvlaran/pairviz/playback"
	"github.com/katalvlaran/pairviz/trace"
)

// ErrUnknownCommand is reported to the client for an unrecognized cmd.
var ErrUnknownCommand = errors.New("vizserver: unknown command")

// Session is one websocket client: its points, its controller and the loop
// that owns both.
type Session struct {
	id     string
	conn   *websocket.Conn
	loop   *playback.Loop
	ctrl   *playback.Controller
	cfg    Options
	logger *zap.Logger

	// Owned by the loop goroutine.
	points  []geometry.Point
	applied int
	seeds   int64
}

func newSession(conn *websocket.Conn, cfg Options) (*Session, error) {
	s := &Session{
		id:   uuid.NewString(),
		conn: conn,
		loop: playback.NewLoop(),
		cfg:  cfg,
	}
	s.logger = cfg.Logger.With(zap.String("session", s.id))

	ctrl, err := playback.NewController(s, s.loop,
		playback.WithSpeed(cfg.Speed),
		playback.WithLogger(s.logger),
		playback.WithOnComplete(s.onComplete),
	)
	if err != nil {
		s.loop.Close()
		return nil, err
	}
	s.ctrl = ctrl

	return s, nil
}

// ID returns the session's UUID.
func (s *Session) ID() string {
	return s.id
}

// Apply implements playback.Renderer.
func (s *Session) Apply(step trace.Step) {
	env := envelope(step)
	s.send(Message{Type: MsgApply, Index: s.applied, Step: &env, Text: trace.Describe(step)})
	s.applied++
}

// Replay implements playback.Renderer.
func (s *Session) Replay(steps []trace.Step) {
	s.applied = len(steps)
	var text string
	if len(steps) > 0 {
		text = trace.Describe(steps[len(steps)-1])
	} else {
		text = trace.Describe(nil)
	}
	s.send(Message{Type: MsgReplay, Index: len(steps), Steps: envelopes(steps), Text: text})
}

func (s *Session) onComplete(p geometry.PairResult) {
	res := Result{Pair: p, Distance: p.Distance}
	if sum, ok := s.ctrl.Trace().Summary(); ok {
		res.ElapsedMs = sum.ElapsedMs()
	}
	st := s.ctrl.State()
	s.send(Message{Type: MsgComplete, Result: &res, State: &st})
}

// run greets the client and serves commands until the connection fails.
// It closes the loop before returning.
//
// Reads happen on the calling goroutine; every command and every write runs
// on the session loop, so frames never interleave with playback ticks.
func (s *Session) run() {
	defer s.loop.Close()

	_ = s.loop.Do(func() {
		s.send(Message{Type: MsgSession, Session: s.id})
		if err := s.random(s.cfg.PointCount, nil); err != nil {
			s.sendError(err)
		}
		s.sendState()
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Info("vizserver: read", zap.Error(err))
			}
			return
		}

		var cmd Command
		if err := json.Unmarshal(data, &cmd); err != nil {
			_ = s.loop.Do(func() { s.sendError(fmt.Errorf("vizserver: decode command: %w", err)) })
			continue
		}
		if err := s.loop.Do(func() { s.handle(cmd) }); err != nil {
			return
		}
	}
}

// handle runs on the loop. Each command answers with an optional error
// frame followed by exactly one state frame.
func (s *Session) handle(cmd Command) {
	s.logger.Debug("vizserver: command", zap.String("cmd", cmd.Cmd))

	var err error
	switch cmd.Cmd {
	case CmdPoints:
		err = s.setPoints(cmd.Points)
	case CmdRandom:
		err = s.random(cmd.Count, cmd.Seed)
	case CmdStart:
		err = s.start()
	case CmdPause:
		err = s.ctrl.Pause()
	case CmdResume:
		err = s.ctrl.Resume()
	case CmdForward:
		err = s.forward()
	case CmdBackward:
		err = s.ctrl.StepBackward()
	case CmdReset:
		s.ctrl.Reset()
		s.applied = 0
	case CmdSpeed:
		if cmd.SpeedMs == nil {
			err = fmt.Errorf("vizserver: speed without speed_ms: %w", ErrUnknownCommand)
			break
		}
		s.ctrl.SetSpeed(time.Duration(*cmd.SpeedMs) * time.Millisecond)
	case CmdInstant:
		err = s.instant()
	default:
		err = fmt.Errorf("vizserver: %q: %w", cmd.Cmd, ErrUnknownCommand)
	}

	if err != nil {
		s.logger.Warn("vizserver: command failed", zap.String("cmd", cmd.Cmd), zap.Error(err))
		s.sendError(err)
	}
	s.sendState()
}

// setPoints replaces the point set and discards any playback. An oversized
// set is rejected before anything changes.
func (s *Session) setPoints(points []geometry.Point) error {
	if err := checkCount(len(points), s.cfg.MaxPoints); err != nil {
		return err
	}
	s.ctrl.Reset()
	s.applied = 0
	s.points = append([]geometry.Point(nil), points...)
	s.send(Message{Type: MsgPoints, Points: s.points})
	return nil
}

func (s *Session) random(count int, seed *int64) error {
	if count <= 0 {
		count = s.cfg.PointCount
	}
	// Refuse before generating anything.
	if err := checkCount(count, s.cfg.MaxPoints); err != nil {
		return err
	}
	var sd int64
	if seed != nil {
		sd = *seed
	} else {
		s.seeds++
		sd = s.cfg.Seed + s.seeds
	}

	pts, err := builder.RandomPoints(count, sd, s.cfg.Bounds)
	if err != nil {
		return err
	}
	return s.setPoints(pts)
}

// load solves the current points and installs the trace without playing it.
func (s *Session) load() (*trace.Trace, error) {
	tr, _, err := closestpair.Visualize(s.points, closestpair.WithLogger(s.logger))
	if err != nil {
		return nil, err
	}
	return tr, nil
}

func (s *Session) start() error {
	switch mode := s.ctrl.Mode(); mode {
	case playback.Complete:
		s.ctrl.Reset()
	case playback.Running, playback.Paused:
		return fmt.Errorf("vizserver: start in mode %s: %w", mode, playback.ErrAlreadyRunning)
	}
	tr, err := s.load()
	if err != nil {
		return err
	}
	s.applied = 0
	return s.ctrl.Start(tr)
}

func (s *Session) forward() error {
	if s.ctrl.Mode() == playback.Idle && s.ctrl.Trace() == nil {
		tr, err := s.load()
		if err != nil {
			return err
		}
		if err := s.ctrl.Load(tr); err != nil {
			return err
		}
		s.applied = 0
	}
	return s.ctrl.StepForward()
}

func (s *Session) instant() error {
	res, elapsed, err := closestpair.Instant(s.points, closestpair.WithLogger(s.logger))
	if err != nil {
		return err
	}
	s.send(Message{Type: MsgResult, Result: &Result{
		Pair:      res,
		Distance:  res.Distance,
		ElapsedMs: float64(elapsed) / float64(time.Millisecond),
	}})
	return nil
}

func (s *Session) sendState() {
	st := s.ctrl.State()
	s.send(Message{Type: MsgState, State: &st})
}

func (s *Session) sendError(err error) {
	s.send(Message{Type: MsgError, Error: err.Error()})
}

// send writes m; it must only be called from the loop.
func (s *Session) send(m Message) {
	if err := s.conn.WriteJSON(m); err != nil {
		s.logger.Warn("vizserver: write", zap.String("type", m.Type), zap.Error(err))
	}
}

// SessionMap tracks live sessions by ID.
type SessionMap struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessionMap returns an empty map.
func NewSessionMap() *SessionMap {
	return &SessionMap{sessions: make(map[string]*Session)}
}

// Set registers s.
func (m *SessionMap) Set(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.id] = s
}

// Get returns the session with id, or nil.
func (m *SessionMap) Get(id string) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[id]
}

// Remove forgets the session with id.
func (m *SessionMap) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Len returns the number of live sessions.
func (m *SessionMap) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

package sim

import (
	"context"
	"time"

	"go.uber.org/zap"

	"path-follower/internal/env"
	"path-follower/internal/geometry/vector"
	"path-follower/internal/guidance"
	"path-follower/internal/metrics"
)

type stateReq struct {
	reply chan VehicleState
}

type subscribeReq struct {
	ch chan VehicleState
}

// Engine owns the vehicle state and runs the control loop. All state is
// confined to the Run goroutine; Submit/GetState/Subscribe talk to it
// over channels.
type Engine struct {
	geo GeoRef

	// Actor channels
	cmdCh       chan Command
	stateReqCh  chan stateReq
	subscribeCh chan subscribeReq
	unsubCh     chan chan VehicleState

	tickHz      float64
	environment env.Environment
	follower    FollowerConfig

	defaultSpeed    float64
	arrivalProgress float64
	posTolM         float64
	maxHorizAccel   float64
	maxVertAccel    float64

	startAltM float64

	logger *zap.Logger
}

type Config struct {
	OriginLat float64
	OriginLon float64
	TickHz    float64

	// DefaultSpeed applies when a command does not carry one, m/s.
	DefaultSpeed float64
	// ArrivalProgress is the fractional progress that completes a
	// straight leg. The kernel never decides completion itself.
	ArrivalProgress float64
	// PosTolM is the endpoint arrival tolerance in meters.
	PosTolM float64

	MaxHorizAccel float64
	MaxVertAccel  float64

	// StartAltM is the altitude the vehicle spawns at, meters.
	StartAltM float64

	Follower    FollowerConfig
	Environment env.Environment
	Logger      *zap.Logger
}

func New(cfg Config) *Engine {
	if cfg.TickHz <= 0 {
		cfg.TickHz = 20
	}
	if cfg.DefaultSpeed <= 0 {
		cfg.DefaultSpeed = 80
	}
	if cfg.ArrivalProgress <= 0 {
		cfg.ArrivalProgress = 0.98
	}
	if cfg.PosTolM <= 0 {
		cfg.PosTolM = 25
	}
	if cfg.MaxHorizAccel <= 0 {
		cfg.MaxHorizAccel = 12
	}
	if cfg.MaxVertAccel <= 0 {
		cfg.MaxVertAccel = 5
	}
	if cfg.StartAltM <= 0 {
		cfg.StartAltM = 1000
	}
	if cfg.Follower == (FollowerConfig{}) {
		cfg.Follower = DefaultFollowerConfig()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Engine{
		geo:             GeoRef{OriginLat: cfg.OriginLat, OriginLon: cfg.OriginLon},
		cmdCh:           make(chan Command, 128),
		stateReqCh:      make(chan stateReq, 32),
		subscribeCh:     make(chan subscribeReq, 32),
		unsubCh:         make(chan chan VehicleState, 32),
		tickHz:          cfg.TickHz,
		environment:     cfg.Environment,
		follower:        cfg.Follower,
		defaultSpeed:    cfg.DefaultSpeed,
		arrivalProgress: cfg.ArrivalProgress,
		posTolM:         cfg.PosTolM,
		maxHorizAccel:   cfg.MaxHorizAccel,
		maxVertAccel:    cfg.MaxVertAccel,
		startAltM:       cfg.StartAltM,
		logger:          cfg.Logger,
	}
}

func (e *Engine) Submit(cmd Command) {
	select {
	case e.cmdCh <- cmd:
	default:
		e.logger.Warn("command dropped, queue full", zap.String("type", string(cmd.Type())))
	}
}

func (e *Engine) GetState(ctx context.Context) (VehicleState, error) {
	req := stateReq{reply: make(chan VehicleState, 1)}
	select {
	case e.stateReqCh <- req:
	case <-ctx.Done():
		return VehicleState{}, ctx.Err()
	}

	select {
	case st := <-req.reply:
		return st, nil
	case <-ctx.Done():
		return VehicleState{}, ctx.Err()
	}
}

func (e *Engine) Subscribe(ctx context.Context) (<-chan VehicleState, func()) {
	ch := make(chan VehicleState, 32)

	select {
	case e.subscribeCh <- subscribeReq{ch: ch}:
	case <-ctx.Done():
		close(ch)
		return ch, func() {}
	}

	unsub := func() {
		select {
		case e.unsubCh <- ch:
		default:
		}
	}
	return ch, unsub
}

// leg is one commanded path segment with its speed.
type leg struct {
	seg   guidance.PathSegment
	speed float64
}

func (e *Engine) Run(ctx context.Context) error {
	// Actor-owned state
	now := time.Now()

	pos := e.geo.GeoToLocal(e.geo.OriginLat, e.geo.OriginLon, e.startAltM)
	vel := vector.Vec3{} // "air" velocity

	var active Command
	var legs []leg
	legIdx := 0
	loopStart := -1 // index to wrap to, -1 means no loop

	var lastStatus guidance.PathStatus
	haveStatus := false

	subs := map[chan VehicleState]struct{}{}

	buildSnapshot := func(ts time.Time, warning string) VehicleState {
		lat, lon, alt := e.geo.LocalToGeo(pos)
		st := VehicleState{
			Lat: lat, Lon: lon, Alt: alt,
			Vn: vel.X, Ve: vel.Y, Vd: vel.Z,
			HeadingDeg:   HeadingDegFromVec(vel),
			TS:           ts,
			Warning:      warning,
			SegmentIndex: legIdx,
		}
		if active != nil {
			st.ActiveCommand = string(active.Type())
		}
		if haveStatus && legIdx < len(legs) {
			st.PathMode = legs[legIdx].seg.Mode.String()
			st.FractionalProgress = lastStatus.FractionalProgress
			st.PathError = lastStatus.Error
		}
		return st
	}

	publish := func(st VehicleState) {
		for ch := range subs {
			select {
			case ch <- st:
			default:
				// slow subscriber -> drop frame
			}
		}
	}

	clearPlan := func() {
		active = nil
		legs = nil
		legIdx = 0
		loopStart = -1
		haveStatus = false
	}

	setActive := func(cmd Command) {
		clearPlan()
		built, wrap := e.buildLegs(cmd, pos)
		if len(built) == 0 {
			e.logger.Warn("command produced no legs", zap.String("type", string(cmd.Type())))
			return
		}
		active = cmd
		legs, loopStart = built, wrap
		e.logger.Info("command accepted",
			zap.String("type", string(cmd.Type())),
			zap.Int("legs", len(legs)))
	}

	completed := func(l leg, st guidance.PathStatus) bool {
		switch l.seg.Mode {
		case guidance.ModeFlyCircleRight, guidance.ModeDriveCircleRight,
			guidance.ModeFlyCircleLeft, guidance.ModeDriveCircleLeft:
			// orbits run until replaced
			return false
		case guidance.ModeFlyVector, guidance.ModeDriveVector:
			return st.FractionalProgress >= e.arrivalProgress
		default:
			// endpoint modes, including the failsafe for unknown modes
			return st.Error <= e.posTolM
		}
	}

	approach := func(cur, des float64, amax float64, dt float64) float64 {
		diff := des - cur
		maxStep := amax * dt
		if diff > maxStep {
			return cur + maxStep
		}
		if diff < -maxStep {
			return cur - maxStep
		}
		return des
	}

	approachVel := func(cur, des vector.Vec3, dt float64) vector.Vec3 {
		return vector.Vec3{
			X: approach(cur.X, des.X, e.maxHorizAccel, dt),
			Y: approach(cur.Y, des.Y, e.maxHorizAccel, dt),
			Z: approach(cur.Z, des.Z, e.maxVertAccel, dt),
		}
	}

	tick := time.NewTicker(time.Duration(float64(time.Second) / e.tickHz))
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			for ch := range subs {
				close(ch)
			}
			return nil

		case req := <-e.subscribeCh:
			subs[req.ch] = struct{}{}
			metrics.SetStreamSubscribers(len(subs))
			req.ch <- buildSnapshot(now, "")

		case ch := <-e.unsubCh:
			if _, ok := subs[ch]; ok {
				delete(subs, ch)
				close(ch)
				metrics.SetStreamSubscribers(len(subs))
			}

		case req := <-e.stateReqCh:
			req.reply <- buildSnapshot(now, "")

		case cmd := <-e.cmdCh:
			switch cmd.Type() {
			case CmdStop:
				clearPlan()
				vel = vector.Vec3{}

			case CmdHold:
				clearPlan()
				active = cmd
				vel = vector.Vec3{}

			default:
				setActive(cmd)
			}

		case t := <-tick.C:
			dt := t.Sub(now).Seconds()
			if dt <= 0 {
				dt = 1.0 / e.tickHz
			}
			now = t

			metrics.ObserveTick()
			warning := ""

			// evaluate guidance for the active leg
			desired := vector.Vec3{}
			if active != nil && legIdx < len(legs) {
				l := legs[legIdx]
				st := guidance.Progress(l.seg, pos)
				lastStatus, haveStatus = st, true
				metrics.ObserveGuidance(l.seg.Mode.String(), st.Error)

				if completed(l, st) {
					metrics.ObserveSegmentComplete()
					e.logger.Info("leg completed",
						zap.Int("index", legIdx),
						zap.String("mode", l.seg.Mode.String()))
					legIdx++
					if legIdx >= len(legs) {
						if loopStart >= 0 && loopStart < len(legs) {
							legIdx = loopStart
						} else {
							clearPlan()
						}
					}
				} else {
					desired = DesiredVelocity(st, l.speed, e.follower)
				}
			}

			// smooth toward desired velocity (air velocity)
			vel = approachVel(vel, desired, dt)

			// apply environment effects (wind drifts position, floor clips)
			if e.environment != nil {
				p2, v2, warn := e.environment.Apply(dt, pos, vel)
				pos, vel = p2, v2
				warning = warn
			}

			// integrate position by air velocity (wind drift already applied)
			pos = pos.Add(vel.Mul(dt))

			st := buildSnapshot(now, warning)
			publish(st)
		}
	}
}

// buildLegs turns a command into the sequence of path segments to follow
// from the given position. The second return value is the leg index to
// wrap to when the plan loops, or -1 for one-shot plans.
func (e *Engine) buildLegs(cmd Command, pos vector.Vec3) ([]leg, int) {
	switch c := cmd.(type) {
	case GoToCommand:
		target := e.geo.GeoToLocal(c.Lat, c.Lon, c.Alt)
		return []leg{{
			seg: guidance.PathSegment{
				Start: pos,
				End:   target,
				Mode:  guidance.ModeFlyEndpoint,
			},
			speed: e.speedOr(c.Speed),
		}}, -1

	case OrbitCommand:
		center := e.geo.GeoToLocal(c.Lat, c.Lon, c.Alt)
		mode := guidance.ModeFlyCircleLeft
		if c.Clockwise {
			mode = guidance.ModeFlyCircleRight
		}
		// start point fixes the radius; its bearing from the center
		// does not matter for guidance
		onCircle := center.Add(vector.Vec3{X: c.RadiusM})
		return []leg{{
			seg: guidance.PathSegment{
				Start: onCircle,
				End:   center,
				Mode:  mode,
			},
			speed: e.speedOr(c.Speed),
		}}, -1

	case RouteCommand:
		if len(c.Waypoints) == 0 {
			return nil, -1
		}
		legs := make([]leg, 0, len(c.Waypoints)+1)
		prev := pos
		for _, wp := range c.Waypoints {
			target := e.geo.GeoToLocal(wp.Lat, wp.Lon, wp.Alt)
			legs = append(legs, leg{
				seg: guidance.PathSegment{
					Start: prev,
					End:   target,
					Mode:  guidance.ModeFlyVector,
				},
				speed: e.speedOr(wp.Speed),
			})
			prev = target
		}
		loopStart := -1
		if c.Loop && len(c.Waypoints) > 1 {
			// close the circuit and skip the entry leg on wrap
			first := e.geo.GeoToLocal(c.Waypoints[0].Lat, c.Waypoints[0].Lon, c.Waypoints[0].Alt)
			legs = append(legs, leg{
				seg: guidance.PathSegment{
					Start: prev,
					End:   first,
					Mode:  guidance.ModeFlyVector,
				},
				speed: e.speedOr(c.Waypoints[0].Speed),
			})
			loopStart = 1
		}
		return legs, loopStart

	case SegmentCommand:
		return []leg{{seg: c.Segment, speed: e.speedOr(c.Speed)}}, -1

	default:
		return nil, -1
	}
}

func (e *Engine) speedOr(speed float64) float64 {
	if speed <= 0 {
		return e.defaultSpeed
	}
	return speed
}

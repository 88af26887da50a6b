package component

import "github.com/promptplay/gamecore/internal/core/ecs"

// ── aiBehavior ──

// Optional aiBehavior fields.
const (
	AIPatrolDistance FieldMask = 1 << iota
)

type AIBehavior struct {
	BehaviorType    BehaviorType
	Speed           float32
	DetectionRadius float32
	PatrolDistance  float32
	Optional        FieldMask
}

func DefaultAIBehavior() AIBehavior {
	return AIBehavior{BehaviorType: BehaviorPatrol, Speed: 1, DetectionRadius: 100}
}

func (AIBehavior) Kind() Kind { return KindAIBehavior }

func (c AIBehavior) encode(w *FieldWriter) {
	writeEnum(w, "behaviorType", BehaviorTypes, c.BehaviorType)
	w.Float("speed", c.Speed)
	w.Float("detectionRadius", c.DetectionRadius)
	if c.Optional&AIPatrolDistance != 0 {
		w.Float("patrolDistance", c.PatrolDistance)
	}
}

func (c *AIBehavior) decode(r *FieldReader) {
	readEnum(r, "behaviorType", BehaviorTypes, &c.BehaviorType)
	r.Float("speed", &c.Speed)
	r.Float("detectionRadius", &c.DetectionRadius)
	if r.Float("patrolDistance", &c.PatrolDistance) {
		c.Optional |= AIPatrolDistance
	}
}

func (c *AIBehavior) value() Component { return *c }

type AIBehaviorStore struct {
	BehaviorType                           []BehaviorType
	Speed, DetectionRadius, PatrolDistance []float32
	Optional                               []FieldMask
}

func (s *AIBehaviorStore) Grow(n int) {
	s.BehaviorType, s.Speed = grow(s.BehaviorType, n), grow(s.Speed, n)
	s.DetectionRadius, s.PatrolDistance = grow(s.DetectionRadius, n), grow(s.PatrolDistance, n)
	s.Optional = grow(s.Optional, n)
}

func (s *AIBehaviorStore) Remove(id ecs.EntityID) { s.set(id.Index(), AIBehavior{}) }

func (s *AIBehaviorStore) set(i uint32, v AIBehavior) {
	s.BehaviorType[i], s.Speed[i], s.DetectionRadius[i] = v.BehaviorType, v.Speed, v.DetectionRadius
	s.PatrolDistance[i], s.Optional[i] = v.PatrolDistance, v.Optional
}

func (s *AIBehaviorStore) get(i uint32) AIBehavior {
	return AIBehavior{
		BehaviorType: s.BehaviorType[i], Speed: s.Speed[i], DetectionRadius: s.DetectionRadius[i],
		PatrolDistance: s.PatrolDistance[i], Optional: s.Optional[i],
	}
}

// ── animation ──

type Animation struct {
	FrameCount    int32
	FrameDuration float32
	CurrentFrame  int32
	Loop          bool
	IsPlaying     bool
}

func DefaultAnimation() Animation {
	return Animation{FrameCount: 1, FrameDuration: 0.1, Loop: true, IsPlaying: true}
}

func (Animation) Kind() Kind { return KindAnimation }

func (c Animation) encode(w *FieldWriter) {
	w.Int("frameCount", c.FrameCount)
	w.Float("frameDuration", c.FrameDuration)
	w.Int("currentFrame", c.CurrentFrame)
	w.Bool("loop", c.Loop)
	w.Bool("isPlaying", c.IsPlaying)
}

func (c *Animation) decode(r *FieldReader) {
	r.Int("frameCount", &c.FrameCount)
	r.Float("frameDuration", &c.FrameDuration)
	r.Int("currentFrame", &c.CurrentFrame)
	r.Bool("loop", &c.Loop)
	r.Bool("isPlaying", &c.IsPlaying)
}

func (c *Animation) value() Component { return *c }

type AnimationStore struct {
	FrameCount, CurrentFrame []int32
	FrameDuration            []float32
	Loop, IsPlaying          []uint8
}

func (s *AnimationStore) Grow(n int) {
	s.FrameCount, s.CurrentFrame = grow(s.FrameCount, n), grow(s.CurrentFrame, n)
	s.FrameDuration = grow(s.FrameDuration, n)
	s.Loop, s.IsPlaying = grow(s.Loop, n), grow(s.IsPlaying, n)
}

func (s *AnimationStore) Remove(id ecs.EntityID) { s.set(id.Index(), Animation{}) }

func (s *AnimationStore) set(i uint32, v Animation) {
	s.FrameCount[i], s.FrameDuration[i], s.CurrentFrame[i] = v.FrameCount, v.FrameDuration, v.CurrentFrame
	s.Loop[i], s.IsPlaying[i] = b2u(v.Loop), b2u(v.IsPlaying)
}

func (s *AnimationStore) get(i uint32) Animation {
	return Animation{
		FrameCount: s.FrameCount[i], FrameDuration: s.FrameDuration[i], CurrentFrame: s.CurrentFrame[i],
		Loop: u2b(s.Loop[i]), IsPlaying: u2b(s.IsPlaying[i]),
	}
}

// ── camera ──

type Camera struct {
	Zoom             float32
	OffsetX, OffsetY float32
	Smoothing        float32
	IsActive         bool
}

func DefaultCamera() Camera { return Camera{Zoom: 1, Smoothing: 0.1, IsActive: true} }

func (Camera) Kind() Kind { return KindCamera }

func (c Camera) encode(w *FieldWriter) {
	w.Float("zoom", c.Zoom)
	w.Float("offsetX", c.OffsetX)
	w.Float("offsetY", c.OffsetY)
	w.Float("smoothing", c.Smoothing)
	w.Bool("isActive", c.IsActive)
}

func (c *Camera) decode(r *FieldReader) {
	r.Float("zoom", &c.Zoom)
	r.Float("offsetX", &c.OffsetX)
	r.Float("offsetY", &c.OffsetY)
	r.Float("smoothing", &c.Smoothing)
	r.Bool("isActive", &c.IsActive)
}

func (c *Camera) value() Component { return *c }

type CameraStore struct {
	Zoom, OffsetX, OffsetY, Smoothing []float32
	IsActive                          []uint8
}

func (s *CameraStore) Grow(n int) {
	s.Zoom, s.OffsetX, s.OffsetY = grow(s.Zoom, n), grow(s.OffsetX, n), grow(s.OffsetY, n)
	s.Smoothing, s.IsActive = grow(s.Smoothing, n), grow(s.IsActive, n)
}

func (s *CameraStore) Remove(id ecs.EntityID) { s.set(id.Index(), Camera{}) }

func (s *CameraStore) set(i uint32, v Camera) {
	s.Zoom[i], s.OffsetX[i], s.OffsetY[i], s.Smoothing[i], s.IsActive[i] = v.Zoom, v.OffsetX, v.OffsetY, v.Smoothing, b2u(v.IsActive)
}

func (s *CameraStore) get(i uint32) Camera {
	return Camera{Zoom: s.Zoom[i], OffsetX: s.OffsetX[i], OffsetY: s.OffsetY[i], Smoothing: s.Smoothing[i], IsActive: u2b(s.IsActive[i])}
}

// ── particleEmitter ──

type ParticleEmitter struct {
	Rate         float32
	Lifetime     float32
	Speed        float32
	Spread       float32
	Size         float32
	Color        Color
	MaxParticles int32
	IsEmitting   bool
}

func DefaultParticleEmitter() ParticleEmitter {
	return ParticleEmitter{Rate: 10, Lifetime: 1, Speed: 50, Spread: 360, Size: 4, Color: White, MaxParticles: 100, IsEmitting: true}
}

func (ParticleEmitter) Kind() Kind { return KindParticleEmitter }

func (c ParticleEmitter) encode(w *FieldWriter) {
	w.Float("rate", c.Rate)
	w.Float("lifetime", c.Lifetime)
	w.Float("speed", c.Speed)
	w.Float("spread", c.Spread)
	w.Float("size", c.Size)
	w.Color("color", c.Color)
	w.Int("maxParticles", c.MaxParticles)
	w.Bool("isEmitting", c.IsEmitting)
}

func (c *ParticleEmitter) decode(r *FieldReader) {
	r.Float("rate", &c.Rate)
	r.Float("lifetime", &c.Lifetime)
	r.Float("speed", &c.Speed)
	r.Float("spread", &c.Spread)
	r.Float("size", &c.Size)
	r.Color("color", &c.Color)
	r.Int("maxParticles", &c.MaxParticles)
	r.Bool("isEmitting", &c.IsEmitting)
}

func (c *ParticleEmitter) value() Component { return *c }

type ParticleEmitterStore struct {
	Rate, Lifetime, Speed, Spread, Size []float32
	Color                               []Color
	MaxParticles                        []int32
	IsEmitting                          []uint8
}

func (s *ParticleEmitterStore) Grow(n int) {
	s.Rate, s.Lifetime, s.Speed = grow(s.Rate, n), grow(s.Lifetime, n), grow(s.Speed, n)
	s.Spread, s.Size, s.Color = grow(s.Spread, n), grow(s.Size, n), grow(s.Color, n)
	s.MaxParticles, s.IsEmitting = grow(s.MaxParticles, n), grow(s.IsEmitting, n)
}

func (s *ParticleEmitterStore) Remove(id ecs.EntityID) { s.set(id.Index(), ParticleEmitter{}) }

func (s *ParticleEmitterStore) set(i uint32, v ParticleEmitter) {
	s.Rate[i], s.Lifetime[i], s.Speed[i], s.Spread[i], s.Size[i] = v.Rate, v.Lifetime, v.Speed, v.Spread, v.Size
	s.Color[i], s.MaxParticles[i], s.IsEmitting[i] = v.Color, v.MaxParticles, b2u(v.IsEmitting)
}

func (s *ParticleEmitterStore) get(i uint32) ParticleEmitter {
	return ParticleEmitter{
		Rate: s.Rate[i], Lifetime: s.Lifetime[i], Speed: s.Speed[i], Spread: s.Spread[i], Size: s.Size[i],
		Color: s.Color[i], MaxParticles: s.MaxParticles[i], IsEmitting: u2b(s.IsEmitting[i]),
	}
}

// ── audio ──

type Audio struct {
	Sound       AssetID
	Volume      float32
	Loop        bool
	PlayOnStart bool
}

func DefaultAudio() Audio { return Audio{Volume: 1} }

func (Audio) Kind() Kind { return KindAudio }

func (c Audio) encode(w *FieldWriter) {
	w.Asset("sound", c.Sound)
	w.Float("volume", c.Volume)
	w.Bool("loop", c.Loop)
	w.Bool("playOnStart", c.PlayOnStart)
}

func (c *Audio) decode(r *FieldReader) {
	r.Asset("sound", &c.Sound)
	r.Float("volume", &c.Volume)
	r.Bool("loop", &c.Loop)
	r.Bool("playOnStart", &c.PlayOnStart)
}

func (c *Audio) value() Component { return *c }

type AudioStore struct {
	Sound             []AssetID
	Volume            []float32
	Loop, PlayOnStart []uint8
}

func (s *AudioStore) Grow(n int) {
	s.Sound, s.Volume = grow(s.Sound, n), grow(s.Volume, n)
	s.Loop, s.PlayOnStart = grow(s.Loop, n), grow(s.PlayOnStart, n)
}

func (s *AudioStore) Remove(id ecs.EntityID) { s.set(id.Index(), Audio{}) }

func (s *AudioStore) set(i uint32, v Audio) {
	s.Sound[i], s.Volume[i], s.Loop[i], s.PlayOnStart[i] = v.Sound, v.Volume, b2u(v.Loop), b2u(v.PlayOnStart)
}

func (s *AudioStore) get(i uint32) Audio {
	return Audio{Sound: s.Sound[i], Volume: s.Volume[i], Loop: u2b(s.Loop[i]), PlayOnStart: u2b(s.PlayOnStart[i])}
}

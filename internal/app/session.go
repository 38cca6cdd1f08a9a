package app

import (
	"log"

	"seasonfx/internal/config"
	"seasonfx/internal/lightning"
	"seasonfx/internal/scene"
	"seasonfx/internal/thunder"
	_ "seasonfx/internal/tree"
)

// Session is a scene built from settings plus the thunder player that follows
// its lightning layer.
type Session struct {
	Settings *config.Settings
	Scene    *scene.Scene
	Thunder  *thunder.Player
}

// NewSession builds and seeds the scene described by s. With audio set, a
// thunder player is started; failing to open the speaker is logged and the
// session continues silently.
func NewSession(s *config.Settings, audio bool) (*Session, error) {
	sc, err := scene.Build(s.Width, s.Height, s.Effects, s.EffectOptions())
	if err != nil {
		return nil, err
	}
	sc.Reset(s.Seed)

	sess := &Session{Settings: s, Scene: sc}
	if !audio {
		return sess, nil
	}
	storm, ok := sc.Find("lightning").(*lightning.Storm)
	if !ok {
		return sess, nil
	}
	p := thunder.NewPlayer(thunder.FromMap(s.Options["audio"]), s.Seed)
	if err := p.Init(); err != nil {
		log.Printf("thunder disabled: %v", err)
		return sess, nil
	}
	if !p.Ready() {
		return sess, nil
	}
	storm.OnBolt(p.Play)
	sess.Thunder = p
	return sess, nil
}

// Close tears the scene down and releases the speaker.
func (s *Session) Close() {
	s.Scene.Close()
	if s.Thunder != nil {
		s.Thunder.Close()
	}
}

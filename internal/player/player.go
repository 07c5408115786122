// Package player plays generated WAV clips on the default audio device.
package player

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ebitengine/oto/v3"

	"voxtone/internal/wav"
)

// Player plays one clip at a time. Safe for concurrent use.
type Player struct {
	ctx *oto.Context
	log *log.Logger

	mu     sync.Mutex
	active *oto.Player
}

// New opens the system audio device for mono 16-bit PCM at wav.SampleRate.
// Only one Player may exist per process.
func New(logger *log.Logger) (*Player, error) {
	op := &oto.NewContextOptions{
		SampleRate:   wav.SampleRate,
		ChannelCount: wav.Channels,
		Format:       oto.FormatSignedInt16LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("open audio device: %w", err)
	}
	<-ready

	logger.Debug("Audio player initialized", "rate", wav.SampleRate, "channels", wav.Channels)
	return &Player{ctx: ctx, log: logger}, nil
}

// Play plays a WAV clip and blocks until it ends or Stop is called. A clip
// already playing is stopped first.
func (p *Player) Play(data []byte) error {
	pcm, err := playablePCM(data)
	if err != nil {
		return err
	}

	p.Stop()
	player := p.ctx.NewPlayer(bytes.NewReader(pcm))

	p.mu.Lock()
	p.active = player
	p.mu.Unlock()

	player.Play()
	p.log.Debug("Playing clip", "bytes", len(pcm))

	for player.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}

	p.mu.Lock()
	if p.active == player {
		p.active = nil
	}
	p.mu.Unlock()

	return player.Close()
}

// Stop interrupts the clip being played, if any.
func (p *Player) Stop() {
	p.mu.Lock()
	active := p.active
	p.active = nil
	p.mu.Unlock()

	if active != nil {
		active.Pause()
		p.log.Debug("Playback interrupted")
	}
}

// playablePCM returns the samples of a clip in the device format.
func playablePCM(data []byte) ([]byte, error) {
	h, err := wav.DecodeHeader(data)
	if err != nil {
		return nil, err
	}
	if h.SampleRate != wav.SampleRate || h.Channels != wav.Channels || h.BitsPerSample != wav.BitsPerSample {
		return nil, fmt.Errorf("unsupported clip format: %d Hz, %d ch, %d bit", h.SampleRate, h.Channels, h.BitsPerSample)
	}
	return wav.PCM(data)
}

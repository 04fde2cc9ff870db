package gui

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/ebitengine/oto/v3"
)

const (
	beeperSampleRate = 44100
	beeperFrequency  = 440
	beeperVolume     = 0.25
)

// Beeper plays the single fixed tone of the machine. The sound timer state
// gates a square wave, the audio driver pulls samples from its own
// goroutine so the gate is an atomic flag.
type Beeper struct {
	ctx    *oto.Context
	player *oto.Player

	beeping atomic.Bool
	phase   int
}

// NewBeeper initializes the audio device and starts the playback stream.
// The stream plays silence until the tone is gated on.
func NewBeeper() (*Beeper, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   beeperSampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing audio context: %w", err)
	}
	<-ready

	b := &Beeper{ctx: ctx}
	b.player = ctx.NewPlayer(b)
	b.player.Play()
	return b, nil
}

// SetBeeping gates the tone on or off.
func (b *Beeper) SetBeeping(on bool) {
	b.beeping.Store(on)
}

// Read generates the next chunk of samples as 32 bit floats in little
// endian byte order. It implements io.Reader for the audio player and
// must not block.
func (b *Beeper) Read(p []byte) (int, error) {
	const period = beeperSampleRate / beeperFrequency

	beeping := b.beeping.Load()
	n := len(p) / 4 * 4

	for i := 0; i < n; i += 4 {
		var sample float32
		if beeping {
			sample = -beeperVolume
			if b.phase < period/2 {
				sample = beeperVolume
			}
			b.phase = (b.phase + 1) % period
		}
		binary.LittleEndian.PutUint32(p[i:], math.Float32bits(sample))
	}
	return n, nil
}

// Close stops the playback stream and releases the audio device.
func (b *Beeper) Close() error {
	if b.player == nil {
		return nil
	}

	if err := b.player.Close(); err != nil {
		return fmt.Errorf("closing audio player: %w", err)
	}
	return nil
}

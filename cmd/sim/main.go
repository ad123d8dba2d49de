// Command sim runs the game pipeline headless with a scripted pilot and prints
// a digest of every spawned ring. Equal settings always give equal digests.
package main

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"hash"
	"math"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/rocketrun/internal/config"
	"github.com/tomz197/rocketrun/internal/field"
	"github.com/tomz197/rocketrun/internal/input"
	"github.com/tomz197/rocketrun/internal/loop"
)

const (
	defaultFrames = 3600
	defaultFPS    = 60.0
)

// result summarizes a simulation.
type result struct {
	Digest    string
	Rings     int
	Asteroids int
	Distance  float32
	State     loop.GameState
}

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "sim",
	})

	frames, err := config.GetEnvInt("SIM_FRAMES", defaultFrames)
	if err != nil {
		logger.Fatal("bad config", "err", err)
	}
	fps, err := config.GetEnvFloat("SIM_FPS", defaultFPS)
	if err != nil {
		logger.Fatal("bad config", "err", err)
	}
	collisions, err := config.GetEnvBool("GAME_COLLISIONS", false)
	if err != nil {
		logger.Fatal("bad config", "err", err)
	}
	if frames <= 0 || fps <= 0 {
		logger.Fatal("SIM_FRAMES and SIM_FPS must be positive", "frames", frames, "fps", fps)
	}
	if config.GetEnv("SIM_VERBOSE", "") != "" {
		logger.SetLevel(log.DebugLevel)
	}

	res, err := simulate(frames, fps, collisions, logger)
	if err != nil {
		logger.Fatal("simulation failed", "err", err)
	}
	logger.Info("simulation done",
		"frames", frames,
		"fps", fps,
		"rings", res.Rings,
		"asteroids", res.Asteroids,
		"distance", res.Distance,
		"state", res.State,
		"digest", res.Digest,
	)
}

// pilot returns the scripted steering for a frame: a slow weave.
func pilot(frame int) field.Steer {
	switch t := frame % 90; {
	case t < 30:
		return field.SteerLeft
	case t >= 45 && t < 75:
		return field.SteerRight
	default:
		return field.SteerNone
	}
}

// simulate starts a run on the first frame and steps it frames times.
func simulate(frames int, fps float64, collisions bool, logger *log.Logger) (result, error) {
	opts := loop.DefaultOptions()
	opts.Collisions = collisions
	opts.Logger = logger
	s, err := loop.NewState(opts)
	if err != nil {
		return result{}, err
	}

	delta := time.Duration(float64(time.Second) / fps)
	h := sha256.New()
	var res result
	var lastID uint64

	for i := 0; i < frames; i++ {
		var inp input.Input
		if i == 0 {
			inp = input.Input{Confirm: true, ConfirmPressed: true}
		}
		if err := loop.Step(s, delta, inp, pilot(i)); err != nil {
			return result{}, err
		}

		for _, ring := range s.Field.Rings {
			if ring.ID <= lastID {
				continue
			}
			lastID = ring.ID
			res.Rings++
			res.Asteroids += len(ring.Asteroids)
			hashRing(h, ring)
			logger.Debug("ring", "frame", i, "id", ring.ID, "x", ring.Position.X(), "interior", len(ring.Asteroids))
		}
	}

	res.Digest = hex.EncodeToString(h.Sum(nil))
	res.Distance = s.Field.DistanceTraveled
	res.State = s.GameState
	return res, nil
}

// hashRing feeds a ring's id, anchor and every asteroid transform to h.
func hashRing(h hash.Hash, ring *field.Ring) {
	var buf [8]byte
	putFloat := func(f float32) {
		binary.LittleEndian.PutUint32(buf[:4], math.Float32bits(f))
		h.Write(buf[:4])
	}

	binary.LittleEndian.PutUint64(buf[:], ring.ID)
	h.Write(buf[:])
	for _, v := range ring.Position {
		putFloat(v)
	}
	for _, a := range ring.All() {
		binary.LittleEndian.PutUint32(buf[:4], uint32(a.Shape))
		h.Write(buf[:4])
		t := a.Transform
		for _, v := range t.Translation {
			putFloat(v)
		}
		putFloat(t.Rotation.W)
		for _, v := range t.Rotation.V {
			putFloat(v)
		}
		putFloat(t.Scale)
	}
}

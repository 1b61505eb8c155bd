package constant

import "time"

// Audio Engine
const (
	// AudioSampleRate is the speaker sample rate in Hz
	AudioSampleRate = 44100

	// AudioBufferDuration is the speaker buffer length
	AudioBufferDuration = 100 * time.Millisecond

	// DefaultVolume is the master volume in [0,1]
	DefaultVolume = 0.5
)

// Cue Timing
const (
	LockCueDuration     = 40 * time.Millisecond
	ClearCueNoteLength  = 70 * time.Millisecond
	LevelCueNoteLength  = 90 * time.Millisecond
	GameOverCueDuration = 900 * time.Millisecond
	CueAttack           = 5 * time.Millisecond
	CueRelease          = 30 * time.Millisecond
)

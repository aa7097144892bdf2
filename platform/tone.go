package platform

import (
	"encoding/binary"
	"math"
)

const toneFade = 0.01

// synthTone renders a sine tone as 16-bit little-endian stereo PCM. The
// first and last 10ms fade to avoid clicks.
func synthTone(sampleRate int, hz, seconds float64) []byte {
	if sampleRate <= 0 || hz <= 0 || seconds <= 0 {
		return nil
	}
	n := int(float64(sampleRate) * seconds)
	fade := int(float64(sampleRate) * toneFade)
	buf := make([]byte, n*4)
	for i := 0; i < n; i++ {
		gain := 1.0
		if fade > 0 {
			if i < fade {
				gain = float64(i) / float64(fade)
			} else if tail := n - 1 - i; tail < fade {
				gain = float64(tail) / float64(fade)
			}
		}
		v := math.Sin(2*math.Pi*hz*float64(i)/float64(sampleRate)) * gain
		s := uint16(int16(v * math.MaxInt16 * 0.8))
		binary.LittleEndian.PutUint16(buf[i*4:], s)
		binary.LittleEndian.PutUint16(buf[i*4+2:], s)
	}
	return buf
}

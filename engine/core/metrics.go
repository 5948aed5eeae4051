package core

const AVG_COUNT uint8 = 30

// Metrics keeps a rolling average of frame times and a frames-per-second count.
type Metrics struct {
	FrameAVGCounter    uint8
	MStimes            [AVG_COUNT]float64
	MSavg              float64
	Frames             int32
	AccumulatedFrameMS float64
	FPS                float64
}

func NewMetrics() *Metrics {
	return &Metrics{
		MStimes: [AVG_COUNT]float64{0},
	}
}

// Update records a frame that took frameElapsedTime seconds.
func (m *Metrics) Update(frameElapsedTime float64) {
	// Calculate frame ms average
	frameMS := frameElapsedTime * 1000.0
	m.MStimes[m.FrameAVGCounter] = frameMS
	if m.FrameAVGCounter == AVG_COUNT-1 {
		m.MSavg = 0
		for i := uint8(0); i < AVG_COUNT; i++ {
			m.MSavg += m.MStimes[i]
		}
		m.MSavg /= float64(AVG_COUNT)
	}
	m.FrameAVGCounter++
	m.FrameAVGCounter %= AVG_COUNT

	// Calculate frames per second.
	m.AccumulatedFrameMS += frameMS
	if m.AccumulatedFrameMS > 1000 {
		m.FPS = float64(m.Frames)
		m.AccumulatedFrameMS -= 1000
		m.Frames = 0
	}

	// Count all frames.
	m.Frames++
}

func (m *Metrics) FrameTime() float64 {
	return m.MSavg
}

func (m *Metrics) Frame() (float64, float64) {
	return m.FPS, m.MSavg
}

package core

import (
	"sync"
	"time"
)

const AVG_COUNT uint8 = 30

// MetricsState tracks how expensive queue compilation is across frames.
type MetricsState struct {
	FrameAVGCounter uint8
	MStimes         [AVG_COUNT]float64
	MSavg           float64
	Frames          int64
	LastCommands    int
	LastPasses      int
	TotalCommands   int64
}

var metricsMutex sync.Mutex
var metricsState = &MetricsState{}

func MetricsReset() {
	metricsMutex.Lock()
	defer metricsMutex.Unlock()
	metricsState = &MetricsState{}
}

// MetricsUpdate records one compiled frame.
func MetricsUpdate(buildTime time.Duration, passCount, commandCount int) {
	metricsMutex.Lock()
	defer metricsMutex.Unlock()

	// Calculate build ms average
	frame_ms := float64(buildTime) / float64(time.Millisecond)
	metricsState.MStimes[metricsState.FrameAVGCounter] = frame_ms
	if metricsState.FrameAVGCounter == AVG_COUNT-1 {
		sum := 0.0
		for i := uint8(0); i < AVG_COUNT; i++ {
			sum += metricsState.MStimes[i]
		}
		metricsState.MSavg = sum / float64(AVG_COUNT)
	} else if metricsState.Frames < int64(AVG_COUNT) {
		// Not enough samples for a full window yet.
		sum := 0.0
		for i := uint8(0); i <= metricsState.FrameAVGCounter; i++ {
			sum += metricsState.MStimes[i]
		}
		metricsState.MSavg = sum / float64(metricsState.FrameAVGCounter+1)
	}
	metricsState.FrameAVGCounter++
	metricsState.FrameAVGCounter %= AVG_COUNT

	metricsState.Frames++
	metricsState.LastPasses = passCount
	metricsState.LastCommands = commandCount
	metricsState.TotalCommands += int64(commandCount)
}

func MetricsBuildTime() float64 {
	metricsMutex.Lock()
	defer metricsMutex.Unlock()
	return metricsState.MSavg
}

func MetricsFrames() int64 {
	metricsMutex.Lock()
	defer metricsMutex.Unlock()
	return metricsState.Frames
}

// MetricsSnapshot returns a copy of the current state.
func MetricsSnapshot() MetricsState {
	metricsMutex.Lock()
	defer metricsMutex.Unlock()
	return *metricsState
}

package sim

import (
	"math"
	"time"

	"github.com/shirou/gopsutil/v3/host"
)

// hostTemperature returns a real board temperature when the host exposes
// thermal sensors, so the sim's readings move like a machine under load.
// Hosts without sensors get a slow synthetic wander instead.
func hostTemperature() float64 {
	stats, err := host.SensorsTemperatures()
	if err == nil {
		for _, s := range stats {
			if s.Temperature > 0 {
				return s.Temperature
			}
		}
	}
	return 24 + 3*math.Sin(float64(time.Now().Unix())/300)
}

package game

import (
	"math"
	"time"

	"github.com/lixenwraith/tstris/constant"
)

// LineClearScore returns the points for clearing lines rows at once on level
// More rows at once earn a super-linear bonus
func LineClearScore(lines, level int) int {
	if lines <= 0 {
		return 0
	}
	if lines >= len(constant.LineClearPoints) {
		lines = len(constant.LineClearPoints) - 1
	}
	if level < constant.MinLevel {
		level = constant.MinLevel
	}
	return constant.LineClearPoints[lines] * level
}

// LevelForLines returns the marathon level reached from startLevel after lines cleared
func LevelForLines(startLevel, lines int) int {
	if startLevel < constant.MinLevel {
		startLevel = constant.MinLevel
	}
	return startLevel + lines/constant.LinesPerLevel
}

// GravityInterval returns the time between automatic drops on level
// Non-increasing in level, floored at one frame
func GravityInterval(level int) time.Duration {
	if level < constant.MinLevel {
		level = constant.MinLevel
	}
	if level > constant.MaxGravityLevel {
		level = constant.MaxGravityLevel
	}
	n := float64(level - 1)
	secs := math.Pow(0.8-n*0.007, n)
	d := time.Duration(secs * float64(time.Second))
	if d < constant.MinGravityInterval {
		d = constant.MinGravityInterval
	}
	return d
}

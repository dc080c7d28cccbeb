package service

import (
	"math"
	"strconv"
	"time"

	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/util"
)

const (
	MinQuality  = 0
	MaxQuality  = 5
	PassQuality = 3

	masteryRepetitions  = 3
	masteryIntervalDays = 21
)

// RevisionState 错题携带的 SM-2 状态
type RevisionState struct {
	EaseFactor   float64
	IntervalDays int
	Repetitions  int
}

type RevisionOutcome struct {
	RevisionState
	Passed           bool
	Mastered         bool
	NextRevisionDate time.Time
}

// ScheduleRevision 按 0-5 的质量评分执行一次 SM-2 复习
func ScheduleRevision(cur RevisionState, quality int, now time.Time) (RevisionOutcome, error) {
	if err := ValidateQuality(quality); err != nil {
		return RevisionOutcome{}, err
	}

	out := RevisionOutcome{Passed: quality >= PassQuality}
	if out.Passed {
		out.Repetitions = cur.Repetitions + 1
		switch {
		case cur.Repetitions == 0:
			out.IntervalDays = 1
		case cur.Repetitions == 1 && cur.IntervalDays <= 1:
			// 第二次复习固定 6 天；已有更长间隔时按 ease 增长
			out.IntervalDays = 6
		default:
			out.IntervalDays = int(math.Round(float64(cur.IntervalDays) * cur.EaseFactor))
		}
	} else {
		out.Repetitions = 0
		out.IntervalDays = 1
	}

	// 始终基于当前 ease 计算
	d := float64(MaxQuality - quality)
	out.EaseFactor = math.Max(model.MinEaseFactor, cur.EaseFactor+0.1-d*(0.08+d*0.02))

	out.NextRevisionDate = now.AddDate(0, 0, out.IntervalDays)
	out.Mastered = out.Repetitions >= masteryRepetitions && out.IntervalDays >= masteryIntervalDays
	return out, nil
}

func ValidateQuality(quality int) error {
	if quality < MinQuality || quality > MaxQuality {
		return util.NewValidationError("quality", "must be an integer between 0 and 5, got "+strconv.Itoa(quality))
	}
	return nil
}

func revisionStateOf(m *model.Mistake) RevisionState {
	return RevisionState{
		EaseFactor:   m.EaseFactor,
		IntervalDays: m.IntervalDays,
		Repetitions:  m.RevisionCount,
	}
}

package service

import (
	"sort"
	"strings"

	"exam_prep_backend/internal/model"
)

// Evaluation 单题判分结果，提交时计算一次并落库
type Evaluation struct {
	Attempted bool
	IsCorrect *bool // 未作答时为 nil
	Marks     float64
}

// NormalizeSelection 去除空白与重复的选项标签并排序
func NormalizeSelection(labels []string) []string {
	seen := make(map[string]struct{}, len(labels))
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// EvaluateAnswer 将所选选项与正确选项集合比对计分
// 只有集合完全一致才算正确，子集或超集都算错
func EvaluateAnswer(correct, selected []string, scheme model.MarkingScheme) Evaluation {
	sel := NormalizeSelection(selected)
	if len(sel) == 0 {
		return Evaluation{Marks: scheme.Unattempted}
	}

	ok := sameLabels(NormalizeSelection(correct), sel)
	eval := Evaluation{Attempted: true, IsCorrect: &ok}
	if ok {
		eval.Marks = scheme.Correct
	} else {
		eval.Marks = scheme.Incorrect
	}
	return eval
}

// a 与 b 均已规范化（去重、排序）
func sameLabels(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

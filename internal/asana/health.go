package asana

import (
	"math"
	"time"
)

// Health status thresholds on the overdue rate.
const (
	HealthHealthy  = "healthy"
	HealthAtRisk   = "at-risk"
	HealthCritical = "critical"
)

// ProjectHealth summarizes how a project's tasks are tracking.
type ProjectHealth struct {
	Total          int    `json:"total"`
	Completed      int    `json:"completed"`
	Overdue        int    `json:"overdue"`
	OnTrack        int    `json:"onTrack"`
	CompletionRate int    `json:"completionRate"`
	OverdueRate    int    `json:"overdueRate"`
	HealthStatus   string `json:"healthStatus"`
}

// MemberWorkload aggregates one assignee's open and finished tasks.
type MemberWorkload struct {
	Name           string `json:"name"`
	TotalTasks     int    `json:"totalTasks"`
	CompletedTasks int    `json:"completedTasks"`
	OverdueTasks   int    `json:"overdueTasks"`
}

// dueOnLayout is Asana's date-only due_on format.
const dueOnLayout = "2006-01-02"

func overdue(t Task, now time.Time) bool {
	if t.Completed || t.DueOn == "" {
		return false
	}
	due, err := time.Parse(dueOnLayout, t.DueOn)
	if err != nil {
		return false
	}
	return due.Before(now)
}

// CalculateProjectHealth derives completion and overdue metrics from a
// project's tasks. Rates are percentages rounded to the nearest integer;
// more than 20% overdue is at-risk, more than 40% critical.
func CalculateProjectHealth(tasks []Task, now time.Time) ProjectHealth {
	health := ProjectHealth{HealthStatus: HealthHealthy}
	if len(tasks) == 0 {
		return health
	}

	health.Total = len(tasks)
	for _, t := range tasks {
		switch {
		case t.Completed:
			health.Completed++
		case overdue(t, now):
			health.Overdue++
		case t.DueOn != "":
			health.OnTrack++
		}
	}

	health.CompletionRate = int(math.Round(float64(health.Completed) / float64(health.Total) * 100))
	health.OverdueRate = int(math.Round(float64(health.Overdue) / float64(health.Total) * 100))

	if health.OverdueRate > 40 {
		health.HealthStatus = HealthCritical
	} else if health.OverdueRate > 20 {
		health.HealthStatus = HealthAtRisk
	}
	return health
}

// CalculateWorkload groups tasks per assignee. Tasks without an assignee
// land in an "Unassigned" bucket. Output order is insertion order of first
// appearance, keeping it deterministic for a given task list.
func CalculateWorkload(tasks []Task, now time.Time) []MemberWorkload {
	index := make(map[string]int)
	var out []MemberWorkload

	for _, t := range tasks {
		name := "Unassigned"
		if t.Assignee != nil && t.Assignee.Name != "" {
			name = t.Assignee.Name
		}

		i, ok := index[name]
		if !ok {
			i = len(out)
			index[name] = i
			out = append(out, MemberWorkload{Name: name})
		}

		out[i].TotalTasks++
		if t.Completed {
			out[i].CompletedTasks++
		}
		if overdue(t, now) {
			out[i].OverdueTasks++
		}
	}
	return out
}

package simulation

// Task is a simulated unit of work that needs a fixed amount of days to finish.
type Task struct {
	cycleTime int
	progress  int
}

// NewTask returns a task without progress.
func NewTask(cycleTime int) *Task {
	return &Task{cycleTime: cycleTime}
}

// ProgressOneDay works one day on the task.
func (t *Task) ProgressOneDay() { t.progress++ }

// IsComplete returns true when the task has been worked its cycle time.
func (t *Task) IsComplete() bool { return t.progress >= t.cycleTime }

// CycleTime returns the days the task needs.
func (t *Task) CycleTime() int { return t.cycleTime }

// Progress returns the days worked on the task.
func (t *Task) Progress() int { return t.progress }
